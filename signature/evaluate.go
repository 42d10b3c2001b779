// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package signature

import (
	"github.com/blinklabs-io/gosigverify/engine"
	"github.com/blinklabs-io/gosigverify/key"
)

// Outcomes maps simple key identities (see key.Simple.ID) to the status of
// their verification
type Outcomes map[string]engine.Status

// Evaluate reports whether k is satisfied by the resolved outcomes. A simple
// key passes only if it has a valid outcome; a key appearing more than once
// in the tree counts once for each occurrence.
func Evaluate(k key.Key, outcomes Outcomes) bool {
	switch k := k.(type) {
	case *key.Simple:
		if k == nil {
			return false
		}
		status, ok := outcomes[k.ID()]
		return ok && status == engine.StatusValid
	case *key.KeyList:
		if k == nil || len(k.Keys) == 0 {
			return false
		}
		passed := true
		for _, child := range k.Keys {
			if !Evaluate(child, outcomes) {
				passed = false
			}
		}
		return passed
	case *key.ThresholdKey:
		if k == nil || len(k.Keys) == 0 {
			return false
		}
		numCanFail := len(k.Keys) - k.EffectiveThreshold()
		for _, child := range k.Keys {
			if Evaluate(child, outcomes) {
				continue
			}
			numCanFail--
			if numCanFail < 0 {
				return false
			}
		}
		return true
	default:
		return false
	}
}
