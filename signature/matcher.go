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
	"github.com/blinklabs-io/gosigverify/key"
)

// MatchPair selects the signature pair to check against a simple key. Only
// pairs of the key's algorithm whose prefix is a byte prefix of the key
// qualify. The longest prefix wins and the earliest pair wins a tie.
func MatchPair(k *key.Simple, pairs []key.SignaturePair) (key.SignaturePair, bool) {
	var best key.SignaturePair
	found := false
	for _, pair := range pairs {
		if !pair.Matches(k) {
			continue
		}
		if !found || len(pair.Prefix) > len(best.Prefix) {
			best = pair
			found = true
		}
	}
	return best, found
}
