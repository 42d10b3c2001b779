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
	"fmt"

	"github.com/blinklabs-io/gosigverify/key"
)

// Result is the outcome of verifying one key structure or one hollow
// account. Exactly one of Key and HollowAccount is set for a hollow
// account; ordinary verifications only set Key.
type Result struct {
	Key           key.Key
	HollowAccount *key.Account
	Passed        bool
}

// Failed is the inverse of Passed
func (r Result) Failed() bool {
	return !r.Passed
}

func (r Result) String() string {
	if r.HollowAccount != nil {
		return fmt.Sprintf("hollow(%s) passed=%t", r.HollowAccount, r.Passed)
	}
	return fmt.Sprintf("%v passed=%t", r.Key, r.Passed)
}
