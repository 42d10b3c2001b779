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

package key

import (
	"fmt"
)

// AccountID identifies an account as shard.realm.num
type AccountID struct {
	Shard int64
	Realm int64
	Num   int64
}

func (a AccountID) String() string {
	return fmt.Sprintf("%d.%d.%d", a.Shard, a.Realm, a.Num)
}

// Account is the subset of account state needed for signature checks
type Account struct {
	ID    AccountID
	Alias []byte
	Key   Key
}

// IsHollow reports whether the account is known only by a 20-byte EVM
// address alias and has no key yet
func (a *Account) IsHollow() bool {
	return a != nil && IsUnset(a.Key) && len(a.Alias) == EvmAddressSize
}

func (a *Account) String() string {
	if a == nil {
		return "<nil>"
	}
	return a.ID.String()
}
