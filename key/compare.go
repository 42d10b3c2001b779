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
	"bytes"
	"cmp"
)

// Compare imposes a total order on keys. Keys of different kinds order by
// kind (unset, unsupported, Ed25519, ECDSA, threshold, list); simple keys
// order by their bytes, threshold keys by threshold and then children, key
// lists by their children. It returns 0 iff the trees are structurally equal.
// A typed nil pointer orders as unset.
func Compare(a, b Key) int {
	a, b = normalize(a), normalize(b)
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch a := a.(type) {
	case *Simple:
		return bytes.Compare(a.Bytes, b.(*Simple).Bytes)
	case *ThresholdKey:
		other := b.(*ThresholdKey)
		if c := cmp.Compare(a.Threshold, other.Threshold); c != 0 {
			return c
		}
		return compareKeys(a.Keys, other.Keys)
	case *KeyList:
		return compareKeys(a.Keys, b.(*KeyList).Keys)
	case *Unsupported:
		return cmp.Compare(a.Reason, b.(*Unsupported).Reason)
	}
	return 0
}

// Equal reports whether two key trees are structurally equal
func Equal(a, b Key) bool {
	return Compare(a, b) == 0
}

func rank(k Key) int {
	switch k := normalize(k).(type) {
	case nil:
		return 0
	case *Unsupported:
		return 1
	case *Simple:
		return 10 + int(k.Algorithm)
	case *ThresholdKey:
		return 20
	case *KeyList:
		return 30
	}
	return 40
}

func compareKeys(a, b []Key) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}
