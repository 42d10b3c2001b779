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

package cbor

import (
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	cachedEncMode     _cbor.EncMode
	cachedEncModeErr  error
	cachedEncModeOnce sync.Once
)

// getEncMode returns a cached core deterministic EncMode. Identical values
// always produce identical bytes, which makes the output usable as a map key.
func getEncMode() (_cbor.EncMode, error) {
	cachedEncModeOnce.Do(func() {
		cachedEncMode, cachedEncModeErr = _cbor.CoreDetEncOptions().EncMode()
	})
	return cachedEncMode, cachedEncModeErr
}

// Encode returns the deterministic CBOR encoding of data
func Encode(data any) ([]byte, error) {
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}
	return em.Marshal(data)
}
