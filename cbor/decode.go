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
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// MaxNestedLevels bounds the depth of decoded structures. Key trees nest
// two CBOR levels per key level.
const MaxNestedLevels = 128

func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			ExtraReturnErrors: _cbor.ExtraDecErrorUnknownField,
			MaxNestedLevels:   MaxNestedLevels,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecMode()
	})
	return cachedDecMode, cachedDecModeErr
}

// Decode decodes the first CBOR item in dataBytes into dest and returns the
// number of bytes read
func Decode(dataBytes []byte, dest any) (int, error) {
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	dec := decMode.NewDecoder(bytes.NewReader(dataBytes))
	err = dec.Decode(dest)
	return dec.NumBytesRead(), err
}

// DecodeIdFromList extracts the first item from a CBOR list. This will return
// the first item from the provided list if it's numeric and an error otherwise
func DecodeIdFromList(cborData []byte) (int, error) {
	listLen, err := ListLength(cborData)
	if err != nil {
		return 0, err
	}
	if listLen == 0 {
		return 0, errors.New("cannot return first item from empty list")
	}
	// Small list with a small leading uint can be read straight from the bytes
	if listLen < int(CborMaxUintSimple) && len(cborData) > 1 &&
		cborData[1] <= CborMaxUintSimple {
		return int(cborData[1]), nil
	}
	var list []RawMessage
	if _, err := Decode(cborData, &list); err != nil {
		return 0, err
	}
	var id uint64
	if _, err := Decode(list[0], &id); err != nil {
		return 0, fmt.Errorf("first list item was not numeric: %w", err)
	}
	if id > uint64(math.MaxInt) {
		return 0, errors.New("decoded numeric value too large: uint64 > int")
	}
	return int(id), nil
}

// ListLength determines the length of a CBOR list
func ListLength(cborData []byte) (int, error) {
	if len(cborData) == 0 {
		return 0, errors.New("empty CBOR data")
	}
	if cborData[0] >= CborTypeArray &&
		cborData[0] <= (CborTypeArray+CborMaxUintSimple) {
		return int(cborData[0]) - int(CborTypeArray), nil
	}
	if cborData[0]&CborTypeMask != CborTypeArray {
		return 0, fmt.Errorf("CBOR data is not a list: 0x%02x", cborData[0])
	}
	var tmp []RawMessage
	if _, err := Decode(cborData, &tmp); err != nil {
		return 0, err
	}
	return len(tmp), nil
}
