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

package cbor_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/gosigverify/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTestDefinition struct {
	CborHex   string
	Object    any
	BytesRead int
}

var decodeTests = []decodeTestDefinition{
	// Simple list of numbers
	{
		CborHex:   "83010203",
		Object:    []any{uint64(1), uint64(2), uint64(3)},
		BytesRead: 4,
	},
	// Multiple CBOR objects
	{
		CborHex:   "81018102",
		Object:    []any{uint64(1)},
		BytesRead: 2,
	},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeTests {
		cborData, err := hex.DecodeString(test.CborHex)
		require.NoError(t, err)
		var dest any
		bytesRead, err := cbor.Decode(cborData, &dest)
		require.NoError(t, err)
		assert.Equal(t, test.BytesRead, bytesRead)
		assert.Equal(t, test.Object, dest)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := cbor.Encode(map[string]int{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)
	b, err := cbor.Encode(map[string]int{"c": 3, "a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "a3616101616202616303", hex.EncodeToString(a))
}

func TestDecodeIdFromList(t *testing.T) {
	testDefs := []struct {
		name      string
		cborHex   string
		expected  int
		expectErr bool
	}{
		{name: "small id", cborHex: "820243010203", expected: 2},
		{name: "large id", cborHex: "82186400", expected: 100},
		{name: "empty list", cborHex: "80", expectErr: true},
		{name: "not a list", cborHex: "01", expectErr: true},
		{name: "non-numeric id", cborHex: "82410100", expectErr: true},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data, err := hex.DecodeString(testDef.cborHex)
			require.NoError(t, err)
			id, err := cbor.DecodeIdFromList(data)
			if testDef.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, id)
		})
	}
}

func TestListLength(t *testing.T) {
	data, err := hex.DecodeString("83010203")
	require.NoError(t, err)
	n, err := cbor.ListLength(data)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = cbor.ListLength(nil)
	assert.Error(t, err)
}
