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
	"testing"

	"github.com/blinklabs-io/gosigverify/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	k := NewThresholdKey(
		2,
		NewEd25519([]byte{0x01, 0x02, 0x03}),
		NewKeyList(
			NewEcdsaSecp256k1([]byte{0x02, 0xaa}),
			NewUnsupported(ReasonContractID),
		),
		NewThresholdKey(-1, NewEd25519([]byte{0x04})),
		NewKeyList(),
	)
	data, err := Marshal(k)
	require.NoError(t, err)
	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, Equal(k, decoded), "decoded %s", decoded)

	// The encoding is deterministic
	again, err := Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestCodecSimpleEncoding(t *testing.T) {
	data, err := Marshal(NewEd25519([]byte{0xab}))
	require.NoError(t, err)
	// [0, 1, h'ab']
	assert.Equal(t, []byte{0x83, 0x00, 0x01, 0x41, 0xab}, data)
}

func TestCodecNilKey(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, IsUnset(decoded))
}

func TestCodecUnknownType(t *testing.T) {
	data, err := cbor.Encode([]any{9, 1})
	require.NoError(t, err)
	_, err = Unmarshal(data)
	assert.ErrorContains(t, err, "unknown key type 9")

	_, err = Unmarshal([]byte{0x01})
	assert.Error(t, err)
}

func TestCodecDepthLimit(t *testing.T) {
	var k Key = NewEd25519([]byte{0x01})
	for i := 0; i <= MaxDepth; i++ {
		k = NewKeyList(k)
	}
	_, err := Marshal(k)
	assert.ErrorIs(t, err, ErrKeyTooDeep)

	data, err := Marshal(NewEd25519([]byte{0x01}))
	require.NoError(t, err)
	for i := 0; i <= MaxDepth; i++ {
		data, err = cbor.Encode(
			&keyListCbor{Type: keyTypeKeyList, Keys: []cbor.RawMessage{data}},
		)
		require.NoError(t, err)
	}
	_, err = Unmarshal(data)
	assert.ErrorIs(t, err, ErrKeyTooDeep)
}

func TestCodecTypedNilKey(t *testing.T) {
	expected, err := Marshal(nil)
	require.NoError(t, err)
	for _, k := range []Key{
		(*Simple)(nil),
		(*KeyList)(nil),
		(*ThresholdKey)(nil),
		(*Unsupported)(nil),
	} {
		data, err := Marshal(k)
		require.NoError(t, err, "%T", k)
		assert.Equal(t, expected, data, "%T", k)
	}
	data, err := Marshal(NewKeyList(NewEd25519([]byte{0x01}), (*Simple)(nil)))
	require.NoError(t, err)
	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	list, ok := decoded.(*KeyList)
	require.True(t, ok)
	require.Len(t, list.Keys, 2)
	assert.True(t, IsUnset(list.Keys[1]))
}
