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
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The secp256k1 generator point, whose private key is 1
const (
	generatorCompressed   = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	generatorUncompressed = "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	// Well known Ethereum address of private key 1
	generatorAddress = "7e5f4552091a69125d5dfcb7b8c2659029395bdf"
)

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	ret, err := hex.DecodeString(s)
	require.NoError(t, err)
	return ret
}

func TestDecompressSecp256k1(t *testing.T) {
	uncompressed, err := DecompressSecp256k1(decodeHex(t, generatorCompressed))
	require.NoError(t, err)
	assert.Equal(t, generatorUncompressed, hex.EncodeToString(uncompressed))

	compressed, err := CompressSecp256k1(uncompressed)
	require.NoError(t, err)
	assert.Equal(t, generatorCompressed, hex.EncodeToString(compressed))
}

func TestDecompressSecp256k1Invalid(t *testing.T) {
	good := decodeHex(t, generatorCompressed)
	badPrefix := append([]byte{0x04}, good[1:]...)
	// There is no point with x = 0
	offCurve := make([]byte, Secp256k1CompressedSize)
	offCurve[0] = 0x02

	for _, data := range [][]byte{nil, good[:32], badPrefix, offCurve} {
		_, err := DecompressSecp256k1(data)
		assert.ErrorIs(t, err, ErrInvalidSecp256k1Key)
	}
	_, err := CompressSecp256k1(good)
	assert.ErrorIs(t, err, ErrInvalidSecp256k1Key)
}

func TestEvmAddress(t *testing.T) {
	address, err := EvmAddress(decodeHex(t, generatorCompressed))
	require.NoError(t, err)
	assert.Equal(t, generatorAddress, hex.EncodeToString(address))

	_, pub := btcec.PrivKeyFromBytes([]byte{0x01})
	address, err = EvmAddress(pub.SerializeCompressed())
	require.NoError(t, err)
	assert.Equal(t, generatorAddress, hex.EncodeToString(address))
}

func TestKeccak256(t *testing.T) {
	assert.Equal(
		t,
		"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		hex.EncodeToString(Keccak256()),
	)
	assert.Equal(t, Keccak256([]byte("ab")), Keccak256([]byte("a"), []byte("b")))
}
