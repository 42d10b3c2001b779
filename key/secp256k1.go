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
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/sha3"
)

// ErrInvalidSecp256k1Key is returned when bytes do not encode a point on the
// secp256k1 curve in the expected form
var ErrInvalidSecp256k1Key = errors.New("invalid secp256k1 public key")

const (
	secp256k1CompressedEven byte = 0x02
	secp256k1CompressedOdd  byte = 0x03
)

// DecompressSecp256k1 converts a 33-byte compressed secp256k1 public key into
// its 65-byte uncompressed form
func DecompressSecp256k1(compressed []byte) ([]byte, error) {
	if len(compressed) != Secp256k1CompressedSize {
		return nil, fmt.Errorf(
			"%w: compressed key must be %d bytes, got %d",
			ErrInvalidSecp256k1Key,
			Secp256k1CompressedSize,
			len(compressed),
		)
	}
	if compressed[0] != secp256k1CompressedEven &&
		compressed[0] != secp256k1CompressedOdd {
		return nil, fmt.Errorf(
			"%w: bad compressed prefix 0x%02x",
			ErrInvalidSecp256k1Key,
			compressed[0],
		)
	}
	pubKey, err := btcec.ParsePubKey(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSecp256k1Key, err)
	}
	return pubKey.SerializeUncompressed(), nil
}

// CompressSecp256k1 converts a 65-byte uncompressed secp256k1 public key into
// its 33-byte compressed form
func CompressSecp256k1(uncompressed []byte) ([]byte, error) {
	if len(uncompressed) != Secp256k1UncompressedSize {
		return nil, fmt.Errorf(
			"%w: uncompressed key must be %d bytes, got %d",
			ErrInvalidSecp256k1Key,
			Secp256k1UncompressedSize,
			len(uncompressed),
		)
	}
	pubKey, err := btcec.ParsePubKey(uncompressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSecp256k1Key, err)
	}
	return pubKey.SerializeCompressed(), nil
}

// Keccak256 returns the legacy (pre-NIST) Keccak-256 digest used by the EVM
func Keccak256(data ...[]byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hasher.Write(d)
	}
	return hasher.Sum(nil)
}

// EvmAddress derives the 20-byte EVM address of a compressed secp256k1 public
// key: the last 20 bytes of Keccak-256 over the uncompressed X||Y coordinates
func EvmAddress(compressed []byte) ([]byte, error) {
	uncompressed, err := DecompressSecp256k1(compressed)
	if err != nil {
		return nil, err
	}
	digest := Keccak256(uncompressed[1:])
	return digest[len(digest)-EvmAddressSize:], nil
}
