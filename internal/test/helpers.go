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

// Package test holds fixtures shared by the package tests.
package test

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blinklabs-io/gosigverify/key"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// KeyPair is a deterministic signing key used by tests
type KeyPair struct {
	Public *key.Simple
	sign   func(msg []byte) []byte
}

// NewEd25519KeyPair derives an Ed25519 key pair from a one-byte seed
func NewEd25519KeyPair(seed byte) *KeyPair {
	priv := ed25519.NewKeyFromSeed(seedBytes(seed))
	pub := priv.Public().(ed25519.PublicKey)
	return &KeyPair{
		Public: key.NewEd25519([]byte(pub)),
		sign: func(msg []byte) []byte {
			return ed25519.Sign(priv, msg)
		},
	}
}

// NewSecp256k1KeyPair derives an ECDSA(secp256k1) key pair from a one-byte
// seed. Signatures are 64-byte r||s over Keccak-256 of the message.
func NewSecp256k1KeyPair(seed byte) *KeyPair {
	priv, pub := btcec.PrivKeyFromBytes(seedBytes(seed))
	return &KeyPair{
		Public: key.NewEcdsaSecp256k1(pub.SerializeCompressed()),
		sign: func(msg []byte) []byte {
			// The compact form is a recovery header followed by r||s
			compact := ecdsa.SignCompact(priv, key.Keccak256(msg), true)
			return compact[1:]
		},
	}
}

// Sign signs msg with the private key
func (k *KeyPair) Sign(msg []byte) []byte {
	return k.sign(msg)
}

// SignaturePair signs msg and returns a pair whose prefix is the first
// prefixLen bytes of the public key. A negative prefixLen uses the full key.
func (k *KeyPair) SignaturePair(prefixLen int, msg []byte) key.SignaturePair {
	prefix := k.Public.Bytes
	if prefixLen >= 0 && prefixLen < len(prefix) {
		prefix = prefix[:prefixLen]
	}
	return key.SignaturePair{
		Prefix:    prefix,
		Algorithm: k.Public.Algorithm,
		Signature: k.Sign(msg),
	}
}

// Alias returns the EVM address of a secp256k1 key pair
func (k *KeyPair) Alias() []byte {
	alias, err := key.EvmAddress(k.Public.Bytes)
	if err != nil {
		panic(fmt.Sprintf("error deriving alias: %s", err))
	}
	return alias
}

func seedBytes(seed byte) []byte {
	ret := make([]byte, 32)
	for i := range ret {
		ret[i] = seed
	}
	// Keep the scalar well inside the curve order
	ret[0] = 0x01
	return ret
}
