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
	"encoding/hex"
	"fmt"
)

// SignaturePair is a signature supplied with a transaction. Prefix is a
// leading slice of the signer's public key (possibly empty, possibly the
// full key) used to associate the signature with a key.
type SignaturePair struct {
	Prefix    []byte
	Algorithm Algorithm
	Signature []byte
}

func NewEd25519Pair(prefix []byte, sig []byte) SignaturePair {
	return SignaturePair{
		Prefix:    prefix,
		Algorithm: AlgorithmEd25519,
		Signature: sig,
	}
}

func NewEcdsaSecp256k1Pair(prefix []byte, sig []byte) SignaturePair {
	return SignaturePair{
		Prefix:    prefix,
		Algorithm: AlgorithmEcdsaSecp256k1,
		Signature: sig,
	}
}

// Matches reports whether the pair may sign for the given simple key: the
// algorithms agree and the prefix is a byte-prefix of the key
func (p SignaturePair) Matches(k *Simple) bool {
	if k == nil || p.Algorithm != k.Algorithm {
		return false
	}
	return bytes.HasPrefix(k.Bytes, p.Prefix)
}

// IsFullPrefix reports whether the prefix is long enough to be a complete
// public key for the pair's algorithm
func (p SignaturePair) IsFullPrefix() bool {
	switch p.Algorithm {
	case AlgorithmEd25519:
		return len(p.Prefix) == Ed25519KeySize
	case AlgorithmEcdsaSecp256k1:
		return len(p.Prefix) == Secp256k1CompressedSize
	default:
		return false
	}
}

func (p SignaturePair) String() string {
	return fmt.Sprintf(
		"%s(prefix=%s)",
		p.Algorithm,
		hex.EncodeToString(p.Prefix),
	)
}
