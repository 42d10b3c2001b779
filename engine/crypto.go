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

package engine

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/blinklabs-io/gosigverify/key"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// EcdsaSignatureSize is the length of an r||s secp256k1 signature
const EcdsaSignatureSize = 64

// VerifyFunc performs the cryptographic check for one signature. An error
// means the request itself was malformed, not that the signature is bad.
type VerifyFunc func(sig *TransactionSignature) (bool, error)

// UnexpectedAlgorithmError is returned for a signature whose algorithm has
// no verifier. Upstream validation should make this unreachable.
type UnexpectedAlgorithmError struct {
	Algorithm key.Algorithm
}

func (e UnexpectedAlgorithmError) Error() string {
	return fmt.Sprintf("unexpected signature algorithm: %s", e.Algorithm)
}

// Verify is the default VerifyFunc
func Verify(sig *TransactionSignature) (bool, error) {
	switch sig.Algorithm() {
	case key.AlgorithmEd25519:
		return VerifyEd25519(sig.PublicKey(), sig.Message(), sig.Signature()), nil
	case key.AlgorithmEcdsaSecp256k1:
		return VerifyEcdsaSecp256k1(sig.PublicKey(), sig.Message(), sig.Signature()), nil
	default:
		return false, UnexpectedAlgorithmError{Algorithm: sig.Algorithm()}
	}
}

// VerifyEd25519 verifies an Ed25519 signature. Public keys with a
// non-canonical encoding or of small order are rejected.
func VerifyEd25519(pubKey, msg, sig []byte) bool {
	if len(pubKey) != ed25519.PublicKeySize ||
		len(sig) != ed25519.SignatureSize {
		return false
	}
	point, err := new(edwards25519.Point).SetBytes(pubKey)
	if err != nil {
		return false
	}
	// SetBytes accepts non-canonical encodings
	if !bytes.Equal(point.Bytes(), pubKey) {
		return false
	}
	if new(edwards25519.Point).MultByCofactor(point).Equal(edwards25519.NewIdentityPoint()) == 1 {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubKey), msg, sig)
}

// VerifyEcdsaSecp256k1 verifies a 64-byte r||s signature over the
// Keccak-256 digest of msg. pubKey may be compressed or uncompressed.
func VerifyEcdsaSecp256k1(pubKey, msg, sig []byte) bool {
	if len(sig) != EcdsaSignatureSize {
		return false
	}
	pub, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return false
	}
	var r, s btcec.ModNScalar
	if r.SetByteSlice(sig[:32]) || s.SetByteSlice(sig[32:]) {
		return false
	}
	if r.IsZero() || s.IsZero() {
		return false
	}
	return ecdsa.NewSignature(&r, &s).Verify(key.Keccak256(msg), pub)
}
