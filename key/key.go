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

// Package key models the recursive key structures that a transaction's
// signatures are checked against: simple Ed25519 and ECDSA(secp256k1) keys,
// all-must-sign key lists and M-of-N threshold keys.
package key

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/blinklabs-io/gosigverify/cbor"
	"golang.org/x/crypto/blake2b"
)

const (
	Ed25519KeySize            = 32
	Secp256k1CompressedSize   = 33
	Secp256k1UncompressedSize = 65
	EvmAddressSize            = 20
	Blake2b224Size            = 28
)

// Algorithm identifies the signature scheme of a simple key or signature pair
type Algorithm uint8

const (
	AlgorithmUnsupported Algorithm = iota
	AlgorithmEd25519
	AlgorithmEcdsaSecp256k1
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmEd25519:
		return "ed25519"
	case AlgorithmEcdsaSecp256k1:
		return "ecdsa_secp256k1"
	default:
		return fmt.Sprintf("unsupported(%d)", uint8(a))
	}
}

// Kind identifies the variant of a Key
type Kind uint8

const (
	KindUnsupported Kind = iota
	KindSimple
	KindKeyList
	KindThresholdKey
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindKeyList:
		return "key_list"
	case KindThresholdKey:
		return "threshold_key"
	default:
		return "unsupported"
	}
}

// Key is one node of a key structure. The set of implementations is closed:
// *Simple, *KeyList, *ThresholdKey and *Unsupported. Code walking a key tree
// should use a type switch over exactly these variants.
type Key interface {
	Kind() Kind
	String() string
	isKey()
}

// Simple is a leaf key. ECDSA(secp256k1) keys are stored in their 33-byte
// compressed form.
type Simple struct {
	Algorithm Algorithm
	Bytes     []byte
}

// NewEd25519 returns a simple Ed25519 key
func NewEd25519(pubKey []byte) *Simple {
	return &Simple{Algorithm: AlgorithmEd25519, Bytes: pubKey}
}

// NewEcdsaSecp256k1 returns a simple ECDSA(secp256k1) key from its compressed
// bytes
func NewEcdsaSecp256k1(compressed []byte) *Simple {
	return &Simple{Algorithm: AlgorithmEcdsaSecp256k1, Bytes: compressed}
}

func (*Simple) Kind() Kind { return KindSimple }

func (*Simple) isKey() {}

func (s *Simple) String() string {
	return fmt.Sprintf("%s:%s", s.Algorithm, hex.EncodeToString(s.Bytes))
}

// Equal reports whether two simple keys have the same algorithm and bytes
func (s *Simple) Equal(other *Simple) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Algorithm == other.Algorithm && bytes.Equal(s.Bytes, other.Bytes)
}

type simpleID struct {
	cbor.StructAsArray
	Algorithm uint8
	Bytes     []byte
}

// ID returns the canonical identity of the key: the deterministic CBOR
// encoding of [algorithm, bytes]. Two keys share an ID iff they are Equal.
func (s *Simple) ID() string {
	data, err := cbor.Encode(&simpleID{Algorithm: uint8(s.Algorithm), Bytes: s.Bytes})
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error encoding key identity: %s",
				err,
			),
		)
	}
	return string(data)
}

// Hash returns the hex Blake2b-224 digest of the key bytes. It is short
// enough to be used as a log attribute.
func (s *Simple) Hash() string {
	tmpHash, err := blake2b.New(Blake2b224Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(s.Bytes)
	return hex.EncodeToString(tmpHash.Sum(nil))
}

// KeyList is satisfied only when every child is satisfied. An empty list is
// never satisfied.
type KeyList struct {
	Keys []Key
}

func NewKeyList(keys ...Key) *KeyList {
	return &KeyList{Keys: keys}
}

func (*KeyList) Kind() Kind { return KindKeyList }

func (*KeyList) isKey() {}

func (l *KeyList) String() string {
	return fmt.Sprintf("key_list%v", l.Keys)
}

// ThresholdKey is satisfied when at least EffectiveThreshold children are
// satisfied. An empty threshold key is never satisfied.
type ThresholdKey struct {
	Threshold int
	Keys      []Key
}

func NewThresholdKey(threshold int, keys ...Key) *ThresholdKey {
	return &ThresholdKey{Threshold: threshold, Keys: keys}
}

func (*ThresholdKey) Kind() Kind { return KindThresholdKey }

func (*ThresholdKey) isKey() {}

func (t *ThresholdKey) String() string {
	return fmt.Sprintf("threshold_key(%d)%v", t.Threshold, t.Keys)
}

// EffectiveThreshold clamps the declared threshold into [1, len(Keys)].
// An out of range threshold is not an error.
func (t *ThresholdKey) EffectiveThreshold() int {
	threshold := t.Threshold
	if threshold > len(t.Keys) {
		threshold = len(t.Keys)
	}
	if threshold < 1 {
		threshold = 1
	}
	return threshold
}

// UnsupportedReason records why a key can never be verified from signatures
type UnsupportedReason uint8

const (
	ReasonUnset UnsupportedReason = iota
	ReasonContractID
	ReasonDelegatableContractID
	ReasonRSA3072
	ReasonECDSA384
)

func (r UnsupportedReason) String() string {
	switch r {
	case ReasonUnset:
		return "unset"
	case ReasonContractID:
		return "contract_id"
	case ReasonDelegatableContractID:
		return "delegatable_contract_id"
	case ReasonRSA3072:
		return "rsa_3072"
	case ReasonECDSA384:
		return "ecdsa_384"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(r))
	}
}

// Unsupported is a key kind that no signature can satisfy. Contract ID keys
// are policy markers resolved elsewhere.
type Unsupported struct {
	Reason UnsupportedReason
}

func NewUnsupported(reason UnsupportedReason) *Unsupported {
	return &Unsupported{Reason: reason}
}

func (*Unsupported) Kind() Kind { return KindUnsupported }

func (*Unsupported) isKey() {}

func (u *Unsupported) String() string {
	return "unsupported:" + u.Reason.String()
}

// IsUnset reports whether k carries no key at all
func IsUnset(k Key) bool {
	k = normalize(k)
	if k == nil {
		return true
	}
	u, ok := k.(*Unsupported)
	return ok && u.Reason == ReasonUnset
}

// normalize maps a typed nil pointer of any key kind to a nil Key
func normalize(k Key) Key {
	switch k := k.(type) {
	case *Simple:
		if k == nil {
			return nil
		}
	case *KeyList:
		if k == nil {
			return nil
		}
	case *ThresholdKey:
		if k == nil {
			return nil
		}
	case *Unsupported:
		if k == nil {
			return nil
		}
	}
	return k
}
