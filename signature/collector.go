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

package signature

import (
	"github.com/blinklabs-io/gosigverify/engine"
	"github.com/blinklabs-io/gosigverify/key"
)

// candidate is a simple key paired with the signature selected for it
type candidate struct {
	key  *key.Simple
	pair key.SignaturePair
	// verifyKey is the public key handed to the engine. secp256k1 keys are
	// decompressed.
	verifyKey []byte
}

// collector walks a key structure and gathers the signature checks needed to
// satisfy it. Candidates are appended to a single arena and a failed list or
// threshold key truncates the arena back to where it started.
type collector struct {
	pairs []key.SignaturePair
	arena []candidate
}

func newCollector(pairs []key.SignaturePair) *collector {
	return &collector{pairs: pairs}
}

// collect reports whether k contributed at least one candidate
func (c *collector) collect(k key.Key) bool {
	switch k := k.(type) {
	case *key.Simple:
		return c.collectSimple(k)
	case *key.KeyList:
		return c.collectList(k)
	case *key.ThresholdKey:
		return c.collectThreshold(k)
	default:
		// Unsupported and unset keys never verify
		return false
	}
}

func (c *collector) collectSimple(k *key.Simple) bool {
	if k == nil {
		return false
	}
	pair, ok := MatchPair(k, c.pairs)
	if !ok {
		return false
	}
	verifyKey := k.Bytes
	if k.Algorithm == key.AlgorithmEcdsaSecp256k1 {
		uncompressed, err := key.DecompressSecp256k1(k.Bytes)
		if err != nil {
			return false
		}
		verifyKey = uncompressed
	}
	c.arena = append(c.arena, candidate{key: k, pair: pair, verifyKey: verifyKey})
	return true
}

func (c *collector) collectList(k *key.KeyList) bool {
	if k == nil || len(k.Keys) == 0 {
		return false
	}
	mark := len(c.arena)
	for _, child := range k.Keys {
		if !c.collect(child) {
			c.arena = c.arena[:mark]
			return false
		}
	}
	return true
}

func (c *collector) collectThreshold(k *key.ThresholdKey) bool {
	if k == nil || len(k.Keys) == 0 {
		return false
	}
	mark := len(c.arena)
	numCanFail := len(k.Keys) - k.EffectiveThreshold()
	for _, child := range k.Keys {
		if c.collect(child) {
			continue
		}
		numCanFail--
		if numCanFail < 0 {
			c.arena = c.arena[:mark]
			return false
		}
	}
	return true
}

// verifications deduplicates the collected candidates by key identity and
// builds one engine request per distinct key, in collection order
func (c *collector) verifications(
	signedBytes []byte,
) (*verificationSet, error) {
	set := newVerificationSet(len(c.arena))
	for _, cand := range c.arena {
		id := cand.key.ID()
		if set.contains(id) {
			continue
		}
		sig, err := newTransactionSignature(cand, signedBytes)
		if err != nil {
			return nil, err
		}
		set.add(id, cand.key, sig)
	}
	return set, nil
}

func newTransactionSignature(
	cand candidate,
	signedBytes []byte,
) (*engine.TransactionSignature, error) {
	switch cand.pair.Algorithm {
	case key.AlgorithmEd25519, key.AlgorithmEcdsaSecp256k1:
	default:
		return nil, engine.UnexpectedAlgorithmError{Algorithm: cand.pair.Algorithm}
	}
	return engine.NewTransactionSignature(
		cand.pair.Algorithm,
		cand.pair.Signature,
		cand.verifyKey,
		signedBytes,
	), nil
}

// verificationSet maps key identities to their engine requests and keeps
// them in submission order
type verificationSet struct {
	ids  []string
	keys map[string]*key.Simple
	sigs map[string]*engine.TransactionSignature
}

func newVerificationSet(size int) *verificationSet {
	return &verificationSet{
		ids:  make([]string, 0, size),
		keys: make(map[string]*key.Simple, size),
		sigs: make(map[string]*engine.TransactionSignature, size),
	}
}

func (s *verificationSet) contains(id string) bool {
	_, ok := s.sigs[id]
	return ok
}

func (s *verificationSet) add(
	id string,
	k *key.Simple,
	sig *engine.TransactionSignature,
) {
	s.ids = append(s.ids, id)
	s.keys[id] = k
	s.sigs[id] = sig
}

func (s *verificationSet) len() int {
	return len(s.ids)
}

// batch returns the engine requests in submission order
func (s *verificationSet) batch() []*engine.TransactionSignature {
	ret := make([]*engine.TransactionSignature, 0, len(s.ids))
	for _, id := range s.ids {
		ret = append(ret, s.sigs[id])
	}
	return ret
}

// outcomes snapshots the current status of every request
func (s *verificationSet) outcomes() Outcomes {
	ret := make(Outcomes, len(s.ids))
	for _, id := range s.ids {
		ret[id] = s.sigs[id].Status()
	}
	return ret
}

// Collect returns the distinct simple keys of k that have a matching
// signature in pairs, after list and threshold rules are applied. An empty
// result means k cannot be satisfied by pairs.
func Collect(k key.Key, pairs []key.SignaturePair) []*key.Simple {
	c := newCollector(pairs)
	c.collect(k)
	seen := make(map[string]struct{}, len(c.arena))
	ret := make([]*key.Simple, 0, len(c.arena))
	for _, cand := range c.arena {
		id := cand.key.ID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ret = append(ret, cand.key)
	}
	return ret
}
