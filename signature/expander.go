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
	"context"

	"github.com/blinklabs-io/gosigverify/key"
)

// Expansion is a simple key paired with the signature that may verify it.
// Account is set when the key was recovered for a hollow account.
type Expansion struct {
	Key     *key.Simple
	Pair    key.SignaturePair
	Account *key.Account
}

// ExpandFullPrefixes returns the keys of every pair whose prefix is a
// complete public key, in input order. A key named by more than one pair
// keeps the first. secp256k1 prefixes that are not valid compressed points
// are dropped.
func ExpandFullPrefixes(pairs []key.SignaturePair) []Expansion {
	seen := make(map[string]struct{}, len(pairs))
	ret := make([]Expansion, 0, len(pairs))
	for _, pair := range pairs {
		if !pair.IsFullPrefix() {
			continue
		}
		var k *key.Simple
		switch pair.Algorithm {
		case key.AlgorithmEd25519:
			k = key.NewEd25519(pair.Prefix)
		case key.AlgorithmEcdsaSecp256k1:
			if _, err := key.DecompressSecp256k1(pair.Prefix); err != nil {
				continue
			}
			k = key.NewEcdsaSecp256k1(pair.Prefix)
		default:
			continue
		}
		id := k.ID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ret = append(ret, Expansion{Key: k, Pair: pair})
	}
	return ret
}

// ExpandKey returns an expansion for every simple key within k that some
// pair matches, full or partial prefix alike, in depth-first order. Whether
// k as a whole can be satisfied does not matter. A key appearing more than
// once is expanded once.
func ExpandKey(k key.Key, pairs []key.SignaturePair) []Expansion {
	if len(pairs) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	var ret []Expansion
	var walk func(k key.Key)
	walk = func(k key.Key) {
		switch k := k.(type) {
		case *key.Simple:
			if k == nil {
				return
			}
			pair, ok := MatchPair(k, pairs)
			if !ok {
				return
			}
			if k.Algorithm == key.AlgorithmEcdsaSecp256k1 {
				if _, err := key.DecompressSecp256k1(k.Bytes); err != nil {
					return
				}
			}
			id := k.ID()
			if _, ok := seen[id]; ok {
				return
			}
			seen[id] = struct{}{}
			ret = append(ret, Expansion{Key: k, Pair: pair})
		case *key.KeyList:
			if k == nil {
				return
			}
			for _, child := range k.Keys {
				walk(child)
			}
		case *key.ThresholdKey:
			if k == nil {
				return
			}
			for _, child := range k.Keys {
				walk(child)
			}
		}
	}
	walk(k)
	return ret
}

// ExpandHollow returns the expansion for a hollow account, using the first
// secp256k1 full-prefix pair whose address is the account alias. It returns
// nil if the account is not hollow or no pair matches.
func ExpandHollow(account *key.Account, pairs []key.SignaturePair) []Expansion {
	if !account.IsHollow() {
		return nil
	}
	recovered, pair, ok := recoverHollowKey(account.Alias, pairs)
	if !ok {
		return nil
	}
	return []Expansion{{Key: recovered, Pair: pair, Account: account}}
}

// VerifyFullPrefixes eagerly verifies every key named by a full-prefix pair,
// without knowing which keys the transaction requires. All checks go to the
// engine in one batch. The returned futures are keyed by key.Simple.ID.
func (v *Verifier) VerifyFullPrefixes(
	ctx context.Context,
	signedBytes []byte,
	pairs []key.SignaturePair,
) (map[string]Future, error) {
	return v.VerifyExpansions(ctx, signedBytes, ExpandFullPrefixes(pairs))
}

// VerifyExpansions verifies each expansion's key against its own pair, for
// instance the combined output of ExpandFullPrefixes, ExpandKey and
// ExpandHollow. All checks go to the engine in one batch. The returned
// futures are keyed by key.Simple.ID and a key expanded more than once keeps
// its first expansion.
func (v *Verifier) VerifyExpansions(
	ctx context.Context,
	signedBytes []byte,
	expansions []Expansion,
) (map[string]Future, error) {
	ret := make(map[string]Future, len(expansions))
	if len(expansions) == 0 {
		return ret, nil
	}
	all := newVerificationSet(len(expansions))
	for _, exp := range expansions {
		if exp.Key == nil {
			continue
		}
		id := exp.Key.ID()
		if _, ok := ret[id]; ok {
			continue
		}
		c := newCollector([]key.SignaturePair{exp.Pair})
		c.collect(exp.Key)
		set, err := c.verifications(signedBytes)
		if err != nil {
			return nil, err
		}
		for _, sid := range set.ids {
			all.add(sid, set.keys[sid], set.sigs[sid])
		}
		ret[id] = newAggregationFuture(
			exp.Key,
			exp.Account,
			set,
			v.config.PollInterval,
		)
	}
	if err := v.submit(ctx, all); err != nil {
		return nil, err
	}
	v.logger.Debug("submitted expanded key verifications", "count", all.len())
	return ret, nil
}
