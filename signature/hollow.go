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
	"bytes"
	"context"

	"github.com/blinklabs-io/gosigverify/key"
)

// HollowFuture is the Future for a hollow account. Its result references
// the account rather than a key.
type HollowFuture struct {
	Future
	recovered *key.Simple
}

// RecoveredKey returns the key whose address matched the account alias, or
// nil if no signature pair matched
func (f *HollowFuture) RecoveredKey() *key.Simple {
	return f.recovered
}

// VerifyHollowAccount recovers the key of a hollow account from pairs and
// verifies its signature over signedBytes. The first ECDSA(secp256k1) pair
// whose full compressed prefix derives to the account alias is used. If the
// account is not hollow or no pair matches, the returned future has already
// failed.
func (v *Verifier) VerifyHollowAccount(
	ctx context.Context,
	account *key.Account,
	signedBytes []byte,
	pairs []key.SignaturePair,
) (*HollowFuture, error) {
	failed := &HollowFuture{
		Future: newCompletedFuture(Result{HollowAccount: account, Passed: false}),
	}
	if !account.IsHollow() {
		v.logger.Debug("account is not hollow", "account", account.String())
		return failed, nil
	}
	recovered, pair, ok := recoverHollowKey(account.Alias, pairs)
	if !ok {
		v.logger.Debug(
			"no signature matches hollow account alias",
			"account", account.String(),
		)
		return failed, nil
	}
	c := newCollector([]key.SignaturePair{pair})
	c.collect(recovered)
	set, err := c.verifications(signedBytes)
	if err != nil {
		return nil, err
	}
	if err := v.submit(ctx, set); err != nil {
		return nil, err
	}
	v.logger.Debug(
		"submitted hollow account verification",
		"account", account.String(),
		"key_hash", recovered.Hash(),
	)
	return &HollowFuture{
		Future: newAggregationFuture(
			recovered,
			account,
			set,
			v.config.PollInterval,
		),
		recovered: recovered,
	}, nil
}

// recoverHollowKey finds the first ECDSA(secp256k1) pair whose prefix is a
// full compressed key with the given EVM address. Prefixes that do not
// decompress are skipped.
func recoverHollowKey(
	alias []byte,
	pairs []key.SignaturePair,
) (*key.Simple, key.SignaturePair, bool) {
	for _, pair := range pairs {
		if pair.Algorithm != key.AlgorithmEcdsaSecp256k1 || !pair.IsFullPrefix() {
			continue
		}
		address, err := key.EvmAddress(pair.Prefix)
		if err != nil {
			continue
		}
		if bytes.Equal(address, alias) {
			return key.NewEcdsaSecp256k1(pair.Prefix), pair, true
		}
	}
	return nil, key.SignaturePair{}, false
}
