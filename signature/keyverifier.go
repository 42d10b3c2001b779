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
	"slices"

	"github.com/blinklabs-io/gosigverify/engine"
	"github.com/blinklabs-io/gosigverify/key"
)

// KeyVerifier answers verification queries for arbitrary keys once the
// simple-key verifications of a transaction have resolved
type KeyVerifier struct {
	keys     map[string]*key.Simple
	outcomes Outcomes
}

// NewKeyVerifier waits for every future in futures, as returned by
// VerifyExpansions, and records their outcomes. Futures that fail or are
// cancelled count as invalid. An error is returned only if ctx ends first.
func NewKeyVerifier(
	ctx context.Context,
	futures map[string]Future,
) (*KeyVerifier, error) {
	kv := &KeyVerifier{
		keys:     make(map[string]*key.Simple, len(futures)),
		outcomes: make(Outcomes, len(futures)),
	}
	for id, f := range futures {
		result, err := f.Wait(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			result = failedResult(f)
		}
		status := engine.StatusInvalid
		if result.Passed {
			status = engine.StatusValid
		}
		kv.outcomes[id] = status
		if simple, ok := f.Key().(*key.Simple); ok {
			kv.keys[id] = simple
		}
	}
	return kv, nil
}

// VerificationFor evaluates k against the recorded outcomes. k may be a
// composite key.
func (kv *KeyVerifier) VerificationFor(k key.Key) Result {
	return Result{Key: k, Passed: Evaluate(k, kv.outcomes)}
}

// VerificationForAlias looks for a verified secp256k1 key whose EVM address
// equals alias. The result references the key when one is found.
func (kv *KeyVerifier) VerificationForAlias(alias []byte) Result {
	for _, k := range kv.SigningCryptoKeys() {
		if k.Algorithm != key.AlgorithmEcdsaSecp256k1 {
			continue
		}
		address, err := key.EvmAddress(k.Bytes)
		if err != nil {
			continue
		}
		if bytes.Equal(address, alias) {
			return Result{Key: k, Passed: true}
		}
	}
	return Result{Passed: false}
}

// SigningCryptoKeys returns the keys with a valid signature, sorted with
// key.Compare
func (kv *KeyVerifier) SigningCryptoKeys() []*key.Simple {
	ret := make([]*key.Simple, 0, len(kv.keys))
	for id, k := range kv.keys {
		if kv.outcomes[id] == engine.StatusValid {
			ret = append(ret, k)
		}
	}
	slices.SortFunc(ret, func(a, b *key.Simple) int {
		return key.Compare(a, b)
	})
	return ret
}

// NumSignaturesVerified returns the number of valid signatures
func (kv *KeyVerifier) NumSignaturesVerified() int {
	count := 0
	for _, status := range kv.outcomes {
		if status == engine.StatusValid {
			count++
		}
	}
	return count
}
