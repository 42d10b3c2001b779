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
	"sync"
	"time"

	"github.com/blinklabs-io/gosigverify/engine"
	"github.com/blinklabs-io/gosigverify/internal/test"
	"github.com/blinklabs-io/gosigverify/key"
)

var testBody = []byte("signed transaction body")

// fakeEngine verifies synchronously with the real crypto, or, when deferred,
// records submissions without attaching handles so tests control timing
type fakeEngine struct {
	mu        sync.Mutex
	err       error
	deferred  bool
	submitted []*engine.TransactionSignature
	batches   int
}

func (e *fakeEngine) VerifyAsync(
	ctx context.Context,
	sigs []*engine.TransactionSignature,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.batches++
	e.submitted = append(e.submitted, sigs...)
	if e.deferred {
		return nil
	}
	for _, sig := range sigs {
		valid, err := engine.Verify(sig)
		h := engine.NewHandle()
		sig.Attach(h)
		h.Resolve(valid && err == nil)
	}
	return nil
}

func (e *fakeEngine) signatures() []*engine.TransactionSignature {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*engine.TransactionSignature(nil), e.submitted...)
}

// attach gives every deferred signature a pending handle
func (e *fakeEngine) attach() []*engine.Handle {
	ret := []*engine.Handle{}
	for _, sig := range e.signatures() {
		h := engine.NewHandle()
		if sig.Attach(h) {
			ret = append(ret, h)
		}
	}
	return ret
}

// resolveAll attaches and resolves every deferred signature with the real
// crypto
func (e *fakeEngine) resolveAll() {
	for _, sig := range e.signatures() {
		sig.Attach(engine.NewHandle())
		valid, err := engine.Verify(sig)
		sig.Handle().Resolve(valid && err == nil)
	}
}

// fakeKey returns an Ed25519 key whose bytes are all b
func fakeKey(b byte) *key.Simple {
	ret := make([]byte, key.Ed25519KeySize)
	for i := range ret {
		ret[i] = b
	}
	return key.NewEd25519(ret)
}

// fakePair returns a full-prefix pair for k with a dummy signature
func fakePair(k *key.Simple) key.SignaturePair {
	return key.SignaturePair{
		Prefix:    k.Bytes,
		Algorithm: k.Algorithm,
		Signature: make([]byte, 64),
	}
}

func newVerifierFor(e engine.Engine) *Verifier {
	return NewVerifier(e, WithPollInterval(100*time.Microsecond))
}

func edKeys(seeds ...byte) []*test.KeyPair {
	ret := make([]*test.KeyPair, 0, len(seeds))
	for _, seed := range seeds {
		ret = append(ret, test.NewEd25519KeyPair(seed))
	}
	return ret
}
