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

// Package engine is the asynchronous cryptographic verification boundary.
// Callers submit batches of TransactionSignature values; the engine attaches
// a Handle to each one and later resolves it as valid or invalid.
package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/blinklabs-io/gosigverify/key"
)

// Status is the verification outcome of a single signature
type Status uint32

const (
	StatusPending Status = iota
	StatusValid
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "pending"
	}
}

// TransactionSignature is one verification request. The signature, public
// key and message live in a single buffer and are addressed by offset and
// length so the engine never copies them.
type TransactionSignature struct {
	contents        []byte
	signatureOffset int
	signatureLength int
	publicKeyOffset int
	publicKeyLength int
	messageOffset   int
	messageLength   int
	algorithm       key.Algorithm
	handle          atomic.Pointer[Handle]
}

// NewTransactionSignature lays out sig ++ pubKey ++ msg in one buffer
func NewTransactionSignature(
	algorithm key.Algorithm,
	sig []byte,
	pubKey []byte,
	msg []byte,
) *TransactionSignature {
	contents := make([]byte, 0, len(sig)+len(pubKey)+len(msg))
	contents = append(contents, sig...)
	contents = append(contents, pubKey...)
	contents = append(contents, msg...)
	return &TransactionSignature{
		contents:        contents,
		signatureOffset: 0,
		signatureLength: len(sig),
		publicKeyOffset: len(sig),
		publicKeyLength: len(pubKey),
		messageOffset:   len(sig) + len(pubKey),
		messageLength:   len(msg),
		algorithm:       algorithm,
	}
}

// Contents returns the backing buffer
func (t *TransactionSignature) Contents() []byte {
	return t.contents
}

func (t *TransactionSignature) Signature() []byte {
	return t.contents[t.signatureOffset : t.signatureOffset+t.signatureLength]
}

func (t *TransactionSignature) PublicKey() []byte {
	return t.contents[t.publicKeyOffset : t.publicKeyOffset+t.publicKeyLength]
}

func (t *TransactionSignature) Message() []byte {
	return t.contents[t.messageOffset : t.messageOffset+t.messageLength]
}

func (t *TransactionSignature) Algorithm() key.Algorithm {
	return t.algorithm
}

// Handle returns the completion handle, or nil if the engine has not picked
// up the signature yet
func (t *TransactionSignature) Handle() *Handle {
	return t.handle.Load()
}

// Attach sets the completion handle. Only the first call has any effect;
// it returns false if a handle was already attached.
func (t *TransactionSignature) Attach(h *Handle) bool {
	return t.handle.CompareAndSwap(nil, h)
}

// Status returns the current outcome. A signature without a handle is
// pending.
func (t *TransactionSignature) Status() Status {
	h := t.handle.Load()
	if h == nil {
		return StatusPending
	}
	return h.Status()
}

// Handle is a one-shot completion for a single verification
type Handle struct {
	done      chan struct{}
	once      sync.Once
	status    atomic.Uint32
	cancelled atomic.Bool
}

func NewHandle() *Handle {
	return &Handle{
		done: make(chan struct{}),
	}
}

// Done is closed once the handle is resolved or cancelled
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// IsDone reports whether the handle has been resolved or cancelled
func (h *Handle) IsDone() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

func (h *Handle) Status() Status {
	return Status(h.status.Load())
}

// Cancelled reports whether the handle was resolved by Cancel
func (h *Handle) Cancelled() bool {
	return h.cancelled.Load()
}

// Resolve records the outcome. It returns false if the handle was already
// resolved or cancelled.
func (h *Handle) Resolve(valid bool) bool {
	status := StatusInvalid
	if valid {
		status = StatusValid
	}
	return h.finish(status, false)
}

// Cancel resolves the handle as invalid and marks it cancelled. It returns
// false if the handle had already completed.
func (h *Handle) Cancel() bool {
	return h.finish(StatusInvalid, true)
}

func (h *Handle) finish(status Status, cancelled bool) bool {
	finished := false
	h.once.Do(func() {
		h.cancelled.Store(cancelled)
		h.status.Store(uint32(status))
		close(h.done)
		finished = true
	})
	return finished
}

// Wait blocks until the handle completes or ctx is done
func (h *Handle) Wait(ctx context.Context) (Status, error) {
	select {
	case <-h.done:
		return h.Status(), nil
	case <-ctx.Done():
		return StatusPending, ctx.Err()
	}
}

// Engine verifies signatures asynchronously. VerifyAsync must not block on
// the verification itself; each signature's Handle is attached and resolved
// by the engine.
type Engine interface {
	VerifyAsync(ctx context.Context, sigs []*TransactionSignature) error
}
