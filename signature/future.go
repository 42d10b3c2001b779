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
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blinklabs-io/gosigverify/engine"
	"github.com/blinklabs-io/gosigverify/key"
	"github.com/blinklabs-io/gosigverify/utils"
)

// Future is a pending verification result
type Future interface {
	// Get blocks until every underlying verification has resolved
	Get() (Result, error)
	// GetTimeout is Get with a total time budget. It returns
	// ErrVerificationTimeout if the budget runs out first.
	GetTimeout(timeout time.Duration) (Result, error)
	// Wait is Get bounded by ctx
	Wait(ctx context.Context) (Result, error)
	// Cancel attempts to cancel every underlying verification. It returns
	// true only if all of them were cancelled, and false if the future was
	// already done.
	Cancel() bool
	IsDone() bool
	IsCancelled() bool
	// Key is the key being verified. For a hollow account it is the
	// recovered key, if one matched.
	Key() key.Key
	// Account is the hollow account being verified, if any
	Account() *key.Account
}

// failedResult is a failed Result that still names what f verifies
func failedResult(f Future) Result {
	if acc := f.Account(); acc != nil {
		return Result{HollowAccount: acc}
	}
	return Result{Key: f.Key()}
}

// completedFuture is a Future whose result is known up front
type completedFuture struct {
	result Result
}

func newCompletedFuture(result Result) *completedFuture {
	return &completedFuture{result: result}
}

func (f *completedFuture) Get() (Result, error) {
	return f.result, nil
}

func (f *completedFuture) GetTimeout(time.Duration) (Result, error) {
	return f.result, nil
}

func (f *completedFuture) Wait(context.Context) (Result, error) {
	return f.result, nil
}

func (f *completedFuture) Cancel() bool      { return false }
func (f *completedFuture) IsDone() bool      { return true }
func (f *completedFuture) IsCancelled() bool { return false }

func (f *completedFuture) Key() key.Key {
	return f.result.Key
}

func (f *completedFuture) Account() *key.Account {
	return f.result.HollowAccount
}

// aggregationFuture joins a set of engine verifications and evaluates the
// key structure once all of them have resolved
type aggregationFuture struct {
	root         key.Key
	account      *key.Account
	set          *verificationSet
	pollInterval time.Duration

	mu        sync.Mutex
	result    *Result
	cancelled *utils.DoneSignal
}

func newAggregationFuture(
	root key.Key,
	account *key.Account,
	set *verificationSet,
	pollInterval time.Duration,
) *aggregationFuture {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &aggregationFuture{
		root:         root,
		account:      account,
		set:          set,
		pollInterval: pollInterval,
		cancelled:    utils.NewDoneSignal(),
	}
}

func (f *aggregationFuture) Key() key.Key {
	return f.root
}

func (f *aggregationFuture) Account() *key.Account {
	return f.account
}

func (f *aggregationFuture) Get() (Result, error) {
	return f.Wait(context.Background())
}

func (f *aggregationFuture) GetTimeout(timeout time.Duration) (Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	result, err := f.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return result, fmt.Errorf(
			"%w after %s",
			ErrVerificationTimeout,
			timeout,
		)
	}
	return result, err
}

func (f *aggregationFuture) Wait(ctx context.Context) (Result, error) {
	if result, ok, err := f.resolved(); ok {
		return result, err
	}
	if f.allResolved() {
		return f.resolve()
	}
	for _, id := range f.set.ids {
		if err := f.waitOne(ctx, f.set.sigs[id]); err != nil {
			return Result{}, err
		}
	}
	return f.resolve()
}

// waitOne blocks until sig resolves. Until the engine attaches a handle it
// sleeps for the poll interval and checks again.
func (f *aggregationFuture) waitOne(
	ctx context.Context,
	sig *engine.TransactionSignature,
) error {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		h := sig.Handle()
		if h != nil {
			if h.IsDone() {
				return nil
			}
			select {
			case <-h.Done():
				return nil
			case <-f.cancelled.Done():
				return ErrVerificationCancelled
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if timer == nil {
			timer = time.NewTimer(f.pollInterval)
		} else {
			timer.Reset(f.pollInterval)
		}
		select {
		case <-timer.C:
		case <-f.cancelled.Done():
			return ErrVerificationCancelled
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// resolved returns the cached outcome if the future is already finished
func (f *aggregationFuture) resolved() (Result, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelled.IsClosed() {
		return Result{}, true, ErrVerificationCancelled
	}
	if f.result != nil {
		return *f.result, true, nil
	}
	return Result{}, false, nil
}

func (f *aggregationFuture) resolve() (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelled.IsClosed() {
		return Result{}, ErrVerificationCancelled
	}
	if f.result == nil {
		result := f.evaluate()
		f.result = &result
	}
	return *f.result, nil
}

func (f *aggregationFuture) evaluate() Result {
	passed := Evaluate(f.root, f.set.outcomes())
	if f.account != nil {
		return Result{HollowAccount: f.account, Passed: passed}
	}
	return Result{Key: f.root, Passed: passed}
}

func (f *aggregationFuture) Cancel() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelled.IsClosed() || f.result != nil || f.allResolved() {
		return false
	}
	f.cancelled.Close()
	allCancelled := true
	for _, id := range f.set.ids {
		h := f.set.sigs[id].Handle()
		// A verification the engine has not picked up cannot be cancelled
		if h == nil || !h.Cancel() {
			allCancelled = false
		}
	}
	return allCancelled
}

func (f *aggregationFuture) IsDone() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled.IsClosed() || f.result != nil || f.allResolved()
}

func (f *aggregationFuture) IsCancelled() bool {
	return f.cancelled.IsClosed()
}

func (f *aggregationFuture) allResolved() bool {
	for _, id := range f.set.ids {
		h := f.set.sigs[id].Handle()
		if h == nil || !h.IsDone() {
			return false
		}
	}
	return true
}
