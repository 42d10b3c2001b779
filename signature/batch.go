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
	"time"

	"github.com/blinklabs-io/gosigverify/utils"
)

// BatchResult is the transaction-level outcome of a TransactionSignatures
type BatchResult struct {
	Payer    Result
	NonPayer []Result
	Hollow   []Result
	Passed   bool
}

// TransactionSignatures joins the payer, non-payer and hollow account
// futures of one transaction. Members are awaited in that order; once one
// fails the rest are cancelled instead of awaited.
//
// IsDone reports true only once every member is done, or the batch itself
// was cancelled.
type TransactionSignatures struct {
	payer     Future
	nonPayer  []Future
	hollow    []Future
	cancelled *utils.DoneSignal
}

// NewTransactionSignatures creates a batch. A nil payer counts as a failed
// verification.
func NewTransactionSignatures(
	payer Future,
	nonPayer []Future,
	hollow []Future,
) *TransactionSignatures {
	if payer == nil {
		payer = newCompletedFuture(Result{Passed: false})
	}
	return &TransactionSignatures{
		payer:     payer,
		nonPayer:  nonPayer,
		hollow:    hollow,
		cancelled: utils.NewDoneSignal(),
	}
}

func (t *TransactionSignatures) Get() (BatchResult, error) {
	return t.Wait(context.Background())
}

func (t *TransactionSignatures) GetTimeout(
	timeout time.Duration,
) (BatchResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	result, err := t.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return result, fmt.Errorf(
			"%w after %s",
			ErrVerificationTimeout,
			timeout,
		)
	}
	return result, err
}

func (t *TransactionSignatures) Wait(ctx context.Context) (BatchResult, error) {
	if t.cancelled.IsClosed() {
		return BatchResult{}, ErrVerificationCancelled
	}
	ret := BatchResult{
		NonPayer: make([]Result, 0, len(t.nonPayer)),
		Hollow:   make([]Result, 0, len(t.hollow)),
		Passed:   true,
	}
	collect := func(f Future) (Result, error) {
		if !ret.Passed {
			return settle(f), nil
		}
		result, err := f.Wait(ctx)
		if err != nil {
			if !errors.Is(err, ErrVerificationCancelled) {
				return Result{}, err
			}
			result = failedResult(f)
		}
		if !result.Passed {
			ret.Passed = false
		}
		return result, nil
	}
	var err error
	if ret.Payer, err = collect(t.payer); err != nil {
		return BatchResult{}, err
	}
	for _, f := range t.nonPayer {
		result, err := collect(f)
		if err != nil {
			return BatchResult{}, err
		}
		ret.NonPayer = append(ret.NonPayer, result)
	}
	for _, f := range t.hollow {
		result, err := collect(f)
		if err != nil {
			return BatchResult{}, err
		}
		ret.Hollow = append(ret.Hollow, result)
	}
	return ret, nil
}

// settle returns the result of f if it is already available and cancels it
// otherwise. It never blocks on outstanding verifications.
func settle(f Future) Result {
	if !f.IsDone() {
		f.Cancel()
	}
	if f.IsCancelled() {
		return failedResult(f)
	}
	result, err := f.Get()
	if err != nil {
		return failedResult(f)
	}
	return result
}

// Cancel cancels every member that is not done yet. It returns false if the
// batch was already done, and otherwise true only if every member cancel
// succeeded.
func (t *TransactionSignatures) Cancel() bool {
	if t.IsDone() || !t.cancelled.Close() {
		return false
	}
	allCancelled := true
	for _, f := range t.members() {
		if f.IsDone() {
			continue
		}
		if !f.Cancel() {
			allCancelled = false
		}
	}
	return allCancelled
}

func (t *TransactionSignatures) IsDone() bool {
	if t.cancelled.IsClosed() {
		return true
	}
	for _, f := range t.members() {
		if !f.IsDone() {
			return false
		}
	}
	return true
}

func (t *TransactionSignatures) IsCancelled() bool {
	return t.cancelled.IsClosed()
}

func (t *TransactionSignatures) members() []Future {
	ret := make([]Future, 0, 1+len(t.nonPayer)+len(t.hollow))
	ret = append(ret, t.payer)
	ret = append(ret, t.nonPayer...)
	ret = append(ret, t.hollow...)
	return ret
}
