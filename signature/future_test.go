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
	"testing"
	"time"

	"github.com/blinklabs-io/gosigverify/internal/test"
	"github.com/blinklabs-io/gosigverify/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func deferredFuture(t *testing.T) (*fakeEngine, Future, key.Key) {
	t.Helper()
	keys := edKeys(0x01, 0x02)
	k := key.NewKeyList(keys[0].Public, keys[1].Public)
	pairs := []key.SignaturePair{
		keys[0].SignaturePair(-1, testBody),
		keys[1].SignaturePair(-1, testBody),
	}
	e := &fakeEngine{deferred: true}
	f, err := newVerifierFor(e).VerifyKey(context.Background(), k, testBody, pairs)
	require.NoError(t, err)
	require.Len(t, e.signatures(), 2)
	return e, f, k
}

func TestFutureWaitsForHandles(t *testing.T) {
	defer goleak.VerifyNone(t)

	e, f, k := deferredFuture(t)
	assert.False(t, f.IsDone())

	go func() {
		time.Sleep(10 * time.Millisecond)
		e.resolveAll()
	}()
	result, err := f.Get()
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Same(t, k, result.Key)
	assert.Nil(t, result.HollowAccount)
	assert.True(t, f.IsDone())
	assert.False(t, f.IsCancelled())
}

func TestFutureGetTimeoutWithoutHandles(t *testing.T) {
	defer goleak.VerifyNone(t)

	e, f, _ := deferredFuture(t)
	_, err := f.GetTimeout(5 * time.Millisecond)
	require.ErrorIs(t, err, ErrVerificationTimeout)
	assert.False(t, f.IsDone())

	// Handles exist but never resolve
	e.attach()
	_, err = f.GetTimeout(5 * time.Millisecond)
	require.ErrorIs(t, err, ErrVerificationTimeout)

	e.resolveAll()
	result, err := f.GetTimeout(time.Second)
	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestFutureWaitContextCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, f, _ := deferredFuture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFutureCancelWithoutHandles(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, f, _ := deferredFuture(t)
	// Nothing to cancel yet, so not every cancel succeeds
	assert.False(t, f.Cancel())
	assert.True(t, f.IsCancelled())
	assert.True(t, f.IsDone())
	assert.False(t, f.Cancel(), "second cancel")

	_, err := f.Get()
	assert.ErrorIs(t, err, ErrVerificationCancelled)
}

func TestFutureCancelPendingHandles(t *testing.T) {
	defer goleak.VerifyNone(t)

	e, f, _ := deferredFuture(t)
	handles := e.attach()
	require.Len(t, handles, 2)

	assert.True(t, f.Cancel())
	for _, h := range handles {
		assert.True(t, h.Cancelled())
	}
	_, err := f.GetTimeout(time.Second)
	assert.ErrorIs(t, err, ErrVerificationCancelled)
	assert.False(t, errors.Is(err, ErrVerificationTimeout))
}

func TestFutureCancelWakesWaiter(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, f, _ := deferredFuture(t)
	errCh := make(chan error, 1)
	go func() {
		_, err := f.Get()
		errCh <- err
	}()
	time.Sleep(5 * time.Millisecond)
	f.Cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrVerificationCancelled)
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken by cancel")
	}
}

func TestFutureCancelAfterDone(t *testing.T) {
	defer goleak.VerifyNone(t)

	e, f, _ := deferredFuture(t)
	e.resolveAll()
	assert.True(t, f.IsDone())

	before, err := f.Get()
	require.NoError(t, err)
	assert.False(t, f.Cancel())
	assert.False(t, f.IsCancelled())
	after, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCompletedFuture(t *testing.T) {
	f := newCompletedFuture(Result{Passed: true})
	assert.True(t, f.IsDone())
	assert.False(t, f.Cancel())
	assert.False(t, f.IsCancelled())
	result, err := f.GetTimeout(0)
	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestFutureGetTimeoutZeroWhenResolved(t *testing.T) {
	defer goleak.VerifyNone(t)

	kp := test.NewEd25519KeyPair(0x01)
	v := newVerifierFor(&fakeEngine{})
	for i := 0; i < 200; i++ {
		f, err := v.VerifyKey(
			context.Background(),
			kp.Public,
			testBody,
			[]key.SignaturePair{kp.SignaturePair(-1, testBody)},
		)
		require.NoError(t, err)
		require.True(t, f.IsDone())
		result, err := f.GetTimeout(0)
		require.NoError(t, err, "iteration %d", i)
		require.True(t, result.Passed)
	}
}

func TestFutureIdentity(t *testing.T) {
	_, f, k := deferredFuture(t)
	assert.Same(t, k, f.Key())
	assert.Nil(t, f.Account())

	account := hollowAccount(make([]byte, 20))
	done := newCompletedFuture(Result{HollowAccount: account})
	assert.Nil(t, done.Key())
	assert.Same(t, account, done.Account())
	assert.Equal(t, Result{HollowAccount: account}, failedResult(done))
	assert.Equal(t, Result{Key: k}, failedResult(f))
}
