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

package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrPoolStopped is returned when trying to submit to a stopped pool.
var ErrPoolStopped = errors.New("engine: pool is stopped")

// ErrPoolNotStarted is returned when trying to use a pool that hasn't been started.
var ErrPoolNotStarted = errors.New("engine: pool not started")

// Pool is the default Engine. A dispatcher goroutine attaches a Handle to
// each submitted signature and hands it to a fixed set of workers, so a
// signature can be observed without a handle for a short time after
// VerifyAsync returns.
type Pool struct {
	config  PoolConfig
	logger  *slog.Logger
	metrics *PoolMetrics

	submitChan chan []*TransactionSignature
	workChan   chan *TransactionSignature

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	started  atomic.Bool
	stopped  atomic.Bool
	mu       sync.Mutex   // protects Start/Stop
	submitMu sync.RWMutex // protects VerifyAsync against concurrent Stop
}

// NewPool creates a new Pool using functional options.
//
// Example:
//
//	p := NewPool(
//	    WithWorkers(8),
//	    WithMetrics(prometheus.DefaultRegisterer),
//	)
func NewPool(opts ...PoolOption) *Pool {
	config := DefaultPoolConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}
	if config.VerifyFunc == nil {
		config.VerifyFunc = Verify
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		config:  config,
		logger:  logger.With("component", "engine"),
		metrics: NewPoolMetrics(),
	}
}

// Start starts the dispatcher and workers.
// This method is idempotent - calling it multiple times has no effect.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped.Load() {
		return ErrPoolStopped
	}
	if p.started.Load() {
		return nil
	}

	if p.config.Registerer != nil {
		if err := p.config.Registerer.Register(newMetricsCollector(p.metrics)); err != nil {
			var alreadyRegistered prometheus.AlreadyRegisteredError
			if !errors.As(err, &alreadyRegistered) {
				return err
			}
		}
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.submitChan = make(chan []*TransactionSignature, p.config.QueueSize)
	p.workChan = make(chan *TransactionSignature, p.config.QueueSize)

	p.wg.Add(1)
	go p.dispatcher() //nolint:contextcheck
	for i := 0; i < p.config.Workers; i++ {
		p.wg.Add(1)
		go p.worker() //nolint:contextcheck
	}

	p.started.Store(true)
	p.logger.Debug(
		"verification pool started",
		"workers", p.config.Workers,
		"queue_size", p.config.QueueSize,
	)
	return nil
}

// Stop stops the pool and waits for all goroutines to exit. Signatures that
// were submitted but not yet verified are cancelled so nobody waits on them
// forever.
func (p *Pool) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped.Swap(true) {
		return nil
	}
	if !p.started.Load() {
		return nil
	}

	// Cancel first so a VerifyAsync blocked on a full queue returns
	p.cancel()
	p.submitMu.Lock()
	defer p.submitMu.Unlock()

	p.wg.Wait()
	p.drain()
	p.logger.Debug("verification pool stopped")
	return nil
}

// VerifyAsync queues sigs for verification. It blocks only while the
// submission queue is full.
func (p *Pool) VerifyAsync(
	ctx context.Context,
	sigs []*TransactionSignature,
) error {
	if len(sigs) == 0 {
		return nil
	}

	p.submitMu.RLock()
	defer p.submitMu.RUnlock()

	if p.stopped.Load() {
		return ErrPoolStopped
	}
	if !p.started.Load() {
		return ErrPoolNotStarted
	}

	select {
	case p.submitChan <- sigs:
		p.metrics.RecordSubmit(len(sigs))
		p.logger.Debug("verification batch submitted", "count", len(sigs))
		return nil
	case <-p.ctx.Done():
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns the current pool statistics.
func (p *Pool) Stats() PoolStats {
	return p.metrics.Stats()
}

func (p *Pool) dispatcher() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case batch := <-p.submitChan:
			for i, sig := range batch {
				if !sig.Attach(NewHandle()) {
					p.metrics.RecordSkip()
					continue
				}
				select {
				case p.workChan <- sig:
				case <-p.ctx.Done():
					if sig.Handle().Cancel() {
						p.metrics.RecordCancel()
					} else {
						p.metrics.RecordSkip()
					}
					p.cancelAll(batch[i+1:])
					return
				}
			}
		}
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case sig := <-p.workChan:
			p.process(sig)
		}
	}
}

func (p *Pool) process(sig *TransactionSignature) {
	handle := sig.Handle()
	if handle.IsDone() {
		// Cancelled by the caller before a worker got to it
		p.metrics.RecordCancel()
		return
	}
	valid, err := p.config.VerifyFunc(sig)
	if err != nil {
		p.logger.Warn(
			"malformed verification request",
			"algorithm", sig.Algorithm().String(),
			"error", err,
		)
		valid = false
	}
	if !handle.Resolve(valid) {
		// Lost the race with Cancel
		p.metrics.RecordCancel()
		return
	}
	p.metrics.RecordResult(valid, err)
}

// drain cancels everything still queued after the goroutines have exited
func (p *Pool) drain() {
	for {
		select {
		case batch := <-p.submitChan:
			p.cancelAll(batch)
		case sig := <-p.workChan:
			if sig.Handle().Cancel() {
				p.metrics.RecordCancel()
			} else {
				p.metrics.RecordSkip()
			}
		default:
			return
		}
	}
}

// cancelAll cancels signatures that never reached a worker. Signatures that
// already carry a handle belong to an earlier submission and are left alone.
func (p *Pool) cancelAll(sigs []*TransactionSignature) {
	for _, sig := range sigs {
		handle := NewHandle()
		if !sig.Attach(handle) {
			p.metrics.RecordSkip()
			continue
		}
		handle.Cancel()
		p.metrics.RecordCancel()
	}
}
