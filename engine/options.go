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
	"log/slog"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultQueueSize is the default buffer size for pending verifications
const DefaultQueueSize = 1024

// PoolConfig holds configuration for a Pool.
type PoolConfig struct {
	// Workers is the number of parallel verification workers.
	Workers int
	// QueueSize is the buffer size for the submission and work channels.
	QueueSize int
	// Logger receives debug and warning logs. Defaults to slog.Default().
	Logger *slog.Logger
	// Registerer, if set, receives the pool's Prometheus collector on Start.
	Registerer prometheus.Registerer
	// VerifyFunc performs the cryptographic check. Defaults to Verify.
	VerifyFunc VerifyFunc
}

// DefaultPoolConfig returns a PoolConfig with one worker per CPU
func DefaultPoolConfig() PoolConfig {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	return PoolConfig{
		Workers:    workers,
		QueueSize:  DefaultQueueSize,
		VerifyFunc: Verify,
	}
}

// PoolOption is a functional option for configuring a Pool.
type PoolOption func(*PoolConfig)

// WithConfig applies a complete PoolConfig, replacing all default values.
// Options applied after WithConfig still override the config values.
func WithConfig(config PoolConfig) PoolOption {
	return func(c *PoolConfig) {
		*c = config
	}
}

// WithWorkers sets the number of verification workers.
func WithWorkers(n int) PoolOption {
	return func(c *PoolConfig) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithQueueSize sets the channel buffer size.
func WithQueueSize(size int) PoolOption {
	return func(c *PoolConfig) {
		if size > 0 {
			c.QueueSize = size
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) PoolOption {
	return func(c *PoolConfig) {
		c.Logger = logger
	}
}

// WithMetrics registers the pool's Prometheus collector with reg.
func WithMetrics(reg prometheus.Registerer) PoolOption {
	return func(c *PoolConfig) {
		c.Registerer = reg
	}
}

// WithVerifyFunc replaces the cryptographic check.
// A nil function is ignored.
func WithVerifyFunc(fn VerifyFunc) PoolOption {
	return func(c *PoolConfig) {
		if fn != nil {
			c.VerifyFunc = fn
		}
	}
}
