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
	"log/slog"
	"time"
)

// DefaultPollInterval is how long a waiter sleeps before checking again for
// a verification the engine has not picked up yet
const DefaultPollInterval = time.Millisecond

// VerifierConfig holds configuration for a Verifier.
type VerifierConfig struct {
	// Logger receives debug logs. Defaults to slog.Default().
	Logger *slog.Logger
	// PollInterval bounds each sleep while waiting for a handle to appear.
	PollInterval time.Duration
}

func DefaultVerifierConfig() VerifierConfig {
	return VerifierConfig{
		PollInterval: DefaultPollInterval,
	}
}

// VerifierOption is a functional option for configuring a Verifier.
type VerifierOption func(*VerifierConfig)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) VerifierOption {
	return func(c *VerifierConfig) {
		c.Logger = logger
	}
}

// WithPollInterval sets the sleep used while a verification has no handle.
// Non-positive values are ignored.
func WithPollInterval(interval time.Duration) VerifierOption {
	return func(c *VerifierConfig) {
		if interval > 0 {
			c.PollInterval = interval
		}
	}
}
