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

// Package signature decides whether a transaction's signatures satisfy a key
// structure. It matches signature pairs to simple keys by prefix, submits one
// cryptographic check per distinct key to an engine, and returns futures
// that evaluate the key structure once the checks resolve.
package signature

import (
	"context"
	"log/slog"

	"github.com/blinklabs-io/gosigverify/engine"
	"github.com/blinklabs-io/gosigverify/key"
)

// Verifier turns keys and signature pairs into verification futures
type Verifier struct {
	engine engine.Engine
	config VerifierConfig
	logger *slog.Logger
}

// NewVerifier creates a Verifier that submits its checks to e
func NewVerifier(e engine.Engine, opts ...VerifierOption) *Verifier {
	config := DefaultVerifierConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{
		engine: e,
		config: config,
		logger: logger.With("component", "signature"),
	}
}

// VerifyKey starts verifying k against pairs over signedBytes. If no
// combination of pairs could satisfy k, the returned future has already
// failed and nothing is submitted to the engine. An error is only returned
// for faults: a malformed pair or a failed submission.
func (v *Verifier) VerifyKey(
	ctx context.Context,
	k key.Key,
	signedBytes []byte,
	pairs []key.SignaturePair,
) (Future, error) {
	c := newCollector(pairs)
	c.collect(k)
	set, err := c.verifications(signedBytes)
	if err != nil {
		return nil, err
	}
	if set.len() == 0 {
		v.logger.Debug(
			"no matching signatures for key",
			"kind", kindOf(k),
			"pairs", len(pairs),
		)
		return newCompletedFuture(Result{Key: k, Passed: false}), nil
	}
	if err := v.submit(ctx, set); err != nil {
		return nil, err
	}
	v.logger.Debug(
		"submitted key verification",
		"kind", kindOf(k),
		"count", set.len(),
	)
	return newAggregationFuture(k, nil, set, v.config.PollInterval), nil
}

func (v *Verifier) submit(ctx context.Context, set *verificationSet) error {
	batch := set.batch()
	if err := v.engine.VerifyAsync(ctx, batch); err != nil {
		return &SubmitError{Count: len(batch), Err: err}
	}
	return nil
}

func kindOf(k key.Key) string {
	if k == nil {
		return "unset"
	}
	return k.Kind().String()
}
