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
	"errors"
	"fmt"
)

var (
	// ErrVerificationTimeout is returned when a timed wait runs out of budget
	// before every verification has resolved. It is distinct from a failed
	// verification.
	ErrVerificationTimeout = errors.New("signature verification timed out")

	// ErrVerificationCancelled is returned by Get on a cancelled future
	ErrVerificationCancelled = errors.New("signature verification cancelled")
)

// SubmitError wraps an error returned by the engine when a batch of
// verifications could not be submitted
type SubmitError struct {
	Count int
	Err   error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf(
		"failed to submit %d signature verification(s): %s",
		e.Count,
		e.Err,
	)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
