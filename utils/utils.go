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

// Package utils provides small concurrency helpers
package utils

import (
	"sync"
)

// DoneSignal is a channel that is closed at most once and can be observed by
// any number of goroutines
type DoneSignal struct {
	closeCh chan struct{}
	once    sync.Once
}

func NewDoneSignal() *DoneSignal {
	return &DoneSignal{
		closeCh: make(chan struct{}),
	}
}

// Close closes the channel. It reports whether this call did the closing.
func (d *DoneSignal) Close() bool {
	closed := false
	d.once.Do(func() {
		close(d.closeCh)
		closed = true
	})
	return closed
}

// Done returns the channel that is closed by Close
func (d *DoneSignal) Done() <-chan struct{} {
	return d.closeCh
}

// IsClosed reports whether Close has been called
func (d *DoneSignal) IsClosed() bool {
	select {
	case <-d.closeCh:
		return true
	default:
		return false
	}
}
