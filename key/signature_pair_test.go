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

package key

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignaturePairMatches(t *testing.T) {
	k := NewEd25519([]byte{0xaa, 0xbb, 0xcc})
	assert.True(t, NewEd25519Pair([]byte{0xaa}, nil).Matches(k))
	assert.True(t, NewEd25519Pair([]byte{0xaa, 0xbb, 0xcc}, nil).Matches(k))
	assert.True(t, NewEd25519Pair(nil, nil).Matches(k))
	assert.False(t, NewEd25519Pair([]byte{0xbb}, nil).Matches(k))
	assert.False(t, NewEd25519Pair([]byte{0xaa, 0xbb, 0xcc, 0xdd}, nil).Matches(k))
	assert.False(t, NewEcdsaSecp256k1Pair([]byte{0xaa}, nil).Matches(k))
	assert.False(t, NewEd25519Pair([]byte{0xaa}, nil).Matches(nil))
}

func TestSignaturePairIsFullPrefix(t *testing.T) {
	assert.True(t, NewEd25519Pair(bytes.Repeat([]byte{0x01}, 32), nil).IsFullPrefix())
	assert.False(t, NewEd25519Pair(bytes.Repeat([]byte{0x01}, 31), nil).IsFullPrefix())
	assert.True(t, NewEcdsaSecp256k1Pair(bytes.Repeat([]byte{0x01}, 33), nil).IsFullPrefix())
	assert.False(t, NewEcdsaSecp256k1Pair(bytes.Repeat([]byte{0x01}, 32), nil).IsFullPrefix())
	assert.False(t, SignaturePair{Prefix: bytes.Repeat([]byte{0x01}, 32)}.IsFullPrefix())
}
