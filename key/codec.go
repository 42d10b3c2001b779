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
	"errors"
	"fmt"

	"github.com/blinklabs-io/gosigverify/cbor"
)

// Key trees are encoded as CBOR lists whose first item identifies the
// variant:
//
//	[0, algorithm, bytes]
//	[1, [key, ...]]
//	[2, threshold, [key, ...]]
//	[3, reason]
const (
	keyTypeSimple       = 0
	keyTypeKeyList      = 1
	keyTypeThresholdKey = 2
	keyTypeUnsupported  = 3
)

// MaxDepth bounds the nesting of encoded key trees
const MaxDepth = 32

var ErrKeyTooDeep = errors.New("key structure exceeds maximum depth")

type simpleCbor struct {
	cbor.StructAsArray
	Type      uint
	Algorithm uint8
	Bytes     []byte
}

type keyListCbor struct {
	cbor.StructAsArray
	Type uint
	Keys []cbor.RawMessage
}

type thresholdKeyCbor struct {
	cbor.StructAsArray
	Type      uint
	Threshold int64
	Keys      []cbor.RawMessage
}

type unsupportedCbor struct {
	cbor.StructAsArray
	Type   uint
	Reason uint8
}

// Marshal encodes a key tree to CBOR
func Marshal(k Key) ([]byte, error) {
	return marshal(k, 0)
}

func marshal(k Key, depth int) ([]byte, error) {
	if depth > MaxDepth {
		return nil, ErrKeyTooDeep
	}
	// A typed nil pointer encodes as unset
	switch k := normalize(k).(type) {
	case nil:
		return cbor.Encode(
			&unsupportedCbor{Type: keyTypeUnsupported, Reason: uint8(ReasonUnset)},
		)
	case *Simple:
		return cbor.Encode(
			&simpleCbor{
				Type:      keyTypeSimple,
				Algorithm: uint8(k.Algorithm),
				Bytes:     k.Bytes,
			},
		)
	case *KeyList:
		children, err := marshalChildren(k.Keys, depth)
		if err != nil {
			return nil, err
		}
		return cbor.Encode(&keyListCbor{Type: keyTypeKeyList, Keys: children})
	case *ThresholdKey:
		children, err := marshalChildren(k.Keys, depth)
		if err != nil {
			return nil, err
		}
		return cbor.Encode(
			&thresholdKeyCbor{
				Type:      keyTypeThresholdKey,
				Threshold: int64(k.Threshold),
				Keys:      children,
			},
		)
	case *Unsupported:
		return cbor.Encode(
			&unsupportedCbor{Type: keyTypeUnsupported, Reason: uint8(k.Reason)},
		)
	default:
		return nil, fmt.Errorf("unknown key type %T", k)
	}
}

func marshalChildren(keys []Key, depth int) ([]cbor.RawMessage, error) {
	ret := make([]cbor.RawMessage, 0, len(keys))
	for _, child := range keys {
		data, err := marshal(child, depth+1)
		if err != nil {
			return nil, err
		}
		ret = append(ret, data)
	}
	return ret, nil
}

// Unmarshal decodes a key tree produced by Marshal
func Unmarshal(data []byte) (Key, error) {
	return unmarshal(data, 0)
}

func unmarshal(data []byte, depth int) (Key, error) {
	if depth > MaxDepth {
		return nil, ErrKeyTooDeep
	}
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, err
	}
	switch id {
	case keyTypeSimple:
		var tmp simpleCbor
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return nil, err
		}
		return &Simple{Algorithm: Algorithm(tmp.Algorithm), Bytes: tmp.Bytes}, nil
	case keyTypeKeyList:
		var tmp keyListCbor
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return nil, err
		}
		children, err := unmarshalChildren(tmp.Keys, depth)
		if err != nil {
			return nil, err
		}
		return &KeyList{Keys: children}, nil
	case keyTypeThresholdKey:
		var tmp thresholdKeyCbor
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return nil, err
		}
		children, err := unmarshalChildren(tmp.Keys, depth)
		if err != nil {
			return nil, err
		}
		return &ThresholdKey{Threshold: int(tmp.Threshold), Keys: children}, nil
	case keyTypeUnsupported:
		var tmp unsupportedCbor
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return nil, err
		}
		return &Unsupported{Reason: UnsupportedReason(tmp.Reason)}, nil
	default:
		return nil, fmt.Errorf("unknown key type %d", id)
	}
}

func unmarshalChildren(items []cbor.RawMessage, depth int) ([]Key, error) {
	ret := make([]Key, 0, len(items))
	for _, item := range items {
		child, err := unmarshal(item, depth+1)
		if err != nil {
			return nil, err
		}
		ret = append(ret, child)
	}
	return ret, nil
}
