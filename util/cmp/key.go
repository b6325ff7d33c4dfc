// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmp defines the Key interface used to give algebra and expression
// nodes a canonical, comparable identity.
package cmp

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Key is implemented by objects that can serialize their identity.
type Key interface {
	// Key writes a serialization of the object's identity to the given
	// strings.Builder. This serialization should be optimized for machine
	// consumption. However, it should also be human-readable to make debugging
	// and unit testing easier.
	Key(*strings.Builder)
}

// GetKey returns the serialized identity of the given object.
func GetKey(object Key) string {
	var b strings.Builder
	object.Key(&b)
	return b.String()
}

// HashKey returns a 64-bit hash of the object's serialized identity. Two
// objects with equal keys always have equal hashes.
func HashKey(object Key) uint64 {
	return xxhash.Sum64String(GetKey(object))
}

// KeyFunc adapts a function that writes a serialization to the Key
// interface.
type KeyFunc func(b *strings.Builder)

// Key implements Key by calling f.
func (f KeyFunc) Key(b *strings.Builder) {
	f(b)
}

// KeysEqual returns true if both objects serialize to the same key.
func KeysEqual(a, b Key) bool {
	return GetKey(a) == GetKey(b)
}
