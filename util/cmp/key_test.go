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

package cmp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedKey string

func (k fixedKey) Key(b *strings.Builder) {
	b.WriteString(string(k))
}

func Test_GetKey(t *testing.T) {
	assert.Equal(t, "", GetKey(fixedKey("")))
	assert.Equal(t, "?foo", GetKey(fixedKey("?foo")))
}

func Test_HashKey(t *testing.T) {
	keys := []string{"", "a", "abba", "alice", "bob", "eve", "zebra", "zzzzzz"}
	seen := make(map[uint64]string)
	for _, k := range keys {
		h := HashKey(fixedKey(k))
		assert.Equal(t, h, HashKey(fixedKey(k)), "hash of %q should be stable", k)
		if prev, exists := seen[h]; exists {
			t.Errorf("hash collision between %q and %q", prev, k)
		}
		seen[h] = k
	}
}

func Test_KeyFunc(t *testing.T) {
	key := KeyFunc(func(b *strings.Builder) {
		b.WriteString("?s ")
		b.WriteString("<p>")
	})
	assert.Equal(t, "?s <p>", GetKey(key))
	assert.Equal(t, HashKey(fixedKey("?s <p>")), HashKey(key))
}

func Test_KeysEqual(t *testing.T) {
	assert.True(t, KeysEqual(fixedKey("x"), fixedKey("x")))
	assert.False(t, KeysEqual(fixedKey("x"), fixedKey("y")))
}
