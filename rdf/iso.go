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

package rdf

// An IsoMap is a one-to-one relation between blank node labels on the left
// side of a comparison and labels on the right side. It's built up as
// structures are compared, so that two patterns that differ only by a
// consistent renaming of blank nodes compare equal.
//
// An IsoMap is not safe for concurrent use.
type IsoMap struct {
	fwd  map[string]string
	back map[string]string
}

// NewIsoMap returns an empty IsoMap.
func NewIsoMap() *IsoMap {
	return &IsoMap{
		fwd:  make(map[string]string),
		back: make(map[string]string),
	}
}

// Relate records that left corresponds to right. It returns false without
// changing the map if either label is already related to some other label.
func (iso *IsoMap) Relate(left, right string) bool {
	r, haveLeft := iso.fwd[left]
	l, haveRight := iso.back[right]
	switch {
	case haveLeft && haveRight:
		return r == right && l == left
	case haveLeft || haveRight:
		return false
	}
	iso.fwd[left] = right
	iso.back[right] = left
	return true
}

// Match returns true if a and b are related by the map, extending it with a
// new pair if neither node has been seen before.
func (iso *IsoMap) Match(a, b *BlankNode) bool {
	return iso.Relate(a.Label, b.Label)
}

// Lookup returns the right-side label related to the given left-side label.
func (iso *IsoMap) Lookup(left string) (string, bool) {
	r, ok := iso.fwd[left]
	return r, ok
}

// Len returns the number of related pairs.
func (iso *IsoMap) Len() int {
	return len(iso.fwd)
}

// Clone returns an independent copy of the map. Comparisons that may need to
// backtrack use this to try alternatives.
func (iso *IsoMap) Clone() *IsoMap {
	c := NewIsoMap()
	for l, r := range iso.fwd {
		c.fwd[l] = r
		c.back[r] = l
	}
	return c
}
