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

package algebra

import (
	"sort"
	"strings"
)

// A VarSet is a set of variable names. It's represented as a sorted slice of
// unique names, without the leading '?'.
type VarSet []string

// NewVarSet creates a new VarSet from the given names, which may contain
// duplicates.
func NewVarSet(names ...string) VarSet {
	set := make(VarSet, len(names))
	copy(set, names)
	sort.Strings(set)
	out := set[:0]
	for i, name := range set {
		if i > 0 && name == set[i-1] {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Contains returns true if name is in the set, false otherwise.
func (set VarSet) Contains(name string) bool {
	i := sort.SearchStrings(set, name)
	return i < len(set) && set[i] == name
}

// ContainsSet return true if all variables in 'other' are in 'set', false
// otherwise.
func (set VarSet) ContainsSet(other VarSet) bool {
	for _, v := range other {
		if !set.Contains(v) {
			return false
		}
	}
	return true
}

// Intersect returns a new set with the variables present in both 'set' and
// 'other'.
func (set VarSet) Intersect(other VarSet) VarSet {
	var both VarSet
	left, right := set, other
	for len(left) > 0 && len(right) > 0 {
		switch {
		case left[0] == right[0]:
			both = append(both, left[0])
			left = left[1:]
			right = right[1:]
		case left[0] < right[0]:
			left = left[1:]
		case left[0] > right[0]:
			right = right[1:]
		}
	}
	return both
}

// Union returns a new set with the variables present in either 'set' or 'other'.
func (set VarSet) Union(other VarSet) VarSet {
	var either VarSet
	left, right := set, other
	for len(left) > 0 && len(right) > 0 {
		switch {
		case left[0] == right[0]:
			either = append(either, left[0])
			left = left[1:]
			right = right[1:]
		case left[0] < right[0]:
			either = append(either, left[0])
			left = left[1:]
		case left[0] > right[0]:
			either = append(either, right[0])
			right = right[1:]
		}
	}
	if len(left) > 0 {
		either = append(either, left...)
	} else if len(right) > 0 {
		either = append(either, right...)
	}
	return either
}

// Sub returns a new set with the variables present in 'set' but not 'other'.
func (set VarSet) Sub(other VarSet) VarSet {
	var diff VarSet
	left, right := set, other
	for len(left) > 0 && len(right) > 0 {
		switch {
		case left[0] == right[0]:
			left = left[1:]
			right = right[1:]
		case left[0] < right[0]:
			diff = append(diff, left[0])
			left = left[1:]
		case left[0] > right[0]:
			right = right[1:]
		}
	}
	if len(left) > 0 {
		diff = append(diff, left...)
	}
	return diff
}

// Equal returns true if the two sets are made up of the same variable names,
// false otherwise.
func (set VarSet) Equal(other VarSet) bool {
	if len(set) != len(other) {
		return false
	}
	for i := range set {
		if set[i] != other[i] {
			return false
		}
	}
	return true
}

// String returns a space-delimited ordered list of variables, like "?a ?b".
func (set VarSet) String() string {
	var b strings.Builder
	set.Key(&b)
	return b.String()
}

// Key implements cmp.Key.
func (set VarSet) Key(b *strings.Builder) {
	for i, v := range set {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('?')
		b.WriteString(v)
	}
}
