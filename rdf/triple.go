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

import (
	"strings"
)

// A Triple is a subject, predicate, and object. Inside a pattern any position
// may hold a Variable.
type Triple struct {
	S, P, O Term
}

// NewTriple returns a Triple with the given terms.
func NewTriple(s, p, o Term) Triple {
	return Triple{S: s, P: p, O: o}
}

// Terms returns the subject, predicate, and object, in that order.
func (t Triple) Terms() []Term {
	return []Term{t.S, t.P, t.O}
}

// String returns a string like "<s> <p> ?o".
func (t Triple) String() string {
	var b strings.Builder
	t.Key(&b)
	return b.String()
}

// Key implements cmp.Key.
func (t Triple) Key(b *strings.Builder) {
	writeTerms(b, t.S, t.P, t.O)
}

// TriplesEqualIso returns true if the triples match position by position,
// comparing blank nodes through iso (see TermsEqualIso).
func TriplesEqualIso(a, b Triple, iso *IsoMap) bool {
	return TermsEqualIso(a.S, b.S, iso) &&
		TermsEqualIso(a.P, b.P, iso) &&
		TermsEqualIso(a.O, b.O, iso)
}

// A Quad is a Triple in a named graph. G may be nil for the default graph.
type Quad struct {
	G Term
	Triple
}

// NewQuad returns a Quad with the given terms.
func NewQuad(g, s, p, o Term) Quad {
	return Quad{G: g, Triple: Triple{S: s, P: p, O: o}}
}

// String returns a string like "<g> <s> <p> ?o".
func (q Quad) String() string {
	var b strings.Builder
	q.Key(&b)
	return b.String()
}

// Key implements cmp.Key.
func (q Quad) Key(b *strings.Builder) {
	if q.G == nil {
		b.WriteString("_")
	} else {
		q.G.Key(b)
	}
	b.WriteByte(' ')
	q.Triple.Key(b)
}

func writeTerms(b *strings.Builder, terms ...Term) {
	for i, t := range terms {
		if i > 0 {
			b.WriteByte(' ')
		}
		if t == nil {
			b.WriteByte('_')
			continue
		}
		t.Key(b)
	}
}
