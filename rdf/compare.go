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
	"fmt"
	"strings"
)

// TermsEqual returns true if a and b are syntactically the same term. Two nil
// terms are equal. Language tags are compared exactly; case-insensitive
// matching of tags is a property of values, not terms.
func TermsEqual(a, b Term) bool {
	return TermsEqualIso(a, b, nil)
}

// TermsEqualIso is like TermsEqual, except that blank nodes are compared
// through iso: they're equal if iso relates their labels (or can be extended
// to). If iso is nil, blank nodes must have identical labels.
func TermsEqualIso(a, b Term, iso *IsoMap) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case *IRI:
		b, ok := b.(*IRI)
		return ok && a.Value == b.Value
	case *BlankNode:
		b, ok := b.(*BlankNode)
		if !ok {
			return false
		}
		if iso == nil {
			return a.Label == b.Label
		}
		return iso.Match(a, b)
	case *Literal:
		b, ok := b.(*Literal)
		return ok && a.Lexical == b.Lexical && a.Lang == b.Lang && a.Datatype == b.Datatype
	case *Variable:
		b, ok := b.(*Variable)
		return ok && a.Name == b.Name
	}
	panic(fmt.Sprintf("Unexpected term type %T", a))
}

// termRank orders the kinds of terms: unbound first, then blank nodes, IRIs,
// literals, and finally variables.
func termRank(t Term) int {
	switch t.(type) {
	case nil:
		return 0
	case *BlankNode:
		return 1
	case *IRI:
		return 2
	case *Literal:
		return 3
	case *Variable:
		return 4
	}
	panic(fmt.Sprintf("Unexpected term type %T", t))
}

// literalRank orders literals sharing a lexical form: simple, then
// language-tagged, then typed.
func literalRank(lit *Literal) int {
	switch {
	case lit.IsSimple():
		return 0
	case lit.Lang != "":
		return 1
	}
	return 2
}

// CompareTerms defines a total syntactic order over terms. It returns a
// negative number if a sorts before b, 0 if they're equal according to
// TermsEqual, and a positive number otherwise. Literals are ordered by lexical
// form, then kind (simple, language-tagged, typed), then language tag, then
// datatype.
func CompareTerms(a, b Term) int {
	ra, rb := termRank(a), termRank(b)
	if ra != rb {
		return ra - rb
	}
	switch a := a.(type) {
	case nil:
		return 0
	case *BlankNode:
		return strings.Compare(a.Label, b.(*BlankNode).Label)
	case *IRI:
		return strings.Compare(a.Value, b.(*IRI).Value)
	case *Variable:
		return strings.Compare(a.Name, b.(*Variable).Name)
	case *Literal:
		b := b.(*Literal)
		if c := strings.Compare(a.Lexical, b.Lexical); c != 0 {
			return c
		}
		if c := literalRank(a) - literalRank(b); c != 0 {
			return c
		}
		if c := strings.Compare(a.Lang, b.Lang); c != 0 {
			return c
		}
		return strings.Compare(a.Datatype, b.Datatype)
	}
	panic(fmt.Sprintf("Unexpected term type %T", a))
}
