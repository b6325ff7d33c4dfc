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

package value

import (
	"math"
	"strings"

	"github.com/ebay/sparqlcore/rdf"
)

// Options control how values are compared. The zero value selects the
// default behavior: value extensions are enabled (incompatible literals are
// simply unequal) and simple literals equal xsd:string literals with the
// same lexical form.
type Options struct {
	// If true, testing literals of incompatible value spaces (or two distinct
	// literals of unrecognized datatypes) for equality raises a
	// NotComparableError instead of returning false.
	Strict bool
	// If true, simple literals and xsd:string literals are different values:
	// they're never equal and can't be compared with each other.
	SeparateXSDString bool
}

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater than b
// by value. It returns a *NotComparableError when the order is undefined:
// values from different spaces, NaN, indeterminate date/time and duration
// comparisons, and IRIs, blank nodes, and unrecognized literals.
func Compare(a, b *Value, opts Options) (int, error) {
	sa, sb := Classify(a), Classify(b)
	if sa != sb {
		return 0, notComparable(a, b, "different value spaces "+sa.String()+" and "+sb.String())
	}
	switch sa {
	case SpaceNumeric:
		return compareNumeric(a, b)
	case SpaceBoolean:
		return compareBools(a.b, b.b), nil
	case SpaceString:
		if opts.SeparateXSDString && a.typed != b.typed {
			return 0, notComparable(a, b, "simple literal and xsd:string")
		}
		return strings.Compare(a.str, b.str), nil
	case SpaceLang:
		if !strings.EqualFold(a.lang, b.lang) {
			return 0, notComparable(a, b, "different language tags")
		}
		return strings.Compare(a.str, b.str), nil
	case SpaceDateTime, SpaceDate, SpaceTime,
		SpaceGYear, SpaceGYearMonth, SpaceGMonth, SpaceGMonthDay, SpaceGDay:
		c, ok := compareDateTimes(a.dt, b.dt)
		if !ok {
			return 0, notComparable(a, b, "indeterminate due to timezone")
		}
		return c, nil
	case SpaceDuration:
		c, ok := compareDurations(a.dur, b.dur)
		if !ok {
			return 0, notComparable(a, b, "indeterminate duration order")
		}
		return c, nil
	}
	return 0, notComparable(a, b, "no order defined for "+sa.String())
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

// promotedKind returns the narrowest numeric kind both a and b promote to.
func promotedKind(a, b *Value) Kind {
	if a.kind > b.kind {
		return a.kind
	}
	return b.kind
}

// floatAs returns the numeric value v rounded to the precision of kind,
// which is KindFloat or KindDouble.
func (v *Value) floatAs(kind Kind) float64 {
	if kind == KindFloat {
		return float64(float32(v.Float()))
	}
	return v.Float()
}

func compareNumeric(a, b *Value) (int, error) {
	switch promotedKind(a, b) {
	case KindInteger, KindDecimal:
		return a.num.Cmp(b.num), nil
	}
	kind := promotedKind(a, b)
	fa, fb := a.floatAs(kind), b.floatAs(kind)
	switch {
	case math.IsNaN(fa) || math.IsNaN(fb):
		return 0, notComparable(a, b, "NaN")
	case fa < fb:
		return -1, nil
	case fa > fb:
		return 1, nil
	}
	return 0, nil
}

// SameAs tests a and b for equality by value, as the SPARQL "=" operator
// does. Values in the same space are compared with Compare, except that
// language-tagged literals are equal when their lexical forms are identical
// and their tags match case-insensitively. IRIs and blank nodes are equal
// only to identical terms. Literals of different spaces are unequal, or
// raise a NotComparableError if opts.Strict is set. Indeterminate date/time
// and duration comparisons always raise a NotComparableError.
func SameAs(a, b *Value, opts Options) (bool, error) {
	sa, sb := Classify(a), Classify(b)
	if sa == SpaceNode || sb == SpaceNode {
		return rdf.TermsEqual(a.Term(), b.Term()), nil
	}
	if sa != sb {
		return false, strictly(a, b, opts, "different value spaces "+sa.String()+" and "+sb.String())
	}
	switch sa {
	case SpaceNumeric:
		if math.IsNaN(a.Float()) || math.IsNaN(b.Float()) {
			return false, nil
		}
	case SpaceString:
		if opts.SeparateXSDString && a.typed != b.typed {
			return false, strictly(a, b, opts, "simple literal and xsd:string")
		}
	case SpaceLang:
		return a.str == b.str && strings.EqualFold(a.lang, b.lang), nil
	case SpaceUnknown:
		if rdf.TermsEqual(a.Term(), b.Term()) {
			return true, nil
		}
		return false, strictly(a, b, opts, "unrecognized datatypes")
	}
	c, err := Compare(a, b, opts)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// strictly returns a NotComparableError for unequal literals if opts.Strict
// is set and nil otherwise.
func strictly(a, b *Value, opts Options, reason string) error {
	if opts.Strict {
		return notComparable(a, b, reason)
	}
	return nil
}

// NotSameAs is the negation of SameAs, as the SPARQL "!=" operator. Errors
// are propagated unchanged.
func NotSameAs(a, b *Value, opts Options) (bool, error) {
	same, err := SameAs(a, b, opts)
	if err != nil {
		return false, err
	}
	return !same, nil
}

// CompareForOrdering defines a total order over values, as used by ORDER BY.
// It never fails. When Compare succeeds, its result is returned, so values
// that are equal by value (such as 1 and 1.0) compare as 0. The exception is
// a simple literal and an xsd:string with the same lexical form, which are
// split by term order. Values that can't be compared fall back to syntactic
// ordering: blank nodes, then IRIs, then literals, with literals grouped by
// value space.
func CompareForOrdering(a, b *Value, opts Options) int {
	c, err := Compare(a, b, opts)
	if err == nil && (c != 0 || !simpleAndXSDString(a, b)) {
		return c
	}
	if err != nil && a.IsLiteral() && b.IsLiteral() {
		if sa, sb := Classify(a), Classify(b); sa != sb {
			return compareInts(int(sa), int(sb))
		}
	}
	return sign(rdf.CompareTerms(a.Term(), b.Term()))
}

// simpleAndXSDString returns true if one of a and b is a simple literal and
// the other is an xsd:string.
func simpleAndXSDString(a, b *Value) bool {
	return a.kind == KindString && b.kind == KindString && a.typed != b.typed
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func sign(c int) int {
	return compareInts(c, 0)
}

// EBV returns the effective boolean value of v: booleans are themselves,
// numbers are false if zero or NaN, and strings (simple, xsd:string, or
// language-tagged) are false if empty. Any other value raises an evaluation
// error.
func EBV(v *Value) (bool, error) {
	switch v.kind {
	case KindBoolean:
		return v.b, nil
	case KindInteger, KindDecimal:
		return !v.num.IsZero(), nil
	case KindFloat, KindDouble:
		return !(v.flt == 0 || math.IsNaN(v.flt)), nil
	case KindString, KindLangString:
		return v.str != "", nil
	}
	return false, Errorf("no effective boolean value for %v", v)
}
