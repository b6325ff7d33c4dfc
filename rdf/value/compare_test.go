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
	"testing"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var defaults = Options{}

func Test_NumericPromotionEquality(t *testing.T) {
	two := NewInteger(2)
	twoDec := typed("2.0", rdf.XSDDecimal)
	same, err := SameAs(two, twoDec, defaults)
	assert.NoError(t, err)
	assert.True(t, same)
	c, err := Compare(two, twoDec, defaults)
	assert.NoError(t, err)
	assert.Equal(t, 0, c)

	c, err = Compare(NewInteger(1), NewDouble(1.5), defaults)
	assert.NoError(t, err)
	assert.Equal(t, -1, c)
	c, err = Compare(typed("2.5", rdf.XSDDecimal), NewFloat(2), defaults)
	assert.NoError(t, err)
	assert.Equal(t, 1, c)
	c, err = Compare(typed("1", rdf.XSDByte), typed("1", rdf.XSDUnsignedLong), defaults)
	assert.NoError(t, err)
	assert.Equal(t, 0, c)
	c, err = Compare(NewDouble(math.Inf(-1)), NewInteger(-1000), defaults)
	assert.NoError(t, err)
	assert.Equal(t, -1, c)
}

func Test_FloatPromotionRounds(t *testing.T) {
	tenthFloat := typed("0.1", rdf.XSDFloat)
	tenthDec := typed("0.1", rdf.XSDDecimal)
	same, err := SameAs(tenthFloat, tenthDec, defaults)
	assert.NoError(t, err)
	assert.True(t, same)
	c, err := Compare(tenthDec, tenthFloat, defaults)
	assert.NoError(t, err)
	assert.Equal(t, 0, c)
	c, err = Compare(NewInteger(16777217), NewFloat(16777216), defaults)
	assert.NoError(t, err)
	assert.Equal(t, 0, c, "2^24+1 rounds to 2^24 as a float")

	sum, err := Add(tenthDec, NewFloat(0))
	require.NoError(t, err)
	c, err = Compare(sum, tenthFloat, defaults)
	assert.NoError(t, err)
	assert.Equal(t, 0, c)
	diff, err := Subtract(tenthDec, tenthFloat)
	require.NoError(t, err)
	nonZero, err := EBV(diff)
	require.NoError(t, err)
	assert.False(t, nonZero, "%v", diff)

	// As a double, the float keeps its rounding error.
	c, err = Compare(tenthFloat, typed("0.1", rdf.XSDDouble), defaults)
	assert.NoError(t, err)
	assert.Equal(t, 1, c)
}

func Test_NaN(t *testing.T) {
	nan := NewDouble(math.NaN())
	_, err := Compare(nan, nan, defaults)
	assert.True(t, IsNotComparable(err))
	assert.True(t, IsEvalError(err))
	same, err := SameAs(nan, nan, defaults)
	assert.NoError(t, err)
	assert.False(t, same)
	notSame, err := NotSameAs(nan, NewInteger(1), defaults)
	assert.NoError(t, err)
	assert.True(t, notSame)
}

func Test_LanguageTagCase(t *testing.T) {
	en := FromTerm(rdf.NewLangLiteral("abc", "EN"))
	same, err := SameAs(en, FromTerm(rdf.NewLangLiteral("abc", "en")), defaults)
	assert.NoError(t, err)
	assert.True(t, same)
	same, err = SameAs(FromTerm(rdf.NewLangLiteral("abc", "en")), FromTerm(rdf.NewLangLiteral("abc", "fr")), defaults)
	assert.NoError(t, err)
	assert.False(t, same)
	same, err = SameAs(en, NewString("abc"), defaults)
	assert.NoError(t, err)
	assert.False(t, same)

	c, err := Compare(NewLangString("a", "en"), NewLangString("b", "EN"), defaults)
	assert.NoError(t, err)
	assert.Equal(t, -1, c)
	_, err = Compare(NewLangString("a", "en"), NewLangString("a", "fr"), defaults)
	assert.True(t, IsNotComparable(err))
}

func Test_SameAs(t *testing.T) {
	strict := Options{Strict: true}
	separate := Options{SeparateXSDString: true}
	strictSeparate := Options{Strict: true, SeparateXSDString: true}
	iri := FromTerm(rdf.NewIRI("http://a"))
	tests := []struct {
		name   string
		a, b   *Value
		opts   Options
		exp    bool
		expErr bool
	}{
		{"equal integers", NewInteger(1), typed("01", rdf.XSDInteger), defaults, true, false},
		{"unequal integers", NewInteger(1), NewInteger(2), defaults, false, false},
		{"booleans", typed("1", rdf.XSDBoolean), True, defaults, true, false},
		{"strings", NewString("a"), NewString("a"), defaults, true, false},
		{"simple vs xsd:string", NewString("a"), NewTypedString("a"), defaults, true, false},
		{"simple vs xsd:string separate", NewString("a"), NewTypedString("a"), separate, false, false},
		{"simple vs xsd:string strict separate", NewString("a"), NewTypedString("a"), strictSeparate, false, true},
		{"integer vs string", NewInteger(1), NewString("1"), defaults, false, false},
		{"integer vs string strict", NewInteger(1), NewString("1"), strict, false, true},
		{"iri vs iri", iri, FromTerm(rdf.NewIRI("http://a")), strict, true, false},
		{"iri vs other iri", iri, FromTerm(rdf.NewIRI("http://b")), strict, false, false},
		{"iri vs literal", iri, NewString("http://a"), strict, false, false},
		{"unknown identical", typed("x", "urn:t"), typed("x", "urn:t"), strict, true, false},
		{"unknown different", typed("x", "urn:t"), typed("y", "urn:t"), defaults, false, false},
		{"unknown different strict", typed("x", "urn:t"), typed("y", "urn:t"), strict, false, true},
		{"invalid integer vs integer", typed("x", rdf.XSDInteger), NewInteger(1), defaults, false, false},
		{"dateTimes equal across zones",
			typed("2002-04-02T12:00:00-01:00", rdf.XSDDateTime),
			typed("2002-04-02T17:00:00+04:00", rdf.XSDDateTime), defaults, true, false},
		{"dateTime indeterminate",
			typed("2002-04-02T12:00:00Z", rdf.XSDDateTime),
			typed("2002-04-02T12:00:00", rdf.XSDDateTime), defaults, false, true},
		{"end of day",
			typed("2001-10-26T24:00:00", rdf.XSDDateTime),
			typed("2001-10-27T00:00:00", rdf.XSDDateTime), defaults, true, false},
		{"times",
			typed("12:00:00Z", rdf.XSDTime),
			typed("13:00:00+01:00", rdf.XSDTime), defaults, true, false},
		{"date vs dateTime", typed("2001-10-26", rdf.XSDDate),
			typed("2001-10-26T00:00:00", rdf.XSDDateTime), defaults, false, false},
		{"durations", typed("P1Y", rdf.XSDDuration), typed("P12M", rdf.XSDYearMonthDuration), defaults, true, false},
		{"duration days", typed("P1D", rdf.XSDDuration), typed("PT24H", rdf.XSDDayTimeDuration), defaults, true, false},
		{"durations indeterminate", typed("P1M", rdf.XSDDuration), typed("P30D", rdf.XSDDuration), defaults, false, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			same, err := SameAs(test.a, test.b, test.opts)
			if test.expErr {
				assert.Error(t, err)
				assert.True(t, IsNotComparable(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.exp, same)
			notSame, err := NotSameAs(test.a, test.b, test.opts)
			assert.NoError(t, err)
			assert.Equal(t, !test.exp, notSame)
			same, err = SameAs(test.b, test.a, test.opts)
			assert.NoError(t, err)
			assert.Equal(t, test.exp, same, "not symmetric")
		})
	}
}

func Test_Compare(t *testing.T) {
	tests := []struct {
		name    string
		a, b    *Value
		exp     int
		expFail bool
	}{
		{"booleans", False, True, -1, false},
		{"strings", NewString("a"), NewTypedString("b"), -1, false},
		{"code point order", NewString("Z"), NewString("a"), -1, false},
		{"dates", typed("2001-01-01", rdf.XSDDate), typed("2001-01-02", rdf.XSDDate), -1, false},
		{"gYears", typed("2002", rdf.XSDGYear), typed("2001", rdf.XSDGYear), 1, false},
		{"gMonthDays", typed("--02-29", rdf.XSDGMonthDay), typed("--03-01", rdf.XSDGMonthDay), -1, false},
		{"zoned vs local less",
			typed("2000-01-15T00:00:00", rdf.XSDDateTime),
			typed("2000-02-15T00:00:00Z", rdf.XSDDateTime), -1, false},
		{"local vs zoned greater",
			typed("2000-02-15T00:00:00Z", rdf.XSDDateTime),
			typed("2000-01-15T00:00:00", rdf.XSDDateTime), 1, false},
		{"within window",
			typed("2000-01-01T12:00:00", rdf.XSDDateTime),
			typed("1999-12-31T23:00:00Z", rdf.XSDDateTime), 0, true},
		{"within window reversed",
			typed("2000-01-16T12:00:00Z", rdf.XSDDateTime),
			typed("2000-01-16T00:00:00", rdf.XSDDateTime), 0, true},
		{"durations", typed("PT1H", rdf.XSDDuration), typed("PT59M", rdf.XSDDuration), 1, false},
		{"negative duration", typed("-P1D", rdf.XSDDuration), typed("PT0S", rdf.XSDDuration), -1, false},
		{"month vs days", typed("P1M", rdf.XSDDuration), typed("P27D", rdf.XSDDuration), 1, false},
		{"month vs 30 days", typed("P1M", rdf.XSDDuration), typed("P30D", rdf.XSDDuration), 0, true},
		{"date vs dateTime", typed("2001-01-01", rdf.XSDDate), typed("2001-01-01T00:00:00", rdf.XSDDateTime), 0, true},
		{"iris", FromTerm(rdf.NewIRI("a")), FromTerm(rdf.NewIRI("b")), 0, true},
		{"unknown", typed("a", "urn:t"), typed("a", "urn:t"), 0, true},
		{"string vs number", NewString("1"), NewInteger(1), 0, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, err := Compare(test.a, test.b, defaults)
			if test.expFail {
				assert.True(t, IsNotComparable(err), "expected not comparable, got %v", err)
				return
			}
			if assert.NoError(t, err) {
				assert.Equal(t, test.exp, c)
			}
			c, err = Compare(test.b, test.a, defaults)
			if assert.NoError(t, err) {
				assert.Equal(t, -test.exp, c)
			}
		})
	}
	_, err := Compare(NewString("a"), NewTypedString("a"), Options{SeparateXSDString: true})
	assert.True(t, IsNotComparable(err))
}

func Test_CompareForOrdering(t *testing.T) {
	sorted := []*Value{
		FromTerm(rdf.NewBlankNode("b")),
		FromTerm(rdf.NewIRI("http://a")),
		NewInteger(1),
		NewString("a"),
		NewTypedString("a"),
		NewString("b"),
	}
	for i := range sorted {
		for j := range sorted {
			c := CompareForOrdering(sorted[i], sorted[j], defaults)
			switch {
			case i < j:
				assert.Equal(t, -1, c, "%v vs %v", sorted[i], sorted[j])
			case i > j:
				assert.Equal(t, 1, c, "%v vs %v", sorted[i], sorted[j])
			default:
				assert.Equal(t, 0, c, "%v vs %v", sorted[i], sorted[j])
			}
		}
	}
	// Equal by value, different terms.
	assert.Equal(t, 0, CompareForOrdering(NewInteger(1), typed("1.0", rdf.XSDDecimal), defaults))
	assert.Equal(t, 0, CompareForOrdering(typed("1.0", rdf.XSDDecimal), NewInteger(1), defaults))
	assert.Equal(t, 0, CompareForOrdering(NewLangString("a", "en"), NewLangString("a", "EN"), defaults))
	// Indeterminate by value falls back to term order.
	a := typed("2000-01-01T12:00:00", rdf.XSDDateTime)
	b := typed("1999-12-31T23:00:00Z", rdf.XSDDateTime)
	assert.Equal(t, 1, CompareForOrdering(a, b, defaults))
	assert.Equal(t, -1, CompareForOrdering(b, a, defaults))
}

func Test_EBV(t *testing.T) {
	tests := []struct {
		name   string
		val    *Value
		exp    bool
		expErr bool
	}{
		{"true", True, true, false},
		{"false", False, false, false},
		{"zero", NewInteger(0), false, false},
		{"two", NewInteger(2), true, false},
		{"zero decimal", typed("0.0", rdf.XSDDecimal), false, false},
		{"NaN", NewDouble(math.NaN()), false, false},
		{"negative zero", NewDouble(math.Copysign(0, -1)), false, false},
		{"float", NewFloat(0.5), true, false},
		{"empty", NewString(""), false, false},
		{"nonempty", NewTypedString("a"), true, false},
		{"lang", NewLangString("a", "en"), true, false},
		{"unknown", typed("x", "urn:t"), false, true},
		{"iri", FromTerm(rdf.NewIRI("http://a")), false, true},
		{"date", typed("2001-01-01", rdf.XSDDate), false, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := EBV(test.val)
			if test.expErr {
				assert.True(t, IsEvalError(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.exp, b)
		})
	}
}

var sampleTerms = []rdf.Term{
	rdf.NewIRI("http://a"),
	rdf.NewIRI("http://b"),
	rdf.NewBlankNode("b0"),
	rdf.NewLiteral("a"),
	rdf.NewTypedLiteral("a", rdf.XSDString),
	rdf.NewLangLiteral("a", "en"),
	rdf.NewLangLiteral("a", "EN"),
	rdf.NewLangLiteral("b", "fr"),
	rdf.NewTypedLiteral("x", "urn:t"),
	rdf.NewTypedLiteral("x", rdf.XSDInteger),
	rdf.NewTypedLiteral("true", rdf.XSDBoolean),
	rdf.NewTypedLiteral("2000-01-01T12:00:00", rdf.XSDDateTime),
	rdf.NewTypedLiteral("1999-12-31T23:00:00Z", rdf.XSDDateTime),
	rdf.NewTypedLiteral("2000-01-02T00:00:00+01:00", rdf.XSDDateTime),
	rdf.NewTypedLiteral("2000-01-01", rdf.XSDDate),
	rdf.NewTypedLiteral("P1M", rdf.XSDDuration),
	rdf.NewTypedLiteral("P30D", rdf.XSDDuration),
	rdf.NewTypedLiteral("NaN", rdf.XSDDouble),
	rdf.NewTypedLiteral("INF", rdf.XSDFloat),
	rdf.NewTypedLiteral("1.0", rdf.XSDDecimal),
}

func genValue() *rapid.Generator[*Value] {
	return rapid.Custom(func(t *rapid.T) *Value {
		switch rapid.IntRange(0, 4).Draw(t, "shape") {
		case 0:
			return NewInteger(rapid.Int64Range(-3, 3).Draw(t, "int"))
		case 1:
			return NewDecimal(decimal.New(rapid.Int64Range(-30, 30).Draw(t, "unscaled"), -1))
		case 2:
			return NewDouble(rapid.SampledFrom([]float64{-1, 0, 0.5, 1, 2, math.Inf(1)}).Draw(t, "double"))
		case 3:
			return NewString(rapid.StringMatching(`[ab]{0,2}`).Draw(t, "str"))
		}
		return FromTerm(rapid.SampledFrom(sampleTerms).Draw(t, "term"))
	})
}

func Test_OrderingIsTotal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		opts := Options{
			Strict:            rapid.Bool().Draw(t, "strict"),
			SeparateXSDString: rapid.Bool().Draw(t, "separate"),
		}
		a := genValue().Draw(t, "a")
		b := genValue().Draw(t, "b")
		ab := CompareForOrdering(a, b, opts)
		ba := CompareForOrdering(b, a, opts)
		if ab != -ba {
			t.Fatalf("not antisymmetric: %v vs %v gave %d and %d", a, b, ab, ba)
		}
		if CompareForOrdering(a, a, opts) != 0 {
			t.Fatalf("%v not equal to itself", a)
		}
		c, err := Compare(a, b, opts)
		if err == nil && c != ab && !(c == 0 && simpleAndXSDString(a, b)) {
			t.Fatalf("Compare(%v, %v) = %d but CompareForOrdering = %d", a, b, c, ab)
		}
		if ab == 0 && err != nil && !rdf.TermsEqual(a.Term(), b.Term()) {
			t.Fatalf("incomparable terms %v and %v ordered as equal", a, b)
		}
	})
}

func Test_ClassificationIsPure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genValue().Draw(t, "a")
		b := FromTerm(a.Term())
		if Classify(a) != Classify(b) {
			t.Fatalf("%v classified as %v and %v", a, Classify(a), Classify(b))
		}
		if same, err := SameAs(a, b, defaults); err == nil && !same && a.Kind() != KindDouble {
			t.Fatalf("%v not same as its own decoded term", a)
		}
	})
}
