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
	"sync"
	"testing"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func typed(lexical, datatype string) *Value {
	return FromTerm(rdf.NewTypedLiteral(lexical, datatype))
}

func Test_FromTerm(t *testing.T) {
	tests := []struct {
		term rdf.Term
		exp  Kind
	}{
		{rdf.NewTypedLiteral("2", rdf.XSDInteger), KindInteger},
		{rdf.NewTypedLiteral(" 42 ", rdf.XSDInteger), KindInteger},
		{rdf.NewTypedLiteral("+02", rdf.XSDInt), KindInteger},
		{rdf.NewTypedLiteral("127", rdf.XSDByte), KindInteger},
		{rdf.NewTypedLiteral("300", rdf.XSDByte), KindUnknown},
		{rdf.NewTypedLiteral("-1", rdf.XSDNonNegativeInteger), KindUnknown},
		{rdf.NewTypedLiteral("0", rdf.XSDPositiveInteger), KindUnknown},
		{rdf.NewTypedLiteral("18446744073709551615", rdf.XSDUnsignedLong), KindInteger},
		{rdf.NewTypedLiteral("abc", rdf.XSDInteger), KindUnknown},
		{rdf.NewTypedLiteral("1.5", rdf.XSDInteger), KindUnknown},
		{rdf.NewTypedLiteral("1.5", rdf.XSDDecimal), KindDecimal},
		{rdf.NewTypedLiteral(".5", rdf.XSDDecimal), KindDecimal},
		{rdf.NewTypedLiteral("1.", rdf.XSDDecimal), KindDecimal},
		{rdf.NewTypedLiteral("1e3", rdf.XSDDecimal), KindUnknown},
		{rdf.NewTypedLiteral("1.5e3", rdf.XSDDouble), KindDouble},
		{rdf.NewTypedLiteral("INF", rdf.XSDFloat), KindFloat},
		{rdf.NewTypedLiteral("-INF", rdf.XSDDouble), KindDouble},
		{rdf.NewTypedLiteral("NaN", rdf.XSDDouble), KindDouble},
		{rdf.NewTypedLiteral("nan", rdf.XSDDouble), KindUnknown},
		{rdf.NewTypedLiteral("2001-10-26T21:32:52", rdf.XSDDateTime), KindDateTime},
		{rdf.NewTypedLiteral("2001-10-26T21:32:52.12679+02:00", rdf.XSDDateTime), KindDateTime},
		{rdf.NewTypedLiteral("-0044-03-15T12:00:00Z", rdf.XSDDateTime), KindDateTime},
		{rdf.NewTypedLiteral("2001-10-26T24:00:00", rdf.XSDDateTime), KindDateTime},
		{rdf.NewTypedLiteral("2001-10-26T24:00:01", rdf.XSDDateTime), KindUnknown},
		{rdf.NewTypedLiteral("2001-02-29T00:00:00", rdf.XSDDateTime), KindUnknown},
		{rdf.NewTypedLiteral("2000-02-29T00:00:00", rdf.XSDDateTime), KindDateTime},
		{rdf.NewTypedLiteral("2001-10-26T21:32", rdf.XSDDateTime), KindUnknown},
		{rdf.NewTypedLiteral("2001-10-26T21:32:52+15:00", rdf.XSDDateTime), KindUnknown},
		{rdf.NewTypedLiteral("02001-10-26T21:32:52", rdf.XSDDateTime), KindUnknown},
		{rdf.NewTypedLiteral("2001-10-26T21:32:52", rdf.XSDDateTimeStamp), KindUnknown},
		{rdf.NewTypedLiteral("2001-10-26T21:32:52Z", rdf.XSDDateTimeStamp), KindDateTime},
		{rdf.NewTypedLiteral("2001-10-26", rdf.XSDDate), KindDate},
		{rdf.NewTypedLiteral("2001-13-26", rdf.XSDDate), KindUnknown},
		{rdf.NewTypedLiteral("21:32:52Z", rdf.XSDTime), KindTime},
		{rdf.NewTypedLiteral("2001", rdf.XSDGYear), KindGYear},
		{rdf.NewTypedLiteral("2001-10", rdf.XSDGYearMonth), KindGYearMonth},
		{rdf.NewTypedLiteral("--10", rdf.XSDGMonth), KindGMonth},
		{rdf.NewTypedLiteral("--02-29", rdf.XSDGMonthDay), KindGMonthDay},
		{rdf.NewTypedLiteral("--04-31", rdf.XSDGMonthDay), KindUnknown},
		{rdf.NewTypedLiteral("---31", rdf.XSDGDay), KindGDay},
		{rdf.NewTypedLiteral("---32", rdf.XSDGDay), KindUnknown},
		{rdf.NewTypedLiteral("P1Y2M3DT4H5M6.5S", rdf.XSDDuration), KindDuration},
		{rdf.NewTypedLiteral("-PT1H", rdf.XSDDayTimeDuration), KindDuration},
		{rdf.NewTypedLiteral("P1Y", rdf.XSDDayTimeDuration), KindUnknown},
		{rdf.NewTypedLiteral("P1Y", rdf.XSDYearMonthDuration), KindDuration},
		{rdf.NewTypedLiteral("P1D", rdf.XSDYearMonthDuration), KindUnknown},
		{rdf.NewTypedLiteral("P", rdf.XSDDuration), KindUnknown},
		{rdf.NewTypedLiteral("P1DT", rdf.XSDDuration), KindUnknown},
		{rdf.NewTypedLiteral("P1000000000000000000Y", rdf.XSDDuration), KindUnknown},
		{rdf.NewTypedLiteral("P999999999999Y11M", rdf.XSDDuration), KindDuration},
		{rdf.NewTypedLiteral("true", rdf.XSDBoolean), KindBoolean},
		{rdf.NewTypedLiteral("0", rdf.XSDBoolean), KindBoolean},
		{rdf.NewTypedLiteral("yes", rdf.XSDBoolean), KindUnknown},
		{rdf.NewLiteral("abc"), KindString},
		{rdf.NewTypedLiteral("abc", rdf.XSDString), KindString},
		{rdf.NewLangLiteral("abc", "en"), KindLangString},
		{rdf.NewTypedLiteral("x", "urn:custom"), KindUnknown},
		{rdf.NewIRI("http://example.org/a"), KindNode},
		{rdf.NewBlankNode("b0"), KindNode},
	}
	for _, test := range tests {
		t.Run(test.term.String(), func(t *testing.T) {
			v := FromTerm(test.term)
			assert.Equal(t, test.exp, v.Kind())
			assert.True(t, rdf.TermsEqual(test.term, v.Term()))
			assert.Equal(t, v.Kind(), FromTerm(test.term).Kind())
		})
	}
	assert.Panics(t, func() { FromTerm(rdf.NewVariable("x")) })
	assert.Panics(t, func() { FromTerm(nil) })
}

func Test_DecodedPayload(t *testing.T) {
	assert.Equal(t, "42", typed(" 42 ", rdf.XSDInteger).Decimal().String())
	assert.Equal(t, "0.5", typed(".5", rdf.XSDDecimal).Decimal().String())
	assert.Equal(t, 1500.0, typed("1.5e3", rdf.XSDDouble).Float())
	assert.True(t, math.IsInf(typed("INF", rdf.XSDFloat).Float(), 1))
	assert.True(t, typed("1", rdf.XSDBoolean).Bool())

	dt, ok := typed("2001-10-26T24:00:00", rdf.XSDDateTime).DateTime()
	if assert.True(t, ok) {
		assert.Equal(t, int64(2001), dt.Year)
		assert.Equal(t, 10, dt.Month)
		assert.Equal(t, 27, dt.Day)
		assert.Equal(t, 0, dt.Hour)
		assert.False(t, dt.HasTZ)
	}
	dt, ok = typed("2001-12-31T24:00:00-05:30", rdf.XSDDateTime).DateTime()
	if assert.True(t, ok) {
		assert.Equal(t, int64(2002), dt.Year)
		assert.Equal(t, 1, dt.Month)
		assert.Equal(t, 1, dt.Day)
		assert.Equal(t, -330, dt.TZ)
		assert.Equal(t, "-05:30", dt.TZString())
	}
	dt, ok = typed("21:32:52.5Z", rdf.XSDTime).DateTime()
	if assert.True(t, ok) {
		assert.Equal(t, int64(1972), dt.Year)
		assert.Equal(t, "52.5", dt.Second.String())
		assert.Equal(t, "Z", dt.TZString())
	}
	d, ok := typed("-P1Y2M3DT4H5M6.5S", rdf.XSDDuration).Duration()
	if assert.True(t, ok) {
		assert.Equal(t, int64(-14), d.Months)
		assert.Equal(t, "-273906.5", d.Seconds.String())
	}
	d, ok = typed("PT100000000000000000000H", rdf.XSDDuration).Duration()
	if assert.True(t, ok) {
		assert.Equal(t, "360000000000000000000000", d.Seconds.String())
	}
	long := typed("P999999999999Y", rdf.XSDYearMonthDuration)
	d, ok = long.Duration()
	if assert.True(t, ok) {
		assert.Equal(t, int64(11999999999988), d.Months)
	}
	c, err := Compare(long, typed("P1Y", rdf.XSDYearMonthDuration), Options{})
	assert.NoError(t, err)
	assert.Equal(t, 1, c)
	_, ok = NewInteger(1).DateTime()
	assert.False(t, ok)
	_, ok = NewInteger(1).Duration()
	assert.False(t, ok)

	lang := FromTerm(rdf.NewLangLiteral("chat", "fr"))
	assert.Equal(t, "chat", lang.Str())
	assert.Equal(t, "fr", lang.Lang())
	assert.True(t, lang.IsStringLiteral())
	assert.True(t, typed("a", rdf.XSDString).IsTypedString())
	assert.False(t, NewString("a").IsTypedString())
	assert.Equal(t, "http://a", FromTerm(rdf.NewIRI("http://a")).Str())
	assert.Equal(t, "", FromTerm(rdf.NewBlankNode("b")).Str())
	assert.Equal(t, "12", NewInteger(12).Str())
	assert.False(t, FromTerm(rdf.NewIRI("http://a")).IsLiteral())
}

func Test_CanonicalTerm(t *testing.T) {
	tests := []struct {
		name string
		val  *Value
		exp  rdf.Term
	}{
		{"integer", NewInteger(42), rdf.NewTypedLiteral("42", rdf.XSDInteger)},
		{"negative integer", NewInteger(-7), rdf.NewTypedLiteral("-7", rdf.XSDInteger)},
		{"integer from decimal", NewIntegerDecimal(decimal.RequireFromString("3.9")), rdf.NewTypedLiteral("3", rdf.XSDInteger)},
		{"decimal", NewDecimal(decimal.RequireFromString("2")), rdf.NewTypedLiteral("2.0", rdf.XSDDecimal)},
		{"decimal fraction", NewDecimal(decimal.RequireFromString("-0.250")), rdf.NewTypedLiteral("-0.25", rdf.XSDDecimal)},
		{"double", NewDouble(10), rdf.NewTypedLiteral("1.0E1", rdf.XSDDouble)},
		{"small double", NewDouble(0.0025), rdf.NewTypedLiteral("2.5E-3", rdf.XSDDouble)},
		{"zero double", NewDouble(0), rdf.NewTypedLiteral("0.0E0", rdf.XSDDouble)},
		{"float", NewFloat(1.5), rdf.NewTypedLiteral("1.5E0", rdf.XSDFloat)},
		{"NaN", NewDouble(math.NaN()), rdf.NewTypedLiteral("NaN", rdf.XSDDouble)},
		{"-INF", NewDouble(math.Inf(-1)), rdf.NewTypedLiteral("-INF", rdf.XSDDouble)},
		{"true", True, rdf.NewTypedLiteral("true", rdf.XSDBoolean)},
		{"false", False, rdf.NewTypedLiteral("false", rdf.XSDBoolean)},
		{"simple", NewString("a"), rdf.NewLiteral("a")},
		{"xsd:string", NewTypedString("a"), rdf.NewTypedLiteral("a", rdf.XSDString)},
		{"lang", NewLangString("a", "en-GB"), rdf.NewLangLiteral("a", "en-GB")},
		{"duration", NewDuration(Duration{Months: 14, Seconds: decimal.RequireFromString("93784.5")}),
			rdf.NewTypedLiteral("P1Y2M1DT2H3M4.5S", rdf.XSDDuration)},
		{"dayTimeDuration", NewDuration(Duration{Seconds: decimal.NewFromInt(-3600)}),
			rdf.NewTypedLiteral("-PT1H", rdf.XSDDayTimeDuration)},
		{"yearMonthDuration", NewDuration(Duration{Months: 3, Seconds: decimal.Zero}),
			rdf.NewTypedLiteral("P3M", rdf.XSDYearMonthDuration)},
		{"zero duration", NewDuration(Duration{Seconds: decimal.Zero}),
			rdf.NewTypedLiteral("PT0S", rdf.XSDDayTimeDuration)},
		{"dateTime", NewDateTime(DateTime{Year: 2001, Month: 10, Day: 26, Hour: 21, Minute: 32,
			Second: decimal.RequireFromString("52.5"), HasTZ: true, TZ: -300}),
			rdf.NewTypedLiteral("2001-10-26T21:32:52.5-05:00", rdf.XSDDateTime)},
		{"old dateTime", NewDateTime(DateTime{Year: -44, Month: 3, Day: 15, Second: decimal.Zero}),
			rdf.NewTypedLiteral("-0044-03-15T00:00:00", rdf.XSDDateTime)},
		{"date", NewTemporal(KindDate, DateTime{Year: 2001, Month: 1, Day: 2, Second: decimal.Zero, HasTZ: true}),
			rdf.NewTypedLiteral("2001-01-02Z", rdf.XSDDate)},
		{"gMonthDay", NewTemporal(KindGMonthDay, DateTime{Year: 1972, Month: 2, Day: 29, Second: decimal.Zero}),
			rdf.NewTypedLiteral("--02-29", rdf.XSDGMonthDay)},
		{"iri", NewNode(rdf.NewIRI("http://a")), rdf.NewIRI("http://a")},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp.String(), test.val.Term().String())
			assert.Equal(t, test.exp.String(), test.val.String())
			// Decoding the canonical form yields an equivalent value.
			decoded := FromTerm(test.val.Term())
			assert.Equal(t, Classify(test.val), Classify(decoded))
		})
	}
	assert.Panics(t, func() { NewTemporal(KindInteger, DateTime{}) })
	assert.Panics(t, func() { NewNode(rdf.NewLiteral("a")) })
}

func Test_TermMemoized(t *testing.T) {
	v := NewInteger(5)
	terms := make([]rdf.Term, 8)
	var wg sync.WaitGroup
	for i := range terms {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			terms[i] = v.Term()
		}(i)
	}
	wg.Wait()
	for _, term := range terms {
		assert.Same(t, terms[0], term)
	}
	lit := rdf.NewTypedLiteral("05", rdf.XSDInteger)
	assert.Same(t, lit, FromTerm(lit).Term())
}

func Test_Classify(t *testing.T) {
	assert.Equal(t, SpaceNumeric, Classify(NewInteger(1)))
	assert.Equal(t, SpaceNumeric, Classify(NewDouble(1)))
	assert.Equal(t, SpaceString, Classify(NewTypedString("a")))
	assert.Equal(t, SpaceLang, Classify(NewLangString("a", "en")))
	assert.Equal(t, SpaceNode, Classify(FromTerm(rdf.NewBlankNode("b"))))
	assert.Equal(t, SpaceUnknown, Classify(typed("x", "urn:custom")))
	assert.Equal(t, SpaceGMonthDay, Classify(typed("--02-29", rdf.XSDGMonthDay)))
	assert.Equal(t, "numeric", SpaceNumeric.String())
	assert.Equal(t, "GYearMonth", KindGYearMonth.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
	assert.True(t, KindGDay.IsTemporal())
	assert.False(t, KindDuration.IsTemporal())
}
