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

// Package value decodes RDF literals into typed values and defines how those
// values are compared, ordered, and combined during expression evaluation.
package value

import (
	"math"
	"strings"
	"sync"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/shopspring/decimal"
)

// A Value is a graph term together with its decoded value. The decoded value
// is computed when the Value is constructed. A Value built from a decoded
// value (for example the result of arithmetic) materializes its term on the
// first call to Term and reuses it afterwards.
//
// Values are immutable and safe for concurrent use.
type Value struct {
	kind Kind

	// Integer and Decimal.
	num decimal.Decimal
	// Float and Double. Float values are rounded to float32 precision.
	flt float64
	// Boolean.
	b bool
	// String and LangString: the lexical form.
	str string
	// LangString: the language tag as written.
	lang string
	// String: true for xsd:string, false for simple literals.
	typed bool
	// Temporal kinds.
	dt *DateTime
	// Duration.
	dur *Duration

	termOnce sync.Once
	term     rdf.Term
}

// NewInteger returns an xsd:integer value.
func NewInteger(i int64) *Value {
	return &Value{kind: KindInteger, num: decimal.NewFromInt(i)}
}

// NewIntegerDecimal returns an xsd:integer value. Any fractional part of d is
// truncated.
func NewIntegerDecimal(d decimal.Decimal) *Value {
	return &Value{kind: KindInteger, num: d.Truncate(0)}
}

// NewDecimal returns an xsd:decimal value.
func NewDecimal(d decimal.Decimal) *Value {
	return &Value{kind: KindDecimal, num: d}
}

// NewFloat returns an xsd:float value, rounding f to float32 precision.
func NewFloat(f float64) *Value {
	return &Value{kind: KindFloat, flt: float64(float32(f))}
}

// NewDouble returns an xsd:double value.
func NewDouble(f float64) *Value {
	return &Value{kind: KindDouble, flt: f}
}

// NewBoolean returns an xsd:boolean value.
func NewBoolean(b bool) *Value {
	return &Value{kind: KindBoolean, b: b}
}

var (
	// True and False are the two xsd:boolean values.
	True  = NewBoolean(true)
	False = NewBoolean(false)
)

// NewString returns a simple literal.
func NewString(s string) *Value {
	return &Value{kind: KindString, str: s}
}

// NewTypedString returns an xsd:string literal.
func NewTypedString(s string) *Value {
	return &Value{kind: KindString, str: s, typed: true}
}

// NewLangString returns a language-tagged literal.
func NewLangString(s, lang string) *Value {
	return &Value{kind: KindLangString, str: s, lang: lang}
}

// NewTemporal returns a value of the given temporal kind (KindDateTime,
// KindDate, etc).
func NewTemporal(kind Kind, dt DateTime) *Value {
	if !kind.IsTemporal() {
		panic(Internalf("NewTemporal called with kind %v", kind))
	}
	return &Value{kind: kind, dt: &dt}
}

// NewDateTime returns an xsd:dateTime value.
func NewDateTime(dt DateTime) *Value {
	return NewTemporal(KindDateTime, dt)
}

// NewDuration returns a duration value. Its datatype is
// xsd:dayTimeDuration if it has no month component, xsd:yearMonthDuration if
// it has only months, and xsd:duration otherwise.
func NewDuration(d Duration) *Value {
	return &Value{kind: KindDuration, dur: &d}
}

// NewNode returns a value for an IRI or blank node.
func NewNode(t rdf.Term) *Value {
	switch t.(type) {
	case *rdf.IRI, *rdf.BlankNode:
		v := &Value{kind: KindNode, term: t}
		return v
	}
	panic(Internalf("NewNode called with %T", t))
}

// Kind returns how the value was decoded.
func (v *Value) Kind() Kind {
	return v.kind
}

// IsNumeric returns true if the value decoded as one of the numeric kinds.
func (v *Value) IsNumeric() bool {
	return v.kind.IsNumeric()
}

// IsLiteral returns true unless the value is an IRI or blank node.
func (v *Value) IsLiteral() bool {
	return v.kind != KindNode
}

// IsStringLiteral returns true for simple, xsd:string, and language-tagged
// literals.
func (v *Value) IsStringLiteral() bool {
	return v.kind == KindString || v.kind == KindLangString
}

// Decimal returns the numeric value as a decimal. Float and double values are
// converted; NaN and infinities convert to zero. It returns zero for
// non-numeric values.
func (v *Value) Decimal() decimal.Decimal {
	switch v.kind {
	case KindInteger, KindDecimal:
		return v.num
	case KindFloat, KindDouble:
		if math.IsNaN(v.flt) || math.IsInf(v.flt, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v.flt)
	}
	return decimal.Zero
}

// Float returns the numeric value as a float64. It returns NaN for
// non-numeric values.
func (v *Value) Float() float64 {
	switch v.kind {
	case KindInteger, KindDecimal:
		f, _ := v.num.Float64()
		return f
	case KindFloat, KindDouble:
		return v.flt
	}
	return math.NaN()
}

// Bool returns the boolean value. It returns false for non-boolean values.
func (v *Value) Bool() bool {
	return v.kind == KindBoolean && v.b
}

// Str returns the lexical form of a string or language-tagged literal. For
// other literals it returns the lexical form of the term, and for IRIs the
// IRI itself. It returns the empty string for blank nodes.
func (v *Value) Str() string {
	if v.IsStringLiteral() {
		return v.str
	}
	switch t := v.Term().(type) {
	case *rdf.Literal:
		return t.Lexical
	case *rdf.IRI:
		return t.Value
	}
	return ""
}

// Lang returns the language tag of a language-tagged literal, or the empty
// string.
func (v *Value) Lang() string {
	return v.lang
}

// IsTypedString returns true for xsd:string literals (as opposed to simple
// literals).
func (v *Value) IsTypedString() bool {
	return v.kind == KindString && v.typed
}

// DateTime returns the fields of a temporal value.
func (v *Value) DateTime() (DateTime, bool) {
	if v.dt == nil {
		return DateTime{}, false
	}
	return *v.dt, true
}

// Duration returns the fields of a duration value.
func (v *Value) Duration() (Duration, bool) {
	if v.dur == nil {
		return Duration{}, false
	}
	return *v.dur, true
}

// Term returns the graph term for the value. Values constructed from a term
// return that term; others return a term with the canonical lexical form.
func (v *Value) Term() rdf.Term {
	v.termOnce.Do(func() {
		if v.term == nil {
			v.term = v.makeTerm()
		}
	})
	return v.term
}

// String returns the string form of the value's term.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	return v.Term().String()
}

// Key implements cmp.Key using the value's term.
func (v *Value) Key(b *strings.Builder) {
	v.Term().Key(b)
}

func (v *Value) makeTerm() rdf.Term {
	switch v.kind {
	case KindInteger:
		return rdf.NewTypedLiteral(v.num.String(), rdf.XSDInteger)
	case KindDecimal:
		return rdf.NewTypedLiteral(canonicalDecimal(v.num), rdf.XSDDecimal)
	case KindFloat:
		return rdf.NewTypedLiteral(canonicalFloat(v.flt, 32), rdf.XSDFloat)
	case KindDouble:
		return rdf.NewTypedLiteral(canonicalFloat(v.flt, 64), rdf.XSDDouble)
	case KindBoolean:
		if v.b {
			return rdf.NewTypedLiteral("true", rdf.XSDBoolean)
		}
		return rdf.NewTypedLiteral("false", rdf.XSDBoolean)
	case KindString:
		if v.typed {
			return rdf.NewTypedLiteral(v.str, rdf.XSDString)
		}
		return rdf.NewLiteral(v.str)
	case KindLangString:
		return rdf.NewLangLiteral(v.str, v.lang)
	case KindDuration:
		dt := rdf.XSDDuration
		switch {
		case v.dur.Months == 0:
			dt = rdf.XSDDayTimeDuration
		case v.dur.Seconds.IsZero():
			dt = rdf.XSDYearMonthDuration
		}
		return rdf.NewTypedLiteral(v.dur.String(), dt)
	}
	if v.kind.IsTemporal() {
		return rdf.NewTypedLiteral(v.dt.format(v.kind), temporalDatatypes[v.kind])
	}
	// Node and Unknown values are only built from terms.
	panic(Internalf("value of kind %v has no term", v.kind))
}

var temporalDatatypes = map[Kind]string{
	KindDateTime:   rdf.XSDDateTime,
	KindDate:       rdf.XSDDate,
	KindTime:       rdf.XSDTime,
	KindGYear:      rdf.XSDGYear,
	KindGYearMonth: rdf.XSDGYearMonth,
	KindGMonth:     rdf.XSDGMonth,
	KindGMonthDay:  rdf.XSDGMonthDay,
	KindGDay:       rdf.XSDGDay,
}
