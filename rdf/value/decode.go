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
	"regexp"
	"strconv"
	"strings"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/shopspring/decimal"
)

// FromTerm decodes the given IRI, blank node, or literal into a Value. A
// literal whose datatype isn't recognized, or whose lexical form isn't valid
// for its datatype, decodes as KindUnknown; decoding never fails.
func FromTerm(t rdf.Term) *Value {
	switch t := t.(type) {
	case *rdf.IRI, *rdf.BlankNode:
		return &Value{kind: KindNode, term: t}
	case *rdf.Literal:
		v := &Value{term: t}
		decodeLiteral(v, t)
		return v
	}
	panic(Internalf("FromTerm called with %T", t))
}

func decodeLiteral(v *Value, lit *rdf.Literal) {
	switch {
	case lit.Lang != "":
		v.kind, v.str, v.lang = KindLangString, lit.Lexical, lit.Lang
		return
	case lit.Datatype == "":
		v.kind, v.str = KindString, lit.Lexical
		return
	case lit.Datatype == rdf.XSDString:
		v.kind, v.str, v.typed = KindString, lit.Lexical, true
		return
	}
	lexical := strings.Trim(lit.Lexical, " \t\r\n")
	for _, d := range decoders {
		if d.accepts(lit.Datatype) && d.decode(v, lit.Datatype, lexical) {
			v.kind = d.kind
			return
		}
	}
	v.kind = KindUnknown
}

// A decoder recognizes the lexical forms of one kind of value.
type decoder struct {
	kind    Kind
	accepts func(datatype string) bool
	// decode sets the payload of v and returns true if lexical is a valid
	// form for the datatype.
	decode func(v *Value, datatype, lexical string) bool
}

// decoders are tried in order; the first that accepts the datatype and
// successfully decodes the lexical form wins.
var decoders = []decoder{
	{KindInteger, isIntegerDatatype, decodeInteger},
	{KindDecimal, is(rdf.XSDDecimal), decodeDecimal},
	{KindFloat, is(rdf.XSDFloat), decodeFloat(32)},
	{KindDouble, is(rdf.XSDDouble), decodeFloat(64)},
	{KindDateTime, is(rdf.XSDDateTime, rdf.XSDDateTimeStamp), decodeTemporal(dateTimeRE, KindDateTime)},
	{KindDate, is(rdf.XSDDate), decodeTemporal(dateRE, KindDate)},
	{KindTime, is(rdf.XSDTime), decodeTemporal(timeRE, KindTime)},
	{KindGYear, is(rdf.XSDGYear), decodeTemporal(gYearRE, KindGYear)},
	{KindGYearMonth, is(rdf.XSDGYearMonth), decodeTemporal(gYearMonthRE, KindGYearMonth)},
	{KindGMonth, is(rdf.XSDGMonth), decodeTemporal(gMonthRE, KindGMonth)},
	{KindGMonthDay, is(rdf.XSDGMonthDay), decodeTemporal(gMonthDayRE, KindGMonthDay)},
	{KindGDay, is(rdf.XSDGDay), decodeTemporal(gDayRE, KindGDay)},
	{KindDuration, is(rdf.XSDDuration, rdf.XSDDayTimeDuration, rdf.XSDYearMonthDuration), decodeDuration},
	{KindBoolean, is(rdf.XSDBoolean), decodeBoolean},
}

func is(datatypes ...string) func(string) bool {
	return func(dt string) bool {
		for _, d := range datatypes {
			if d == dt {
				return true
			}
		}
		return false
	}
}

// An integerRange holds the facets of xsd:integer and the types derived from
// it. A nil bound is unbounded.
type integerRange struct {
	min, max *decimal.Decimal
}

func bound(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var integerRanges = map[string]integerRange{
	rdf.XSDInteger:            {},
	rdf.XSDLong:               {bound("-9223372036854775808"), bound("9223372036854775807")},
	rdf.XSDInt:                {bound("-2147483648"), bound("2147483647")},
	rdf.XSDShort:              {bound("-32768"), bound("32767")},
	rdf.XSDByte:               {bound("-128"), bound("127")},
	rdf.XSDNonNegativeInteger: {bound("0"), nil},
	rdf.XSDPositiveInteger:    {bound("1"), nil},
	rdf.XSDNonPositiveInteger: {nil, bound("0")},
	rdf.XSDNegativeInteger:    {nil, bound("-1")},
	rdf.XSDUnsignedLong:       {bound("0"), bound("18446744073709551615")},
	rdf.XSDUnsignedInt:        {bound("0"), bound("4294967295")},
	rdf.XSDUnsignedShort:      {bound("0"), bound("65535")},
	rdf.XSDUnsignedByte:       {bound("0"), bound("255")},
}

func isIntegerDatatype(dt string) bool {
	_, ok := integerRanges[dt]
	return ok
}

var (
	integerRE = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalRE = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
	floatRE   = regexp.MustCompile(`^([+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?|[+-]?INF|NaN)$`)
)

func decodeInteger(v *Value, dt, lexical string) bool {
	if !integerRE.MatchString(lexical) {
		return false
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(lexical, "+"))
	if err != nil {
		return false
	}
	r := integerRanges[dt]
	if (r.min != nil && d.LessThan(*r.min)) || (r.max != nil && d.GreaterThan(*r.max)) {
		return false
	}
	v.num = d
	return true
}

func decodeDecimal(v *Value, dt, lexical string) bool {
	if !decimalRE.MatchString(lexical) {
		return false
	}
	s := strings.TrimPrefix(lexical, "+")
	// "1." and ".5" are valid xsd:decimal forms.
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") || strings.HasPrefix(s, "-.") {
		s = strings.Replace(s, ".", "0.", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	v.num = d
	return true
}

func decodeFloat(bitSize int) func(*Value, string, string) bool {
	return func(v *Value, dt, lexical string) bool {
		if !floatRE.MatchString(lexical) {
			return false
		}
		f, err := strconv.ParseFloat(lexical, bitSize)
		if err != nil {
			// Out of range values round to an infinity or zero.
			numErr, ok := err.(*strconv.NumError)
			if !ok || numErr.Err != strconv.ErrRange {
				return false
			}
		}
		if bitSize == 32 && !math.IsNaN(f) {
			f = float64(float32(f))
		}
		v.flt = f
		return true
	}
}

func decodeBoolean(v *Value, dt, lexical string) bool {
	switch lexical {
	case "true", "1":
		v.b = true
		return true
	case "false", "0":
		v.b = false
		return true
	}
	return false
}

const (
	yearPat   = `(-?(?:[1-9][0-9]{4,}|[0-9]{4}))`
	tzPat     = `(Z|[+-][0-9]{2}:[0-9]{2})?`
	timePat   = `([0-9]{2}):([0-9]{2}):([0-9]{2}(?:\.[0-9]+)?)`
	twoDigits = `([0-9]{2})`
)

// Each temporal expression captures year, month, day, hour, minute, second,
// and timezone groups, in that order, for the fields the kind carries.
var (
	dateTimeRE   = regexp.MustCompile(`^` + yearPat + `-` + twoDigits + `-` + twoDigits + `T` + timePat + tzPat + `$`)
	dateRE       = regexp.MustCompile(`^` + yearPat + `-` + twoDigits + `-` + twoDigits + tzPat + `$`)
	timeRE       = regexp.MustCompile(`^` + timePat + tzPat + `$`)
	gYearRE      = regexp.MustCompile(`^` + yearPat + tzPat + `$`)
	gYearMonthRE = regexp.MustCompile(`^` + yearPat + `-` + twoDigits + tzPat + `$`)
	gMonthRE     = regexp.MustCompile(`^--` + twoDigits + tzPat + `$`)
	gMonthDayRE  = regexp.MustCompile(`^--` + twoDigits + `-` + twoDigits + tzPat + `$`)
	gDayRE       = regexp.MustCompile(`^---` + twoDigits + tzPat + `$`)
)

// The reference year for kinds without one. 1972 is a leap year, so
// --02-29 is a valid gMonthDay.
const referenceYear = 1972

func decodeTemporal(re *regexp.Regexp, kind Kind) func(*Value, string, string) bool {
	return func(v *Value, dt, lexical string) bool {
		m := re.FindStringSubmatch(lexical)
		if m == nil {
			return false
		}
		fields := DateTime{Year: referenceYear, Month: 1, Day: 1, Second: decimal.Zero}
		groups := m[1:]
		next := func() string {
			g := groups[0]
			groups = groups[1:]
			return g
		}
		var err error
		switch kind {
		case KindDateTime, KindDate, KindGYear, KindGYearMonth:
			fields.Year, err = strconv.ParseInt(next(), 10, 64)
			if err != nil {
				return false
			}
		case KindTime:
			fields.Month, fields.Day = 12, 31
		case KindGDay:
			fields.Month = 12
		}
		switch kind {
		case KindDateTime, KindDate, KindGYearMonth, KindGMonth, KindGMonthDay:
			fields.Month = atoi(next())
		}
		switch kind {
		case KindDateTime, KindDate, KindGMonthDay, KindGDay:
			fields.Day = atoi(next())
		}
		endOfDay := false
		if kind == KindDateTime || kind == KindTime {
			fields.Hour = atoi(next())
			fields.Minute = atoi(next())
			fields.Second, err = decimal.NewFromString(next())
			if err != nil {
				return false
			}
			if fields.Hour == 24 {
				// 24:00:00 is the first instant of the following day.
				if fields.Minute != 0 || !fields.Second.IsZero() {
					return false
				}
				endOfDay = true
				fields.Hour = 0
			}
			if fields.Hour > 23 || fields.Minute > 59 || fields.Second.GreaterThanOrEqual(decimal.NewFromInt(60)) {
				return false
			}
		}
		if fields.Month < 1 || fields.Month > 12 {
			return false
		}
		if fields.Day < 1 || fields.Day > daysInMonth(fields.Year, fields.Month) {
			return false
		}
		if tz := next(); tz != "" {
			offset, ok := parseTZ(tz)
			if !ok {
				return false
			}
			fields.HasTZ, fields.TZ = true, offset
		} else if dt == rdf.XSDDateTimeStamp {
			return false
		}
		if endOfDay {
			if kind == KindDateTime {
				fields.addDay()
			}
		}
		v.dt = &fields
		return true
	}
}

// addDay advances the date fields by one day.
func (dt *DateTime) addDay() {
	dt.Day++
	if dt.Day > daysInMonth(dt.Year, dt.Month) {
		dt.Day = 1
		dt.Month++
		if dt.Month > 12 {
			dt.Month = 1
			dt.Year++
		}
	}
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

// parseTZ returns the offset in minutes for "Z" or "+hh:mm"/"-hh:mm".
func parseTZ(tz string) (int, bool) {
	if tz == "Z" {
		return 0, true
	}
	h, m := atoi(tz[1:3]), atoi(tz[4:6])
	if m > 59 || h > 14 || (h == 14 && m != 0) {
		return 0, false
	}
	offset := h*60 + m
	if tz[0] == '-' {
		offset = -offset
	}
	return offset, true
}

var durationRE = regexp.MustCompile(
	`^(-)?P(?:([0-9]+)Y)?(?:([0-9]+)M)?(?:([0-9]+)D)?(T(?:([0-9]+)H)?(?:([0-9]+)M)?(?:([0-9]+(?:\.[0-9]+)?)S)?)?$`)

func decodeDuration(v *Value, dt, lexical string) bool {
	m := durationRE.FindStringSubmatch(lexical)
	if m == nil {
		return false
	}
	neg, years, months, days, tpart, hours, minutes, seconds := m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8]
	if years == "" && months == "" && days == "" && tpart == "" {
		return false
	}
	if tpart != "" && hours == "" && minutes == "" && seconds == "" {
		return false
	}
	switch dt {
	case rdf.XSDDayTimeDuration:
		if years != "" || months != "" {
			return false
		}
	case rdf.XSDYearMonthDuration:
		if days != "" || tpart != "" {
			return false
		}
	}
	var err error
	parse := func(s string) decimal.Decimal {
		if s == "" || err != nil {
			return decimal.Zero
		}
		var n decimal.Decimal
		n, err = decimal.NewFromString(s)
		return n
	}
	totalMonths := parse(years).Mul(decimal.NewFromInt(12)).Add(parse(months))
	secs := parse(days).Mul(decSecondsPerDay).
		Add(parse(hours).Mul(decimal.NewFromInt(3600))).
		Add(parse(minutes).Mul(decimal.NewFromInt(60))).
		Add(parse(seconds))
	if err != nil || totalMonths.GreaterThan(decMaxDurationMonths) {
		return false
	}
	d := Duration{Months: totalMonths.IntPart()}
	d.Seconds = secs
	if neg != "" {
		d = d.Negate()
	}
	v.dur = &d
	return true
}
