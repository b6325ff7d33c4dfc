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
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DateTime holds the fields of an xsd:dateTime or one of its partial
// relatives (date, time, and the g* kinds). Fields that a kind doesn't carry
// hold reference values, so that every kind orders the same way a full
// dateTime would: time values fall on 1972-12-31, gMonthDay and gMonth values
// in 1972, gDay values in December 1972, and missing days are the first of
// the month.
type DateTime struct {
	Year   int64
	Month  int
	Day    int
	Hour   int
	Minute int
	// Second is in the range [0, 60) and may carry a fraction.
	Second decimal.Decimal
	// HasTZ is true if the value carries a timezone, in which case TZ is its
	// offset from UTC, in minutes.
	HasTZ bool
	TZ    int
}

// Duration is an xsd:duration. Months and Seconds always have the same sign
// (or are zero).
type Duration struct {
	Months  int64
	Seconds decimal.Decimal
}

const (
	secondsPerDay = 86400
	// A timezone offset is at most 14 hours either way.
	maxTZSeconds = 14 * 3600
	// Longer durations don't decode, so that adding one to a reference
	// dateTime can't overflow the calendar arithmetic.
	maxDurationMonths = 12 * 1000000000000
)

var (
	decSecondsPerDay     = decimal.NewFromInt(secondsPerDay)
	decMaxTZ             = decimal.NewFromInt(maxTZSeconds)
	decMaxDurationMonths = decimal.NewFromInt(maxDurationMonths)
)

func isLeapYear(y int64) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func daysInMonth(y int64, m int) int {
	switch m {
	case 2:
		if isLeapYear(y) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// daysFromCivil returns the number of days from 1970-01-01 to the given date
// in the proleptic Gregorian calendar.
func daysFromCivil(y int64, m, d int) int64 {
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := int64((m + 9) % 12)
	doy := (153*mp+2)/5 + int64(d) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// localSeconds returns the seconds since the epoch for the wall-clock
// fields, ignoring the timezone.
func (dt *DateTime) localSeconds() decimal.Decimal {
	days := daysFromCivil(dt.Year, dt.Month, dt.Day)
	s := decimal.NewFromInt(days).Mul(decSecondsPerDay)
	s = s.Add(decimal.NewFromInt(int64(dt.Hour*3600 + dt.Minute*60)))
	return s.Add(dt.Second)
}

// instant returns the seconds since the epoch, normalized to UTC when the
// value has a timezone.
func (dt *DateTime) instant() decimal.Decimal {
	s := dt.localSeconds()
	if dt.HasTZ {
		s = s.Sub(decimal.NewFromInt(int64(dt.TZ * 60)))
	}
	return s
}

// compareDateTimes implements the order relation of XML Schema Part 2,
// section 3.2.7.3. When exactly one side has a timezone, the other is placed
// at both ends of the +/-14:00 window; if the results disagree, the
// comparison is indeterminate and ok is false.
func compareDateTimes(p, q *DateTime) (c int, ok bool) {
	ip, iq := p.instant(), q.instant()
	if p.HasTZ == q.HasTZ {
		return ip.Cmp(iq), true
	}
	if p.HasTZ {
		// q with timezone +14:00 is the earliest instant q could denote.
		if ip.LessThan(iq.Sub(decMaxTZ)) {
			return -1, true
		}
		if ip.GreaterThan(iq.Add(decMaxTZ)) {
			return 1, true
		}
		return 0, false
	}
	if ip.Add(decMaxTZ).LessThan(iq) {
		return -1, true
	}
	if ip.Sub(decMaxTZ).GreaterThan(iq) {
		return 1, true
	}
	return 0, false
}

// The reference dateTimes used to order durations, from XML Schema Part 2,
// section 3.2.6.2.
var durationReferences = []DateTime{
	{Year: 1696, Month: 9, Day: 1},
	{Year: 1697, Month: 2, Day: 1},
	{Year: 1903, Month: 3, Day: 1},
	{Year: 1903, Month: 7, Day: 1},
}

// addTo returns the instant reached by adding d to the reference dateTime
// ref, which must fall on the first of a month.
func (d *Duration) addTo(ref *DateTime) decimal.Decimal {
	total := ref.Year*12 + int64(ref.Month-1) + d.Months
	y := floorDiv(total, 12)
	m := int(total-y*12) + 1
	moved := DateTime{Year: y, Month: m, Day: ref.Day}
	return moved.localSeconds().Add(d.Seconds)
}

// compareDurations orders durations by adding each to the four reference
// dateTimes. The result is indeterminate unless all four agree, as for P1M
// and P30D.
func compareDurations(a, b *Duration) (c int, ok bool) {
	for i := range durationReferences {
		ref := &durationReferences[i]
		ci := a.addTo(ref).Cmp(b.addTo(ref))
		if i == 0 {
			c = ci
		} else if ci != c {
			return 0, false
		}
	}
	return c, true
}

// IsZero returns true for durations of zero length.
func (d Duration) IsZero() bool {
	return d.Months == 0 && d.Seconds.IsZero()
}

// Negate returns the duration with the opposite sign.
func (d Duration) Negate() Duration {
	return Duration{Months: -d.Months, Seconds: d.Seconds.Neg()}
}

// String returns the canonical lexical form, like "P1Y2M3DT4H5M6.5S".
func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}
	var b strings.Builder
	months, secs := d.Months, d.Seconds
	if months < 0 || secs.IsNegative() {
		b.WriteByte('-')
		months, secs = -months, secs.Neg()
	}
	b.WriteByte('P')
	if y := months / 12; y > 0 {
		fmt.Fprintf(&b, "%dY", y)
	}
	if m := months % 12; m > 0 {
		fmt.Fprintf(&b, "%dM", m)
	}
	days := secs.Div(decSecondsPerDay).Floor()
	secs = secs.Sub(days.Mul(decSecondsPerDay))
	if days.IsPositive() {
		fmt.Fprintf(&b, "%sD", days.String())
	}
	if secs.IsZero() {
		return b.String()
	}
	b.WriteByte('T')
	hours := secs.Div(decimal.NewFromInt(3600)).Floor()
	secs = secs.Sub(hours.Mul(decimal.NewFromInt(3600)))
	minutes := secs.Div(decimal.NewFromInt(60)).Floor()
	secs = secs.Sub(minutes.Mul(decimal.NewFromInt(60)))
	if hours.IsPositive() {
		fmt.Fprintf(&b, "%sH", hours.String())
	}
	if minutes.IsPositive() {
		fmt.Fprintf(&b, "%sM", minutes.String())
	}
	if secs.IsPositive() {
		fmt.Fprintf(&b, "%sS", secs.String())
	}
	return b.String()
}

func formatYear(b *strings.Builder, y int64) {
	if y < 0 {
		b.WriteByte('-')
		y = -y
	}
	fmt.Fprintf(b, "%04d", y)
}

func formatTZ(b *strings.Builder, dt *DateTime) {
	if !dt.HasTZ {
		return
	}
	if dt.TZ == 0 {
		b.WriteByte('Z')
		return
	}
	tz := dt.TZ
	sign := byte('+')
	if tz < 0 {
		sign = '-'
		tz = -tz
	}
	b.WriteByte(sign)
	fmt.Fprintf(b, "%02d:%02d", tz/60, tz%60)
}

func formatSeconds(b *strings.Builder, s decimal.Decimal) {
	str := s.String()
	if i := strings.IndexByte(str, '.'); i == 1 || (i < 0 && len(str) == 1) {
		b.WriteByte('0')
	}
	b.WriteString(str)
}

// TZString returns the timezone as written in a lexical form ("Z",
// "-05:00"), or the empty string if the value has none.
func (dt *DateTime) TZString() string {
	var b strings.Builder
	formatTZ(&b, dt)
	return b.String()
}

// format returns the canonical lexical form for the given temporal kind.
func (dt *DateTime) format(kind Kind) string {
	var b strings.Builder
	switch kind {
	case KindDateTime:
		formatYear(&b, dt.Year)
		fmt.Fprintf(&b, "-%02d-%02dT%02d:%02d:", dt.Month, dt.Day, dt.Hour, dt.Minute)
		formatSeconds(&b, dt.Second)
	case KindDate:
		formatYear(&b, dt.Year)
		fmt.Fprintf(&b, "-%02d-%02d", dt.Month, dt.Day)
	case KindTime:
		fmt.Fprintf(&b, "%02d:%02d:", dt.Hour, dt.Minute)
		formatSeconds(&b, dt.Second)
	case KindGYear:
		formatYear(&b, dt.Year)
	case KindGYearMonth:
		formatYear(&b, dt.Year)
		fmt.Fprintf(&b, "-%02d", dt.Month)
	case KindGMonth:
		fmt.Fprintf(&b, "--%02d", dt.Month)
	case KindGMonthDay:
		fmt.Fprintf(&b, "--%02d-%02d", dt.Month, dt.Day)
	case KindGDay:
		fmt.Fprintf(&b, "---%02d", dt.Day)
	default:
		panic(Internalf("format called with non-temporal kind %v", kind))
	}
	formatTZ(&b, dt)
	return b.String()
}
