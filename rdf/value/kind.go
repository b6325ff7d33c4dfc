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

//go:generate stringer -type=Kind -trimprefix=Kind

// Kind identifies how a Value's term was decoded.
type Kind uint8

// Kinds of values. Integer, Decimal, Float, and Double form the numeric
// promotion chain, in that order.
const (
	KindUnknown Kind = iota
	KindInteger
	KindDecimal
	KindFloat
	KindDouble
	KindBoolean
	KindString
	KindDateTime
	KindDate
	KindTime
	KindGYear
	KindGYearMonth
	KindGMonth
	KindGMonthDay
	KindGDay
	KindDuration
	KindLangString
	KindNode
)

// IsNumeric returns true for the four numeric kinds.
func (k Kind) IsNumeric() bool {
	return k >= KindInteger && k <= KindDouble
}

// IsTemporal returns true for dateTime, date, time, and the g* kinds.
func (k Kind) IsTemporal() bool {
	return k >= KindDateTime && k <= KindGDay
}

// Space is the classification bucket that selects which comparison rule
// applies to a pair of values. Values in different spaces are never equal by
// value.
type Space uint8

// Value spaces.
const (
	SpaceUnknown Space = iota
	SpaceNumeric
	SpaceDateTime
	SpaceDate
	SpaceTime
	SpaceDuration
	SpaceGYear
	SpaceGYearMonth
	SpaceGMonth
	SpaceGMonthDay
	SpaceGDay
	SpaceString
	SpaceBoolean
	SpaceNode
	SpaceLang
)

var spaceNames = [...]string{
	SpaceUnknown:    "unknown",
	SpaceNumeric:    "numeric",
	SpaceDateTime:   "dateTime",
	SpaceDate:       "date",
	SpaceTime:       "time",
	SpaceDuration:   "duration",
	SpaceGYear:      "gYear",
	SpaceGYearMonth: "gYearMonth",
	SpaceGMonth:     "gMonth",
	SpaceGMonthDay:  "gMonthDay",
	SpaceGDay:       "gDay",
	SpaceString:     "string",
	SpaceBoolean:    "boolean",
	SpaceNode:       "node",
	SpaceLang:       "lang",
}

func (s Space) String() string {
	if int(s) < len(spaceNames) {
		return spaceNames[s]
	}
	return "Space(?)"
}

// Classify returns the value space of v. It's a pure function of the kind
// that decoding assigned, so two values decoded from equal terms always
// classify identically.
func Classify(v *Value) Space {
	switch v.kind {
	case KindInteger, KindDecimal, KindFloat, KindDouble:
		return SpaceNumeric
	case KindDateTime:
		return SpaceDateTime
	case KindDate:
		return SpaceDate
	case KindTime:
		return SpaceTime
	case KindDuration:
		return SpaceDuration
	case KindGYear:
		return SpaceGYear
	case KindGYearMonth:
		return SpaceGYearMonth
	case KindGMonth:
		return SpaceGMonth
	case KindGMonthDay:
		return SpaceGMonthDay
	case KindGDay:
		return SpaceGDay
	case KindString:
		return SpaceString
	case KindBoolean:
		return SpaceBoolean
	case KindNode:
		return SpaceNode
	case KindLangString:
		return SpaceLang
	}
	return SpaceUnknown
}
