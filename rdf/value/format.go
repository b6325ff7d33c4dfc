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
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// canonicalDecimal formats d with at least one digit after the decimal point,
// like "2.0" or "-0.25".
func canonicalDecimal(d decimal.Decimal) string {
	s := d.String()
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// canonicalFloat formats f in the canonical xsd:double style, like "1.0E1"
// or "-2.5E-3". bitSize is 32 for xsd:float and 64 for xsd:double.
func canonicalFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0E0"
		}
		return "0.0E0"
	}
	s := strconv.FormatFloat(f, 'E', -1, bitSize)
	mantissa, exp := s, "0"
	if i := strings.IndexByte(s, 'E'); i >= 0 {
		mantissa, exp = s[:i], s[i+1:]
	}
	if !strings.ContainsRune(mantissa, '.') {
		mantissa += ".0"
	}
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(exp, "+-")
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	if neg {
		exp = "-" + exp
	}
	return mantissa + "E" + exp
}
