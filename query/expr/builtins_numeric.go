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

package expr

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"math"

	"github.com/ebay/sparqlcore/rdf/value"
	"github.com/shopspring/decimal"
)

// Numeric functions. Each keeps the numeric type of its argument.
var (
	Abs = register(numericFunc("ABS",
		func(d decimal.Decimal) decimal.Decimal { return d.Abs() },
		math.Abs))
	Round = register(numericFunc("ROUND",
		func(d decimal.Decimal) decimal.Decimal { return d.Add(decimal.New(5, -1)).Floor() },
		roundHalfUp))
	Ceil  = register(numericFunc("CEIL", decimal.Decimal.Ceil, math.Ceil))
	Floor = register(numericFunc("FLOOR", decimal.Decimal.Floor, math.Floor))
)

func numericFunc(name string, dec func(decimal.Decimal) decimal.Decimal, flt func(float64) float64) *Function {
	return &Function{Name: name, MinArgs: 1, MaxArgs: 1,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			v := args[0]
			switch v.Kind() {
			case value.KindInteger:
				return value.NewIntegerDecimal(dec(v.Decimal())), nil
			case value.KindDecimal:
				return value.NewDecimal(dec(v.Decimal())), nil
			case value.KindFloat:
				return value.NewFloat(flt(v.Float())), nil
			case value.KindDouble:
				return value.NewDouble(flt(v.Float())), nil
			}
			return nil, value.Errorf("%v: %v is not numeric", name, v)
		}}
}

// Date and time accessors.
var (
	Year = register(temporalAccessor("YEAR",
		[]value.Kind{value.KindDateTime, value.KindDate, value.KindGYear, value.KindGYearMonth},
		func(dt value.DateTime) *value.Value { return value.NewInteger(dt.Year) }))
	Month = register(temporalAccessor("MONTH",
		[]value.Kind{value.KindDateTime, value.KindDate, value.KindGYearMonth, value.KindGMonth, value.KindGMonthDay},
		func(dt value.DateTime) *value.Value { return value.NewInteger(int64(dt.Month)) }))
	Day = register(temporalAccessor("DAY",
		[]value.Kind{value.KindDateTime, value.KindDate, value.KindGMonthDay, value.KindGDay},
		func(dt value.DateTime) *value.Value { return value.NewInteger(int64(dt.Day)) }))
	Hours = register(temporalAccessor("HOURS",
		[]value.Kind{value.KindDateTime, value.KindTime},
		func(dt value.DateTime) *value.Value { return value.NewInteger(int64(dt.Hour)) }))
	Minutes = register(temporalAccessor("MINUTES",
		[]value.Kind{value.KindDateTime, value.KindTime},
		func(dt value.DateTime) *value.Value { return value.NewInteger(int64(dt.Minute)) }))
	Seconds = register(temporalAccessor("SECONDS",
		[]value.Kind{value.KindDateTime, value.KindTime},
		func(dt value.DateTime) *value.Value { return value.NewDecimal(dt.Second) }))
	// TZ returns the timezone as written, or an empty string.
	TZ = register(temporalAccessor("TZ", nil,
		func(dt value.DateTime) *value.Value { return value.NewString(dt.TZString()) }))
	// Timezone returns the timezone as an xsd:dayTimeDuration. It fails for
	// values without a timezone.
	Timezone = register(&Function{Name: "TIMEZONE", MinArgs: 1, MaxArgs: 1,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			dt, ok := args[0].DateTime()
			if !ok {
				return nil, value.Errorf("TIMEZONE: %v is not a date or time", args[0])
			}
			if !dt.HasTZ {
				return nil, value.Errorf("TIMEZONE: %v has no timezone", args[0])
			}
			return value.NewDuration(value.Duration{Seconds: decimal.NewFromInt(int64(dt.TZ) * 60)}), nil
		}})
)

// temporalAccessor returns a function that extracts a field from values of
// the given kinds. A nil kinds list accepts any date or time.
func temporalAccessor(name string, kinds []value.Kind, field func(value.DateTime) *value.Value) *Function {
	return &Function{Name: name, MinArgs: 1, MaxArgs: 1,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			dt, ok := args[0].DateTime()
			if ok && kinds != nil {
				ok = false
				for _, k := range kinds {
					ok = ok || args[0].Kind() == k
				}
			}
			if !ok {
				return nil, value.Errorf("%v: %v has no such field", name, args[0])
			}
			return field(dt), nil
		}}
}

// Hash functions. Results are cached per Env.
var (
	MD5    = register(digestFunc("MD5", md5.New))
	SHA1   = register(digestFunc("SHA1", sha1.New))
	SHA256 = register(digestFunc("SHA256", sha256.New))
	SHA384 = register(digestFunc("SHA384", sha512.New384))
	SHA512 = register(digestFunc("SHA512", sha512.New))
)

func digestFunc(name string, newHash func() hash.Hash) *Function {
	compute := func(s string) string {
		h := newHash()
		h.Write([]byte(s))
		return hex.EncodeToString(h.Sum(nil))
	}
	return &Function{Name: name, MinArgs: 1, MaxArgs: 1,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			s, err := plainString(name, args[0])
			if err != nil {
				return nil, err
			}
			return value.NewString(env.digest(name, s, compute)), nil
		}}
}
