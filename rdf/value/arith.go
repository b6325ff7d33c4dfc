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
	"github.com/shopspring/decimal"
)

// DivisionPrecision is the number of fractional digits kept when dividing
// xsd:decimal and xsd:integer values.
const DivisionPrecision = 24

// An arithOp defines one binary numeric operator for each promoted kind.
type arithOp struct {
	name string
	dec  func(a, b decimal.Decimal) (decimal.Decimal, error)
	flt  func(a, b float64) float64
}

var (
	addOp = arithOp{"+",
		func(a, b decimal.Decimal) (decimal.Decimal, error) { return a.Add(b), nil },
		func(a, b float64) float64 { return a + b },
	}
	subtractOp = arithOp{"-",
		func(a, b decimal.Decimal) (decimal.Decimal, error) { return a.Sub(b), nil },
		func(a, b float64) float64 { return a - b },
	}
	multiplyOp = arithOp{"*",
		func(a, b decimal.Decimal) (decimal.Decimal, error) { return a.Mul(b), nil },
		func(a, b float64) float64 { return a * b },
	}
	divideOp = arithOp{"/",
		func(a, b decimal.Decimal) (decimal.Decimal, error) {
			if b.IsZero() {
				return decimal.Zero, Errorf("division by zero")
			}
			return a.DivRound(b, DivisionPrecision), nil
		},
		func(a, b float64) float64 { return a / b },
	}
)

// Add returns a + b, promoting both operands to the wider numeric kind.
func Add(a, b *Value) (*Value, error) {
	return addOp.apply(a, b)
}

// Subtract returns a - b, promoting both operands to the wider numeric kind.
func Subtract(a, b *Value) (*Value, error) {
	return subtractOp.apply(a, b)
}

// Multiply returns a * b, promoting both operands to the wider numeric kind.
func Multiply(a, b *Value) (*Value, error) {
	return multiplyOp.apply(a, b)
}

// Divide returns a / b. Dividing two integers yields a decimal. Dividing an
// integer or decimal by zero is an evaluation error; float and double
// division follow IEEE 754 and yield infinities or NaN instead.
func Divide(a, b *Value) (*Value, error) {
	return divideOp.apply(a, b)
}

func (op *arithOp) apply(a, b *Value) (*Value, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return nil, Errorf("operator %v requires numeric arguments, got %v and %v", op.name, a, b)
	}
	kind := promotedKind(a, b)
	switch kind {
	case KindInteger, KindDecimal:
		res, err := op.dec(a.num, b.num)
		if err != nil {
			return nil, err
		}
		if kind == KindInteger && op.name != "/" {
			return &Value{kind: KindInteger, num: res}, nil
		}
		return NewDecimal(res), nil
	case KindFloat:
		return NewFloat(op.flt(a.floatAs(KindFloat), b.floatAs(KindFloat))), nil
	}
	return NewDouble(op.flt(a.Float(), b.Float())), nil
}

// Negate returns -a for a numeric value.
func Negate(a *Value) (*Value, error) {
	switch a.kind {
	case KindInteger, KindDecimal:
		return &Value{kind: a.kind, num: a.num.Neg()}, nil
	case KindFloat:
		return NewFloat(-a.flt), nil
	case KindDouble:
		return NewDouble(-a.flt), nil
	}
	return nil, Errorf("unary minus requires a numeric argument, got %v", a)
}

// Promote converts a numeric value to the given numeric kind, which must be
// at least as wide as the value's own kind.
func Promote(a *Value, kind Kind) (*Value, error) {
	if !a.IsNumeric() || !kind.IsNumeric() || kind < a.kind {
		return nil, Errorf("cannot promote %v to %v", a, kind)
	}
	if kind == a.kind {
		return a, nil
	}
	switch kind {
	case KindDecimal:
		return NewDecimal(a.num), nil
	case KindFloat:
		return NewFloat(a.Float()), nil
	}
	return NewDouble(a.Float()), nil
}
