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

package algebra

import (
	"strings"

	"github.com/ebay/sparqlcore/query/expr"
)

// Join produces the compatible combinations of its inputs' rows.
type Join struct {
	Left, Right Op
}

// LeftJoin is an optional join: it keeps every left row, extending it with
// the compatible right rows that satisfy Exprs, if there are any.
type LeftJoin struct {
	Left, Right Op
	Exprs       []expr.Expr
}

// Union produces the rows of both inputs.
type Union struct {
	Left, Right Op
}

// Conditional is a LeftJoin without expressions that's run by passing each
// left row into the right side.
type Conditional struct {
	Left, Right Op
}

// Minus produces the left rows that aren't compatible with any right row
// sharing a variable.
type Minus struct {
	Left, Right Op
}

func (*Join) anOp()        {}
func (*LeftJoin) anOp()    {}
func (*Union) anOp()       {}
func (*Conditional) anOp() {}
func (*Minus) anOp()       {}

// LeftOp implements Op2.
func (op *Join) LeftOp() Op { return op.Left }

// RightOp implements Op2.
func (op *Join) RightOp() Op { return op.Right }

// LeftOp implements Op2.
func (op *LeftJoin) LeftOp() Op { return op.Left }

// RightOp implements Op2.
func (op *LeftJoin) RightOp() Op { return op.Right }

// LeftOp implements Op2.
func (op *Union) LeftOp() Op { return op.Left }

// RightOp implements Op2.
func (op *Union) RightOp() Op { return op.Right }

// LeftOp implements Op2.
func (op *Conditional) LeftOp() Op { return op.Left }

// RightOp implements Op2.
func (op *Conditional) RightOp() Op { return op.Right }

// LeftOp implements Op2.
func (op *Minus) LeftOp() Op { return op.Left }

// RightOp implements Op2.
func (op *Minus) RightOp() Op { return op.Right }

// CopyWith implements Op2.
func (op *Join) CopyWith(left, right Op) Op2 {
	return &Join{Left: left, Right: right}
}

// CopyWith implements Op2.
func (op *LeftJoin) CopyWith(left, right Op) Op2 {
	return &LeftJoin{Left: left, Right: right, Exprs: op.Exprs}
}

// CopyWith implements Op2.
func (op *Union) CopyWith(left, right Op) Op2 {
	return &Union{Left: left, Right: right}
}

// CopyWith implements Op2.
func (op *Conditional) CopyWith(left, right Op) Op2 {
	return &Conditional{Left: left, Right: right}
}

// CopyWith implements Op2.
func (op *Minus) CopyWith(left, right Op) Op2 {
	return &Minus{Left: left, Right: right}
}

func (*Join) String() string {
	return "Join"
}

// Key implements cmp.Key.
func (op *Join) Key(b *strings.Builder) { writeKey(b, op) }

func (op *LeftJoin) String() string {
	var b strings.Builder
	b.WriteString("LeftJoin")
	writeExprs(&b, op.Exprs)
	return b.String()
}

// Key implements cmp.Key.
func (op *LeftJoin) Key(b *strings.Builder) { writeKey(b, op) }

func (*Union) String() string {
	return "Union"
}

// Key implements cmp.Key.
func (op *Union) Key(b *strings.Builder) { writeKey(b, op) }

func (*Conditional) String() string {
	return "Conditional"
}

// Key implements cmp.Key.
func (op *Conditional) Key(b *strings.Builder) { writeKey(b, op) }

func (*Minus) String() string {
	return "Minus"
}

// Key implements cmp.Key.
func (op *Minus) Key(b *strings.Builder) { writeKey(b, op) }

// NewUnion returns the union of left and right. If either is nil, it returns
// the other one.
func NewUnion(left, right Op) Op {
	switch {
	case left == nil:
		return right
	case right == nil:
		return left
	}
	return &Union{Left: left, Right: right}
}

// IsJoinIdentity returns true if joining with op leaves the other side
// unchanged, which is the case for the unit table. Joins with the identity are
// not removed when they're built, since that can change variable scoping
// under OPTIONAL and UNION; it's left to optimizers.
func IsJoinIdentity(op Op) bool {
	t, ok := op.(*Table)
	return ok && t.IsUnit()
}
