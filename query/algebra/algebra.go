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

// Package algebra defines query plans as an immutable tree of operators.
// Leaf operators match patterns against the data; the others combine, filter,
// and reshape the rows their inputs produce.
//
// Operators are never modified once built. Rewrites go through Transform (or
// the helpers built on it), which copies only the nodes that change and
// shares the rest of the tree.
package algebra

import (
	"fmt"
	"strings"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/ebay/sparqlcore/util/cmp"
)

// An Op is a node in an operator tree.
type Op interface {
	// String describes the node itself, without its inputs. See the String
	// function for rendering a whole tree.
	String() string
	// Key serializes the node together with all of its inputs.
	cmp.Key
	anOp()
}

// An Op0 is a leaf operator.
type Op0 interface {
	Op
	anOp0()
}

// An Op1 has a single input.
type Op1 interface {
	Op
	SubOp() Op
	// CopyWith returns a copy of the operator that reads from sub instead.
	CopyWith(sub Op) Op1
}

// An Op2 has a left and a right input.
type Op2 interface {
	Op
	LeftOp() Op
	RightOp() Op
	// CopyWith returns a copy of the operator with the given inputs.
	CopyWith(left, right Op) Op2
}

// An OpN has an ordered list of inputs.
type OpN interface {
	Op
	SubOps() []Op
	// CopyWith returns a copy of the operator with the given inputs. The
	// slice is not copied.
	CopyWith(subs []Op) OpN
}

// ImplementOp is a list of types that implement Op. This serves as
// documentation and as a compile-time check.
var ImplementOp = []Op{
	new(BGP),
	new(QuadPattern),
	new(TriplePattern),
	new(PathPattern),
	new(Table),
	new(Null),
	new(Extension),

	new(Filter),
	new(Project),
	new(Extend),
	new(Assign),
	new(Distinct),
	new(Reduced),
	new(OrderBy),
	new(Slice),
	new(TopN),
	new(Group),
	new(Graph),
	new(Service),
	new(Label),
	new(PropFunc),
	new(Annotated),

	new(Join),
	new(LeftJoin),
	new(Union),
	new(Conditional),
	new(Minus),

	new(Sequence),
	new(Disjunction),
}

// ImplementOp0 is a list of types that implement Op0.
var ImplementOp0 = []Op0{
	new(BGP),
	new(QuadPattern),
	new(TriplePattern),
	new(PathPattern),
	new(Table),
	new(Null),
	new(Extension),
}

// Inputs returns the inputs of op, in order. Annotated nodes without a child
// have no inputs.
func Inputs(op Op) []Op {
	switch op := op.(type) {
	case Op0:
		return nil
	case Op1:
		if sub := op.SubOp(); sub != nil {
			return []Op{sub}
		}
		return nil
	case Op2:
		return []Op{op.LeftOp(), op.RightOp()}
	case OpN:
		return op.SubOps()
	}
	panic(fmt.Sprintf("Unexpected operator type %T", op))
}

// writeKey writes op's description followed by the keys of its inputs.
func writeKey(b *strings.Builder, op Op) {
	b.WriteString(op.String())
	inputs := Inputs(op)
	if len(inputs) == 0 {
		return
	}
	b.WriteString(" (")
	for i, in := range inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		in.Key(b)
	}
	b.WriteByte(')')
}

// BGP is a basic graph pattern: a conjunction of triple patterns.
type BGP struct {
	Triples []rdf.Triple
}

// QuadPattern is a conjunction of quad patterns.
type QuadPattern struct {
	Quads []rdf.Quad
}

// TriplePattern matches a single triple pattern.
type TriplePattern struct {
	Triple rdf.Triple
}

// PathPattern matches a property path between a subject and an object.
type PathPattern struct {
	Subject rdf.Term
	Path    rdf.Path
	Object  rdf.Term
}

// Table is an inline table of rows. Each row holds one term per variable in
// Vars; a nil term leaves that variable unbound.
type Table struct {
	Vars []string
	Rows [][]rdf.Term
}

// Unit returns the table with one row and no variables. Joining with it has
// no effect.
func Unit() *Table {
	return &Table{Rows: [][]rdf.Term{{}}}
}

// Empty returns the table with no rows.
func Empty() *Table {
	return &Table{}
}

// Null is an operator that produces no rows and binds no variables. It's used
// as a placeholder where a plan has no pattern.
type Null struct{}

func (*BGP) anOp()            {}
func (*BGP) anOp0()           {}
func (*QuadPattern) anOp()    {}
func (*QuadPattern) anOp0()   {}
func (*TriplePattern) anOp()  {}
func (*TriplePattern) anOp0() {}
func (*PathPattern) anOp()    {}
func (*PathPattern) anOp0()   {}
func (*Table) anOp()          {}
func (*Table) anOp0()         {}
func (*Null) anOp()           {}
func (*Null) anOp0()          {}

func (op *BGP) String() string {
	var b strings.Builder
	b.WriteString("BGP")
	for i, t := range op.Triples {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(" . ")
		}
		t.Key(&b)
	}
	return b.String()
}

// Key implements cmp.Key.
func (op *BGP) Key(b *strings.Builder) { writeKey(b, op) }

func (op *QuadPattern) String() string {
	var b strings.Builder
	b.WriteString("Quads")
	for i, q := range op.Quads {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(" . ")
		}
		q.Key(&b)
	}
	return b.String()
}

// Key implements cmp.Key.
func (op *QuadPattern) Key(b *strings.Builder) { writeKey(b, op) }

func (op *TriplePattern) String() string {
	return "Triple " + op.Triple.String()
}

// Key implements cmp.Key.
func (op *TriplePattern) Key(b *strings.Builder) { writeKey(b, op) }

func (op *PathPattern) String() string {
	var b strings.Builder
	b.WriteString("Path ")
	writeTerm(&b, op.Subject)
	b.WriteByte(' ')
	op.Path.Key(&b)
	b.WriteByte(' ')
	writeTerm(&b, op.Object)
	return b.String()
}

// Key implements cmp.Key.
func (op *PathPattern) Key(b *strings.Builder) { writeKey(b, op) }

// IsUnit returns true if the table has exactly one row and no variables.
func (op *Table) IsUnit() bool {
	return len(op.Vars) == 0 && len(op.Rows) == 1
}

// IsEmpty returns true if the table has no rows.
func (op *Table) IsEmpty() bool {
	return len(op.Rows) == 0
}

func (op *Table) String() string {
	switch {
	case op.IsUnit():
		return "Table unit"
	case op.IsEmpty() && len(op.Vars) == 0:
		return "Table empty"
	}
	var b strings.Builder
	b.WriteString("Table")
	writeVars(&b, op.Vars)
	for _, row := range op.Rows {
		b.WriteString(" [")
		for i, t := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeTerm(&b, t)
		}
		b.WriteByte(']')
	}
	return b.String()
}

// Key implements cmp.Key.
func (op *Table) Key(b *strings.Builder) { writeKey(b, op) }

func (*Null) String() string {
	return "Null"
}

// Key implements cmp.Key.
func (op *Null) Key(b *strings.Builder) { writeKey(b, op) }

// writeTerm writes t's key, or '_' if t is nil.
func writeTerm(b *strings.Builder, t rdf.Term) {
	if t == nil {
		b.WriteByte('_')
		return
	}
	t.Key(b)
}

// writeVars writes a space followed by each variable name.
func writeVars(b *strings.Builder, vars []string) {
	for _, v := range vars {
		b.WriteString(" ?")
		b.WriteString(v)
	}
}
