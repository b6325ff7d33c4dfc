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
	"fmt"
	"strconv"
	"strings"

	"github.com/ebay/sparqlcore/query/expr"
	"github.com/ebay/sparqlcore/rdf"
)

// Filter passes through the rows of its input that satisfy every expression.
type Filter struct {
	Exprs []expr.Expr
	Sub   Op
}

// Project keeps only the named variables of each input row.
type Project struct {
	Vars []string
	Sub  Op
}

// A VarExpr binds a variable to the value of an expression. In a Group key,
// a nil Expr means the rows are grouped by the variable itself.
type VarExpr struct {
	Var  string
	Expr expr.Expr
}

// Extend adds a variable binding for each of its VarExprs, in order, to every
// input row. Each variable must not already be bound.
type Extend struct {
	Bindings []VarExpr
	Sub      Op
}

// Assign is like Extend but allows a variable to be bound already, in which
// case rows where the values differ are dropped.
type Assign struct {
	Bindings []VarExpr
	Sub      Op
}

// Distinct removes duplicate rows.
type Distinct struct {
	Sub Op
}

// Reduced may remove duplicate rows.
type Reduced struct {
	Sub Op
}

// SortDirection is the direction of a sort.
type SortDirection int

// Possible values for SortDirection.
const (
	// SortAsc puts smaller values first.
	SortAsc SortDirection = iota + 1
	// SortDesc puts larger values first.
	SortDesc
)

func (d SortDirection) String() string {
	switch d {
	case SortAsc:
		return "ASC"
	case SortDesc:
		return "DESC"
	}
	return fmt.Sprintf("SortDirection(%d)", int(d))
}

// A SortCondition is one expression in an ORDER BY clause.
type SortCondition struct {
	Direction SortDirection
	Expr      expr.Expr
}

// Key implements cmp.Key.
func (c SortCondition) Key(b *strings.Builder) {
	b.WriteString(c.Direction.String())
	b.WriteByte('(')
	c.Expr.Key(b)
	b.WriteByte(')')
}

// OrderBy sorts its input rows.
type OrderBy struct {
	Conditions []SortCondition
	Sub        Op
}

// NoLimit is the Limit of a Slice that keeps every row after the offset.
const NoLimit = -1

// Slice skips the first Offset input rows and then passes through at most
// Limit rows.
type Slice struct {
	Offset int64
	Limit  int64
	Sub    Op
}

// TopN sorts its input and keeps the first Limit rows. It's equivalent to a
// Slice over an OrderBy but can be run without sorting every row.
type TopN struct {
	Limit      int64
	Conditions []SortCondition
	Sub        Op
}

// An AggBinding binds a variable to the result of an aggregate.
type AggBinding struct {
	Var string
	Agg expr.Aggregator
}

// Group partitions its input rows by the Keys and computes the Aggregates
// over each partition, producing one row per partition.
type Group struct {
	Keys       []VarExpr
	Aggregates []AggBinding
	Sub        Op
}

// Graph evaluates its input against the named graph. Name is an IRI or a
// variable ranging over the graph names.
type Graph struct {
	Name rdf.Term
	Sub  Op
}

// Service sends its input pattern to a remote endpoint. If Silent is set,
// a failing endpoint produces a single empty row instead of an error.
type Service struct {
	Endpoint rdf.Term
	Silent   bool
	Sub      Op
}

// Label attaches a debugging label to its input. It has no effect on the
// results.
type Label struct {
	Label string
	Sub   Op
}

// PropFunc invokes a property function, which computes bindings for its
// subject and object arguments from the rows of its input. Each side holds
// one term, or a list of terms.
type PropFunc struct {
	Name    *rdf.IRI
	Subject []rdf.Term
	Object  []rdf.Term
	Sub     Op
}

func (*Filter) anOp()   {}
func (*Project) anOp()  {}
func (*Extend) anOp()   {}
func (*Assign) anOp()   {}
func (*Distinct) anOp() {}
func (*Reduced) anOp()  {}
func (*OrderBy) anOp()  {}
func (*Slice) anOp()    {}
func (*TopN) anOp()     {}
func (*Group) anOp()    {}
func (*Graph) anOp()    {}
func (*Service) anOp()  {}
func (*Label) anOp()    {}
func (*PropFunc) anOp() {}

// SubOp implements Op1.
func (op *Filter) SubOp() Op { return op.Sub }

// SubOp implements Op1.
func (op *Project) SubOp() Op { return op.Sub }

// SubOp implements Op1.
func (op *Extend) SubOp() Op { return op.Sub }

// SubOp implements Op1.
func (op *Assign) SubOp() Op { return op.Sub }

// SubOp implements Op1.
func (op *Distinct) SubOp() Op { return op.Sub }

// SubOp implements Op1.
func (op *Reduced) SubOp() Op { return op.Sub }

// SubOp implements Op1.
func (op *OrderBy) SubOp() Op { return op.Sub }

// SubOp implements Op1.
func (op *Slice) SubOp() Op { return op.Sub }

// SubOp implements Op1.
func (op *TopN) SubOp() Op { return op.Sub }

// SubOp implements Op1.
func (op *Group) SubOp() Op { return op.Sub }

// SubOp implements Op1.
func (op *Graph) SubOp() Op { return op.Sub }

// SubOp implements Op1.
func (op *Service) SubOp() Op { return op.Sub }

// SubOp implements Op1.
func (op *Label) SubOp() Op { return op.Sub }

// SubOp implements Op1.
func (op *PropFunc) SubOp() Op { return op.Sub }

// CopyWith implements Op1.
func (op *Filter) CopyWith(sub Op) Op1 {
	return &Filter{Exprs: op.Exprs, Sub: sub}
}

// CopyWith implements Op1.
func (op *Project) CopyWith(sub Op) Op1 {
	return &Project{Vars: op.Vars, Sub: sub}
}

// CopyWith implements Op1.
func (op *Extend) CopyWith(sub Op) Op1 {
	return &Extend{Bindings: op.Bindings, Sub: sub}
}

// CopyWith implements Op1.
func (op *Assign) CopyWith(sub Op) Op1 {
	return &Assign{Bindings: op.Bindings, Sub: sub}
}

// CopyWith implements Op1.
func (op *Distinct) CopyWith(sub Op) Op1 {
	return &Distinct{Sub: sub}
}

// CopyWith implements Op1.
func (op *Reduced) CopyWith(sub Op) Op1 {
	return &Reduced{Sub: sub}
}

// CopyWith implements Op1.
func (op *OrderBy) CopyWith(sub Op) Op1 {
	return &OrderBy{Conditions: op.Conditions, Sub: sub}
}

// CopyWith implements Op1.
func (op *Slice) CopyWith(sub Op) Op1 {
	return &Slice{Offset: op.Offset, Limit: op.Limit, Sub: sub}
}

// CopyWith implements Op1.
func (op *TopN) CopyWith(sub Op) Op1 {
	return &TopN{Limit: op.Limit, Conditions: op.Conditions, Sub: sub}
}

// CopyWith implements Op1.
func (op *Group) CopyWith(sub Op) Op1 {
	return &Group{Keys: op.Keys, Aggregates: op.Aggregates, Sub: sub}
}

// CopyWith implements Op1.
func (op *Graph) CopyWith(sub Op) Op1 {
	return &Graph{Name: op.Name, Sub: sub}
}

// CopyWith implements Op1.
func (op *Service) CopyWith(sub Op) Op1 {
	return &Service{Endpoint: op.Endpoint, Silent: op.Silent, Sub: sub}
}

// CopyWith implements Op1.
func (op *Label) CopyWith(sub Op) Op1 {
	return &Label{Label: op.Label, Sub: sub}
}

// CopyWith implements Op1.
func (op *PropFunc) CopyWith(sub Op) Op1 {
	return &PropFunc{Name: op.Name, Subject: op.Subject, Object: op.Object, Sub: sub}
}

func (op *Filter) String() string {
	var b strings.Builder
	b.WriteString("Filter")
	writeExprs(&b, op.Exprs)
	return b.String()
}

// Key implements cmp.Key.
func (op *Filter) Key(b *strings.Builder) { writeKey(b, op) }

func (op *Project) String() string {
	var b strings.Builder
	b.WriteString("Project")
	writeVars(&b, op.Vars)
	return b.String()
}

// Key implements cmp.Key.
func (op *Project) Key(b *strings.Builder) { writeKey(b, op) }

func (op *Extend) String() string {
	var b strings.Builder
	b.WriteString("Extend")
	writeVarExprs(&b, op.Bindings)
	return b.String()
}

// Key implements cmp.Key.
func (op *Extend) Key(b *strings.Builder) { writeKey(b, op) }

func (op *Assign) String() string {
	var b strings.Builder
	b.WriteString("Assign")
	writeVarExprs(&b, op.Bindings)
	return b.String()
}

// Key implements cmp.Key.
func (op *Assign) Key(b *strings.Builder) { writeKey(b, op) }

func (*Distinct) String() string {
	return "Distinct"
}

// Key implements cmp.Key.
func (op *Distinct) Key(b *strings.Builder) { writeKey(b, op) }

func (*Reduced) String() string {
	return "Reduced"
}

// Key implements cmp.Key.
func (op *Reduced) Key(b *strings.Builder) { writeKey(b, op) }

func (op *OrderBy) String() string {
	var b strings.Builder
	b.WriteString("OrderBy")
	writeConditions(&b, op.Conditions)
	return b.String()
}

// Key implements cmp.Key.
func (op *OrderBy) Key(b *strings.Builder) { writeKey(b, op) }

func (op *Slice) String() string {
	var b strings.Builder
	b.WriteString("Slice")
	if op.Offset > 0 {
		b.WriteString(" offset=")
		b.WriteString(strconv.FormatInt(op.Offset, 10))
	}
	if op.Limit >= 0 {
		b.WriteString(" limit=")
		b.WriteString(strconv.FormatInt(op.Limit, 10))
	}
	return b.String()
}

// Key implements cmp.Key.
func (op *Slice) Key(b *strings.Builder) { writeKey(b, op) }

func (op *TopN) String() string {
	var b strings.Builder
	b.WriteString("TopN ")
	b.WriteString(strconv.FormatInt(op.Limit, 10))
	writeConditions(&b, op.Conditions)
	return b.String()
}

// Key implements cmp.Key.
func (op *TopN) Key(b *strings.Builder) { writeKey(b, op) }

func (op *Group) String() string {
	var b strings.Builder
	b.WriteString("Group")
	writeVarExprs(&b, op.Keys)
	for _, agg := range op.Aggregates {
		b.WriteString(" (?")
		b.WriteString(agg.Var)
		b.WriteString(" := ")
		agg.Agg.Key(&b)
		b.WriteByte(')')
	}
	return b.String()
}

// Key implements cmp.Key.
func (op *Group) Key(b *strings.Builder) { writeKey(b, op) }

func (op *Graph) String() string {
	var b strings.Builder
	b.WriteString("Graph ")
	writeTerm(&b, op.Name)
	return b.String()
}

// Key implements cmp.Key.
func (op *Graph) Key(b *strings.Builder) { writeKey(b, op) }

func (op *Service) String() string {
	var b strings.Builder
	b.WriteString("Service ")
	if op.Silent {
		b.WriteString("SILENT ")
	}
	writeTerm(&b, op.Endpoint)
	return b.String()
}

// Key implements cmp.Key.
func (op *Service) Key(b *strings.Builder) { writeKey(b, op) }

func (op *Label) String() string {
	return "Label " + strconv.Quote(op.Label)
}

// Key implements cmp.Key.
func (op *Label) Key(b *strings.Builder) { writeKey(b, op) }

func (op *PropFunc) String() string {
	var b strings.Builder
	b.WriteString("PropFunc ")
	writeTerm(&b, op.Name)
	b.WriteByte(' ')
	writePropFuncArg(&b, op.Subject)
	b.WriteByte(' ')
	writePropFuncArg(&b, op.Object)
	return b.String()
}

// Key implements cmp.Key.
func (op *PropFunc) Key(b *strings.Builder) { writeKey(b, op) }

func writeExprs(b *strings.Builder, exprs []expr.Expr) {
	for _, e := range exprs {
		b.WriteByte(' ')
		e.Key(b)
	}
}

func writeVarExprs(b *strings.Builder, bindings []VarExpr) {
	for _, ve := range bindings {
		if ve.Expr == nil {
			b.WriteString(" ?")
			b.WriteString(ve.Var)
			continue
		}
		b.WriteString(" (?")
		b.WriteString(ve.Var)
		b.WriteString(" := ")
		ve.Expr.Key(b)
		b.WriteByte(')')
	}
}

func writeConditions(b *strings.Builder, conditions []SortCondition) {
	for _, c := range conditions {
		b.WriteByte(' ')
		c.Key(b)
	}
}

// writePropFuncArg writes a single term as is and a list in parentheses.
func writePropFuncArg(b *strings.Builder, arg []rdf.Term) {
	if len(arg) == 1 {
		writeTerm(b, arg[0])
		return
	}
	b.WriteByte('(')
	for i, t := range arg {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeTerm(b, t)
	}
	b.WriteByte(')')
}
