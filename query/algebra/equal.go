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
	"github.com/ebay/sparqlcore/util/cmp"
)

// Equal returns true if a and b are structurally the same tree. Blank nodes
// are compared through iso, which is shared across the whole comparison: the
// trees are equal if a single consistent renaming of blank nodes maps one onto
// the other. If iso is nil, blank nodes must have identical labels.
func Equal(a, b Op, iso *rdf.IsoMap) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !equalNode(a, b, iso) {
		return false
	}
	ina, inb := Inputs(a), Inputs(b)
	if len(ina) != len(inb) {
		return false
	}
	for i := range ina {
		if !Equal(ina[i], inb[i], iso) {
			return false
		}
	}
	return true
}

// equalNode compares the two nodes, ignoring their inputs.
func equalNode(a, b Op, iso *rdf.IsoMap) bool {
	switch a := a.(type) {
	case *BGP:
		b, ok := b.(*BGP)
		if !ok || len(a.Triples) != len(b.Triples) {
			return false
		}
		for i := range a.Triples {
			if !rdf.TriplesEqualIso(a.Triples[i], b.Triples[i], iso) {
				return false
			}
		}
		return true
	case *QuadPattern:
		b, ok := b.(*QuadPattern)
		if !ok || len(a.Quads) != len(b.Quads) {
			return false
		}
		for i := range a.Quads {
			if !rdf.TermsEqualIso(a.Quads[i].G, b.Quads[i].G, iso) ||
				!rdf.TriplesEqualIso(a.Quads[i].Triple, b.Quads[i].Triple, iso) {
				return false
			}
		}
		return true
	case *TriplePattern:
		b, ok := b.(*TriplePattern)
		return ok && rdf.TriplesEqualIso(a.Triple, b.Triple, iso)
	case *PathPattern:
		b, ok := b.(*PathPattern)
		return ok && rdf.TermsEqualIso(a.Subject, b.Subject, iso) &&
			rdf.PathsEqual(a.Path, b.Path) &&
			rdf.TermsEqualIso(a.Object, b.Object, iso)
	case *Table:
		b, ok := b.(*Table)
		if !ok || !equalStrings(a.Vars, b.Vars) || len(a.Rows) != len(b.Rows) {
			return false
		}
		for i := range a.Rows {
			if !equalTerms(a.Rows[i], b.Rows[i], iso) {
				return false
			}
		}
		return true
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Extension:
		b, ok := b.(*Extension)
		return ok && a.Name == b.Name && Equal(a.Effective, b.Effective, iso)

	case *Filter:
		b, ok := b.(*Filter)
		return ok && equalExprs(a.Exprs, b.Exprs, iso)
	case *Project:
		b, ok := b.(*Project)
		return ok && equalStrings(a.Vars, b.Vars)
	case *Extend:
		b, ok := b.(*Extend)
		return ok && equalVarExprs(a.Bindings, b.Bindings, iso)
	case *Assign:
		b, ok := b.(*Assign)
		return ok && equalVarExprs(a.Bindings, b.Bindings, iso)
	case *Distinct:
		_, ok := b.(*Distinct)
		return ok
	case *Reduced:
		_, ok := b.(*Reduced)
		return ok
	case *OrderBy:
		b, ok := b.(*OrderBy)
		return ok && equalConditions(a.Conditions, b.Conditions, iso)
	case *Slice:
		b, ok := b.(*Slice)
		return ok && a.Offset == b.Offset && a.Limit == b.Limit
	case *TopN:
		b, ok := b.(*TopN)
		return ok && a.Limit == b.Limit && equalConditions(a.Conditions, b.Conditions, iso)
	case *Group:
		b, ok := b.(*Group)
		if !ok || !equalVarExprs(a.Keys, b.Keys, iso) || len(a.Aggregates) != len(b.Aggregates) {
			return false
		}
		for i := range a.Aggregates {
			if a.Aggregates[i].Var != b.Aggregates[i].Var ||
				!a.Aggregates[i].Agg.EqualAggregator(b.Aggregates[i].Agg, iso) {
				return false
			}
		}
		return true
	case *Graph:
		b, ok := b.(*Graph)
		return ok && rdf.TermsEqualIso(a.Name, b.Name, iso)
	case *Service:
		b, ok := b.(*Service)
		return ok && a.Silent == b.Silent && rdf.TermsEqualIso(a.Endpoint, b.Endpoint, iso)
	case *Label:
		b, ok := b.(*Label)
		return ok && a.Label == b.Label
	case *PropFunc:
		b, ok := b.(*PropFunc)
		return ok && a.Name.Value == b.Name.Value &&
			equalTerms(a.Subject, b.Subject, iso) &&
			equalTerms(a.Object, b.Object, iso)
	case *Annotated:
		b, ok := b.(*Annotated)
		return ok && a.Note == b.Note

	case *Join:
		_, ok := b.(*Join)
		return ok
	case *LeftJoin:
		b, ok := b.(*LeftJoin)
		return ok && equalExprs(a.Exprs, b.Exprs, iso)
	case *Union:
		_, ok := b.(*Union)
		return ok
	case *Conditional:
		_, ok := b.(*Conditional)
		return ok
	case *Minus:
		_, ok := b.(*Minus)
		return ok

	case *Sequence:
		_, ok := b.(*Sequence)
		return ok
	case *Disjunction:
		_, ok := b.(*Disjunction)
		return ok
	}
	panic(fmt.Sprintf("Unexpected operator type %T", a))
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalTerms(a, b []rdf.Term, iso *rdf.IsoMap) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !rdf.TermsEqualIso(a[i], b[i], iso) {
			return false
		}
	}
	return true
}

func equalExprs(a, b []expr.Expr, iso *rdf.IsoMap) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !expr.Equal(a[i], b[i], iso) {
			return false
		}
	}
	return true
}

func equalVarExprs(a, b []VarExpr, iso *rdf.IsoMap) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Var != b[i].Var || (a[i].Expr == nil) != (b[i].Expr == nil) {
			return false
		}
		if a[i].Expr != nil && !expr.Equal(a[i].Expr, b[i].Expr, iso) {
			return false
		}
	}
	return true
}

func equalConditions(a, b []SortCondition, iso *rdf.IsoMap) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Direction != b[i].Direction || !expr.Equal(a[i].Expr, b[i].Expr, iso) {
			return false
		}
	}
	return true
}

// opKind distinguishes the kinds of nodes in hashes.
type opKind byte

const (
	kindBGP opKind = iota + 1
	kindQuadPattern
	kindTriplePattern
	kindPathPattern
	kindTable
	kindNull
	kindExtension
	kindFilter
	kindProject
	kindExtend
	kindAssign
	kindDistinct
	kindReduced
	kindOrderBy
	kindSlice
	kindTopN
	kindGroup
	kindGraph
	kindService
	kindLabel
	kindPropFunc
	kindAnnotated
	kindJoin
	kindLeftJoin
	kindUnion
	kindConditional
	kindMinus
	kindSequence
	kindDisjunction
)

// Hash returns a structural hash of op. Trees that are Equal under some
// blank node renaming have the same hash.
func Hash(op Op) uint64 {
	if op == nil {
		return 0
	}
	return cmp.HashKey(cmp.KeyFunc(func(b *strings.Builder) {
		writeHashKey(b, op)
		for _, in := range Inputs(op) {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatUint(Hash(in), 16))
		}
	}))
}

// writeHashKey writes a node's kind and its contents, ignoring its inputs and
// leaving out blank node labels.
func writeHashKey(b *strings.Builder, op Op) {
	h := hashKey{b}
	switch op := op.(type) {
	case *BGP:
		h.kind(kindBGP)
		for _, t := range op.Triples {
			h.terms(t.S, t.P, t.O)
		}
	case *QuadPattern:
		h.kind(kindQuadPattern)
		for _, q := range op.Quads {
			h.terms(q.G, q.S, q.P, q.O)
		}
	case *TriplePattern:
		h.kind(kindTriplePattern)
		h.terms(op.Triple.S, op.Triple.P, op.Triple.O)
	case *PathPattern:
		h.kind(kindPathPattern)
		h.terms(op.Subject, op.Object)
		if op.Path != nil {
			op.Path.Key(b)
		}
	case *Table:
		h.kind(kindTable)
		h.strings(op.Vars)
		for _, row := range op.Rows {
			b.WriteByte('[')
			h.terms(row...)
			b.WriteByte(']')
		}
	case *Null:
		h.kind(kindNull)
	case *Extension:
		h.kind(kindExtension)
		b.WriteString(op.Name)
		h.hash(Hash(op.Effective))

	case *Filter:
		h.kind(kindFilter)
		h.exprs(op.Exprs)
	case *Project:
		h.kind(kindProject)
		h.strings(op.Vars)
	case *Extend:
		h.kind(kindExtend)
		h.varExprs(op.Bindings)
	case *Assign:
		h.kind(kindAssign)
		h.varExprs(op.Bindings)
	case *Distinct:
		h.kind(kindDistinct)
	case *Reduced:
		h.kind(kindReduced)
	case *OrderBy:
		h.kind(kindOrderBy)
		h.conditions(op.Conditions)
	case *Slice:
		h.kind(kindSlice)
		b.WriteString(strconv.FormatInt(op.Offset, 10))
		b.WriteByte(',')
		b.WriteString(strconv.FormatInt(op.Limit, 10))
	case *TopN:
		h.kind(kindTopN)
		b.WriteString(strconv.FormatInt(op.Limit, 10))
		h.conditions(op.Conditions)
	case *Group:
		h.kind(kindGroup)
		h.varExprs(op.Keys)
		for _, agg := range op.Aggregates {
			b.WriteString(agg.Var)
			h.hash(expr.Hash(&expr.Aggregate{Agg: agg.Agg}))
		}
	case *Graph:
		h.kind(kindGraph)
		h.terms(op.Name)
	case *Service:
		h.kind(kindService)
		b.WriteString(strconv.FormatBool(op.Silent))
		h.terms(op.Endpoint)
	case *Label:
		h.kind(kindLabel)
		b.WriteString(strconv.Quote(op.Label))
	case *PropFunc:
		h.kind(kindPropFunc)
		b.WriteString(op.Name.Value)
		h.terms(op.Subject...)
		b.WriteByte('|')
		h.terms(op.Object...)
	case *Annotated:
		h.kind(kindAnnotated)
		b.WriteString(strconv.Quote(op.Note))

	case *Join:
		h.kind(kindJoin)
	case *LeftJoin:
		h.kind(kindLeftJoin)
		h.exprs(op.Exprs)
	case *Union:
		h.kind(kindUnion)
	case *Conditional:
		h.kind(kindConditional)
	case *Minus:
		h.kind(kindMinus)

	case *Sequence:
		h.kind(kindSequence)
		h.hash(uint64(len(op.Elems)))
	case *Disjunction:
		h.kind(kindDisjunction)
		h.hash(uint64(len(op.Elems)))
	default:
		panic(fmt.Sprintf("Unexpected operator type %T", op))
	}
}

type hashKey struct {
	b *strings.Builder
}

func (h hashKey) kind(k opKind) {
	h.b.WriteByte(byte(k))
	h.b.WriteByte(':')
}

func (h hashKey) hash(v uint64) {
	h.b.WriteByte('#')
	h.b.WriteString(strconv.FormatUint(v, 16))
}

func (h hashKey) strings(vals []string) {
	for _, v := range vals {
		h.b.WriteString(v)
		h.b.WriteByte(',')
	}
}

func (h hashKey) terms(terms ...rdf.Term) {
	for _, t := range terms {
		switch t.(type) {
		case nil:
			h.b.WriteByte('_')
		case *rdf.BlankNode:
			h.b.WriteString("_:")
		default:
			t.Key(h.b)
		}
		h.b.WriteByte(' ')
	}
}

func (h hashKey) exprs(exprs []expr.Expr) {
	for _, e := range exprs {
		h.hash(expr.Hash(e))
	}
}

func (h hashKey) varExprs(bindings []VarExpr) {
	for _, ve := range bindings {
		h.b.WriteString(ve.Var)
		if ve.Expr != nil {
			h.hash(expr.Hash(ve.Expr))
		}
		h.b.WriteByte(',')
	}
}

func (h hashKey) conditions(conditions []SortCondition) {
	for _, c := range conditions {
		h.b.WriteString(c.Direction.String())
		h.hash(expr.Hash(c.Expr))
	}
}
