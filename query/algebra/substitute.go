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
	"github.com/ebay/sparqlcore/rdf"
	"github.com/ebay/sparqlcore/util/cmp"
)

// Substitute returns a copy of op in which the variables bound in b are
// replaced by their terms, in patterns and in expressions alike. This is how
// the rows of an outer query are pushed into the body of an EXISTS. Projected,
// grouped, and assigned variable names are left alone, as are inline tables.
// Parts of the tree that mention no bound variables are shared with op.
func Substitute(op Op, b expr.Binding) Op {
	if b == nil {
		return op
	}
	return Transform(op, &substituter{binding: b})
}

type substituter struct {
	CopyTransformer
	binding expr.Binding
}

// term returns the term bound to t if t is a bound variable, or t otherwise.
func (s *substituter) term(t rdf.Term) rdf.Term {
	v, ok := t.(*rdf.Variable)
	if !ok {
		return t
	}
	if val, found := s.binding.Get(v.Name); found && rdf.IsConcrete(val) {
		return val
	}
	return t
}

func (s *substituter) terms(in []rdf.Term) ([]rdf.Term, bool) {
	var out []rdf.Term
	for i, t := range in {
		sub := s.term(t)
		if sub != t && out == nil {
			out = make([]rdf.Term, len(in))
			copy(out, in)
		}
		if out != nil {
			out[i] = sub
		}
	}
	if out == nil {
		return in, false
	}
	return out, true
}

func (s *substituter) triple(t rdf.Triple) (rdf.Triple, bool) {
	res := rdf.Triple{S: s.term(t.S), P: s.term(t.P), O: s.term(t.O)}
	return res, res.S != t.S || res.P != t.P || res.O != t.O
}

func (s *substituter) exprs(in []expr.Expr) ([]expr.Expr, bool) {
	var out []expr.Expr
	for i, e := range in {
		sub := expr.Substitute(e, s.binding)
		if sub != e && out == nil {
			out = make([]expr.Expr, len(in))
			copy(out, in)
		}
		if out != nil {
			out[i] = sub
		}
	}
	if out == nil {
		return in, false
	}
	return out, true
}

func (s *substituter) varExprs(in []VarExpr) ([]VarExpr, bool) {
	var out []VarExpr
	for i, ve := range in {
		sub := ve
		if ve.Expr != nil {
			sub.Expr = expr.Substitute(ve.Expr, s.binding)
		}
		if sub.Expr != ve.Expr && out == nil {
			out = make([]VarExpr, len(in))
			copy(out, in)
		}
		if out != nil {
			out[i] = sub
		}
	}
	if out == nil {
		return in, false
	}
	return out, true
}

func (s *substituter) conditions(in []SortCondition) ([]SortCondition, bool) {
	var out []SortCondition
	for i, c := range in {
		sub := SortCondition{Direction: c.Direction, Expr: expr.Substitute(c.Expr, s.binding)}
		if sub.Expr != c.Expr && out == nil {
			out = make([]SortCondition, len(in))
			copy(out, in)
		}
		if out != nil {
			out[i] = sub
		}
	}
	if out == nil {
		return in, false
	}
	return out, true
}

func (s *substituter) Transform0(orig Op0) Op {
	switch op := orig.(type) {
	case *BGP:
		var out []rdf.Triple
		for i, t := range op.Triples {
			sub, changed := s.triple(t)
			if changed && out == nil {
				out = make([]rdf.Triple, len(op.Triples))
				copy(out, op.Triples)
			}
			if out != nil {
				out[i] = sub
			}
		}
		if out != nil {
			return &BGP{Triples: out}
		}
	case *QuadPattern:
		var out []rdf.Quad
		for i, q := range op.Quads {
			g := s.term(q.G)
			t, changed := s.triple(q.Triple)
			if (changed || g != q.G) && out == nil {
				out = make([]rdf.Quad, len(op.Quads))
				copy(out, op.Quads)
			}
			if out != nil {
				out[i] = rdf.Quad{G: g, Triple: t}
			}
		}
		if out != nil {
			return &QuadPattern{Quads: out}
		}
	case *TriplePattern:
		if t, changed := s.triple(op.Triple); changed {
			return &TriplePattern{Triple: t}
		}
	case *PathPattern:
		subj, obj := s.term(op.Subject), s.term(op.Object)
		if subj != op.Subject || obj != op.Object {
			return &PathPattern{Subject: subj, Path: op.Path, Object: obj}
		}
	case *Extension:
		if eff := Substitute(op.Effective, s.binding); eff != op.Effective {
			return &Extension{Name: op.Name, Effective: eff, Hook: op.Hook}
		}
	}
	return orig
}

func (s *substituter) Transform1(orig Op1, sub Op) Op {
	switch op := orig.(type) {
	case *Filter:
		if exprs, changed := s.exprs(op.Exprs); changed {
			return &Filter{Exprs: exprs, Sub: sub}
		}
	case *Extend:
		if bindings, changed := s.varExprs(op.Bindings); changed {
			return &Extend{Bindings: bindings, Sub: sub}
		}
	case *Assign:
		if bindings, changed := s.varExprs(op.Bindings); changed {
			return &Assign{Bindings: bindings, Sub: sub}
		}
	case *OrderBy:
		if conditions, changed := s.conditions(op.Conditions); changed {
			return &OrderBy{Conditions: conditions, Sub: sub}
		}
	case *TopN:
		if conditions, changed := s.conditions(op.Conditions); changed {
			return &TopN{Limit: op.Limit, Conditions: conditions, Sub: sub}
		}
	case *Group:
		if keys, changed := s.varExprs(op.Keys); changed {
			return &Group{Keys: keys, Aggregates: op.Aggregates, Sub: sub}
		}
	case *Graph:
		if name := s.term(op.Name); name != op.Name {
			return &Graph{Name: name, Sub: sub}
		}
	case *Service:
		if endpoint := s.term(op.Endpoint); endpoint != op.Endpoint {
			return &Service{Endpoint: endpoint, Silent: op.Silent, Sub: sub}
		}
	case *PropFunc:
		subj, subjChanged := s.terms(op.Subject)
		obj, objChanged := s.terms(op.Object)
		if subjChanged || objChanged {
			return &PropFunc{Name: op.Name, Subject: subj, Object: obj, Sub: sub}
		}
	}
	return s.CopyTransformer.Transform1(orig, sub)
}

func (s *substituter) Transform2(orig Op2, left, right Op) Op {
	if op, ok := orig.(*LeftJoin); ok {
		if exprs, changed := s.exprs(op.Exprs); changed {
			return &LeftJoin{Left: left, Right: right, Exprs: exprs}
		}
	}
	return s.CopyTransformer.Transform2(orig, left, right)
}

// AsPattern adapts op for use in expressions, such as the body of an EXISTS.
func AsPattern(op Op) expr.Pattern {
	return &pattern{op: op}
}

// OpOf returns the operator tree held by a Pattern that was created by
// AsPattern.
func OpOf(p expr.Pattern) (Op, bool) {
	pat, ok := p.(*pattern)
	if !ok {
		return nil, false
	}
	return pat.op, true
}

// pattern implements expr.Pattern.
type pattern struct {
	op Op
}

func (p *pattern) String() string {
	return cmp.GetKey(p)
}

func (p *pattern) Key(b *strings.Builder) {
	b.WriteByte('{')
	p.op.Key(b)
	b.WriteByte('}')
}

func (p *pattern) SubstitutePattern(b expr.Binding) expr.Pattern {
	sub := Substitute(p.op, b)
	if sub == p.op {
		return p
	}
	return &pattern{op: sub}
}

func (p *pattern) EqualPattern(other expr.Pattern, iso *rdf.IsoMap) bool {
	o, ok := other.(*pattern)
	return ok && Equal(p.op, o.op, iso)
}

func (p *pattern) HashPattern() uint64 {
	return Hash(p.op)
}
