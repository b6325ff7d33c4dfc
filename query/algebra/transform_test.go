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
	"testing"

	"github.com/ebay/sparqlcore/query/expr"
	"github.com/ebay/sparqlcore/rdf"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// genOp generates small operator trees over a few variables, predicates, and
// blank nodes.
func genOp(depth int) *rapid.Generator[Op] {
	return rapid.Custom(func(t *rapid.T) Op {
		term := func(label string) rdf.Term {
			switch rapid.IntRange(0, 2).Draw(t, label+"Kind") {
			case 0:
				return v(rapid.SampledFrom([]string{"a", "b", "c"}).Draw(t, label+"Var"))
			case 1:
				return bnode(rapid.SampledFrom([]string{"x", "y"}).Draw(t, label+"Blank"))
			}
			return iri(rapid.SampledFrom([]string{"p", "q"}).Draw(t, label+"IRI"))
		}
		leaf := func() Op {
			n := rapid.IntRange(0, 2).Draw(t, "triples")
			triples := make([]rdf.Triple, n)
			for i := range triples {
				triples[i] = triple(term("s"), iri("p"), term("o"))
			}
			return bgp(triples...)
		}
		if depth == 0 {
			return leaf()
		}
		sub := func() Op { return genOp(depth-1).Draw(t, "sub") }
		switch rapid.IntRange(0, 8).Draw(t, "kind") {
		case 0:
			return leaf()
		case 1:
			return &Filter{Exprs: []expr.Expr{gt(rapid.SampledFrom([]string{"a", "b"}).Draw(t, "filterVar"), 1)}, Sub: sub()}
		case 2:
			return &Distinct{Sub: sub()}
		case 3:
			return &Join{Left: sub(), Right: sub()}
		case 4:
			return &LeftJoin{Left: sub(), Right: sub(), Exprs: []expr.Expr{gt("c", 2)}}
		case 5:
			return &Union{Left: sub(), Right: sub()}
		case 6:
			return &Sequence{Elems: []Op{sub(), sub(), sub()}}
		case 7:
			return &Annotated{Note: "n"}
		}
		return &Extend{Bindings: []VarExpr{{Var: "z", Expr: expr.NewVar("a")}}, Sub: sub()}
	})
}

// copier rebuilds every node, even when its inputs are unchanged.
type copier struct{}

func (copier) Transform0(orig Op0) Op {
	if b, ok := orig.(*BGP); ok {
		return bgp(append([]rdf.Triple(nil), b.Triples...)...)
	}
	return orig
}

func (copier) Transform1(orig Op1, sub Op) Op { return orig.CopyWith(sub) }

func (copier) Transform2(orig Op2, left, right Op) Op { return orig.CopyWith(left, right) }

func (copier) TransformN(orig OpN, subs []Op) Op { return orig.CopyWith(subs) }

func Test_TransformIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		op := genOp(3).Draw(t, "op")
		same := Transform(op, CopyTransformer{})
		if same != op {
			t.Fatalf("CopyTransformer changed the tree:\n%v", String(op))
		}
		copied := Transform(op, copier{})
		if !Equal(op, copied, rdf.NewIsoMap()) {
			t.Fatalf("copy is not equal:\n%v\n%v", String(op), String(copied))
		}
		if Hash(op) != Hash(copied) {
			t.Fatalf("copy has a different hash:\n%v", String(op))
		}
	})
}

// relabel renames blank nodes in BGPs, which must not affect equality.
type relabel struct {
	CopyTransformer
}

func (relabel) Transform0(orig Op0) Op {
	b, ok := orig.(*BGP)
	if !ok {
		return orig
	}
	rename := func(t rdf.Term) rdf.Term {
		if bn, ok := t.(*rdf.BlankNode); ok {
			return bnode("renamed-" + bn.Label)
		}
		return t
	}
	triples := make([]rdf.Triple, len(b.Triples))
	for i, t := range b.Triples {
		triples[i] = triple(rename(t.S), rename(t.P), rename(t.O))
	}
	return bgp(triples...)
}

func Test_EqualUnderRelabeling(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		op := genOp(3).Draw(t, "op")
		renamed := Transform(op, relabel{})
		if !Equal(op, renamed, rdf.NewIsoMap()) {
			t.Fatalf("relabeled tree is not equal:\n%v\n%v", String(op), String(renamed))
		}
		if Hash(op) != Hash(renamed) {
			t.Fatalf("relabeled tree has a different hash:\n%v", String(op))
		}
	})
}

// upcaser renames projected variables and records the nodes it visits.
type upcaser struct {
	CopyTransformer
	visited []string
}

func (u *upcaser) Transform0(orig Op0) Op {
	u.visited = append(u.visited, orig.String())
	return orig
}

func (u *upcaser) Transform1(orig Op1, sub Op) Op {
	u.visited = append(u.visited, orig.String())
	if p, ok := orig.(*Project); ok {
		vars := make([]string, len(p.Vars))
		for i, name := range p.Vars {
			vars[i] = strings.ToUpper(name)
		}
		return &Project{Vars: vars, Sub: sub}
	}
	return u.CopyTransformer.Transform1(orig, sub)
}

func (u *upcaser) Transform2(orig Op2, left, right Op) Op {
	u.visited = append(u.visited, orig.String())
	return u.CopyTransformer.Transform2(orig, left, right)
}

func Test_Transform(t *testing.T) {
	p := bgp(triple(v("s"), iri("p"), v("o")))
	inner := &Project{Vars: []string{"s"}, Sub: p}
	other := &Distinct{Sub: p}
	op := &Union{Left: inner, Right: other}
	u := new(upcaser)
	res := Transform(op, u).(*Union)
	assert.Equal(t, []string{
		"BGP ?s <http://example.com/p> ?o",
		"Project ?s",
		"BGP ?s <http://example.com/p> ?o",
		"Distinct",
		"Union",
	}, u.visited, "inputs are visited before their parents")
	assert.Equal(t, "Project ?S", res.Left.String())
	assert.Same(t, other, res.Right, "unchanged inputs are shared")
	assert.Equal(t, "Project ?s", inner.String(), "the original is unchanged")
}

func Test_TransformAnnotated(t *testing.T) {
	a := &Annotated{Note: "x"}
	assert.Same(t, a, Transform(a, CopyTransformer{}))
	res := Transform(&Annotated{Note: "y", Sub: &Project{Vars: []string{"a"}, Sub: bgp()}}, new(upcaser))
	assert.Equal(t, "Annotated \"y\"\n    Project ?A\n        BGP\n", String(res))
}

func Test_Walk(t *testing.T) {
	p := bgp(triple(v("s"), iri("p"), v("o")))
	op := &Join{
		Left:  &Filter{Exprs: []expr.Expr{gt("o", 1)}, Sub: p},
		Right: &Sequence{Elems: []Op{&Distinct{Sub: p}, &Null{}}},
	}
	var visited []string
	Walk(op, func(op Op) bool {
		visited = append(visited, strings.Fields(op.String())[0])
		_, isFilter := op.(*Filter)
		return !isFilter
	})
	assert.Equal(t, []string{"Join", "Filter", "Sequence", "Distinct", "BGP", "Null"}, visited)
}
