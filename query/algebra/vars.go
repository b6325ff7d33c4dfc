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

	"github.com/ebay/sparqlcore/rdf"
)

// Vars returns the variables that may be bound in the rows op produces.
func Vars(op Op) VarSet {
	if op == nil {
		return nil
	}
	switch op := op.(type) {
	case *BGP:
		var names []string
		for _, t := range op.Triples {
			names = appendTermVars(names, t.S, t.P, t.O)
		}
		return NewVarSet(names...)
	case *QuadPattern:
		var names []string
		for _, q := range op.Quads {
			names = appendTermVars(names, q.G, q.S, q.P, q.O)
		}
		return NewVarSet(names...)
	case *TriplePattern:
		return NewVarSet(appendTermVars(nil, op.Triple.S, op.Triple.P, op.Triple.O)...)
	case *PathPattern:
		return NewVarSet(appendTermVars(nil, op.Subject, op.Object)...)
	case *Table:
		return NewVarSet(op.Vars...)
	case *Null:
		return nil
	case *Extension:
		return Vars(op.Effective)

	case *Project:
		return NewVarSet(op.Vars...)
	case *Extend:
		return Vars(op.Sub).Union(bindingVars(op.Bindings))
	case *Assign:
		return Vars(op.Sub).Union(bindingVars(op.Bindings))
	case *Group:
		names := make([]string, 0, len(op.Keys)+len(op.Aggregates))
		for _, k := range op.Keys {
			names = append(names, k.Var)
		}
		for _, agg := range op.Aggregates {
			names = append(names, agg.Var)
		}
		return NewVarSet(names...)
	case *Graph:
		return Vars(op.Sub).Union(NewVarSet(appendTermVars(nil, op.Name)...))
	case *PropFunc:
		names := appendTermVars(nil, op.Subject...)
		names = appendTermVars(names, op.Object...)
		return Vars(op.Sub).Union(NewVarSet(names...))
	case *Minus:
		return Vars(op.Left)
	case Op1:
		return Vars(op.SubOp())
	case Op2:
		return Vars(op.LeftOp()).Union(Vars(op.RightOp()))
	case OpN:
		var set VarSet
		for _, sub := range op.SubOps() {
			set = set.Union(Vars(sub))
		}
		return set
	}
	panic(fmt.Sprintf("Unexpected operator type %T", op))
}

func appendTermVars(names []string, terms ...rdf.Term) []string {
	for _, t := range terms {
		if v, ok := t.(*rdf.Variable); ok {
			names = append(names, v.Name)
		}
	}
	return names
}

func bindingVars(bindings []VarExpr) VarSet {
	names := make([]string, len(bindings))
	for i, b := range bindings {
		names[i] = b.Var
	}
	return NewVarSet(names...)
}
