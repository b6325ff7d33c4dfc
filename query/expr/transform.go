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
	"sort"

	"github.com/ebay/sparqlcore/rdf/value"
)

// A Transformer rewrites an expression tree bottom-up. Transform calls one
// method per node, passing the node along with its children after they've
// been transformed. It calls the method even when the children are unchanged,
// so the Transformer can rewrite a node based on the node itself. Each method
// returns orig to keep the node, a copy made with CopyWith, or any other
// expression.
type Transformer interface {
	TransformVar(orig *Var) Expr
	TransformConstant(orig *Constant) Expr
	Transform0(orig *Func0) Expr
	Transform1(orig *Func1, arg Expr) Expr
	Transform2(orig *Func2, left, right Expr) Expr
	Transform3(orig *Func3, arg1, arg2, arg3 Expr) Expr
	TransformN(orig *FuncN, args []Expr) Expr
	TransformPattern(orig *PatternFunc) Expr
	TransformAggregate(orig *Aggregate) Expr
}

// CopyTransformer is a Transformer that rebuilds a node only when one of its
// children changed. It's meant to be embedded in Transformers that only care
// about a few kinds of nodes.
type CopyTransformer struct{}

// TransformVar implements Transformer.
func (CopyTransformer) TransformVar(orig *Var) Expr { return orig }

// TransformConstant implements Transformer.
func (CopyTransformer) TransformConstant(orig *Constant) Expr { return orig }

// Transform0 implements Transformer.
func (CopyTransformer) Transform0(orig *Func0) Expr { return orig }

// Transform1 implements Transformer.
func (CopyTransformer) Transform1(orig *Func1, arg Expr) Expr {
	if arg == orig.Arg {
		return orig
	}
	return orig.CopyWith(arg)
}

// Transform2 implements Transformer.
func (CopyTransformer) Transform2(orig *Func2, left, right Expr) Expr {
	if left == orig.Left && right == orig.Right {
		return orig
	}
	return orig.CopyWith(left, right)
}

// Transform3 implements Transformer.
func (CopyTransformer) Transform3(orig *Func3, arg1, arg2, arg3 Expr) Expr {
	if arg1 == orig.Arg1 && arg2 == orig.Arg2 && arg3 == orig.Arg3 {
		return orig
	}
	return orig.CopyWith(arg1, arg2, arg3)
}

// TransformN implements Transformer.
func (CopyTransformer) TransformN(orig *FuncN, args []Expr) Expr {
	if sameExprs(args, orig.Args) {
		return orig
	}
	return orig.CopyWith(args)
}

// TransformPattern implements Transformer.
func (CopyTransformer) TransformPattern(orig *PatternFunc) Expr { return orig }

// TransformAggregate implements Transformer.
func (CopyTransformer) TransformAggregate(orig *Aggregate) Expr { return orig }

// sameExprs returns true if the two lists hold the identical nodes.
func sameExprs(a, b []Expr) bool {
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

// CopyWith returns a new call of the same function with the given argument.
func (e *Func1) CopyWith(arg Expr) *Func1 {
	return &Func1{Fn: e.Fn, Arg: arg}
}

// CopyWith returns a new call of the same function with the given arguments.
func (e *Func2) CopyWith(left, right Expr) *Func2 {
	return &Func2{Fn: e.Fn, Left: left, Right: right}
}

// CopyWith returns a new call of the same function with the given arguments.
func (e *Func3) CopyWith(arg1, arg2, arg3 Expr) *Func3 {
	return &Func3{Fn: e.Fn, Arg1: arg1, Arg2: arg2, Arg3: arg3}
}

// CopyWith returns a new call of the same function with the given arguments.
// The slice is not copied.
func (e *FuncN) CopyWith(args []Expr) *FuncN {
	return &FuncN{Fn: e.Fn, Args: args}
}

// Transform rewrites e bottom-up using t. See Transformer.
func Transform(e Expr, t Transformer) Expr {
	switch e := e.(type) {
	case *Var:
		return t.TransformVar(e)
	case *Constant:
		return t.TransformConstant(e)
	case *Func0:
		return t.Transform0(e)
	case *Func1:
		return t.Transform1(e, Transform(e.Arg, t))
	case *Func2:
		return t.Transform2(e, Transform(e.Left, t), Transform(e.Right, t))
	case *Func3:
		return t.Transform3(e, Transform(e.Arg1, t), Transform(e.Arg2, t), Transform(e.Arg3, t))
	case *FuncN:
		args := make([]Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = Transform(arg, t)
		}
		return t.TransformN(e, args)
	case *PatternFunc:
		return t.TransformPattern(e)
	case *Aggregate:
		return t.TransformAggregate(e)
	}
	panic(value.Internalf("unexpected expression type %T: %v", e, e))
}

// Walk calls visit for e and then, if visit returns true, for each of e's
// children in order, recursively. It doesn't descend into the patterns of
// PatternFunc nodes.
func Walk(e Expr, visit func(Expr) bool) {
	if !visit(e) {
		return
	}
	switch e := e.(type) {
	case *Aggregate:
		if e.Var != nil {
			Walk(e.Var, visit)
		}
	default:
		if _, args, ok := CallOf(e); ok {
			for _, arg := range args {
				Walk(arg, visit)
			}
		}
	}
}

// Vars returns the names of the variables mentioned in e, sorted and without
// duplicates. It includes variables assigned to aggregates but not variables
// that appear only inside embedded patterns.
func Vars(e Expr) []string {
	seen := make(map[string]bool)
	Walk(e, func(e Expr) bool {
		if v, ok := e.(*Var); ok {
			seen[v.Name] = true
		}
		return true
	})
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
