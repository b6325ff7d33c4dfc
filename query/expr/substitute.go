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
	"context"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/ebay/sparqlcore/rdf/value"
)

// Substitute returns a copy of e in which every variable bound in b is
// replaced by a Constant with its value. Patterns embedded in PatternFunc
// nodes have the binding pushed down into them. Parts of the tree that
// contain no bound variables are shared with e rather than copied.
func Substitute(e Expr, b Binding) Expr {
	return Transform(e, &substituter{binding: b})
}

// SubstituteFold is like Substitute but also folds function calls whose
// arguments all became constants into a single Constant, as long as
// evaluating them succeeds and the function allows it. Calls that fail to
// evaluate are left in place so the error surfaces when the row is
// evaluated.
func SubstituteFold(ctx context.Context, e Expr, b Binding, env *Env) Expr {
	return Transform(e, &substituter{binding: b, fold: true, ctx: ctx, env: env})
}

// Fold is SubstituteFold with no variable bindings.
func Fold(ctx context.Context, e Expr, env *Env) Expr {
	return SubstituteFold(ctx, e, nil, env)
}

type substituter struct {
	CopyTransformer
	binding Binding
	fold    bool
	ctx     context.Context
	env     *Env
}

func (s *substituter) TransformVar(v *Var) Expr {
	if s.binding == nil {
		return v
	}
	t, ok := s.binding.Get(v.Name)
	if !ok || !rdf.IsConcrete(t) {
		return v
	}
	return NewConstant(value.FromTerm(t))
}

func (s *substituter) Transform0(orig *Func0) Expr {
	return s.maybeFold(s.CopyTransformer.Transform0(orig))
}

func (s *substituter) Transform1(orig *Func1, arg Expr) Expr {
	return s.maybeFold(s.CopyTransformer.Transform1(orig, arg))
}

func (s *substituter) Transform2(orig *Func2, left, right Expr) Expr {
	return s.maybeFold(s.CopyTransformer.Transform2(orig, left, right))
}

func (s *substituter) Transform3(orig *Func3, arg1, arg2, arg3 Expr) Expr {
	return s.maybeFold(s.CopyTransformer.Transform3(orig, arg1, arg2, arg3))
}

func (s *substituter) TransformN(orig *FuncN, args []Expr) Expr {
	return s.maybeFold(s.CopyTransformer.TransformN(orig, args))
}

// maybeFold returns a Constant in place of the call e if folding is enabled,
// all of e's arguments are constants, and e evaluates without error.
// Otherwise it returns e.
func (s *substituter) maybeFold(e Expr) Expr {
	fn, args, ok := CallOf(e)
	if !ok || !s.fold || fn.NoFold {
		return e
	}
	for _, arg := range args {
		if _, ok := arg.(*Constant); !ok {
			return e
		}
	}
	v, err := Eval(s.ctx, e, nil, s.env)
	if err != nil {
		return e
	}
	return NewConstant(v)
}

func (s *substituter) TransformPattern(orig *PatternFunc) Expr {
	if s.binding == nil {
		return orig
	}
	p := orig.Pattern.SubstitutePattern(s.binding)
	if p == orig.Pattern {
		return orig
	}
	return &PatternFunc{Op: orig.Op, Pattern: p, Var: orig.Var}
}
