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
	"io"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/ebay/sparqlcore/rdf/value"
	log "github.com/sirupsen/logrus"
)

// Eval computes the value of the expression against the binding. It returns
// an evaluation error (see value.IsEvalError) for unbound variables, type
// errors, and undefined operations; other errors come from the Env's
// Executor. env must not be nil.
func Eval(ctx context.Context, e Expr, b Binding, env *Env) (*value.Value, error) {
	if env == nil {
		panic(value.Internalf("expr.Eval called with nil Env"))
	}
	switch e := e.(type) {
	case *Var:
		return evalVar(e, b)
	case *Constant:
		return e.Val, nil
	case *Func0:
		return evalCall(ctx, e.Fn, nil, b, env)
	case *Func1:
		return evalCall(ctx, e.Fn, []Expr{e.Arg}, b, env)
	case *Func2:
		return evalCall(ctx, e.Fn, []Expr{e.Left, e.Right}, b, env)
	case *Func3:
		return evalCall(ctx, e.Fn, []Expr{e.Arg1, e.Arg2, e.Arg3}, b, env)
	case *FuncN:
		return evalCall(ctx, e.Fn, e.Args, b, env)
	case *PatternFunc:
		return evalPattern(ctx, e, b, env)
	case *Aggregate:
		if e.Var == nil {
			panic(value.Internalf("aggregate %v evaluated before grouping assigned its variable", e.Agg))
		}
		return evalVar(e.Var, b)
	}
	panic(value.Internalf("unexpected expression type %T: %v", e, e))
}

func evalVar(e *Var, b Binding) (*value.Value, error) {
	if b == nil {
		return nil, value.Errorf("unbound variable %v", e)
	}
	t, ok := b.Get(e.Name)
	if !ok || t == nil {
		return nil, value.Errorf("unbound variable %v", e)
	}
	if !rdf.IsConcrete(t) {
		return nil, value.Errorf("variable %v bound to non-concrete term %v", e, t)
	}
	return value.FromTerm(t), nil
}

func evalCall(ctx context.Context, fn *Function, args []Expr, b Binding, env *Env) (*value.Value, error) {
	if fn.Special != nil {
		return fn.Special(ctx, env, b, args)
	}
	if fn.Eval == nil {
		panic(value.Internalf("function %v has no implementation", fn.Name))
	}
	vals, err := evalArgs(ctx, args, b, env)
	if err != nil {
		return nil, err
	}
	return fn.Eval(env, vals)
}

// evalArgs evaluates the expressions left to right, stopping at the first
// error.
func evalArgs(ctx context.Context, args []Expr, b Binding, env *Env) ([]*value.Value, error) {
	vals := make([]*value.Value, len(args))
	for i, arg := range args {
		v, err := Eval(ctx, arg, b, env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// evalPattern runs the pattern once, seeded with the current binding, and
// inspects its results.
func evalPattern(ctx context.Context, e *PatternFunc, b Binding, env *Env) (*value.Value, error) {
	if env.Executor == nil {
		return nil, value.Errorf("%v: no executor available", e.Op)
	}
	if b == nil {
		b = EmptyBinding
	}
	rows, err := env.Executor.Execute(ctx, e.Pattern, RowsOf(b))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	first, err := rows.Next(ctx)
	if err != nil && err != io.EOF {
		return nil, err
	}
	empty := err == io.EOF
	switch e.Op {
	case Exists:
		return value.NewBoolean(!empty), nil
	case NotExists:
		return value.NewBoolean(empty), nil
	case Scalar:
		if empty {
			return nil, value.Errorf("scalar subquery returned no rows")
		}
		t, ok := first.Get(e.Var)
		if !ok || t == nil || !rdf.IsConcrete(t) {
			return nil, value.Errorf("scalar subquery left ?%v unbound", e.Var)
		}
		_, err := rows.Next(ctx)
		switch {
		case err == nil:
			return nil, value.Errorf("scalar subquery returned more than one row")
		case err != io.EOF:
			return nil, err
		}
		return value.FromTerm(t), nil
	}
	panic(value.Internalf("unexpected PatternOp %v", e.Op))
}

// evalEBV evaluates the expression and returns its effective boolean value.
func evalEBV(ctx context.Context, e Expr, b Binding, env *Env) (bool, error) {
	v, err := Eval(ctx, e, b, env)
	if err != nil {
		return false, err
	}
	return value.EBV(v)
}

// IsSatisfied evaluates the expression as a filter condition: it returns the
// effective boolean value of the result, or false if evaluation failed. It
// never returns an error. Failures that aren't evaluation errors are logged.
func IsSatisfied(ctx context.Context, e Expr, b Binding, env *Env) bool {
	ok, err := evalEBV(ctx, e, b, env)
	if err != nil {
		kind := errorKind(err)
		metrics.evalErrorsTotal.WithLabelValues(kind).Inc()
		if kind == "other" {
			log.WithFields(log.Fields{
				"expr":  e.String(),
				"error": err,
			}).Warn("Filter evaluation failed; treating as false")
		}
		return false
	}
	return ok
}
