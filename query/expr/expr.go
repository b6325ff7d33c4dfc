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

// Package expr defines filter and computed expressions: an immutable tree of
// variables, constants, and function calls that evaluates to a value.Value
// against a Binding.
package expr

import (
	"context"
	"fmt"
	"strings"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/ebay/sparqlcore/rdf/value"
	"github.com/ebay/sparqlcore/util/cmp"
)

// An Expr is a node in an expression tree. Expressions are immutable once
// built; Substitute and Transform return new trees.
type Expr interface {
	String() string
	cmp.Key
	anExpr()
}

// ImplementExpr is a list of types that implement Expr. This serves as
// documentation and as a compile-time check.
var ImplementExpr = []Expr{
	new(Var),
	new(Constant),
	new(Func0),
	new(Func1),
	new(Func2),
	new(Func3),
	new(FuncN),
	new(PatternFunc),
	new(Aggregate),
}

// A Function is the operator of a function-call node. Builtins are
// registered by name; extension functions are created by NewExtension.
type Function struct {
	// The operator symbol or function name, like "&&", "STRLEN", or an IRI.
	Name string
	// If set, the function is written between its arguments (or before its
	// single argument) rather than in call syntax.
	Operator bool
	// The allowed number of arguments. A negative MaxArgs means there's no
	// upper bound.
	MinArgs, MaxArgs int
	// Eval computes the result from the arguments' values, which are
	// evaluated left to right beforehand.
	Eval func(env *Env, args []*value.Value) (*value.Value, error)
	// Special, if set, is called instead of Eval, before any arguments are
	// evaluated. It's used for short-circuit logic and for functions that
	// depend on more than their argument values.
	Special func(ctx context.Context, env *Env, b Binding, args []Expr) (*value.Value, error)
	// If set, calls are never folded into constants, because their result
	// depends on the evaluation context.
	NoFold bool

	extension bool
}

// Variadic returns true if the function accepts any number of arguments
// beyond its minimum.
func (fn *Function) Variadic() bool {
	return fn.MaxArgs < 0
}

func (fn *Function) String() string {
	return fn.Name
}

// Var is an expression that evaluates to the value bound to a variable.
type Var struct {
	Name string
}

// NewVar returns a variable expression. The name excludes the leading '?'.
func NewVar(name string) *Var {
	return &Var{Name: name}
}

// Constant is an expression with a fixed value.
type Constant struct {
	Val *value.Value
}

// NewConstant returns a constant expression.
func NewConstant(v *value.Value) *Constant {
	return &Constant{Val: v}
}

// Const returns a constant expression for the given IRI, blank node, or
// literal.
func Const(t rdf.Term) *Constant {
	return &Constant{Val: value.FromTerm(t)}
}

// Func0 is a call with no arguments.
type Func0 struct {
	Fn *Function
}

// Func1 is a call with one argument.
type Func1 struct {
	Fn  *Function
	Arg Expr
}

// Func2 is a call with two arguments.
type Func2 struct {
	Fn          *Function
	Left, Right Expr
}

// Func3 is a call with three arguments.
type Func3 struct {
	Fn               *Function
	Arg1, Arg2, Arg3 Expr
}

// FuncN is a call with an ordered list of arguments. Variadic functions
// always use FuncN, regardless of how many arguments they're given.
type FuncN struct {
	Fn   *Function
	Args []Expr
}

// PatternOp says what a PatternFunc computes from its pattern's results.
type PatternOp int

// Pattern operations.
const (
	// Exists is true if the pattern has at least one result.
	Exists PatternOp = iota + 1
	// NotExists is true if the pattern has no results.
	NotExists
	// Scalar evaluates to the value of a single variable in the pattern's
	// only result.
	Scalar
)

func (op PatternOp) String() string {
	switch op {
	case Exists:
		return "EXISTS"
	case NotExists:
		return "NOT EXISTS"
	case Scalar:
		return "SCALAR"
	}
	return fmt.Sprintf("PatternOp(%d)", int(op))
}

// PatternFunc is an expression that's computed from the results of a
// sub-pattern, such as EXISTS { ... }. The pattern is executed by the Env's
// Executor.
type PatternFunc struct {
	Op      PatternOp
	Pattern Pattern
	// For Scalar, the variable to take from the pattern's result.
	Var string
}

// Aggregate is a reference to an aggregate computed by a grouping operator.
// Grouping assigns Var, after which the aggregate evaluates to that
// variable's value.
type Aggregate struct {
	Agg Aggregator
	Var *Var
}

func (*Var) anExpr()         {}
func (*Constant) anExpr()    {}
func (*Func0) anExpr()       {}
func (*Func1) anExpr()       {}
func (*Func2) anExpr()       {}
func (*Func3) anExpr()       {}
func (*FuncN) anExpr()       {}
func (*PatternFunc) anExpr() {}
func (*Aggregate) anExpr()   {}

// NewCall returns a call of fn with the given arguments, using the node type
// that matches the number of arguments. It does not check the count against
// fn's limits; Call does that.
func NewCall(fn *Function, args ...Expr) Expr {
	if fn.Variadic() {
		return &FuncN{Fn: fn, Args: args}
	}
	switch len(args) {
	case 0:
		return &Func0{Fn: fn}
	case 1:
		return &Func1{Fn: fn, Arg: args[0]}
	case 2:
		return &Func2{Fn: fn, Left: args[0], Right: args[1]}
	case 3:
		return &Func3{Fn: fn, Arg1: args[0], Arg2: args[1], Arg3: args[2]}
	}
	return &FuncN{Fn: fn, Args: args}
}

// Call returns a call of the named builtin function or operator. Names are
// case-insensitive.
func Call(name string, args ...Expr) (Expr, error) {
	fn, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown function %v", name)
	}
	if len(args) < fn.MinArgs || (!fn.Variadic() && len(args) > fn.MaxArgs) {
		return nil, fmt.Errorf("function %v takes %v, got %d", fn.Name, arityString(fn), len(args))
	}
	return NewCall(fn, args...), nil
}

// MustCall is like Call but panics on error. It's intended for expressions
// that are fixed at compile time.
func MustCall(name string, args ...Expr) Expr {
	e, err := Call(name, args...)
	if err != nil {
		panic(err)
	}
	return e
}

func arityString(fn *Function) string {
	switch {
	case fn.Variadic():
		return fmt.Sprintf("at least %d arguments", fn.MinArgs)
	case fn.MinArgs == fn.MaxArgs:
		return fmt.Sprintf("%d arguments", fn.MinArgs)
	}
	return fmt.Sprintf("%d to %d arguments", fn.MinArgs, fn.MaxArgs)
}

// CallOf returns the function and arguments of a call node. It returns false
// for other kinds of expressions.
func CallOf(e Expr) (*Function, []Expr, bool) {
	switch e := e.(type) {
	case *Func0:
		return e.Fn, nil, true
	case *Func1:
		return e.Fn, []Expr{e.Arg}, true
	case *Func2:
		return e.Fn, []Expr{e.Left, e.Right}, true
	case *Func3:
		return e.Fn, []Expr{e.Arg1, e.Arg2, e.Arg3}, true
	case *FuncN:
		return e.Fn, e.Args, true
	}
	return nil, nil, false
}

// String returns a string like "?foo".
func (e *Var) String() string {
	return "?" + e.Name
}

// Key implements cmp.Key.
func (e *Var) Key(b *strings.Builder) {
	b.WriteByte('?')
	b.WriteString(e.Name)
}

func (e *Constant) String() string {
	return e.Val.String()
}

// Key implements cmp.Key.
func (e *Constant) Key(b *strings.Builder) {
	e.Val.Key(b)
}

func (e *Func0) String() string { return cmp.GetKey(e) }
func (e *Func1) String() string { return cmp.GetKey(e) }
func (e *Func2) String() string { return cmp.GetKey(e) }
func (e *Func3) String() string { return cmp.GetKey(e) }
func (e *FuncN) String() string { return cmp.GetKey(e) }

// Key implements cmp.Key.
func (e *Func0) Key(b *strings.Builder) { writeCall(b, e.Fn) }

// Key implements cmp.Key.
func (e *Func1) Key(b *strings.Builder) { writeCall(b, e.Fn, e.Arg) }

// Key implements cmp.Key.
func (e *Func2) Key(b *strings.Builder) { writeCall(b, e.Fn, e.Left, e.Right) }

// Key implements cmp.Key.
func (e *Func3) Key(b *strings.Builder) { writeCall(b, e.Fn, e.Arg1, e.Arg2, e.Arg3) }

// Key implements cmp.Key.
func (e *FuncN) Key(b *strings.Builder) { writeCall(b, e.Fn, e.Args...) }

// writeCall writes "(?a + ?b)", "!?a", or "STRLEN(?a)". Extension functions
// are written with their IRI in angle brackets.
func writeCall(b *strings.Builder, fn *Function, args ...Expr) {
	if fn.Operator {
		switch len(args) {
		case 1:
			b.WriteString(fn.Name)
			args[0].Key(b)
			return
		case 2:
			b.WriteByte('(')
			args[0].Key(b)
			b.WriteByte(' ')
			b.WriteString(fn.Name)
			b.WriteByte(' ')
			args[1].Key(b)
			b.WriteByte(')')
			return
		}
	}
	if fn.extension {
		b.WriteByte('<')
		b.WriteString(fn.Name)
		b.WriteByte('>')
	} else {
		b.WriteString(fn.Name)
	}
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.Key(b)
	}
	b.WriteByte(')')
}

// String returns a string like "EXISTS(...)".
func (e *PatternFunc) String() string {
	if e.Op == Scalar {
		return fmt.Sprintf("%v(?%v, %v)", e.Op, e.Var, e.Pattern)
	}
	return fmt.Sprintf("%v(%v)", e.Op, e.Pattern)
}

// Key implements cmp.Key.
func (e *PatternFunc) Key(b *strings.Builder) {
	b.WriteString(e.Op.String())
	b.WriteByte('(')
	if e.Op == Scalar {
		b.WriteByte('?')
		b.WriteString(e.Var)
		b.WriteString(", ")
	}
	e.Pattern.Key(b)
	b.WriteByte(')')
}

// String returns the aggregator's string, followed by its variable if one
// has been assigned.
func (e *Aggregate) String() string {
	return cmp.GetKey(e)
}

// Key implements cmp.Key.
func (e *Aggregate) Key(b *strings.Builder) {
	e.Agg.Key(b)
	if e.Var != nil {
		b.WriteString(" AS ")
		e.Var.Key(b)
	}
}
