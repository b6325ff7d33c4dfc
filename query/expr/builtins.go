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
	"sort"
	"strings"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/ebay/sparqlcore/rdf/value"
)

// builtins maps upper-cased names to the functions defined in this package.
var builtins = make(map[string]*Function)

func register(fn *Function) *Function {
	key := strings.ToUpper(fn.Name)
	if _, dup := builtins[key]; dup {
		panic(value.Internalf("function %v registered twice", fn.Name))
	}
	builtins[key] = fn
	return fn
}

// alias makes fn available under another name.
func alias(name string, fn *Function) {
	builtins[strings.ToUpper(name)] = fn
}

// Lookup returns the builtin function or operator with the given name. Names
// are case-insensitive.
func Lookup(name string) (*Function, bool) {
	fn, ok := builtins[strings.ToUpper(name)]
	return fn, ok
}

// Builtins returns every builtin function and operator, sorted by name.
func Builtins() []*Function {
	seen := make(map[*Function]bool, len(builtins))
	res := make([]*Function, 0, len(builtins))
	for _, fn := range builtins {
		if !seen[fn] {
			seen[fn] = true
			res = append(res, fn)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})
	return res
}

// Logical operators and special forms.
var (
	// And is the "&&" operator. See evalAnd.
	And = register(&Function{Name: "&&", Operator: true, MinArgs: 2, MaxArgs: 2, Special: evalAnd})
	// Or is the "||" operator. See evalOr.
	Or = register(&Function{Name: "||", Operator: true, MinArgs: 2, MaxArgs: 2, Special: evalOr})
	// Not is the "!" operator.
	Not = register(&Function{Name: "!", Operator: true, MinArgs: 1, MaxArgs: 1,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			b, err := value.EBV(args[0])
			if err != nil {
				return nil, err
			}
			return value.NewBoolean(!b), nil
		}})
	If       = register(&Function{Name: "IF", MinArgs: 3, MaxArgs: 3, Special: evalIf})
	Coalesce = register(&Function{Name: "COALESCE", MinArgs: 0, MaxArgs: -1, Special: evalCoalesce})
	Bound    = register(&Function{Name: "BOUND", MinArgs: 1, MaxArgs: 1, Special: evalBound})
	In       = register(&Function{Name: "IN", MinArgs: 1, MaxArgs: -1, Special: evalIn(false)})
	NotIn    = register(&Function{Name: "NOT IN", MinArgs: 1, MaxArgs: -1, Special: evalIn(true)})
)

// evalAnd implements "&&" with short-circuit evaluation: a false left operand
// determines the result without evaluating the right one. An evaluation error
// on one side is returned only if the other side is not false.
func evalAnd(ctx context.Context, env *Env, b Binding, args []Expr) (*value.Value, error) {
	left, lerr := evalEBV(ctx, args[0], b, env)
	if lerr == nil && !left {
		return value.False, nil
	}
	if lerr != nil && !value.IsEvalError(lerr) {
		return nil, lerr
	}
	right, rerr := evalEBV(ctx, args[1], b, env)
	switch {
	case rerr == nil && !right:
		return value.False, nil
	case lerr != nil:
		return nil, lerr
	case rerr != nil:
		return nil, rerr
	}
	return value.True, nil
}

// evalOr implements "||" with short-circuit evaluation: a true left operand
// determines the result without evaluating the right one. An evaluation error
// on one side is returned only if the other side is not true.
func evalOr(ctx context.Context, env *Env, b Binding, args []Expr) (*value.Value, error) {
	left, lerr := evalEBV(ctx, args[0], b, env)
	if lerr == nil && left {
		return value.True, nil
	}
	if lerr != nil && !value.IsEvalError(lerr) {
		return nil, lerr
	}
	right, rerr := evalEBV(ctx, args[1], b, env)
	switch {
	case rerr == nil && right:
		return value.True, nil
	case lerr != nil:
		return nil, lerr
	case rerr != nil:
		return nil, rerr
	}
	return value.False, nil
}

func evalIf(ctx context.Context, env *Env, b Binding, args []Expr) (*value.Value, error) {
	cond, err := evalEBV(ctx, args[0], b, env)
	if err != nil {
		return nil, err
	}
	if cond {
		return Eval(ctx, args[1], b, env)
	}
	return Eval(ctx, args[2], b, env)
}

// evalCoalesce returns the value of the first argument that evaluates without
// an evaluation error.
func evalCoalesce(ctx context.Context, env *Env, b Binding, args []Expr) (*value.Value, error) {
	for _, arg := range args {
		v, err := Eval(ctx, arg, b, env)
		if err == nil {
			return v, nil
		}
		if !value.IsEvalError(err) {
			return nil, err
		}
	}
	return nil, value.Errorf("COALESCE: no argument has a value")
}

// evalBound tests whether a variable is bound. After substitution the
// argument may be a constant, which is bound by definition.
func evalBound(ctx context.Context, env *Env, b Binding, args []Expr) (*value.Value, error) {
	switch arg := args[0].(type) {
	case *Constant:
		return value.True, nil
	case *Var:
		if b == nil {
			return value.False, nil
		}
		t, ok := b.Get(arg.Name)
		return value.NewBoolean(ok && rdf.IsConcrete(t)), nil
	}
	return nil, value.Errorf("BOUND: argument %v is not a variable", args[0])
}

// evalIn returns the special form for IN, or NOT IN if negate is set. The
// first argument is compared with each of the others using "=". Errors from
// the other arguments are returned only if no match is found.
func evalIn(negate bool) func(context.Context, *Env, Binding, []Expr) (*value.Value, error) {
	return func(ctx context.Context, env *Env, b Binding, args []Expr) (*value.Value, error) {
		needle, err := Eval(ctx, args[0], b, env)
		if err != nil {
			return nil, err
		}
		var firstErr error
		for _, arg := range args[1:] {
			v, err := Eval(ctx, arg, b, env)
			if err == nil {
				var same bool
				same, err = value.SameAs(needle, v, env.Options)
				if err == nil && same {
					return value.NewBoolean(!negate), nil
				}
			}
			if err != nil {
				if !value.IsEvalError(err) {
					return nil, err
				}
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		if firstErr != nil {
			return nil, firstErr
		}
		return value.NewBoolean(negate), nil
	}
}

// Comparison operators.
var (
	Equals = register(&Function{Name: "=", Operator: true, MinArgs: 2, MaxArgs: 2,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			same, err := value.SameAs(args[0], args[1], env.Options)
			if err != nil {
				return nil, err
			}
			return value.NewBoolean(same), nil
		}})
	NotEquals = register(&Function{Name: "!=", Operator: true, MinArgs: 2, MaxArgs: 2,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			diff, err := value.NotSameAs(args[0], args[1], env.Options)
			if err != nil {
				return nil, err
			}
			return value.NewBoolean(diff), nil
		}})
	Less         = register(ordering("<", func(c int) bool { return c < 0 }))
	LessEqual    = register(ordering("<=", func(c int) bool { return c <= 0 }))
	Greater      = register(ordering(">", func(c int) bool { return c > 0 }))
	GreaterEqual = register(ordering(">=", func(c int) bool { return c >= 0 }))
	SameTerm     = register(&Function{Name: "sameTerm", MinArgs: 2, MaxArgs: 2,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			return value.NewBoolean(rdf.TermsEqual(args[0].Term(), args[1].Term())), nil
		}})
)

// ordering returns a relational operator that's true when test accepts the
// result of value.Compare.
func ordering(symbol string, test func(int) bool) *Function {
	return &Function{Name: symbol, Operator: true, MinArgs: 2, MaxArgs: 2,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			c, err := value.Compare(args[0], args[1], env.Options)
			if err != nil {
				return nil, err
			}
			return value.NewBoolean(test(c)), nil
		}}
}

// Arithmetic operators. Plus and Minus take one argument as unary operators
// and two as binary ones.
var (
	Plus = register(&Function{Name: "+", Operator: true, MinArgs: 1, MaxArgs: 2,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			if len(args) == 1 {
				if !args[0].IsNumeric() {
					return nil, value.Errorf("unary +: %v is not numeric", args[0])
				}
				return args[0], nil
			}
			return value.Add(args[0], args[1])
		}})
	Minus = register(&Function{Name: "-", Operator: true, MinArgs: 1, MaxArgs: 2,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			if len(args) == 1 {
				return value.Negate(args[0])
			}
			return value.Subtract(args[0], args[1])
		}})
	Times = register(&Function{Name: "*", Operator: true, MinArgs: 2, MaxArgs: 2,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			return value.Multiply(args[0], args[1])
		}})
	Divide = register(&Function{Name: "/", Operator: true, MinArgs: 2, MaxArgs: 2,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			return value.Divide(args[0], args[1])
		}})
)

// Convenience constructors for the most common calls.

// NewAnd returns the expression "left && right".
func NewAnd(left, right Expr) Expr { return NewCall(And, left, right) }

// NewOr returns the expression "left || right".
func NewOr(left, right Expr) Expr { return NewCall(Or, left, right) }

// NewNot returns the expression "!arg".
func NewNot(arg Expr) Expr { return NewCall(Not, arg) }

// NewEquals returns the expression "left = right".
func NewEquals(left, right Expr) Expr { return NewCall(Equals, left, right) }
