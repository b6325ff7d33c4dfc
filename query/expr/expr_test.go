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
	"testing"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/ebay/sparqlcore/util/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_String(t *testing.T) {
	tests := []struct {
		expr Expr
		exp  string
	}{
		{NewVar("x"), "?x"},
		{integer(3), `"3"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{Const(iri("a")), "<http://example.com/a>"},
		{call("&&", NewVar("a"), NewVar("b")), "(?a && ?b)"},
		{call("!", NewVar("a")), "!?a"},
		{call("-", NewVar("a")), "-?a"},
		{call("-", NewVar("a"), NewVar("b")), "(?a - ?b)"},
		{call("strlen", NewVar("a")), "STRLEN(?a)"},
		{call("IF", NewVar("a"), NewVar("b"), NewVar("c")), "IF(?a, ?b, ?c)"},
		{call("CONCAT", NewVar("a")), "CONCAT(?a)"},
		{call("COALESCE"), "COALESCE()"},
		{call("UUID"), "UUID()"},
		{call("sameterm", NewVar("a"), str("b")), `sameTerm(?a, "b")`},
		{NewExtension("http://example.com/fn", NewVar("a"), integer(1)),
			`<http://example.com/fn>(?a, "1"^^<http://www.w3.org/2001/XMLSchema#integer>)`},
		{&PatternFunc{Op: Exists, Pattern: &testPattern{name: "p"}}, "EXISTS({p})"},
		{&PatternFunc{Op: NotExists, Pattern: &testPattern{name: "p"}}, "NOT EXISTS({p})"},
		{&PatternFunc{Op: Scalar, Pattern: &testPattern{name: "p"}, Var: "v"}, "SCALAR(?v, {p})"},
		{&Aggregate{Agg: &AggCall{Name: "COUNT"}}, "COUNT(*)"},
		{&Aggregate{Agg: &AggCall{Name: "SUM", Distinct: true, Args: []Expr{NewVar("a")}}, Var: NewVar(".0")},
			"SUM(DISTINCT ?a) AS ?.0"},
		{&Aggregate{Agg: &AggCall{Name: "GROUP_CONCAT", Args: []Expr{NewVar("a")}, Options: map[string]string{"separator": ","}}},
			"GROUP_CONCAT(?a; separator=,)"},
	}
	for _, test := range tests {
		t.Run(test.exp, func(t *testing.T) {
			assert.Equal(t, test.exp, test.expr.String())
			assert.Equal(t, test.exp, cmp.GetKey(test.expr))
		})
	}
}

func Test_NewCall(t *testing.T) {
	assert.IsType(t, &Func0{}, NewCall(UUID))
	assert.IsType(t, &Func1{}, NewCall(Not, trueExpr))
	assert.IsType(t, &Func2{}, NewCall(And, trueExpr, falseExpr))
	assert.IsType(t, &Func3{}, NewCall(If, trueExpr, trueExpr, falseExpr))
	// Variadic functions use FuncN regardless of the number of arguments.
	assert.IsType(t, &FuncN{}, NewCall(Concat))
	assert.IsType(t, &FuncN{}, NewCall(Concat, str("a")))
	assert.IsType(t, &FuncN{}, NewCall(In, integer(1), integer(2)))

	one, two := integer(1), integer(2)
	fn, args, ok := CallOf(NewCall(If, trueExpr, one, two))
	assert.True(t, ok)
	assert.Equal(t, If, fn)
	assert.Equal(t, []Expr{trueExpr, one, two}, args)
	_, _, ok = CallOf(NewVar("x"))
	assert.False(t, ok)
}

func Test_Call(t *testing.T) {
	_, err := Call("NOPE")
	assert.EqualError(t, err, "unknown function NOPE")
	_, err = Call("STRLEN")
	assert.EqualError(t, err, "function STRLEN takes 1 arguments, got 0")
	_, err = Call("SUBSTR", str("a"))
	assert.EqualError(t, err, "function SUBSTR takes 2 to 3 arguments, got 1")
	_, err = Call("IN")
	assert.EqualError(t, err, "function IN takes at least 1 arguments, got 0")
	e, err := Call("uri", str("x"))
	require.NoError(t, err)
	assert.Equal(t, `IRI("x")`, e.String())
	assert.Panics(t, func() { MustCall("STRLEN") })
}

func Test_Builtins(t *testing.T) {
	fns := Builtins()
	require.NotEmpty(t, fns)
	seen := make(map[string]bool)
	for i, fn := range fns {
		if i > 0 {
			assert.True(t, fns[i-1].Name < fn.Name, "%v before %v", fns[i-1], fn)
		}
		assert.False(t, seen[fn.Name], "duplicate %v", fn)
		seen[fn.Name] = true
		assert.True(t, fn.Eval != nil || fn.Special != nil, "%v has no implementation", fn)
		assert.False(t, fn.IsExtension())
	}
	for _, name := range []string{"&&", "||", "=", "<", "+", "STR", "BNODE", "REGEX", "YEAR", "SHA512", "NOT IN"} {
		assert.True(t, seen[name], "missing %v", name)
	}
	assert.False(t, seen["URI"], "aliases aren't listed separately")
}

func Test_Vars(t *testing.T) {
	e := call("&&",
		call("<", NewVar("b"), NewVar("a")),
		call("CONCAT", NewVar("c"), NewVar("a"), &Aggregate{Agg: &AggCall{Name: "COUNT"}, Var: NewVar("d")}))
	assert.Equal(t, []string{"a", "b", "c", "d"}, Vars(e))
	assert.Equal(t, []string{}, Vars(Const(rdf.NewLiteral("x"))))
}
