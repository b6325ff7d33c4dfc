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
	"strings"
	"testing"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/ebay/sparqlcore/rdf/value"
	"github.com/ebay/sparqlcore/util/cmp"
	"github.com/stretchr/testify/require"
)

// testPattern is a Pattern whose results are fixed.
type testPattern struct {
	name string
	rows []Binding
	// Set by SubstitutePattern.
	pushed Binding
}

func (p *testPattern) String() string { return "{" + p.name + "}" }

func (p *testPattern) Key(b *strings.Builder) {
	b.WriteString(p.String())
	if mb, ok := p.pushed.(*MapBinding); ok {
		b.WriteString(mb.String())
	}
}

func (p *testPattern) SubstitutePattern(b Binding) Pattern {
	return &testPattern{name: p.name, rows: p.rows, pushed: b}
}

func (p *testPattern) EqualPattern(other Pattern, iso *rdf.IsoMap) bool {
	o, ok := other.(*testPattern)
	return ok && cmp.KeysEqual(p, o)
}

func (p *testPattern) HashPattern() uint64 {
	return cmp.HashKey(p)
}

// testExecutor runs testPatterns, recording the input rows it's given.
type testExecutor struct {
	inputs []Binding
	err    error
}

func (e *testExecutor) Execute(ctx context.Context, p Pattern, input Rows) (Rows, error) {
	if e.err != nil {
		return nil, e.err
	}
	for {
		b, err := input.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		e.inputs = append(e.inputs, b)
	}
	return RowsOf(p.(*testPattern).rows...), nil
}

func iri(s string) *rdf.IRI {
	return rdf.NewIRI("http://example.com/" + s)
}

func str(s string) *Constant {
	return NewConstant(value.NewString(s))
}

func integer(i int64) *Constant {
	return NewConstant(value.NewInteger(i))
}

func lang(s, tag string) *Constant {
	return NewConstant(value.NewLangString(s, tag))
}

func typed(lexical, datatype string) *Constant {
	return Const(rdf.NewTypedLiteral(lexical, datatype))
}

var (
	trueExpr  = NewConstant(value.True)
	falseExpr = NewConstant(value.False)
	// errExpr always fails with an evaluation error.
	errExpr = NewVar("unbound")
)

// testBinding binds ?x to 1, ?s to "hello"@en, and ?i to an IRI.
func testBinding() *MapBinding {
	return NewBinding(map[string]rdf.Term{
		"x": rdf.NewTypedLiteral("1", rdf.XSDInteger),
		"s": rdf.NewLangLiteral("hello", "en"),
		"i": iri("thing"),
	})
}

// mustEval evaluates e against testBinding with a default Env.
func mustEval(t *testing.T, e Expr) *value.Value {
	t.Helper()
	v, err := Eval(context.Background(), e, testBinding(), NewEnv(nil))
	require.NoError(t, err, "evaluating %v", e)
	return v
}

func call(name string, args ...Expr) Expr {
	return MustCall(name, args...)
}
