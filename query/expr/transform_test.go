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
	"strings"
	"testing"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/stretchr/testify/assert"
)

// renamer renames variables and records the order it visits calls in.
type renamer struct {
	CopyTransformer
	visited []string
}

func (r *renamer) TransformVar(orig *Var) Expr {
	return NewVar(strings.ToUpper(orig.Name))
}

func (r *renamer) Transform2(orig *Func2, left, right Expr) Expr {
	r.visited = append(r.visited, orig.Fn.Name)
	return r.CopyTransformer.Transform2(orig, left, right)
}

func Test_Transform(t *testing.T) {
	e := call("&&", call("<", NewVar("a"), integer(1)), call("CONCAT", NewVar("b"), str("c")))
	r := new(renamer)
	res := Transform(e, r)
	assert.Equal(t, `((?A < "1"^^<http://www.w3.org/2001/XMLSchema#integer>) && CONCAT(?B, "c"))`, res.String())
	assert.Equal(t, []string{"<", "&&"}, r.visited, "children are visited before parents")
	assert.Equal(t, `((?a < "1"^^<http://www.w3.org/2001/XMLSchema#integer>) && CONCAT(?b, "c"))`, e.String(),
		"original is unchanged")
}

func Test_TransformIdentity(t *testing.T) {
	exprs := []Expr{
		NewVar("a"),
		call("UUID"),
		call("!", NewVar("a")),
		call("IF", NewVar("a"), NewVar("b"), integer(1)),
		call("COALESCE", NewVar("a"), call("+", NewVar("b"), NewVar("c"))),
		&PatternFunc{Op: Exists, Pattern: &testPattern{name: "p"}},
		&Aggregate{Agg: &AggCall{Name: "COUNT"}, Var: NewVar("n")},
	}
	for _, e := range exprs {
		t.Run(e.String(), func(t *testing.T) {
			res := Transform(e, CopyTransformer{})
			assert.Same(t, e, res)
			assert.True(t, Equal(e, res, rdf.NewIsoMap()))
		})
	}
}

func Test_Walk(t *testing.T) {
	e := call("&&", call("<", NewVar("a"), integer(1)), call("CONCAT", NewVar("b"), str("c")))
	var visited []string
	Walk(e, func(e Expr) bool {
		visited = append(visited, e.String())
		_, isConcat := e.(*FuncN)
		return !isConcat
	})
	assert.Equal(t, []string{
		e.String(),
		`(?a < "1"^^<http://www.w3.org/2001/XMLSchema#integer>)`,
		"?a",
		`"1"^^<http://www.w3.org/2001/XMLSchema#integer>`,
		`CONCAT(?b, "c")`,
	}, visited)
}
