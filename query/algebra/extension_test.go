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
	"context"
	"io"
	"testing"

	"github.com/ebay/sparqlcore/query/expr"
	"github.com/ebay/sparqlcore/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doubler is a Hook that emits every input row twice.
type doubler struct{}

func (doubler) Execute(ctx context.Context, env *expr.Env, input expr.Rows) (expr.Rows, error) {
	var out []expr.Binding
	for {
		b, err := input.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, b, b)
	}
	return expr.RowsOf(out...), nil
}

func countRows(t *testing.T, rows expr.Rows) int {
	defer rows.Close()
	n := 0
	for {
		_, err := rows.Next(context.Background())
		if err == io.EOF {
			return n
		}
		require.NoError(t, err)
		n++
	}
}

func Test_ExtensionExecute(t *testing.T) {
	ctx := context.Background()
	effective := &Union{Left: Unit(), Right: Unit()}
	row := expr.NewBinding(map[string]rdf.Term{"a": iri("x")})

	ext := &Extension{Name: "doubler", Effective: effective, Hook: doubler{}}
	rows, err := ext.Execute(ctx, expr.NewEnv(nil), expr.RowsOf(row, row))
	require.NoError(t, err)
	assert.Equal(t, 4, countRows(t, rows))

	// Without a hook, the effective plan goes to the executor.
	exec := &rowExecutor{rows: []expr.Binding{row}}
	env := expr.NewEnv(nil)
	env.Executor = exec
	ext = &Extension{Name: "plain", Effective: effective}
	rows, err = ext.Execute(ctx, env, expr.RowsOf(row))
	require.NoError(t, err)
	assert.Equal(t, 1, countRows(t, rows))
	require.Len(t, exec.patterns, 1)
	op, _ := OpOf(exec.patterns[0])
	assert.Same(t, effective, op)

	_, err = ext.Execute(ctx, expr.NewEnv(nil), expr.RowsOf(row))
	assert.EqualError(t, err, "extension plain: no executor available")
	_, err = (&Extension{Name: "bare"}).Execute(ctx, env, expr.RowsOf(row))
	assert.EqualError(t, err, "extension bare has neither a hook nor an effective plan")
}

func Test_ExtensionIsLeaf(t *testing.T) {
	ext := &Extension{Name: "x", Effective: &Distinct{Sub: bgp()}}
	assert.Same(t, ext, Transform(ext, distinctDropper{}))
	var visited int
	Walk(ext, func(Op) bool {
		visited++
		return true
	})
	assert.Equal(t, 1, visited)
}
