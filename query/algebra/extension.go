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
	"strconv"
	"strings"

	"github.com/ebay/sparqlcore/query/expr"
	"github.com/pkg/errors"
)

// A Hook runs an Extension operator.
type Hook interface {
	// Execute evaluates the extension once for each input row and returns
	// the combined output rows.
	Execute(ctx context.Context, env *expr.Env, input expr.Rows) (expr.Rows, error)
}

// Extension is an engine-specific operator. Effective is an ordinary plan
// that computes the same rows, which is what rewrites and comparisons see;
// Hook, if set, is how the engine actually runs it. Transform treats an
// Extension as a leaf.
type Extension struct {
	Name      string
	Effective Op
	Hook      Hook
}

func (*Extension) anOp()  {}
func (*Extension) anOp0() {}

func (op *Extension) String() string {
	return "Extension " + op.Name
}

// Key implements cmp.Key.
func (op *Extension) Key(b *strings.Builder) {
	b.WriteString(op.String())
	if op.Effective != nil {
		b.WriteString(" [")
		op.Effective.Key(b)
		b.WriteByte(']')
	}
}

// Execute runs the extension with its Hook. Without a Hook, it hands the
// Effective plan to env's Executor instead.
func (op *Extension) Execute(ctx context.Context, env *expr.Env, input expr.Rows) (expr.Rows, error) {
	if op.Hook != nil {
		return op.Hook.Execute(ctx, env, input)
	}
	if op.Effective == nil {
		return nil, errors.Errorf("extension %v has neither a hook nor an effective plan", op.Name)
	}
	if env == nil || env.Executor == nil {
		return nil, errors.Errorf("extension %v: no executor available", op.Name)
	}
	return env.Executor.Execute(ctx, AsPattern(op.Effective), input)
}

// Annotated carries a note, such as a source position or a comment for
// debugging, along with an optional child plan. Unlike the other unary
// operators, its Sub may be nil.
type Annotated struct {
	Note string
	Sub  Op
}

func (*Annotated) anOp() {}

// SubOp implements Op1.
func (op *Annotated) SubOp() Op { return op.Sub }

// CopyWith implements Op1.
func (op *Annotated) CopyWith(sub Op) Op1 {
	return &Annotated{Note: op.Note, Sub: sub}
}

func (op *Annotated) String() string {
	return "Annotated " + strconv.Quote(op.Note)
}

// Key implements cmp.Key.
func (op *Annotated) Key(b *strings.Builder) { writeKey(b, op) }
