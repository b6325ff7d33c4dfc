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
	"github.com/ebay/sparqlcore/query/expr"
	"github.com/pkg/errors"
)

// ExtendBuilder accumulates the variable bindings of consecutive BIND or LET
// clauses and produces a single Extend (or Assign) node from them. Unlike the
// nodes it builds, an ExtendBuilder is mutable; it is not safe for concurrent
// use.
type ExtendBuilder struct {
	sub      Op
	assign   bool
	bindings []VarExpr
}

// NewExtendBuilder returns a builder for an Extend over sub. If sub is already
// an Extend, its bindings are carried over and the result replaces it; sub
// itself is not modified.
func NewExtendBuilder(sub Op) *ExtendBuilder {
	if ext, ok := sub.(*Extend); ok {
		return &ExtendBuilder{sub: ext.Sub, bindings: append([]VarExpr(nil), ext.Bindings...)}
	}
	return &ExtendBuilder{sub: sub}
}

// NewAssignBuilder is like NewExtendBuilder but builds an Assign.
func NewAssignBuilder(sub Op) *ExtendBuilder {
	if a, ok := sub.(*Assign); ok {
		return &ExtendBuilder{sub: a.Sub, assign: true, bindings: append([]VarExpr(nil), a.Bindings...)}
	}
	return &ExtendBuilder{sub: sub, assign: true}
}

// Add binds the variable named v to e. It returns an error if v is already
// bound by this builder.
func (b *ExtendBuilder) Add(v string, e expr.Expr) error {
	for _, existing := range b.bindings {
		if existing.Var == v {
			return errors.Errorf("variable ?%v is already bound to %v", v, existing.Expr)
		}
	}
	b.bindings = append(b.bindings, VarExpr{Var: v, Expr: e})
	return nil
}

// Len returns the number of bindings added so far, including any carried over
// from the builder's input.
func (b *ExtendBuilder) Len() int {
	return len(b.bindings)
}

// Build returns a new node holding the bindings added so far, or the input
// itself if there are none. The builder may continue to be used afterwards
// without affecting the returned node.
func (b *ExtendBuilder) Build() Op {
	if len(b.bindings) == 0 {
		return b.sub
	}
	bindings := append([]VarExpr(nil), b.bindings...)
	if b.assign {
		return &Assign{Bindings: bindings, Sub: b.sub}
	}
	return &Extend{Bindings: bindings, Sub: b.sub}
}

// ExtendWith returns op extended with a binding of v to e. It's a shorthand
// for a single use of an ExtendBuilder, so an Extend op gains a binding in a
// new node rather than being wrapped in another one.
func ExtendWith(op Op, v string, e expr.Expr) (Op, error) {
	b := NewExtendBuilder(op)
	if err := b.Add(v, e); err != nil {
		return nil, err
	}
	return b.Build(), nil
}
