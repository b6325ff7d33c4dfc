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
)

// NewFilter returns a Filter of the given expressions over sub. If sub is
// itself a Filter, the result is a single Filter over sub's input, with the
// new expressions ahead of sub's, as NormalizeFilterChain would order them.
func NewFilter(sub Op, exprs ...expr.Expr) Op {
	if len(exprs) == 0 {
		return sub
	}
	if f, ok := sub.(*Filter); ok {
		all := make([]expr.Expr, 0, len(f.Exprs)+len(exprs))
		all = append(all, exprs...)
		all = append(all, f.Exprs...)
		return &Filter{Exprs: all, Sub: f.Sub}
	}
	return &Filter{Exprs: exprs, Sub: sub}
}

// NormalizeFilterChain collapses a chain of directly nested Filters starting
// at op into a single Filter. Its expressions are those of each level in
// order, outermost first, and it reads from the first input that isn't a
// Filter. Any other op is returned as is.
func NormalizeFilterChain(op Op) Op {
	f, ok := op.(*Filter)
	if !ok {
		return op
	}
	if _, nested := f.Sub.(*Filter); !nested {
		return f
	}
	var exprs []expr.Expr
	var sub Op = f
	for {
		level, ok := sub.(*Filter)
		if !ok {
			break
		}
		exprs = append(exprs, level.Exprs...)
		sub = level.Sub
	}
	return &Filter{Exprs: exprs, Sub: sub}
}

// NormalizeFilters is a rewrite pass that applies NormalizeFilterChain
// throughout a tree.
var NormalizeFilters = TransformPass("NormalizeFilters", filterNormalizer{})

type filterNormalizer struct {
	CopyTransformer
}

func (t filterNormalizer) Transform1(orig Op1, sub Op) Op {
	return NormalizeFilterChain(t.CopyTransformer.Transform1(orig, sub))
}
