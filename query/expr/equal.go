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
	"strconv"
	"strings"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/ebay/sparqlcore/util/cmp"
)

// Equal returns true if the two expressions have the same structure: the same
// kinds of nodes, the same functions, and pairwise equal arguments in the same
// order. Constants that are blank nodes are related through iso, which is
// extended as the comparison proceeds; a nil iso requires identical labels.
func Equal(a, b Expr, iso *rdf.IsoMap) bool {
	switch a := a.(type) {
	case *Var:
		b, ok := b.(*Var)
		return ok && a.Name == b.Name
	case *Constant:
		b, ok := b.(*Constant)
		return ok && rdf.TermsEqualIso(a.Val.Term(), b.Val.Term(), iso)
	case *PatternFunc:
		b, ok := b.(*PatternFunc)
		return ok && a.Op == b.Op && a.Var == b.Var && a.Pattern.EqualPattern(b.Pattern, iso)
	case *Aggregate:
		b, ok := b.(*Aggregate)
		if !ok || (a.Var == nil) != (b.Var == nil) || !a.Agg.EqualAggregator(b.Agg, iso) {
			return false
		}
		return a.Var == nil || a.Var.Name == b.Var.Name
	}
	afn, aargs, ok := CallOf(a)
	if !ok {
		return false
	}
	bfn, bargs, ok := CallOf(b)
	if !ok || !sameFunction(afn, bfn) || !sameArity(a, b) {
		return false
	}
	return equalLists(aargs, bargs, iso)
}

func sameFunction(a, b *Function) bool {
	return a == b || (a.Name == b.Name && a.extension == b.extension)
}

// sameArity returns true if both calls use the same node type.
func sameArity(a, b Expr) bool {
	switch a.(type) {
	case *Func0:
		_, ok := b.(*Func0)
		return ok
	case *Func1:
		_, ok := b.(*Func1)
		return ok
	case *Func2:
		_, ok := b.(*Func2)
		return ok
	case *Func3:
		_, ok := b.(*Func3)
		return ok
	case *FuncN:
		_, ok := b.(*FuncN)
		return ok
	}
	return false
}

func equalLists(a, b []Expr, iso *rdf.IsoMap) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i], iso) {
			return false
		}
	}
	return true
}

// Hash returns a structural hash of e. Expressions that are Equal under some
// blank node mapping have equal hashes.
func Hash(e Expr) uint64 {
	return cmp.HashKey(cmp.KeyFunc(func(b *strings.Builder) {
		writeHashKey(b, e)
	}))
}

// writeHashKey writes e's key with blank node labels left out.
func writeHashKey(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *Constant:
		if _, ok := e.Val.Term().(*rdf.BlankNode); ok {
			b.WriteString("_:")
			return
		}
		e.Key(b)
		return
	case *PatternFunc:
		b.WriteString(e.Op.String())
		b.WriteString("(?")
		b.WriteString(e.Var)
		b.WriteByte(' ')
		b.WriteString(strconv.FormatUint(e.Pattern.HashPattern(), 16))
		b.WriteByte(')')
		return
	case *Aggregate:
		if agg, ok := e.Agg.(*AggCall); ok {
			b.WriteString(agg.Name)
			b.WriteString(strconv.FormatBool(agg.Distinct))
			b.WriteString(strconv.Itoa(len(agg.Args)))
			for _, arg := range agg.Args {
				b.WriteByte(' ')
				writeHashKey(b, arg)
			}
		} else {
			// Other aggregators may embed blank nodes in their keys.
			b.WriteString("agg")
		}
		if e.Var != nil {
			b.WriteString(" AS ")
			e.Var.Key(b)
		}
		return
	}
	fn, args, ok := CallOf(e)
	if !ok {
		e.Key(b)
		return
	}
	b.WriteString(fn.Name)
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(len(args)))
	b.WriteByte('(')
	for _, arg := range args {
		writeHashKey(b, arg)
		b.WriteByte(',')
	}
	b.WriteByte(')')
}
