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
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/ebay/sparqlcore/config"
	"github.com/ebay/sparqlcore/rdf"
	"github.com/ebay/sparqlcore/rdf/value"
	"github.com/ebay/sparqlcore/util/cmp"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// A Binding maps variables to terms for one candidate result row. It's
// supplied by the executor. BNODE(str) keys its per-row state by Binding, so
// it needs implementations that are comparable with == (pointer types are);
// for other implementations it raises an evaluation error.
type Binding interface {
	// Get returns the term bound to the named variable, if any.
	Get(name string) (rdf.Term, bool)
}

// MapBinding is a Binding backed by a map.
type MapBinding struct {
	vals map[string]rdf.Term
}

// NewBinding returns a Binding with the given variable values. The map is
// copied.
func NewBinding(vals map[string]rdf.Term) *MapBinding {
	b := &MapBinding{vals: make(map[string]rdf.Term, len(vals))}
	for k, v := range vals {
		b.vals[k] = v
	}
	return b
}

// EmptyBinding binds no variables.
var EmptyBinding = NewBinding(nil)

// Get implements Binding.
func (b *MapBinding) Get(name string) (rdf.Term, bool) {
	t, ok := b.vals[name]
	return t, ok
}

// Names returns the bound variable names in sorted order.
func (b *MapBinding) Names() []string {
	names := make([]string, 0, len(b.vals))
	for n := range b.vals {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Extend returns a new binding with name bound to t in addition to the
// existing variables.
func (b *MapBinding) Extend(name string, t rdf.Term) *MapBinding {
	res := NewBinding(b.vals)
	res.vals[name] = t
	return res
}

func (b *MapBinding) String() string {
	var s strings.Builder
	s.WriteByte('{')
	for i, n := range b.Names() {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString("?" + n + "=" + b.vals[n].String())
	}
	s.WriteByte('}')
	return s.String()
}

// A Pattern is a sub-plan embedded in an expression, such as the body of an
// EXISTS. The algebra package provides the implementation; expressions only
// need to render, compare, and substitute into it.
type Pattern interface {
	String() string
	cmp.Key
	// SubstitutePattern returns a copy of the pattern with the variables
	// bound in b replaced by their terms.
	SubstitutePattern(b Binding) Pattern
	// EqualPattern returns true if the two patterns are structurally equal,
	// relating blank nodes through iso.
	EqualPattern(other Pattern, iso *rdf.IsoMap) bool
	// HashPattern returns a structural hash that's equal for patterns that
	// are equal under some blank node mapping.
	HashPattern() uint64
}

// Rows is a stream of result rows.
type Rows interface {
	// Next returns the next row, or io.EOF after the last row.
	Next(ctx context.Context) (Binding, error)
	// Close releases any resources held by the stream.
	Close()
}

// RowsOf returns a Rows that yields the given bindings in order.
func RowsOf(bindings ...Binding) Rows {
	return &sliceRows{rows: bindings}
}

type sliceRows struct {
	rows []Binding
}

func (r *sliceRows) Next(ctx context.Context) (Binding, error) {
	if len(r.rows) == 0 {
		return nil, io.EOF
	}
	b := r.rows[0]
	r.rows = r.rows[1:]
	return b, nil
}

func (r *sliceRows) Close() {
	r.rows = nil
}

// An Executor runs sub-patterns on behalf of PatternFunc expressions. It's
// owned by the query engine.
type Executor interface {
	// Execute runs the pattern once for each input row and returns the
	// combined output rows.
	Execute(ctx context.Context, p Pattern, input Rows) (Rows, error)
}

// An Aggregator is the opaque description of an aggregate, like COUNT(?x).
// Computing aggregates is up to the query engine.
type Aggregator interface {
	String() string
	cmp.Key
	// EqualAggregator returns true if the two aggregators compute the same
	// thing.
	EqualAggregator(other Aggregator, iso *rdf.IsoMap) bool
}

// AggCall is a generic Aggregator: a named aggregate function applied to
// argument expressions.
type AggCall struct {
	// The aggregate name, like "COUNT" or "GROUP_CONCAT".
	Name     string
	Distinct bool
	// Nil Args means "*", as in COUNT(*).
	Args []Expr
	// Extra scalar options, like the separator of GROUP_CONCAT.
	Options map[string]string
}

func (a *AggCall) String() string {
	return cmp.GetKey(a)
}

// Key implements cmp.Key.
func (a *AggCall) Key(b *strings.Builder) {
	b.WriteString(a.Name)
	b.WriteByte('(')
	if a.Distinct {
		b.WriteString("DISTINCT ")
	}
	if a.Args == nil {
		b.WriteByte('*')
	}
	for i, arg := range a.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.Key(b)
	}
	keys := make([]string, 0, len(a.Options))
	for k := range a.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("; ")
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(a.Options[k])
	}
	b.WriteByte(')')
}

// EqualAggregator implements Aggregator.
func (a *AggCall) EqualAggregator(other Aggregator, iso *rdf.IsoMap) bool {
	o, ok := other.(*AggCall)
	if !ok || a.Name != o.Name || a.Distinct != o.Distinct ||
		(a.Args == nil) != (o.Args == nil) || len(a.Args) != len(o.Args) ||
		len(a.Options) != len(o.Options) {
		return false
	}
	for k, v := range a.Options {
		if ov, ok := o.Options[k]; !ok || ov != v {
			return false
		}
	}
	return equalLists(a.Args, o.Args, iso)
}

// Env is the context that expressions are evaluated in. It carries the
// evaluation options and the per-execution state that some functions keep.
// An Env may be shared by concurrent evaluations.
type Env struct {
	// How values are compared.
	Options value.Options
	// What happens when an extension function isn't registered.
	Policy config.UnknownFunctionPolicy
	// Relative IRIs built by IRI() are resolved against this, if set.
	BaseIRI string
	// Resolves extension functions. May be nil.
	Registry *Registry
	// Runs the patterns of PatternFunc expressions. May be nil, in which case
	// evaluating them fails.
	Executor Executor
	// The graph that patterns currently match against; nil for the default
	// graph.
	ActiveGraph rdf.Term
	// The dataset being queried. Opaque to this package.
	Dataset interface{}
	// Values the query engine wants to make available to extension
	// functions.
	Context map[string]interface{}

	digests *lru.Cache[string, string]
	regexps *lru.Cache[string, *regexp.Regexp]
	bnodes  *BlankNodeAllocator
}

const (
	// Number of rows for which BNODE(str) remembers its blank nodes.
	blankNodeScopes = 1024
	// Number of compiled REGEX and REPLACE patterns kept per Env.
	regexpCacheSize = 64
)

// NewEnv returns an Env configured by cfg. A nil cfg selects the defaults.
func NewEnv(cfg *config.Evaluation) *Env {
	if cfg == nil {
		cfg = new(config.Evaluation)
	}
	env := &Env{
		Options:  cfg.ValueOptions(),
		Policy:   cfg.Policy(),
		BaseIRI:  cfg.BaseIRI,
		Registry: NewRegistry(),
		Context:  make(map[string]interface{}),
		bnodes:   NewBlankNodeAllocator(blankNodeScopes),
	}
	regexps, err := lru.New[string, *regexp.Regexp](regexpCacheSize)
	if err != nil {
		panic(value.Internalf("creating regexp cache: %v", err))
	}
	env.regexps = regexps
	if n := cfg.DigestCache(); n > 0 {
		cache, err := lru.New[string, string](n)
		if err != nil {
			panic(value.Internalf("creating digest cache of size %d: %v", n, err))
		}
		env.digests = cache
	}
	return env
}

// digest returns compute(input), remembering recent results of the named
// function.
func (env *Env) digest(name, input string, compute func(string) string) string {
	if env == nil || env.digests == nil {
		return compute(input)
	}
	key := name + "\x00" + input
	if res, ok := env.digests.Get(key); ok {
		return res
	}
	res := compute(input)
	env.digests.Add(key, res)
	return res
}

func (env *Env) cachedRegexp(key string) (*regexp.Regexp, bool) {
	if env.regexps == nil {
		return nil, false
	}
	return env.regexps.Get(key)
}

func (env *Env) cacheRegexp(key string, re *regexp.Regexp) {
	if env.regexps != nil {
		env.regexps.Add(key, re)
	}
}

// BlankNodes returns the Env's blank node allocator.
func (env *Env) BlankNodes() *BlankNodeAllocator {
	if env.bnodes == nil {
		env.bnodes = NewBlankNodeAllocator(blankNodeScopes)
	}
	return env.bnodes
}

// A BlankNodeAllocator creates the blank nodes returned by BNODE(). Within
// one row, BNODE(str) returns the same blank node for the same string; a
// bounded number of recent rows are remembered. It's safe for concurrent
// use.
type BlankNodeAllocator struct {
	lock   sync.Mutex
	scopes *lru.Cache[Binding, map[string]*rdf.BlankNode]
}

// NewBlankNodeAllocator returns an allocator that remembers labels for up
// to the given number of rows.
func NewBlankNodeAllocator(rows int) *BlankNodeAllocator {
	scopes, err := lru.New[Binding, map[string]*rdf.BlankNode](rows)
	if err != nil {
		panic(value.Internalf("creating blank node allocator of size %d: %v", rows, err))
	}
	return &BlankNodeAllocator{scopes: scopes}
}

// Fresh returns a blank node with a new, globally unique label.
func (a *BlankNodeAllocator) Fresh() *rdf.BlankNode {
	return rdf.NewBlankNode("b" + strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// ForLabel returns the blank node for the given string within the row b,
// allocating a fresh one the first time. It returns an evaluation error if
// b's type isn't comparable, since rows are told apart with ==.
func (a *BlankNodeAllocator) ForLabel(b Binding, label string) (*rdf.BlankNode, error) {
	if b != nil && !reflect.TypeOf(b).Comparable() {
		return nil, value.Errorf("BNODE: cannot track rows of uncomparable binding type %T", b)
	}
	a.lock.Lock()
	defer a.lock.Unlock()
	scope, ok := a.scopes.Get(b)
	if !ok {
		scope = make(map[string]*rdf.BlankNode)
		a.scopes.Add(b, scope)
	}
	bn, ok := scope[label]
	if !ok {
		bn = a.Fresh()
		scope[label] = bn
	}
	return bn, nil
}
