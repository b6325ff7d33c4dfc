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
	"errors"
	"fmt"
	"sync"

	"github.com/ebay/sparqlcore/config"
	"github.com/ebay/sparqlcore/rdf/value"
	log "github.com/sirupsen/logrus"
)

// An ExtensionFunc implements a function that's named by an IRI. Its
// arguments are evaluated left to right before it's called.
type ExtensionFunc func(ctx context.Context, env *Env, args []*value.Value) (*value.Value, error)

// Registry resolves extension function IRIs to implementations. It's safe for
// concurrent use.
type Registry struct {
	lock   sync.RWMutex
	funcs  map[string]ExtensionFunc
	warned map[string]bool
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		funcs:  make(map[string]ExtensionFunc),
		warned: make(map[string]bool),
	}
}

// Register sets the implementation of the function named iri, replacing any
// previous one.
func (r *Registry) Register(iri string, fn ExtensionFunc) {
	r.lock.Lock()
	r.funcs[iri] = fn
	delete(r.warned, iri)
	r.lock.Unlock()
}

// Lookup returns the implementation of the function named iri.
func (r *Registry) Lookup(iri string) (ExtensionFunc, bool) {
	if r == nil {
		return nil, false
	}
	r.lock.RLock()
	fn, ok := r.funcs[iri]
	r.lock.RUnlock()
	return fn, ok
}

// resolve is like Lookup but returns an *UnknownFunctionError on a miss,
// logging it first under the warn policy. Each IRI is logged at most once per
// Registry.
func (r *Registry) resolve(iri string, policy config.UnknownFunctionPolicy) (ExtensionFunc, error) {
	if fn, ok := r.Lookup(iri); ok {
		return fn, nil
	}
	metrics.unknownFunctionsTotal.Inc()
	if policy == config.UnknownFunctionWarn && r != nil && r.firstMiss(iri) {
		log.WithField("function", iri).Warn("Unknown extension function; calls will fail")
	}
	return nil, &UnknownFunctionError{IRI: iri}
}

// firstMiss returns true the first time it's called for an IRI.
func (r *Registry) firstMiss(iri string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.warned[iri] {
		return false
	}
	r.warned[iri] = true
	return true
}

// UnknownFunctionError is the evaluation error raised when an extension
// function has no registered implementation.
type UnknownFunctionError struct {
	IRI string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function <%v>", e.IRI)
}

// EvalError returns true; a filter treats this error as false.
func (e *UnknownFunctionError) EvalError() bool {
	return true
}

func isUnknownFunction(err error) bool {
	var uf *UnknownFunctionError
	return errors.As(err, &uf)
}

// NewExtension returns a call of the extension function named iri. The
// implementation is looked up in the Env's Registry each time the call is
// evaluated, so calls are never folded into constants.
func NewExtension(iri string, args ...Expr) Expr {
	fn := &Function{
		Name:      iri,
		MaxArgs:   -1,
		NoFold:    true,
		extension: true,
	}
	fn.Special = func(ctx context.Context, env *Env, b Binding, args []Expr) (*value.Value, error) {
		impl, err := env.Registry.resolve(iri, env.Policy)
		if err != nil {
			return nil, err
		}
		vals, err := evalArgs(ctx, args, b, env)
		if err != nil {
			return nil, err
		}
		return impl(ctx, env, vals)
	}
	return &FuncN{Fn: fn, Args: args}
}

// IsExtension returns true if fn was created by NewExtension.
func (fn *Function) IsExtension() bool {
	return fn.extension
}

// CheckFunctions returns an *UnknownFunctionError for the first extension
// function in e that reg can't resolve. Callers that want unknown functions
// to fail a query up front, rather than row by row, use this after building
// their expressions.
func CheckFunctions(e Expr, reg *Registry) error {
	var err error
	Walk(e, func(e Expr) bool {
		if err != nil {
			return false
		}
		if fn, _, ok := CallOf(e); ok && fn.extension {
			if _, found := reg.Lookup(fn.Name); !found {
				err = &UnknownFunctionError{IRI: fn.Name}
			}
		}
		return err == nil
	})
	return err
}
