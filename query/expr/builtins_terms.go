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
	"net/url"

	"github.com/ebay/sparqlcore/rdf"
	"github.com/ebay/sparqlcore/rdf/value"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Functions on RDF terms.
var (
	Str = register(&Function{Name: "STR", MinArgs: 1, MaxArgs: 1,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			if _, ok := args[0].Term().(*rdf.BlankNode); ok {
				return nil, value.Errorf("STR: blank node %v has no string form", args[0])
			}
			return value.NewString(args[0].Str()), nil
		}})
	Lang = register(&Function{Name: "LANG", MinArgs: 1, MaxArgs: 1,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			if !args[0].IsLiteral() {
				return nil, value.Errorf("LANG: %v is not a literal", args[0])
			}
			return value.NewString(args[0].Lang()), nil
		}})
	Datatype = register(&Function{Name: "DATATYPE", MinArgs: 1, MaxArgs: 1,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			lit, ok := args[0].Term().(*rdf.Literal)
			if !ok {
				return nil, value.Errorf("DATATYPE: %v is not a literal", args[0])
			}
			return value.NewNode(rdf.NewIRI(lit.DatatypeIRI())), nil
		}})
	// IRI depends on the Env's base IRI, so it's never folded.
	IRI = register(&Function{Name: "IRI", MinArgs: 1, MaxArgs: 1, NoFold: true, Eval: evalIRI})
	// BNODE returns a fresh blank node, or with an argument, the same blank
	// node for the same string within one row. It's never folded.
	BNode   = register(&Function{Name: "BNODE", MinArgs: 0, MaxArgs: 1, NoFold: true, Special: evalBNode})
	StrDT   = register(&Function{Name: "STRDT", MinArgs: 2, MaxArgs: 2, Eval: evalStrDT})
	StrLang = register(&Function{Name: "STRLANG", MinArgs: 2, MaxArgs: 2, Eval: evalStrLang})
	IsIRI   = register(termTest("isIRI", func(v *value.Value) bool {
		_, ok := v.Term().(*rdf.IRI)
		return ok
	}))
	IsBlank = register(termTest("isBlank", func(v *value.Value) bool {
		_, ok := v.Term().(*rdf.BlankNode)
		return ok
	}))
	IsLiteral = register(termTest("isLiteral", (*value.Value).IsLiteral))
	IsNumeric = register(termTest("isNumeric", (*value.Value).IsNumeric))
	UUID      = register(&Function{Name: "UUID", MinArgs: 0, MaxArgs: 0, NoFold: true,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			return value.NewNode(rdf.NewIRI("urn:uuid:" + uuid.NewString())), nil
		}})
	StrUUID = register(&Function{Name: "STRUUID", MinArgs: 0, MaxArgs: 0, NoFold: true,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			return value.NewString(uuid.NewString()), nil
		}})
)

func init() {
	alias("URI", IRI)
	alias("isURI", IsIRI)
}

func termTest(name string, test func(*value.Value) bool) *Function {
	return &Function{Name: name, MinArgs: 1, MaxArgs: 1,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			return value.NewBoolean(test(args[0])), nil
		}}
}

// plainString returns the lexical form of a simple or xsd:string literal.
func plainString(fn string, v *value.Value) (string, error) {
	if v.Kind() != value.KindString {
		return "", value.Errorf("%v: %v is not a simple or xsd:string literal", fn, v)
	}
	return v.Str(), nil
}

// evalIRI returns IRIs unchanged and converts strings to IRIs, resolving
// relative references against the Env's base IRI.
func evalIRI(env *Env, args []*value.Value) (*value.Value, error) {
	if iri, ok := args[0].Term().(*rdf.IRI); ok {
		return value.NewNode(iri), nil
	}
	s, err := plainString("IRI", args[0])
	if err != nil {
		return nil, err
	}
	ref, err := url.Parse(s)
	if err != nil {
		return nil, value.Errorf("IRI: invalid IRI %q: %v", s, err)
	}
	if env.BaseIRI != "" && !ref.IsAbs() {
		base, err := url.Parse(env.BaseIRI)
		if err != nil {
			return nil, value.Errorf("IRI: invalid base IRI %q: %v", env.BaseIRI, err)
		}
		ref = base.ResolveReference(ref)
	}
	return value.NewNode(rdf.NewIRI(ref.String())), nil
}

func evalBNode(ctx context.Context, env *Env, b Binding, args []Expr) (*value.Value, error) {
	if len(args) == 0 {
		return value.NewNode(env.BlankNodes().Fresh()), nil
	}
	v, err := Eval(ctx, args[0], b, env)
	if err != nil {
		return nil, err
	}
	label, err := plainString("BNODE", v)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = EmptyBinding
	}
	bn, err := env.BlankNodes().ForLabel(b, label)
	if err != nil {
		return nil, err
	}
	return value.NewNode(bn), nil
}

func evalStrDT(env *Env, args []*value.Value) (*value.Value, error) {
	lexical, err := plainString("STRDT", args[0])
	if err != nil {
		return nil, err
	}
	dt, ok := args[1].Term().(*rdf.IRI)
	if !ok {
		return nil, value.Errorf("STRDT: datatype %v is not an IRI", args[1])
	}
	return value.FromTerm(rdf.NewTypedLiteral(lexical, dt.Value)), nil
}

func evalStrLang(env *Env, args []*value.Value) (*value.Value, error) {
	lexical, err := plainString("STRLANG", args[0])
	if err != nil {
		return nil, err
	}
	tag, err := plainString("STRLANG", args[1])
	if err != nil {
		return nil, err
	}
	if _, err := language.Parse(tag); err != nil {
		return nil, value.Errorf("STRLANG: invalid language tag %q: %v", tag, err)
	}
	return value.NewLangString(lexical, tag), nil
}
