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

// Package rdf defines the graph terms (IRIs, blank nodes, literals) that query
// plans and expressions are built from, along with syntactic equality and
// ordering over them.
package rdf

import (
	"strings"

	"github.com/ebay/sparqlcore/util/cmp"
)

// A Term is an RDF node, or a Variable standing in for one inside a pattern.
type Term interface {
	String() string
	cmp.Key
	aTerm()
}

// ImplementTerm is a list of types that implement Term. This serves as
// documentation and as a compile-time check.
var ImplementTerm = []Term{
	new(IRI),
	new(BlankNode),
	new(Literal),
	new(Variable),
}

// An IRI is a Term naming a resource.
type IRI struct {
	Value string
}

// NewIRI returns an IRI with the given value.
func NewIRI(value string) *IRI {
	return &IRI{Value: value}
}

func (*IRI) aTerm() {}

// String returns a string like "<http://example.org/a>".
func (iri *IRI) String() string {
	return "<" + iri.Value + ">"
}

// Key implements cmp.Key.
func (iri *IRI) Key(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(iri.Value)
	b.WriteByte('>')
}

// A BlankNode is a Term with a label that's local to the enclosing graph or
// pattern.
type BlankNode struct {
	Label string
}

// NewBlankNode returns a BlankNode with the given label.
func NewBlankNode(label string) *BlankNode {
	return &BlankNode{Label: label}
}

func (*BlankNode) aTerm() {}

// String returns a string like "_:b0".
func (bn *BlankNode) String() string {
	return "_:" + bn.Label
}

// Key implements cmp.Key.
func (bn *BlankNode) Key(b *strings.Builder) {
	b.WriteString("_:")
	b.WriteString(bn.Label)
}

// A Literal is a Term carrying a lexical form. A simple literal has neither a
// language tag nor a datatype. A language-tagged literal has a Lang and an
// empty Datatype (its datatype is implicitly rdf:langString). Otherwise the
// literal is typed.
type Literal struct {
	Lexical  string
	Lang     string
	Datatype string
}

// NewLiteral returns a simple literal.
func NewLiteral(lexical string) *Literal {
	return &Literal{Lexical: lexical}
}

// NewLangLiteral returns a language-tagged literal.
func NewLangLiteral(lexical, lang string) *Literal {
	return &Literal{Lexical: lexical, Lang: lang}
}

// NewTypedLiteral returns a literal with the given datatype IRI. A datatype
// of rdf:langString is not allowed here; use NewLangLiteral instead.
func NewTypedLiteral(lexical, datatype string) *Literal {
	return &Literal{Lexical: lexical, Datatype: datatype}
}

func (*Literal) aTerm() {}

// IsSimple returns true if the literal has no language tag and no explicit
// datatype.
func (lit *Literal) IsSimple() bool {
	return lit.Lang == "" && lit.Datatype == ""
}

// DatatypeIRI returns the literal's effective datatype: rdf:langString for
// language-tagged literals, xsd:string for simple literals, and Datatype
// otherwise.
func (lit *Literal) DatatypeIRI() string {
	switch {
	case lit.Lang != "":
		return RDFLangString
	case lit.Datatype == "":
		return XSDString
	}
	return lit.Datatype
}

// String returns a string like `"chat"@fr` or `"1"^^<http://www.w3.org/2001/XMLSchema#integer>`.
func (lit *Literal) String() string {
	var b strings.Builder
	lit.Key(&b)
	return b.String()
}

// Key implements cmp.Key.
func (lit *Literal) Key(b *strings.Builder) {
	b.WriteByte('"')
	writeEscaped(b, lit.Lexical)
	b.WriteByte('"')
	switch {
	case lit.Lang != "":
		b.WriteByte('@')
		b.WriteString(lit.Lang)
	case lit.Datatype != "":
		b.WriteString("^^<")
		b.WriteString(lit.Datatype)
		b.WriteByte('>')
	}
}

func writeEscaped(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
}

// A Variable names a placeholder inside a pattern. Variables are never bound
// to other Variables.
type Variable struct {
	Name string
}

// NewVariable returns a Variable with the given name, which excludes the
// leading '?'.
func NewVariable(name string) *Variable {
	return &Variable{Name: name}
}

func (*Variable) aTerm() {}

// String returns a string like "?foo".
func (v *Variable) String() string {
	return "?" + v.Name
}

// Key implements cmp.Key.
func (v *Variable) Key(b *strings.Builder) {
	b.WriteByte('?')
	b.WriteString(v.Name)
}

// IsConcrete returns true if t is an RDF node, rather than nil or a Variable.
func IsConcrete(t Term) bool {
	switch t.(type) {
	case *IRI, *BlankNode, *Literal:
		return true
	}
	return false
}
