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
	"github.com/ebay/sparqlcore/rdf"
	"github.com/ebay/sparqlcore/rdf/value"
)

func iri(s string) *rdf.IRI {
	return rdf.NewIRI("http://example.com/" + s)
}

func v(name string) *rdf.Variable {
	return rdf.NewVariable(name)
}

func bnode(label string) *rdf.BlankNode {
	return rdf.NewBlankNode(label)
}

func lit(s string) *rdf.Literal {
	return rdf.NewLiteral(s)
}

func triple(s, p, o rdf.Term) rdf.Triple {
	return rdf.NewTriple(s, p, o)
}

func bgp(triples ...rdf.Triple) *BGP {
	return &BGP{Triples: triples}
}

func integer(i int64) expr.Expr {
	return expr.NewConstant(value.NewInteger(i))
}

// gt returns the expression ?name > i.
func gt(name string, i int64) expr.Expr {
	return expr.MustCall(">", expr.NewVar(name), integer(i))
}
