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

package rdf

import (
	"fmt"
	"strings"

	"github.com/ebay/sparqlcore/util/cmp"
)

// A Path is a property path expression, as found between the subject and
// object of a path pattern.
type Path interface {
	String() string
	cmp.Key
	aPath()
}

// ImplementPath is a list of types that implement Path. This serves as
// documentation and as a compile-time check.
var ImplementPath = []Path{
	new(PathLink),
	new(PathInverse),
	new(PathSeq),
	new(PathAlt),
	new(PathZeroOrMore),
	new(PathOneOrMore),
	new(PathZeroOrOne),
}

// PathLink is a single predicate.
type PathLink struct {
	Pred *IRI
}

// PathInverse traverses Sub from object to subject.
type PathInverse struct {
	Sub Path
}

// PathSeq traverses Left and then Right.
type PathSeq struct {
	Left, Right Path
}

// PathAlt traverses either Left or Right.
type PathAlt struct {
	Left, Right Path
}

// PathZeroOrMore traverses Sub any number of times.
type PathZeroOrMore struct {
	Sub Path
}

// PathOneOrMore traverses Sub at least once.
type PathOneOrMore struct {
	Sub Path
}

// PathZeroOrOne optionally traverses Sub.
type PathZeroOrOne struct {
	Sub Path
}

func (*PathLink) aPath()       {}
func (*PathInverse) aPath()    {}
func (*PathSeq) aPath()        {}
func (*PathAlt) aPath()        {}
func (*PathZeroOrMore) aPath() {}
func (*PathOneOrMore) aPath()  {}
func (*PathZeroOrOne) aPath()  {}

func (p *PathLink) String() string       { return p.Pred.String() }
func (p *PathInverse) String() string    { return "^" + p.Sub.String() }
func (p *PathSeq) String() string        { return fmt.Sprintf("(%v/%v)", p.Left, p.Right) }
func (p *PathAlt) String() string        { return fmt.Sprintf("(%v|%v)", p.Left, p.Right) }
func (p *PathZeroOrMore) String() string { return p.Sub.String() + "*" }
func (p *PathOneOrMore) String() string  { return p.Sub.String() + "+" }
func (p *PathZeroOrOne) String() string  { return p.Sub.String() + "?" }

// Key implements cmp.Key.
func (p *PathLink) Key(b *strings.Builder) { p.Pred.Key(b) }

// Key implements cmp.Key.
func (p *PathInverse) Key(b *strings.Builder) {
	b.WriteByte('^')
	p.Sub.Key(b)
}

// Key implements cmp.Key.
func (p *PathSeq) Key(b *strings.Builder) {
	b.WriteByte('(')
	p.Left.Key(b)
	b.WriteByte('/')
	p.Right.Key(b)
	b.WriteByte(')')
}

// Key implements cmp.Key.
func (p *PathAlt) Key(b *strings.Builder) {
	b.WriteByte('(')
	p.Left.Key(b)
	b.WriteByte('|')
	p.Right.Key(b)
	b.WriteByte(')')
}

// Key implements cmp.Key.
func (p *PathZeroOrMore) Key(b *strings.Builder) {
	p.Sub.Key(b)
	b.WriteByte('*')
}

// Key implements cmp.Key.
func (p *PathOneOrMore) Key(b *strings.Builder) {
	p.Sub.Key(b)
	b.WriteByte('+')
}

// Key implements cmp.Key.
func (p *PathZeroOrOne) Key(b *strings.Builder) {
	p.Sub.Key(b)
	b.WriteByte('?')
}

// PathsEqual returns true if a and b are the same path expression. Paths
// contain only IRIs, so no blank node mapping is needed.
func PathsEqual(a, b Path) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return cmp.KeysEqual(a, b)
}
