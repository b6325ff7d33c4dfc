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
	"strings"
)

// Sequence joins its inputs in order, evaluating each one with the rows
// produced so far as its input.
type Sequence struct {
	Elems []Op
}

// Disjunction produces the rows of every input, like a Union of all of them.
type Disjunction struct {
	Elems []Op
}

func (*Sequence) anOp()    {}
func (*Disjunction) anOp() {}

// SubOps implements OpN.
func (op *Sequence) SubOps() []Op { return op.Elems }

// SubOps implements OpN.
func (op *Disjunction) SubOps() []Op { return op.Elems }

// CopyWith implements OpN.
func (op *Sequence) CopyWith(subs []Op) OpN {
	return &Sequence{Elems: subs}
}

// CopyWith implements OpN.
func (op *Disjunction) CopyWith(subs []Op) OpN {
	return &Disjunction{Elems: subs}
}

func (*Sequence) String() string {
	return "Sequence"
}

// Key implements cmp.Key.
func (op *Sequence) Key(b *strings.Builder) { writeKey(b, op) }

func (*Disjunction) String() string {
	return "Disjunction"
}

// Key implements cmp.Key.
func (op *Disjunction) Key(b *strings.Builder) { writeKey(b, op) }

// NewSequence returns the sequence of left then right. If either is nil, it
// returns the other one. Sequences among the inputs are flattened into the
// result rather than nested.
func NewSequence(left, right Op) Op {
	switch {
	case left == nil:
		return right
	case right == nil:
		return left
	}
	return &Sequence{Elems: appendFlat(nil, []Op{left, right}, isSequence)}
}

// AppendSequence returns a new Sequence holding the elements of seq followed
// by ops, skipping nil ones. Sequences among ops are flattened. seq may be nil
// and is not modified.
func AppendSequence(seq *Sequence, ops ...Op) *Sequence {
	var elems []Op
	if seq != nil {
		elems = append(elems, seq.Elems...)
	}
	return &Sequence{Elems: appendFlat(elems, ops, isSequence)}
}

// NewDisjunction returns the disjunction of left and right. If either is nil,
// it returns the other one. Disjunctions among the inputs are flattened into
// the result rather than nested.
func NewDisjunction(left, right Op) Op {
	switch {
	case left == nil:
		return right
	case right == nil:
		return left
	}
	return &Disjunction{Elems: appendFlat(nil, []Op{left, right}, isDisjunction)}
}

// AppendDisjunction returns a new Disjunction holding the elements of dis
// followed by ops, skipping nil ones. Disjunctions among ops are flattened.
// dis may be nil and is not modified.
func AppendDisjunction(dis *Disjunction, ops ...Op) *Disjunction {
	var elems []Op
	if dis != nil {
		elems = append(elems, dis.Elems...)
	}
	return &Disjunction{Elems: appendFlat(elems, ops, isDisjunction)}
}

func isSequence(op Op) ([]Op, bool) {
	seq, ok := op.(*Sequence)
	if !ok {
		return nil, false
	}
	return seq.Elems, true
}

func isDisjunction(op Op) ([]Op, bool) {
	dis, ok := op.(*Disjunction)
	if !ok {
		return nil, false
	}
	return dis.Elems, true
}

// appendFlat appends ops to elems, replacing any op for which flatten returns
// true by its elements.
func appendFlat(elems []Op, ops []Op, flatten func(Op) ([]Op, bool)) []Op {
	for _, op := range ops {
		if op == nil {
			continue
		}
		if nested, ok := flatten(op); ok {
			elems = append(elems, nested...)
			continue
		}
		elems = append(elems, op)
	}
	return elems
}
