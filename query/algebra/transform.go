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
	"fmt"
)

// A Transformer rewrites an operator tree bottom-up. Transform calls one
// method per node, passing the node along with its inputs after they've been
// transformed. It calls the method even when the inputs are unchanged, so the
// Transformer can rewrite a node based on the node itself. Each method returns
// orig to keep the node, a copy made with CopyWith, or any other operator.
type Transformer interface {
	Transform0(orig Op0) Op
	// sub is nil for an Annotated node without a child.
	Transform1(orig Op1, sub Op) Op
	Transform2(orig Op2, left, right Op) Op
	TransformN(orig OpN, subs []Op) Op
}

// CopyTransformer is a Transformer that rebuilds a node only when one of its
// inputs changed. It's meant to be embedded in Transformers that only care
// about a few kinds of nodes.
type CopyTransformer struct{}

// Transform0 implements Transformer.
func (CopyTransformer) Transform0(orig Op0) Op { return orig }

// Transform1 implements Transformer.
func (CopyTransformer) Transform1(orig Op1, sub Op) Op {
	if sub == orig.SubOp() {
		return orig
	}
	return orig.CopyWith(sub)
}

// Transform2 implements Transformer.
func (CopyTransformer) Transform2(orig Op2, left, right Op) Op {
	if left == orig.LeftOp() && right == orig.RightOp() {
		return orig
	}
	return orig.CopyWith(left, right)
}

// TransformN implements Transformer.
func (CopyTransformer) TransformN(orig OpN, subs []Op) Op {
	if sameOps(subs, orig.SubOps()) {
		return orig
	}
	return orig.CopyWith(subs)
}

// sameOps returns true if the two lists hold the identical nodes.
func sameOps(a, b []Op) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Transform rewrites op bottom-up using t. See Transformer.
func Transform(op Op, t Transformer) Op {
	switch op := op.(type) {
	case Op0:
		return t.Transform0(op)
	case Op1:
		var sub Op
		if op.SubOp() != nil {
			sub = Transform(op.SubOp(), t)
		}
		return t.Transform1(op, sub)
	case Op2:
		return t.Transform2(op, Transform(op.LeftOp(), t), Transform(op.RightOp(), t))
	case OpN:
		subs := make([]Op, len(op.SubOps()))
		for i, sub := range op.SubOps() {
			subs[i] = Transform(sub, t)
		}
		return t.TransformN(op, subs)
	}
	panic(fmt.Sprintf("Unexpected operator type %T", op))
}

// Walk calls visit for op and then, if visit returns true, for each of op's
// inputs in order, recursively. It doesn't descend into the Effective plans
// of Extensions or into patterns embedded in expressions.
func Walk(op Op, visit func(Op) bool) {
	if !visit(op) {
		return
	}
	for _, in := range Inputs(op) {
		Walk(in, visit)
	}
}
