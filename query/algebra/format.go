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

// String returns a multi-line rendering of the tree rooted at op, one node
// per line, with each node's inputs indented below it.
func String(op Op) string {
	var b strings.Builder
	format(&b, op, 0)
	return b.String()
}

func format(b *strings.Builder, op Op, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("    ")
	}
	if op == nil {
		b.WriteString("<nil>\n")
		return
	}
	b.WriteString(op.String())
	b.WriteByte('\n')
	for _, in := range Inputs(op) {
		format(b, in, depth+1)
	}
	if ext, ok := op.(*Extension); ok && ext.Effective != nil {
		format(b, ext.Effective, depth+1)
	}
}
