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
	"context"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
)

// A Pass is a named rewrite of a whole operator tree. Apply must not modify
// its input; it returns the input itself if it has nothing to change.
type Pass struct {
	Name  string
	Apply func(Op) Op
}

// TransformPass returns a Pass that applies Transform with t.
func TransformPass(name string, t Transformer) Pass {
	return Pass{
		Name: name,
		Apply: func(op Op) Op {
			return Transform(op, t)
		},
	}
}

// Rewrite applies the passes to op in order and returns the final tree. Each
// pass runs in its own tracing span.
func Rewrite(ctx context.Context, op Op, passes ...Pass) Op {
	for _, pass := range passes {
		op = runPass(ctx, op, pass)
	}
	return op
}

func runPass(ctx context.Context, op Op, pass Pass) Op {
	span, _ := opentracing.StartSpanFromContext(ctx, "Rewrite."+pass.Name)
	defer span.Finish()
	start := time.Now()
	res := pass.Apply(op)
	metrics.rewritePassSeconds.Observe(time.Since(start).Seconds())
	changed := res != op
	span.SetTag("changed", changed)
	if !changed {
		return op
	}
	metrics.rewriteChanges.WithLabelValues(pass.Name).Inc()
	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithField("pass", pass.Name).Debugf("Rewrote operator tree:\n%v", String(res))
	}
	return res
}
