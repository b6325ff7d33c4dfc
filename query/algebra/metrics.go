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
	metricsutil "github.com/ebay/sparqlcore/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type algebraMetrics struct {
	rewritePassSeconds prometheus.Summary
	rewriteChanges     *prometheus.CounterVec
}

var metrics algebraMetrics

func init() {
	mr := metricsutil.Registry{R: prometheus.DefaultRegisterer}
	metrics = algebraMetrics{
		rewritePassSeconds: mr.NewSummary(prometheus.SummaryOpts{
			Namespace:  "sparqlcore",
			Subsystem:  "algebra",
			Name:       "rewrite_pass_seconds",
			Help:       `The time it took to apply a single rewrite pass to an operator tree.`,
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}),
		rewriteChanges: mr.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sparqlcore",
			Subsystem: "algebra",
			Name:      "rewrite_changes_total",
			Help:      `The number of times each rewrite pass changed the tree it was applied to.`,
		}, []string{"pass"}),
	}
}
