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
	"github.com/ebay/sparqlcore/rdf/value"
	metricsutil "github.com/ebay/sparqlcore/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type exprMetrics struct {
	evalErrorsTotal       *prometheus.CounterVec
	unknownFunctionsTotal prometheus.Counter
}

var metrics exprMetrics

func init() {
	mr := metricsutil.Registry{R: prometheus.DefaultRegisterer}
	metrics = exprMetrics{
		evalErrorsTotal: mr.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sparqlcore",
			Subsystem: "expr",
			Name:      "filter_errors_total",
			Help: `The number of filter evaluations that failed and were treated as false.

The kind label is "eval" for ordinary evaluation errors (like unbound
variables or type errors), "not_comparable" for comparisons that are
undefined, "unknown_function" for unregistered extension functions, and
"other" for anything else, which is also logged.
`,
		}, []string{"kind"}),
		unknownFunctionsTotal: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "sparqlcore",
			Subsystem: "expr",
			Name:      "unknown_function_calls_total",
			Help:      `The number of calls to extension functions that had no registered implementation.`,
		}),
	}
}

// errorKind returns the evalErrorsTotal label for err.
func errorKind(err error) string {
	switch {
	case isUnknownFunction(err):
		return "unknown_function"
	case value.IsNotComparable(err):
		return "not_comparable"
	case value.IsEvalError(err):
		return "eval"
	}
	return "other"
}
