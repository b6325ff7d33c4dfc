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

// Package config defines the knobs that control expression evaluation and
// how they're loaded from disk.
package config

import (
	"fmt"

	"github.com/ebay/sparqlcore/rdf/value"
)

// Evaluation controls how expressions are evaluated and how literal values are
// compared. The zero value is usable and selects the default behavior: value
// extensions enabled, plain literals and xsd:string treated as equivalent,
// unknown functions logged once and failed.
type Evaluation struct {
	// If true, comparing literals from incompatible value spaces (or two
	// literals of unrecognized datatypes) raises an evaluation error instead
	// of returning false.
	StrictComparison bool `json:"strictComparison,omitempty" yaml:"strictComparison,omitempty"`
	// If set to false, simple literals and xsd:string literals with the same
	// lexical form are different terms. Nil means true.
	PlainStringEqualsXSDString *bool `json:"plainStringEqualsXSDString,omitempty" yaml:"plainStringEqualsXSDString,omitempty"`
	// What to do when an extension function IRI has no registered
	// implementation.
	UnknownFunctionPolicy UnknownFunctionPolicy `json:"unknownFunctionPolicy,omitempty" yaml:"unknownFunctionPolicy,omitempty"`
	// The number of recent results each digest function (MD5, SHA1, etc.)
	// remembers per execution context. Zero selects DefaultDigestCacheSize; a
	// negative value disables the cache.
	DigestCacheSize int `json:"digestCacheSize,omitempty" yaml:"digestCacheSize,omitempty"`
	// The base IRI that relative IRIs built by the IRI() function are resolved
	// against. May be empty.
	BaseIRI string `json:"baseIRI,omitempty" yaml:"baseIRI,omitempty"`
}

// DefaultDigestCacheSize is used when Evaluation.DigestCacheSize is zero.
const DefaultDigestCacheSize = 16

// UnknownFunctionPolicy says how an unresolved extension function is handled.
type UnknownFunctionPolicy string

const (
	// UnknownFunctionWarn logs a warning the first time an unresolved IRI is
	// evaluated, then fails evaluation of that expression. This is the default.
	UnknownFunctionWarn UnknownFunctionPolicy = "warn"
	// UnknownFunctionFail fails evaluation of the expression without logging.
	UnknownFunctionFail UnknownFunctionPolicy = "fail"
	// UnknownFunctionSilent is an alias for UnknownFunctionFail that exists
	// for configuration files written against older releases.
	UnknownFunctionSilent UnknownFunctionPolicy = "silent"
)

// Validate returns an error if the configuration contains an invalid value.
func (e *Evaluation) Validate() error {
	switch e.UnknownFunctionPolicy {
	case "", UnknownFunctionWarn, UnknownFunctionFail, UnknownFunctionSilent:
	default:
		return fmt.Errorf("invalid unknownFunctionPolicy %q (expected %q, %q, or %q)",
			e.UnknownFunctionPolicy, UnknownFunctionWarn, UnknownFunctionFail, UnknownFunctionSilent)
	}
	return nil
}

// Policy returns the effective UnknownFunctionPolicy.
func (e *Evaluation) Policy() UnknownFunctionPolicy {
	switch e.UnknownFunctionPolicy {
	case "":
		return UnknownFunctionWarn
	case UnknownFunctionSilent:
		return UnknownFunctionFail
	}
	return e.UnknownFunctionPolicy
}

// DigestCache returns the effective digest cache size. Zero means disabled.
func (e *Evaluation) DigestCache() int {
	switch {
	case e.DigestCacheSize == 0:
		return DefaultDigestCacheSize
	case e.DigestCacheSize < 0:
		return 0
	}
	return e.DigestCacheSize
}

// ValueOptions returns the comparison options that the value package uses.
func (e *Evaluation) ValueOptions() value.Options {
	return value.Options{
		Strict:            e.StrictComparison,
		SeparateXSDString: e.PlainStringEqualsXSDString != nil && !*e.PlainStringEqualsXSDString,
	}
}
