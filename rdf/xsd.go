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

// Namespaces.
const (
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

// Datatype IRIs.
const (
	XSDString   = XSDNamespace + "string"
	XSDBoolean  = XSDNamespace + "boolean"
	XSDDecimal  = XSDNamespace + "decimal"
	XSDInteger  = XSDNamespace + "integer"
	XSDFloat    = XSDNamespace + "float"
	XSDDouble   = XSDNamespace + "double"
	XSDDateTime = XSDNamespace + "dateTime"
	// xsd:dateTimeStamp is a dateTime with a required timezone.
	XSDDateTimeStamp = XSDNamespace + "dateTimeStamp"
	XSDDate          = XSDNamespace + "date"
	XSDTime          = XSDNamespace + "time"
	XSDGYear         = XSDNamespace + "gYear"
	XSDGYearMonth    = XSDNamespace + "gYearMonth"
	XSDGMonth        = XSDNamespace + "gMonth"
	XSDGMonthDay     = XSDNamespace + "gMonthDay"
	XSDGDay          = XSDNamespace + "gDay"

	XSDDuration          = XSDNamespace + "duration"
	XSDDayTimeDuration   = XSDNamespace + "dayTimeDuration"
	XSDYearMonthDuration = XSDNamespace + "yearMonthDuration"

	// Types derived from xsd:integer.
	XSDLong               = XSDNamespace + "long"
	XSDInt                = XSDNamespace + "int"
	XSDShort              = XSDNamespace + "short"
	XSDByte               = XSDNamespace + "byte"
	XSDNonNegativeInteger = XSDNamespace + "nonNegativeInteger"
	XSDPositiveInteger    = XSDNamespace + "positiveInteger"
	XSDNonPositiveInteger = XSDNamespace + "nonPositiveInteger"
	XSDNegativeInteger    = XSDNamespace + "negativeInteger"
	XSDUnsignedLong       = XSDNamespace + "unsignedLong"
	XSDUnsignedInt        = XSDNamespace + "unsignedInt"
	XSDUnsignedShort      = XSDNamespace + "unsignedShort"
	XSDUnsignedByte       = XSDNamespace + "unsignedByte"

	RDFLangString = RDFNamespace + "langString"
)
