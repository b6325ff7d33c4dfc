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

package value

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// EvalError is a recoverable error raised while evaluating an expression, for
// example an unbound variable or an operation applied to the wrong type. A
// filter treats it as false.
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string {
	return e.Msg
}

// Errorf returns a new *EvalError with the formatted message.
func Errorf(format string, args ...interface{}) error {
	return &EvalError{Msg: fmt.Sprintf(format, args...)}
}

// NotComparableError is the evaluation error raised when two values have no
// defined order or equality relation: an indeterminate date/time comparison,
// values of incompatible types, or NaN.
type NotComparableError struct {
	A, B   *Value
	Reason string
}

func (e *NotComparableError) Error() string {
	return fmt.Sprintf("cannot compare %v and %v: %v", e.A, e.B, e.Reason)
}

func notComparable(a, b *Value, reason string) error {
	return &NotComparableError{A: a, B: b, Reason: reason}
}

// IsEvalError returns true if err is, or wraps, an evaluation error of any
// kind. Expression evaluation uses this to decide whether an error may be
// swallowed.
func IsEvalError(err error) bool {
	var ee *EvalError
	var nc *NotComparableError
	var ev interface{ EvalError() bool }
	return errors.As(err, &ee) || errors.As(err, &nc) || (errors.As(err, &ev) && ev.EvalError())
}

// IsNotComparable returns true if err is, or wraps, a *NotComparableError.
func IsNotComparable(err error) bool {
	var nc *NotComparableError
	return errors.As(err, &nc)
}

// InternalError reports that the code reached a state that should be
// impossible. It's raised with panic and is never converted to false.
type InternalError struct {
	cause error
}

// Internalf returns an InternalError carrying the formatted message and the
// stack trace of the caller. Callers are expected to panic with it.
func Internalf(format string, args ...interface{}) InternalError {
	return InternalError{cause: pkgerrors.Errorf(format, args...)}
}

func (e InternalError) Error() string {
	return "internal error: " + e.cause.Error()
}

// Cause returns the underlying error, which carries a stack trace that can be
// printed with "%+v".
func (e InternalError) Cause() error {
	return e.cause
}

// Format implements fmt.Formatter so that "%+v" includes the stack trace.
func (e InternalError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "internal error: %+v", e.cause)
		return
	}
	fmt.Fprint(s, e.Error())
}
