// Copyright 2016 ETH Zurich
// Copyright 2019 ETH Zurich, Anapaya Systems
// Copyright 2026 The DAQ Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serrors provides errors that carry structured log context. The
// key/value pairs attached to an error are rendered in its message and, when
// the error is logged through zap, as separate fields.
//
// Every error returned by this package is a distinct value: errors.Is(err,
// err) holds, and an error created by Wrap or Join matches its cause (and
// base error) through errors.Is and errors.As.
package serrors

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type field struct {
	key   string
	value any
}

// structured is the error type returned by all constructors. base is only
// set for errors created with Join. Its message then replaces msg.
type structured struct {
	msg    string
	base   error
	cause  error
	fields []field
	stack  *stack
}

func newStructured(msg string, base, cause error, withStack bool,
	errCtx []any) *structured {

	fields := make([]field, 0, len(errCtx)/2)
	for i := 0; i+1 < len(errCtx); i += 2 {
		fields = append(fields, field{key: fmt.Sprint(errCtx[i]), value: errCtx[i+1]})
	}
	sort.SliceStable(fields, func(a, b int) bool {
		return fields[a].key < fields[b].key
	})
	e := &structured{msg: msg, base: base, cause: cause, fields: fields}
	if withStack && !hasStack(cause) && !hasStack(base) {
		e.stack = callers()
	}
	return e
}

// hasStack reports whether any error in the tree of err carries a stack
// trace from this package.
func hasStack(err error) bool {
	switch e := err.(type) {
	case nil:
		return false
	case *structured:
		return e.stack != nil || hasStack(e.base) || hasStack(e.cause)
	case interface{ Unwrap() error }:
		return hasStack(e.Unwrap())
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if hasStack(inner) {
				return true
			}
		}
	}
	return false
}

func (e *structured) message() string {
	if e.base != nil {
		return e.base.Error()
	}
	return e.msg
}

func (e *structured) Error() string {
	var b strings.Builder
	b.WriteString(e.message())
	if len(e.fields) > 0 {
		b.WriteString(" {")
		for i, f := range e.fields {
			if i > 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(&b, "%s=%v", f.key, f.value)
		}
		b.WriteString("}")
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *structured) Unwrap() []error {
	switch {
	case e.base != nil && e.cause != nil:
		return []error{e.base, e.cause}
	case e.base != nil:
		return []error{e.base}
	case e.cause != nil:
		return []error{e.cause}
	}
	return nil
}

// MarshalLogObject implements zapcore.ObjectMarshaler. Causes created by this
// package are rendered as nested objects.
func (e *structured) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.message())
	if e.cause != nil {
		if m, ok := e.cause.(zapcore.ObjectMarshaler); ok {
			if err := enc.AddObject("cause", m); err != nil {
				return err
			}
		} else {
			enc.AddString("cause", e.cause.Error())
		}
	}
	if e.stack != nil {
		if err := enc.AddArray("stacktrace", e.stack); err != nil {
			return err
		}
	}
	for _, f := range e.fields {
		zap.Any(f.key, f.value).AddTo(enc)
	}
	return nil
}

// StackTrace returns the stack trace recorded when the error was created, or
// nil if a cause already carried one.
func (e *structured) StackTrace() StackTrace {
	if e.stack == nil {
		return nil
	}
	return e.stack.StackTrace()
}

// New creates an error with the given message and context, plus a stack
// trace. Package level sentinel errors are created with New as well; match
// them with errors.Is.
func New(msg string, errCtx ...any) error {
	return newStructured(msg, nil, nil, true, errCtx)
}

// Wrap returns an error with the given message that wraps cause and carries
// the given context. A stack trace is attached unless cause already carries
// one.
func Wrap(msg string, cause error, errCtx ...any) error {
	return newStructured(msg, nil, cause, true, errCtx)
}

// WrapNoStack is like Wrap but never attaches a stack trace.
func WrapNoStack(msg string, cause error, errCtx ...any) error {
	return newStructured(msg, nil, cause, false, errCtx)
}

// Join returns an error that matches both err and cause, carrying the given
// context. The message of err is used as the message of the result. Join
// returns nil if both err and cause are nil.
func Join(err, cause error, errCtx ...any) error {
	return join(err, cause, true, errCtx)
}

// JoinNoStack is like Join but never attaches a stack trace.
func JoinNoStack(err, cause error, errCtx ...any) error {
	return join(err, cause, false, errCtx)
}

func join(err, cause error, withStack bool, errCtx []any) error {
	if err == nil && cause == nil {
		return nil
	}
	if err == nil {
		err, cause = cause, nil
	}
	return newStructured("", err, cause, withStack, errCtx)
}
