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

package serrors

import (
	"fmt"
	"runtime"

	"go.uber.org/zap/zapcore"
)

const maxStackDepth = 32

// Frame is a program counter inside a stack frame.
type Frame uintptr

// MarshalText renders the frame as "function file:line".
func (f Frame) MarshalText() ([]byte, error) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return []byte("unknown"), nil
	}
	file, line := fn.FileLine(pc)
	return []byte(fmt.Sprintf("%s %s:%d", fn.Name(), file, line)), nil
}

// StackTrace is a stack of frames from innermost to outermost.
type StackTrace []Frame

type stack []uintptr

func (s *stack) StackTrace() StackTrace {
	frames := make(StackTrace, 0, len(*s))
	for _, pc := range *s {
		frames = append(frames, Frame(pc))
	}
	return frames
}

func (s *stack) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, f := range s.StackTrace() {
		text, err := f.MarshalText()
		if err != nil {
			return err
		}
		enc.AppendByteString(text)
	}
	return nil
}

// callers records the stack of the caller of the exported constructor.
func callers() *stack {
	var pcs [maxStackDepth]uintptr
	// Skip runtime.Callers, callers, newStructured and the constructor.
	n := runtime.Callers(4, pcs[:])
	st := stack(pcs[:n])
	return &st
}
