// Copyright 2019 Anapaya Systems
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

package serrors_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/faucetsdn/daq/pkg/private/serrors"
)

type testErrType struct {
	msg string
}

func (e *testErrType) Error() string {
	return e.msg
}

func TestWrap(t *testing.T) {
	t.Run("Is", func(t *testing.T) {
		err := serrors.New("template missing")
		wrapped := serrors.Wrap("generating port acl", err, "port", 3)
		assert.ErrorIs(t, wrapped, err)
		assert.ErrorIs(t, wrapped, wrapped)
	})
	t.Run("As", func(t *testing.T) {
		err := &testErrType{msg: "test err"}
		wrapped := serrors.Wrap("generating port acl", err, "port", 3)
		var errAs *testErrType
		require.True(t, errors.As(wrapped, &errAs))
		assert.Equal(t, err, errAs)
	})
	t.Run("String", func(t *testing.T) {
		wrapped := serrors.WrapNoStack("generating port acl", errors.New("boom"),
			"port", 3, "dp", "sec")
		assert.Equal(t, "generating port acl {dp=sec; port=3}: boom", wrapped.Error())
	})
}

func TestJoin(t *testing.T) {
	sentinel := errors.New("misconfigured")
	cause := serrors.New("acl_in already defined", "interface", 1)
	joined := serrors.Join(sentinel, cause, "file", "faucet.yaml")
	assert.ErrorIs(t, joined, sentinel)
	assert.ErrorIs(t, joined, cause)
	assert.Nil(t, serrors.Join(nil, nil))
}

func TestNew(t *testing.T) {
	err1 := serrors.New("err msg", "someCtx", "value")
	err2 := serrors.New("err msg", "someCtx", "value")
	assert.ErrorIs(t, err1, err1)
	assert.False(t, errors.Is(err1, err2))
	assert.ErrorIs(t, serrors.Wrap("x", err1), err1)
}

func TestStackTrace(t *testing.T) {
	err := serrors.New("no template")
	var st interface{ StackTrace() serrors.StackTrace }
	require.True(t, errors.As(err, &st))
	assert.NotEmpty(t, st.StackTrace())

	wrapped := serrors.Wrap("generating port acl", err)
	require.True(t, errors.As(wrapped, &st))
	assert.Empty(t, st.StackTrace(), "trace kept only on the innermost error")

	noStack := serrors.WrapNoStack("reading template", errors.New("boom"))
	require.True(t, errors.As(noStack, &st))
	assert.Empty(t, st.StackTrace())
}

func TestJoinNilBase(t *testing.T) {
	cause := errors.New("boom")
	joined := serrors.JoinNoStack(nil, cause, "port", 3)
	assert.ErrorIs(t, joined, cause)
	assert.Equal(t, "boom {port=3}", joined.Error())
}

func TestAtMostOneStacktrace(t *testing.T) {
	err := errors.New("core")
	for i := range [20]int{} {
		err = serrors.Wrap("wrap", err, "level", i)
	}

	var b bytes.Buffer
	logger := zap.New(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zapcore.EncoderConfig{
				MessageKey:  "msg",
				LevelKey:    "level",
				EncodeLevel: zapcore.LowercaseLevelEncoder,
			}),
			zapcore.AddSync(&b),
			zapcore.DebugLevel),
	)
	logger.Sugar().Infow("Failed to do thing", "err", err)

	require.Equal(t, 1, bytes.Count(b.Bytes(), []byte("stacktrace")))
}

func ExampleJoin() {
	var ErrMisconfigured = errors.New("misconfigured")
	cause := fmt.Errorf("missing template: %w", os.ErrNotExist)
	wrapped := serrors.JoinNoStack(ErrMisconfigured, cause, "template", "baseline")

	fmt.Println(errors.Is(wrapped, os.ErrNotExist))
	fmt.Println(errors.Is(wrapped, ErrMisconfigured))
	fmt.Println(wrapped)
	// Output:
	// true
	// true
	// misconfigured {template=baseline}: missing template: file does not exist
}
