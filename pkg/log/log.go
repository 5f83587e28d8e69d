// Copyright 2020 Anapaya Systems
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

// Package log is a thin key/value logging facade on top of zap.
//
// Messages are logged with alternating key/value context:
//
//	log.Info("Writing port acl", "file", filename, "port", port)
//
// Before Setup is called, all log entries are discarded.
package log

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/faucetsdn/daq/pkg/private/serrors"
)

// Level is the log level.
type Level zapcore.Level

const (
	DebugLevel = Level(zapcore.DebugLevel)
	InfoLevel  = Level(zapcore.InfoLevel)
	ErrorLevel = Level(zapcore.ErrorLevel)
)

// Logger describes the logger interface.
type Logger interface {
	New(ctx ...any) Logger
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Enabled(lvl Level) bool
}

var (
	zlog       = zap.NewNop()
	atomicLvl  = zap.NewAtomicLevelAt(zapcore.Level(InfoLevel))
	callerSkip = 1
)

// Setup configures the global logger according to cfg. It must be called at
// most once, before any goroutine starts logging.
func Setup(cfg Config, opts ...Option) error {
	cfg.InitDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	o := applyOptions(opts)
	lvl, err := parseLevel(cfg.Console.Level)
	if err != nil {
		return serrors.Wrap("parsing console level", err, "level", cfg.Console.Level)
	}
	stackLvl, err := parseLevel(cfg.Console.StacktraceLevel)
	if err != nil {
		return serrors.Wrap("parsing stacktrace level", err,
			"level", cfg.Console.StacktraceLevel)
	}
	atomicLvl.SetLevel(lvl)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder
	var enc zapcore.Encoder
	if cfg.Console.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), atomicLvl)
	zapOpts := append([]zap.Option{
		zap.AddCaller(),
		zap.AddCallerSkip(callerSkip),
		zap.AddStacktrace(stackLvl),
	}, o.zapOptions()...)
	zlog = zap.New(core, zapOpts...)
	zap.ReplaceGlobals(zlog)
	return nil
}

func parseLevel(s string) (zapcore.Level, error) {
	var lvl zapcore.Level
	switch strings.ToLower(s) {
	case "":
		return zapcore.InfoLevel, nil
	case "none":
		// Above fatal, never enabled.
		return zapcore.FatalLevel + 1, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, err
	}
	return lvl, nil
}

// SetLevel changes the console log level at runtime.
func SetLevel(s string) error {
	lvl, err := parseLevel(s)
	if err != nil {
		return err
	}
	atomicLvl.SetLevel(lvl)
	return nil
}

// HandlePanic catches panics and logs them. It must be deferred at the top of
// every goroutine.
func HandlePanic() {
	if msg := recover(); msg != nil {
		zlog.Error("Panic", zap.Any("msg", msg), zap.ByteString("stack", debug.Stack()))
		zlog.Error("=====================> Service panicked!")
		Flush()
		panic(fmt.Sprintf("%v", msg))
	}
}

// Flush writes the logs to the underlying buffer.
func Flush() {
	_ = zlog.Sync()
}

// Debug logs at debug level.
func Debug(msg string, ctx ...any) {
	if ce := zlog.Check(zapcore.DebugLevel, msg); ce != nil {
		ce.Write(convertCtx(ctx)...)
	}
}

// Info logs at info level.
func Info(msg string, ctx ...any) {
	if ce := zlog.Check(zapcore.InfoLevel, msg); ce != nil {
		ce.Write(convertCtx(ctx)...)
	}
}

// Error logs at error level.
func Error(msg string, ctx ...any) {
	if ce := zlog.Check(zapcore.ErrorLevel, msg); ce != nil {
		ce.Write(convertCtx(ctx)...)
	}
}

// Root returns the root logger. It's a logger without any context.
func Root() Logger {
	return &logger{logger: zlog}
}

// New creates a logger with the given context.
func New(ctx ...any) Logger {
	return &logger{logger: zlog.With(convertCtx(ctx)...)}
}

// FromZap adapts l to the Logger interface.
func FromZap(l *zap.Logger) Logger {
	return &logger{logger: l}
}

type logger struct {
	logger *zap.Logger
}

func (l *logger) New(ctx ...any) Logger {
	return &logger{logger: l.logger.With(convertCtx(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.logger.Debug(msg, convertCtx(ctx)...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.logger.Info(msg, convertCtx(ctx)...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.logger.Error(msg, convertCtx(ctx)...)
}

func (l *logger) Enabled(lvl Level) bool {
	return l.logger.Core().Enabled(zapcore.Level(lvl))
}

func convertCtx(ctx []any) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		fields = append(fields, zap.Any(fmt.Sprint(ctx[i]), ctx[i+1]))
	}
	return fields
}
