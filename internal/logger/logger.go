// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger is the sqledu client's structured log sink.
//
// Command output and notifications own the terminal, so the client writes
// JSON log lines to a file beside the binary. The dispatcher derives one
// child logger per backend call (tagged with call_id, method and path) and
// carries it in the context; FromContext recovers it in the refresh and
// logout paths.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFileName = "logs"

// Logger embeds zerolog.Logger; use it by pointer.
type Logger struct {
	zerolog.Logger
}

// NewLogger writes JSON lines to w. Each line is tagged with role, a
// timestamp and the calling function's name under "func".
func NewLogger(role string, w io.Writer) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{
		Logger: zerolog.New(w).With().
			Str("role", role).
			Timestamp().
			Caller().
			Logger(),
	}
}

// NewClientLogger appends to the "logs" file next to the sqledu executable
// and falls back to stderr when the file cannot be opened.
func NewClientLogger(role string) *Logger {
	return NewLogger(role, openLogFile())
}

func openLogFile() io.Writer {
	exe, err := os.Executable()
	if err != nil {
		return os.Stderr
	}
	f, err := os.OpenFile(filepath.Join(filepath.Dir(exe), logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stderr
	}
	return f
}

// Nop discards everything. Tests and dispatchers built without WithLogger
// use it.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// GetChildLogger copies l so fields added to the copy stay off l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{Logger: l.With().Logger()}
}

// WithContext stores l in ctx for FromContext.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext returns the logger stored by WithContext, or zerolog's
// disabled default when ctx carries none. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{Logger: *log.Ctx(ctx)}
}
