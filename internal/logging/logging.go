// Package logging builds the diagnostic logger passed to gitid components.
// Diagnostics go to stderr; command output stays on stdout.
package logging

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to w. Without verbose only errors are
// written; with verbose V(1) messages are enabled too.
func New(w io.Writer, verbose bool) logr.Logger {
	level := zapcore.ErrorLevel
	if verbose {
		// logr V(n) maps to zap level -n.
		level = zapcore.Level(-1)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return zapr.NewLogger(zap.New(core)).WithName("gitid")
}
