// Package zaplog adapts go.uber.org/zap to the domain Logger interface.
package zaplog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ochairo/wokwikit/internal/domain/interfaces"
)

// Logger implements interfaces.Logger on top of a zap.Logger.
type Logger struct {
	zl *zap.Logger
}

// New builds a console logger writing to stderr. verbose raises the
// level to debug.
func New(verbose bool) (*Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.DisableStacktrace = true
	if !verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	zl, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{zl: zl}, nil
}

// Sync flushes buffered log entries. Safe to defer from main.
func (l *Logger) Sync() {
	_ = l.zl.Sync()
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.zl.Debug(msg, convert(fields)...)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.zl.Info(msg, convert(fields)...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.zl.Warn(msg, convert(fields)...)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.zl.Error(msg, convert(fields)...)
}

func convert(fields []interfaces.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
