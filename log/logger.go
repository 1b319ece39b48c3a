// Package log provides structured debug logging for terminal-chat.
//
// The logger writes one JSON record per line to a file so stdout and
// stderr stay clean for the rendered stream. It is a no-op unless a debug
// log path is configured.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured logging with request context.
// Every entry carries the resolved model and verbosity fields.
type Logger struct {
	zap *zap.Logger
}

// NewNop returns a logger that discards everything. The default when no
// debug log is configured.
func NewNop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// NewFileLogger creates a logger appending JSONL records to path.
// The file is created if missing and never truncated, so records from
// consecutive invocations accumulate.
func NewFileLogger(path, model, verbosity string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(f),
		zapcore.DebugLevel,
	)

	contextFields := []zap.Field{
		zap.String("model", model),
		zap.String("verbosity", verbosity),
	}

	return &Logger{zap: zap.New(core).With(contextFields...)}, nil
}

// Debug logs a debug message.
func (l *Logger) Debug(message string, fields map[string]any) {
	l.zap.Debug(message, zap.Any("fields", fields))
}

// Info logs an info message.
func (l *Logger) Info(message string, fields map[string]any) {
	l.zap.Info(message, zap.Any("fields", fields))
}

// Warn logs a warning message.
func (l *Logger) Warn(message string, fields map[string]any) {
	l.zap.Warn(message, zap.Any("fields", fields))
}

// Error logs an error message.
func (l *Logger) Error(message string, fields map[string]any) {
	l.zap.Error(message, zap.Any("fields", fields))
}

// Sync flushes buffered records. Errors are unactionable at exit; pair
// with iox.DiscardErr in defers.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}
