// Package logx provides structured logging with request/task context.
//
// Two variants are available:
//   - Logger: structured zap.Logger for the hot paths (worker pool, round
//     executor, admission handlers)
//   - SugaredLogger: printf-style logging for CLI/debug surfaces
package logx

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with map-based fields, matching the call shape
// used throughout this codebase (message string, fields map[string]any).
type Logger struct {
	zap *zap.Logger
}

// SugaredLogger provides printf-style logging for CLI/debug surfaces.
type SugaredLogger struct {
	sugar *zap.SugaredLogger
}

// New creates a root logger writing JSON lines to os.Stderr.
func New() *Logger {
	return newWithWriter(os.Stderr)
}

// WithOutput returns a new root logger writing to w; context fields added
// to l via With are not carried over. Used by tests to capture log output.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	return newWithWriter(w)
}

func newWithWriter(w io.Writer) *Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return &Logger{zap: zap.New(core)}
}

// With returns a child logger carrying the given context fields for every
// subsequent call, e.g. logger.With("matchup_num", 3, "submission_id", 7).
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{zap: l.zap.Sugar().With(kv...).Desugar()}
}

func (l *Logger) Debug(message string, fields map[string]any) {
	l.zap.Debug(message, zap.Any("fields", fields))
}

func (l *Logger) Info(message string, fields map[string]any) {
	l.zap.Info(message, zap.Any("fields", fields))
}

func (l *Logger) Warn(message string, fields map[string]any) {
	l.zap.Warn(message, zap.Any("fields", fields))
}

func (l *Logger) Error(message string, fields map[string]any) {
	l.zap.Error(message, zap.Any("fields", fields))
}

// Sugar returns a SugaredLogger for printf-style logging.
func (l *Logger) Sugar() *SugaredLogger {
	return &SugaredLogger{sugar: l.zap.Sugar()}
}

func (s *SugaredLogger) Debugf(template string, args ...any) { s.sugar.Debugf(template, args...) }
func (s *SugaredLogger) Infof(template string, args ...any)  { s.sugar.Infof(template, args...) }
func (s *SugaredLogger) Warnf(template string, args ...any)  { s.sugar.Warnf(template, args...) }
func (s *SugaredLogger) Errorf(template string, args ...any) { s.sugar.Errorf(template, args...) }

func (s *SugaredLogger) With(args ...any) *SugaredLogger {
	return &SugaredLogger{sugar: s.sugar.With(args...)}
}
