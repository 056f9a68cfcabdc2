// Package logger implements ports.Logger on top of zap.
package logger

import (
	"errors"
	"io"
	"os"
	"sort"
	"sync"

	"go.trai.ch/zerr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Logger implements ports.Logger using a zap core.
type Logger struct {
	mu     sync.RWMutex
	logger *zap.Logger
	level  zap.AtomicLevel
	format string
}

// New creates a Logger writing to stderr. Unknown levels fall back to info.
func New(level, format string) *Logger {
	l := &Logger{
		level:  zap.NewAtomicLevelAt(parseLevel(level)),
		format: format,
	}
	l.logger = l.build(zapcore.Lock(os.Stderr))
	return l
}

// SetOutput redirects the logger to w.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = l.build(zapcore.AddSync(w))
}

func (l *Logger) build(ws zapcore.WriteSyncer) *zap.Logger {
	var enc zapcore.Encoder
	if l.format == FormatJSON {
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	} else {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeCaller = nil
		ec.TimeKey = zapcore.OmitKey
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	}
	return zap.New(zapcore.NewCore(enc, ws, l.level))
}

func parseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Sugar().Warnw(msg, keysAndValues...)
}

// Error logs err with the metadata of every zerr error in its chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error(err.Error(), ErrorFields(err)...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logger.Sync()
}

// ErrorFields flattens zerr metadata found along the error chain into zap fields.
// Outer errors win when a key repeats.
func ErrorFields(err error) []zap.Field {
	seen := make(map[string]struct{})
	var fields []zap.Field

	for err != nil {
		var z *zerr.Error
		if errors.As(err, &z) {
			meta := z.Metadata()
			keys := make([]string, 0, len(meta))
			for k := range meta {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				fields = append(fields, zap.Any(k, meta[k]))
			}
			err = z.Unwrap()
			continue
		}
		err = errors.Unwrap(err)
	}

	return fields
}
