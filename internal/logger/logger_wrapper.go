package logger

import (
	"os"
	"sync"
	"time"

	"github.com/leandrodaf/notewatch/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements contracts.Logger on top of Uber's zap.
type ZapLogger struct {
	mu      sync.RWMutex
	logger  *zap.Logger
	level   zap.AtomicLevel
	encoder func() zapcore.Encoder
	closer  func()
}

// NewZapLogger creates a logger that writes JSON entries to stderr.
func NewZapLogger() contracts.Logger {
	return newZapLogger(jsonEncoder)
}

// NewStandardLogger creates a logger that writes human readable entries to stderr.
func NewStandardLogger() contracts.Logger {
	return newZapLogger(consoleEncoder)
}

// NewWithCore wraps an existing zap core. Level filtering still goes through SetLevel.
func NewWithCore(core zapcore.Core) *ZapLogger {
	z := &ZapLogger{level: zap.NewAtomicLevelAt(zapcore.InfoLevel), encoder: jsonEncoder}
	z.logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2))
	return z
}

func newZapLogger(encoder func() zapcore.Encoder) *ZapLogger {
	z := &ZapLogger{level: zap.NewAtomicLevelAt(zapcore.InfoLevel), encoder: encoder}
	z.logger = z.build(zapcore.Lock(os.Stderr))
	return z
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	return zapcore.NewConsoleEncoder(cfg)
}

func (z *ZapLogger) build(out zapcore.WriteSyncer) *zap.Logger {
	core := zapcore.NewCore(z.encoder(), out, zapcore.DebugLevel)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2))
}

// Info logs a message at the INFO level
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.log(zapcore.InfoLevel, msg, fields...)
}

// Error logs a message at the ERROR level
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.log(zapcore.ErrorLevel, msg, fields...)
}

// Debug logs a message at the DEBUG level
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.log(zapcore.DebugLevel, msg, fields...)
}

// Warn logs a message at the WARN level
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.log(zapcore.WarnLevel, msg, fields...)
}

// Fatal logs a message at the FATAL level and terminates the application
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.log(zapcore.FatalLevel, msg, fields...)
}

// Field returns a builder for structured fields.
func (z *ZapLogger) Field() contracts.Field {
	return &zapField{}
}

// SetLevel sets the minimum level that gets written.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level.SetLevel(toZapLevel(level))
}

// SetDestination redirects output. FileLog requires a path and appends to it;
// ConsoleLog goes back to stderr. Failures keep the current destination.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) {
	var (
		out    zapcore.WriteSyncer
		closer func()
	)
	switch dest {
	case contracts.FileLog:
		if len(filePath) == 0 || filePath[0] == "" {
			z.Error("file destination requires a path")
			return
		}
		sink, closeFn, err := zap.Open(filePath[0])
		if err != nil {
			z.Error("failed to open log file", z.Field().String("path", filePath[0]), z.Field().Error("error", err))
			return
		}
		out, closer = sink, closeFn
	case contracts.ConsoleLog:
		out = zapcore.Lock(os.Stderr)
	default:
		z.Warn("unknown log destination", z.Field().String("destination", string(dest)))
		return
	}

	z.mu.Lock()
	prev, prevClose := z.logger, z.closer
	z.logger, z.closer = z.build(out), closer
	z.mu.Unlock()

	_ = prev.Sync()
	if prevClose != nil {
		prevClose()
	}
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.logger.Sync()
}

// log is the single funnel for every level so caller skip stays constant.
func (z *ZapLogger) log(level zapcore.Level, msg string, fields ...contracts.Field) {
	if !z.level.Enabled(level) {
		return
	}

	z.mu.RLock()
	l := z.logger
	z.mu.RUnlock()

	if ce := l.Check(level, msg); ce != nil {
		ce.Write(toZapFields(fields)...)
	}
}

func toZapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields []contracts.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(*zapField); ok {
			out = append(out, f.field)
		}
	}
	return out
}

// zapField implements contracts.Field
type zapField struct {
	field zap.Field
}

func (f *zapField) Bool(key string, val bool) contracts.Field {
	return &zapField{zap.Bool(key, val)}
}

func (f *zapField) Int(key string, val int) contracts.Field {
	return &zapField{zap.Int(key, val)}
}

func (f *zapField) Float64(key string, val float64) contracts.Field {
	return &zapField{zap.Float64(key, val)}
}

func (f *zapField) String(key string, val string) contracts.Field {
	return &zapField{zap.String(key, val)}
}

func (f *zapField) Time(key string, val time.Time) contracts.Field {
	return &zapField{zap.Time(key, val)}
}

func (f *zapField) Int64(key string, val int64) contracts.Field {
	return &zapField{zap.Int64(key, val)}
}

func (f *zapField) Error(key string, val error) contracts.Field {
	return &zapField{zap.NamedError(key, val)}
}

func (f *zapField) Uint64(key string, val uint64) contracts.Field {
	return &zapField{zap.Uint64(key, val)}
}

func (f *zapField) Uint8(key string, val uint8) contracts.Field {
	return &zapField{zap.Uint8(key, val)}
}

func (f *zapField) Strings(key string, val []string) contracts.Field {
	return &zapField{zap.Strings(key, val)}
}
