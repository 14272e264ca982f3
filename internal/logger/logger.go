package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Package logger builds the process-wide structured JSON logger.
//
// Loggers should be injected and usually Named, e.g. lggr.Named("contact").
// Levels:
//   - Error: a request or background operation failed and someone should look at it.
//   - Warn: a degraded dependency (mail relay, revalidation webhook) that did not fail the request.
//   - Info: lifecycle events (startup, migrations, shutdown) and access logs.
//   - Debug: forensic detail, disabled in production.

// New returns a JSON logger writing to stdout at the given level.
func New(level string, loc *time.Location) (*zap.Logger, error) {
	return NewWithWriter(os.Stdout, level, loc)
}

// NewWithWriter returns a JSON logger writing to w. Timestamps are rendered in loc.
func NewWithWriter(w io.Writer, level string, loc *time.Location) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.MessageKey = "msg"
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(loc).Format(time.RFC3339Nano))
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// Nop returns a no-op logger.
func Nop() *zap.Logger {
	return zap.NewNop()
}
