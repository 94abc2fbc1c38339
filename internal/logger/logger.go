package logger

import (
	"encoding/json"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]any

var sensitiveKeys = map[string]struct{}{
	"pin":            {},
	"password":       {},
	"accountpin":     {},
	"transactionpin": {},
	"authorization":  {},
	"channelkey":     {},
}

var base = newLogger(os.Getenv("LOG_LEVEL"))

// newLogger builds a structured zap logger. Production base, ISO8601 time,
// compact JSON; debug level switches to colorized console output.
func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}

func Info(message string, fields Fields) {
	base.Info(message, zapFields(fields)...)
}

func Warn(message string, fields Fields) {
	base.Warn(message, zapFields(fields)...)
}

func Error(message string, err error, fields Fields) {
	base.Error(message, append(zapFields(fields), zap.Error(err))...)
}

// Critical marks failures that must never pass unnoticed, such as a lost
// compliance audit record. Logs at error level with a severity marker so
// alerting can key off it.
func Critical(message string, err error, fields Fields) {
	zf := append(zapFields(fields), zap.Error(err), zap.String("severity", "critical"))
	base.Error(message, zf...)
}

func zapFields(fields Fields) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		if isSensitiveKey(key) {
			out = append(out, zap.String(key, "******"))
			continue
		}
		out = append(out, zap.Any(key, sanitizeValue(value)))
	}
	return out
}

// SanitizePayload round-trips a payload through JSON and masks sensitive
// keys, so whole request objects can be logged safely.
func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = "******"
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	normalized = strings.ReplaceAll(normalized, "_", "")
	_, ok := sensitiveKeys[normalized]
	return ok
}
