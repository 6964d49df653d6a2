// Package feature_access reads loosely typed feature rows (offer matrix rows,
// engagement options, caller parameters) without ever aborting a scoring pass:
// a missing or malformed value falls back to a caller-supplied default.
package feature_access

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/engagekit/engage-backend/utils"
)

// Float resolves row[key] as a float64, falling back to def when the key is
// absent, malformed or NaN. NaN never leaks into score arithmetic.
func Float(ctx context.Context, row map[string]any, key string, def float64) float64 {
	v, ok := row[key]
	if !ok || v == nil {
		logMiss(ctx, key, def)
		return def
	}
	f, ok := asFloat(v)
	if !ok {
		logMalformed(ctx, key, v, def)
		return def
	}
	return sanitize(f)
}

// FloatStrict is Float without a fallback: the second return value reports
// whether the key resolved.
func FloatStrict(row map[string]any, key string) (float64, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return 0, false
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	return sanitize(f), true
}

// String resolves row[key] as a string; numeric values are formatted.
func String(ctx context.Context, row map[string]any, key string, def string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return def
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	}
	logMalformed(ctx, key, v, def)
	return def
}

// Bool resolves row[key] as a bool. String forms "true"/"false" and numeric
// 0/1 are accepted.
func Bool(ctx context.Context, row map[string]any, key string, def bool) bool {
	v, ok := row[key]
	if !ok || v == nil {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		if err == nil {
			return parsed
		}
	case float64:
		return b != 0
	case int:
		return b != 0
	}
	logMalformed(ctx, key, v, def)
	return def
}

// Has reports whether the key is present with a non-nil value.
func Has(row map[string]any, key string) bool {
	v, ok := row[key]
	return ok && v != nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// sanitize maps NaN to 0 so downstream comparisons stay total.
func sanitize(f float64) float64 {
	if f != f {
		return 0.0
	}
	return f
}

func logMiss(ctx context.Context, key string, def any) {
	utils.LoggerFromContext(ctx).DebugContext(ctx, "feature not present, using default",
		slog.String("key", key), slog.Any("default", def))
}

func logMalformed(ctx context.Context, key string, v, def any) {
	utils.LoggerFromContext(ctx).WarnContext(ctx, "feature has unexpected type, using default",
		slog.String("key", key), slog.Any("value", v), slog.Any("default", def))
}
