package feature_access

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat(t *testing.T) {
	ctx := context.Background()
	row := map[string]any{
		"price":    float64(25),
		"count":    3,
		"text":     "1.5",
		"garbage":  "abc",
		"not_a_nr": []string{"x"},
		"nan":      math.NaN(),
		"nil":      nil,
	}

	assert.Equal(t, 25.0, Float(ctx, row, "price", -1))
	assert.Equal(t, 3.0, Float(ctx, row, "count", -1))
	assert.Equal(t, 1.5, Float(ctx, row, "text", -1))
	assert.Equal(t, -1.0, Float(ctx, row, "garbage", -1))
	assert.Equal(t, -1.0, Float(ctx, row, "not_a_nr", -1))
	assert.Equal(t, -1.0, Float(ctx, row, "missing", -1))
	assert.Equal(t, -1.0, Float(ctx, row, "nil", -1))

	// NaN is sanitized to zero, not passed through and not defaulted.
	assert.Equal(t, 0.0, Float(ctx, row, "nan", -1))
}

func TestFloatStrict(t *testing.T) {
	row := map[string]any{"alpha": 1.2}

	v, ok := FloatStrict(row, "alpha")
	assert.True(t, ok)
	assert.Equal(t, 1.2, v)

	_, ok = FloatStrict(row, "beta")
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	ctx := context.Background()
	row := map[string]any{
		"offer":  "Data_20GB",
		"price":  12.5,
		"weight": 2,
		"flag":   true,
	}

	assert.Equal(t, "Data_20GB", String(ctx, row, "offer", ""))
	assert.Equal(t, "12.5", String(ctx, row, "price", ""))
	assert.Equal(t, "2", String(ctx, row, "weight", ""))
	assert.Equal(t, "true", String(ctx, row, "flag", ""))
	assert.Equal(t, "fallback", String(ctx, row, "missing", "fallback"))
}

func TestBool(t *testing.T) {
	ctx := context.Background()
	row := map[string]any{
		"a": true,
		"b": "false",
		"c": float64(1),
		"d": 0,
		"e": "not a bool",
	}

	assert.True(t, Bool(ctx, row, "a", false))
	assert.False(t, Bool(ctx, row, "b", true))
	assert.True(t, Bool(ctx, row, "c", false))
	assert.False(t, Bool(ctx, row, "d", true))
	assert.True(t, Bool(ctx, row, "e", true))
	assert.False(t, Bool(ctx, row, "missing", false))
}

func TestHas(t *testing.T) {
	row := map[string]any{"set": 1, "null": nil}

	assert.True(t, Has(row, "set"))
	assert.False(t, Has(row, "null"))
	assert.False(t, Has(row, "missing"))
}
