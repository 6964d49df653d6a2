package evaluate_offers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/engagekit/engage-backend/models"
)

func TestDerivePreference(t *testing.T) {
	ctx := context.Background()
	features := map[string]any{
		"daily_voice_usage_avg": 5.0,
		"daily_data_usage_avg":  5.0,
	}

	cases := []struct {
		name      string
		voice     float64
		data      float64
		preferred string
	}{
		{"both balances cover usage", 10, 10, "Any"},
		{"data balance short", 10, 2, "Data"},
		{"voice balance short", 2, 10, "Voice"},
		{"both balances short", 2, 2, "IntegratedBundle"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := derivePreference(ctx, map[string]any{
				"voice_balance": c.voice,
				"data_balance":  c.data,
			}, features)
			assert.NoError(t, err)
			assert.Equal(t, c.preferred, p.Preferred)
		})
	}
}

func TestDerivePreferenceMissingUsage(t *testing.T) {
	_, err := derivePreference(context.Background(), map[string]any{},
		map[string]any{"daily_voice_usage_avg": 5.0})
	assert.ErrorIs(t, err, models.ErrMissingUsageFeatures)
}

func TestPreferenceMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, preferenceMultiplier("Any", "Data"))
	assert.Equal(t, 1.0, preferenceMultiplier("Voice", "Voice"))

	// Mismatch suppresses to near zero, never to exactly zero.
	m := preferenceMultiplier("Voice", "Data")
	assert.Equal(t, 1e-34, m)
	assert.NotZero(t, m)
}

func TestTypeScore(t *testing.T) {
	assert.Equal(t, 0.5, typeScore("Voice"))
	assert.Equal(t, 0.0, typeScore("Data"))
}

func TestResolvePaymentMethod(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "P", resolvePaymentMethod(ctx, map[string]any{"payment_method_code": "P"}))
	// Legacy alias.
	assert.Equal(t, "p", resolvePaymentMethod(ctx, map[string]any{"payment_method_code": "h"}))
	assert.Equal(t, "p", resolvePaymentMethod(ctx, map[string]any{"payment_method_code": "H"}))
	// Missing defaults to prepaid.
	assert.Equal(t, "p", resolvePaymentMethod(ctx, map[string]any{}))
}
