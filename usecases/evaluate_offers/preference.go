package evaluate_offers

import (
	"context"
	"strings"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/feature_access"
)

// suppressionFactor makes mismatched-type offers effectively unselectable
// while preserving their relative order in logs. Kept as a near-zero
// multiplier rather than an exclusion for backward compatibility.
const suppressionFactor = 1e-34

type preference struct {
	Preferred       string
	VoiceBalance    float64
	DataBalance     float64
	DailyVoiceUsage float64
	DailyDataUsage  float64
}

// derivePreference classifies what the customer is running short of by
// comparing the request balances against the daily usage averages from the
// feature snapshot. Both usage averages are required; without them the whole
// evaluation is abandoned.
func derivePreference(ctx context.Context, inParams, features map[string]any) (preference, error) {
	if !feature_access.Has(features, "daily_voice_usage_avg") ||
		!feature_access.Has(features, "daily_data_usage_avg") {
		return preference{}, models.ErrMissingUsageFeatures
	}

	p := preference{
		VoiceBalance:    feature_access.Float(ctx, inParams, "voice_balance", 0),
		DataBalance:     feature_access.Float(ctx, inParams, "data_balance", 0),
		DailyVoiceUsage: feature_access.Float(ctx, features, "daily_voice_usage_avg", 0),
		DailyDataUsage:  feature_access.Float(ctx, features, "daily_data_usage_avg", 0),
	}

	voiceOk := p.VoiceBalance >= p.DailyVoiceUsage
	dataOk := p.DataBalance >= p.DailyDataUsage
	switch {
	case voiceOk && !dataOk:
		p.Preferred = "Data"
	case !voiceOk && dataOk:
		p.Preferred = "Voice"
	case !voiceOk && !dataOk:
		p.Preferred = "IntegratedBundle"
	default:
		p.Preferred = "Any"
	}
	return p, nil
}

// typeScore pins Voice offers to 0.5; other types start at zero and rely on
// the weight and preference multipliers.
func typeScore(offerType string) float64 {
	if offerType == "Voice" {
		return 0.5
	}
	return 0.0
}

// preferenceMultiplier is 1 when the offer type matches the preference (or
// the preference is Any) and the near-zero suppression factor otherwise.
func preferenceMultiplier(preferred, offerType string) float64 {
	if strings.EqualFold(preferred, "Any") || strings.EqualFold(preferred, offerType) {
		return 1.0
	}
	return suppressionFactor
}

// resolvePaymentMethod reads the customer payment method, defaulting to "p".
// The legacy customer code "h" is an alias for "p".
func resolvePaymentMethod(ctx context.Context, features map[string]any) string {
	code := feature_access.String(ctx, features, "payment_method_code", "p")
	if strings.EqualFold(code, "h") {
		return "p"
	}
	return code
}
