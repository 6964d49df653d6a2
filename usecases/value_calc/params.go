package value_calc

import (
	"context"
	"log/slog"

	"github.com/tidwall/gjson"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/feature_access"
	"github.com/engagekit/engage-backend/utils"
)

// Coefficients are the 8 resolved formula coefficients. All default to 1.0.
type Coefficients struct {
	ValueMultiplier      float64
	ValuePower           float64
	CopCarMultiplier     float64
	CopCarPower          float64
	AlphaMultiplier      float64
	AlphaPower           float64
	PropensityMultiplier float64
	PropensityPower      float64
}

func DefaultCoefficients() Coefficients {
	return Coefficients{
		ValueMultiplier:      1.0,
		ValuePower:           1.0,
		CopCarMultiplier:     1.0,
		CopCarPower:          1.0,
		AlphaMultiplier:      1.0,
		AlphaPower:           1.0,
		PropensityMultiplier: 1.0,
		PropensityPower:      1.0,
	}
}

// Parameter sourcing types understood by ResolveCoefficients.
const (
	sourceNumeric     = "numeric"
	sourceOfferMatrix = "offer_matrix_lookup"
	sourceDataSource  = "parameter_from_data_source_lookup"
)

// ResolveCoefficients reads the coefficient document from the preloaded
// corpora. Each named parameter is typed: a numeric literal, a lookup against
// the offer's matrix row, or a lookup against the feature snapshot. A missing
// document or unresolvable parameter leaves the coefficient at 1.0.
func ResolveCoefficients(
	ctx context.Context,
	corpora models.CorporaSet,
	offer models.OfferCandidate,
	features map[string]any,
) Coefficients {
	coeffs := DefaultCoefficients()

	raw, ok := corpora.RawPreload(models.CorpusValueCalcParams)
	if !ok {
		utils.LoggerFromContext(ctx).DebugContext(ctx,
			"value calc parameters not configured, using neutral coefficients")
		return coeffs
	}
	doc := gjson.GetBytes(raw, "data")
	if !doc.Exists() {
		doc = gjson.ParseBytes(raw)
	}

	resolve := func(name string, out *float64) {
		param := doc.Get(name)
		if !param.Exists() {
			return
		}
		switch param.Get("type").String() {
		case sourceNumeric:
			if v := param.Get("value"); v.Exists() {
				*out = v.Float()
			}
		case sourceOfferMatrix:
			field := param.Get("field").String()
			if v, ok := feature_access.FloatStrict(offer.Raw, field); ok {
				*out = v
			} else {
				logUnresolved(ctx, name, field)
			}
		case sourceDataSource:
			field := param.Get("field").String()
			if v, ok := feature_access.FloatStrict(features, field); ok {
				*out = v
			} else {
				logUnresolved(ctx, name, field)
			}
		default:
			utils.LoggerFromContext(ctx).WarnContext(ctx, "value calc parameter has unknown type",
				slog.String("parameter", name),
				slog.String("type", param.Get("type").String()))
		}
	}

	resolve("value_multiplier", &coeffs.ValueMultiplier)
	resolve("value_power", &coeffs.ValuePower)
	resolve("copcar_multiplier", &coeffs.CopCarMultiplier)
	resolve("copcar_power", &coeffs.CopCarPower)
	resolve("alpha_multiplier", &coeffs.AlphaMultiplier)
	resolve("alpha_power", &coeffs.AlphaPower)
	resolve("propensity_multiplier", &coeffs.PropensityMultiplier)
	resolve("propensity_power", &coeffs.PropensityPower)

	return coeffs
}

func logUnresolved(ctx context.Context, name, field string) {
	utils.LoggerFromContext(ctx).WarnContext(ctx, "value calc parameter lookup failed, keeping neutral coefficient",
		slog.String("parameter", name), slog.String("field", field))
}
