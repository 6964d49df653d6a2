// Package value_calc implements the configurable bundle-value formula:
//
//	bundle_value = (value_term - copcar_term) * alpha_term
//	final_value  = propensity_term * bundle_value
//
// where each term is multiplier * base ^ power, with the coefficients
// resolved dynamically from configuration.
package value_calc

import (
	"context"
	"log/slog"
	"math"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/feature_access"
	"github.com/engagekit/engage-backend/utils"
)

const (
	// CopCarDefault is the large-penalty sentinel substituted when the
	// cop-car feature named by the offer is absent or non-numeric.
	CopCarDefault = 999.0

	// CohortMismatchSentinel replaces the whole result when the offer is
	// gated to a cohort the customer is not in.
	CohortMismatchSentinel = -999.0
)

// Term defaults applied when one term's computation fails. Each term has its
// own sentinel so a single bad coefficient cannot silently zero the formula.
const (
	valueTermDefault      = -999.0
	copcarTermDefault     = 999.0
	alphaTermDefault      = -999.0
	propensityTermDefault = 0.0
)

type Inputs struct {
	Offer      models.OfferCandidate
	Features   map[string]any
	Propensity float64

	// OfferValue is the monetary base for value_term, usually the offer
	// price.
	OfferValue float64

	// CustomerCohort gates the result when the offer declares a cohort.
	CustomerCohort string
}

type Result struct {
	ValueTerm      float64
	CopCarTerm     float64
	AlphaTerm      float64
	PropensityTerm float64
	BundleValue    float64
	FinalValue     float64

	// CohortMismatch marks results forced to the sentinel.
	CohortMismatch bool
}

// Compute evaluates the formula with per-term failure isolation. It never
// returns an error: a term that cannot be computed takes its sentinel default
// and the rest of the formula proceeds.
func Compute(ctx context.Context, coeffs Coefficients, in Inputs) Result {
	if in.Offer.CohortId.Valid && in.Offer.CohortId.String != "" &&
		in.Offer.CohortId.String != in.CustomerCohort {
		return Result{
			BundleValue:    CohortMismatchSentinel,
			FinalValue:     CohortMismatchSentinel,
			CohortMismatch: true,
		}
	}

	copCar := CopCarDefault
	if in.Offer.CopCarFieldName != "" {
		copCar = feature_access.Float(ctx, in.Features, in.Offer.CopCarFieldName, CopCarDefault)
	}

	res := Result{
		ValueTerm:      term(ctx, "value", coeffs.ValueMultiplier, in.OfferValue, coeffs.ValuePower, valueTermDefault),
		CopCarTerm:     term(ctx, "copcar", coeffs.CopCarMultiplier, copCar, coeffs.CopCarPower, copcarTermDefault),
		AlphaTerm:      term(ctx, "alpha", coeffs.AlphaMultiplier, in.Offer.Alpha, coeffs.AlphaPower, alphaTermDefault),
		PropensityTerm: term(ctx, "propensity", coeffs.PropensityMultiplier, in.Propensity, coeffs.PropensityPower, propensityTermDefault),
	}
	res.BundleValue = (res.ValueTerm - res.CopCarTerm) * res.AlphaTerm
	res.FinalValue = res.PropensityTerm * res.BundleValue
	return res
}

// term computes multiplier * base ^ power, substituting def when the result
// is not a finite number.
func term(ctx context.Context, name string, multiplier, base, power, def float64) float64 {
	v := multiplier * math.Pow(base, power)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "value term did not resolve to a finite number, using term default",
			slog.String("term", name),
			slog.Float64("multiplier", multiplier),
			slog.Float64("base", base),
			slog.Float64("power", power),
			slog.Float64("default", def))
		return def
	}
	return v
}
