package evaluate_offers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/feature_access"
	"github.com/engagekit/engage-backend/usecases/value_calc"
	"github.com/engagekit/engage-backend/utils"
)

// scoreOfferMatrix scores every matrix row against the model output, gated
// by the eligibility checks and the configured selector field.
func (e *Evaluator) scoreOfferMatrix(
	ctx context.Context,
	req *models.ScoringRequest,
	params ScoringParameters,
) ([]models.ScoredOffer, string, error) {
	logger := utils.LoggerFromContext(ctx)
	features := params.Prediction.Features
	ec := e.newEligibilityContext(ctx, req, params.Corpora, features)

	var offers []models.ScoredOffer
	for _, candidate := range params.Matrix.Offers {
		if !ec.isEligible(ctx, candidate) {
			continue
		}

		if s := e.config.SelectorField; s != "" {
			rowValue, ok := candidate.Raw[s].(string)
			if !ok {
				logger.ErrorContext(ctx, "selector field missing from offer matrix row, stopping scan",
					slog.String("field", s), slog.String("offer", candidate.OfferKey))
				break
			}
			featureValue, ok := features[s].(string)
			if !ok {
				logger.ErrorContext(ctx, "selector field missing from feature snapshot, stopping scan",
					slog.String("field", s))
				break
			}
			if !strings.EqualFold(rowValue, featureValue) {
				continue
			}
		}

		score := baseScore(params.Prediction, candidate.OfferKey)
		weight := candidate.OfferWeight
		if weight == 0 {
			weight = 1.0
		}

		var offerValue, modified float64
		if params.Corpora.HasPreload(models.CorpusValueCalcParams) {
			// The value-calc sub-engine owns the monetary terms when its
			// parameter document is configured. A cohort mismatch propagates
			// its sentinel so the offer stays visible, ranked last.
			coeffs := value_calc.ResolveCoefficients(ctx, params.Corpora, candidate, features)
			res := value_calc.Compute(ctx, coeffs, value_calc.Inputs{
				Offer:          candidate,
				Features:       features,
				Propensity:     score,
				OfferValue:     candidate.Price,
				CustomerCohort: ec.cohort,
			})
			offerValue = res.BundleValue
			modified = res.FinalValue
		} else {
			copCar := 0.0
			if candidate.CopCarFieldName != "" {
				copCar = feature_access.Float(ctx, features, candidate.CopCarFieldName, 0)
			}
			offerValue = candidate.Price - copCar*candidate.Alpha
			if offerValue < 0 && !req.Whitelist.LogicIn {
				continue
			}
			modified = score * weight
		}

		offers = append(offers, models.ScoredOffer{
			Offer:          candidate.OfferKey,
			OfferName:      candidate.OfferName,
			Score:          score,
			ModifiedScore:  modified,
			OfferValue:     offerValue,
			OfferCost:      candidate.Cost,
			Explore:        req.Explore,
			UUID:           req.UUID,
			OfferMatrixRow: candidate.Raw,
			OfferDetails:   params.Prediction.DomainsProbability,
			SpendLimit:     e.resolveSpendLimit(ctx, candidate, features, offerValue),
		})
	}
	return offers, SortKeyModifiedOfferScore, nil
}

// baseScore resolves the raw score for one offer key: the model's per-label
// probability when it knows the key, else the overall probability, else the
// static fallback.
func baseScore(pred models.PredictionResult, offerKey string) float64 {
	if p, ok := pred.DomainsProbability[offerKey]; ok {
		return p
	}
	if pred.Probability > 0 {
		return pred.Probability
	}
	return 1.0
}
