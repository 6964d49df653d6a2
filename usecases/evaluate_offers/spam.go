package evaluate_offers

import (
	"context"

	"github.com/guregu/null/v5"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/feature_access"
)

// Classification cutoff for the spam label.
const spamThreshold = 0.8

// scoreSpam wraps a deep-learning classifier score as a single pseudo offer:
// the offer name carries the spam verdict, with both class confidences kept
// for the result payload.
func (e *Evaluator) scoreSpam(
	ctx context.Context,
	req *models.ScoringRequest,
	params ScoringParameters,
) ([]models.ScoredOffer, string, error) {
	pred := params.Prediction
	features := pred.Features

	score := pred.DomainsProbability["1"]
	label := "false"
	if score >= spamThreshold {
		label = "true"
	}

	details := make(map[string]float64, len(pred.DomainsProbability)+2)
	for k, v := range pred.DomainsProbability {
		details[k] = v
	}
	details["spam_confidence"] = score
	details["ham_confidence"] = 1.0 - score

	offer := models.ScoredOffer{
		Offer:          label,
		OfferName:      label,
		Score:          score,
		ModifiedScore:  score,
		OfferValue:     1.0,
		OfferCost:      feature_access.Float(ctx, features, "cost", 1.0),
		Explore:        req.Explore,
		UUID:           req.UUID,
		Spam:           null.StringFrom(label),
		SpamConfidence: null.FloatFrom(score),
		OfferDetails:   details,
	}
	return []models.ScoredOffer{offer}, SortKeyScore, nil
}
