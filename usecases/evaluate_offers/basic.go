package evaluate_offers

import (
	"context"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/feature_access"
)

// scoreBasic builds one pseudo offer per result slot straight from the model
// output; no offer matrix is required. The score depends on the model type:
// probability for multinomial, predicted value for regression, the "score"
// domain for clustering and anomaly detection, static 1.0 otherwise.
func (e *Evaluator) scoreBasic(
	ctx context.Context,
	req *models.ScoringRequest,
	params ScoringParameters,
) ([]models.ScoredOffer, string, error) {
	pred := params.Prediction
	features := pred.Features

	offers := make([]models.ScoredOffer, 0, req.ResultCount)
	for i := 0; i < req.ResultCount; i++ {
		offer := models.ScoredOffer{
			UUID:         req.UUID,
			Explore:      req.Explore,
			OfferValue:   1.0,
			OfferDetails: pred.DomainsProbability,
			OfferName:    feature_access.String(ctx, features, "offer_name_final", string(pred.Type)),
			Offer:        feature_access.String(ctx, features, "offer", string(pred.Type)),
		}

		switch pred.Type {
		case models.ModelTypeClustering, models.ModelTypeAnomalyDetection:
			offer.Score = pred.DomainsProbability["score"]
		case models.ModelTypeRegression:
			offer.Score = pred.Value
		case models.ModelTypeMultinomial:
			offer.Score = pred.Probability
			offer.Offer = pred.Label
			offer.OfferName = pred.Response
		default:
			offer.Score = 1.0
		}
		offer.ModifiedScore = offer.Score
		offer.SpendLimit = e.resolveSpendLimit(ctx, models.OfferCandidate{}, features, offer.OfferValue)

		offers = append(offers, offer)
	}
	return offers, SortKeyScore, nil
}
