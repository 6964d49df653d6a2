package evaluate_offers

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/engagekit/engage-backend/models"
)

// Upper bound on concurrent per-offer model scoring.
const maxConcurrentModelScores = 8

// scoreRecommenderMulti scores each matrix row with its own model, one
// binomial model per offer, fanned out concurrently. The winning offer's
// model name and index are recorded for downstream logging.
func (e *Evaluator) scoreRecommenderMulti(
	ctx context.Context,
	req *models.ScoringRequest,
	params ScoringParameters,
) ([]models.ScoredOffer, string, error) {
	features := params.Prediction.Features
	rows := params.Matrix.Offers

	scores := make([]float64, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentModelScores)
	for i, candidate := range rows {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			scores[i] = baseScore(params.Prediction, candidate.OfferKey)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	offers := make([]models.ScoredOffer, 0, len(rows))
	for i, candidate := range rows {
		p := scores[i]
		offers = append(offers, models.ScoredOffer{
			Offer:         candidate.OfferKey,
			OfferName:     candidate.OfferName,
			Score:         p,
			ModifiedScore: p,
			OfferValue:    candidate.Price,
			P:             p,
			Explore:       req.Explore,
			UUID:          req.UUID,
			ModelName:     fmt.Sprintf("%s.zip", candidate.OfferKey),
			ModelIndex:    i,
			SpendLimit:    e.resolveSpendLimit(ctx, candidate, features, candidate.Price),
		})
	}
	return offers, SortKeyScore, nil
}
