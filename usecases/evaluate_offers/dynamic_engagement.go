package evaluate_offers

import (
	"context"
	"math/rand/v2"

	"github.com/guregu/null/v5"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/feature_access"
)

// scoreDynamicEngagement scores the engagement options as bandit arms. With
// the epsilonGreedy approach the explore flag is drawn per option against
// the configured epsilon; any other approach is treated as a Thompson-style
// responder that always explores and takes the option's arm reward as the
// score.
func (e *Evaluator) scoreDynamicEngagement(
	ctx context.Context,
	rng *rand.Rand,
	req *models.ScoringRequest,
	params ScoringParameters,
) ([]models.ScoredOffer, string, error) {
	eng, err := resolveEngagement(ctx, params.Corpora, req.InParams, params.Prediction.Features)
	if err != nil {
		return nil, "", err
	}

	epsilon := eng.Params.Randomisation.Epsilon
	if epsilon == 0 {
		epsilon = e.config.Epsilon
	}

	var offers []models.ScoredOffer
	for _, option := range eng.Options {
		if !optionMatches(ctx, option, eng.VarOne, eng.VarTwo) {
			continue
		}

		alpha := feature_access.Float(ctx, option, "alpha", 0)
		beta := feature_access.Float(ctx, option, "beta", 0)

		var p float64
		armReward := 0.001
		explore := req.Explore
		if eng.Params.Randomisation.Approach == "epsilonGreedy" {
			explore = 0
			if rng.Float64() <= epsilon {
				explore = 1
			}
			p = feature_access.Float(ctx, option, "weighting", 0)
			if explore == 0 {
				armReward = float64(rng.IntN(2))
			} else {
				armReward = 1.0
			}
		} else {
			// The dynamic responder is exploration based.
			explore = 1
			p = feature_access.Float(ctx, option, "arm_reward", 0)
		}
		req.Explore = explore

		key := feature_access.String(ctx, option, "optionKey", "")
		offers = append(offers, models.ScoredOffer{
			Offer:                 key,
			OfferName:             key,
			OfferNameDesc:         feature_access.String(ctx, option, "option", key),
			Score:                 p,
			ModifiedScore:         p,
			OfferValue:            1.0,
			P:                     p,
			ArmReward:             armReward,
			Alpha:                 alpha,
			Beta:                  beta,
			Weighting:             feature_access.Float(ctx, option, "weighting", 0),
			Explore:               explore,
			UUID:                  req.UUID,
			ContextualVariableOne: null.StringFrom(optionContextual(ctx, option, "contextual_variable_one")),
			ContextualVariableTwo: null.StringFrom(optionContextual(ctx, option, "contextual_variable_two")),
			ExpectedTakeup:        feature_access.Float(ctx, option, "expected_takeup", -1.0),
			Propensity:            feature_access.Float(ctx, option, "propensity", -1.0),
			EpsilonNominated:      feature_access.Float(ctx, option, "epsilon_nominated", -1.0),
		})
	}
	return offers, SortKeyScore, nil
}
