package evaluate_offers

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/guregu/null/v5"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/feature_access"
	"github.com/engagekit/engage-backend/utils"
)

// scoreDynamicEngagementProduct joins the engagement options against the
// offer matrix and prices each arm: the modified score is the arm's reward
// probability times the offer margin. Options missing from the matrix get a
// synthesized default row rather than being dropped; the final ranking is by
// arm reward over a shuffled option sequence.
func (e *Evaluator) scoreDynamicEngagementProduct(
	ctx context.Context,
	rng *rand.Rand,
	req *models.ScoringRequest,
	params ScoringParameters,
) ([]models.ScoredOffer, string, error) {
	logger := utils.LoggerFromContext(ctx)
	features := params.Prediction.Features

	eng, err := resolveEngagement(ctx, params.Corpora, req.InParams, features)
	if err != nil {
		return nil, "", err
	}
	eligible := eligibleOffersAllowlist(ctx, req.InParams)
	ec := e.newEligibilityContext(ctx, req, params.Corpora, features)

	var offers []models.ScoredOffer
	for _, j := range rng.Perm(len(eng.Options)) {
		// Scan bound tied to the result count, preserved from the online
		// behavior of this variant.
		if j > req.ResultCount {
			break
		}
		option := eng.Options[j]
		key := feature_access.String(ctx, option, "optionKey", "")

		candidate, ok := params.Matrix.Get(key)
		if !ok {
			candidate = models.DefaultOfferCandidate(key)
			logger.WarnContext(ctx, "default offer generated, option present in options store but not in offer matrix",
				slog.String("offer", key))
		}

		if len(eligible) > 0 && !eligible[key] {
			continue
		}
		if !optionMatches(ctx, option, eng.VarOne, eng.VarTwo) {
			continue
		}
		if !ec.openNow(ctx, key) {
			continue
		}

		alpha := feature_access.Float(ctx, option, "alpha", 0)
		beta := feature_access.Float(ctx, option, "beta", 0)

		p := feature_access.Float(ctx, option, "arm_reward", 0.001)
		armReward := p
		learningReward := feature_access.Float(ctx, option, "learning_reward", 1.0)

		offerValue := candidate.Price
		offerCost := candidate.Cost
		modified := p * (offerValue - offerCost)

		offers = append(offers, models.ScoredOffer{
			Offer:                 key,
			OfferName:             key,
			OfferNameDesc:         feature_access.String(ctx, option, "option", key),
			Score:                 p,
			ModifiedScore:         modified,
			OfferValue:            offerValue,
			OfferCost:             offerCost,
			P:                     p,
			ArmReward:             armReward,
			LearningReward:        learningReward,
			Alpha:                 alpha,
			Beta:                  beta,
			Weighting:             feature_access.Float(ctx, option, "weighting", -1.0),
			Explore:               req.Explore,
			UUID:                  req.UUID,
			ContextualVariableOne: contextualIfDeclared(option, "contextual_variable_one", eng.VarOne),
			ContextualVariableTwo: contextualIfDeclared(option, "contextual_variable_two", eng.VarTwo),
			ExpectedTakeup:        feature_access.Float(ctx, option, "expected_takeup", -1.0),
			Propensity:            feature_access.Float(ctx, option, "propensity", -1.0),
			EpsilonNominated:      feature_access.Float(ctx, option, "epsilon_nominated", -1.0),
			OfferMatrixRow:        candidate.Raw,
			SpendLimit:            e.resolveSpendLimit(ctx, candidate, features, offerValue),
		})
	}
	return offers, SortKeyArmReward, nil
}

// eligibleOffersAllowlist extracts the optional in_params allowlist mapping
// offer key to anything truthy; an empty or malformed allowlist disables the
// check.
func eligibleOffersAllowlist(ctx context.Context, inParams map[string]any) map[string]bool {
	raw, ok := inParams["eligible_offers"]
	if !ok {
		return nil
	}
	logger := utils.LoggerFromContext(ctx)

	allowed := make(map[string]bool)
	switch v := raw.(type) {
	case map[string]any:
		for key := range v {
			allowed[key] = true
		}
	case []any:
		for _, item := range v {
			if s, isString := item.(string); isString {
				allowed[s] = true
			}
		}
	default:
		logger.WarnContext(ctx, "eligible_offers found in params but could not be read, skipping eligibility check")
		return nil
	}
	if len(allowed) == 0 {
		logger.WarnContext(ctx, "eligible_offers list is empty, skipping eligibility check")
		return nil
	}
	logger.InfoContext(ctx, "applying eligible_offers list from params",
		slog.Int("count", len(allowed)))
	return allowed
}

// contextualIfDeclared echoes the resolved request value when the option
// declares the variable, mirroring the product variant's output shape.
func contextualIfDeclared(option map[string]any, key, resolved string) null.String {
	if _, ok := option[key]; ok {
		return null.StringFrom(resolved)
	}
	return null.StringFrom("")
}
