package evaluate_offers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/guregu/null/v5"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/feature_access"
	"github.com/engagekit/engage-backend/utils"
)

// scoreBalanceEnquiry walks the engagement options, joins each against the
// offer matrix and applies the balance rules: an offer is selectable when
// the customer holds enough balance for its price, when no balance cap
// applies, or unconditionally in whitelist mode. The preferred offer type is
// derived from balances versus usage averages and mismatched types are
// suppressed to near zero.
func (e *Evaluator) scoreBalanceEnquiry(
	ctx context.Context,
	req *models.ScoringRequest,
	params ScoringParameters,
) ([]models.ScoredOffer, string, error) {
	logger := utils.LoggerFromContext(ctx)
	features := params.Prediction.Features

	eng, err := resolveEngagement(ctx, params.Corpora, req.InParams, features)
	if err != nil {
		return nil, "", err
	}
	pref, err := derivePreference(ctx, req.InParams, features)
	if err != nil {
		return nil, "", err
	}

	inBalance := feature_access.Float(ctx, req.InParams, "in_balance", 0)
	whitelistActive := !req.Whitelist.Empty() && req.Whitelist.LogicIn
	payment := resolvePaymentMethod(ctx, features)

	var offers []models.ScoredOffer
	for j, option := range eng.Options {
		// Scan bound tied to the result count, as the online variant has
		// always behaved.
		if j > req.ResultCount {
			break
		}
		if !optionMatchesLenient(ctx, option, eng.VarOne, eng.VarTwo) {
			continue
		}

		alpha := feature_access.Float(ctx, option, "alpha", 0)
		beta := feature_access.Float(ctx, option, "beta", 0)
		p := feature_access.Float(ctx, option, "arm_reward", 0)
		armReward := p

		key := feature_access.String(ctx, option, "optionKey", "")
		candidate, ok := params.Matrix.Get(key)
		if !ok {
			continue
		}
		if !req.Whitelist.Empty() && !req.Whitelist.Matches(candidate.OfferName) {
			continue
		}
		if candidate.PaymentMethodCode == "" {
			logger.ErrorContext(ctx, "payment_method_code not available in offer matrix, skipping offer",
				slog.String("offer", key))
			continue
		}
		if !strings.EqualFold(candidate.PaymentMethodCode, payment) {
			continue
		}

		// Absent cop-car feature means no carried cost in this variant.
		copCar := 0.0
		if candidate.CopCarFieldName != "" {
			copCar = feature_access.Float(ctx, features, candidate.CopCarFieldName, 0)
		}
		offerValue := candidate.Price - copCar*(candidate.Alpha-2)
		if !(offerValue >= 0 || whitelistActive) {
			continue
		}

		offerType := candidate.OfferType
		if offerType == "" {
			logger.ErrorContext(ctx, "offer_type not available in offer matrix, defaulting to Voice",
				slog.String("offer", key))
			offerType = "Voice"
		}
		score := typeScore(offerType)
		modified := score * candidate.OfferWeight * preferenceMultiplier(pref.Preferred, offerType)

		// A cash-only offer consumes the balance cap for the remainder of
		// the scan.
		if strings.EqualFold(candidate.PaymentMethodCode, "C") {
			inBalance = 0.0
		}

		rule1 := inBalance > 0.0 && candidate.Price < inBalance
		rule2 := inBalance <= 0
		whitelistOnly := candidate.WhitelistOnly
		rule3 := strings.EqualFold(whitelistOnly, "n") ||
			(strings.EqualFold(whitelistOnly, "y") && whitelistActive)

		ruleSelect := false
		if rule3 {
			if rule1 || rule2 {
				ruleSelect = true
			}
			if whitelistActive {
				ruleSelect = true
			}
		}
		if !ruleSelect {
			continue
		}

		offers = append(offers, models.ScoredOffer{
			Offer:                 key,
			OfferName:             key,
			Score:                 score,
			ModifiedScore:         modified,
			OfferValue:            offerValue,
			OfferCost:             candidate.Cost,
			P:                     p,
			ArmReward:             armReward,
			Alpha:                 alpha,
			Beta:                  beta,
			Explore:               0,
			UUID:                  req.UUID,
			Preferred:             pref.Preferred,
			VoiceBalance:          pref.VoiceBalance,
			DataBalance:           pref.DataBalance,
			DailyVoiceUsage:       pref.DailyVoiceUsage,
			DailyDataUsage:        pref.DailyDataUsage,
			ContextualVariableOne: null.StringFrom(optionContextual(ctx, option, "contextual_variable_one")),
			ContextualVariableTwo: null.StringFrom(optionContextual(ctx, option, "contextual_variable_two")),
			OfferMatrixRow:        candidate.Raw,
		})
	}
	return offers, SortKeyModifiedOfferScore, nil
}
