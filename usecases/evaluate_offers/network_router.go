package evaluate_offers

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/feature_access"
	"github.com/engagekit/engage-backend/utils"
)

// Network routing types understood by scoreNetworkRouter.
const (
	networkTypeModelSelector   = "model_selector"
	networkTypeNoLoggingRouter = "no_logging_router"
)

// scoreNetworkRouter forwards the request to the downstream runtimes named
// by the network corpora and merges their ranked results into one candidate
// list. model_selector lets the selector model's label pick the target
// category; the switch types resolve the target from a feature value. Each
// downstream call goes through the api business-logic machinery, so failures
// degrade to a smaller merged list rather than an error.
func (e *Evaluator) scoreNetworkRouter(
	ctx context.Context,
	req *models.ScoringRequest,
	params ScoringParameters,
) ([]models.ScoredOffer, string, error) {
	logger := utils.LoggerFromContext(ctx)
	features := params.Prediction.Features

	cfg, err := params.Corpora.NetworkConfig()
	if err != nil {
		return nil, "", errors.Wrap(models.ErrNoNetworkConfig, err.Error())
	}
	endpoints, err := params.Corpora.NetworkEndpoints()
	if err != nil {
		return nil, "", errors.Wrap(models.ErrNoNetworkConfig, err.Error())
	}

	var targets []models.NetworkEndpoint
	switch cfg.Type {
	case networkTypeModelSelector:
		// The selector model ranks categories; fan out to every configured
		// category when its label is not a configured endpoint.
		if ep, ok := endpoints[params.Prediction.Label]; ok {
			targets = append(targets, ep)
		} else {
			for _, ep := range endpoints {
				targets = append(targets, ep)
			}
		}
	default:
		switchKey := cfg.SwitchKey
		if switchKey == "" {
			switchKey = e.config.SelectorField
		}
		value := feature_access.String(ctx, features, switchKey, "")
		if ep, ok := endpoints[value]; ok {
			targets = append(targets, ep)
		} else if cfg.Selector.URL != "" {
			targets = append(targets, cfg.Selector)
		} else {
			return nil, "", errors.Wrap(models.ErrNoNetworkConfig,
				"no endpoint configured for switch value "+value)
		}
	}

	passover := utils.NewPrimaryKey()

	var offers []models.ScoredOffer
	for _, target := range targets {
		out, err := e.registry.Invoke(ctx, "api", e.downstreamPayload(req, target, passover))
		if err != nil {
			logger.WarnContext(ctx, "downstream runtime call failed, continuing with remaining targets",
				slog.String("url", target.URL),
				slog.String("error", err.Error()))
			continue
		}
		offers = append(offers, parseDownstreamResult(ctx, out, target, passover)...)
	}
	if len(offers) == 0 {
		return nil, "", errors.Wrap(models.ErrNoNetworkConfig, "no downstream runtime produced a result")
	}
	return offers, SortKeyScore, nil
}

// downstreamPayload builds the invocation body for one target, letting the
// endpoint configuration override the inbound call values.
func (e *Evaluator) downstreamPayload(
	req *models.ScoringRequest,
	target models.NetworkEndpoint,
	passover string,
) map[string]any {
	payload := map[string]any{
		"url":           target.URL,
		"campaign":      req.Campaign,
		"subcampaign":   req.SubCampaign,
		"customer":      req.Customer,
		"channel":       req.Channel,
		"userid":        req.UserId,
		"numberoffers":  req.ResultCount,
		"params":        req.InParams,
		"passover_uuid": passover,
	}
	if target.Campaign != "" {
		payload["campaign"] = target.Campaign
	}
	if target.SubCampaign != "" {
		payload["subcampaign"] = target.SubCampaign
	}
	if target.Customer != "" {
		payload["customer"] = target.Customer
	}
	if target.Channel != "" {
		payload["channel"] = target.Channel
	}
	if target.NumberOffers > 0 {
		payload["numberoffers"] = target.NumberOffers
	}
	if target.UserId != "" {
		payload["userid"] = target.UserId
	}
	if len(target.InParams) > 0 {
		payload["params"] = target.InParams
	}
	return payload
}

// parseDownstreamResult lifts a downstream final_result array back into
// scored offers so they can be merged and re-ranked locally.
func parseDownstreamResult(
	ctx context.Context,
	out map[string]any,
	target models.NetworkEndpoint,
	passover string,
) []models.ScoredOffer {
	entries, ok := out["final_result"].([]any)
	if !ok {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "downstream result has no final_result array",
			slog.String("url", target.URL))
		return nil
	}

	offers := make([]models.ScoredOffer, 0, len(entries))
	for _, entry := range entries {
		wrapper, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		result, ok := wrapper["result"].(map[string]any)
		if !ok {
			continue
		}
		offers = append(offers, models.ScoredOffer{
			Offer:         feature_access.String(ctx, result, "offer", ""),
			OfferName:     feature_access.String(ctx, result, "offer_name", ""),
			Score:         feature_access.Float(ctx, result, "score", 0),
			ModifiedScore: feature_access.Float(ctx, result, "modified_offer_score", 0),
			OfferValue:    feature_access.Float(ctx, result, "offer_value", 0),
			ArmReward:     feature_access.Float(ctx, result, "arm_reward", 0),
			UUID:          feature_access.String(ctx, result, "uuid", ""),
			PassoverUUID:  passover,
			Selector: map[string]any{
				"url": target.URL,
			},
		})
	}
	return offers
}
