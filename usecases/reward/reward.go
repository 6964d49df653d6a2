// Package reward computes the post-hoc learning feedback for a delivered
// offer.
package reward

import (
	"context"
	"log/slog"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/business_logic"
	"github.com/engagekit/engage-backend/usecases/feature_access"
	"github.com/engagekit/engage-backend/utils"
)

type Calculator struct {
	registry *business_logic.Registry
}

func NewCalculator(registry *business_logic.Registry) *Calculator {
	return &Calculator{registry: registry}
}

// Compute resolves the reward and learning reward for one outcome. Never
// returns an error: with empty params or no rewards configuration the
// neutral default record is returned, and a failing business-logic call only
// defaults the sub-value it was computing.
func (c *Calculator) Compute(
	ctx context.Context,
	corpora models.CorporaSet,
	params map[string]any,
) models.RewardRecord {
	record := models.DefaultRewardRecord()
	logger := utils.LoggerFromContext(ctx)

	if len(params) == 0 {
		return record
	}

	cfg, err := corpora.RewardsBusinessLogic()
	if err != nil {
		logger.WarnContext(ctx, "no rewards business logic configured, using default reward")
		return record
	}

	if cfg.Reward != nil {
		record.Reward = c.subValue(ctx, *cfg.Reward, params, record.Reward)
	}
	if cfg.LearningReward != nil {
		record.LearningReward = c.subValue(ctx, *cfg.LearningReward, params, record.LearningReward)
	}
	return record
}

// subValue invokes one configured function and reads its named output field,
// falling back to def on any failure.
func (c *Calculator) subValue(
	ctx context.Context,
	ref models.BusinessFunctionRef,
	params map[string]any,
	def float64,
) float64 {
	logger := utils.LoggerFromContext(ctx)

	out, err := c.registry.Invoke(ctx, ref.FunctionName, params)
	if err != nil {
		logger.WarnContext(ctx, "reward business logic call failed, using default",
			slog.String("function", ref.FunctionName),
			slog.String("error", err.Error()))
		return def
	}
	v, ok := feature_access.FloatStrict(out, ref.Output)
	if !ok {
		logger.WarnContext(ctx, "reward business logic output field missing, using default",
			slog.String("function", ref.FunctionName),
			slog.String("output", ref.Output))
		return def
	}
	return v
}
