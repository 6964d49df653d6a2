package evaluate_offers

import (
	"context"

	"github.com/guregu/null/v5"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/feature_access"
)

// resolveSpendLimit attaches the remaining budget to a scored offer when
// budget tracking is enabled. The remaining spend comes from the feature
// snapshot under the configured field, else from the offer's monthly budget
// less the value being committed; an uncapped offer gets the -1 unlimited
// sentinel. With budget tracking disabled the limit stays unset and the
// selector ignores it.
func (e *Evaluator) resolveSpendLimit(
	ctx context.Context,
	offer models.OfferCandidate,
	features map[string]any,
	offerValue float64,
) null.Float {
	if !e.config.BudgetEnabled() {
		return null.Float{}
	}
	if v, ok := feature_access.FloatStrict(features, e.config.OfferBudget.Field()); ok {
		return null.FloatFrom(v - offerValue)
	}
	if offer.MonthlyBudget.Valid {
		return null.FloatFrom(offer.MonthlyBudget.Float64 - offerValue)
	}
	return null.FloatFrom(-1)
}
