package evaluate_offers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/pure_utils"
	"github.com/engagekit/engage-backend/usecases/feature_access"
	"github.com/engagekit/engage-backend/utils"
)

// eligibilityContext holds the per-request values the offer-level checks
// compare against, resolved once per evaluation.
type eligibilityContext struct {
	whitelist models.Whitelist
	cohort    string
	payment   string
	locations map[string]models.LocationWindow
	clock     string
}

func (e *Evaluator) newEligibilityContext(
	ctx context.Context,
	req *models.ScoringRequest,
	corpora models.CorporaSet,
	features map[string]any,
) eligibilityContext {
	locations, err := corpora.Locations()
	if err != nil {
		locations = nil
	}
	return eligibilityContext{
		whitelist: req.Whitelist,
		cohort:    e.cohorts.Resolve(ctx, corpora, features, req.Customer),
		payment:   resolvePaymentMethod(ctx, features),
		locations: locations,
		clock:     feature_access.String(ctx, req.InParams, "time", ""),
	}
}

// isEligible applies the offer-level checks. Each check is skipped when its
// backing configuration or field is absent; the filter never fails a whole
// batch for one offer.
func (ec eligibilityContext) isEligible(ctx context.Context, offer models.OfferCandidate) bool {
	if !ec.whitelist.Empty() && !ec.whitelist.Matches(offer.OfferName) {
		return false
	}
	if offer.CohortId.Valid && offer.CohortId.String != "" && offer.CohortId.String != ec.cohort {
		return false
	}
	if offer.PaymentMethodCode != "" && !strings.EqualFold(offer.PaymentMethodCode, ec.payment) {
		return false
	}
	return ec.openNow(ctx, offer.OfferKey)
}

// openNow checks the offer's opening-hours window when one is configured.
// A window that cannot be parsed counts as open.
func (ec eligibilityContext) openNow(ctx context.Context, offerKey string) bool {
	if len(ec.locations) == 0 {
		return true
	}
	window, ok := ec.locations[offerKey]
	if !ok {
		return true
	}
	if !window.Operating {
		return false
	}
	if ec.clock == "" || window.OpenTime == "" || window.CloseTime == "" {
		return true
	}

	now, err := pure_utils.ParseClockMinutes(ec.clock)
	if err != nil {
		logBadClock(ctx, offerKey, ec.clock)
		return true
	}
	open, err := pure_utils.ParseClockMinutes(window.OpenTime)
	if err != nil {
		logBadClock(ctx, offerKey, window.OpenTime)
		return true
	}
	closeAt, err := pure_utils.ParseClockMinutes(window.CloseTime)
	if err != nil {
		logBadClock(ctx, offerKey, window.CloseTime)
		return true
	}
	return pure_utils.InClockWindow(now, open, closeAt)
}

func logBadClock(ctx context.Context, offerKey, value string) {
	utils.LoggerFromContext(ctx).WarnContext(ctx, "opening hours value is malformed, treating offer as open",
		slog.String("offer", offerKey), slog.String("value", value))
}
