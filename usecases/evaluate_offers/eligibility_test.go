package evaluate_offers

import (
	"context"
	"testing"

	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"

	"github.com/engagekit/engage-backend/models"
)

func TestIsEligibleWhitelist(t *testing.T) {
	ctx := context.Background()
	ec := eligibilityContext{
		whitelist: models.Whitelist{OfferNames: []string{"data_20gb"}},
		payment:   "p",
	}

	assert.True(t, ec.isEligible(ctx, models.OfferCandidate{OfferName: "Data_20GB"}))
	assert.False(t, ec.isEligible(ctx, models.OfferCandidate{OfferName: "Voice_60"}))
}

func TestIsEligibleCohort(t *testing.T) {
	ctx := context.Background()
	ec := eligibilityContext{cohort: "3", payment: "p"}

	assert.True(t, ec.isEligible(ctx, models.OfferCandidate{CohortId: null.StringFrom("3")}))
	assert.False(t, ec.isEligible(ctx, models.OfferCandidate{CohortId: null.StringFrom("7")}))
	// No cohort on the offer skips the check.
	assert.True(t, ec.isEligible(ctx, models.OfferCandidate{}))
}

func TestIsEligiblePaymentMethod(t *testing.T) {
	ctx := context.Background()
	ec := eligibilityContext{payment: "p"}

	assert.True(t, ec.isEligible(ctx, models.OfferCandidate{PaymentMethodCode: "P"}))
	assert.False(t, ec.isEligible(ctx, models.OfferCandidate{PaymentMethodCode: "C"}))
	assert.True(t, ec.isEligible(ctx, models.OfferCandidate{}))
}

func TestOpenNow(t *testing.T) {
	ctx := context.Background()
	locations := map[string]models.LocationWindow{
		"shop":   {Operating: true, OpenTime: "09:00 AM", CloseTime: "05:00 PM"},
		"night":  {Operating: true, OpenTime: "10:00 PM", CloseTime: "02:00 AM"},
		"closed": {Operating: false},
	}

	day := eligibilityContext{locations: locations, clock: "10:00 AM"}
	assert.True(t, day.openNow(ctx, "shop"))
	assert.False(t, day.openNow(ctx, "night"))
	assert.False(t, day.openNow(ctx, "closed"))
	// Offers without a window are always open.
	assert.True(t, day.openNow(ctx, "unlisted"))

	// Window wrapping past midnight.
	late := eligibilityContext{locations: locations, clock: "11:30 PM"}
	assert.True(t, late.openNow(ctx, "night"))
	assert.False(t, late.openNow(ctx, "shop"))

	// No request clock skips the time check but not the operating flag.
	silent := eligibilityContext{locations: locations}
	assert.True(t, silent.openNow(ctx, "shop"))
	assert.False(t, silent.openNow(ctx, "closed"))
}
