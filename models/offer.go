package models

import (
	"strings"

	"github.com/guregu/null/v5"

	"github.com/engagekit/engage-backend/pure_utils"
)

// OfferCandidate is one row of the offer matrix: the pricing and rule
// metadata for one offer that can be recommended.
type OfferCandidate struct {
	OfferKey          string
	OfferName         string
	Price             float64
	Cost              float64
	CopCarFieldName   string
	Alpha             float64
	OfferType         string
	PaymentMethodCode string
	// WhitelistOnly gates the balance rules: "y" (the default) requires an
	// active whitelist before the offer can be selected, "n" always allows
	// rule evaluation.
	WhitelistOnly string
	CohortId      null.String
	OfferWeight   float64
	// MonthlyBudget caps spend for this offer; absent means uncapped.
	MonthlyBudget null.Float

	// Raw keeps the original matrix row for result_full passthrough and for
	// value-calc offer_matrix_lookup parameters.
	Raw map[string]any
}

// Synthesized carries the leniency policy of ParseOfferCandidate: an option
// key that is absent from the matrix gets a default row instead of being
// dropped.
func (o OfferCandidate) Synthesized() bool {
	return o.Raw == nil
}

// OfferMatrix indexes candidates by offer key, preserving matrix order.
type OfferMatrix struct {
	Offers []OfferCandidate
	byKey  map[string]int
}

func NewOfferMatrix(offers []OfferCandidate) OfferMatrix {
	byKey := make(map[string]int, len(offers))
	for i, offer := range offers {
		byKey[offer.OfferKey] = i
	}
	return OfferMatrix{Offers: offers, byKey: byKey}
}

func (m OfferMatrix) Get(key string) (OfferCandidate, bool) {
	i, ok := m.byKey[key]
	if !ok {
		return OfferCandidate{}, false
	}
	return m.Offers[i], true
}

// DefaultOfferCandidate synthesizes the matrix row used when an engagement
// option has no matching offer in the matrix: price=1, cost=1, weight=1.
func DefaultOfferCandidate(key string) OfferCandidate {
	return OfferCandidate{
		OfferKey:      key,
		OfferName:     key,
		Price:         1.0,
		Cost:          1.0,
		OfferWeight:   1.0,
		WhitelistOnly: "y",
	}
}

// ParseOfferCandidate builds a candidate from a raw matrix row, resolving the
// field aliases of the compatibility surface: offer_name_final|offer_id|
// offer|offer_name, price|offer_price and cost|offer_cost.
func ParseOfferCandidate(row map[string]any) OfferCandidate {
	offer := OfferCandidate{
		Cost:          1.0,
		WhitelistOnly: "y",
		Raw:           row,
	}

	for _, key := range []string{"offer_name", "offer", "offer_id", "offer_name_final"} {
		if s, ok := stringField(row, key); ok {
			offer.OfferKey = s
		}
	}
	offer.OfferName = offer.OfferKey
	if s, ok := stringField(row, "offer_name_final"); ok {
		offer.OfferName = s
	}

	if v, ok := floatField(row, "offer_price"); ok {
		offer.Price = v
	}
	if v, ok := floatField(row, "price"); ok {
		offer.Price = v
	}
	if v, ok := floatField(row, "offer_cost"); ok {
		offer.Cost = v
	}
	if v, ok := floatField(row, "cost"); ok {
		offer.Cost = v
	}
	if s, ok := stringField(row, "cop_car"); ok {
		offer.CopCarFieldName = strings.ToLower(s)
	}
	if v, ok := floatField(row, "alpha"); ok {
		offer.Alpha = v
	}
	if s, ok := stringField(row, "offer_type"); ok {
		offer.OfferType = s
	}
	if s, ok := stringField(row, "payment_method_code"); ok {
		offer.PaymentMethodCode = s
	}
	if s, ok := stringField(row, "whitelist_only_yn"); ok {
		offer.WhitelistOnly = s
	}
	if s, ok := stringField(row, "cohort_id"); ok {
		offer.CohortId = null.StringFrom(s)
	}
	if v, ok := floatField(row, "offer_weight"); ok {
		offer.OfferWeight = v
	}
	if v, ok := floatField(row, "monthly_budget"); ok {
		offer.MonthlyBudget = null.FloatFrom(v)
	}
	return offer
}

func ParseOfferMatrix(rows []map[string]any) OfferMatrix {
	return NewOfferMatrix(pure_utils.Map(rows, ParseOfferCandidate))
}

func stringField(row map[string]any, key string) (string, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func floatField(row map[string]any, key string) (float64, bool) {
	v, ok := row[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
