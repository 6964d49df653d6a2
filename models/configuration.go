package models

// OfferBudgetConfig enables monthly budget tracking for offers. When present,
// an offer is only selectable while its remaining spend limit is positive or
// explicitly unlimited (-1).
type OfferBudgetConfig struct {
	// SpendLimitField is the feature key carrying the remaining budget,
	// defaulting to "spend_limit".
	SpendLimitField string
}

func (c OfferBudgetConfig) Field() string {
	if c.SpendLimitField == "" {
		return "spend_limit"
	}
	return c.SpendLimitField
}

// EngineConfiguration is the static, per-deployment configuration of the
// scoring engine. It is immutable once built; per-request state lives on
// ScoringRequest and CorporaSet.
type EngineConfiguration struct {
	Strategy Strategy

	// OfferBudget enables the budget gate when non-nil.
	OfferBudget *OfferBudgetConfig

	// Epsilon is the default exploration rate when the dynamic corpora do not
	// carry one.
	Epsilon float64

	// SelectorField names the feature used by the network-router switch.
	SelectorField string

	// PredictorLabel identifies this deployment in logs and result payloads.
	PredictorLabel string
}

func (c EngineConfiguration) BudgetEnabled() bool {
	return c.OfferBudget != nil
}
