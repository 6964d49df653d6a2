package models

import "github.com/guregu/null/v5"

// ScoredOffer is one candidate after scoring: ephemeral, created fresh per
// request and never persisted by this engine.
type ScoredOffer struct {
	Offer         string
	OfferName     string
	OfferNameDesc string

	// Score is the raw model/arm value; ModifiedScore incorporates monetary
	// value and business-rule multipliers and is the usual sort key.
	Score         float64
	ModifiedScore float64
	OfferValue    float64
	OfferCost     float64

	P              float64
	ArmReward      float64
	LearningReward float64
	Alpha          float64
	Beta           float64
	Weighting      float64
	Explore        int
	UUID           string

	// SpendLimit is the remaining budget for the offer when budget tracking
	// is enabled; -1 means unlimited.
	SpendLimit null.Float

	ContextualVariableOne null.String
	ContextualVariableTwo null.String

	// Balance-enquiry diagnostics.
	Preferred         string
	VoiceBalance      float64
	DataBalance       float64
	DailyVoiceUsage   float64
	DailyDataUsage    float64

	// Multi-model bookkeeping; the selected model is logged with the result.
	ModelName  string
	ModelIndex int

	// Dynamic engagement diagnostics, -1 when the option does not carry them.
	ExpectedTakeup   float64
	Propensity       float64
	EpsilonNominated float64

	// Spam classification.
	Spam           null.String
	SpamConfidence null.Float

	// OfferMatrixRow echoes the matrix row (or synthesized default) used.
	OfferMatrixRow map[string]any
	// OfferDetails carries the per-label probabilities for debugging.
	OfferDetails map[string]float64

	// Routing passthroughs (network strategy).
	Selector     map[string]any
	PassoverUUID string
}

// OfferProjection is the `result` subset of a selected offer: the fields
// downstream logging and history joins rely on.
type OfferProjection struct {
	Score                 float64     `json:"score"`
	FinalScore            float64     `json:"final_score"`
	Offer                 string      `json:"offer"`
	OfferName             string      `json:"offer_name"`
	ModifiedOfferScore    float64     `json:"modified_offer_score"`
	OfferValue            float64     `json:"offer_value"`
	ArmReward             float64     `json:"arm_reward"`
	UUID                  string      `json:"uuid"`
	ContextualVariableOne null.String `json:"contextual_variable_one,omitzero"`
	ContextualVariableTwo null.String `json:"contextual_variable_two,omitzero"`
}

// RankedOffer wraps one selected offer with its 1-based rank.
type RankedOffer struct {
	Rank       int
	Result     OfferProjection
	ResultFull ScoredOffer
}

// RankedResult is the final outcome of one scoring request.
type RankedResult struct {
	UUID        string
	Explore     int
	FinalResult []RankedOffer
}

// Project builds the logged subset of a scored offer.
func (s ScoredOffer) Project() OfferProjection {
	return OfferProjection{
		Score:                 s.Score,
		FinalScore:            s.Score,
		Offer:                 s.Offer,
		OfferName:             s.OfferName,
		ModifiedOfferScore:    s.ModifiedScore,
		OfferValue:            s.OfferValue,
		ArmReward:             s.ArmReward,
		UUID:                  s.UUID,
		ContextualVariableOne: s.ContextualVariableOne,
		ContextualVariableTwo: s.ContextualVariableTwo,
	}
}
