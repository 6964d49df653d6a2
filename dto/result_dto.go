package dto

import (
	"time"

	"github.com/guregu/null/v5"
	"github.com/samber/lo"

	"github.com/engagekit/engage-backend/models"
)

type ScoringResponseDto struct {
	UUID        string           `json:"uuid"`
	Predictor   string           `json:"predictor"`
	Cache       int              `json:"cache"`
	RequestDate time.Time        `json:"request_date"`
	Explore     int              `json:"explore"`
	FinalResult []RankedOfferDto `json:"final_result"`
}

type RankedOfferDto struct {
	Rank       int                    `json:"rank"`
	Result     models.OfferProjection `json:"result"`
	ResultFull ResultFullDto          `json:"result_full"`
}

// ResultFullDto is the diagnostic view of one selected offer, kept for
// downstream logging and history joins.
type ResultFullDto struct {
	Offer              string      `json:"offer"`
	OfferName          string      `json:"offer_name"`
	OfferNameDesc      string      `json:"offer_name_desc,omitempty"`
	Score              float64     `json:"score"`
	ModifiedOfferScore float64     `json:"modified_offer_score"`
	OfferValue         float64     `json:"offer_value"`
	OfferCost          float64     `json:"offer_cost"`
	P                  float64     `json:"p"`
	ArmReward          float64     `json:"arm_reward"`
	LearningReward     float64     `json:"learning_reward"`
	Alpha              float64     `json:"alpha"`
	Beta               float64     `json:"beta"`
	Weighting          float64     `json:"weighting"`
	Explore            int         `json:"explore"`
	UUID               string      `json:"uuid"`
	SpendLimit         null.Float  `json:"spend_limit,omitzero"`
	ContextualOne      null.String `json:"contextual_variable_one,omitzero"`
	ContextualTwo      null.String `json:"contextual_variable_two,omitzero"`

	Preferred       string  `json:"preferred,omitempty"`
	VoiceBalance    float64 `json:"voice_balance,omitempty"`
	DataBalance     float64 `json:"data_balance,omitempty"`
	DailyVoiceUsage float64 `json:"daily_voice_usage_avg,omitempty"`
	DailyDataUsage  float64 `json:"daily_data_usage_avg,omitempty"`

	ModelName  string `json:"model_name,omitempty"`
	ModelIndex int    `json:"model_index,omitempty"`

	Spam           null.String `json:"spam,omitzero"`
	SpamConfidence null.Float  `json:"spam_confidence,omitzero"`

	OfferMatrix  map[string]any     `json:"offer_matrix,omitempty"`
	OfferDetails map[string]float64 `json:"offer_details,omitempty"`
}

func AdaptRankedResult(result models.RankedResult, predictor string) ScoringResponseDto {
	return ScoringResponseDto{
		UUID:        result.UUID,
		Predictor:   predictor,
		RequestDate: time.Now().UTC(),
		Explore:     result.Explore,
		FinalResult: lo.Map(result.FinalResult, func(offer models.RankedOffer, _ int) RankedOfferDto {
			return AdaptRankedOffer(offer)
		}),
	}
}

func AdaptRankedOffer(offer models.RankedOffer) RankedOfferDto {
	full := offer.ResultFull
	return RankedOfferDto{
		Rank:   offer.Rank,
		Result: offer.Result,
		ResultFull: ResultFullDto{
			Offer:              full.Offer,
			OfferName:          full.OfferName,
			OfferNameDesc:      full.OfferNameDesc,
			Score:              full.Score,
			ModifiedOfferScore: full.ModifiedScore,
			OfferValue:         full.OfferValue,
			OfferCost:          full.OfferCost,
			P:                  full.P,
			ArmReward:          full.ArmReward,
			LearningReward:     full.LearningReward,
			Alpha:              full.Alpha,
			Beta:               full.Beta,
			Weighting:          full.Weighting,
			Explore:            full.Explore,
			UUID:               full.UUID,
			SpendLimit:         full.SpendLimit,
			ContextualOne:      full.ContextualVariableOne,
			ContextualTwo:      full.ContextualVariableTwo,
			Preferred:          full.Preferred,
			VoiceBalance:       full.VoiceBalance,
			DataBalance:        full.DataBalance,
			DailyVoiceUsage:    full.DailyVoiceUsage,
			DailyDataUsage:     full.DailyDataUsage,
			ModelName:          full.ModelName,
			ModelIndex:         full.ModelIndex,
			Spam:               full.Spam,
			SpamConfidence:     full.SpamConfidence,
			OfferMatrix:        full.OfferMatrixRow,
			OfferDetails:       full.OfferDetails,
		},
	}
}
