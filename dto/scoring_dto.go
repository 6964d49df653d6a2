package dto

import (
	"github.com/engagekit/engage-backend/models"
)

// OfferRecommendationQuery is the query-string surface of the recommendation
// endpoint. Params carries a JSON document with the per-request scoring
// context (ScoringParamsDto).
type OfferRecommendationQuery struct {
	Campaign     string `form:"campaign"`
	SubCampaign  string `form:"subcampaign"`
	Customer     string `form:"customer"`
	Channel      string `form:"channel"`
	NumberOffers int    `form:"numberoffers"`
	UserId       string `form:"userid"`
	Params       string `form:"params"`
}

type WhitelistDto struct {
	Whitelist []string `json:"whitelist"`
	LogicIn   bool     `json:"logicin"`
}

// ScoringParamsDto is the decoded params document. Field names are part of
// the compatibility surface with existing callers.
type ScoringParamsDto struct {
	UUID        string         `json:"uuid"`
	InParams    map[string]any `json:"in_params"`
	Whitelist   WhitelistDto   `json:"whitelist"`
	ResultCount int            `json:"resultcount" validate:"gte=0"`
	Explore     int            `json:"explore" validate:"oneof=0 1"`
	Epsilon     float64        `json:"epsilon" validate:"gte=0,lte=1"`

	// Prediction and Features carry the upstream model output and the feature
	// snapshot resolved by the caller's lookup.
	Prediction *PredictionDto `json:"prediction"`
	Features   map[string]any `json:"features"`

	ApiParams map[string]any `json:"api_params"`
}

type PredictionDto struct {
	Type               string             `json:"type"`
	Probability        float64            `json:"probability"`
	Label              string             `json:"label"`
	Response           string             `json:"response"`
	Value              float64            `json:"value"`
	Cluster            string             `json:"cluster"`
	DomainsProbability map[string]float64 `json:"domains_probability"`
}

func AdaptScoringRequest(query OfferRecommendationQuery, params ScoringParamsDto) models.ScoringRequest {
	resultCount := params.ResultCount
	if resultCount == 0 {
		resultCount = query.NumberOffers
	}
	return models.ScoringRequest{
		UUID:        params.UUID,
		Campaign:    query.Campaign,
		SubCampaign: query.SubCampaign,
		Customer:    query.Customer,
		Channel:     query.Channel,
		UserId:      query.UserId,
		InParams:    params.InParams,
		ResultCount: resultCount,
		Explore:     params.Explore,
		Epsilon:     params.Epsilon,
		Whitelist: models.Whitelist{
			OfferNames: params.Whitelist.Whitelist,
			LogicIn:    params.Whitelist.LogicIn,
		},
		ApiParams: params.ApiParams,
	}
}

func AdaptPrediction(params ScoringParamsDto) models.PredictionResult {
	features := params.Features
	if features == nil {
		features = map[string]any{}
	}
	pred := models.PredictionResult{Features: features}
	if params.Prediction == nil {
		return pred
	}
	p := *params.Prediction
	pred.Type = models.ModelType(p.Type)
	pred.Probability = p.Probability
	pred.Label = p.Label
	pred.Response = p.Response
	pred.Value = p.Value
	pred.Cluster = p.Cluster
	pred.DomainsProbability = p.DomainsProbability
	return pred
}
