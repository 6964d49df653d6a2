package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engagekit/engage-backend/models"
)

func TestAdaptScoringRequest(t *testing.T) {
	var params ScoringParamsDto
	require.NoError(t, json.Unmarshal([]byte(`{
		"uuid": "3f0ff4a9-4b9e-4f6b-b785-35f5dd4ab6c0",
		"in_params": {"in_balance": 200},
		"whitelist": {"whitelist": ["A", "B"], "logicin": true},
		"resultcount": 3,
		"explore": 1
	}`), &params))

	query := OfferRecommendationQuery{
		Campaign:     "camp",
		SubCampaign:  "sub",
		Customer:     "1234",
		Channel:      "app",
		NumberOffers: 1,
	}
	req := AdaptScoringRequest(query, params)

	assert.Equal(t, "3f0ff4a9-4b9e-4f6b-b785-35f5dd4ab6c0", req.UUID)
	assert.Equal(t, "camp", req.Campaign)
	assert.Equal(t, 3, req.ResultCount)
	assert.Equal(t, 1, req.Explore)
	assert.Equal(t, []string{"A", "B"}, req.Whitelist.OfferNames)
	assert.True(t, req.Whitelist.LogicIn)
	assert.Equal(t, 200.0, req.InParams["in_balance"])
}

func TestAdaptScoringRequestResultCountFromQuery(t *testing.T) {
	req := AdaptScoringRequest(OfferRecommendationQuery{NumberOffers: 5}, ScoringParamsDto{})
	assert.Equal(t, 5, req.ResultCount)
}

func TestAdaptPrediction(t *testing.T) {
	pred := AdaptPrediction(ScoringParamsDto{
		Prediction: &PredictionDto{
			Type:               "multinomial",
			Probability:        0.77,
			Label:              "Data_20GB",
			DomainsProbability: map[string]float64{"Data_20GB": 0.77},
		},
		Features: map[string]any{"x": 10.0},
	})

	assert.Equal(t, models.ModelTypeMultinomial, pred.Type)
	assert.Equal(t, 0.77, pred.Probability)
	assert.Equal(t, 10.0, pred.Features["x"])
}

func TestAdaptPredictionDefaults(t *testing.T) {
	pred := AdaptPrediction(ScoringParamsDto{})
	assert.NotNil(t, pred.Features)
	assert.Empty(t, pred.Type)
}

func TestValidateScoringParams(t *testing.T) {
	assert.NoError(t, Validate(ScoringParamsDto{}))
	assert.NoError(t, Validate(ScoringParamsDto{
		UUID:    "3f0ff4a9-4b9e-4f6b-b785-35f5dd4ab6c0",
		Explore: 1,
		Epsilon: 0.5,
	}))

	err := Validate(ScoringParamsDto{Explore: 2})
	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestValidateOfferFeedback(t *testing.T) {
	err := Validate(OfferFeedbackDto{})
	assert.ErrorIs(t, err, models.BadParameterError)

	assert.NoError(t, Validate(OfferFeedbackDto{
		UUID: "3f0ff4a9-4b9e-4f6b-b785-35f5dd4ab6c0",
	}))
}
