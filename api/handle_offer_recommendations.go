package api

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/engagekit/engage-backend/dto"
	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases"
	"github.com/engagekit/engage-backend/usecases/evaluate_offers"
	"github.com/engagekit/engage-backend/utils"
)

func handleGetOfferRecommendations(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var query dto.OfferRecommendationQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		var params dto.ScoringParamsDto
		if query.Params != "" {
			if err := json.Unmarshal([]byte(query.Params), &params); err != nil {
				presentError(ctx, c, errors.Wrap(models.BadParameterError,
					"params is not a valid json document: "+err.Error()))
				return
			}
		}
		if err := dto.Validate(params); presentError(ctx, c, err) {
			return
		}
		if params.UUID != "" {
			if err := utils.ValidateUuid(params.UUID); presentError(ctx, c, err) {
				return
			}
		}

		corpora, err := uc.Repositories.Corpora.LoadCorpora(ctx)
		if presentError(ctx, c, err) {
			return
		}
		matrix, err := uc.Repositories.Corpora.LoadOfferMatrix(ctx)
		if presentError(ctx, c, err) {
			return
		}

		result, err := uc.NewEvaluator().ScoreOffers(ctx, evaluate_offers.ScoringParameters{
			Request:    dto.AdaptScoringRequest(query, params),
			Prediction: dto.AdaptPrediction(params),
			Matrix:     matrix,
			Corpora:    corpora,
		})
		if presentError(ctx, c, err) {
			return
		}

		strategy := uc.Config.Strategy.String()
		recommendationsTotal.WithLabelValues(strategy).Inc()
		offersSelected.WithLabelValues(strategy).Observe(float64(len(result.FinalResult)))

		c.JSON(http.StatusOK, dto.AdaptRankedResult(result, uc.Config.PredictorLabel))
	}
}

func handlePutOfferRecommendations(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.OfferFeedbackDto
		if err := c.ShouldBindBodyWithJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		if err := dto.Validate(body); presentError(ctx, c, err) {
			return
		}

		corpora, err := uc.Repositories.Corpora.LoadCorpora(ctx)
		if presentError(ctx, c, err) {
			return
		}

		record := uc.NewRewardCalculator().Compute(ctx, corpora, body.Params)

		c.JSON(http.StatusOK, dto.AdaptRewardAck(body.UUID, record))
	}
}
