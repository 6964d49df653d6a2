package api

import (
	"github.com/gin-gonic/gin"

	"github.com/engagekit/engage-backend/usecases"
)

func AddRoutes(r *gin.Engine, uc usecases.Usecases) {
	r.GET("/liveness", HandleLivenessProbe)
	r.GET("/metrics", HandleMetrics())

	r.GET("/invocations/offerRecommendations", handleGetOfferRecommendations(uc))
	r.PUT("/invocations/offerRecommendations", handlePutOfferRecommendations(uc))
}
