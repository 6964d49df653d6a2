package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/engagekit/engage-backend/api"
	"github.com/engagekit/engage-backend/api/middleware"
	"github.com/engagekit/engage-backend/usecases"
	"github.com/engagekit/engage-backend/utils"
)

func corsOption() cors.Config {
	return cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodOptions, http.MethodHead, http.MethodGet, http.MethodPut},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

func initRouter(ctx context.Context, conf AppConfiguration, uc usecases.Usecases) *gin.Engine {
	if conf.env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := utils.LoggerFromContext(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsOption()))
	r.Use(middleware.NewLogging(logger,
		middleware.WithIgnorePath([]string{"/liveness", "/metrics"})))
	r.Use(api.PrometheusMiddleware())
	r.Use(utils.StoreLoggerInContextMiddleware(logger))
	r.Use(utils.StoreOpenTelemetryTracerInContextMiddleware(conf.tracer))

	api.AddRoutes(r, uc)

	return r
}
