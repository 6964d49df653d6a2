package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/engagekit/engage-backend/api"
	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/repositories"
	"github.com/engagekit/engage-backend/usecases"
	"github.com/engagekit/engage-backend/utils"
)

type AppConfiguration struct {
	env         string
	port        string
	corporaFile string

	config models.EngineConfiguration
	tracer trace.Tracer
}

func loadConfiguration() AppConfiguration {
	conf := AppConfiguration{
		env:         utils.GetStringEnv("ENV", "development"),
		port:        utils.GetStringEnv("PORT", "8080"),
		corporaFile: utils.GetRequiredStringEnv("CORPORA_FILE"),
		config: models.EngineConfiguration{
			Strategy:       models.StrategyFrom(utils.GetStringEnv("SCORING_STRATEGY", "basic")),
			Epsilon:        utils.GetFloatEnv("EPSILON", 0),
			SelectorField:  utils.GetStringEnv("SELECTOR_FIELD", ""),
			PredictorLabel: utils.GetStringEnv("PREDICTOR_LABEL", "engage-backend"),
		},
	}
	if utils.GetBoolEnv("OFFER_BUDGET_ENABLED", false) {
		conf.config.OfferBudget = &models.OfferBudgetConfig{
			SpendLimitField: utils.GetStringEnv("SPEND_LIMIT_FIELD", ""),
		}
	}
	return conf
}

func main() {
	conf := loadConfiguration()

	logger := utils.NewLogger(utils.GetStringEnv("LOG_FORMAT", "text"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	tracerProvider := sdktrace.NewTracerProvider()
	conf.tracer = tracerProvider.Tracer("engage-backend")

	uc := usecases.Usecases{
		Repositories: repositories.NewRepositories(conf.corporaFile),
		Config:       conf.config,
		HttpClient:   &http.Client{Timeout: 10 * time.Second},
	}

	router := initRouter(ctx, conf, uc)
	server := api.NewServer(router, conf.port)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server",
			slog.String("port", conf.port),
			slog.String("strategy", conf.config.Strategy.String()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "error serving the app: "+err.Error())
		}
	}()

	<-notify.Done()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(ctx, "error shutting down the server: "+err.Error())
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(ctx, "error shutting down the tracer provider: "+err.Error())
	}
}
