// Package evaluate_offers is the scoring pipeline: per-offer eligibility,
// scoring, ranking and explore/exploit selection over one offer matrix,
// parameterized by the configured strategy.
package evaluate_offers

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/business_logic"
	"github.com/engagekit/engage-backend/usecases/cohort"
	"github.com/engagekit/engage-backend/utils"
)

// ScoringParameters carries everything one evaluation needs. All inputs are
// read-only; the evaluator never caches them across requests.
type ScoringParameters struct {
	Request    models.ScoringRequest
	Prediction models.PredictionResult
	Matrix     models.OfferMatrix
	Corpora    models.CorporaSet
}

type Evaluator struct {
	config   models.EngineConfiguration
	cohorts  *cohort.Resolver
	registry *business_logic.Registry

	// NewRand builds the per-request randomness source. Swappable in tests
	// for deterministic explore sampling.
	NewRand func() *rand.Rand
}

func NewEvaluator(
	config models.EngineConfiguration,
	cohorts *cohort.Resolver,
	registry *business_logic.Registry,
) *Evaluator {
	return &Evaluator{
		config:   config,
		cohorts:  cohorts,
		registry: registry,
		NewRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// ScoreOffers runs the full pipeline for one request. The caller always gets
// a well formed result: strategy failures degrade to an empty offer list with
// a logged warning, and only a panic surfaces as an error.
func (e *Evaluator) ScoreOffers(ctx context.Context, params ScoringParameters) (result models.RankedResult, err error) {
	logger := utils.LoggerFromContext(ctx)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "recovered from panic during offer evaluation",
				slog.Any("recover", r))
			result = models.RankedResult{}
			err = models.ErrPanicInOfferEvaluation
		}
	}()

	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "evaluate_offers.ScoreOffers",
		trace.WithAttributes(
			attribute.String("strategy", e.config.Strategy.String()),
			attribute.String("campaign", params.Request.Campaign),
		))
	defer span.End()

	req := params.Request
	if req.UUID == "" {
		req.UUID = utils.NewPrimaryKey()
	}
	if req.ResultCount < 1 {
		req.ResultCount = 1
	}
	if !req.Whitelist.Empty() {
		// A whitelist forces one result slot per listed offer.
		req.ResultCount = len(req.Whitelist.OfferNames)
	}

	rng := e.NewRand()

	var scored []models.ScoredOffer
	var sortKey string
	var strategyErr error
	switch e.config.Strategy {
	case models.StrategyBasic:
		scored, sortKey, strategyErr = e.scoreBasic(ctx, &req, params)
	case models.StrategyOfferMatrix:
		scored, sortKey, strategyErr = e.scoreOfferMatrix(ctx, &req, params)
	case models.StrategyBalanceEnquiry:
		scored, sortKey, strategyErr = e.scoreBalanceEnquiry(ctx, &req, params)
	case models.StrategyDynamicEngagement:
		scored, sortKey, strategyErr = e.scoreDynamicEngagement(ctx, rng, &req, params)
	case models.StrategyDynamicEngagementProduct:
		scored, sortKey, strategyErr = e.scoreDynamicEngagementProduct(ctx, rng, &req, params)
	case models.StrategyRecommenderMulti:
		scored, sortKey, strategyErr = e.scoreRecommenderMulti(ctx, &req, params)
	case models.StrategyNetworkRouter:
		scored, sortKey, strategyErr = e.scoreNetworkRouter(ctx, &req, params)
	case models.StrategySpam:
		scored, sortKey, strategyErr = e.scoreSpam(ctx, &req, params)
	default:
		strategyErr = errors.Wrap(models.ErrUnknownStrategy, e.config.Strategy.String())
	}
	if strategyErr != nil {
		logger.WarnContext(ctx, "offer evaluation produced no candidates",
			slog.String("uuid", req.UUID),
			slog.String("strategy", e.config.Strategy.String()),
			slog.String("error", strategyErr.Error()))
		return models.RankedResult{UUID: req.UUID, Explore: req.Explore}, nil
	}

	sortOffersDesc(scored, sortKey)

	final := e.selectOffers(rng, scored, req.ResultCount, req.Explore)

	logger.InfoContext(ctx, "offer evaluation complete",
		slog.String("uuid", req.UUID),
		slog.String("strategy", e.config.Strategy.String()),
		slog.Int("candidates", len(scored)),
		slog.Int("selected", len(final)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	return models.RankedResult{
		UUID:        req.UUID,
		Explore:     req.Explore,
		FinalResult: final,
	}, nil
}
