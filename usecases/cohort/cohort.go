// Package cohort resolves the customer segment used to gate offers to an
// active experiment window.
package cohort

import (
	"context"
	"log/slog"
	"time"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/pure_utils"
	"github.com/engagekit/engage-backend/usecases/feature_access"
	"github.com/engagekit/engage-backend/utils"
)

// DefaultCohort is the neutral segment assigned when no cohort applies.
const DefaultCohort = "0"

// Experiment windows run on local wall clock at the operator's site.
const timezoneName = "Africa/Johannesburg"

type Resolver struct {
	location *time.Location

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewResolver() *Resolver {
	loc, err := time.LoadLocation(timezoneName)
	if err != nil {
		loc = time.UTC
	}
	return &Resolver{location: loc, Now: time.Now}
}

// Resolve determines the customer's effective cohort:
//  1. an explicit cohort_id in the feature snapshot wins;
//  2. else the customer's entry in the msisdn cohort table, but only while
//     that cohort's configured experiment window is active;
//  3. else DefaultCohort.
//
// An inactive cohort or one outside its time-of-day window is forced back to
// DefaultCohort.
func (r *Resolver) Resolve(
	ctx context.Context,
	corpora models.CorporaSet,
	features map[string]any,
	customer string,
) string {
	if cohort := feature_access.String(ctx, features, "cohort_id", ""); cohort != "" {
		return cohort
	}

	assignments, err := corpora.MsisdnCohorts()
	if err != nil {
		return DefaultCohort
	}
	assigned, ok := assignments[customer]
	if !ok || assigned == "" {
		return DefaultCohort
	}

	configs, err := corpora.CohortConfigs()
	if err != nil {
		// An assignment without window configuration stays valid.
		return assigned
	}
	byId := pure_utils.MapSliceToMap(configs, func(cfg models.CohortConfig) (string, models.CohortConfig) {
		return cfg.CohortId, cfg
	})
	cfg, ok := byId[assigned]
	if !ok {
		return assigned
	}
	if !cfg.Active || !r.windowOpen(ctx, cfg) {
		return DefaultCohort
	}
	return assigned
}

func (r *Resolver) windowOpen(ctx context.Context, cfg models.CohortConfig) bool {
	if cfg.StartTime == "" || cfg.EndTime == "" {
		return true
	}
	start, err := pure_utils.ParseClockMinutes(cfg.StartTime)
	if err != nil {
		logBadWindow(ctx, cfg.CohortId, cfg.StartTime)
		return true
	}
	end, err := pure_utils.ParseClockMinutes(cfg.EndTime)
	if err != nil {
		logBadWindow(ctx, cfg.CohortId, cfg.EndTime)
		return true
	}
	now := r.Now().In(r.location)
	return pure_utils.InClockWindow(now.Hour()*60+now.Minute(), start, end)
}

func logBadWindow(ctx context.Context, cohortId, value string) {
	utils.LoggerFromContext(ctx).WarnContext(ctx, "cohort window time is malformed, treating window as open",
		slog.String("cohort_id", cohortId), slog.String("value", value))
}
