package cohort

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/engagekit/engage-backend/models"
)

func corporaWith(t *testing.T, assignments map[string]string, configs []models.CohortConfig) models.CorporaSet {
	t.Helper()
	msisdn, err := json.Marshal(map[string]any{"data": assignments})
	assert.NoError(t, err)
	ident, err := json.Marshal(map[string]any{"data": configs})
	assert.NoError(t, err)
	return models.CorporaSet{
		Preload: map[string]json.RawMessage{
			models.CorpusMsisdnCohort:         msisdn,
			models.CorpusCohortIdentification: ident,
		},
	}
}

func fixedResolver(hour, minute int) *Resolver {
	r := NewResolver()
	r.Now = func() time.Time {
		return time.Date(2026, 3, 10, hour, minute, 0, 0, r.location)
	}
	return r
}

func TestResolveFeatureWins(t *testing.T) {
	r := fixedResolver(10, 0)
	corpora := corporaWith(t, map[string]string{"27820000001": "3"}, nil)

	cohort := r.Resolve(context.Background(), corpora, map[string]any{"cohort_id": "7"}, "27820000001")
	assert.Equal(t, "7", cohort)
}

func TestResolveAssignedActive(t *testing.T) {
	r := fixedResolver(10, 0)
	corpora := corporaWith(t, map[string]string{"27820000001": "3"}, []models.CohortConfig{
		{CohortId: "3", Active: true, StartTime: "09:00 AM", EndTime: "05:00 PM"},
	})

	cohort := r.Resolve(context.Background(), corpora, map[string]any{}, "27820000001")
	assert.Equal(t, "3", cohort)
}

func TestResolveOutsideWindow(t *testing.T) {
	r := fixedResolver(20, 0)
	corpora := corporaWith(t, map[string]string{"27820000001": "3"}, []models.CohortConfig{
		{CohortId: "3", Active: true, StartTime: "09:00 AM", EndTime: "05:00 PM"},
	})

	cohort := r.Resolve(context.Background(), corpora, map[string]any{}, "27820000001")
	assert.Equal(t, DefaultCohort, cohort)
}

func TestResolveWindowWrapsMidnight(t *testing.T) {
	corpora := corporaWith(t, map[string]string{"27820000001": "3"}, []models.CohortConfig{
		{CohortId: "3", Active: true, StartTime: "10:00 PM", EndTime: "02:00 AM"},
	})

	cohort := fixedResolver(23, 30).Resolve(context.Background(), corpora, map[string]any{}, "27820000001")
	assert.Equal(t, "3", cohort)

	cohort = fixedResolver(12, 0).Resolve(context.Background(), corpora, map[string]any{}, "27820000001")
	assert.Equal(t, DefaultCohort, cohort)
}

func TestResolveInactive(t *testing.T) {
	r := fixedResolver(10, 0)
	corpora := corporaWith(t, map[string]string{"27820000001": "3"}, []models.CohortConfig{
		{CohortId: "3", Active: false},
	})

	cohort := r.Resolve(context.Background(), corpora, map[string]any{}, "27820000001")
	assert.Equal(t, DefaultCohort, cohort)
}

func TestResolveNoAssignment(t *testing.T) {
	r := fixedResolver(10, 0)
	corpora := corporaWith(t, map[string]string{}, nil)

	cohort := r.Resolve(context.Background(), corpora, map[string]any{}, "27820000001")
	assert.Equal(t, DefaultCohort, cohort)
}
