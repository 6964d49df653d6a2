package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engagekit/engage-backend/models"
)

const corporaFixture = `{
	"preload_corpora": {
		"cohort_identification": {"data": [
			{"cohort_id": "3", "active": true, "start_time": "08:00 AM", "end_time": "10:00 PM"}
		]},
		"locations": {"data": {"shop": {"operating": true, "open_time": "09:00 AM", "close_time": "05:00 PM"}}}
	},
	"dynamic_corpora": {
		"dynamic_engagement": {"data": {
			"contextual_variables": {},
			"randomisation": {"approach": "epsilonGreedy", "epsilon": 0.2}
		}}
	},
	"offer_matrix": [
		{"offer_name": "A", "price": 100.0, "offer_weight": 2.0},
		{"offer_id": "B", "offer_price": 50.0}
	]
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "properties.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCorpora(t *testing.T) {
	repo := NewCorporaFileRepository(writeFixture(t, corporaFixture))

	corpora, err := repo.LoadCorpora(context.Background())
	require.NoError(t, err)

	assert.True(t, corpora.HasPreload(models.CorpusCohortIdentification))
	assert.True(t, corpora.HasPreload(models.CorpusLocations))

	configs, err := corpora.CohortConfigs()
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "3", configs[0].CohortId)

	eng, err := corpora.DynamicEngagement()
	require.NoError(t, err)
	assert.Equal(t, "epsilonGreedy", eng.Randomisation.Approach)
	assert.Equal(t, 0.2, eng.Randomisation.Epsilon)
}

func TestLoadOfferMatrix(t *testing.T) {
	repo := NewCorporaFileRepository(writeFixture(t, corporaFixture))

	matrix, err := repo.LoadOfferMatrix(context.Background())
	require.NoError(t, err)
	require.Len(t, matrix.Offers, 2)

	a, ok := matrix.Get("A")
	require.True(t, ok)
	assert.Equal(t, 100.0, a.Price)
	assert.Equal(t, 2.0, a.OfferWeight)

	b, ok := matrix.Get("B")
	require.True(t, ok)
	assert.Equal(t, 50.0, b.Price)
}

func TestLoadOfferMatrixAbsentSection(t *testing.T) {
	repo := NewCorporaFileRepository(writeFixture(t, `{"preload_corpora": {}}`))

	matrix, err := repo.LoadOfferMatrix(context.Background())
	require.NoError(t, err)
	assert.Empty(t, matrix.Offers)
}

func TestLoadCorporaMissingFile(t *testing.T) {
	repo := NewCorporaFileRepository(filepath.Join(t.TempDir(), "absent.json"))

	_, err := repo.LoadCorpora(context.Background())
	assert.ErrorIs(t, err, models.NotFoundError)
}

func TestLoadCorporaInvalidJson(t *testing.T) {
	repo := NewCorporaFileRepository(writeFixture(t, `{"preload_corpora": `))

	_, err := repo.LoadCorpora(context.Background())
	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestLoadOfferMatrixWrongShape(t *testing.T) {
	repo := NewCorporaFileRepository(writeFixture(t, `{"offer_matrix": {"not": "an array"}}`))

	_, err := repo.LoadOfferMatrix(context.Background())
	assert.ErrorIs(t, err, models.BadParameterError)
}
