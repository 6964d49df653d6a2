package reward

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/business_logic"
)

func rewardsCorpora(t *testing.T, cfg models.RewardsBusinessLogic) models.CorporaSet {
	t.Helper()
	raw, err := json.Marshal(cfg)
	assert.NoError(t, err)
	return models.CorporaSet{Preload: map[string]json.RawMessage{
		models.CorpusRewardsBusinessLogic: raw,
	}}
}

func TestComputeEmptyParams(t *testing.T) {
	c := NewCalculator(business_logic.NewRegistry(nil))

	record := c.Compute(context.Background(), models.CorporaSet{}, nil)
	assert.Equal(t, models.DefaultRewardRecord(), record)
}

func TestComputeNoConfiguration(t *testing.T) {
	c := NewCalculator(business_logic.NewRegistry(nil))

	record := c.Compute(context.Background(), models.CorporaSet{},
		map[string]any{"offer": "Data_1GB"})
	assert.Equal(t, models.DefaultRewardRecord(), record)
}

func TestComputeConfiguredReward(t *testing.T) {
	c := NewCalculator(business_logic.NewRegistry(nil))
	corpora := rewardsCorpora(t, models.RewardsBusinessLogic{
		Reward: &models.BusinessFunctionRef{FunctionName: "dowork", Output: "result"},
	})

	record := c.Compute(context.Background(), corpora,
		map[string]any{"value": 3.0, "factor": 2.0})

	assert.Equal(t, 6.0, record.Reward)
	// Learning reward has no sub-config and keeps the default.
	assert.Equal(t, 1.0, record.LearningReward)
	assert.False(t, record.LearningForContacts)
	assert.True(t, record.LearningForResponses)
}

func TestComputeFailureIsolation(t *testing.T) {
	c := NewCalculator(business_logic.NewRegistry(nil))
	corpora := rewardsCorpora(t, models.RewardsBusinessLogic{
		Reward:         &models.BusinessFunctionRef{FunctionName: "no_such_function", Output: "result"},
		LearningReward: &models.BusinessFunctionRef{FunctionName: "dowork", Output: "result"},
	})

	record := c.Compute(context.Background(), corpora,
		map[string]any{"value": 5.0, "factor": 2.0})

	// The failing reward call keeps its default while learning reward still
	// resolves from its own function.
	assert.Equal(t, 1.0, record.Reward)
	assert.Equal(t, 10.0, record.LearningReward)
}

func TestComputeMissingOutputField(t *testing.T) {
	c := NewCalculator(business_logic.NewRegistry(nil))
	corpora := rewardsCorpora(t, models.RewardsBusinessLogic{
		Reward: &models.BusinessFunctionRef{FunctionName: "dowork", Output: "not_an_output"},
	})

	record := c.Compute(context.Background(), corpora,
		map[string]any{"value": 5.0})
	assert.Equal(t, 1.0, record.Reward)
}
