package business_logic

import (
	"context"
	"net/http"
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"

	"github.com/engagekit/engage-backend/models"
)

func TestInvokeUnknownFunction(t *testing.T) {
	r := NewRegistry(nil)

	_, err := r.Invoke(context.Background(), "does_not_exist", nil)
	assert.ErrorIs(t, err, models.ErrUnknownBusinessFunction)
}

func TestValueCalcFunc(t *testing.T) {
	r := NewRegistry(nil)

	out, err := r.Invoke(context.Background(), "value_calc", map[string]any{
		"value":      100.0,
		"copcar":     10.0,
		"alpha":      2.0,
		"propensity": 0.5,
	})
	assert.NoError(t, err)
	assert.Equal(t, 180.0, out["bundle_value"])
	assert.Equal(t, 90.0, out["final_value"])
}

func TestValueCalcFuncDefaults(t *testing.T) {
	r := NewRegistry(nil)

	// Missing copcar takes the penalty sentinel 999.
	out, err := r.Invoke(context.Background(), "value_calc", map[string]any{
		"value": 100.0,
	})
	assert.NoError(t, err)
	assert.Equal(t, 100.0-999.0, out["bundle_value"])
}

func TestOfferGroupsFunc(t *testing.T) {
	r := NewRegistry(nil)

	out, err := r.Invoke(context.Background(), "offer_groups", map[string]any{
		"group_by": "offer_type",
		"offers": []map[string]any{
			{"offer_name": "Data_1GB", "offer_type": "Data"},
			{"offer_name": "Data_20GB", "offer_type": "Data"},
			{"offer_name": "Voice_60", "offer_type": "Voice"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, out["group_count"])

	groups := out["groups"].(map[string][]map[string]any)
	assert.Len(t, groups["Data"], 2)
	assert.Len(t, groups["Voice"], 1)
}

func TestDoWorkAndDoUpdate(t *testing.T) {
	r := NewRegistry(nil)

	out, err := r.Invoke(context.Background(), "dowork", map[string]any{"value": 3.0, "factor": 4.0})
	assert.NoError(t, err)
	assert.Equal(t, 12.0, out["result"])

	out, err = r.Invoke(context.Background(), "doupdate", map[string]any{
		"record":  map[string]any{"a": 1, "b": 2},
		"updates": map[string]any{"b": 3},
	})
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": 3}, out["record"])
}

func TestApiFunc(t *testing.T) {
	defer gock.Off()
	gock.New("http://scoring.internal").
		Post("/reward").
		Reply(200).
		JSON(map[string]any{"reward": 2.5})

	client := &http.Client{}
	gock.InterceptClient(client)

	r := NewRegistry(client)
	out, err := r.Invoke(context.Background(), "api", map[string]any{
		"url":   "http://scoring.internal/reward",
		"offer": "Data_1GB",
	})
	assert.NoError(t, err)
	assert.Equal(t, 2.5, out["reward"])
	assert.True(t, gock.IsDone())
}

func TestApiFuncRetriesServerErrors(t *testing.T) {
	defer gock.Off()
	gock.New("http://scoring.internal").
		Post("/reward").
		Reply(500)
	gock.New("http://scoring.internal").
		Post("/reward").
		Reply(200).
		JSON(map[string]any{"reward": 1.0})

	client := &http.Client{}
	gock.InterceptClient(client)

	r := NewRegistry(client)
	out, err := r.Invoke(context.Background(), "api", map[string]any{
		"url": "http://scoring.internal/reward",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1.0, out["reward"])
}

func TestApiFuncMissingUrl(t *testing.T) {
	r := NewRegistry(nil)

	_, err := r.Invoke(context.Background(), "api", map[string]any{})
	assert.Error(t, err)
}
