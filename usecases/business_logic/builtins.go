package business_logic

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/feature_access"
	"github.com/engagekit/engage-backend/usecases/value_calc"
)

// valueCalcFunc evaluates the bundle-value formula on numeric parameters
// passed directly in the call, mirroring the dynamically configured variant.
// Every coefficient defaults to 1 so a partial parameter set still resolves.
func valueCalcFunc(ctx context.Context, params map[string]any) (map[string]any, error) {
	copCar := feature_access.Float(ctx, params, "copcar", value_calc.CopCarDefault)

	coeffs := value_calc.DefaultCoefficients()
	coeffs.ValueMultiplier = feature_access.Float(ctx, params, "value_multiplier", 1)
	coeffs.CopCarMultiplier = feature_access.Float(ctx, params, "copcar_multiplier", 1)
	coeffs.AlphaMultiplier = feature_access.Float(ctx, params, "alpha_multiplier", 1)
	coeffs.PropensityMultiplier = feature_access.Float(ctx, params, "propensity_multiplier", 1)

	res := value_calc.Compute(ctx, coeffs, value_calc.Inputs{
		Offer: models.OfferCandidate{
			CopCarFieldName: "copcar",
			Alpha:           feature_access.Float(ctx, params, "alpha", 1),
		},
		Features:   map[string]any{"copcar": copCar},
		Propensity: feature_access.Float(ctx, params, "propensity", 1),
		OfferValue: feature_access.Float(ctx, params, "value", 0),
	})

	return map[string]any{
		"bundle_value": res.BundleValue,
		"final_value":  res.FinalValue,
	}, nil
}

// offerGroupsFunc buckets offer rows by a named field, for configurations
// that reward whole offer groups rather than single offers.
func offerGroupsFunc(ctx context.Context, params map[string]any) (map[string]any, error) {
	groupBy := feature_access.String(ctx, params, "group_by", "offer_type")

	rows, ok := params["offers"].([]map[string]any)
	if !ok {
		if anyRows, isSlice := params["offers"].([]any); isSlice {
			rows = make([]map[string]any, 0, len(anyRows))
			for _, r := range anyRows {
				if m, isMap := r.(map[string]any); isMap {
					rows = append(rows, m)
				}
			}
		}
	}

	groups := make(map[string][]map[string]any)
	for _, row := range rows {
		key := feature_access.String(ctx, row, groupBy, "")
		groups[key] = append(groups[key], row)
	}
	return map[string]any{"groups": groups, "group_count": len(groups)}, nil
}

// doWorkFunc applies a scalar multiplier to a value: the minimal
// configurable transformation hook.
func doWorkFunc(ctx context.Context, params map[string]any) (map[string]any, error) {
	value := feature_access.Float(ctx, params, "value", 0)
	factor := feature_access.Float(ctx, params, "factor", 1)
	return map[string]any{"result": value * factor}, nil
}

// doUpdateFunc merges the "updates" map over the "record" map and returns
// the merged record.
func doUpdateFunc(ctx context.Context, params map[string]any) (map[string]any, error) {
	record, _ := params["record"].(map[string]any)
	updates, _ := params["updates"].(map[string]any)

	merged := make(map[string]any, len(record)+len(updates))
	for k, v := range record {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}
	return map[string]any{"record": merged}, nil
}

const apiCallAttempts = 3

// apiFunc posts the parameters to the configured URL and decodes the JSON
// response. This is the single suspension point of the engine; latency is
// bounded by the injected client's timeout, transient failures are retried.
func apiFunc(client *http.Client) Func {
	return func(ctx context.Context, params map[string]any) (map[string]any, error) {
		url, ok := params["url"].(string)
		if !ok || url == "" {
			return nil, errors.New("api business logic call requires a url parameter")
		}

		body, err := json.Marshal(params)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling api business logic payload")
		}

		var out map[string]any
		err = retry.Do(func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= http.StatusInternalServerError {
				return errors.Newf("api business logic call returned status %d", resp.StatusCode)
			}
			if resp.StatusCode >= http.StatusBadRequest {
				return retry.Unrecoverable(
					errors.Newf("api business logic call returned status %d", resp.StatusCode))
			}
			return json.NewDecoder(resp.Body).Decode(&out)
		},
			retry.Attempts(apiCallAttempts),
			retry.Context(ctx),
			retry.LastErrorOnly(true),
		)
		if err != nil {
			return nil, errors.Wrap(err, "calling api business logic endpoint")
		}
		return out, nil
	}
}
