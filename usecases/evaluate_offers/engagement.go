package evaluate_offers

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/usecases/feature_access"
)

// engagementContext bundles the dynamic corpora plus the resolved contextual
// variables for one request.
type engagementContext struct {
	Params  models.DynamicEngagement
	Options []map[string]any
	VarOne  string
	VarTwo  string
}

// resolveEngagement loads the dynamic engagement corpora and resolves the
// two contextual variables: an explicit in_params value wins over the
// feature named by configuration, which wins over empty.
func resolveEngagement(
	ctx context.Context,
	corpora models.CorporaSet,
	inParams, features map[string]any,
) (engagementContext, error) {
	params, err := corpora.DynamicEngagement()
	if err != nil {
		return engagementContext{}, errors.Wrap(models.ErrNoDynamicEngagement, err.Error())
	}
	options, err := corpora.EngagementOptions()
	if err != nil {
		return engagementContext{}, errors.Wrap(models.ErrNoDynamicEngagement, err.Error())
	}

	return engagementContext{
		Params:  params,
		Options: options,
		VarOne:  resolveContextual(ctx, inParams, features, "contextual_variable_one", params.ContextualVariables.OneName),
		VarTwo:  resolveContextual(ctx, inParams, features, "contextual_variable_two", params.ContextualVariables.TwoName),
	}, nil
}

func resolveContextual(ctx context.Context, inParams, features map[string]any, key, featureName string) string {
	if feature_access.Has(inParams, key) {
		return feature_access.String(ctx, inParams, key, "")
	}
	if featureName != "" && feature_access.Has(features, featureName) {
		return feature_access.String(ctx, features, featureName, "")
	}
	return ""
}

// optionMatches requires the option's declared contextual variables to equal
// the resolved request values; an undeclared variable counts as empty.
func optionMatches(ctx context.Context, option map[string]any, varOne, varTwo string) bool {
	one := feature_access.String(ctx, option, "contextual_variable_one", "")
	two := feature_access.String(ctx, option, "contextual_variable_two", "")
	return one == varOne && two == varTwo
}

// optionMatchesLenient is the balance-enquiry variant: the option's declared
// value is only considered when the request resolved a non-empty value for
// that variable.
func optionMatchesLenient(ctx context.Context, option map[string]any, varOne, varTwo string) bool {
	one, two := "", ""
	if varOne != "" {
		one = feature_access.String(ctx, option, "contextual_variable_one", "")
	}
	if varTwo != "" {
		two = feature_access.String(ctx, option, "contextual_variable_two", "")
	}
	return one == varOne && two == varTwo
}

// optionContextual echoes an option's declared contextual variable for the
// result payload, empty when undeclared.
func optionContextual(ctx context.Context, option map[string]any, key string) string {
	return feature_access.String(ctx, option, key, "")
}
