// Package usecases wires the scoring engine's use cases to their
// dependencies. Handlers build the use case they need per request; the
// constructors here are cheap.
package usecases

import (
	"net/http"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/repositories"
	"github.com/engagekit/engage-backend/usecases/business_logic"
	"github.com/engagekit/engage-backend/usecases/cohort"
	"github.com/engagekit/engage-backend/usecases/evaluate_offers"
	"github.com/engagekit/engage-backend/usecases/reward"
)

type Usecases struct {
	Repositories repositories.Repositories
	Config       models.EngineConfiguration

	// HttpClient is shared by every outbound business-logic call.
	HttpClient *http.Client
}

func (u Usecases) NewBusinessLogicRegistry() *business_logic.Registry {
	return business_logic.NewRegistry(u.HttpClient)
}

func (u Usecases) NewCohortResolver() *cohort.Resolver {
	return cohort.NewResolver()
}

func (u Usecases) NewEvaluator() *evaluate_offers.Evaluator {
	return evaluate_offers.NewEvaluator(u.Config, u.NewCohortResolver(), u.NewBusinessLogicRegistry())
}

func (u Usecases) NewRewardCalculator() *reward.Calculator {
	return reward.NewCalculator(u.NewBusinessLogicRegistry())
}
