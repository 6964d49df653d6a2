package evaluate_offers

import (
	"math/rand/v2"

	"github.com/engagekit/engage-backend/models"
)

// selectOffers picks resultCount offers from the ranked list. Exploit mode
// (explore 0) walks the list in order; explore mode draws uniformly at random
// with replacement, so duplicates are possible. With budget tracking enabled
// an offer needs spend_limit > 0 or the -1 unlimited sentinel; an offer
// without budget information stops the whole scan (kept for backward
// compatibility, pinned by test).
func (e *Evaluator) selectOffers(
	rng *rand.Rand,
	ranked []models.ScoredOffer,
	resultCount int,
	explore int,
) []models.RankedOffer {
	if resultCount > len(ranked) {
		resultCount = len(ranked)
	}

	offers := make([]models.RankedOffer, 0, resultCount)
	for j := 0; j < len(ranked); j++ {
		var work models.ScoredOffer
		if explore == 1 {
			work = ranked[rng.IntN(len(ranked))]
		} else {
			work = ranked[j]
		}

		if e.config.BudgetEnabled() {
			if !work.SpendLimit.Valid {
				break
			}
			if !(work.SpendLimit.Float64 > 0.0 || work.SpendLimit.Float64 == -1) {
				continue
			}
		}

		offers = append(offers, models.RankedOffer{
			Rank:       len(offers) + 1,
			Result:     work.Project(),
			ResultFull: work,
		})
		if len(offers) == resultCount {
			break
		}
	}
	return offers
}
