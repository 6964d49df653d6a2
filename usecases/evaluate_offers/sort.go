package evaluate_offers

import (
	"sort"

	"github.com/engagekit/engage-backend/models"
)

// Sort keys used by the strategies.
const (
	SortKeyScore              = "score"
	SortKeyModifiedOfferScore = "modified_offer_score"
	SortKeyArmReward          = "arm_reward"
)

func sortValue(o models.ScoredOffer, key string) float64 {
	switch key {
	case SortKeyModifiedOfferScore:
		return o.ModifiedScore
	case SortKeyArmReward:
		return o.ArmReward
	default:
		return o.Score
	}
}

// sortOffersDesc stably sorts by the configured key, descending. Ties keep
// insertion order so identical inputs always rank identically.
func sortOffersDesc(offers []models.ScoredOffer, key string) {
	sort.SliceStable(offers, func(i, j int) bool {
		return sortValue(offers[i], key) > sortValue(offers[j], key)
	})
}
