package models

// Strategy selects which variant of the scoring pipeline runs for a request.
// The variants share the same eligibility/score/rank/select skeleton and
// differ in how candidates are produced and scored.
type Strategy int

const (
	StrategyBasic Strategy = iota
	StrategyOfferMatrix
	StrategyBalanceEnquiry
	StrategyDynamicEngagement
	StrategyDynamicEngagementProduct
	StrategyRecommenderMulti
	StrategyNetworkRouter
	StrategySpam
	UnknownStrategy
)

var ValidStrategies = []Strategy{
	StrategyBasic,
	StrategyOfferMatrix,
	StrategyBalanceEnquiry,
	StrategyDynamicEngagement,
	StrategyDynamicEngagementProduct,
	StrategyRecommenderMulti,
	StrategyNetworkRouter,
	StrategySpam,
}

func (s Strategy) String() string {
	switch s {
	case StrategyBasic:
		return "basic"
	case StrategyOfferMatrix:
		return "offer_matrix"
	case StrategyBalanceEnquiry:
		return "balance_enquiry"
	case StrategyDynamicEngagement:
		return "dynamic_engagement"
	case StrategyDynamicEngagementProduct:
		return "dynamic_engagement_product"
	case StrategyRecommenderMulti:
		return "recommender_multi"
	case StrategyNetworkRouter:
		return "network_router"
	case StrategySpam:
		return "spam"
	}
	return "unknown"
}

func StrategyFrom(s string) Strategy {
	switch s {
	case "basic":
		return StrategyBasic
	case "offer_matrix":
		return StrategyOfferMatrix
	case "balance_enquiry":
		return StrategyBalanceEnquiry
	case "dynamic_engagement":
		return StrategyDynamicEngagement
	case "dynamic_engagement_product":
		return StrategyDynamicEngagementProduct
	case "recommender_multi":
		return StrategyRecommenderMulti
	case "network_router":
		return StrategyNetworkRouter
	case "spam":
		return StrategySpam
	}
	return UnknownStrategy
}
