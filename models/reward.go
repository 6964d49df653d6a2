package models

// RewardRecord is the learning feedback attached to one scored offer. Each
// field is resolved independently; a failing business-logic sub-call leaves
// only that field at its default.
type RewardRecord struct {
	Reward               float64 `json:"reward"`
	LearningReward       float64 `json:"learning_reward"`
	LearningForContacts  bool    `json:"learning_for_contacts"`
	LearningForResponses bool    `json:"learning_for_responses"`
}

// DefaultRewardRecord is the neutral feedback used when no rewards
// configuration is present or a sub-value cannot be computed.
func DefaultRewardRecord() RewardRecord {
	return RewardRecord{
		Reward:               1.0,
		LearningReward:       1.0,
		LearningForContacts:  false,
		LearningForResponses: true,
	}
}
