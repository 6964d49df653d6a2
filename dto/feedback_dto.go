package dto

import (
	"github.com/engagekit/engage-backend/models"
)

// OfferFeedbackDto is the PUT body closing the learning loop: the caller
// reports what happened to a previously recommended offer.
type OfferFeedbackDto struct {
	UUID           string           `json:"uuid" validate:"required,uuid4"`
	ChannelName    string           `json:"channel_name"`
	TransactionId  string           `json:"transaction_id"`
	OffersAccepted []map[string]any `json:"offers_accepted"`

	// Params feeds the configured reward business logic.
	Params map[string]any `json:"params"`
}

type RewardAckDto struct {
	UUID                 string  `json:"uuid"`
	Reward               float64 `json:"reward"`
	LearningReward       float64 `json:"learning_reward"`
	LearningForContacts  bool    `json:"learning_for_contacts"`
	LearningForResponses bool    `json:"learning_for_responses"`
}

func AdaptRewardAck(uuid string, record models.RewardRecord) RewardAckDto {
	return RewardAckDto{
		UUID:                 uuid,
		Reward:               record.Reward,
		LearningReward:       record.LearningReward,
		LearningForContacts:  record.LearningForContacts,
		LearningForResponses: record.LearningForResponses,
	}
}
