package models

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Corpora keys consumed by the engine. Field names are part of the
// compatibility surface with the configuration store.
const (
	CorpusValueCalcParams      = "value_calc_params"
	CorpusValueCalcId          = "value_calc_id"
	CorpusCohortIdentification = "cohort_identification"
	CorpusMsisdnCohort         = "msisdn_cohort"
	CorpusRewardsBusinessLogic = "rewards_business_logic"
	CorpusNetwork              = "network"
	CorpusNetworkConfig        = "network_config"
	CorpusLocations            = "locations"

	CorpusDynamicEngagement        = "dynamic_engagement"
	CorpusDynamicEngagementOptions = "dynamic_engagement_options"
)

// CorporaSet is the dynamic configuration handed to the engine for one
// request: raw documents from an external key/value configuration store. The
// engine only reads it and never caches it across requests.
type CorporaSet struct {
	Preload map[string]json.RawMessage
	Dynamic map[string]json.RawMessage
}

func (c CorporaSet) HasPreload(key string) bool {
	_, ok := c.Preload[key]
	return ok
}

func (c CorporaSet) decode(docs map[string]json.RawMessage, key string, out any) error {
	raw, ok := docs[key]
	if !ok {
		return errors.Wrap(NotFoundError, "corpus "+key+" not configured")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "decoding corpus "+key)
	}
	return nil
}

// DynamicEngagement is the parameter set steering the real-time behaviour of
// the dynamic engagement strategies.
type DynamicEngagement struct {
	ContextualVariables ContextualVariableNames `json:"contextual_variables"`
	Randomisation       Randomisation           `json:"randomisation"`
}

type ContextualVariableNames struct {
	OneName string `json:"contextual_variable_one_name"`
	TwoName string `json:"contextual_variable_two_name"`
}

type Randomisation struct {
	Approach string  `json:"approach"`
	Epsilon  float64 `json:"epsilon"`
}

func (c CorporaSet) DynamicEngagement() (DynamicEngagement, error) {
	var doc struct {
		Data DynamicEngagement `json:"data"`
	}
	if err := c.decode(c.Dynamic, CorpusDynamicEngagement, &doc); err != nil {
		return DynamicEngagement{}, err
	}
	return doc.Data, nil
}

// EngagementOptions returns the option rows tracking the dynamic state of
// each arm. Rows stay loosely typed; the feature accessor extracts values.
func (c CorporaSet) EngagementOptions() ([]map[string]any, error) {
	var doc struct {
		Data []map[string]any `json:"data"`
	}
	if err := c.decode(c.Dynamic, CorpusDynamicEngagementOptions, &doc); err != nil {
		return nil, err
	}
	return doc.Data, nil
}

// CohortConfig is one cohort experiment window. Times are "hh:mm a" wall
// clock in the engine timezone; the window may wrap past midnight.
type CohortConfig struct {
	CohortId  string `json:"cohort_id"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (c CorporaSet) CohortConfigs() ([]CohortConfig, error) {
	var doc struct {
		Data []CohortConfig `json:"data"`
	}
	if err := c.decode(c.Preload, CorpusCohortIdentification, &doc); err != nil {
		return nil, err
	}
	return doc.Data, nil
}

// MsisdnCohorts maps customer identifier to assigned cohort.
func (c CorporaSet) MsisdnCohorts() (map[string]string, error) {
	var doc struct {
		Data map[string]string `json:"data"`
	}
	if err := c.decode(c.Preload, CorpusMsisdnCohort, &doc); err != nil {
		return nil, err
	}
	return doc.Data, nil
}

// LocationWindow is the open-hours window for one offer.
type LocationWindow struct {
	Operating bool   `json:"operating"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

func (c CorporaSet) Locations() (map[string]LocationWindow, error) {
	var doc struct {
		Data map[string]LocationWindow `json:"data"`
	}
	if err := c.decode(c.Preload, CorpusLocations, &doc); err != nil {
		return nil, err
	}
	return doc.Data, nil
}

// BusinessFunctionRef names a registered business-logic function and the
// output field to read from its results.
type BusinessFunctionRef struct {
	FunctionName string `json:"function_name"`
	Output       string `json:"output"`
}

type RewardsBusinessLogic struct {
	Reward         *BusinessFunctionRef `json:"reward"`
	LearningReward *BusinessFunctionRef `json:"learning_reward"`
}

func (c CorporaSet) RewardsBusinessLogic() (RewardsBusinessLogic, error) {
	var cfg RewardsBusinessLogic
	if err := c.decode(c.Preload, CorpusRewardsBusinessLogic, &cfg); err != nil {
		return RewardsBusinessLogic{}, err
	}
	return cfg, nil
}

// NetworkConfig steers the network-router strategy.
type NetworkConfig struct {
	Type      string          `json:"type"`
	SwitchKey string          `json:"switch_key"`
	Selector  NetworkEndpoint `json:"selector"`
}

// NetworkEndpoint is one downstream runtime, with optional overrides for the
// values normally taken from the inbound call.
type NetworkEndpoint struct {
	URL          string         `json:"url"`
	Campaign     string         `json:"campaign"`
	SubCampaign  string         `json:"subcampaign"`
	Customer     string         `json:"customer"`
	Channel      string         `json:"channel"`
	NumberOffers int            `json:"numberoffers"`
	UserId       string         `json:"userid"`
	InParams     map[string]any `json:"in_params"`
}

func (c CorporaSet) NetworkConfig() (NetworkConfig, error) {
	var doc struct {
		NetworkConfig NetworkConfig `json:"network_config"`
	}
	if err := c.decode(c.Preload, CorpusNetworkConfig, &doc); err != nil {
		return NetworkConfig{}, err
	}
	return doc.NetworkConfig, nil
}

func (c CorporaSet) NetworkEndpoints() (map[string]NetworkEndpoint, error) {
	endpoints := make(map[string]NetworkEndpoint)
	if err := c.decode(c.Preload, CorpusNetwork, &endpoints); err != nil {
		return nil, err
	}
	return endpoints, nil
}

// RawPreload exposes the undecoded document for path-based lookups.
func (c CorporaSet) RawPreload(key string) (json.RawMessage, bool) {
	raw, ok := c.Preload[key]
	return raw, ok
}
