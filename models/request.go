package models

import "strings"

// Whitelist restricts (or with LogicIn, forces) the offers that may be
// returned for one request.
type Whitelist struct {
	OfferNames []string
	LogicIn    bool
}

func (w Whitelist) Empty() bool {
	return len(w.OfferNames) == 0
}

// Matches reports whether name case-insensitively matches one of the
// whitelist entries.
func (w Whitelist) Matches(name string) bool {
	for _, entry := range w.OfferNames {
		if strings.EqualFold(entry, name) {
			return true
		}
	}
	return false
}

// ScoringRequest is one inbound recommendation call. It is created per call,
// defaulted during processing and discarded once the response is built; it is
// never shared across requests.
type ScoringRequest struct {
	UUID        string
	Campaign    string
	SubCampaign string
	Customer    string
	Channel     string
	UserId      string

	// InParams is the caller-supplied key/value context: balances,
	// contextual variables, eligible-offer allowlist, day/time.
	InParams map[string]any

	ResultCount int
	// Explore: 0 selects top-N by score (exploit), 1 samples at random.
	Explore   int
	Epsilon   float64
	Whitelist Whitelist

	// ApiParams echoes the raw inbound call values for downstream runtimes
	// (network routing) and logging joins.
	ApiParams map[string]any
}
