// Package models defines the data types exchanged between the pipeline
// stages and the browser client. Everything here is request-scoped:
// created when a request starts, discarded when the response is sent.
package models

import "strings"

// Market represents a normalized prediction market from Polymarket.
type Market struct {
	ID               string    `json:"id"`
	Slug             string    `json:"slug"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Question         string    `json:"question"`
	Outcomes         []Outcome `json:"outcomes"`
	Volume           float64   `json:"volume"`
	Liquidity        float64   `json:"liquidity"`
	Probability      float64   `json:"probability"`
	EndDate          string    `json:"endDate"`
	ResolutionSource string    `json:"resolutionSource"`
	ImageURL         string    `json:"imageUrl"`
}

// Outcome is one possible resolution of a market.
type Outcome struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Probability float64 `json:"probability"`
	Volume      float64 `json:"volume"`
}

// IsBinary reports whether the market is a plain Yes/No market.
// Anything else goes through the LLM search-strategy path.
func (m *Market) IsBinary() bool {
	return len(m.Outcomes) == 2 && m.HasYesNoPair()
}

// HasYesNoPair reports whether literal Yes and No outcomes are present,
// regardless of how many outcomes the market carries.
func (m *Market) HasYesNoPair() bool {
	yes, no := false, false
	for _, o := range m.Outcomes {
		switch strings.ToLower(o.Title) {
		case "yes":
			yes = true
		case "no":
			no = true
		}
	}
	return yes && no
}

// YesNoOutcomes returns the outcomes literally named Yes and No,
// falling back to the first two outcomes when neither is present.
func (m *Market) YesNoOutcomes() (Outcome, Outcome) {
	var yes, no *Outcome
	for i := range m.Outcomes {
		switch strings.ToLower(m.Outcomes[i].Title) {
		case "yes":
			yes = &m.Outcomes[i]
		case "no":
			no = &m.Outcomes[i]
		}
	}
	if yes == nil {
		yes = &m.Outcomes[0]
	}
	if no == nil {
		if len(m.Outcomes) > 1 {
			no = &m.Outcomes[1]
		} else {
			no = &m.Outcomes[0]
		}
	}
	return *yes, *no
}
