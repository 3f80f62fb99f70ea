package market

import "context"

// Quote is one instrument's snapshot as reported by the provider.
// Numeric-looking fields stay strings; nothing here does arithmetic on them.
type Quote struct {
	Ticker           string `json:"ticker"`
	Price            string `json:"price"`
	ChangeAmount     string `json:"change_amount"`
	ChangePercentage string `json:"change_percentage"`
	// Volume is nil when the provider omits it; an empty string is kept.
	Volume *string `json:"volume,omitempty"`
}

// TopMovers is the result of one topMovers invocation.
type TopMovers struct {
	Limit              int     `json:"limit"`
	TopGainers         []Quote `json:"topGainers"`
	TopLosers          []Quote `json:"topLosers"`
	MostActivelyTraded []Quote `json:"mostActivelyTraded"`
}

// MoversPayload is the provider's TOP_GAINERS_LOSERS response body.
type MoversPayload struct {
	Metadata           string  `json:"metadata,omitempty"`
	LastUpdated        string  `json:"last_updated,omitempty"`
	TopGainers         []Quote `json:"top_gainers,omitempty"`
	TopLosers          []Quote `json:"top_losers,omitempty"`
	MostActivelyTraded []Quote `json:"most_actively_traded,omitempty"`
}

type MoversProvider interface {
	TopGainersLosers(ctx context.Context) (*MoversPayload, error)
}
