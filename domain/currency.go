package domain

import "time"

// ExchangeRates is the cached shape served by the currency endpoint.
// FetchedAt lets clients see how stale the snapshot is.
type ExchangeRates struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// ExchangeAPIResponse mirrors the upstream rates provider payload.
type ExchangeAPIResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

