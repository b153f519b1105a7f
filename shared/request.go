package shared

import (
	"time"
)

const (
	// TimeoutDuration is the maximum time to wait on a request response
	// before timing out.
	TimeoutDuration = time.Second * 4
)

// CandlesRequest represents a request to fetch the candle history of a market.
type CandlesRequest struct {
	Market   string
	Response chan []*Candlestick
}

// NewCandlesRequest initializes a new candles request.
func NewCandlesRequest(market string) CandlesRequest {
	return CandlesRequest{
		Market:   market,
		Response: make(chan []*Candlestick, 1),
	}
}
