package shared

import (
	"time"

	"github.com/google/uuid"
)

// StatusCode represents a request or signal status code.
type StatusCode int

const (
	Processing StatusCode = iota
	Processed
)

// Tick represents a raw market tick for processing.
type Tick struct {
	Market string
	Price  float64
	Volume float64
	Time   time.Time
	Status chan StatusCode
}

// NewTick initializes a new tick signal.
func NewTick(market string, price float64, volume float64, at time.Time) Tick {
	return Tick{
		Market: market,
		Price:  price,
		Volume: volume,
		Time:   at,
		Status: make(chan StatusCode, 1),
	}
}

// PatternSignal represents a detected candlestick pattern for a market.
type PatternSignal struct {
	ID         string
	Market     string
	Kind       PatternKind
	Sentiment  Sentiment
	Confidence float64
	CreatedOn  time.Time
	Status     chan StatusCode
}

// NewPatternSignal initializes a new pattern signal.
func NewPatternSignal(market string, kind PatternKind, sentiment Sentiment, confidence float64, created time.Time) PatternSignal {
	return PatternSignal{
		ID:         uuid.New().String(),
		Market:     market,
		Kind:       kind,
		Sentiment:  sentiment,
		Confidence: confidence,
		CreatedOn:  created,
		Status:     make(chan StatusCode, 1),
	}
}
