package market

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/consolesell/Lomu/shared"
)

// ErrInvalidInput is returned when a malformed tick or candle is rejected.
// Aggregator state is left unchanged when it is returned.
var ErrInvalidInput = errors.New("invalid input")

// validateTick asserts the provided tick fields can be aggregated.
func validateTick(price float64, at time.Time) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("%w: price %v is not a finite number", ErrInvalidInput, price)
	}
	if at.IsZero() {
		return fmt.Errorf("%w: tick time cannot be the zero time", ErrInvalidInput)
	}

	return nil
}

// MarketConfig represents the configuration for a tracked market.
type MarketConfig struct {
	// Market is the name of the tracked market.
	Market string
	// MaxCandles is the maximum number of candles retained for the market.
	MaxCandles int32
}

// Market aggregates raw ticks into fixed-interval candles for a single
// market and maintains its bounded candle history.
type Market struct {
	cfg     *MarketConfig
	candles *CandleHistory
}

// NewMarket initializes a new market.
func NewMarket(cfg *MarketConfig) (*Market, error) {
	candles, err := NewCandleHistory(cfg.MaxCandles)
	if err != nil {
		return nil, fmt.Errorf("creating %s candle history: %v", cfg.Market, err)
	}

	return &Market{
		cfg:     cfg,
		candles: candles,
	}, nil
}

// AddTick folds the provided tick into the candle occupying its bucket,
// creating the candle when the tick opens a new bucket.
func (m *Market) AddTick(price float64, volume float64, at time.Time, timeframe shared.Timeframe) error {
	err := validateTick(price, at)
	if err != nil {
		return err
	}

	start := timeframe.Align(at)
	if m.candles.ApplyTick(start, price, volume) {
		return nil
	}

	candle := &shared.Candlestick{
		Open:   price,
		High:   price,
		Low:    price,
		Close:  price,
		Volume: volume,
		Start:  start,
		Market: m.cfg.Market,
	}

	m.candles.Add(candle)
	return nil
}

// AddCandle inserts a caller-supplied complete candle into the market's
// history, bypassing bucket aggregation.
func (m *Market) AddCandle(candle *shared.Candlestick) error {
	if candle == nil {
		return fmt.Errorf("%w: candle cannot be nil", ErrInvalidInput)
	}
	if candle.Start.IsZero() {
		return fmt.Errorf("%w: candle start cannot be the zero time", ErrInvalidInput)
	}

	entry := *candle
	entry.Market = m.cfg.Market
	m.candles.Add(&entry)
	return nil
}

// Candles returns the ordered candle history of the market.
func (m *Market) Candles() []*shared.Candlestick {
	return m.candles.Candles()
}
