package market

import (
	"errors"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/consolesell/Lomu/shared"
	"go.uber.org/atomic"
)

// CandleHistory represents a bounded candle history for a market, kept
// sorted ascending by bucket start time.
type CandleHistory struct {
	data    []*shared.Candlestick
	dataMtx sync.RWMutex
	size    atomic.Int32
}

// NewCandleHistory initializes a new candle history.
func NewCandleHistory(size int32) (*CandleHistory, error) {
	if size < 0 {
		return nil, errors.New("history size cannot be negative")
	}
	if size == 0 {
		return nil, errors.New("history size cannot be zero")
	}

	history := &CandleHistory{
		data: make([]*shared.Candlestick, 0, size),
	}

	history.size.Store(size)
	return history, nil
}

// compareCandles orders candles ascending by their bucket start time.
func compareCandles(a *shared.Candlestick, b *shared.Candlestick) int {
	switch {
	case a.Start.Before(b.Start):
		return -1
	case a.Start.After(b.Start):
		return 1
	default:
		return 0
	}
}

// evict drops the minimum-timestamp entries while the history is over
// capacity. Ticks may arrive out of order, so eviction follows bucket time
// order rather than insertion order. Must be called with the data mutex held.
func (h *CandleHistory) evict() {
	size := int(h.size.Load())
	for len(h.data) > size {
		h.data = slices.Delete(h.data, 0, 1)
	}
}

// Add inserts the provided candle into the history, re-sorting ascending by
// bucket start time and evicting while over capacity.
func (h *CandleHistory) Add(candle *shared.Candlestick) {
	h.dataMtx.Lock()
	defer h.dataMtx.Unlock()

	h.data = append(h.data, candle)
	slices.SortFunc(h.data, compareCandles)
	h.evict()
}

// ApplyTick folds the provided tick into the candle occupying the bucket
// with the given start time. It returns false if no candle occupies the
// bucket yet.
func (h *CandleHistory) ApplyTick(start time.Time, price float64, volume float64) bool {
	h.dataMtx.Lock()
	defer h.dataMtx.Unlock()

	for idx := len(h.data) - 1; idx >= 0; idx-- {
		candle := h.data[idx]
		if !candle.Start.Equal(start) {
			continue
		}

		candle.High = math.Max(candle.High, price)
		candle.Low = math.Min(candle.Low, price)
		candle.Close = price
		candle.Volume += volume
		return true
	}

	return false
}

// Resize updates the history capacity, evicting oldest entries immediately
// if the history shrank below its current count.
func (h *CandleHistory) Resize(size int32) error {
	if size <= 0 {
		return errors.New("history size must be positive")
	}

	h.dataMtx.Lock()
	defer h.dataMtx.Unlock()

	h.size.Store(size)
	h.evict()
	return nil
}

// Count returns the number of candles held by the history.
func (h *CandleHistory) Count() int {
	h.dataMtx.RLock()
	defer h.dataMtx.RUnlock()

	return len(h.data)
}

// Last returns a copy of the most recent candle held by the history.
func (h *CandleHistory) Last() *shared.Candlestick {
	h.dataMtx.RLock()
	defer h.dataMtx.RUnlock()

	if len(h.data) == 0 {
		return nil
	}

	last := *h.data[len(h.data)-1]
	return &last
}

// Candles returns a copy of the ordered candle history.
func (h *CandleHistory) Candles() []*shared.Candlestick {
	h.dataMtx.RLock()
	defer h.dataMtx.RUnlock()

	set := make([]*shared.Candlestick, len(h.data))
	for idx := range h.data {
		candle := *h.data[idx]
		set[idx] = &candle
	}

	return set
}
