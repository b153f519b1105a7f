package indicator

import "github.com/consolesell/Lomu/shared"

// SMA calculates the simple moving average of the closes over the provided
// period.
func (e *Engine) SMA(candles []*shared.Candlestick, period int) float64 {
	if period <= 0 || len(candles) < period {
		e.logger.Warn().Msgf("insufficient candles for sma: %d/%d", len(candles), period)
		return 0
	}

	closes := closeSeries(candles[len(candles)-period:])
	return roundTo(mean(closes), 5)
}

// EMA calculates the exponential moving average of the provided closes,
// seeded with the first close and iterated forward over the whole sample.
// Results are memoized by period and sample length for the current cycle.
func (e *Engine) EMA(closes []float64, period int) float64 {
	return e.ema(closes, period, e.cache.Cycle())
}

// ema calculates the exponential moving average under the provided cache
// cycle. An update holds the cycle it was issued for the whole recompute,
// concurrent updates advancing the cache cannot alias its memoized values.
func (e *Engine) ema(closes []float64, period int, cycle uint64) float64 {
	if period <= 0 || len(closes) < period {
		e.logger.Warn().Msgf("insufficient closes for ema: %d/%d", len(closes), period)
		return 0
	}

	key := Key{
		Kind:   EMAKind,
		Period: period,
		Length: len(closes),
		Cycle:  cycle,
	}
	if value, ok := e.cache.Get(key); ok {
		return value
	}

	k := 2 / float64(period+1)
	value := closes[0]
	for idx := 1; idx < len(closes); idx++ {
		value = closes[idx]*k + value*(1-k)
	}

	e.cache.Put(key, value)
	return value
}
