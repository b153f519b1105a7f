package indicator

import "github.com/consolesell/Lomu/shared"

// MACD calculates moving average convergence divergence values. The line
// is the fast EMA minus the slow EMA over the full sample. The signal is
// the mean of the line recomputed over the trailing windows formed by
// dropping the newest close signal-1 times, not an EMA of the line. The
// signal is memoized by sample length and signal period for the cycle.
func (e *Engine) MACD(candles []*shared.Candlestick, fast int, slow int, signal int) MACD {
	return e.macd(candles, fast, slow, signal, e.cache.Cycle())
}

// macd calculates moving average convergence divergence values under the
// provided cache cycle, keeping the line and signal EMAs of one update
// apart from those of concurrent updates.
func (e *Engine) macd(candles []*shared.Candlestick, fast int, slow int, signal int, cycle uint64) MACD {
	minimum := slow + signal - 1
	if fast <= 0 || slow <= 0 || signal <= 0 || len(candles) < minimum {
		e.logger.Warn().Msgf("insufficient candles for macd: %d/%d", len(candles), minimum)
		return MACD{}
	}

	closes := closeSeries(candles)
	line := e.ema(closes, fast, cycle) - e.ema(closes, slow, cycle)

	key := Key{
		Kind:   MACDKind,
		Period: signal,
		Length: len(closes),
		Cycle:  cycle,
	}
	signalValue, ok := e.cache.Get(key)
	if !ok {
		var sum float64
		for idx := 0; idx < signal; idx++ {
			window := closes[:len(closes)-idx]
			sum += e.ema(window, fast, cycle) - e.ema(window, slow, cycle)
		}

		signalValue = sum / float64(signal)
		e.cache.Put(key, signalValue)
	}

	return MACD{
		Line:      line,
		Signal:    signalValue,
		Histogram: line - signalValue,
	}
}
