package indicator

import "github.com/consolesell/Lomu/shared"

// Bollinger calculates bollinger bands over the provided period, a simple
// moving average widened either way by a multiple of the population
// standard deviation of the closes.
func (e *Engine) Bollinger(candles []*shared.Candlestick, period int, multiplier float64) BollingerBands {
	if period <= 0 || len(candles) < period {
		e.logger.Warn().Msgf("insufficient candles for bollinger bands: %d/%d", len(candles), period)
		return BollingerBands{}
	}

	closes := closeSeries(candles[len(candles)-period:])
	middle := mean(closes)
	width := multiplier * populationStdDev(closes)

	return BollingerBands{
		Upper:  roundTo(middle+width, 5),
		Middle: roundTo(middle, 5),
		Lower:  roundTo(middle-width, 5),
	}
}
