package indicator

import "github.com/consolesell/Lomu/shared"

// Volatility calculates the coefficient of variation of the closes over
// the provided period, as a percentage.
func (e *Engine) Volatility(candles []*shared.Candlestick, period int) float64 {
	if period <= 0 || len(candles) < period {
		e.logger.Warn().Msgf("insufficient candles for volatility: %d/%d", len(candles), period)
		return 0
	}

	closes := closeSeries(candles[len(candles)-period:])
	avg := mean(closes)
	if avg == 0 {
		return 0
	}

	return roundTo(populationStdDev(closes)/avg*100, 2)
}
