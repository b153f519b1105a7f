package indicator

import "github.com/consolesell/Lomu/shared"

// ATR calculates the mean true range over the provided period.
func (e *Engine) ATR(candles []*shared.Candlestick, period int) float64 {
	if period <= 0 || len(candles) < period+1 {
		e.logger.Warn().Msgf("insufficient candles for atr: %d/%d", len(candles), period+1)
		return 0
	}

	recent := candles[len(candles)-(period+1):]
	var sum float64
	for idx := 1; idx < len(recent); idx++ {
		sum += trueRange(recent[idx], recent[idx-1])
	}

	return roundTo(sum/float64(period), 5)
}
