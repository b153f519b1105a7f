package indicator

import "github.com/consolesell/Lomu/shared"

// RSI calculates the relative strength index over the provided period from
// single pass gain and loss averages. A gain-only history yields exactly
// 100 and a flat one yields 0.
func (e *Engine) RSI(candles []*shared.Candlestick, period int) float64 {
	if period <= 0 || len(candles) < period+1 {
		e.logger.Warn().Msgf("insufficient candles for rsi: %d/%d", len(candles), period+1)
		return 0
	}

	recent := candles[len(candles)-(period+1):]
	var gains, losses float64
	for idx := 1; idx < len(recent); idx++ {
		delta := recent[idx].Close - recent[idx-1].Close
		switch {
		case delta > 0:
			gains += delta
		case delta < 0:
			losses -= delta
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		if avgGain == 0 {
			return 0
		}
		return 100
	}

	rs := avgGain / avgLoss
	return roundTo(100-100/(1+rs), 2)
}
