package indicator

import "github.com/consolesell/Lomu/shared"

// OBV calculates on balance volume over the full candle history, summing
// volume signed by the close to close direction. Unset volumes count as
// one unit.
func (e *Engine) OBV(candles []*shared.Candlestick) float64 {
	if len(candles) < 2 {
		e.logger.Warn().Msgf("insufficient candles for obv: %d/2", len(candles))
		return 0
	}

	var obv float64
	for idx := 1; idx < len(candles); idx++ {
		volume := candles[idx].Volume
		if volume == 0 {
			volume = 1
		}

		switch {
		case candles[idx].Close > candles[idx-1].Close:
			obv += volume
		case candles[idx].Close < candles[idx-1].Close:
			obv -= volume
		}
	}

	return obv
}
