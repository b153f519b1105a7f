package indicator

import "github.com/consolesell/Lomu/shared"

// VWAP calculates the volume weighted average of typical prices over the
// provided period. Unset volumes count as one unit.
func (e *Engine) VWAP(candles []*shared.Candlestick, period int) float64 {
	if period <= 0 || len(candles) < period {
		e.logger.Warn().Msgf("insufficient candles for vwap: %d/%d", len(candles), period)
		return 0
	}

	recent := candles[len(candles)-period:]
	var priceVolume, totalVolume float64
	for idx := range recent {
		volume := recent[idx].Volume
		if volume == 0 {
			volume = 1
		}

		priceVolume += typicalPrice(recent[idx]) * volume
		totalVolume += volume
	}

	return priceVolume / totalVolume
}
