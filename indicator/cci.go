package indicator

import (
	"math"

	"github.com/consolesell/Lomu/shared"
)

// CCI calculates the commodity channel index over the provided period,
// grading how far the current typical price sits from its mean relative
// to the mean absolute deviation. A zero deviation is floored to one.
func (e *Engine) CCI(candles []*shared.Candlestick, period int) float64 {
	if period <= 0 || len(candles) < period {
		e.logger.Warn().Msgf("insufficient candles for cci: %d/%d", len(candles), period)
		return 0
	}

	recent := candles[len(candles)-period:]
	prices := make([]float64, len(recent))
	for idx := range recent {
		prices[idx] = typicalPrice(recent[idx])
	}

	avg := mean(prices)
	var deviation float64
	for idx := range prices {
		deviation += math.Abs(prices[idx] - avg)
	}
	deviation /= float64(len(prices))
	if deviation == 0 {
		deviation = 1
	}

	return (prices[len(prices)-1] - avg) / (0.015 * deviation)
}
