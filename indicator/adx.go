package indicator

import (
	"math"

	"github.com/consolesell/Lomu/shared"
)

// ADX calculates a single period directional index from directional
// movement and true range sums over the provided period, not a smoothed
// running average.
func (e *Engine) ADX(candles []*shared.Candlestick, period int) float64 {
	if period <= 0 || len(candles) < period+1 {
		e.logger.Warn().Msgf("insufficient candles for adx: %d/%d", len(candles), period+1)
		return 0
	}

	recent := candles[len(candles)-(period+1):]
	var plusDM, minusDM, rangeSum float64
	for idx := 1; idx < len(recent); idx++ {
		current := recent[idx]
		previous := recent[idx-1]

		upMove := current.High - previous.High
		downMove := previous.Low - current.Low
		if upMove > downMove && upMove > 0 {
			plusDM += upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM += downMove
		}

		rangeSum += trueRange(current, previous)
	}

	if rangeSum == 0 {
		return 0
	}

	plusDI := 100 * plusDM / rangeSum
	minusDI := 100 * minusDM / rangeSum
	if plusDI+minusDI == 0 {
		return 0
	}

	return 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
}
