package indicator

import "github.com/consolesell/Lomu/shared"

// stochasticK calculates the raw oscillator value of the last period
// candles, the position of the latest close within the window's range.
func stochasticK(candles []*shared.Candlestick, period int) float64 {
	window := candles[len(candles)-period:]

	lowest := window[0].Low
	highest := window[0].High
	for idx := 1; idx < len(window); idx++ {
		if window[idx].Low < lowest {
			lowest = window[idx].Low
		}
		if window[idx].High > highest {
			highest = window[idx].High
		}
	}

	if highest == lowest {
		return 0
	}

	return (window[len(window)-1].Close - lowest) / (highest - lowest) * 100
}

// Stochastic calculates the stochastic oscillator over the provided period.
// %D is the mean of %K recomputed over smooth windows, each shifted one
// candle further back.
func (e *Engine) Stochastic(candles []*shared.Candlestick, period int, smooth int) Stochastic {
	minimum := period + smooth - 1
	if period <= 0 || smooth <= 0 || len(candles) < minimum {
		e.logger.Warn().Msgf("insufficient candles for stochastic: %d/%d", len(candles), minimum)
		return Stochastic{}
	}

	k := stochasticK(candles, period)

	var sum float64
	for idx := 0; idx < smooth; idx++ {
		sum += stochasticK(candles[:len(candles)-idx], period)
	}
	d := sum / float64(smooth)

	return Stochastic{
		K: roundTo(k, 2),
		D: roundTo(d, 2),
	}
}
