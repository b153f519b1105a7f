package indicator

// BollingerBands represents a moving average envelope widened by a multiple
// of the standard deviation of price.
type BollingerBands struct {
	// Upper is the band above the moving average.
	Upper float64
	// Middle is the moving average.
	Middle float64
	// Lower is the band below the moving average.
	Lower float64
}

// MACD represents moving average convergence divergence values.
type MACD struct {
	// Line is the difference between the fast and slow averages.
	Line float64
	// Signal is the smoothed average of the line.
	Signal float64
	// Histogram is the difference between the line and the signal.
	Histogram float64
}

// Stochastic represents stochastic oscillator values.
type Stochastic struct {
	// K is the raw oscillator value for the latest window.
	K float64
	// D is the smoothed oscillator value.
	D float64
}

// Snapshot represents a complete set of indicator outputs for a market.
// A snapshot is replaced wholesale on every update, readers never observe
// a partially updated one.
type Snapshot struct {
	RSI        float64
	SMA        float64
	Bollinger  BollingerBands
	MACD       MACD
	Stochastic Stochastic
	ADX        float64
	OBV        float64
	Sentiment  float64
	Volatility float64
	ATR        float64
	CCI        float64
	VWAP       float64
}
