package indicator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/consolesell/Lomu/shared"
	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
)

const (
	// DefaultRSIPeriod is the default relative strength index period.
	DefaultRSIPeriod = 14
	// DefaultMAPeriod is the default moving average period.
	DefaultMAPeriod = 20
	// DefaultBollingerPeriod is the default bollinger band period.
	DefaultBollingerPeriod = 20
	// DefaultBollingerMultiplier is the default bollinger band width multiplier.
	DefaultBollingerMultiplier = 2.0
	// DefaultMACDFast is the default macd fast average period.
	DefaultMACDFast = 12
	// DefaultMACDSlow is the default macd slow average period.
	DefaultMACDSlow = 26
	// DefaultMACDSignal is the default macd signal period.
	DefaultMACDSignal = 9
	// DefaultStochasticPeriod is the default stochastic oscillator period.
	DefaultStochasticPeriod = 14
	// DefaultStochasticSmooth is the default stochastic smoothing span.
	DefaultStochasticSmooth = 3
	// DefaultADXPeriod is the default average directional index period.
	DefaultADXPeriod = 14
	// DefaultVolatilityPeriod is the default volatility period.
	DefaultVolatilityPeriod = 20
	// DefaultSentimentPeriod is the default sentiment period.
	DefaultSentimentPeriod = 20
	// DefaultATRPeriod is the default average true range period.
	DefaultATRPeriod = 14
	// DefaultCCIPeriod is the default commodity channel index period.
	DefaultCCIPeriod = 20
	// DefaultVWAPPeriod is the default volume weighted average price period.
	DefaultVWAPPeriod = 20
	// DefaultCorrelationLength is the default sample length for correlation.
	DefaultCorrelationLength = 50
	// DefaultMinCandles is the default minimum candle count for computation.
	DefaultMinCandles = 30
)

// EngineConfig represents the indicator engine configuration.
type EngineConfig struct {
	// RSIPeriod is the relative strength index period.
	RSIPeriod int
	// MAPeriod is the moving average period.
	MAPeriod int
	// BollingerPeriod is the bollinger band period.
	BollingerPeriod int
	// BollingerMultiplier is the bollinger band width multiplier.
	BollingerMultiplier float64
	// MACDFast is the macd fast average period.
	MACDFast int
	// MACDSlow is the macd slow average period.
	MACDSlow int
	// MACDSignal is the macd signal period.
	MACDSignal int
	// StochasticPeriod is the stochastic oscillator period.
	StochasticPeriod int
	// StochasticSmooth is the stochastic smoothing span.
	StochasticSmooth int
	// ADXPeriod is the average directional index period.
	ADXPeriod int
	// VolatilityPeriod is the volatility period.
	VolatilityPeriod int
	// SentimentPeriod is the sentiment period.
	SentimentPeriod int
	// ATRPeriod is the average true range period.
	ATRPeriod int
	// CCIPeriod is the commodity channel index period.
	CCIPeriod int
	// VWAPPeriod is the volume weighted average price period.
	VWAPPeriod int
	// CorrelationLength is the maximum sample length for correlation.
	CorrelationLength int
	// MinCandles is the minimum candle count required for computation.
	MinCandles int
	// Debug toggles verbose snapshot dumps on update.
	Debug bool
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// ConfigPatch represents a partial update to the indicator engine
// configuration. Nil fields leave their current values unchanged.
type ConfigPatch struct {
	RSIPeriod           *int
	MAPeriod            *int
	BollingerPeriod     *int
	BollingerMultiplier *float64
	MACDFast            *int
	MACDSlow            *int
	MACDSignal          *int
	StochasticPeriod    *int
	StochasticSmooth    *int
	ADXPeriod           *int
	VolatilityPeriod    *int
	SentimentPeriod     *int
	ATRPeriod           *int
	CCIPeriod           *int
	VWAPPeriod          *int
	CorrelationLength   *int
	MinCandles          *int
	Debug               *bool
}

// Validate asserts the config sane limits.
func (cfg *EngineConfig) Validate() error {
	var errs error

	periods := []struct {
		name  string
		value int
	}{
		{"rsi period", cfg.RSIPeriod},
		{"ma period", cfg.MAPeriod},
		{"bollinger period", cfg.BollingerPeriod},
		{"macd fast period", cfg.MACDFast},
		{"macd slow period", cfg.MACDSlow},
		{"macd signal period", cfg.MACDSignal},
		{"stochastic period", cfg.StochasticPeriod},
		{"stochastic smooth", cfg.StochasticSmooth},
		{"adx period", cfg.ADXPeriod},
		{"volatility period", cfg.VolatilityPeriod},
		{"sentiment period", cfg.SentimentPeriod},
		{"atr period", cfg.ATRPeriod},
		{"cci period", cfg.CCIPeriod},
		{"vwap period", cfg.VWAPPeriod},
		{"correlation length", cfg.CorrelationLength},
		{"min candles", cfg.MinCandles},
	}
	for idx := range periods {
		if periods[idx].value <= 0 {
			errs = errors.Join(errs, fmt.Errorf("%s must be positive, got %d",
				periods[idx].name, periods[idx].value))
		}
	}

	if cfg.BollingerMultiplier <= 0 {
		errs = errors.Join(errs, fmt.Errorf("bollinger multiplier must be positive, got %v",
			cfg.BollingerMultiplier))
	}
	if cfg.MACDFast >= cfg.MACDSlow {
		errs = errors.Join(errs, fmt.Errorf("macd fast period must be below the slow period, got %d/%d",
			cfg.MACDFast, cfg.MACDSlow))
	}

	return errs
}

// applyDefaults fills unset config fields with their defaults.
func (cfg *EngineConfig) applyDefaults() {
	if cfg.RSIPeriod == 0 {
		cfg.RSIPeriod = DefaultRSIPeriod
	}
	if cfg.MAPeriod == 0 {
		cfg.MAPeriod = DefaultMAPeriod
	}
	if cfg.BollingerPeriod == 0 {
		cfg.BollingerPeriod = DefaultBollingerPeriod
	}
	if cfg.BollingerMultiplier == 0 {
		cfg.BollingerMultiplier = DefaultBollingerMultiplier
	}
	if cfg.MACDFast == 0 {
		cfg.MACDFast = DefaultMACDFast
	}
	if cfg.MACDSlow == 0 {
		cfg.MACDSlow = DefaultMACDSlow
	}
	if cfg.MACDSignal == 0 {
		cfg.MACDSignal = DefaultMACDSignal
	}
	if cfg.StochasticPeriod == 0 {
		cfg.StochasticPeriod = DefaultStochasticPeriod
	}
	if cfg.StochasticSmooth == 0 {
		cfg.StochasticSmooth = DefaultStochasticSmooth
	}
	if cfg.ADXPeriod == 0 {
		cfg.ADXPeriod = DefaultADXPeriod
	}
	if cfg.VolatilityPeriod == 0 {
		cfg.VolatilityPeriod = DefaultVolatilityPeriod
	}
	if cfg.SentimentPeriod == 0 {
		cfg.SentimentPeriod = DefaultSentimentPeriod
	}
	if cfg.ATRPeriod == 0 {
		cfg.ATRPeriod = DefaultATRPeriod
	}
	if cfg.CCIPeriod == 0 {
		cfg.CCIPeriod = DefaultCCIPeriod
	}
	if cfg.VWAPPeriod == 0 {
		cfg.VWAPPeriod = DefaultVWAPPeriod
	}
	if cfg.CorrelationLength == 0 {
		cfg.CorrelationLength = DefaultCorrelationLength
	}
	if cfg.MinCandles == 0 {
		cfg.MinCandles = DefaultMinCandles
	}
}

// Engine computes technical indicators and cross market correlations from
// candle histories.
type Engine struct {
	cfg          *EngineConfig
	logger       *zerolog.Logger
	cache        *Cache
	snapshot     Snapshot
	correlations map[Pair]float64
	mtx          sync.RWMutex
}

// NewEngine initializes a new indicator engine.
func NewEngine(cfg *EngineConfig) (*Engine, error) {
	cfg.applyDefaults()
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating engine config: %v", err)
	}

	return &Engine{
		cfg:          cfg,
		logger:       cfg.Logger,
		cache:        NewCache(),
		correlations: make(map[Pair]float64),
	}, nil
}

// UpdateConfig applies the provided partial configuration update. Fields
// absent from the patch keep their current values.
func (e *Engine) UpdateConfig(patch *ConfigPatch) error {
	if patch == nil {
		return nil
	}

	e.mtx.Lock()
	defer e.mtx.Unlock()

	next := *e.cfg
	if patch.RSIPeriod != nil {
		next.RSIPeriod = *patch.RSIPeriod
	}
	if patch.MAPeriod != nil {
		next.MAPeriod = *patch.MAPeriod
	}
	if patch.BollingerPeriod != nil {
		next.BollingerPeriod = *patch.BollingerPeriod
	}
	if patch.BollingerMultiplier != nil {
		next.BollingerMultiplier = *patch.BollingerMultiplier
	}
	if patch.MACDFast != nil {
		next.MACDFast = *patch.MACDFast
	}
	if patch.MACDSlow != nil {
		next.MACDSlow = *patch.MACDSlow
	}
	if patch.MACDSignal != nil {
		next.MACDSignal = *patch.MACDSignal
	}
	if patch.StochasticPeriod != nil {
		next.StochasticPeriod = *patch.StochasticPeriod
	}
	if patch.StochasticSmooth != nil {
		next.StochasticSmooth = *patch.StochasticSmooth
	}
	if patch.ADXPeriod != nil {
		next.ADXPeriod = *patch.ADXPeriod
	}
	if patch.VolatilityPeriod != nil {
		next.VolatilityPeriod = *patch.VolatilityPeriod
	}
	if patch.SentimentPeriod != nil {
		next.SentimentPeriod = *patch.SentimentPeriod
	}
	if patch.ATRPeriod != nil {
		next.ATRPeriod = *patch.ATRPeriod
	}
	if patch.CCIPeriod != nil {
		next.CCIPeriod = *patch.CCIPeriod
	}
	if patch.VWAPPeriod != nil {
		next.VWAPPeriod = *patch.VWAPPeriod
	}
	if patch.CorrelationLength != nil {
		next.CorrelationLength = *patch.CorrelationLength
	}
	if patch.MinCandles != nil {
		next.MinCandles = *patch.MinCandles
	}
	if patch.Debug != nil {
		next.Debug = *patch.Debug
	}

	err := next.Validate()
	if err != nil {
		return fmt.Errorf("validating updated engine config: %v", err)
	}

	e.cfg = &next
	return nil
}

// UpdateIndicators recomputes the indicator snapshot from the provided
// candles. The snapshot is replaced wholesale: a short history or a failed
// computation resets it to zero values and nothing partial is ever visible.
func (e *Engine) UpdateIndicators(candles []*shared.Candlestick) {
	e.mtx.RLock()
	cfg := e.cfg
	e.mtx.RUnlock()

	if len(candles) < cfg.MinCandles {
		e.logger.Warn().Msgf("insufficient candles for indicators: %d/%d",
			len(candles), cfg.MinCandles)
		e.mtx.Lock()
		e.snapshot = Snapshot{}
		e.mtx.Unlock()
		return
	}

	defer func() {
		if r := recover(); r != nil {
			e.mtx.Lock()
			e.snapshot = Snapshot{}
			e.mtx.Unlock()
			e.logger.Error().Msgf("computing indicators: %v", r)
		}
	}()

	// The cycle is captured once so concurrent updates advancing the
	// cache cannot mix their memoized values into this recompute.
	cycle := e.cache.NextCycle()

	next := Snapshot{
		RSI:        e.RSI(candles, cfg.RSIPeriod),
		SMA:        e.SMA(candles, cfg.MAPeriod),
		Bollinger:  e.Bollinger(candles, cfg.BollingerPeriod, cfg.BollingerMultiplier),
		MACD:       e.macd(candles, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal, cycle),
		Stochastic: e.Stochastic(candles, cfg.StochasticPeriod, cfg.StochasticSmooth),
		ADX:        e.ADX(candles, cfg.ADXPeriod),
		OBV:        e.OBV(candles),
		Sentiment:  e.Sentiment(candles, cfg.SentimentPeriod),
		Volatility: e.Volatility(candles, cfg.VolatilityPeriod),
		ATR:        e.ATR(candles, cfg.ATRPeriod),
		CCI:        e.CCI(candles, cfg.CCIPeriod),
		VWAP:       e.VWAP(candles, cfg.VWAPPeriod),
	}

	if cfg.Debug {
		e.logger.Debug().Msg(spew.Sdump(next))
	}

	e.mtx.Lock()
	e.snapshot = next
	e.mtx.Unlock()
}

// Indicators returns a copy of the current indicator snapshot.
func (e *Engine) Indicators() Snapshot {
	e.mtx.RLock()
	defer e.mtx.RUnlock()

	return e.snapshot
}
