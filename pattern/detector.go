package pattern

import (
	"errors"
	"fmt"
	"sync"

	"github.com/consolesell/Lomu/shared"
	"github.com/rs/zerolog"
)

const (
	// patternWindow is the number of candles evaluated for a pattern.
	patternWindow = 3
	// trendWindow is the number of closes evaluated for trend confirmation.
	trendWindow = 5
	// baseConfidence is the starting confidence for single and two candle patterns.
	baseConfidence = 0.8
	// starConfidence is the confidence for three candle star patterns.
	starConfidence = 0.9
	// confidenceStep is the confidence bonus for pattern strengtheners.
	confidenceStep = 0.1
	// shadowBias is the shadow dominance multiple strengthening a doji.
	shadowBias = 2

	// DefaultDojiThreshold is the default body to range ratio bounding a doji.
	DefaultDojiThreshold = 0.1
	// DefaultShadowMultiplier is the default long shadow to body multiple.
	DefaultShadowMultiplier = 2.0
	// DefaultSmallShadowMultiplier is the default small shadow to body multiple.
	DefaultSmallShadowMultiplier = 0.3
	// DefaultLongBodyThreshold is the default long body to range ratio.
	DefaultLongBodyThreshold = 0.6
)

// Result represents a detected candlestick pattern.
type Result struct {
	// Kind is the detected pattern.
	Kind shared.PatternKind
	// Sentiment is the directional bias of the pattern.
	Sentiment shared.Sentiment
	// Confidence grades the strength of the match, ranging from 0 to 1.
	Confidence float64
}

// DetectorConfig represents the pattern detector configuration.
type DetectorConfig struct {
	// DojiThreshold is the body to range ratio at or below which a candle
	// is considered a doji.
	DojiThreshold float64
	// ShadowMultiplier is the body multiple a shadow must reach to be
	// considered long.
	ShadowMultiplier float64
	// SmallShadowMultiplier is the body multiple a shadow must stay within
	// to be considered small.
	SmallShadowMultiplier float64
	// LongBodyThreshold is the range ratio a body must reach to be
	// considered long.
	LongBodyThreshold float64
	// EnableTrendCheck toggles trend confirmation for directional patterns.
	EnableTrendCheck bool
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// ConfigPatch represents a partial update to the pattern detector
// configuration. Nil fields leave their current values unchanged.
type ConfigPatch struct {
	DojiThreshold         *float64
	ShadowMultiplier      *float64
	SmallShadowMultiplier *float64
	LongBodyThreshold     *float64
	EnableTrendCheck      *bool
}

// Validate asserts the config sane limits.
func (cfg *DetectorConfig) Validate() error {
	var errs error

	if cfg.DojiThreshold <= 0 {
		errs = errors.Join(errs, fmt.Errorf("doji threshold must be positive, got %v", cfg.DojiThreshold))
	}
	if cfg.ShadowMultiplier <= 0 {
		errs = errors.Join(errs, fmt.Errorf("shadow multiplier must be positive, got %v", cfg.ShadowMultiplier))
	}
	if cfg.SmallShadowMultiplier <= 0 {
		errs = errors.Join(errs, fmt.Errorf("small shadow multiplier must be positive, got %v", cfg.SmallShadowMultiplier))
	}
	if cfg.LongBodyThreshold <= 0 || cfg.LongBodyThreshold >= 1 {
		errs = errors.Join(errs, fmt.Errorf("long body threshold must be in (0, 1), got %v", cfg.LongBodyThreshold))
	}

	return errs
}

// Detector classifies candlestick patterns from a market's recent candles.
// Detection is read only and prioritizes engulfing patterns, then single
// candle shapes, then three candle stars.
type Detector struct {
	cfg    *DetectorConfig
	cfgMtx sync.RWMutex
}

// NewDetector initializes a new pattern detector.
func NewDetector(cfg *DetectorConfig) (*Detector, error) {
	if cfg.DojiThreshold == 0 {
		cfg.DojiThreshold = DefaultDojiThreshold
	}
	if cfg.ShadowMultiplier == 0 {
		cfg.ShadowMultiplier = DefaultShadowMultiplier
	}
	if cfg.SmallShadowMultiplier == 0 {
		cfg.SmallShadowMultiplier = DefaultSmallShadowMultiplier
	}
	if cfg.LongBodyThreshold == 0 {
		cfg.LongBodyThreshold = DefaultLongBodyThreshold
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating detector config: %v", err)
	}

	return &Detector{
		cfg: cfg,
	}, nil
}

// UpdateConfig applies the provided partial configuration update. Fields
// absent from the patch keep their current values.
func (d *Detector) UpdateConfig(patch *ConfigPatch) error {
	if patch == nil {
		return nil
	}

	d.cfgMtx.Lock()
	defer d.cfgMtx.Unlock()

	next := *d.cfg
	if patch.DojiThreshold != nil {
		next.DojiThreshold = *patch.DojiThreshold
	}
	if patch.ShadowMultiplier != nil {
		next.ShadowMultiplier = *patch.ShadowMultiplier
	}
	if patch.SmallShadowMultiplier != nil {
		next.SmallShadowMultiplier = *patch.SmallShadowMultiplier
	}
	if patch.LongBodyThreshold != nil {
		next.LongBodyThreshold = *patch.LongBodyThreshold
	}
	if patch.EnableTrendCheck != nil {
		next.EnableTrendCheck = *patch.EnableTrendCheck
	}

	err := next.Validate()
	if err != nil {
		return fmt.Errorf("validating updated detector config: %v", err)
	}

	d.cfg = &next
	return nil
}

// trendConfirms checks whether recent closes confirm the provided direction.
// Short histories and disabled trend checking confirm unconditionally.
func (d *Detector) trendConfirms(closes []float64, direction shared.Sentiment) bool {
	if !d.cfg.EnableTrendCheck || len(closes) < trendWindow {
		return true
	}

	recent := closes[len(closes)-trendWindow:]
	current := recent[len(recent)-1]

	var sum float64
	for idx := range recent[:len(recent)-1] {
		sum += recent[idx]
	}
	mean := sum / float64(len(recent)-1)

	switch direction {
	case shared.Bullish:
		return current > mean
	case shared.Bearish:
		return current < mean
	default:
		return true
	}
}

// bullishEngulfing checks whether the current candle bullishly engulfs the
// previous one.
func (d *Detector) bullishEngulfing(previous *shared.Candlestick, current *shared.Candlestick, closes []float64) *Result {
	previousBearish := previous.Close < previous.Open
	currentBullish := current.Close > current.Open
	engulfs := current.Close >= previous.Open && current.Open <= previous.Close

	if !previousBearish || !currentBullish || !engulfs || !d.trendConfirms(closes, shared.Bullish) {
		return nil
	}

	confidence := baseConfidence
	if current.Body() > previous.Body() {
		confidence += confidenceStep
	}

	return &Result{
		Kind:       shared.BullishEngulfing,
		Sentiment:  shared.Bullish,
		Confidence: confidence,
	}
}

// bearishEngulfing checks whether the current candle bearishly engulfs the
// previous one.
func (d *Detector) bearishEngulfing(previous *shared.Candlestick, current *shared.Candlestick, closes []float64) *Result {
	previousBullish := previous.Close > previous.Open
	currentBearish := current.Close < current.Open
	engulfs := current.Close <= previous.Open && current.Open >= previous.Close

	if !previousBullish || !currentBearish || !engulfs || !d.trendConfirms(closes, shared.Bearish) {
		return nil
	}

	confidence := baseConfidence
	if current.Body() > previous.Body() {
		confidence += confidenceStep
	}

	return &Result{
		Kind:       shared.BearishEngulfing,
		Sentiment:  shared.Bearish,
		Confidence: confidence,
	}
}

// doji checks whether the current candle's body is negligible relative to
// its range. A dominant shadow on either side strengthens the match.
func (d *Detector) doji(current *shared.Candlestick) *Result {
	if current.Body() > d.cfg.DojiThreshold*current.Range() {
		return nil
	}

	confidence := baseConfidence
	upper := current.UpperShadow()
	lower := current.LowerShadow()
	switch {
	case upper > shadowBias*lower:
		confidence += confidenceStep
	case lower > shadowBias*upper:
		confidence += confidenceStep
	}

	return &Result{
		Kind:       shared.Doji,
		Sentiment:  shared.Neutral,
		Confidence: confidence,
	}
}

// hammer checks whether the current candle has a hammer shape, a long lower
// shadow with a small upper shadow. The shape is a hammer in a confirmed
// bullish trend and a hanging man otherwise.
func (d *Detector) hammer(current *shared.Candlestick, closes []float64) *Result {
	body := current.Body()
	if body == 0 {
		return nil
	}
	if current.LowerShadow() < d.cfg.ShadowMultiplier*body {
		return nil
	}
	if current.UpperShadow() > d.cfg.SmallShadowMultiplier*body {
		return nil
	}

	if d.trendConfirms(closes, shared.Bullish) {
		return &Result{
			Kind:       shared.Hammer,
			Sentiment:  shared.Bullish,
			Confidence: baseConfidence,
		}
	}

	return &Result{
		Kind:       shared.HangingMan,
		Sentiment:  shared.Bearish,
		Confidence: baseConfidence,
	}
}

// shootingStar checks whether the current candle has a shooting star shape,
// a long upper shadow with a small lower shadow. The shape is a shooting
// star in a confirmed bearish trend and an inverted hammer otherwise.
func (d *Detector) shootingStar(current *shared.Candlestick, closes []float64) *Result {
	body := current.Body()
	if body == 0 {
		return nil
	}
	if current.UpperShadow() < d.cfg.ShadowMultiplier*body {
		return nil
	}
	if current.LowerShadow() > d.cfg.SmallShadowMultiplier*body {
		return nil
	}

	if d.trendConfirms(closes, shared.Bearish) {
		return &Result{
			Kind:       shared.ShootingStar,
			Sentiment:  shared.Bearish,
			Confidence: baseConfidence,
		}
	}

	return &Result{
		Kind:       shared.InvertedHammer,
		Sentiment:  shared.Bullish,
		Confidence: baseConfidence,
	}
}

// morningStar checks whether the last three candles form a morning star, a
// long bearish candle followed by a small bodied candle and a long bullish
// candle closing above the midpoint of the first body.
func (d *Detector) morningStar(first *shared.Candlestick, middle *shared.Candlestick, current *shared.Candlestick, closes []float64) *Result {
	longBearish := first.Close < first.Open && first.Body() >= d.cfg.LongBodyThreshold*first.Range()
	smallMiddle := middle.Body() <= (1-d.cfg.LongBodyThreshold)*middle.Range()
	longBullish := current.Close > current.Open && current.Body() >= d.cfg.LongBodyThreshold*current.Range()
	midpoint := (first.Open + first.Close) / 2

	if !longBearish || !smallMiddle || !longBullish || current.Close <= midpoint {
		return nil
	}
	if !d.trendConfirms(closes, shared.Bullish) {
		return nil
	}

	return &Result{
		Kind:       shared.MorningStar,
		Sentiment:  shared.Bullish,
		Confidence: starConfidence,
	}
}

// eveningStar checks whether the last three candles form an evening star,
// the bearish mirror of the morning star.
func (d *Detector) eveningStar(first *shared.Candlestick, middle *shared.Candlestick, current *shared.Candlestick, closes []float64) *Result {
	longBullish := first.Close > first.Open && first.Body() >= d.cfg.LongBodyThreshold*first.Range()
	smallMiddle := middle.Body() <= (1-d.cfg.LongBodyThreshold)*middle.Range()
	longBearish := current.Close < current.Open && current.Body() >= d.cfg.LongBodyThreshold*current.Range()
	midpoint := (first.Open + first.Close) / 2

	if !longBullish || !smallMiddle || !longBearish || current.Close >= midpoint {
		return nil
	}
	if !d.trendConfirms(closes, shared.Bearish) {
		return nil
	}

	return &Result{
		Kind:       shared.EveningStar,
		Sentiment:  shared.Bearish,
		Confidence: starConfidence,
	}
}

// Detect classifies the pattern formed by the most recent candles. The
// first matching pattern wins. Detect returns nil when fewer than three
// candles are available or no pattern matches.
func (d *Detector) Detect(candles []*shared.Candlestick) *Result {
	if len(candles) < patternWindow {
		return nil
	}

	d.cfgMtx.RLock()
	defer d.cfgMtx.RUnlock()

	first := candles[len(candles)-3]
	previous := candles[len(candles)-2]
	current := candles[len(candles)-1]

	start := len(candles) - trendWindow
	if start < 0 {
		start = 0
	}
	closes := make([]float64, 0, trendWindow)
	for _, candle := range candles[start:] {
		closes = append(closes, candle.Close)
	}

	result := d.bullishEngulfing(previous, current, closes)
	if result != nil {
		return result
	}

	result = d.bearishEngulfing(previous, current, closes)
	if result != nil {
		return result
	}

	result = d.doji(current)
	if result != nil {
		return result
	}

	result = d.hammer(current, closes)
	if result != nil {
		return result
	}

	result = d.shootingStar(current, closes)
	if result != nil {
		return result
	}

	result = d.morningStar(first, previous, current, closes)
	if result != nil {
		return result
	}

	result = d.eveningStar(first, previous, current, closes)
	if result != nil {
		return result
	}

	return nil
}
