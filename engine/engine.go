package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/consolesell/Lomu/indicator"
	"github.com/consolesell/Lomu/pattern"
	"github.com/consolesell/Lomu/shared"
	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
)

const (
	// bufferSize is the default buffer size for channels.
	bufferSize = 64
	// maxWorkers is the maximum number of concurrent workers.
	maxWorkers = 16
)

// EngineConfig represents the signal engine configuration.
type EngineConfig struct {
	// RequestCandles relays the provided candles request for processing.
	RequestCandles func(req shared.CandlesRequest)
	// SendPatternSignal relays the provided pattern signal for processing.
	SendPatternSignal func(signal shared.PatternSignal)
	// Detector classifies candlestick patterns from recent candles.
	Detector *pattern.Detector
	// Indicators computes technical indicators from candle histories.
	Indicators *indicator.Engine
	// Debug toggles verbose pattern signal dumps.
	Debug bool
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Engine evaluates market updates, refreshing indicators and emitting
// signals for detected candlestick patterns.
type Engine struct {
	cfg           *EngineConfig
	updateSignals chan string
	workers       chan struct{}
}

// NewEngine initializes a new signal engine.
func NewEngine(cfg *EngineConfig) *Engine {
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}

	return &Engine{
		cfg:           cfg,
		updateSignals: make(chan string, bufferSize),
		workers:       make(chan struct{}, maxWorkers),
	}
}

// SendMarketUpdate relays the provided market update for evaluation.
func (e *Engine) SendMarketUpdate(market string) {
	select {
	case e.updateSignals <- market:
		// do nothing.
	default:
		e.cfg.Logger.Error().Msgf("market update channel at capacity: %d/%d",
			len(e.updateSignals), bufferSize)
	}
}

// handleMarketUpdate processes the provided market update.
func (e *Engine) handleMarketUpdate(market string) error {
	// Fetch the market's current candle history.
	req := shared.NewCandlesRequest(market)
	e.cfg.RequestCandles(req)

	var candles []*shared.Candlestick
	select {
	case candles = <-req.Response:
		// do nothing.
	case <-time.After(shared.TimeoutDuration):
		return fmt.Errorf("timed out waiting for %s candles", market)
	}

	e.cfg.Indicators.UpdateIndicators(candles)

	result := e.cfg.Detector.Detect(candles)
	if result == nil {
		return nil
	}

	signal := shared.NewPatternSignal(market, result.Kind, result.Sentiment,
		result.Confidence, time.Now().UTC())
	if e.cfg.Debug {
		e.cfg.Logger.Debug().Msg(spew.Sdump(signal))
	}

	e.cfg.SendPatternSignal(signal)

	return nil
}

// Run manages the lifecycle processes of the signal engine.
func (e *Engine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case market := <-e.updateSignals:
			// use workers to process market updates concurrently.
			e.workers <- struct{}{}
			go func(market string) {
				err := e.handleMarketUpdate(market)
				if err != nil {
					e.cfg.Logger.Error().Err(err).Send()
				}
				<-e.workers
			}(market)
		default:
			// fallthrough
		}
	}
}
