package market

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/consolesell/Lomu/shared"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"go.uber.org/atomic"
)

const (
	// bufferSize is the default buffer size for channels.
	bufferSize = 64
)

// ManagerConfig represents the market manager configuration.
type ManagerConfig struct {
	// Markets represents the collection of names of the markets to manage.
	Markets []string
	// Timeframe is the candle bucket width used for tick aggregation.
	Timeframe shared.Timeframe
	// MaxCandles is the maximum number of candles retained per market.
	MaxCandles int32
	// SignalUpdate relays a market update notification for evaluation.
	SignalUpdate func(market string)
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// ConfigPatch represents a partial update to the market manager
// configuration. Nil fields leave their current values unchanged.
type ConfigPatch struct {
	// Timeframe is the replacement candle bucket width, in seconds.
	Timeframe *int64
	// MaxCandles is the replacement per-market candle capacity.
	MaxCandles *int32
}

// Manager aggregates ticks into candles for all tracked markets.
type Manager struct {
	cfg            *ManagerConfig
	timeframe      atomic.Int64
	maxCandles     atomic.Int32
	markets        map[string]*Market
	workers        map[string]chan struct{}
	marketsMtx     sync.RWMutex
	ticks          chan shared.Tick
	candleSignals  chan shared.Candlestick
	candleRequests chan shared.CandlesRequest
}

// NewManager initializes a new market manager.
func NewManager(cfg *ManagerConfig) (*Manager, error) {
	if cfg.Timeframe <= 0 {
		return nil, fmt.Errorf("timeframe must be positive, got %d", cfg.Timeframe)
	}
	if cfg.MaxCandles <= 0 {
		return nil, fmt.Errorf("max candles must be positive, got %d", cfg.MaxCandles)
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}

	m := &Manager{
		cfg:            cfg,
		markets:        make(map[string]*Market),
		workers:        make(map[string]chan struct{}),
		ticks:          make(chan shared.Tick, bufferSize),
		candleSignals:  make(chan shared.Candlestick, bufferSize),
		candleRequests: make(chan shared.CandlesRequest, bufferSize),
	}
	m.timeframe.Store(cfg.Timeframe.Seconds())
	m.maxCandles.Store(cfg.MaxCandles)

	for idx := range cfg.Markets {
		_, _, err := m.fetchMarket(cfg.Markets[idx])
		if err != nil {
			return nil, fmt.Errorf("creating %s market: %v", cfg.Markets[idx], err)
		}
	}

	return m, nil
}

// fetchMarket returns the named market and its worker, creating both when
// the market is not yet tracked.
func (m *Manager) fetchMarket(name string) (*Market, chan struct{}, error) {
	m.marketsMtx.RLock()
	mkt, ok := m.markets[name]
	worker := m.workers[name]
	m.marketsMtx.RUnlock()
	if ok {
		return mkt, worker, nil
	}

	m.marketsMtx.Lock()
	defer m.marketsMtx.Unlock()
	if mkt, ok := m.markets[name]; ok {
		return mkt, m.workers[name], nil
	}

	mkt, err := NewMarket(&MarketConfig{
		Market:     name,
		MaxCandles: m.maxCandles.Load(),
	})
	if err != nil {
		return nil, nil, err
	}

	// A dedicated single-slot worker keeps each market's updates ordered.
	worker = make(chan struct{}, 1)
	m.markets[name] = mkt
	m.workers[name] = worker

	return mkt, worker, nil
}

// AddTick folds the provided tick into the named market's candle history,
// tracking the market if it is not yet known.
func (m *Manager) AddTick(market string, price float64, volume float64, at time.Time) error {
	err := validateTick(price, at)
	if err != nil {
		return err
	}

	mkt, _, err := m.fetchMarket(market)
	if err != nil {
		return fmt.Errorf("creating %s market: %v", market, err)
	}

	err = mkt.AddTick(price, volume, at, shared.Timeframe(m.timeframe.Load()))
	if err != nil {
		return err
	}

	if m.cfg.SignalUpdate != nil {
		m.cfg.SignalUpdate(market)
	}

	return nil
}

// AddHistoricalTick records a tick sourced from historic market data. The
// timestamp may be epoch seconds or a formatted date string. Unset volumes
// default to one unit here, unlike live ticks which default to zero.
func (m *Manager) AddHistoricalTick(market string, price float64, volume float64, timestamp gjson.Result) error {
	at, err := shared.ParseTimestamp(timestamp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if volume == 0 {
		volume = 1
	}

	return m.AddTick(market, price, volume, at)
}

// AddCandle inserts a complete candle into the named market's history,
// bypassing tick aggregation.
func (m *Manager) AddCandle(market string, candle *shared.Candlestick) error {
	mkt, _, err := m.fetchMarket(market)
	if err != nil {
		return fmt.Errorf("creating %s market: %v", market, err)
	}

	err = mkt.AddCandle(candle)
	if err != nil {
		return err
	}

	if m.cfg.SignalUpdate != nil {
		m.cfg.SignalUpdate(market)
	}

	return nil
}

// Candles returns the ordered candle history of the named market. An
// untracked market yields no candles and is not created.
func (m *Manager) Candles(market string) []*shared.Candlestick {
	m.marketsMtx.RLock()
	mkt, ok := m.markets[market]
	m.marketsMtx.RUnlock()
	if !ok {
		return []*shared.Candlestick{}
	}

	return mkt.Candles()
}

// Markets returns the sorted names of all tracked markets.
func (m *Manager) Markets() []string {
	m.marketsMtx.RLock()
	names := make([]string, 0, len(m.markets))
	for name := range m.markets {
		names = append(names, name)
	}
	m.marketsMtx.RUnlock()

	slices.Sort(names)
	return names
}

// Timeframe returns the candle bucket width applied to incoming ticks.
func (m *Manager) Timeframe() shared.Timeframe {
	return shared.Timeframe(m.timeframe.Load())
}

// SetTimeframe replaces the bucket width applied to subsequent ticks.
// Candles already aggregated keep their original buckets.
func (m *Manager) SetTimeframe(seconds int64) error {
	if seconds <= 0 {
		return fmt.Errorf("%w: timeframe must be positive, got %d", ErrInvalidInput, seconds)
	}

	m.timeframe.Store(seconds)
	return nil
}

// UpdateConfig applies the provided partial configuration update. The
// whole patch is validated before any field applies, a rejected patch
// leaves the prior configuration untouched.
func (m *Manager) UpdateConfig(patch *ConfigPatch) error {
	if patch == nil {
		return nil
	}

	if patch.Timeframe != nil && *patch.Timeframe <= 0 {
		return fmt.Errorf("%w: timeframe must be positive, got %d", ErrInvalidInput, *patch.Timeframe)
	}
	if patch.MaxCandles != nil && *patch.MaxCandles <= 0 {
		return fmt.Errorf("%w: max candles must be positive, got %d", ErrInvalidInput, *patch.MaxCandles)
	}

	if patch.Timeframe != nil {
		m.timeframe.Store(*patch.Timeframe)
	}

	if patch.MaxCandles != nil {
		size := *patch.MaxCandles
		m.maxCandles.Store(size)

		m.marketsMtx.RLock()
		defer m.marketsMtx.RUnlock()
		for name, mkt := range m.markets {
			err := mkt.candles.Resize(size)
			if err != nil {
				return fmt.Errorf("resizing %s candle history: %v", name, err)
			}
		}
	}

	return nil
}

// SendTick relays the provided tick for processing.
func (m *Manager) SendTick(tick shared.Tick) {
	select {
	case m.ticks <- tick:
		// do nothing.
	default:
		m.cfg.Logger.Error().Msgf("tick channel at capacity: %d/%d",
			len(m.ticks), bufferSize)
	}
}

// SendCandle relays the provided candle for processing.
func (m *Manager) SendCandle(candle shared.Candlestick) {
	select {
	case m.candleSignals <- candle:
		// do nothing.
	default:
		m.cfg.Logger.Error().Msgf("candle channel at capacity: %d/%d",
			len(m.candleSignals), bufferSize)
	}
}

// SendCandlesRequest relays the provided candles request for processing.
func (m *Manager) SendCandlesRequest(req shared.CandlesRequest) {
	select {
	case m.candleRequests <- req:
		// do nothing.
	default:
		m.cfg.Logger.Error().Msgf("candles request channel at capacity: %d/%d",
			len(m.candleRequests), bufferSize)
	}
}

// handleTick processes the provided tick.
func (m *Manager) handleTick(tick *shared.Tick) {
	err := m.AddTick(tick.Market, tick.Price, tick.Volume, tick.Time)
	if err != nil {
		m.cfg.Logger.Error().Msgf("adding %s tick: %v", tick.Market, err)
	}

	if tick.Status != nil {
		tick.Status <- shared.Processed
	}
}

// handleCandle processes the provided candle.
func (m *Manager) handleCandle(candle *shared.Candlestick) {
	err := m.AddCandle(candle.Market, candle)
	if err != nil {
		m.cfg.Logger.Error().Msgf("adding %s candle: %v", candle.Market, err)
	}
}

// handleCandlesRequest processes the provided candles request.
func (m *Manager) handleCandlesRequest(req *shared.CandlesRequest) {
	req.Response <- m.Candles(req.Market)
}

// Run manages the lifecycle processes of the market manager.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case tick := <-m.ticks:
			_, worker, err := m.fetchMarket(tick.Market)
			if err != nil {
				m.cfg.Logger.Error().Msgf("creating %s market: %v", tick.Market, err)
				continue
			}

			// use the dedicated market worker to handle the tick.
			worker <- struct{}{}
			go func(tick *shared.Tick) {
				m.handleTick(tick)
				<-worker
			}(&tick)
		case candle := <-m.candleSignals:
			_, worker, err := m.fetchMarket(candle.Market)
			if err != nil {
				m.cfg.Logger.Error().Msgf("creating %s market: %v", candle.Market, err)
				continue
			}

			worker <- struct{}{}
			go func(candle *shared.Candlestick) {
				m.handleCandle(candle)
				<-worker
			}(&candle)
		case req := <-m.candleRequests:
			go m.handleCandlesRequest(&req)
		default:
			// fallthrough
		}
	}
}
