package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/consolesell/Lomu/database"
	"github.com/consolesell/Lomu/engine"
	"github.com/consolesell/Lomu/indicator"
	"github.com/consolesell/Lomu/market"
	"github.com/consolesell/Lomu/pattern"
	"github.com/consolesell/Lomu/shared"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

const (
	// correlationInterval is the interval between correlation refreshes.
	correlationInterval = time.Minute
)

// LomuConfig represents the configuration struct for the lomu service.
type LomuConfig struct {
	// Markets represents the tracked markets.
	Markets []string
	// Timeframe is the candle bucket width for aggregation, in seconds.
	Timeframe int64
	// MaxCandles is the maximum number of candles retained per market.
	MaxCandles int32
	// EnableTrendCheck toggles trend confirmation for directional patterns.
	EnableTrendCheck bool
	// Backtest is the backtesting flag.
	Backtest bool
	// BacktestDataFilepath is the filepath to the backtest data.
	BacktestDataFilepath string
	// DBEndpoint represents the database connection endpoint. Persistence
	// is disabled when unset.
	DBEndpoint string
	// DBUser is the database user.
	DBUser string
	// DBPass is the database user pass.
	DBPass string
	// Debug is the debug logging flag.
	Debug bool
	// Cancel is the context cancellation function.
	Cancel context.CancelFunc
}

// Validate asserts the config sane inputs.
func (cfg *LomuConfig) Validate() error {
	var errs error

	switch cfg.Backtest {
	case true:
		if cfg.BacktestDataFilepath == "" {
			errs = errors.Join(errs, fmt.Errorf("backtest data filepath cannot be an empty string"))
		}
	case false:
		if len(cfg.Markets) == 0 {
			errs = errors.Join(errs, fmt.Errorf("no markets provided for lomu service"))
		}
	}
	if cfg.Timeframe <= 0 {
		errs = errors.Join(errs, fmt.Errorf("timeframe must be positive, got %d", cfg.Timeframe))
	}
	if cfg.MaxCandles <= 0 {
		errs = errors.Join(errs, fmt.Errorf("max candles must be positive, got %d", cfg.MaxCandles))
	}
	if cfg.Cancel == nil {
		errs = errors.Join(errs, fmt.Errorf("context cancellation function cannot be nil"))
	}

	return errs
}

// Lomu represents a market signal generation service.
type Lomu struct {
	cfg           *LomuConfig
	marketManager *market.Manager
	detector      *pattern.Detector
	indicators    *indicator.Engine
	signalEngine  *engine.Engine
	historicData  *shared.HistoricData
	jobScheduler  gocron.Scheduler
	db            database.SignalStorer
	ctx           context.Context
	logger        *zerolog.Logger
	wg            sync.WaitGroup
}

// NewLomu initializes a new lomu service.
func NewLomu(cfg *LomuConfig) (*Lomu, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating service config: %v", err)
	}

	var service *Lomu
	var marketMgr *market.Manager
	var signalEngine *engine.Engine

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logger := log.With().Str("service", "lomu").Logger()

	signalUpdateFunc := func(mkt string) {
		if signalEngine != nil {
			signalEngine.SendMarketUpdate(mkt)
		}
	}

	sendPatternSignalFunc := func(signal shared.PatternSignal) {
		if service != nil {
			service.handlePatternSignal(signal)
		}
	}

	detectorLogger := logger.With().Str("component", "patterndetector").Logger()
	detector, err := pattern.NewDetector(&pattern.DetectorConfig{
		EnableTrendCheck: cfg.EnableTrendCheck,
		Logger:           &detectorLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating pattern detector: %v", err)
	}

	indicatorLogger := logger.With().Str("component", "indicatorengine").Logger()
	indicators, err := indicator.NewEngine(&indicator.EngineConfig{
		Debug:  cfg.Debug,
		Logger: &indicatorLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating indicator engine: %v", err)
	}

	marketMgrLogger := logger.With().Str("component", "marketmanager").Logger()
	marketMgr, err = market.NewManager(&market.ManagerConfig{
		Markets:      cfg.Markets,
		Timeframe:    shared.Timeframe(cfg.Timeframe),
		MaxCandles:   cfg.MaxCandles,
		SignalUpdate: signalUpdateFunc,
		Logger:       &marketMgrLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating market manager: %v", err)
	}

	engineLogger := logger.With().Str("component", "signalengine").Logger()
	signalEngine = engine.NewEngine(&engine.EngineConfig{
		RequestCandles:    marketMgr.SendCandlesRequest,
		SendPatternSignal: sendPatternSignalFunc,
		Detector:          detector,
		Indicators:        indicators,
		Debug:             cfg.Debug,
		Logger:            &engineLogger,
	})

	var historicData *shared.HistoricData
	if cfg.Backtest {
		historicDataLogger := logger.With().Str("component", "historicdata").Logger()
		historicData, err = shared.NewHistoricData(&shared.HistoricDataConfig{
			FilePath:    cfg.BacktestDataFilepath,
			ProcessTick: marketMgr.AddHistoricalTick,
			Logger:      &historicDataLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating historic data: %v", err)
		}
	}

	jobScheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating job scheduler: %w", err)
	}

	_, err = jobScheduler.NewJob(gocron.DurationJob(correlationInterval),
		gocron.NewTask(func() {
			if service != nil {
				service.refreshCorrelations()
			}
		}))
	if err != nil {
		return nil, fmt.Errorf("creating correlation job: %v", err)
	}

	service = &Lomu{
		cfg:           cfg,
		marketManager: marketMgr,
		detector:      detector,
		indicators:    indicators,
		signalEngine:  signalEngine,
		historicData:  historicData,
		jobScheduler:  jobScheduler,
		logger:        &logger,
	}

	return service, nil
}

// handlePatternSignal processes the provided pattern signal.
func (l *Lomu) handlePatternSignal(signal shared.PatternSignal) {
	l.logger.Info().Msgf("%s: detected %s (%s, confidence %.2f)", signal.Market,
		signal.Kind.String(), signal.Sentiment.String(), signal.Confidence)

	if l.db != nil {
		err := l.db.PersistPatternSignal(l.ctx, &signal)
		if err != nil {
			l.logger.Error().Msgf("persisting %s pattern signal: %v", signal.Market, err)
		}

		snapshot := l.indicators.Indicators()
		err = l.db.PersistIndicatorSnapshot(l.ctx, signal.Market, &snapshot)
		if err != nil {
			l.logger.Error().Msgf("persisting %s indicator snapshot: %v", signal.Market, err)
		}
	}

	if signal.Status != nil {
		signal.Status <- shared.Processed
	}
}

// refreshCorrelations recomputes cross market correlations from the current
// candle histories.
func (l *Lomu) refreshCorrelations() {
	names := l.marketManager.Markets()
	histories := make(map[string][]*shared.Candlestick, len(names))
	for _, name := range names {
		histories[name] = l.marketManager.Candles(name)
	}

	l.indicators.UpdateCorrelations(histories)

	if l.db != nil {
		err := l.db.PersistCorrelations(l.ctx, l.indicators.Correlations())
		if err != nil {
			l.logger.Error().Msgf("persisting correlations: %v", err)
		}
	}
}

// Run handles the lifecycle processes of the lomu service.
func (l *Lomu) Run(ctx context.Context) {
	l.ctx = ctx

	if l.cfg.DBEndpoint != "" {
		dbLogger := l.logger.With().Str("component", "database").Logger()
		db, err := database.NewDatabase(ctx, &database.DatabaseConfig{
			Endpoint: l.cfg.DBEndpoint,
			User:     l.cfg.DBUser,
			Pass:     l.cfg.DBPass,
			Logger:   &dbLogger,
		})
		if err != nil {
			l.logger.Error().Msgf("creating database: %v", err)
			l.cfg.Cancel()
			return
		}

		l.db = db
	} else {
		l.logger.Info().Msg("no database endpoint configured, persistence disabled")
	}

	l.wg.Add(2)

	go func() {
		l.marketManager.Run(ctx)
		l.wg.Done()
	}()

	go func() {
		l.signalEngine.Run(ctx)
		l.wg.Done()
	}()

	l.jobScheduler.Start()

	if l.cfg.Backtest {
		go func() {
			// wait briefly for initialization.
			time.Sleep(time.Second * 1)
			err := l.historicData.ProcessHistoricData()
			if err != nil {
				l.logger.Error().Msgf("processing historic data: %v", err)
			}

			l.logger.Info().Msgf("backtest for %s done", l.historicData.FetchMarket())
			l.cfg.Cancel()
		}()
	}

	l.wg.Wait()

	err := l.jobScheduler.Shutdown()
	if err != nil {
		l.logger.Error().Msgf("shutting down job scheduler: %v", err)
	}
}
