package database

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/consolesell/Lomu/indicator"
	"github.com/consolesell/Lomu/shared"
	"github.com/google/uuid"
	rqlitehttp "github.com/rqlite/rqlite-go-http"
	"github.com/rs/zerolog"
)

const (
	// SQL statements.
	createPatternSignalTableSQL = "CREATE TABLE IF NOT EXISTS patternsignal (id TEXT PRIMARY KEY, market TEXT, kind INTEGER, sentiment INTEGER, confidence REAL, createdon INTEGER)"
	createSnapshotTableSQL      = "CREATE TABLE IF NOT EXISTS indicatorsnapshot (id TEXT PRIMARY KEY, market TEXT, rsi REAL, sma REAL, bollingerupper REAL, bollingermiddle REAL, bollingerlower REAL, macdline REAL, macdsignal REAL, macdhistogram REAL, stochastick REAL, stochasticd REAL, adx REAL, obv REAL, sentiment REAL, volatility REAL, atr REAL, cci REAL, vwap REAL, createdon INTEGER)"
	createCorrelationTableSQL   = "CREATE TABLE IF NOT EXISTS correlation (id TEXT PRIMARY KEY, firstmarket TEXT, secondmarket TEXT, coefficient REAL, createdon INTEGER)"
	persistPatternSignalSQL     = "INSERT INTO patternsignal(id, market, kind, sentiment, confidence, createdon) VALUES(?,?,?,?,?,?)"
	persistSnapshotSQL          = "INSERT INTO indicatorsnapshot(id, market, rsi, sma, bollingerupper, bollingermiddle, bollingerlower, macdline, macdsignal, macdhistogram, stochastick, stochasticd, adx, obv, sentiment, volatility, atr, cci, vwap, createdon) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)"
	persistCorrelationSQL       = "INSERT INTO correlation(id, firstmarket, secondmarket, coefficient, createdon) VALUES(?,?,?,?,?)"
)

// SignalStorer defines the requirements for storing generated signals.
type SignalStorer interface {
	// PersistPatternSignal stores the provided pattern signal to the database.
	PersistPatternSignal(ctx context.Context, signal *shared.PatternSignal) error
	// PersistIndicatorSnapshot stores the provided indicator snapshot to the database.
	PersistIndicatorSnapshot(ctx context.Context, market string, snapshot *indicator.Snapshot) error
	// PersistCorrelations stores the provided correlation table to the database.
	PersistCorrelations(ctx context.Context, correlations map[indicator.Pair]float64) error
}

// DatabaseConfig is the configuration for the database.
type DatabaseConfig struct {
	// Endpoint represents the database connection endpoint.
	Endpoint string
	// User is the database user.
	User string
	// Pass is the database user pass.
	Pass string
	// Logger is the database logger.
	Logger *zerolog.Logger
}

// Database represents the database connection.
type Database struct {
	cfg    *DatabaseConfig
	client *rqlitehttp.Client
}

// Ensure the database implements the SignalStorer interface.
var _ SignalStorer = (*Database)(nil)

// NewDatabase initializes a new database connection.
func NewDatabase(ctx context.Context, cfg *DatabaseConfig) (*Database, error) {
	httpc := &http.Client{Timeout: time.Second * 5}
	client, err := rqlitehttp.NewClient(cfg.Endpoint, httpc)
	if err != nil {
		return nil, fmt.Errorf("Creating database client: %w", err)
	}

	client.SetBasicAuth(cfg.User, cfg.Pass)

	db := &Database{
		cfg:    cfg,
		client: client,
	}

	err = db.bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("Bootstrapping database: %w", err)
	}

	return db, nil
}

// bootstrap initializes the database.
func (db *Database) bootstrap(ctx context.Context) error {
	_, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{SQL: createPatternSignalTableSQL},
		{SQL: createSnapshotTableSQL},
		{SQL: createCorrelationTableSQL},
	}, &rqlitehttp.ExecuteOptions{
		Transaction: true,
		Timings:     true,
	})
	if err != nil {
		return err
	}

	return nil
}

// PersistPatternSignal stores the provided pattern signal to the database.
func (db *Database) PersistPatternSignal(ctx context.Context, signal *shared.PatternSignal) error {
	resp, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{
			SQL: persistPatternSignalSQL,
			PositionalParams: []any{signal.ID, signal.Market, int(signal.Kind),
				int(signal.Sentiment), signal.Confidence, signal.CreatedOn.Unix()},
		},
	}, &rqlitehttp.ExecuteOptions{Transaction: true, Timings: true})
	if err != nil {
		return err
	}

	has, idx, errStr := resp.HasError()
	if has {
		return fmt.Errorf("persisting %s pattern signal: %d -> %s", signal.Market, idx, errStr)
	}

	return nil
}

// PersistIndicatorSnapshot stores the provided indicator snapshot to the database.
func (db *Database) PersistIndicatorSnapshot(ctx context.Context, market string, snapshot *indicator.Snapshot) error {
	resp, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{
			SQL: persistSnapshotSQL,
			PositionalParams: []any{uuid.New().String(), market, snapshot.RSI, snapshot.SMA,
				snapshot.Bollinger.Upper, snapshot.Bollinger.Middle, snapshot.Bollinger.Lower,
				snapshot.MACD.Line, snapshot.MACD.Signal, snapshot.MACD.Histogram,
				snapshot.Stochastic.K, snapshot.Stochastic.D, snapshot.ADX, snapshot.OBV,
				snapshot.Sentiment, snapshot.Volatility, snapshot.ATR, snapshot.CCI,
				snapshot.VWAP, time.Now().UTC().Unix()},
		},
	}, &rqlitehttp.ExecuteOptions{Transaction: true, Timings: true})
	if err != nil {
		return err
	}

	has, idx, errStr := resp.HasError()
	if has {
		return fmt.Errorf("persisting %s indicator snapshot: %d -> %s", market, idx, errStr)
	}

	return nil
}

// PersistCorrelations stores the provided correlation table to the database.
func (db *Database) PersistCorrelations(ctx context.Context, correlations map[indicator.Pair]float64) error {
	if len(correlations) == 0 {
		return nil
	}

	now := time.Now().UTC().Unix()
	stmts := make(rqlitehttp.SQLStatements, 0, len(correlations))
	for pair, coefficient := range correlations {
		stmts = append(stmts, &rqlitehttp.SQLStatement{
			SQL:              persistCorrelationSQL,
			PositionalParams: []any{uuid.New().String(), pair.First, pair.Second, coefficient, now},
		})
	}

	resp, err := db.client.Execute(ctx, stmts, &rqlitehttp.ExecuteOptions{
		Transaction: true,
		Timings:     true,
	})
	if err != nil {
		return err
	}

	has, idx, errStr := resp.HasError()
	if has {
		return fmt.Errorf("persisting correlations: %d -> %s", idx, errStr)
	}

	return nil
}
