package main

import (
	"flag"
	"os"
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr []string
	}{
		{
			name: "valid config, not backtest",
			cfg: Config{
				Markets:    []string{"AAPL", "GOOG"},
				Timeframe:  60,
				MaxCandles: 100,
				Backtest:   false,
			},
			wantErr: nil,
		},
		{
			name: "missing markets, not backtest",
			cfg: Config{
				Markets:    []string{},
				Timeframe:  60,
				MaxCandles: 100,
				Backtest:   false,
			},
			wantErr: []string{"no markets provided for lomu service"},
		},
		{
			name: "backtest true, valid filepath",
			cfg: Config{
				Backtest:             true,
				BacktestDataFilepath: "/tmp/data.json",
				Timeframe:            60,
				MaxCandles:           100,
			},
			wantErr: nil,
		},
		{
			name: "backtest true, missing filepath",
			cfg: Config{
				Backtest:   true,
				Timeframe:  60,
				MaxCandles: 100,
			},
			wantErr: []string{"backtest data filepath cannot be an empty string"},
		},
		{
			name: "non-positive timeframe",
			cfg: Config{
				Markets:    []string{"AAPL"},
				Timeframe:  -5,
				MaxCandles: 100,
			},
			wantErr: []string{"timeframe must be positive, got -5"},
		},
		{
			name: "non-positive max candles",
			cfg: Config{
				Markets:    []string{"AAPL"},
				Timeframe:  60,
				MaxCandles: -1,
			},
			wantErr: []string{"max candles must be positive, got -1"},
		},
		{
			name: "missing both markets and timeframe",
			cfg: Config{
				Markets:    []string{},
				MaxCandles: 100,
			},
			wantErr: []string{
				"no markets provided for lomu service",
				"timeframe must be positive, got 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("expected error(s) %v, got none", tt.wantErr)
					return
				}
				for _, want := range tt.wantErr {
					if !strings.Contains(err.Error(), want) {
						t.Errorf("expected error to contain %q, got %v", want, err)
					}
				}
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	// Save and restore original os.Args and environment
	origArgs := os.Args
	origEnv := os.Environ()
	defer func() {
		os.Args = origArgs
		for _, kv := range origEnv {
			parts := strings.SplitN(kv, "=", 2)
			if len(parts) == 2 {
				os.Setenv(parts[0], parts[1])
			}
		}
	}()

	tests := []struct {
		name        string
		env         map[string]string
		args        []string
		expectErr   bool
		expectInErr []string
		expectCfg   Config
	}{
		{
			name: "all from env, not backtest",
			env: map[string]string{
				"markets":    "AAPL,GOOG",
				"timeframe":  "120",
				"maxcandles": "50",
			},
			args:      []string{"cmd"},
			expectErr: false,
			expectCfg: Config{
				Markets:    []string{"AAPL", "GOOG"},
				Timeframe:  120,
				MaxCandles: 50,
				Backtest:   false,
			},
		},
		{
			name:      "all from flags, not backtest",
			env:       map[string]string{},
			args:      []string{"cmd", "-markets=AAPL,GOOG", "-timeframe=120", "-maxcandles=50"},
			expectErr: false,
			expectCfg: Config{
				Markets:    []string{"AAPL", "GOOG"},
				Timeframe:  120,
				MaxCandles: 50,
				Backtest:   false,
			},
		},
		{
			name: "defaults applied for unset values",
			env: map[string]string{
				"markets": "AAPL",
			},
			args:      []string{"cmd"},
			expectErr: false,
			expectCfg: Config{
				Markets:    []string{"AAPL"},
				LogLevel:   "info",
				Timeframe:  60,
				MaxCandles: 100,
				Backtest:   false,
			},
		},
		{
			name:        "missing markets",
			env:         map[string]string{},
			args:        []string{"cmd"},
			expectErr:   true,
			expectInErr: []string{"no markets provided for lomu service"},
		},
		{
			name: "backtest true, missing filepath",
			env: map[string]string{
				"backtest": "true",
			},
			args:        []string{"cmd"},
			expectErr:   true,
			expectInErr: []string{"backtest data filepath cannot be an empty string"},
		},
		{
			name: "backtest true, filepath from flag",
			env: map[string]string{
				"backtest": "true",
			},
			args:      []string{"cmd", "-backtestdatafilepath=/tmp/data.json"},
			expectErr: false,
			expectCfg: Config{
				Backtest:             true,
				BacktestDataFilepath: "/tmp/data.json",
				Timeframe:            60,
				MaxCandles:           100,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags for each test
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			// Set environment variables
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			// Set command-line arguments
			os.Args = tt.args

			var cfg Config
			err := loadConfig(&cfg, "") // don't load .env file

			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				for _, want := range tt.expectInErr {
					if !strings.Contains(err.Error(), want) {
						t.Errorf("expected error to contain %q, got %v", want, err)
					}
				}
			} else {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				// Only check fields that are set in expectCfg
				if len(tt.expectCfg.Markets) != len(cfg.Markets) {
					t.Errorf("Markets: got %v (%d), want %v (%d)", cfg.Markets, len(cfg.Markets), tt.expectCfg.Markets, len(tt.expectCfg.Markets))
				}
				if tt.expectCfg.LogLevel != "" && cfg.LogLevel != tt.expectCfg.LogLevel {
					t.Errorf("LogLevel: got %v, want %v", cfg.LogLevel, tt.expectCfg.LogLevel)
				}
				if tt.expectCfg.Timeframe != 0 && cfg.Timeframe != tt.expectCfg.Timeframe {
					t.Errorf("Timeframe: got %v, want %v", cfg.Timeframe, tt.expectCfg.Timeframe)
				}
				if tt.expectCfg.MaxCandles != 0 && cfg.MaxCandles != tt.expectCfg.MaxCandles {
					t.Errorf("MaxCandles: got %v, want %v", cfg.MaxCandles, tt.expectCfg.MaxCandles)
				}
				if cfg.Backtest != tt.expectCfg.Backtest {
					t.Errorf("Backtest: got %v, want %v", cfg.Backtest, tt.expectCfg.Backtest)
				}
				if tt.expectCfg.BacktestDataFilepath != "" && cfg.BacktestDataFilepath != tt.expectCfg.BacktestDataFilepath {
					t.Errorf("BacktestDataFilepath: got %v, want %v", cfg.BacktestDataFilepath, tt.expectCfg.BacktestDataFilepath)
				}
			}

			// Clean up env
			for k := range tt.env {
				os.Unsetenv(k)
			}
		})
	}
}
