package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/consolesell/Lomu/service"
	"github.com/rs/zerolog"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Printf("loading config: %v", err)
		return
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Printf("parsing log level: %v", err)
		return
	}
	zerolog.SetGlobalLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lomuCfg := service.LomuConfig{
		Markets:              cfg.Markets,
		Timeframe:            int64(cfg.Timeframe),
		MaxCandles:           int32(cfg.MaxCandles),
		EnableTrendCheck:     !cfg.DisableTrendCheck,
		Backtest:             cfg.Backtest,
		BacktestDataFilepath: cfg.BacktestDataFilepath,
		DBEndpoint:           cfg.DBEndpoint,
		DBUser:               cfg.DBUser,
		DBPass:               cfg.DBPass,
		Debug:                cfg.Debug,
		Cancel:               cancel,
	}
	lomu, err := service.NewLomu(&lomuCfg)
	if err != nil {
		log.Printf("creating lomu service: %v", err)
		return
	}

	go handleTermination(ctx, cancel)
	lomu.Run(ctx)
}
