package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/venicebot/config"
	"github.com/alejandrodnm/venicebot/internal/adapters/notify"
	"github.com/alejandrodnm/venicebot/internal/adapters/pricefeed"
	"github.com/alejandrodnm/venicebot/internal/adapters/storage"
	"github.com/alejandrodnm/venicebot/internal/domain"
	"github.com/alejandrodnm/venicebot/internal/engine"
	"github.com/alejandrodnm/venicebot/internal/liquidity"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one monitor cycle and exit")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full path table (default: compact 1-line)")
	backtest := flag.Bool("backtest", false, "replay stored snapshot history and exit")
	backtestDays := flag.Int("backtest-days", 30, "days of history for -backtest")
	paper := flag.Bool("paper", false, "paper trading mode: execute opportunities on virtual capital")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("venicebot starting",
		"config", *configPath,
		"interval", cfg.Interval(),
		"once", *once,
		"backtest", *backtest,
		"paper", *paper,
	)

	universe := cfg.UniverseTokens()

	sources := []pricefeed.Source{
		pricefeed.NewCoinGecko(cfg.API.CoinGeckoBase, cfg.API.CoinGeckoKey),
	}
	if cfg.API.CoinMarketCapKey != "" {
		sources = append(sources, pricefeed.NewCoinMarketCap(cfg.API.CoinMarketCapBase, cfg.API.CoinMarketCapKey))
	} else {
		slog.Warn("COINMARKETCAP_API_KEY not set — running on CoinGecko only")
	}

	feedUniverse := append([]domain.Token{domain.Token(cfg.Monitor.BaseToken)}, universe...)
	feed := pricefeed.NewTracker(sources, pricefeed.NewMintRateClient(cfg.API.MintRateURL), feedUniverse)
	pools := pricefeed.NewDexScreener(cfg.API.DexScreenerBase, cfg.API.ChainID, feedUniverse)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	notifier := notify.NewConsole(*table || *backtest)
	index := liquidity.NewIndex()

	engineCfg := engine.Config{
		Interval: cfg.Interval(),
		Enumerator: engine.EnumeratorConfig{
			Base:     domain.Token(cfg.Monitor.BaseToken),
			Derived:  domain.Token(cfg.Monitor.DerivedToken),
			Universe: universe,
			MaxHops:  cfg.Monitor.MaxHops,
		},
		Costs: domain.CostModel{
			PerHopCostUSD:      cfg.Monitor.PerHopCostUSD,
			MintCostMultiplier: cfg.Monitor.MintCostMultiplier,
		},
		Viability: engine.ViabilityConfig{
			MinLiquidityUSD:  cfg.Monitor.MinLiquidityUSD,
			MaxTradeFraction: cfg.Monitor.MaxTradeFraction,
		},
		StartAmountUSD:    cfg.Monitor.StartAmountUSD,
		MinProfitPct:      cfg.Monitor.MinProfitPct,
		MinSpreadAlertPct: cfg.Monitor.MinSpreadAlertPct,
		CrossVenueMinPct:  cfg.Monitor.CrossVenueMinPct,
		Once:              *once,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *backtest {
		runBacktest(ctx, engineCfg, index, pools, store, notifier, *backtestDays)
		return
	}

	var ledger *engine.Ledger
	if *paper {
		ledger = engine.NewLedger(cfg.Paper.InitialCapitalUSD)
	}

	m := engine.NewMonitor(engineCfg, feed, pools, index, store, notifier, ledger)

	if err := m.Run(ctx); err != nil {
		slog.Error("monitor exited with error", "err", err)
		os.Exit(1)
	}

	if ledger != nil {
		notifier.PrintPerformance(ledger.Performance())
	}

	slog.Info("venicebot stopped cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
