package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/alejandrodnm/venicebot/internal/adapters/notify"
	"github.com/alejandrodnm/venicebot/internal/adapters/storage"
	"github.com/alejandrodnm/venicebot/internal/engine"
	"github.com/alejandrodnm/venicebot/internal/liquidity"
	"github.com/alejandrodnm/venicebot/internal/ports"
)

// runBacktest reproduce la evaluación sobre el histórico de snapshots
// persistido y presenta el summary.
func runBacktest(
	ctx context.Context,
	cfg engine.Config,
	index *liquidity.Index,
	pools ports.PoolProvider,
	store *storage.SQLiteStorage,
	notifier *notify.Console,
	days int,
) {
	slog.Info("=== BACKTEST MODE: replaying stored snapshot history ===", "days", days)

	// Pools actuales: el histórico de snapshots no los incluye, así que el
	// run usa la mejor foto de liquidez disponible hoy. El path de minteo
	// no depende de pools y siempre participa.
	if discovered, err := pools.FetchPools(ctx); err != nil {
		slog.Warn("pool discovery failed — swap paths excluded from backtest", "err", err)
	} else {
		for _, p := range discovered {
			index.Register(p)
		}
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)

	snapshots, err := store.GetSnapshotHistory(ctx, from, to)
	if err != nil {
		slog.Error("failed to load snapshot history", "err", err)
		return
	}
	if len(snapshots) == 0 {
		slog.Warn("no stored snapshots in range — run the monitor first to accumulate history")
		return
	}

	slog.Info("replaying", "snapshots", len(snapshots), "from", from.Format(time.DateOnly))

	bt := engine.NewBacktester(engine.BacktestConfig{
		Enumerator:     cfg.Enumerator,
		StartAmountUSD: cfg.StartAmountUSD,
		MinProfitPct:   cfg.MinProfitPct,
	}, index, cfg.Costs, cfg.Viability)

	summary := bt.Run(snapshots)
	notifier.PrintBacktest(summary)

	slog.Info("backtest complete",
		"ticks", summary.Ticks,
		"trades", summary.TotalTrades,
		"total_profit", summary.TotalProfitUSD,
	)
}
