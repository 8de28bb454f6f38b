package engine

// backtest.go — reproduce la evaluación de paths sobre una serie histórica
// de snapshots y agrega los resultados en estadísticas de performance.
//
// El runner es una reducción pura sobre la secuencia: no muta snapshots ni
// índice, y correrlo dos veces sobre la misma entrada produce el mismo
// summary. El capital NO se compone entre ticks — cada tick evalúa con el
// mismo StartAmountUSD para que las evaluaciones sean comparables.

import (
	"github.com/alejandrodnm/venicebot/internal/domain"
	"github.com/alejandrodnm/venicebot/internal/liquidity"
	"github.com/google/uuid"
)

// BacktestConfig parametriza un run histórico.
type BacktestConfig struct {
	Enumerator     EnumeratorConfig
	StartAmountUSD float64
	// MinProfitPct es el umbral accionable como fracción (0.01 = 1%).
	// Solo los ticks cuyo mejor path lo supera generan TradeRecord.
	MinProfitPct float64
}

// Backtester itera snapshots en orden cronológico aplicando
// enumerate → evaluate → select en cada tick.
// Los snapshots deben venir pre-ordenados por timestamp; el runner no
// reordena.
type Backtester struct {
	cfg   BacktestConfig
	index *liquidity.Index
	eval  *Evaluator
}

// NewBacktester crea un Backtester sobre el índice de liquidez dado.
func NewBacktester(cfg BacktestConfig, index *liquidity.Index, costs domain.CostModel, viability ViabilityConfig) *Backtester {
	return &Backtester{
		cfg:   cfg,
		index: index,
		eval:  NewEvaluator(index, costs, domain.VVV, viability),
	}
}

// Run procesa la secuencia completa y devuelve el summary agregado.
// Con una secuencia vacía devuelve un summary a cero, nunca falla.
func (b *Backtester) Run(snapshots []domain.MarketSnapshot) domain.BacktestSummary {
	summary := domain.BacktestSummary{StartAmountUSD: b.cfg.StartAmountUSD}

	// Curva de equity acumulada para el drawdown.
	equity, peak, maxDrawdown := 0.0, 0.0, 0.0

	for _, snap := range snapshots {
		summary.Ticks++

		paths := Enumerate(b.cfg.Enumerator, b.index)
		results := b.eval.EvaluateAll(paths, snap, b.cfg.StartAmountUSD)

		best, ok := SelectBest(results)
		if !ok || best.ProfitPct < b.cfg.MinProfitPct {
			continue
		}

		record := domain.TradeRecord{
			ID:            uuid.New().String(),
			Timestamp:     snap.Timestamp,
			Result:        best,
			CapitalBefore: b.cfg.StartAmountUSD,
			CapitalAfter:  b.cfg.StartAmountUSD + best.NetProfitUSD,
		}
		summary.Trades = append(summary.Trades, record)

		summary.TotalTrades++
		if best.NetProfitUSD > 0 {
			summary.WinningTrades++
		} else {
			summary.LosingTrades++
		}
		summary.TotalProfitUSD += best.NetProfitUSD

		equity += best.NetProfitUSD
		if equity > peak {
			peak = equity
		}
		if dd := peak - equity; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}

	if summary.TotalTrades > 0 {
		summary.WinRate = float64(summary.WinningTrades) / float64(summary.TotalTrades)
		summary.AvgProfitPerTrade = summary.TotalProfitUSD / float64(summary.TotalTrades)
	}
	if b.cfg.StartAmountUSD > 0 {
		summary.ROIPct = summary.TotalProfitUSD / b.cfg.StartAmountUSD * 100
	}
	summary.MaxDrawdownUSD = maxDrawdown

	return summary
}
