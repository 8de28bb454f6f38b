package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/venicebot/internal/domain"
	"github.com/alejandrodnm/venicebot/internal/liquidity"
	"github.com/alejandrodnm/venicebot/internal/ports"
)

// Config contiene la configuración del monitor.
type Config struct {
	Interval       time.Duration
	Enumerator     EnumeratorConfig
	Costs          domain.CostModel
	Viability      ViabilityConfig
	StartAmountUSD float64
	// MinProfitPct es el umbral accionable como fracción: el ledger solo
	// ejecuta cuando el mejor path lo supera.
	MinProfitPct float64
	// MinSpreadAlertPct es el spread mint-vs-mercado (en %) a partir del
	// cual el análisis se marca como rentable.
	MinSpreadAlertPct float64
	// CrossVenueMinPct es el spread mínimo (en %) entre venues a reportar.
	CrossVenueMinPct float64
	Once             bool // ejecutar un solo ciclo y salir
}

// DefaultConfig devuelve una configuración sensata para producción.
func DefaultConfig() Config {
	return Config{
		Interval: 5 * time.Minute,
		Enumerator: EnumeratorConfig{
			Base:     domain.USDC,
			Derived:  domain.DIEM,
			Universe: []domain.Token{domain.VVV, domain.DIEM},
			MaxHops:  maxSwapHops,
		},
		Costs:             domain.DefaultCostModel(),
		Viability:         ViabilityConfig{MinLiquidityUSD: 10000, MaxTradeFraction: liquidity.DefaultMaxTradeFraction},
		StartAmountUSD:    1000,
		MinProfitPct:      0.01,
		MinSpreadAlertPct: 5,
		CrossVenueMinPct:  5,
	}
}

// Monitor es el orquestador del loop de monitoreo: snapshot → enumerar →
// evaluar → seleccionar → notificar/persistir, y opcionalmente ejecutar en
// el paper ledger.
type Monitor struct {
	cfg      Config
	feed     ports.PriceProvider
	pools    ports.PoolProvider
	index    *liquidity.Index
	storage  ports.Storage
	notifier ports.Notifier
	ledger   *Ledger // nil fuera del modo paper
	eval     *Evaluator
}

// NewMonitor crea un Monitor con todas las dependencias inyectadas.
// storage, pools y ledger pueden ser nil; el monitor degrada sin ellos.
func NewMonitor(
	cfg Config,
	feed ports.PriceProvider,
	pools ports.PoolProvider,
	index *liquidity.Index,
	storage ports.Storage,
	notifier ports.Notifier,
	ledger *Ledger,
) *Monitor {
	return &Monitor{
		cfg:      cfg,
		feed:     feed,
		pools:    pools,
		index:    index,
		storage:  storage,
		notifier: notifier,
		ledger:   ledger,
		eval:     NewEvaluator(index, cfg.Costs, domain.VVV, cfg.Viability),
	}
}

// Run ejecuta el loop de monitoreo hasta que el contexto se cancele.
// Si cfg.Once está activo, solo ejecuta un ciclo.
func (m *Monitor) Run(ctx context.Context) error {
	slog.Info("monitor starting",
		"interval", m.cfg.Interval,
		"once", m.cfg.Once,
		"paper", m.ledger != nil,
	)

	if err := m.runCycle(ctx); err != nil {
		slog.Error("monitor cycle failed", "err", err)
		if m.cfg.Once {
			return err
		}
	}

	if m.cfg.Once {
		return nil
	}

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("monitor stopped")
			return nil
		case <-ticker.C:
			if err := m.runCycle(ctx); err != nil {
				slog.Error("monitor cycle failed", "err", err)
			}
		}
	}
}

// RunOnce ejecuta exactamente un ciclo y devuelve el report.
func (m *Monitor) RunOnce(ctx context.Context) (domain.Report, error) {
	return m.cycle(ctx)
}

// runCycle ejecuta un ciclo completo y notifica/persiste los resultados.
func (m *Monitor) runCycle(ctx context.Context) error {
	start := time.Now()

	report, err := m.cycle(ctx)
	if err != nil {
		return err
	}

	if err := m.notifier.Notify(ctx, report); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	if m.storage != nil {
		if err := m.storage.SaveSnapshot(ctx, report.Snapshot); err != nil {
			slog.Warn("storage error", "err", err)
		}
	}

	if m.ledger != nil && report.Best != nil && report.Best.ProfitPct >= m.cfg.MinProfitPct {
		m.executePaper(ctx, *report.Best)
	}

	slog.Info("monitor cycle complete",
		"feasible_paths", len(report.Results),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// cycle hace fetch → refresh pools → enumerate → evaluate → rank.
func (m *Monitor) cycle(ctx context.Context) (domain.Report, error) {
	snap, err := m.feed.FetchSnapshot(ctx)
	if err != nil {
		return domain.Report{}, fmt.Errorf("engine.cycle: fetch snapshot: %w", err)
	}

	m.refreshPools(ctx)

	paths := Enumerate(m.cfg.Enumerator, m.index)
	results := Rank(m.eval.EvaluateAll(paths, snap, m.cfg.StartAmountUSD))

	report := domain.Report{Snapshot: snap, Results: results}
	if len(results) > 0 {
		best := results[0]
		report.Best = &best
	}

	if spread, ok := domain.AnalyzeMintSpread(snap, m.cfg.MinSpreadAlertPct); ok {
		report.Spread = &spread
		if spread.ShouldAlert() {
			slog.Warn("mint spread alert",
				"spread_pct", fmt.Sprintf("%+.2f", spread.SpreadPct),
				"recommendation", spread.Recommendation,
			)
		}
	}
	if vvvPrice, ok := snap.Price(domain.VVV); ok {
		if diemPrice, ok := snap.Price(domain.DIEM); ok {
			v := domain.AnalyzeValuation(diemPrice, vvvPrice, snap.MintRate)
			report.Valuation = &v
		}
	}

	if signals, ok := m.analyzeSignals(ctx, snap); ok {
		report.Signals = &signals
	}
	if spread, ok := m.checkCrossVenue(ctx); ok {
		report.CrossVenue = &spread
	}

	return report, nil
}

// signalHistoryDays es la ventana de histórico que alimenta el análisis
// técnico: suficiente para RSI(14) con snapshots diarios.
const signalHistoryDays = 30

// analyzeSignals corre el análisis técnico del colateral sobre el histórico
// persistido. ok=false sin storage o sin precio de VVV este tick; histórico
// corto devuelve un análisis Hold, que sigue siendo reportable.
func (m *Monitor) analyzeSignals(ctx context.Context, snap domain.MarketSnapshot) (domain.BuyAnalysis, bool) {
	if m.storage == nil {
		return domain.BuyAnalysis{}, false
	}
	vvvPrice, ok := snap.Price(domain.VVV)
	if !ok {
		return domain.BuyAnalysis{}, false
	}

	history, err := m.storage.GetPriceHistory(ctx, domain.VVV, signalHistoryDays)
	if err != nil {
		slog.Debug("price history unavailable for signals", "err", err)
		return domain.BuyAnalysis{}, false
	}

	analysis := domain.AnalyzeBuySignals(vvvPrice, history, domain.DefaultSignalConfig())
	if analysis.Score >= 3 {
		slog.Info("buy signals on collateral",
			"score", analysis.Score,
			"recommendation", analysis.Recommendation,
			"rsi", fmt.Sprintf("%.1f", analysis.RSI),
			"drop_from_high", fmt.Sprintf("%.1f%%", analysis.DropFromHigh),
		)
	}
	return analysis, true
}

// refreshPools registra en el índice los pools descubiertos este tick.
// Errores del provider no abortan el ciclo: el índice conserva lo último
// conocido.
func (m *Monitor) refreshPools(ctx context.Context) {
	if m.pools == nil {
		return
	}
	pools, err := m.pools.FetchPools(ctx)
	if err != nil {
		slog.Warn("pool refresh failed", "err", err)
		return
	}
	for _, p := range pools {
		m.index.Register(p)
	}
	slog.Debug("pools refreshed", "count", len(pools), "pairs", m.index.Len())
}

// checkCrossVenue busca divergencias de precio del derivado entre venues.
// ok=false si no hay precios suficientes o el spread no alcanza el umbral.
func (m *Monitor) checkCrossVenue(ctx context.Context) (domain.CrossVenueSpread, bool) {
	venuePrices, err := m.feed.FetchVenuePrices(ctx, domain.DIEM)
	if err != nil {
		slog.Debug("cross-venue prices unavailable", "err", err)
		return domain.CrossVenueSpread{}, false
	}
	spread, ok := domain.DetectCrossVenue(domain.DIEM, venuePrices, m.cfg.CrossVenueMinPct)
	if ok {
		slog.Warn("cross-venue spread detected",
			"buy", spread.BuyVenue,
			"buy_price", spread.BuyPriceUSD,
			"sell", spread.SellVenue,
			"sell_price", spread.SellPriceUSD,
			"spread_pct", fmt.Sprintf("%.2f", spread.SpreadPct),
		)
	}
	return spread, ok
}

// executePaper ejecuta la oportunidad en el ledger y persiste el registro.
func (m *Monitor) executePaper(ctx context.Context, opp domain.EvaluationResult) {
	result := m.ledger.Execute(opp)
	if !result.Executed {
		slog.Warn("paper trade declined",
			"reason", result.Reason,
			"required", opp.StartAmountUSD,
			"capital", m.ledger.Capital(),
		)
		return
	}

	slog.Info("paper trade executed",
		"path", opp.Path.Key(),
		"net_profit", fmt.Sprintf("%+.2f", opp.NetProfitUSD),
		"capital", result.Record.CapitalAfter,
	)

	if m.storage != nil {
		if err := m.storage.SaveTrade(ctx, result.Record); err != nil {
			slog.Warn("trade persistence error", "err", err)
		}
	}
}

// Ledger expone el ledger del monitor (nil fuera del modo paper).
func (m *Monitor) Ledger() *Ledger {
	return m.ledger
}
