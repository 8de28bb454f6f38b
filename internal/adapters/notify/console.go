package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alejandrodnm/venicebot/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier imprimiendo a stdout.
type Console struct {
	out   io.Writer
	table bool // tabla completa en vez de línea compacta
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify imprime el report del tick en el modo configurado.
func (c *Console) Notify(_ context.Context, report domain.Report) error {
	if len(report.Results) == 0 {
		fmt.Fprintf(c.out, "[%s] no feasible paths this tick\n", now())
		return nil
	}

	if c.table {
		c.printFull(report)
	} else {
		c.printCompact(report)
	}
	return nil
}

// printCompact imprime lo esencial en una línea.
func (c *Console) printCompact(report domain.Report) {
	best := report.Best
	fmt.Fprintf(c.out, "[%s] %d paths | best %s net $%+.2f (%+.2f%%)",
		now(), len(report.Results), best.Path.Key(), best.NetProfitUSD, best.ProfitPct*100)

	if report.Spread != nil {
		fmt.Fprintf(c.out, " | mint spread %+.2f%% → %s", report.Spread.SpreadPct, report.Spread.Recommendation)
	}
	if report.CrossVenue != nil {
		cv := report.CrossVenue
		fmt.Fprintf(c.out, " | %s %s→%s %+.1f%%", cv.Token, cv.BuyVenue, cv.SellVenue, cv.SpreadPct)
	}
	if report.Signals != nil && report.Signals.Score >= 3 {
		fmt.Fprintf(c.out, " | VVV %s (score %d)", report.Signals.Recommendation, report.Signals.Score)
	}
	fmt.Fprintln(c.out)
}

// printFull imprime la tabla de paths rankeados más el análisis de spread
// y valoración.
func (c *Console) printFull(report domain.Report) {
	fmt.Fprintf(c.out, "\n[%s] %d feasible paths\n", now(), len(report.Results))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Path", "Start$", "End$", "Cost$", "Net$", "Profit%", "Action")

	for i, r := range report.Results {
		table.Append(
			fmt.Sprintf("%d", i+1),
			r.Path.Key(),
			fmt.Sprintf("%.2f", r.StartAmountUSD),
			fmt.Sprintf("%.2f", r.EndAmountUSD),
			fmt.Sprintf("%.2f", r.TotalCostUSD),
			fmt.Sprintf("%+.2f", r.NetProfitUSD),
			fmt.Sprintf("%+.2f%%", r.ProfitPct*100),
			action(r),
		)
	}
	table.Render()

	if report.Spread != nil {
		s := report.Spread
		fmt.Fprintf(c.out, "  Mint: rate %.2f sVVV/DIEM | cost $%.2f | market $%.2f | spread %+.2f%% → %s (%s)\n",
			s.MintRate, s.MintCostUSD, s.MarketPriceUSD, s.SpreadPct, s.Recommendation, s.Confidence)
	}
	if report.Valuation != nil {
		v := report.Valuation
		fmt.Fprintf(c.out, "  DCF: $%.2f (25%%) | payback %.0f días | price/DCF %.2f → %s\n",
			v.DCFValue25, v.PaybackDays, v.PriceToDCF, v.Signal)
	}
	if report.CrossVenue != nil {
		cv := report.CrossVenue
		fmt.Fprintf(c.out, "  Cross-venue %s: comprar en %s ($%.2f), vender en %s ($%.2f) → %+.2f%%\n",
			cv.Token, cv.BuyVenue, cv.BuyPriceUSD, cv.SellVenue, cv.SellPriceUSD, cv.SpreadPct)
	}
	if report.Signals != nil && len(report.Signals.Signals) > 0 {
		s := report.Signals
		fmt.Fprintf(c.out, "  Señales VVV: score %d → %s", s.Score, s.Recommendation)
		for _, sig := range s.Signals {
			fmt.Fprintf(c.out, " | %s %.1f (%s)", sig.Type, sig.Value, sig.Severity)
		}
		fmt.Fprintln(c.out)
	}
	fmt.Fprintln(c.out)
}

// PrintBacktest imprime el summary de un run histórico.
func (c *Console) PrintBacktest(summary domain.BacktestSummary) {
	fmt.Fprintf(c.out, "\n=== BACKTEST — %d ticks, %d trades ===\n", summary.Ticks, summary.TotalTrades)

	if summary.TotalTrades == 0 {
		fmt.Fprintln(c.out, "  Ningún tick superó el umbral de profit — sin trades simulados")
		fmt.Fprintln(c.out)
		return
	}

	fmt.Fprintf(c.out, "  Win rate:     %.1f%% (%d W / %d L)\n",
		summary.WinRate*100, summary.WinningTrades, summary.LosingTrades)
	fmt.Fprintf(c.out, "  Total profit: $%+.2f (ROI %+.2f%% sobre $%.0f por trade)\n",
		summary.TotalProfitUSD, summary.ROIPct, summary.StartAmountUSD)
	fmt.Fprintf(c.out, "  Avg/trade:    $%+.2f | Max drawdown: $%.2f\n",
		summary.AvgProfitPerTrade, summary.MaxDrawdownUSD)

	table := tablewriter.NewWriter(c.out)
	table.Header("Time", "Path", "Net$", "Profit%")
	for _, rec := range summary.Trades {
		table.Append(
			rec.Timestamp.Format("2006-01-02 15:04"),
			rec.Result.Path.Key(),
			fmt.Sprintf("%+.2f", rec.Result.NetProfitUSD),
			fmt.Sprintf("%+.2f%%", rec.Result.ProfitPct*100),
		)
	}
	table.Render()
	fmt.Fprintln(c.out)
}

// PrintPerformance imprime el estado agregado del paper trading.
func (c *Console) PrintPerformance(perf domain.PerformanceSummary) {
	fmt.Fprintf(c.out, "\n=== PAPER TRADING ===\n")
	fmt.Fprintf(c.out, "  Capital: $%.2f (inicial $%.2f) | ROI %+.2f%%\n",
		perf.Capital, perf.StartingCapital, perf.ROIPct)

	if perf.TotalTrades == 0 {
		fmt.Fprintln(c.out, "  Sin trades ejecutados todavía")
		fmt.Fprintln(c.out)
		return
	}

	fmt.Fprintf(c.out, "  Trades: %d (%d W / %d L, win rate %.1f%%) | profit total $%+.2f\n",
		perf.TotalTrades, perf.WinningTrades, perf.LosingTrades,
		perf.WinRate*100, perf.TotalProfitUSD)
	fmt.Fprintln(c.out)
}

func action(r domain.EvaluationResult) string {
	if r.NetProfitUSD > 0 {
		return "EXECUTE"
	}
	return "SKIP"
}

func now() string {
	return time.Now().Format("15:04:05")
}
