package engine

// ledger.go — paper trading: executes selected opportunities against
// virtual capital, enforcing a capital-sufficiency check.

import (
	"sync"
	"time"

	"github.com/alejandrodnm/venicebot/internal/domain"
	"github.com/google/uuid"
)

// Ledger owns the simulated capital and the append-only trade history.
// State only changes through Execute; rejected executions leave it
// untouched. The mutex covers the monitor loop and ad-hoc performance
// queries overlapping — there is no finer-grained concurrency.
type Ledger struct {
	mu              sync.Mutex
	startingCapital float64
	capital         float64
	history         []domain.TradeRecord
}

// NewLedger creates a ledger with the given virtual starting capital.
func NewLedger(startingCapital float64) *Ledger {
	return &Ledger{startingCapital: startingCapital, capital: startingCapital}
}

// Execute applies an opportunity to the virtual capital. If the required
// start amount exceeds the available capital the trade is declined with
// ReasonInsufficientCapital and no state changes.
//
// Callers must not retry a successful Execute for the same opportunity:
// each acceptance mutates capital exactly once.
func (l *Ledger) Execute(opp domain.EvaluationResult) domain.TradeResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	if opp.StartAmountUSD > l.capital {
		return domain.TradeResult{Executed: false, Reason: domain.ReasonInsufficientCapital}
	}

	before := l.capital
	l.capital += opp.NetProfitUSD

	record := domain.TradeRecord{
		ID:            uuid.New().String(),
		Timestamp:     time.Now().UTC(),
		Result:        opp,
		CapitalBefore: before,
		CapitalAfter:  l.capital,
	}
	l.history = append(l.history, record)

	return domain.TradeResult{Executed: true, Record: record}
}

// Capital returns the current virtual capital.
func (l *Ledger) Capital() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.capital
}

// History returns a copy of the trade records in execution order.
func (l *Ledger) History() []domain.TradeRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.TradeRecord, len(l.history))
	copy(out, l.history)
	return out
}

// Performance computes the aggregate paper trading stats. With an empty
// history it returns a zeroed summary with TotalTrades=0 — never a
// division by zero.
func (l *Ledger) Performance() domain.PerformanceSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := domain.PerformanceSummary{
		StartingCapital: l.startingCapital,
		Capital:         l.capital,
	}
	if l.startingCapital > 0 {
		s.ROIPct = (l.capital - l.startingCapital) / l.startingCapital * 100
	}

	for _, rec := range l.history {
		s.TotalTrades++
		if rec.Result.NetProfitUSD > 0 {
			s.WinningTrades++
		} else {
			s.LosingTrades++
		}
		s.TotalProfitUSD += rec.Result.NetProfitUSD
	}
	if s.TotalTrades > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades)
	}
	return s
}
