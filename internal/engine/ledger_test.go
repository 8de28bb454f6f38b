package engine

import (
	"testing"

	"github.com/alejandrodnm/venicebot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opportunity(startUSD, netProfitUSD float64) domain.EvaluationResult {
	return domain.EvaluationResult{
		Path: domain.Path{Hops: []domain.Hop{
			domain.MintHop(domain.USDC, domain.DIEM),
			domain.BurnHop(domain.DIEM, domain.USDC),
		}},
		StartAmountUSD: startUSD,
		NetProfitUSD:   netProfitUSD,
		ProfitPct:      netProfitUSD / startUSD,
	}
}

func TestLedger_InsufficientCapital(t *testing.T) {
	l := NewLedger(100)

	res := l.Execute(opportunity(500, 50))

	assert.False(t, res.Executed)
	assert.Equal(t, domain.ReasonInsufficientCapital, res.Reason)
	assert.Equal(t, 100.0, l.Capital(), "un rechazo no muta el capital")
	assert.Empty(t, l.History())
}

func TestLedger_ExecuteUpdatesCapital(t *testing.T) {
	l := NewLedger(1000)

	res := l.Execute(opportunity(500, 50))

	require.True(t, res.Executed)
	assert.Equal(t, domain.ReasonNone, res.Reason)
	assert.Equal(t, 1050.0, l.Capital())
	assert.Equal(t, 1000.0, res.Record.CapitalBefore)
	assert.Equal(t, 1050.0, res.Record.CapitalAfter)
	assert.NotEmpty(t, res.Record.ID)
}

func TestLedger_LossReducesCapital(t *testing.T) {
	l := NewLedger(1000)

	res := l.Execute(opportunity(500, -200))

	require.True(t, res.Executed)
	assert.Equal(t, 800.0, l.Capital())
}

func TestLedger_CapitalInvariant(t *testing.T) {
	// capital == starting + suma de NetProfitUSD de la historia.
	l := NewLedger(1000)
	l.Execute(opportunity(500, 50))
	l.Execute(opportunity(500, -30))
	l.Execute(opportunity(500, 120))
	l.Execute(opportunity(5000, 999)) // rechazada

	history := l.History()
	require.Len(t, history, 3)

	sum := 0.0
	for _, rec := range history {
		sum += rec.Result.NetProfitUSD
	}
	assert.Equal(t, 1000+sum, l.Capital())
}

func TestLedger_Performance(t *testing.T) {
	l := NewLedger(1000)
	l.Execute(opportunity(500, 50))
	l.Execute(opportunity(500, -30))

	perf := l.Performance()
	assert.Equal(t, 1000.0, perf.StartingCapital)
	assert.Equal(t, 1020.0, perf.Capital)
	assert.Equal(t, 2, perf.TotalTrades)
	assert.Equal(t, 1, perf.WinningTrades)
	assert.Equal(t, 1, perf.LosingTrades)
	assert.Equal(t, 0.5, perf.WinRate)
	assert.InDelta(t, 20.0, perf.TotalProfitUSD, 0.0001)
	assert.InDelta(t, 2.0, perf.ROIPct, 0.0001)
}

func TestLedger_PerformanceEmptyHistory(t *testing.T) {
	perf := NewLedger(1000).Performance()

	assert.Equal(t, 0, perf.TotalTrades)
	assert.Equal(t, 0.0, perf.WinRate)
	assert.Equal(t, 0.0, perf.ROIPct)
	assert.Equal(t, 1000.0, perf.Capital)
}

func TestLedger_HistoryReturnsCopy(t *testing.T) {
	l := NewLedger(1000)
	l.Execute(opportunity(500, 50))

	h := l.History()
	h[0].Result.NetProfitUSD = -999

	assert.Equal(t, 50.0, l.History()[0].Result.NetProfitUSD)
}
