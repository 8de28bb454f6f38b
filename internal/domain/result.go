package domain

import "time"

// EvaluationResult es el resultado de evaluar un path con un snapshot y un
// capital de entrada. Derivado, nunca se muta tras su creación.
// NetProfitUSD y ProfitPct pueden ser negativos — eso no es un error, es
// la señal de "no ejecutar".
type EvaluationResult struct {
	Path           Path
	StartAmountUSD float64
	EndAmountUSD   float64
	TotalCostUSD   float64
	NetProfitUSD   float64 // EndAmountUSD - StartAmountUSD - TotalCostUSD
	ProfitPct      float64 // NetProfitUSD / StartAmountUSD
}

// Profitable devuelve true si el path deja beneficio neto tras costes.
func (r EvaluationResult) Profitable() bool {
	return r.NetProfitUSD > 0
}

// TradeRecord es una entrada del audit trail de una simulación.
// Append-only: ni el backtester ni el ledger reescriben registros.
type TradeRecord struct {
	ID            string
	Timestamp     time.Time
	Result        EvaluationResult
	CapitalBefore float64
	CapitalAfter  float64
}

// RejectReason explica por qué el ledger rechazó una ejecución.
type RejectReason int

const (
	ReasonNone RejectReason = iota
	ReasonInsufficientCapital
)

func (r RejectReason) String() string {
	if r == ReasonInsufficientCapital {
		return "insufficient_capital"
	}
	return ""
}

// TradeResult es la respuesta del paper ledger a una ejecución.
// Executed=false no es un abort: el estado del ledger no cambió.
type TradeResult struct {
	Executed bool
	Reason   RejectReason
	Record   TradeRecord // válido solo si Executed
}

// BacktestSummary agrega los resultados de un run histórico completo.
type BacktestSummary struct {
	Ticks             int // snapshots procesados
	TotalTrades       int // ticks donde el mejor path superó el umbral
	WinningTrades     int // NetProfitUSD > 0
	LosingTrades      int
	WinRate           float64 // winning/total, 0 si no hubo trades
	TotalProfitUSD    float64
	AvgProfitPerTrade float64
	MaxDrawdownUSD    float64 // peor caída de la curva de equity acumulada
	ROIPct            float64 // TotalProfitUSD / StartAmountUSD × 100
	StartAmountUSD    float64
	Trades            []TradeRecord
}

// PerformanceSummary es el estado agregado del paper trading ledger.
type PerformanceSummary struct {
	StartingCapital float64
	Capital         float64
	ROIPct          float64 // (Capital - StartingCapital) / StartingCapital × 100
	TotalTrades     int
	WinningTrades   int
	LosingTrades    int
	WinRate         float64
	TotalProfitUSD  float64
}
