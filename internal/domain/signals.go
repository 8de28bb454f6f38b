package domain

// signals.go — señales técnicas de compra para el token colateral (VVV).
// Operan sobre el histórico de precios persistido (más reciente primero).

// SignalType identifies a technical buy signal.
type SignalType string

const (
	SignalRSIOversold SignalType = "RSI_OVERSOLD"
	SignalPriceDrop   SignalType = "PRICE_DROP"
	SignalBounce      SignalType = "BOUNCE"
)

// Severity of a signal.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
)

// Signal is a single detected buy signal.
type Signal struct {
	Type     SignalType
	Severity Severity
	Value    float64
}

// SignalConfig tunes the signal thresholds.
type SignalConfig struct {
	RSIOversold  float64 // RSI below this is oversold (default 30)
	PriceDropPct float64 // drop from recent high to flag (default 15)
	LookbackDays int     // window for high/low analysis (default 7)
}

// DefaultSignalConfig returns the production thresholds.
func DefaultSignalConfig() SignalConfig {
	return SignalConfig{RSIOversold: 30, PriceDropPct: 15, LookbackDays: 7}
}

// BuyAnalysis aggregates all detected signals and scores them.
type BuyAnalysis struct {
	CurrentPrice   float64
	RecentHigh     float64
	RecentLow      float64
	DropFromHigh   float64 // percent
	RiseFromLow    float64 // percent
	RSI            float64
	HasRSI         bool
	Signals        []Signal
	Score          int
	Recommendation BuySignal
}

// RSI computes the 14-period relative strength index over the price history
// (most recent first). ok=false when there is not enough data.
func RSI(prices []float64, period int) (float64, bool) {
	if len(prices) < period+1 {
		return 0, false
	}

	// Work oldest→newest over the last period+1 points.
	window := make([]float64, period+1)
	for i := 0; i <= period; i++ {
		window[period-i] = prices[i]
	}

	var gains, losses float64
	for i := 1; i < len(window); i++ {
		change := window[i] - window[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// AnalyzeBuySignals evalúa RSI y price action y devuelve la recomendación
// agregada. Con histórico insuficiente devuelve Hold sin señales.
func AnalyzeBuySignals(currentPrice float64, history []float64, cfg SignalConfig) BuyAnalysis {
	a := BuyAnalysis{CurrentPrice: currentPrice, Recommendation: SignalHold}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 7
	}
	if len(history) < cfg.LookbackDays {
		return a
	}

	if rsi, ok := RSI(history, 14); ok {
		a.RSI = rsi
		a.HasRSI = true
		if rsi < cfg.RSIOversold {
			sev := SeverityMedium
			points := 2
			if rsi < 20 {
				sev = SeverityHigh
				points = 3
			}
			a.Signals = append(a.Signals, Signal{Type: SignalRSIOversold, Severity: sev, Value: rsi})
			a.Score += points
		}
	}

	recent := history[:cfg.LookbackDays]
	a.RecentHigh, a.RecentLow = recent[0], recent[0]
	for _, p := range recent {
		if p > a.RecentHigh {
			a.RecentHigh = p
		}
		if p < a.RecentLow {
			a.RecentLow = p
		}
	}
	if a.RecentHigh > 0 {
		a.DropFromHigh = (a.RecentHigh - currentPrice) / a.RecentHigh * 100
	}
	if a.RecentLow > 0 {
		a.RiseFromLow = (currentPrice - a.RecentLow) / a.RecentLow * 100
	}

	if a.DropFromHigh >= cfg.PriceDropPct {
		sev := SeverityMedium
		points := 2
		if a.DropFromHigh > 20 {
			sev = SeverityHigh
			points = 3
		}
		a.Signals = append(a.Signals, Signal{Type: SignalPriceDrop, Severity: sev, Value: a.DropFromHigh})
		a.Score += points
	}
	if a.RiseFromLow > 5 && a.DropFromHigh > 10 {
		a.Signals = append(a.Signals, Signal{Type: SignalBounce, Severity: SeverityMedium, Value: a.RiseFromLow})
		a.Score++
	}

	switch {
	case a.Score >= 5:
		a.Recommendation = SignalStrongBuy
	case a.Score >= 3:
		a.Recommendation = SignalBuy
	}
	return a
}
