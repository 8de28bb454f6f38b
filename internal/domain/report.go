package domain

// Report es el paquete de resultados de un ciclo de monitoreo, tal como se
// entrega a los colaboradores de notificación y persistencia. El core no
// define formato de wire — serializar es responsabilidad del colaborador.
type Report struct {
	Snapshot MarketSnapshot
	// Results son todos los paths feasible, ya rankeados (mejor primero).
	Results []EvaluationResult
	// Best es el mejor path del tick; nil si ningún path fue feasible.
	Best *EvaluationResult
	// Spread es el análisis mint-vs-mercado; nil si faltan precios.
	Spread *SpreadAnalysis
	// Valuation es el análisis DCF del derivado; nil si faltan precios.
	Valuation *Valuation
	// CrossVenue es la divergencia de precio del derivado entre venues;
	// nil si no alcanza el umbral o no hay precios suficientes.
	CrossVenue *CrossVenueSpread
	// Signals es el análisis técnico de compra del colateral sobre el
	// histórico persistido; nil sin storage o sin histórico suficiente.
	Signals *BuyAnalysis
}
