package domain

import "math"

// Parámetros de la curva de minteo de Venice.
const (
	BaseMintRate     = 90.0    // rate inicial en el lanzamiento (sVVV por DIEM)
	TargetDIEMSupply = 38000.0 // supply objetivo del protocolo
	mintCurvePower   = 3.0

	// Supply estimado cuando el caller no lo conoce.
	fallbackDIEMSupply = 32000.0
)

// EstimateMintRate estima el mint rate para un supply dado usando la curva
// del protocolo: rate = base × e^(power × (supply/target)³).
// Si currentSupply ≤ 0 usa el estimado conservador de supply actual.
// Se usa como fallback cuando el endpoint de Venice no responde.
func EstimateMintRate(currentSupply float64) float64 {
	if currentSupply <= 0 {
		currentSupply = fallbackDIEMSupply
	}
	ratio := currentSupply / TargetDIEMSupply
	return BaseMintRate * math.Exp(mintCurvePower*math.Pow(ratio, 3))
}
