package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateMintRate_KnownSupply(t *testing.T) {
	// rate = 90 × e^(3 × (32000/38000)³)
	assert.InDelta(t, 539.868, EstimateMintRate(32000), 0.01)
}

func TestEstimateMintRate_AtTarget(t *testing.T) {
	assert.InDelta(t, 90*20.0855, EstimateMintRate(TargetDIEMSupply), 1)
}

func TestEstimateMintRate_ZeroSupplyUsesFallback(t *testing.T) {
	assert.Equal(t, EstimateMintRate(32000), EstimateMintRate(0))
	assert.Equal(t, EstimateMintRate(32000), EstimateMintRate(-1))
}

func TestEstimateMintRate_Monotonic(t *testing.T) {
	prev := 0.0
	for _, supply := range []float64{1000, 10000, 20000, 30000, 38000, 45000} {
		rate := EstimateMintRate(supply)
		assert.Greater(t, rate, prev, "rate debe crecer con el supply")
		prev = rate
	}
}
