package extract

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMostEnergeticNeutrino(t *testing.T) {
	frame := &Frame{
		Header: FrameHeaderStruct{FrameId: 3},
		Particles: []Particle{
			{Type: 13, Energy: 5000},          // muon, ignored
			{Type: NU_MU, Energy: 120},
			{Type: NU_E_BAR, Energy: 350},
			{Type: NU_TAU, Energy: 90},
		},
	}
	primary, err := frame.MostEnergeticNeutrino()
	require.NoError(t, err)
	assert.Equal(t, NU_E_BAR, primary.Type)
	assert.Equal(t, 350.0, primary.Energy)
}

func TestMostEnergeticNeutrinoMissing(t *testing.T) {
	frame := &Frame{
		Header:    FrameHeaderStruct{FrameId: 3},
		Particles: []Particle{{Type: 13, Energy: 5000}},
	}
	_, err := frame.MostEnergeticNeutrino()
	var noNu *ErrNoNeutrino
	require.ErrorAs(t, err, &noNu)
	assert.Equal(t, uint32(3), noNu.FrameId)
}

func TestDeclination(t *testing.T) {
	assert.Equal(t, math.Pi/2-0.3, Declination(0.3))
	assert.Equal(t, 0.0, Declination(math.Pi/2))
	assert.Equal(t, -math.Pi/2, Declination(math.Pi))
}

func TestIsNeutrino(t *testing.T) {
	for _, code := range []int32{NU_E, NU_E_BAR, NU_MU, NU_MU_BAR, NU_TAU, NU_TAU_BAR} {
		assert.True(t, IsNeutrino(code), "code %d", code)
	}
	for _, code := range []int32{0, 11, 13, -13, 22, 2212} {
		assert.False(t, IsNeutrino(code), "code %d", code)
	}
}
