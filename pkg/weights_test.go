package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame(weights map[string]float64, particles []Particle, objects map[string]int32) *Frame {
	if objects == nil {
		objects = map[string]int32{}
	}
	if len(weights) > 0 {
		objects[WeightMapName] = OBJ_WEIGHT_MAP
	}
	if len(particles) > 0 {
		objects[ParticleTreeName] = OBJ_PARTICLE_TREE
	}
	return &Frame{
		Header:    FrameHeaderStruct{StopType: PHYSICS_FRAME, FrameId: 7},
		Weights:   weights,
		Particles: particles,
		Objects:   objects,
	}
}

func TestNormalizeOneWeightPerType(t *testing.T) {
	weights := map[string]float64{
		OneWeightKey:        123.0,
		OneWeightPerTypeKey: 42.0,
		NEventsKey:          100.0,
	}
	frame := testFrame(weights, []Particle{{Type: NU_MU, Energy: 10}}, nil)

	ow, err := NormalizeOneWeight(frame, 4, DefaultFractions())
	require.NoError(t, err)
	assert.InDelta(t, 42.0/100.0/4.0, ow, 1e-12)

	// OneWeightPerType wins even when GENIEResultsDict is present.
	frame = testFrame(weights, []Particle{{Type: NU_MU, Energy: 10}},
		map[string]int32{GenieResultsName: OBJ_OPAQUE})
	ow, err = NormalizeOneWeight(frame, 4, DefaultFractions())
	require.NoError(t, err)
	assert.InDelta(t, 42.0/100.0/4.0, ow, 1e-12)
}

func TestNormalizeOneWeightGenieSplit(t *testing.T) {
	weights := map[string]float64{
		OneWeightKey: 21.0,
		NEventsKey:   50.0,
	}
	genie := map[string]int32{GenieResultsName: OBJ_OPAQUE}

	// Neutrino primary: divide by the nu fraction.
	frame := testFrame(weights, []Particle{{Type: NU_E, Energy: 5}},
		map[string]int32{GenieResultsName: OBJ_OPAQUE})
	ow, err := NormalizeOneWeight(frame, 10, DefaultFractions())
	require.NoError(t, err)
	assert.InDelta(t, 21.0/0.7/50.0/10.0, ow, 1e-12)

	// Antineutrino primary: divide by the nubar fraction.
	frame = testFrame(weights, []Particle{{Type: NU_E_BAR, Energy: 5}}, genie)
	ow, err = NormalizeOneWeight(frame, 10, DefaultFractions())
	require.NoError(t, err)
	assert.InDelta(t, 21.0/0.3/50.0/10.0, ow, 1e-12)

	// The split follows the most energetic neutrino, not the first one.
	frame = testFrame(weights, []Particle{
		{Type: NU_MU, Energy: 1},
		{Type: NU_MU_BAR, Energy: 100},
	}, map[string]int32{GenieResultsName: OBJ_OPAQUE})
	ow, err = NormalizeOneWeight(frame, 10, DefaultFractions())
	require.NoError(t, err)
	assert.InDelta(t, 21.0/0.3/50.0/10.0, ow, 1e-12)
}

func TestNormalizeOneWeightLegacySplit(t *testing.T) {
	weights := map[string]float64{
		OneWeightKey: 10.0,
		NEventsKey:   20.0,
	}
	frame := testFrame(weights, []Particle{{Type: NU_TAU, Energy: 5}}, nil)

	ow, err := NormalizeOneWeight(frame, 2, DefaultFractions())
	require.NoError(t, err)
	assert.InDelta(t, 10.0/0.5/20.0/2.0, ow, 1e-12)
}

func TestNormalizeOneWeightDBFractions(t *testing.T) {
	weights := map[string]float64{
		OneWeightKey: 10.0,
		NEventsKey:   20.0,
	}
	fractions := GenerationFractions{Nu: 0.6, NuBar: 0.4, Unsplit: 0.5}

	frame := testFrame(weights, []Particle{{Type: NU_TAU, Energy: 5}},
		map[string]int32{GenieResultsName: OBJ_OPAQUE})
	ow, err := NormalizeOneWeight(frame, 2, fractions)
	require.NoError(t, err)
	assert.InDelta(t, 10.0/0.6/20.0/2.0, ow, 1e-12)
}

func TestNormalizeOneWeightMissingKeys(t *testing.T) {
	// Missing OneWeight.
	frame := testFrame(map[string]float64{NEventsKey: 10}, []Particle{{Type: NU_MU, Energy: 1}}, nil)
	_, err := NormalizeOneWeight(frame, 1, DefaultFractions())
	var missing *ErrMissingKey
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, OneWeightKey, missing.Key)

	// Missing NEvents.
	frame = testFrame(map[string]float64{OneWeightKey: 10}, []Particle{{Type: NU_MU, Energy: 1}}, nil)
	_, err = NormalizeOneWeight(frame, 1, DefaultFractions())
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, NEventsKey, missing.Key)

	// GENIE branch with no neutrino in the tree.
	frame = testFrame(map[string]float64{OneWeightKey: 10, NEventsKey: 10},
		[]Particle{{Type: 13, Energy: 1}},
		map[string]int32{GenieResultsName: OBJ_OPAQUE})
	_, err = NormalizeOneWeight(frame, 1, DefaultFractions())
	var noNu *ErrNoNeutrino
	require.ErrorAs(t, err, &noNu)
}
