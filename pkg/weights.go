package extract

// Weight map keys written by the simulation generators.
const (
	OneWeightKey        = "OneWeight"
	OneWeightPerTypeKey = "OneWeightPerType"
	NEventsKey          = "NEvents"
)

// GenerationFractions describes how a generator split its events between
// neutrinos and antineutrinos. Unsplit is the fraction assumed when the
// generator did not record the split at all.
type GenerationFractions struct {
	Nu      float64
	NuBar   float64
	Unsplit float64
}

// DefaultFractions matches the production conventions: GENIE datasets are
// generated with a 70/30 nu/nubar split, older datasets with 50/50.
func DefaultFractions() GenerationFractions {
	return GenerationFractions{Nu: 0.7, NuBar: 0.3, Unsplit: 0.5}
}

// NormalizeOneWeight computes the per-event normalized OneWeight.
//
// Newer generators write OneWeightPerType, which is already corrected for
// the nu/nubar production fractions and is used as-is. Otherwise OneWeight
// is divided by the fraction matching the primary neutrino: GENIE frames
// (marked by a GENIEResultsDict object) use the nu or nubar fraction
// depending on the sign of the type code, anything older uses the unsplit
// fraction. The result is then normalized by NEvents and by the number of
// input files so that summed weights scale correctly across the whole set.
func NormalizeOneWeight(frame *Frame, nFiles int, fractions GenerationFractions) (float64, error) {
	perType, ok := frame.Weights[OneWeightPerTypeKey]
	if !ok {
		oneWeight, err := frame.Weight(OneWeightKey)
		if err != nil {
			return 0, err
		}
		if frame.HasObject(GenieResultsName) {
			primary, err := frame.MostEnergeticNeutrino()
			if err != nil {
				return 0, err
			}
			if primary.Type > 0 {
				perType = oneWeight / fractions.Nu
			} else {
				perType = oneWeight / fractions.NuBar
			}
		} else {
			perType = oneWeight / fractions.Unsplit
		}
	}

	nEvents, err := frame.Weight(NEventsKey)
	if err != nil {
		return 0, err
	}
	return perType / nEvents / float64(nFiles), nil
}
