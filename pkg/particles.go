package extract

import "math"

// PDG type codes for neutrinos. Negative codes are antiparticles.
const (
	NU_E       int32 = 12
	NU_E_BAR   int32 = -12
	NU_MU      int32 = 14
	NU_MU_BAR  int32 = -14
	NU_TAU     int32 = 16
	NU_TAU_BAR int32 = -16
)

func IsNeutrino(typeCode int32) bool {
	switch typeCode {
	case NU_E, NU_E_BAR, NU_MU, NU_MU_BAR, NU_TAU, NU_TAU_BAR:
		return true
	}
	return false
}

// MostEnergeticNeutrino returns the neutrino with the highest energy in the
// frame's particle tree.
func (f *Frame) MostEnergeticNeutrino() (Particle, error) {
	var best Particle
	found := false
	for _, particle := range f.Particles {
		if !IsNeutrino(particle.Type) {
			continue
		}
		if !found || particle.Energy > best.Energy {
			best = particle
			found = true
		}
	}
	if !found {
		return best, &ErrNoNeutrino{FrameId: f.Header.FrameId}
	}
	return best, nil
}

// Declination converts a zenith angle to a declination, both in radians.
func Declination(zenith float64) float64 {
	return math.Pi/2 - zenith
}
