package service

import "github.com/shopspring/decimal"

const (
	// DefaultMassFactor: K для стали, 7850 кг/м³ × 6 м × 1e-6.
	DefaultMassFactor = 0.0471
	DefaultDensity    = 7850.0 // кг/м³
	DefaultLength     = 6.0    // м
)

// MassFactorFor: K = density_kg_per_m3 * length_m * 1e-6.
func MassFactorFor(densityKgM3, lengthM float64) float64 {
	return decimal.NewFromFloat(densityKgM3).
		Mul(decimal.NewFromFloat(lengthM)).
		Shift(-6).
		InexactFloat64()
}

// StripMass считает массу трубы из ширины штрипса и толщины: K * width * thickness.
func StripMass(k, widthMM, thicknessMM float64) (float64, error) {
	if k <= 0 || widthMM <= 0 || thicknessMM <= 0 {
		return 0, ErrMassUnavailable
	}
	return k * widthMM * thicknessMM, nil
}
