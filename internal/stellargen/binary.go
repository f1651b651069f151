package stellargen

import (
	"math"

	"github.com/sargonas/stellar-forge/internal/config"
	"github.com/sargonas/stellar-forge/internal/randdist"
)

// BinaryDraw is the outcome of sampling whether a primary of a given
// mass has a companion, and if so, the companion's orbital period and
// mass ratio (spec §4.4 step 1).
type BinaryDraw struct {
	IsBinary     bool
	PeriodDays   float64
	SecondaryMassSol float64
}

// binaryFraction increases with primary mass — low-mass red dwarfs are
// single more often than not, while O/B stars are binary or multiple
// the majority of the time. This piecewise-linear approximation is
// simple enough to keep the generator's draw order fixed without a
// dedicated distribution type.
func binaryFraction(primaryMassSol float64) float64 {
	switch {
	case primaryMassSol < 0.5:
		return 0.20
	case primaryMassSol < 1.5:
		return 0.45
	case primaryMassSol < 8:
		return 0.65
	default:
		return 0.85
	}
}

// DrawBinary samples whether primaryMassSol has a stellar companion and,
// if so, the companion's orbital period (lognormal, mean/sigma from
// config per spec §6) and mass ratio (uniform on (0.1, 1), spec §4.4).
func DrawBinary(e *randdist.Engine, cfg config.Config, primaryMassSol float64) BinaryDraw {
	if !(randdist.Bernoulli{P: binaryFraction(primaryMassSol)}).Trial(e) {
		return BinaryDraw{}
	}

	// cfg.BinaryPeriodMean/Sigma are given in log10(days) per spec §6;
	// randdist.LogNormal parameterizes in natural log, so convert.
	periodDays := randdist.LogNormal{
		LogMean:  cfg.BinaryPeriodMean * math.Ln10,
		LogSigma: cfg.BinaryPeriodSigma * math.Ln10,
	}.Draw(e)

	q := randdist.Uniform{Min: 0.1, Max: 1.0}.Draw(e)

	return BinaryDraw{
		IsBinary:         true,
		PeriodDays:       periodDays,
		SecondaryMassSol: primaryMassSol * q,
	}
}
