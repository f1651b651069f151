// Package stellargen implements the stellar generator (component C4):
// given a BasicProperties request, produces a fully populated
// astro.Star. Grounded on JoshuaAFerguson-terminal-velocity's
// internal/game/universe/generator.go for its "sample -> derive ->
// validate" generator shape, with the astrophysics itself grounded on
// original_source/NpgsCore's stellar generator and
// other_examples/furan917-go-solar-system's orbital-calculator style of
// small, composed physics helper functions.
package stellargen

import (
	"fmt"
	"math"

	"github.com/sargonas/stellar-forge/internal/astro"
	"github.com/sargonas/stellar-forge/internal/config"
	"github.com/sargonas/stellar-forge/internal/faults"
	"github.com/sargonas/stellar-forge/internal/randdist"
	"github.com/sargonas/stellar-forge/internal/tracks"
)

// TypeOption selects which regime BasicProperties.InitialMassSol (and
// the rest of the basic draws) should favor, per spec §4.4.
type TypeOption int

const (
	TypeNormal TypeOption = iota
	TypeGiant
	TypeDeathStar
	TypeMergeStar
)

// BasicProperties is the stellar generator's input. Any field left at
// its zero value is sampled rather than taken literally, so an explicit
// zero cannot be requested: in particular FeH = 0 (solar metallicity)
// is resampled exactly like an unset FeH.
type BasicProperties struct {
	AgeYears       float64
	FeH            float64
	InitialMassSol float64
	Type           TypeOption
}

const (
	imfMinMass = 0.08
	imfMaxMass = 120.0

	// Kroupa-like three-segment power law breakpoints and slopes.
	imfBreak1 = 0.08
	imfBreak2 = 0.5
	imfAlpha0 = 0.3 // [0.08, 0.5)
	imfAlpha1 = 1.3 // [0.5, 1.0)
	imfAlpha2 = 2.3 // [1.0, 120]
	imfBreak3 = 1.0

	defaultAgeMean  = 5e9
	defaultAgeSigma = 2e9

	fehMean  = -0.12
	fehSigma = 0.3

	// minRemnantProgenitorMass is the initial mass (solar) above which a
	// post-AGB star is replaced by a compact remnant, per spec §4.4 step
	// 4. Below ~8 Msun a star ends as a white dwarf, which this
	// generator treats as an ordinary post-AGB track point rather than a
	// third remnant kind — white dwarfs are common enough that modeling
	// them as "just another phase" keeps the compact-remnant branch
	// reserved for the genuinely exotic outcomes spec §4.4 calls out by
	// name (neutron star, black hole).
	minRemnantProgenitorMass  = 8.0
	blackHoleProgenitorMass   = 25.0
)

// Generator produces stars against a shared, read-only track table.
type Generator struct {
	cfg    config.Config
	tracks *tracks.Table
}

// New constructs a Generator over an already-loaded track table. The
// table is shared read-only across every worker, per spec §5's resource
// policy.
func New(cfg config.Config, table *tracks.Table) *Generator {
	return &Generator{cfg: cfg, tracks: table}
}

// Generate runs the stellar generator's full algorithm (spec §4.4) and
// returns a fully populated Star.
func (g *Generator) Generate(e *randdist.Engine, in BasicProperties) (astro.Star, error) {
	basic := g.fillBasicProperties(e, in)

	interpolated := g.tracks.Nearest(basic.FeH).Interpolate(basic.InitialMassSol, ageToLogAge(basic.AgeYears))

	star := astro.Star{
		AstroObject: astro.AstroObject{Name: "Unnamed Star"},
		AgeYears:    basic.AgeYears,
		FeH:         basic.FeH,
		IsSingle:    true,
	}

	if interpolated.Missed {
		star.TrackMissed = true
		g.fallBackToZAMS(&star, basic)
	} else {
		star.MassSol = interpolated.Mass
		star.LuminositySol = math.Pow(10, interpolated.LogL)
		star.EffectiveTempK = math.Pow(10, interpolated.LogTeff)
		star.RadiusM = solarRadiusM * math.Pow(10, interpolated.LogR)
		star.Phase = trackPhaseToStellarPhase(interpolated.Phase)
	}

	if err := g.deriveExtendedProperties(&star); err != nil {
		return astro.Star{}, err
	}

	g.applyCompactRemnantSubstitution(&star, basic.InitialMassSol)

	return star, nil
}

// fillBasicProperties samples every unset field of in, per spec §4.4
// step 1.
func (g *Generator) fillBasicProperties(e *randdist.Engine, in BasicProperties) BasicProperties {
	out := in

	if out.AgeYears == 0 {
		mean := defaultAgeMean
		if in.Type == TypeGiant || in.Type == TypeDeathStar {
			mean = g.cfg.UniverseAge * 0.6
		}
		out.AgeYears = randdist.TruncatedNormal{
			Mean: mean, Sigma: defaultAgeSigma,
			Min: 1e6, Max: g.cfg.UniverseAge,
		}.Draw(e)
	}

	if out.FeH == 0 {
		out.FeH = randdist.Normal{Mean: fehMean, Sigma: fehSigma}.Draw(e)
	}

	if out.InitialMassSol == 0 {
		out.InitialMassSol = clampMass(sampleIMF(e))
		if in.Type == TypeGiant {
			out.InitialMassSol = clampMass(out.InitialMassSol * 4)
		}
	} else {
		out.InitialMassSol = clampMass(out.InitialMassSol)
	}

	return out
}

func clampMass(m float64) float64 {
	if m < imfMinMass {
		return imfMinMass
	}
	if m > imfMaxMass {
		return imfMaxMass
	}
	return m
}

// sampleIMF draws an initial mass from the Kroupa-like three-segment
// power-law IMF via inverse-CDF sampling of a piecewise power law,
// choosing the segment by its relative probability mass before drawing
// within it.
func sampleIMF(e *randdist.Engine) float64 {
	w0 := segmentWeight(imfBreak1, imfBreak2, imfAlpha0)
	w1 := segmentWeight(imfBreak2, imfBreak3, imfAlpha1)
	w2 := segmentWeight(imfBreak3, imfMaxMass, imfAlpha2)
	total := w0 + w1 + w2

	r := e.Float64() * total
	switch {
	case r < w0:
		return inversePowerLaw(e, imfBreak1, imfBreak2, imfAlpha0)
	case r < w0+w1:
		return inversePowerLaw(e, imfBreak2, imfBreak3, imfAlpha1)
	default:
		return inversePowerLaw(e, imfBreak3, imfMaxMass, imfAlpha2)
	}
}

// segmentWeight is proportional to the integral of m^-alpha over
// [lo, hi], used only to pick a segment; the constant of
// proportionality cancels in sampleIMF's ratio.
func segmentWeight(lo, hi, alpha float64) float64 {
	if alpha == 1 {
		return math.Log(hi / lo)
	}
	p := 1 - alpha
	return (math.Pow(hi, p) - math.Pow(lo, p)) / p
}

// inversePowerLaw draws from a power law m^-alpha on [lo, hi] via
// inverse CDF.
func inversePowerLaw(e *randdist.Engine, lo, hi, alpha float64) float64 {
	u := e.Float64()
	if alpha == 1 {
		return lo * math.Pow(hi/lo, u)
	}
	p := 1 - alpha
	loP, hiP := math.Pow(lo, p), math.Pow(hi, p)
	return math.Pow(loP+u*(hiP-loP), 1/p)
}

func ageToLogAge(ageYears float64) float64 {
	if ageYears <= 0 {
		return 0
	}
	return math.Log10(ageYears)
}

const solarRadiusM = 6.957e8

// fallBackToZAMS fills in a minimal set of properties from mass-only
// ZAMS scaling relations when the track lookup misses entirely (spec
// §4.4: "track miss -> fall back to ZAMS estimate and flag the star").
func (g *Generator) fallBackToZAMS(star *astro.Star, basic BasicProperties) {
	m := basic.InitialMassSol
	star.MassSol = m
	star.LuminositySol = math.Pow(m, 3.5)
	star.RadiusM = solarRadiusM * math.Pow(m, 0.9)
	star.EffectiveTempK = 5772 * math.Pow(star.LuminositySol/(star.RadiusM/solarRadiusM), 0.25)
	star.Phase = astro.PhaseZAMS
}

func trackPhaseToStellarPhase(p tracks.Phase) astro.StellarPhase {
	switch p {
	case 0:
		return astro.PhaseMainSequence
	case 1:
		return astro.PhaseSubgiant
	case 2:
		return astro.PhaseRedGiant
	case 3:
		return astro.PhaseHorizontalBranch
	case 4:
		return astro.PhaseAsymptoticGiant
	case 5:
		return astro.PhasePostAGB
	default:
		return astro.PhaseMainSequence
	}
}

// deriveExtendedProperties fills escape velocity, surface gravity,
// stellar wind, magnetic field and spectral class per spec §4.4 step 3.
func (g *Generator) deriveExtendedProperties(star *astro.Star) error {
	massKg := star.MassSol * solarMassKg
	if star.RadiusM <= 0 || massKg <= 0 {
		return faults.Invariant(fmt.Sprintf("star has non-positive mass or radius after track lookup: mass=%g radius=%g", massKg, star.RadiusM))
	}

	star.EscapeVelocityMS = math.Sqrt(2 * gravitationalConstant * massKg / star.RadiusM)
	star.SurfaceGravityMS2 = gravitationalConstant * massKg / (star.RadiusM * star.RadiusM)
	star.WindMassLossRate = stellarWindMassLossRate(star)
	star.MagneticFieldT = empiricalMagneticField(star)
	star.SpectralClass = spectralClassString(star)

	if math.IsNaN(star.EscapeVelocityMS) || math.IsInf(star.EscapeVelocityMS, 0) {
		return faults.Recoverable(0, "non-finite escape velocity", nil)
	}
	return nil
}

const (
	gravitationalConstant = 6.674e-11
	solarMassKg           = 1.989e30
)

// stellarWindMassLossRate applies a Reimers-style relation for cool
// giants and a Vink-style scaling for hot, luminous stars, per spec
// §4.4 step 3.
func stellarWindMassLossRate(star *astro.Star) float64 {
	if star.EffectiveTempK >= 15000 && star.LuminositySol >= 1000 {
		// Vink-style: mass loss grows steeply with luminosity for hot,
		// massive stars.
		return 1e-6 * math.Pow(star.LuminositySol/1e5, 0.85) * math.Pow(star.MassSol/30, -0.5)
	}
	// Reimers: eta * L * R / M, eta ~ 4e-13 in solar units per year.
	const reimersEta = 4e-13
	if star.MassSol <= 0 {
		return 0
	}
	return reimersEta * star.LuminositySol * (star.RadiusM / solarRadiusM) / star.MassSol
}

// empiricalMagneticField uses a simple convective-dynamo proxy: field
// strength grows with rotation rate proxy (inverse of mass, as a stand
// in for a main-sequence star's typical spin-down with mass) and with
// surface gravity.
func empiricalMagneticField(star *astro.Star) float64 {
	if star.MassSol <= 0 {
		return 0
	}
	return 1e-4 * star.SurfaceGravityMS2 / 274.0 * math.Pow(star.MassSol, -0.5)
}

// spectralClassString derives a Morgan-Keenan class string from
// effective temperature (spectral type letter + decile) and luminosity
// (luminosity class), per spec §4.4 step 3.
func spectralClassString(star *astro.Star) string {
	letter, decile := mkSpectralType(star.EffectiveTempK)
	return fmt.Sprintf("%s%d%s", letter, decile, mkLuminosityClass(star))
}

func mkSpectralType(teffK float64) (string, int) {
	type band struct {
		letter   string
		lo, hi   float64
	}
	bands := []band{
		{"O", 30000, 60000},
		{"B", 10000, 30000},
		{"A", 7500, 10000},
		{"F", 6000, 7500},
		{"G", 5200, 6000},
		{"K", 3700, 5200},
		{"M", 2400, 3700},
	}
	for _, b := range bands {
		if teffK >= b.lo && teffK < b.hi {
			decile := int(9 * (1 - (teffK-b.lo)/(b.hi-b.lo)))
			return b.letter, clampDecile(decile)
		}
	}
	if teffK >= 60000 {
		return "O", 0
	}
	return "M", 9
}

func clampDecile(d int) int {
	if d < 0 {
		return 0
	}
	if d > 9 {
		return 9
	}
	return d
}

func mkLuminosityClass(star *astro.Star) string {
	radiusSol := star.RadiusM / solarRadiusM
	switch {
	case star.Phase == astro.PhaseRedGiant || star.Phase == astro.PhaseAsymptoticGiant:
		return "III"
	case star.Phase == astro.PhaseSubgiant:
		return "IV"
	case radiusSol > 10:
		return "II"
	default:
		return "V"
	}
}

// applyCompactRemnantSubstitution replaces the star with a neutron star
// or black hole once it has evolved past post-AGB and its progenitor
// mass clears the remnant threshold, per spec §4.4 step 4.
func (g *Generator) applyCompactRemnantSubstitution(star *astro.Star, progenitorMassSol float64) {
	if star.Phase < astro.PhasePostAGB {
		return
	}
	if progenitorMassSol < minRemnantProgenitorMass {
		return
	}

	if progenitorMassSol >= blackHoleProgenitorMass {
		star.Phase = astro.PhaseBlackHole
		star.MassSol = progenitorMassSol * 0.5 // crude fallback-mass retention
		star.RadiusM = schwarzschildRadius(star.MassSol * solarMassKg)
	} else {
		star.Phase = astro.PhaseNeutronStar
		star.MassSol = 1.4
		star.RadiusM = 12000 // ~12 km canonical neutron star radius
	}
	star.SpinIsDimensionless = true
	star.SpinPeriodS = 0
	star.SpectralClass = star.Phase.String()
}

func schwarzschildRadius(massKg float64) float64 {
	const speedOfLight = 2.998e8
	return 2 * gravitationalConstant * massKg / (speedOfLight * speedOfLight)
}
