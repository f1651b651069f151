package orbitalgen

import (
	"math"

	"github.com/sargonas/stellar-forge/internal/astro"
)

// protoDisk is the derived protoplanetary disk geometry and mass
// budget for one star (spec §4.5.2).
type protoDisk struct {
	starIndex int
	star      *astro.Star

	innerRadiusAU float64
	outerRadiusAU float64

	diskMassSol float64
	dustMassSol float64

	habitableZoneInAU  float64
	habitableZoneOutAU float64
	frostLineAU        float64

	// forbiddenInnerAU/forbiddenOuterAU bound the region planet
	// placement must avoid in a binary system: the circumstellar zone
	// ends at ~0.3*a_b and the circumbinary zone begins at ~3*a_b (spec
	// §4.5.1). Both are zero for a single-star system.
	forbiddenInnerAU float64
	forbiddenOuterAU float64
}

// buildDisk derives a protoplanetary disk's geometry and mass budget
// for one star, per spec §4.5.2. binarySeparationAU is the binary's
// semi-major-axis sum (a_b); isBinary selects whether the forbidden
// circumstellar/circumbinary zones apply.
func (g *Generator) buildDisk(starIndex int, star *astro.Star, binarySeparationAU float64, isBinary bool) protoDisk {
	luminositySol := star.LuminositySol
	massSol := star.MassSol

	disk := protoDisk{
		starIndex:     starIndex,
		star:          star,
		innerRadiusAU: 0.05 * math.Sqrt(luminositySol),
		outerRadiusAU: 50 * math.Cbrt(massSol),
		diskMassSol:   0.01 * massSol,
	}
	disk.dustMassSol = 0.01 * disk.diskMassSol

	hzIn, hzOut := habitableZoneBounds(luminositySol, g.cfg.ContainUltravioletHabitableZone)
	disk.habitableZoneInAU = hzIn
	disk.habitableZoneOutAU = hzOut
	disk.frostLineAU = 2.7 * math.Sqrt(luminositySol)

	if isBinary {
		disk.forbiddenInnerAU = 0.3 * binarySeparationAU
		disk.forbiddenOuterAU = 3.0 * binarySeparationAU
	}

	return disk
}

// habitableZoneBounds applies Kopparapu-style bounds scaled by
// sqrt(L/Lsun), per spec §4.5.2. The conservative runaway-greenhouse to
// maximum-greenhouse band is used; ContainUltravioletHabitableZone widens
// the inner edge to include the UV habitable band some generator
// configurations want modeled (spec §6).
func habitableZoneBounds(luminositySol float64, containUltraviolet bool) (inAU, outAU float64) {
	scale := math.Sqrt(luminositySol)
	inAU = 0.95 * scale
	if containUltraviolet {
		// The UV habitable band sits just inside the conservative
		// runaway-greenhouse limit.
		inAU = 0.75 * scale
	}
	return inAU, 1.67 * scale
}

// inHabitableZone reports whether semiMajorAxisAU falls within the
// disk's habitable zone bounds.
func (d protoDisk) inHabitableZone(semiMajorAxisAU float64) bool {
	return semiMajorAxisAU >= d.habitableZoneInAU && semiMajorAxisAU <= d.habitableZoneOutAU
}

// inForbiddenZone reports whether semiMajorAxisAU falls inside the
// binary's unstable zone (spec §4.5.1). Always false for single-star
// disks, since forbiddenOuterAU is left at zero.
func (d protoDisk) inForbiddenZone(semiMajorAxisAU float64) bool {
	if d.forbiddenOuterAU == 0 {
		return false
	}
	return semiMajorAxisAU > d.forbiddenInnerAU && semiMajorAxisAU < d.forbiddenOuterAU
}
