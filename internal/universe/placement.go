package universe

import (
	"github.com/sargonas/stellar-forge/internal/randdist"
	"github.com/sargonas/stellar-forge/internal/spatial"
)

// maxPlacementAttempts bounds the rejection-sampling loop so a nearly
// saturated octree produces a RecoverableGenerationFault rather than
// spinning forever (spec §4.7 step 2 names rejection sampling but not a
// bound; a retryable cap keeps the driver's per-task failure model the
// single place that handles "this system couldn't find a home").
const maxPlacementAttempts = 64

// drawLocation rejection-samples a candidate point uniformly within the
// octree's root cube, re-drawing until it clears MinSeparationParsecs
// from every point already published to the shared octree (spec §4.7
// step 2: "location draw, rejection-sampled against the shared Octree
// with minimum-separation 0.5 pc"). Every candidate's separation check
// runs under the driver's shared lock, since the octree is the one
// piece of mutable state every worker contends over; the draw itself
// (reading the worker-local engine) does not need it.
func (d *Driver) drawLocation(e *randdist.Engine) (spatial.Point, bool) {
	half := d.cfg.OctreeRadius

	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		candidate := spatial.Point{
			randdist.Uniform{Min: -half, Max: half}.Draw(e),
			randdist.Uniform{Min: -half, Max: half}.Draw(e),
			randdist.Uniform{Min: -half, Max: half}.Draw(e),
		}

		d.mu.Lock()
		neighbors := d.octree.Query(candidate, d.cfg.MinSeparationParsecs)
		d.mu.Unlock()

		if len(neighbors) == 0 {
			return candidate, true
		}
	}
	return spatial.Point{}, false
}
