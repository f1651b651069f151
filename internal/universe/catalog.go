package universe

import "github.com/sargonas/stellar-forge/internal/astro"

// Catalog is the user-facing output of a driver run (spec §6): a flat
// list of the accepted systems, each carrying its own tree, plus the
// aggregate statistics compiled across every system published to it.
// No on-disk persisted format is mandated by the core; internal/catalogstore
// is an optional external consumer of this struct.
type Catalog struct {
	Systems []*astro.StellarSystem

	// ClassCounts tallies stars by spectral class across every system
	// published to the catalog (spec §4.7: "counts by stellar class are
	// aggregated").
	ClassCounts map[string]int

	// SystemsAbandoned counts systems whose retry budget was exhausted
	// (spec §4.7 step 3 / §7: "reported skipped").
	SystemsAbandoned int
}

// NewCatalog returns an empty Catalog ready to be published into.
func NewCatalog() *Catalog {
	return &Catalog{ClassCounts: make(map[string]int)}
}

// Publish appends sys and folds its stars into ClassCounts. During a
// driver run, callers must hold the driver's shared octree+catalog
// lock before calling — Publish does not lock itself because spec
// §4.7/§5 require octree insertion and catalog publication to happen
// as a single atomic step, and only the caller holds the matching
// octree point. internal/catalogstore also calls this directly when
// reconstructing a catalog loaded from storage, where no concurrent
// writer exists and no lock is needed.
func (c *Catalog) Publish(sys *astro.StellarSystem) {
	c.Systems = append(c.Systems, sys)
	for i := range sys.Stars {
		c.ClassCounts[sys.Stars[i].SpectralClass]++
	}
}

func (c *Catalog) recordAbandoned() {
	c.SystemsAbandoned++
}
