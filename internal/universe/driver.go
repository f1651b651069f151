// Package universe implements the universe driver (component C7): given
// a (seed, N), it builds N stellar systems in parallel against a bounded
// worker pool, placing each into a shared octree with minimum-separation
// rejection sampling and publishing accepted systems to a catalog.
// Grounded on JoshuaAFerguson-terminal-velocity's manager idiom
// (internal/arena/manager.go, internal/events/manager.go: a struct
// wrapping shared state behind a mutex, background goroutines joined by
// a sync.WaitGroup), generalized from "one long-lived manager" to "a
// fixed pool of workers draining a job channel," which is what spec §5's
// bounded-worker-pool model needs.
package universe

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/sargonas/stellar-forge/internal/astro"
	"github.com/sargonas/stellar-forge/internal/civgen"
	"github.com/sargonas/stellar-forge/internal/config"
	"github.com/sargonas/stellar-forge/internal/faults"
	"github.com/sargonas/stellar-forge/internal/logger"
	"github.com/sargonas/stellar-forge/internal/orbitalgen"
	"github.com/sargonas/stellar-forge/internal/randdist"
	"github.com/sargonas/stellar-forge/internal/spatial"
	"github.com/sargonas/stellar-forge/internal/stellargen"
	"github.com/sargonas/stellar-forge/internal/tracks"
)

var log = logger.WithComponent("UniverseDriver")

// Driver orchestrates parallel system generation for a single run. It
// owns the shared octree and catalog, the one piece of mutable state
// every worker contends over (spec §5).
type Driver struct {
	cfg config.Config

	stellarGen *stellargen.Generator
	orbitalGen *orbitalgen.Generator
	civGen     *civgen.Generator

	mu      sync.Mutex
	octree  *spatial.Octree
	catalog *Catalog

	cancelled atomic.Bool

	Metrics *faults.Metrics
}

// New constructs a Driver. table is the evolutionary track data, loaded
// once by the caller and shared read-only across every worker (spec §5:
// "loaded once, shared read-only"; "asset manager is a process-wide
// singleton ... initialized before any generator runs").
func New(cfg config.Config, table *tracks.Table) *Driver {
	return &Driver{
		cfg:        cfg,
		stellarGen: stellargen.New(cfg, table),
		orbitalGen: orbitalgen.New(cfg),
		civGen:     civgen.New(cfg),
		octree:     spatial.New(spatial.Point{0, 0, 0}, cfg.OctreeRadius, cfg.OctreeMaxDepth),
		catalog:    NewCatalog(),
		Metrics:    faults.NewMetrics(),
	}
}

// Cancel sets the flag every worker checks at task entry (spec §5:
// "Driver exposes a flag checked at task entry; in-flight tasks run to
// completion" — already-dispatched jobs are not interrupted mid-build).
func (d *Driver) Cancel() { d.cancelled.Store(true) }

// Cancelled reports whether Cancel has been called.
func (d *Driver) Cancelled() bool { return d.cancelled.Load() }

// BuildUniverse runs the full C7 algorithm for (seed, n): derives one
// seed sequence per system, submits each as an independent task to a
// worker pool bounded to the physical core count (or cfg.WorkerCount),
// and returns the resulting Catalog once every task has completed (spec
// §4.7). Ordering across systems is unspecified — the catalog is
// order-unstable, matching spec §5.
func (d *Driver) BuildUniverse(seed uint64, n int) (*Catalog, error) {
	if n <= 0 {
		return nil, faults.Config("system count must be positive")
	}
	if err := d.cfg.Validate(); err != nil {
		return nil, err
	}

	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	workerCount := d.cfg.ResolvedWorkerCount()
	if workerCount > n {
		workerCount = n
	}
	if workerCount < 1 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				if d.cancelled.Load() {
					continue
				}
				d.buildOne(seed, index)
			}
		}()
	}
	wg.Wait()

	log.Info("universe build complete: %d systems published, %d abandoned", len(d.catalog.Systems), d.catalog.SystemsAbandoned)
	return d.catalog, nil
}

// buildOne runs the retry loop for a single system slot (spec §4.7 step
// 3: "on a build failure, re-seed and retry up to K times before
// abandoning").
func (d *Driver) buildOne(rootSeed uint64, index int) {
	attemptSeed := uint64(0)
	err := faults.RetryableSystemBuild(d.cfg.MaxRetries, func(attempt int) uint64 {
		attemptSeed = randDeriveAttemptSeed(rootSeed, index, attempt)
		return attemptSeed
	}, func(systemSeed uint64) error {
		return d.build(systemSeed, index)
	})

	if err != nil {
		d.Metrics.Record("UniverseDriver", err)
		d.mu.Lock()
		d.catalog.recordAbandoned()
		d.mu.Unlock()
		log.Warn("system %d abandoned: %v", index, err)
	}
}

// randDeriveAttemptSeed folds (rootSeed, systemIndex, attempt) down to a
// single uint64 via the same seed-folding idiom randdist.Derive uses, so
// a retried attempt draws an entirely different seed sequence rather
// than repeating the failed one.
func randDeriveAttemptSeed(rootSeed uint64, index, attempt int) uint64 {
	derived := randdist.Derive([]uint64{rootSeed, uint64(index)}, fmt.Sprintf("attempt-%d", attempt))
	return derived[len(derived)-1]
}

// build runs one system's full pipeline: location draw, star synthesis,
// orbital synthesis, civilization generation, then an atomic publish to
// the shared octree and catalog (spec §4.7 steps 2 and 4).
func (d *Driver) build(systemSeed uint64, index int) error {
	seedSeq := []uint64{systemSeed}
	e := randdist.NewEngine(seedSeq...)

	// Placement draws from its own derived sub-engine rather than e.
	// Rejection sampling retries a variable number of times depending on
	// how crowded the shared octree already is when this system happens
	// to run, which depends on inter-system scheduling. If those draws
	// came from e, a system's star/orbital/civilization content would
	// shift with however many other systems had published first,
	// breaking the "a single system is reproducible from its seed
	// sequence irrespective of scheduling" property (spec §5, §8).
	// Isolating placement to its own engine keeps the rest of the draw
	// stream fixed regardless of how many placement attempts it took.
	placementEngine := randdist.NewEngine(randdist.Derive(seedSeq, "placement")...)

	location, ok := d.drawLocation(placementEngine)
	if !ok {
		return faults.Recoverable(systemSeed, "no location cleared minimum separation within the placement budget", nil)
	}

	primary, err := d.stellarGen.Generate(e, stellargen.BasicProperties{})
	if err != nil {
		return faults.Recoverable(systemSeed, "primary star synthesis failed", err)
	}

	sys := astro.NewStellarSystem(
		uuid.New(),
		fmt.Sprintf("System %d", index+1),
		systemSeed,
		astro.BaryCenter{
			AstroObject: astro.AstroObject{ID: uuid.New(), Name: fmt.Sprintf("System %d Barycenter", index+1)},
			Position:    astro.Vec3{X: location[0], Y: location[1], Z: location[2]},
		},
	)
	sys.AddStar(primary)

	binary := stellargen.DrawBinary(e, d.cfg, primary.MassSol)
	if binary.IsBinary {
		secondary, err := d.stellarGen.Generate(e, stellargen.BasicProperties{InitialMassSol: binary.SecondaryMassSol})
		if err != nil {
			return faults.Recoverable(systemSeed, "secondary star synthesis failed", err)
		}
		sys.AddStar(secondary)
	}

	if err := d.orbitalGen.GenerateOrbitals(e, systemSeed, sys); err != nil {
		return err
	}

	d.generateCivilizations(e, sys)

	d.mu.Lock()
	if len(d.octree.Query(location, d.cfg.MinSeparationParsecs)) > 0 {
		d.mu.Unlock()
		return faults.Recoverable(systemSeed, "location taken by a concurrently published system", nil)
	}
	d.octree.Insert(location)
	d.catalog.Publish(sys)
	d.mu.Unlock()

	return nil
}

// generateCivilizations runs the civilization generator (component C6)
// against every eligible planet in sys, attaching the resulting
// Civilization only when life actually occurred (spec §4.6's
// "civilization phase is populated only if life occurrence succeeded"
// invariant, restated in spec §8's civilization-gating property).
func (d *Driver) generateCivilizations(e *randdist.Engine, sys *astro.StellarSystem) {
	if len(sys.Stars) == 0 {
		return
	}
	hostAgeYears := sys.Stars[0].AgeYears

	for i := range sys.Planets {
		p := &sys.Planets[i]
		if !civgen.IsEligible(p) {
			continue
		}
		civ := d.civGen.Generate(e, hostAgeYears, p)
		if civ.LifeOccurred {
			p.Civilization = civ
		}
	}
}
