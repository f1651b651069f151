package catalogstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sargonas/stellar-forge/internal/astro"
	"github.com/sargonas/stellar-forge/internal/universe"
)

// ErrRunNotFound is returned when a run ID has no matching row.
var ErrRunNotFound = errors.New("catalog run not found")

// CatalogRepository handles catalog persistence, grounded on the
// teacher's SystemRepository (internal/database/system_repository.go):
// one struct wrapping *DB, bulk inserts batched inside a single
// transaction, parameterized statements throughout.
type CatalogRepository struct {
	db *DB
}

// NewCatalogRepository wraps db in a CatalogRepository.
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// SaveCatalog persists every system in cat as a single run, in one
// transaction (mirrors BulkCreateSystems/BulkCreatePlanets: a prepared
// statement per table, reused across every row).
func (r *CatalogRepository) SaveCatalog(ctx context.Context, seed uint64, cat *universe.Catalog) (uuid.UUID, error) {
	runID := uuid.New()

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO catalog_runs (id, seed, system_count, abandoned_count) VALUES ($1, $2, $3, $4)`,
			runID, int64(seed), len(cat.Systems), cat.SystemsAbandoned,
		)
		if err != nil {
			return fmt.Errorf("insert catalog run: %w", err)
		}

		for _, sys := range cat.Systems {
			if err := insertSystem(ctx, tx, runID, sys); err != nil {
				return fmt.Errorf("insert system %s: %w", sys.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return runID, nil
}

func insertSystem(ctx context.Context, tx pgx.Tx, runID uuid.UUID, sys *astro.StellarSystem) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO star_systems (id, run_id, name, seed, pos_x, pos_y, pos_z) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sys.ID, runID, sys.Name, int64(sys.Seed),
		sys.BaryCenter.Position.X, sys.BaryCenter.Position.Y, sys.BaryCenter.Position.Z,
	)
	if err != nil {
		return err
	}

	for i := range sys.Stars {
		s := &sys.Stars[i]
		_, err := tx.Exec(ctx,
			`INSERT INTO stars (id, system_id, name, mass_sol, radius_m, effective_temp_k, luminosity_sol, spectral_class, phase, age_years, is_single)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			s.ID, sys.ID, s.Name, s.MassSol, s.RadiusM, s.EffectiveTempK, s.LuminositySol,
			s.SpectralClass, int(s.Phase), s.AgeYears, s.IsSingle,
		)
		if err != nil {
			return err
		}
	}

	for i := range sys.Planets {
		p := &sys.Planets[i]
		var civPhase *int
		if p.Civilization != nil {
			v := int(p.Civilization.Phase)
			civPhase = &v
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO planets (id, system_id, name, type, mass_earth, radius_earth, albedo_bond, balance_temp_k, surface_temp_k, has_life, civilization_phase)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			p.ID, sys.ID, p.Name, int(p.Type), p.MassEarth, p.RadiusEarth,
			p.AlbedoBond, p.BalanceTempK, p.SurfaceTempK, p.HasLife(), civPhase,
		)
		if err != nil {
			return err
		}
	}

	for i := range sys.AsteroidClusters {
		c := &sys.AsteroidClusters[i]
		_, err := tx.Exec(ctx,
			`INSERT INTO asteroid_clusters (id, system_id, name, total_mass_kg, is_ring, composition, inner_radius_au, outer_radius_au)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			c.ID, sys.ID, c.Name, c.TotalMassKg, c.IsRing, int(c.Composition), c.InnerRadiusAU, c.OuterRadiusAU,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// RunSummary is the lightweight row listed by ListRuns, before paying
// the cost of loading every system in a run.
type RunSummary struct {
	ID              uuid.UUID
	Seed            uint64
	SystemCount     int
	AbandonedCount  int
}

// ListRuns returns every stored run, most recent first.
func (r *CatalogRepository) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, seed, system_count, abandoned_count FROM catalog_runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query catalog runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var seed int64
		if err := rows.Scan(&run.ID, &seed, &run.SystemCount, &run.AbandonedCount); err != nil {
			return nil, fmt.Errorf("scan catalog run: %w", err)
		}
		run.Seed = uint64(seed)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog runs: %w", err)
	}
	return runs, nil
}

// LoadCatalog reconstructs the systems belonging to runID. Orbits,
// civilizations' progress fields, and the finer star/planet detail the
// generator computes in memory are not round-tripped — the store
// persists the catalog view (spec §6), not a full re-derivable model.
func (r *CatalogRepository) LoadCatalog(ctx context.Context, runID uuid.UUID) (*universe.Catalog, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM catalog_runs WHERE id = $1)`, runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check catalog run: %w", err)
	}
	if !exists {
		return nil, ErrRunNotFound
	}

	sysRows, err := r.db.Query(ctx,
		`SELECT id, name, seed, pos_x, pos_y, pos_z FROM star_systems WHERE run_id = $1 ORDER BY name`, runID)
	if err != nil {
		return nil, fmt.Errorf("query systems: %w", err)
	}
	defer sysRows.Close()

	cat := universe.NewCatalog()
	for sysRows.Next() {
		var id uuid.UUID
		var name string
		var seed int64
		var x, y, z float64
		if err := sysRows.Scan(&id, &name, &seed, &x, &y, &z); err != nil {
			return nil, fmt.Errorf("scan system: %w", err)
		}

		sys := astro.NewStellarSystem(id, name, uint64(seed), astro.BaryCenter{
			Position: astro.Vec3{X: x, Y: y, Z: z},
		})

		stars, err := r.loadStars(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, s := range stars {
			sys.AddStar(s)
		}

		planets, err := r.loadPlanets(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, p := range planets {
			sys.AddPlanet(p)
		}

		cat.Publish(sys)
	}
	if err := sysRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate systems: %w", err)
	}

	return cat, nil
}

func (r *CatalogRepository) loadStars(ctx context.Context, systemID uuid.UUID) ([]astro.Star, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, mass_sol, radius_m, effective_temp_k, luminosity_sol, spectral_class, phase, age_years, is_single
		 FROM stars WHERE system_id = $1`, systemID)
	if err != nil {
		return nil, fmt.Errorf("query stars: %w", err)
	}
	defer rows.Close()

	var stars []astro.Star
	for rows.Next() {
		var s astro.Star
		var phase int
		if err := rows.Scan(&s.ID, &s.Name, &s.MassSol, &s.RadiusM, &s.EffectiveTempK,
			&s.LuminositySol, &s.SpectralClass, &phase, &s.AgeYears, &s.IsSingle); err != nil {
			return nil, fmt.Errorf("scan star: %w", err)
		}
		s.Phase = astro.StellarPhase(phase)
		stars = append(stars, s)
	}
	return stars, rows.Err()
}

func (r *CatalogRepository) loadPlanets(ctx context.Context, systemID uuid.UUID) ([]astro.Planet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, type, mass_earth, radius_earth, albedo_bond, balance_temp_k, surface_temp_k, civilization_phase
		 FROM planets WHERE system_id = $1`, systemID)
	if err != nil {
		return nil, fmt.Errorf("query planets: %w", err)
	}
	defer rows.Close()

	var planets []astro.Planet
	for rows.Next() {
		var p astro.Planet
		var ptype int
		var civPhase *int
		if err := rows.Scan(&p.ID, &p.Name, &ptype, &p.MassEarth, &p.RadiusEarth,
			&p.AlbedoBond, &p.BalanceTempK, &p.SurfaceTempK, &civPhase); err != nil {
			return nil, fmt.Errorf("scan planet: %w", err)
		}
		p.Type = astro.PlanetType(ptype)
		if civPhase != nil {
			p.Civilization = &astro.Civilization{Phase: astro.CivilizationPhase(*civPhase), LifeOccurred: true}
		}
		planets = append(planets, p)
	}
	return planets, rows.Err()
}
