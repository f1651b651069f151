package astro

import "github.com/google/uuid"

// StellarSystem owns every body generated for one system: its
// BaryCenter, and the per-kind collections every ObjectRef indexes
// into. Nothing outside this package appends to those collections
// directly — the orbital generator builds a StellarSystem through
// AddStar/AddPlanet/AddAsteroidCluster/AddArtifactCluster so the
// returned ObjectRef is always valid for the slice it names.
type StellarSystem struct {
	ID   uuid.UUID
	Name string
	Seed uint64

	BaryCenter BaryCenter

	Stars            []Star
	Planets          []Planet
	AsteroidClusters []AsteroidCluster
	ArtifactClusters []ArtifactCluster

	Orbits []Orbit
}

// NewStellarSystem constructs an empty system rooted at the given
// bary center. Generators populate it by repeated calls to the
// Add* methods and AddOrbit.
func NewStellarSystem(id uuid.UUID, name string, seed uint64, center BaryCenter) *StellarSystem {
	return &StellarSystem{
		ID:         id,
		Name:       name,
		Seed:       seed,
		BaryCenter: center,
	}
}

// AddStar appends s and returns a non-owning reference to it.
func (sys *StellarSystem) AddStar(s Star) ObjectRef {
	sys.Stars = append(sys.Stars, s)
	return ObjectRef{Type: ObjectStar, Index: len(sys.Stars) - 1}
}

// AddPlanet appends p and returns a non-owning reference to it. Moons
// are ordinary planets added the same way; their Orbit's Parent names
// the host planet's ObjectRef rather than a star or the bary center.
func (sys *StellarSystem) AddPlanet(p Planet) ObjectRef {
	sys.Planets = append(sys.Planets, p)
	return ObjectRef{Type: ObjectPlanet, Index: len(sys.Planets) - 1}
}

// AddAsteroidCluster appends a belt or ring and returns a non-owning
// reference to it.
func (sys *StellarSystem) AddAsteroidCluster(c AsteroidCluster) ObjectRef {
	sys.AsteroidClusters = append(sys.AsteroidClusters, c)
	return ObjectRef{Type: ObjectAsteroidCluster, Index: len(sys.AsteroidClusters) - 1}
}

// AddArtifactCluster appends a post-singularity megastructure and
// returns a non-owning reference to it.
func (sys *StellarSystem) AddArtifactCluster(c ArtifactCluster) ObjectRef {
	sys.ArtifactClusters = append(sys.ArtifactClusters, c)
	return ObjectRef{Type: ObjectArtifactCluster, Index: len(sys.ArtifactClusters) - 1}
}

// AddOrbit appends a fully built orbit to the system.
func (sys *StellarSystem) AddOrbit(o Orbit) {
	sys.Orbits = append(sys.Orbits, o)
}

// Star resolves a Star ObjectRef. Panics if ref does not name a star
// in this system — a programming error in the generator, never a
// reachable runtime condition for a caller holding a ref this package
// issued.
func (sys *StellarSystem) Star(ref ObjectRef) *Star {
	mustType(ref, ObjectStar)
	return &sys.Stars[ref.Index]
}

// Planet resolves a Planet ObjectRef.
func (sys *StellarSystem) Planet(ref ObjectRef) *Planet {
	mustType(ref, ObjectPlanet)
	return &sys.Planets[ref.Index]
}

// AsteroidCluster resolves an AsteroidCluster ObjectRef.
func (sys *StellarSystem) AsteroidCluster(ref ObjectRef) *AsteroidCluster {
	mustType(ref, ObjectAsteroidCluster)
	return &sys.AsteroidClusters[ref.Index]
}

// ArtifactCluster resolves an ArtifactCluster ObjectRef.
func (sys *StellarSystem) ArtifactCluster(ref ObjectRef) *ArtifactCluster {
	mustType(ref, ObjectArtifactCluster)
	return &sys.ArtifactClusters[ref.Index]
}

func mustType(ref ObjectRef, want ObjectType) {
	if ref.Type != want {
		panic("astro: ObjectRef type mismatch: got " + ref.Type.String() + ", want " + want.String())
	}
}

// StarCount, PlanetCount and HabitedPlanetCount support the universe
// driver's per-system and aggregate catalog statistics.
func (sys *StellarSystem) StarCount() int { return len(sys.Stars) }

func (sys *StellarSystem) PlanetCount() int { return len(sys.Planets) }

func (sys *StellarSystem) HabitedPlanetCount() int {
	count := 0
	for i := range sys.Planets {
		if sys.Planets[i].HasLife() {
			count++
		}
	}
	return count
}

// IsBinary reports whether this system has exactly the two-star
// configuration the orbital generator's binary setup step targets.
func (sys *StellarSystem) IsBinary() bool {
	return len(sys.Stars) == 2
}
