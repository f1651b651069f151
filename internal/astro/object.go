// Package astro is the entity model (component C3): plain data
// containers for every physical body kind, tied together by a closed sum
// type (ObjectType) carrying a non-owning reference payload rather than
// the source's virtual-base-plus-pointer-union hierarchy (Design Note 1
// in spec.md §9). Owning collections of each kind live on StellarSystem;
// Orbit holds only non-owning references into those collections.
package astro

import "github.com/google/uuid"

// ObjectType discriminates the kind of body an ObjectRef points at.
type ObjectType int

const (
	ObjectBaryCenter ObjectType = iota
	ObjectStar
	ObjectPlanet
	ObjectAsteroidCluster
	ObjectArtifactCluster
)

func (t ObjectType) String() string {
	switch t {
	case ObjectBaryCenter:
		return "BaryCenter"
	case ObjectStar:
		return "Star"
	case ObjectPlanet:
		return "Planet"
	case ObjectAsteroidCluster:
		return "AsteroidCluster"
	case ObjectArtifactCluster:
		return "ArtifactCluster"
	default:
		return "Unknown"
	}
}

// ObjectRef is a non-owning, tagged reference to a body owned by some
// StellarSystem's per-kind collection. It replaces the source's
// hand-rolled pointer union: instead of a raw pointer keyed by a type
// tag, the index into the owning slice is kept directly, since a
// StellarSystem's slices never reallocate out from under an ObjectRef
// once GenerateOrbitals has finished building the system (spec §3
// Lifecycle: "immutable to external consumers" after insertion).
type ObjectRef struct {
	Type  ObjectType
	Index int
}

// AstroObject is the abstract identity every physical body shares.
type AstroObject struct {
	ID   uuid.UUID
	Name string
}
