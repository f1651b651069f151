package astro

// Vec3 is a 3-component vector in parsecs (bary center position) or in
// AU/meters depending on context; callers track units.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 is a spherical orientation (theta, phi), in radians.
type Vec2 struct {
	Theta, Phi float64
}

// BaryCenter is a system's inertial origin — the root node of every
// StellarSystem (spec §3).
type BaryCenter struct {
	AstroObject
	Position     Vec3
	Normal       Vec2
	DistanceRank int
}
