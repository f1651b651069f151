package astro

// OrbitingObject is one tagged reference riding a shared Orbit, along
// with the per-object phase spec §3 calls for: its own initial true
// anomaly (two bodies on mirrored binary orbits start at opposite
// phase) and a small positional offset from the orbit's nominal path
// (used by moons sharing a resonance slot, for instance).
type OrbitingObject struct {
	Object              ObjectRef
	InitialTrueAnomaly  float64
	OffsetFromHostOrbit Vec3
}

// Orbit is a single Keplerian path. Parent is the body the orbit
// revolves around — either a system's BaryCenter or another body in the
// same system — and Objects lists every body riding that path.
type Orbit struct {
	Parent  ObjectRef
	Objects []OrbitingObject

	Normal Vec2

	PeriodSeconds float64
	EpochSeconds  float64

	SemiMajorAxisAU float64
	Eccentricity    float64
	InclinationRad  float64

	LongitudeAscendingNodeRad float64
	ArgPeriapsisRad           float64
	TrueAnomalyRad            float64
}

// AddObject appends ref to this orbit with the given initial phase and
// positional offset.
func (o *Orbit) AddObject(ref ObjectRef, initialTrueAnomaly float64, offset Vec3) {
	o.Objects = append(o.Objects, OrbitingObject{
		Object:              ref,
		InitialTrueAnomaly:  initialTrueAnomaly,
		OffsetFromHostOrbit: offset,
	})
}
