package astro

// CivilizationPhase is the closed progression a planet's intelligent
// life passes through once the life-occurrence gate succeeds (spec §3,
// §4.6). The Cenoziocera-equivalent branch point is PhaseSteamAge, the
// ceiling of the generator's initial phase roll: planets that land
// there roll the post-civilization stage table that can carry them as
// far as PhaseNewCivilization.
type CivilizationPhase int

const (
	PhaseNoCivilization CivilizationPhase = iota
	PhaseCarbonBasedIntelligence
	PhasePrimitiveSociety
	PhasePreIndustrial
	PhaseSteamAge
	PhaseElectricAge
	PhaseAtomicAge
	PhaseDigitalAge
	PhasePreASI
	PhaseSatTeeTouy
	PhaseSatTeeTouyByASI
	PhaseNewCivilization
)

func (p CivilizationPhase) String() string {
	switch p {
	case PhaseNoCivilization:
		return "None"
	case PhaseCarbonBasedIntelligence:
		return "Carbon-based intelligence"
	case PhasePrimitiveSociety:
		return "Primitive society"
	case PhasePreIndustrial:
		return "Pre-industrial"
	case PhaseSteamAge:
		return "Steam age"
	case PhaseElectricAge:
		return "Electric age"
	case PhaseAtomicAge:
		return "Atomic age"
	case PhaseDigitalAge:
		return "Digital age"
	case PhasePreASI:
		return "Pre-ASI"
	case PhaseSatTeeTouy:
		return "Sat-Tee-Touy"
	case PhaseSatTeeTouyByASI:
		return "Sat-Tee-Touy-but-by-ASI"
	case PhaseNewCivilization:
		return "New civilization"
	default:
		return "Unknown"
	}
}

// PostCivilizationStageTable and ASIFilterStageTable are the two
// discrete probability tables the civilization generator rolls against
// once a planet reaches PhaseSteamAge (spec §4.6). They are carried
// here, next to the phase enum they drive, rather than recomputed —
// the values are load-bearing constants, not tunable configuration.
var (
	PostCivilizationStageTable = [7]float64{0.02, 5e-3, 1e-4, 1e-6, 5e-7, 4e-7, 1e-6}
	ASIFilterStageTable        = [7]float64{0.2, 0.05, 1e-3, 1e-5, 1e-4, 1e-4, 1e-4}
)

// Civilization is the optional payload attached to a Planet once the
// life-occurrence Bernoulli trial succeeds for it.
type Civilization struct {
	Phase    CivilizationPhase
	Progress float64 // zero below Steam age; otherwise the stage-table bucket (0-7) plus a fractional within-phase progression

	LifeOccurred        bool
	DestroyedByDisaster bool
	AsiFilterTriggered  bool
}
