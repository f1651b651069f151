package astro

import "testing"

func TestObjectTypeString(t *testing.T) {
	cases := map[ObjectType]string{
		ObjectBaryCenter:      "BaryCenter",
		ObjectStar:            "Star",
		ObjectPlanet:          "Planet",
		ObjectAsteroidCluster: "AsteroidCluster",
		ObjectArtifactCluster: "ArtifactCluster",
		ObjectType(99):        "Unknown",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", int(typ), got, want)
		}
	}
}

func TestCivilizationPhaseStringCoversAllStages(t *testing.T) {
	for phase := PhaseNoCivilization; phase <= PhaseNewCivilization; phase++ {
		if got := phase.String(); got == "Unknown" {
			t.Errorf("phase %d has no String() mapping", int(phase))
		}
	}
}

func TestPostCivilizationTablesAreProbabilities(t *testing.T) {
	for i, p := range PostCivilizationStageTable {
		if p < 0 || p > 1 {
			t.Errorf("PostCivilizationStageTable[%d] = %v, not a probability", i, p)
		}
	}
	for i, p := range ASIFilterStageTable {
		if p < 0 || p > 1 {
			t.Errorf("ASIFilterStageTable[%d] = %v, not a probability", i, p)
		}
	}
}
