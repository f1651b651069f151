package tracks

import (
	"math"
	"testing"
)

func gridTrack() *Track {
	t := &Track{FeH: 0}
	masses := []float64{0.5, 1.0, 1.5}
	ages := []float64{9.0, 9.5, 10.0}
	for _, m := range masses {
		for _, a := range ages {
			t.Points = append(t.Points, Point{
				InitialMass: m,
				LogAge:      a,
				Mass:        m,
				LogL:        m * a,
				LogTeff:     3.7,
				LogR:        0.1 * m,
				Phase:       Phase(1),
			})
		}
	}
	t.build()
	return t
}

func TestInterpolateExactGridPoint(t *testing.T) {
	track := gridTrack()
	got := track.Interpolate(1.0, 9.5)
	if got.Missed {
		t.Fatal("exact grid point should not be reported missed")
	}
	if math.Abs(got.LogL-9.5) > 1e-9 {
		t.Errorf("LogL = %v, want 9.5", got.LogL)
	}
}

func TestInterpolateMidpointIsAveraged(t *testing.T) {
	track := gridTrack()
	got := track.Interpolate(0.75, 9.0)
	want := (0.5*9.0 + 1.0*9.0) / 2
	if math.Abs(got.LogL-want) > 1e-9 {
		t.Errorf("LogL = %v, want %v", got.LogL, want)
	}
}

func TestInterpolateClampsOutsideGrid(t *testing.T) {
	track := gridTrack()
	got := track.Interpolate(100, 20)
	if got.Missed {
		t.Fatal("out-of-range query should clamp, not miss")
	}
	edge := track.Interpolate(1.5, 10.0)
	if math.Abs(got.LogL-edge.LogL) > 1e-9 {
		t.Errorf("clamped interpolation = %v, want edge value %v", got.LogL, edge.LogL)
	}
}

func TestInterpolateMissedOnEmptyTrack(t *testing.T) {
	empty := &Track{}
	empty.build()
	got := empty.Interpolate(1.0, 9.0)
	if !got.Missed {
		t.Error("expected an empty track to report Missed")
	}
}

func TestNearestPicksClosestFeH(t *testing.T) {
	table := &Table{Tracks: []*Track{
		{FeH: -0.5},
		{FeH: 0.0},
		{FeH: 0.3},
	}}
	got := table.Nearest(0.1)
	if got.FeH != 0.0 {
		t.Errorf("Nearest(0.1).FeH = %v, want 0.0", got.FeH)
	}
}

func TestParseFeHFromFilename(t *testing.T) {
	cases := map[string]struct {
		want float64
		ok   bool
	}{
		"feh_0.00.csv":  {0.0, true},
		"feh_-0.25.csv": {-0.25, true},
		"README.csv":    {0, false},
		"notes.txt":     {0, false},
	}
	for name, want := range cases {
		got, ok := parseFeHFromFilename(name)
		if ok != want.ok {
			t.Errorf("parseFeHFromFilename(%q) ok = %v, want %v", name, ok, want.ok)
			continue
		}
		if ok && math.Abs(got-want.want) > 1e-9 {
			t.Errorf("parseFeHFromFilename(%q) = %v, want %v", name, got, want.want)
		}
	}
}
