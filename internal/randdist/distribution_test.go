package randdist

import "testing"

func TestEngineDeterminism(t *testing.T) {
	e1 := NewEngine(42, 1)
	e2 := NewEngine(42, 1)

	for i := 0; i < 100; i++ {
		a := e1.Float64()
		b := e2.Float64()
		if a != b {
			t.Fatalf("draw %d diverged: %v != %v", i, a, b)
		}
	}
}

func TestEngineDifferentSeedsDiverge(t *testing.T) {
	e1 := NewEngine(1)
	e2 := NewEngine(2)

	same := true
	for i := 0; i < 10; i++ {
		if e1.Float64() != e2.Float64() {
			same = false
			break
		}
	}
	if same {
		t.Error("expected different seed sequences to diverge")
	}
}

func TestDeriveIsDeterministicAndDistinctPerSalt(t *testing.T) {
	base := []uint64{7, 11}

	a1 := Derive(base, "primary_star")
	a2 := Derive(base, "primary_star")
	b := Derive(base, "secondary_star")

	ea1 := NewEngine(a1...)
	ea2 := NewEngine(a2...)
	eb := NewEngine(b...)

	first := ea1.Float64()
	if first != ea2.Float64() {
		t.Error("same salt should derive identical seed sequences")
	}
	if first == eb.Float64() {
		// Extremely unlikely collision; if it happens the derivation is broken.
		t.Error("distinct salts produced identical first draws; re-check Derive")
	}
}

func TestUniformBounds(t *testing.T) {
	e := NewEngine(1, 2, 3)
	d := Uniform{Min: 2, Max: 5}
	for i := 0; i < 1000; i++ {
		v := d.Draw(e)
		if v < 2 || v >= 5 {
			t.Fatalf("Uniform draw out of bounds: %v", v)
		}
	}
}

func TestUniformIntInclusive(t *testing.T) {
	e := NewEngine(9)
	d := UniformInt{Min: 1, Max: 3}
	seen := map[int64]bool{}
	for i := 0; i < 500; i++ {
		v := d.DrawInt(e)
		if v < 1 || v > 3 {
			t.Fatalf("UniformInt draw out of bounds: %v", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all 3 values to appear over 500 draws, saw %v", seen)
	}
}

func TestBernoulliRespectsProbabilityExtremes(t *testing.T) {
	e := NewEngine(5)
	always := Bernoulli{P: 1}
	never := Bernoulli{P: 0}
	for i := 0; i < 50; i++ {
		if !always.Trial(e) {
			t.Fatal("P=1 Bernoulli should always succeed")
		}
		if never.Trial(e) {
			t.Fatal("P=0 Bernoulli should never succeed")
		}
	}
}

func TestTruncatedNormalStaysInBounds(t *testing.T) {
	e := NewEngine(3)
	d := TruncatedNormal{Mean: 5e9, Sigma: 1e9, Min: 1e9, Max: 1.3e10}
	for i := 0; i < 1000; i++ {
		v := d.Draw(e)
		if v < d.Min || v > d.Max {
			t.Fatalf("TruncatedNormal draw out of bounds: %v", v)
		}
	}
}

func TestBetaStaysInUnitInterval(t *testing.T) {
	e := NewEngine(4)
	d := Beta{Alpha: 2, Beta: 5}
	for i := 0; i < 1000; i++ {
		v := d.Draw(e)
		if v < 0 || v > 1 {
			t.Fatalf("Beta draw out of [0,1]: %v", v)
		}
	}
}

func TestLogNormalIsPositive(t *testing.T) {
	e := NewEngine(6)
	d := LogNormal{LogMean: 0.7, LogSigma: 2.28}
	for i := 0; i < 1000; i++ {
		v := d.Draw(e)
		if v <= 0 {
			t.Fatalf("LogNormal draw must be positive, got %v", v)
		}
	}
}

func TestHalfNormalIsNonNegative(t *testing.T) {
	e := NewEngine(8)
	d := HalfNormal{Sigma: 2}
	for i := 0; i < 1000; i++ {
		if v := d.Draw(e); v < 0 {
			t.Fatalf("HalfNormal draw must be non-negative, got %v", v)
		}
	}
}

func TestPoissonZeroMeanAlwaysZero(t *testing.T) {
	e := NewEngine(10)
	d := Poisson{Mean: 0}
	for i := 0; i < 50; i++ {
		if v := d.DrawInt(e); v != 0 {
			t.Fatalf("Poisson{Mean: 0} should always draw 0, got %v", v)
		}
	}
}

func TestPoissonMeanTracksAverage(t *testing.T) {
	e := NewEngine(11)
	d := Poisson{Mean: 3.0}
	var total int64
	const n = 5000
	for i := 0; i < n; i++ {
		total += d.DrawInt(e)
	}
	avg := float64(total) / n
	if avg < 2.5 || avg > 3.5 {
		t.Errorf("sample average %v too far from mean 3.0", avg)
	}
}
