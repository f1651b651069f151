package randdist

import "math"

// Distribution is the closed sum type's common interface: every variant
// exposes a single Draw operation against a shared Engine.
type Distribution interface {
	Draw(e *Engine) float64
}

// Uniform draws a real value uniformly from [Min, Max).
type Uniform struct {
	Min, Max float64
}

// Draw implements Distribution.
func (d Uniform) Draw(e *Engine) float64 {
	return d.Min + e.Float64()*(d.Max-d.Min)
}

// UniformInt draws an integer uniformly from [Min, Max].
type UniformInt struct {
	Min, Max int64
}

// Draw implements Distribution, returning the integer draw as a float64
// so UniformInt satisfies the same interface as the continuous variants;
// call DrawInt for the integer value directly.
func (d UniformInt) Draw(e *Engine) float64 {
	return float64(d.DrawInt(e))
}

// DrawInt draws the integer value directly.
func (d UniformInt) DrawInt(e *Engine) int64 {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + e.Int63n(d.Max-d.Min+1)
}

// Normal draws from a Gaussian with the given mean and standard deviation.
type Normal struct {
	Mean, Sigma float64
}

// Draw implements Distribution.
func (d Normal) Draw(e *Engine) float64 {
	return d.Mean + e.NormFloat64()*d.Sigma
}

// TruncatedNormal draws from a Gaussian, re-drawing until the result
// falls within [Min, Max]. Used for star age, which spec §4.4 samples
// from "a truncated Gaussian around 5e9 yr".
type TruncatedNormal struct {
	Mean, Sigma float64
	Min, Max    float64
}

// Draw implements Distribution.
func (d TruncatedNormal) Draw(e *Engine) float64 {
	for i := 0; i < 64; i++ {
		v := d.Mean + e.NormFloat64()*d.Sigma
		if v >= d.Min && v <= d.Max {
			return v
		}
	}
	// Fall back to a clamp rather than looping forever against a
	// pathological (Min, Max) configuration.
	return clamp(d.Mean, d.Min, d.Max)
}

// LogNormal draws from a lognormal distribution parameterized by the
// mean and sigma of the underlying normal in log-space, matching the
// source's std::lognormal_distribution(Mean, Sigma) convention (NOT the
// mean/variance of the resulting distribution itself).
type LogNormal struct {
	LogMean, LogSigma float64
}

// Draw implements Distribution.
func (d LogNormal) Draw(e *Engine) float64 {
	return math.Exp(d.LogMean + e.NormFloat64()*d.LogSigma)
}

// Bernoulli draws 1.0 with probability P, else 0.0.
type Bernoulli struct {
	P float64
}

// Draw implements Distribution.
func (d Bernoulli) Draw(e *Engine) float64 {
	if d.Trial(e) {
		return 1
	}
	return 0
}

// Trial returns the boolean outcome directly, which is how every call
// site actually consumes a Bernoulli draw.
func (d Bernoulli) Trial(e *Engine) bool {
	return e.Float64() < d.P
}

// Beta draws from a Beta(Alpha, Beta) distribution via two independent
// Gamma draws (Alpha, Beta integral or not), used for orbital
// eccentricity sampling per spec §4.5.6 ("eccentricity from Beta(2, 5)
// for planets").
type Beta struct {
	Alpha, Beta float64
}

// Draw implements Distribution.
func (d Beta) Draw(e *Engine) float64 {
	x := drawGamma(e, d.Alpha)
	y := drawGamma(e, d.Beta)
	if x+y == 0 {
		return 0
	}
	return x / (x + y)
}

// drawGamma draws from Gamma(shape, 1) using the Marsaglia-Tsang method,
// which only needs normal and uniform draws — the two raw primitives
// Engine already exposes — rather than a third distribution type.
func drawGamma(e *Engine, shape float64) float64 {
	if shape < 1 {
		u := e.Float64()
		return drawGamma(e, shape+1) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		var x, v float64
		for {
			x = e.NormFloat64()
			v = 1 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := e.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// HalfNormal draws the absolute value of a zero-mean Gaussian, used for
// orbital inclination sampling (spec §4.5.6: "half-normal σ ≈ 2°").
type HalfNormal struct {
	Sigma float64
}

// Draw implements Distribution.
func (d HalfNormal) Draw(e *Engine) float64 {
	return math.Abs(e.NormFloat64() * d.Sigma)
}

// Poisson draws a non-negative integer count from a Poisson
// distribution with the given mean, used for moon-count sampling per
// spec §4.5.5 ("assign moon count from a Poisson with mean scaled by
// mass and distance"). Draw returns the count as a float64 for
// interface uniformity; DrawInt returns it directly.
type Poisson struct {
	Mean float64
}

// Draw implements Distribution.
func (d Poisson) Draw(e *Engine) float64 {
	return float64(d.DrawInt(e))
}

// DrawInt draws the count directly via Knuth's algorithm: correct and
// simple for the small means (a handful of moons) this generator ever
// asks for; a means-scales-better method (e.g. Devroye's) is not worth
// the extra complexity here.
func (d Poisson) DrawInt(e *Engine) int64 {
	if d.Mean <= 0 {
		return 0
	}
	l := math.Exp(-d.Mean)
	k := int64(0)
	p := 1.0
	for {
		k++
		p *= e.Float64()
		if p <= l {
			return k - 1
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
