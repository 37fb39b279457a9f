package coordinate

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// Coordinate is a point in a height-augmented Euclidean space: a Vec in
// R^Dimensionality plus a Height and an Err confidence estimate. The
// distance between two coordinates approximates an observed round-trip time.
//
// Vec, Height and Err are exported, matching the teacher's own
// Coordinate; only the config reference is private. Tests need direct
// access to Vec/Height, and there's no
// encapsulation to protect since the struct carries no invariant a caller
// can't already trivially break by hand.
type Coordinate struct {
	Vec    []float64
	Height float64
	Err    float64

	cfg *Config
}

// New returns a Coordinate at the origin, configured per cfg. Panics if
// cfg fails validation. That is a programming error, not a runtime
// condition a caller should have to check for.
func New(cfg *Config) *Coordinate {
	if err := cfg.validate(); err != nil {
		panic(err)
	}
	resolved := cfg.withDefaults()

	return &Coordinate{
		Vec:    make([]float64, resolved.Dimensionality),
		Height: resolved.MinHeight,
		Err:    resolved.MaxError,
		cfg:    resolved,
	}
}

// Clone returns an independent copy of c.
func (c *Coordinate) Clone() *Coordinate {
	vec := make([]float64, len(c.Vec))
	copy(vec, c.Vec)
	return &Coordinate{Vec: vec, Height: c.Height, Err: c.Err, cfg: c.cfg}
}

// Vector returns a copy of the Euclidean component.
func (c *Coordinate) Vector() []float64 {
	out := make([]float64, len(c.Vec))
	copy(out, c.Vec)
	return out
}

// HeightValue returns the height component.
func (c *Coordinate) HeightValue() float64 { return c.Height }

// ErrorValue returns the current error estimate.
func (c *Coordinate) ErrorValue() float64 { return c.Err }

// Distance returns the estimated RTT between c and other: the Euclidean
// distance between their vectors plus both heights.
func (c *Coordinate) Distance(other *Coordinate) float64 {
	if len(c.Vec) != len(other.Vec) {
		panic(ErrDimensionalityConflict)
	}
	return magnitude(diff(c.Vec, other.Vec)) + c.Height + other.Height
}

// Update mutates c toward rtt, the observed round-trip time to other, via
// the Vivaldi spring-relaxation step plus a gravitational pull toward the
// origin. localAdj and remoteAdj are the hybrid-offset adjustments from
// node.Node; callers not using the hybrid embedding pass zero for both.
//
// rtt must be finite: a NaN or infinite RTT is a programming error in the
// caller, not a condition this method can recover from silently, so it
// panics rather than quietly corrupting the coordinate.
func (c *Coordinate) Update(other *Coordinate, rtt, localAdj, remoteAdj float64) {
	if math.IsNaN(rtt) || math.IsInf(rtt, 0) {
		panic(fmt.Sprintf("coordinate: Update called with non-finite rtt %v", rtt))
	}

	d := c.Distance(other)
	d = math.Max(d, d+localAdj+remoteAdj)

	rttp := math.Max(rtt, zeroThreshold)

	relErr := math.Abs(d-rttp) / rttp

	totalErr := math.Max(c.Err+other.Err, zeroThreshold)
	weight := c.Err / totalErr

	c.Err = math.Min(relErr*c.cfg.CE*weight+c.Err*(1-c.cfg.CE*weight), c.cfg.MaxError)

	force := c.cfg.CC * weight * (rttp - d)
	c.applyForce(other, force)

	// The gravity origin is the default-constructed coordinate, built
	// fresh on the stack here rather than cached as process-wide mutable
	// state.
	origin := &Coordinate{
		Vec:    make([]float64, c.cfg.Dimensionality),
		Height: c.cfg.MinHeight,
		Err:    c.cfg.MaxError,
		cfg:    c.cfg,
	}
	g := c.Distance(origin)
	g = math.Max(g, g+localAdj)
	c.applyForce(origin, -(g/c.cfg.Rho)*(g/c.cfg.Rho))

	c.checkFinite()

	c.cfg.Logger.LogAttrs(context.Background(), slog.LevelDebug, "coordinate update",
		slog.Float64("rtt", rtt), slog.Float64("distance", d),
		slog.Float64("relative_error", relErr), slog.Float64("weight", weight),
		slog.Float64("force", force))
	if c.cfg.Metrics != nil {
		c.cfg.Metrics.AddSampleWithLabels([]string{"coordinate", "relative-error"}, float32(relErr), nil)
	}
}

// applyForce nudges c's Vec away from (or toward, for negative force)
// other, and adjusts Height in proportion to the same force.
func (c *Coordinate) applyForce(other *Coordinate, force float64) {
	u, m := unitVectorAt(c.Vec, other.Vec, sourceOrDefault(c.cfg.Rand))
	c.Vec = add(c.Vec, mul(u, force))

	if m > zeroThreshold {
		c.Height = math.Max((c.Height+other.Height)*force/m+c.Height, c.cfg.MinHeight)
	} else if c.cfg.Metrics != nil {
		// The two points coincided closely enough to need the
		// random-direction fallback. Rare in practice. Worth tracking
		// if it happens often, since it usually means a population
		// started from, or collapsed back to, the origin.
		c.cfg.Metrics.IncrCounterWithLabels([]string{"coordinate", "coincident-update"}, 1, nil)
	}
}

// checkFinite asserts that every mutable field stays finite. A NaN or
// infinite field indicates corruption upstream and halts rather than
// propagating.
func (c *Coordinate) checkFinite() {
	for i, x := range c.Vec {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			panic(fmt.Sprintf("coordinate: Vec[%d] became non-finite: %v", i, x))
		}
	}
	if math.IsNaN(c.Height) || math.IsInf(c.Height, 0) {
		panic(fmt.Sprintf("coordinate: Height became non-finite: %v", c.Height))
	}
	if math.IsNaN(c.Err) || math.IsInf(c.Err, 0) {
		panic(fmt.Sprintf("coordinate: Err became non-finite: %v", c.Err))
	}
}
