// Package simulate builds synthetic network topologies and drives
// node.Node through observed-RTT cycles against them, for use by this
// package's end-to-end convergence tests. It has no exported
// surface consumed outside tests: these generators are a test harness for
// this module, not something an embedding application is meant to import.
//
// Grounded on the teacher's coordinate/phantom.go, generalized from
// *coordinate.Client to *node.Node and from the package-global
// math/rand.Seed to an explicitly passed *rand.Rand, so simulation runs
// are reproducible without mutating shared global state.
package simulate

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/bitbckt/vivaldi/node"
)

// GenerateNodes returns count Nodes, all built from cfg.
func GenerateNodes(count int, cfg *node.Config) []*node.Node {
	nodes := make([]*node.Node, count)
	for i := range nodes {
		nodes[i] = node.New(cfg)
	}
	return nodes
}

// GenerateLine returns a truth matrix as if all the nodes sit on a line
// with the given spacing between consecutive nodes.
func GenerateLine(count int, spacing time.Duration) [][]time.Duration {
	truth := newMatrix(count)
	for i := 0; i < count; i++ {
		for j := i + 1; j < count; j++ {
			rtt := time.Duration(j-i) * spacing
			truth[i][j], truth[j][i] = rtt, rtt
		}
	}
	return truth
}

// GenerateGrid returns a truth matrix as if the nodes sit on a square 2D
// grid with the given spacing between adjacent cells.
func GenerateGrid(count int, spacing time.Duration) [][]time.Duration {
	truth := newMatrix(count)
	n := int(math.Sqrt(float64(count)))
	for i := 0; i < count; i++ {
		for j := i + 1; j < count; j++ {
			x1, y1 := float64(i%n), float64(i/n)
			x2, y2 := float64(j%n), float64(j/n)
			dx, dy := x2-x1, y2-y1
			dist := math.Sqrt(dx*dx + dy*dy)
			rtt := time.Duration(dist * float64(spacing))
			truth[i][j], truth[j][i] = rtt, rtt
		}
	}
	return truth
}

// GenerateSplit returns a truth matrix as if half the nodes are clustered
// together behind a lan link and half behind another, joined by a slower
// wan link.
func GenerateSplit(count int, lan, wan time.Duration) [][]time.Duration {
	truth := newMatrix(count)
	split := count / 2
	for i := 0; i < count; i++ {
		for j := i + 1; j < count; j++ {
			rtt := lan
			if (i <= split && j > split) || (i > split && j <= split) {
				rtt += wan
			}
			truth[i][j], truth[j][i] = rtt, rtt
		}
	}
	return truth
}

// GenerateRandom returns a truth matrix with RTTs drawn from rng, centered
// on mean with the given deviation and floored at zero.
func GenerateRandom(count int, mean, deviation time.Duration, rng *rand.Rand) [][]time.Duration {
	truth := newMatrix(count)
	for i := 0; i < count; i++ {
		for j := i + 1; j < count; j++ {
			rtt := time.Duration(rng.NormFloat64()*float64(deviation)) + mean
			if rtt < 0 {
				rtt = 0
			}
			truth[i][j], truth[j][i] = rtt, rtt
		}
	}
	return truth
}

// GenerateCircle returns a truth matrix with nodes 1..count-1 spaced
// evenly around a circle of the given radius, and node 0 at the center.
// Node 0 is exactly radius away from every other node in the plane, but
// truth adds a second radius on top of that to model a node sitting
// behind a uniformly slow extra hop. A pure 2D embedding can only
// capture the planar radius, so the residual has to land in Height.
func GenerateCircle(count int, radius time.Duration) [][]time.Duration {
	truth := newMatrix(count)
	if count < 2 {
		return truth
	}

	ring := count - 1
	for i := 1; i < count; i++ {
		truth[0][i] = 2 * radius
		truth[i][0] = 2 * radius
	}
	for i := 1; i < count; i++ {
		for j := i + 1; j < count; j++ {
			theta := 2 * math.Pi * float64(j-i) / float64(ring)
			chord := 2 * float64(radius) * math.Abs(math.Sin(theta/2))
			rtt := time.Duration(chord)
			truth[i][j], truth[j][i] = rtt, rtt
		}
	}
	return truth
}

// CycleFunc is called once per cycle of Simulate, letting a test sample
// the population's convergence mid-run.
type CycleFunc func(cycle int, nodes []*node.Node, truth [][]time.Duration)

// Observe converts the truth RTT between i and j into the value actually
// fed to nodes[i].Update(nodes[j], ...) for one cycle. The default is
// truth[i][j].Seconds(); tests pass one backed by a latency.Filter to
// exercise the median-smoothing path an end-to-end caller should run
// ahead of every update.
type Observe func(i, j int, rtt time.Duration) float64

// Simulate runs cycles rounds using nodes and truth. Each round, every
// node picks a random peer via rng and observes the truth RTT to it,
// filtered through observe (pass nil for the raw RTT in seconds). rng
// drives only peer selection here; each Node's own coordinate.Source
// (configured on its node.Config) drives the force-direction fallback
// internally.
func Simulate(rng *rand.Rand, nodes []*node.Node, truth [][]time.Duration, cycles int, observe Observe, callback CycleFunc) {
	if observe == nil {
		observe = func(i, j int, rtt time.Duration) float64 { return rtt.Seconds() }
	}
	count := len(nodes)
	for cycle := 0; cycle < cycles; cycle++ {
		if callback != nil {
			callback(cycle, nodes, truth)
		}
		for i := range nodes {
			j := rng.Intn(count)
			if j == i {
				continue
			}
			nodes[i].Update(nodes[j], observe(i, j, truth[i][j]))
		}
	}
}

// Stats summarizes how well a population's estimated distances track a
// truth matrix.
type Stats struct {
	ErrorMax float64
	ErrorAvg float64
}

// Evaluate computes the relative error between every pair's estimated
// Distance and its truth RTT.
func Evaluate(nodes []*node.Node, truth [][]time.Duration) Stats {
	var stats Stats
	count := len(nodes)
	samples := 0
	for i := 0; i < count; i++ {
		for j := i + 1; j < count; j++ {
			est := nodes[i].Distance(nodes[j])
			actual := truth[i][j].Seconds()
			if actual == 0 {
				continue
			}
			relErr := math.Abs(est-actual) / actual
			stats.ErrorMax = math.Max(stats.ErrorMax, relErr)
			stats.ErrorAvg += relErr
			samples++
		}
	}
	if samples > 0 {
		stats.ErrorAvg /= float64(samples)
	}
	return stats
}

func (s Stats) String() string {
	return fmt.Sprintf("avg=%9.6f max=%9.6f", s.ErrorAvg, s.ErrorMax)
}

func newMatrix(count int) [][]time.Duration {
	m := make([][]time.Duration, count)
	for i := range m {
		m[i] = make([]time.Duration, count)
	}
	return m
}
