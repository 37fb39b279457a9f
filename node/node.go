package node

import (
	"context"
	"log/slog"
	"math"

	"github.com/bitbckt/vivaldi/coordinate"
)

// Node wraps a coordinate.Coordinate with an optional hybrid adjustment
// term. Node, like Coordinate, is a plain caller-owned value with no
// internal locking: concurrent calls on the same Node are a programming
// error, concurrent calls on distinct Nodes are fine.
type Node struct {
	coord *coordinate.Coordinate
	cfg   *Config

	Adjustment float64
	Samples    []float64
	Index      int
}

// New returns a Node with a fresh origin Coordinate and, if cfg.Window > 0,
// a zeroed adjustment sample ring.
func New(cfg *Config) *Node {
	resolved := cfg.withDefaults()
	n := &Node{
		coord: coordinate.New(resolved.Coordinate),
		cfg:   resolved,
	}
	if resolved.Window > 0 {
		n.Samples = make([]float64, resolved.Window)
	}
	return n
}

// Coordinate returns the embedded Coordinate.
func (n *Node) Coordinate() *coordinate.Coordinate { return n.coord }

// Distance returns the estimated RTT to other. When the hybrid adjustment
// is enabled, the raw Euclidean-plus-height distance is inflated, never
// shrunk, by the sum of both nodes' adjustments.
func (n *Node) Distance(other *Node) float64 {
	d := n.coord.Distance(other.coord)
	if n.cfg.Window == 0 {
		return d
	}
	return math.Max(d, d+n.Adjustment+other.Adjustment)
}

// Update feeds an observed RTT to other into both the embedded Coordinate
// and, if enabled, the adjustment window.
func (n *Node) Update(other *Node, rtt float64) {
	n.coord.Update(other.coord, rtt, n.Adjustment, other.Adjustment)

	if n.cfg.Window == 0 {
		return
	}

	d := n.coord.Distance(other.coord)
	n.Samples[n.Index] = rtt - d
	n.Index = (n.Index + 1) % len(n.Samples)

	sum := 0.0
	for _, s := range n.Samples {
		sum += s
	}
	n.Adjustment = sum / (2.0 * float64(len(n.Samples)))

	n.cfg.Logger.LogAttrs(context.Background(), slog.LevelDebug, "node adjustment",
		slog.Float64("rtt", rtt), slog.Float64("distance", d),
		slog.Float64("adjustment", n.Adjustment))
	if n.cfg.Metrics != nil {
		n.cfg.Metrics.AddSampleWithLabels([]string{"coordinate", "adjustment-ms"}, float32(n.Adjustment*1.0e3), nil)
	}
}
