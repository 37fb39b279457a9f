package node

import (
	"math"
	"math/rand"
	"testing"

	metrics "github.com/armon/go-metrics"
	"github.com/bitbckt/vivaldi/coordinate"
	"github.com/stretchr/testify/assert"
)

// fakeSink records every call so tests can assert on Node's telemetry
// without depending on armon/go-metrics's own global sink state.
type fakeSink struct {
	samples []struct {
		key []string
		val float32
	}
}

func (f *fakeSink) AddSampleWithLabels(key []string, val float32, _ []metrics.Label) {
	f.samples = append(f.samples, struct {
		key []string
		val float32
	}{key, val})
}

func (f *fakeSink) IncrCounterWithLabels(key []string, val float32, _ []metrics.Label) {}

func testConfig(window int) *Config {
	return &Config{
		Coordinate: &coordinate.Config{
			Dimensionality: 4,
			MaxError:       1.5,
			MinHeight:      1.0e-5,
			CE:             0.25,
			CC:             0.25,
			Rho:            150.0,
			Rand:           rand.New(rand.NewSource(1)),
		},
		Window: window,
	}
}

func TestNew_AllocatesSamplesOnlyWhenWindowed(t *testing.T) {
	n0 := New(testConfig(0))
	assert.Nil(t, n0.Samples)

	n1 := New(testConfig(5))
	assert.Len(t, n1.Samples, 5)
}

func TestDistance_WithoutAdjustmentMatchesCoordinate(t *testing.T) {
	a := New(testConfig(0))
	b := New(testConfig(0))
	b.Coordinate().Vec[0] = 0.05

	assert.Equal(t, a.Coordinate().Distance(b.Coordinate()), a.Distance(b))
}

func TestDistance_WithAdjustmentNeverShrinksBelowRaw(t *testing.T) {
	a := New(testConfig(4))
	b := New(testConfig(4))
	b.Coordinate().Vec[0] = 0.05
	a.Adjustment = -10 // pathological: adjustments should never make the
	b.Adjustment = -10 // reported distance smaller than the raw estimate.

	raw := a.Coordinate().Distance(b.Coordinate())
	assert.GreaterOrEqual(t, a.Distance(b), raw)
}

func TestUpdate_AdjustmentTracksResidual(t *testing.T) {
	window := 8
	a := New(testConfig(window))
	b := New(testConfig(window))
	b.Coordinate().Vec[0] = 0.05

	// Feed a constant RTT well above the instantaneous Euclidean estimate.
	// With a 0.25 learning rate the coordinate hasn't fully closed the gap
	// after exactly one window's worth of updates, so the residual ring
	// (and hence Adjustment) should still read positive.
	const rtt = 0.2
	for i := 0; i < window; i++ {
		a.Update(b, rtt)
	}

	assert.Greater(t, a.Adjustment, 0.0)
	assert.False(t, math.IsNaN(a.Adjustment) || math.IsInf(a.Adjustment, 0))
}

func TestUpdate_DisabledWindowSkipsAdjustment(t *testing.T) {
	a := New(testConfig(0))
	b := New(testConfig(0))
	b.Coordinate().Vec[0] = 0.05

	a.Update(b, 0.1)
	assert.Zero(t, a.Adjustment)
	assert.Nil(t, a.Samples)
}

func TestUpdate_EmitsAdjustmentSampleWhenWindowed(t *testing.T) {
	cfg := testConfig(4)
	sink := &fakeSink{}
	cfg.Metrics = sink
	a := New(cfg)
	b := New(cfg)
	b.Coordinate().Vec[0] = 0.05

	a.Update(b, 0.1)

	if assert.Len(t, sink.samples, 1) {
		assert.Equal(t, []string{"coordinate", "adjustment-ms"}, sink.samples[0].key)
	}
}

func TestUpdate_SampleRingWraps(t *testing.T) {
	window := 3
	a := New(testConfig(window))
	b := New(testConfig(window))
	b.Coordinate().Vec[0] = 0.05

	for i := 0; i < window*3; i++ {
		a.Update(b, 0.1)
		assert.Less(t, a.Index, window)
	}
}
