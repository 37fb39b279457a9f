package coordinate

import (
	"testing"

	metrics "github.com/armon/go-metrics"
	"github.com/stretchr/testify/assert"
)

// fakeSink is a minimal obsmetrics.Sink double: it just records every call
// so tests can assert on what this package reports, without depending on
// armon/go-metrics's own global sink state.
type fakeSink struct {
	samples []sample
	counts  []sample
}

type sample struct {
	key []string
	val float32
}

func (f *fakeSink) AddSampleWithLabels(key []string, val float32, _ []metrics.Label) {
	f.samples = append(f.samples, sample{key, val})
}

func (f *fakeSink) IncrCounterWithLabels(key []string, val float32, _ []metrics.Label) {
	f.counts = append(f.counts, sample{key, val})
}

func TestUpdate_EmitsRelativeErrorSample(t *testing.T) {
	cfg := testConfig(1.0e-5)
	sink := &fakeSink{}
	cfg.Metrics = sink
	a := New(cfg)
	b := New(cfg)
	b.Vec = []float64{0.05, 0, 0}

	a.Update(b, 0.1, 0, 0)

	if assert.Len(t, sink.samples, 1) {
		assert.Equal(t, []string{"coordinate", "relative-error"}, sink.samples[0].key)
	}
}

func TestApplyForce_EmitsCoincidentCounterOnFallback(t *testing.T) {
	cfg := testConfig(1.0e-5)
	sink := &fakeSink{}
	cfg.Metrics = sink
	a := New(cfg)
	b := New(cfg) // same vector/height as a: coincident.

	a.applyForce(b, 1.0)

	if assert.Len(t, sink.counts, 1) {
		assert.Equal(t, []string{"coordinate", "coincident-update"}, sink.counts[0].key)
	}
}

func TestApplyForce_NoCounterWhenSeparated(t *testing.T) {
	cfg := testConfig(1.0e-5)
	sink := &fakeSink{}
	cfg.Metrics = sink
	a := New(cfg)
	b := New(cfg)
	b.Vec = []float64{1, 0, 0}

	a.applyForce(b, 1.0)

	assert.Empty(t, sink.counts)
}
