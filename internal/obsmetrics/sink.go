// Package obsmetrics adapts github.com/armon/go-metrics behind a small
// interface so the estimator itself never touches the package-level
// metrics.* functions directly. That keeps coordinate/node usable as a
// pure library: no global sink is registered unless the embedding
// application installs one and a caller passes it in through Config.
package obsmetrics

import metrics "github.com/armon/go-metrics"

// Sink is the subset of armon/go-metrics's capabilities this module
// exercises: AddSampleWithLabels for the relative-error and adjustment-ms
// samples, IncrCounterWithLabels for the coincident-update counter.
type Sink interface {
	AddSampleWithLabels(key []string, val float32, labels []metrics.Label)
	IncrCounterWithLabels(key []string, val float32, labels []metrics.Label)
}

// Global adapts the armon/go-metrics package-level functions (which are
// themselves backed by a process-wide, lock-protected default sink) to the
// Sink interface, for callers that want this library's telemetry folded
// into whatever global sink they've already configured.
type Global struct{}

func (Global) AddSampleWithLabels(key []string, val float32, labels []metrics.Label) {
	metrics.AddSampleWithLabels(key, val, labels)
}

func (Global) IncrCounterWithLabels(key []string, val float32, labels []metrics.Label) {
	metrics.IncrCounterWithLabels(key, val, labels)
}
