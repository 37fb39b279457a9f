// Package coordinate implements a single peer's network coordinate in a
// Vivaldi-style embedding: a point in a height-augmented Euclidean space
// whose distance to another such point estimates the round-trip time
// between them. See:
//
//	Dabek, Frank, et al. "Vivaldi: A decentralized network coordinate
//	system." ACM SIGCOMM Computer Communication Review 34.4 (2004).
//	Ledlie, Jonathan, Paul Gardner, and Margo I. Seltzer. "Network
//	Coordinates in the Wild." NSDI. Vol. 7. 2007.
//
// Package coordinate is a passive estimator: callers observe RTTs
// externally (ping, application-level timing, whatever) and feed them in
// through Update. Nothing here opens a socket, schedules a timer, or
// persists anything.
package coordinate

import (
	"log/slog"
	"math"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/bitbckt/vivaldi/internal/obslog"
	"github.com/bitbckt/vivaldi/internal/obsmetrics"
)

// Config carries the tuning parameters of the Vivaldi algorithm. All
// float64 values are in seconds unless otherwise noted. Go has no const
// generics over floats, so these live in a value-held configuration record
// rather than as compile-time parameters; Dimensionality is still meant
// to be fixed for the lifetime of a Coordinate.
type Config struct {
	// Dimensionality is the dimension of the Euclidean component, d in
	// R^d x R+. Must be > 0. 8 is a common choice: Ledlie et al. found
	// no noticeable improvement past 7 dimensions.
	Dimensionality int

	// MaxError caps the Err estimate and seeds its initial value.
	MaxError float64

	// MinHeight floors the Height field and seeds its initial value.
	// Must be >= 0.
	MinHeight float64

	// CE is the learning rate of the error estimate. Must be in [0, 1).
	CE float64

	// CC is the learning rate of coordinate motion. Must be in [0, 1).
	CC float64

	// Rho is the gravitational constant pulling every coordinate gently
	// toward the origin, preventing the whole cloud from translating.
	// Must be finite and > 0.
	Rho float64

	// Rand supplies uniform samples for the coincident-coordinate
	// fallback in the force-direction computation. Nil uses a
	// concurrency-safe package default.
	Rand Source

	// Logger receives one debug record per Update call when non-nil.
	// Nil (the default) discards everything.
	Logger *slog.Logger

	// Metrics receives the relative-error sample and coincident-update
	// counter telemetry when non-nil. Nil
	// disables it entirely. This package never touches a global
	// metrics sink on its own.
	Metrics obsmetrics.Sink
}

// DefaultConfig returns a Config with the values from the Vivaldi and
// Ledlie papers, suitable for general testing but not tuned to any
// particular deployment.
func DefaultConfig() *Config {
	return &Config{
		Dimensionality: 8,
		MaxError:       1.5,
		MinHeight:      1.0e-5,
		CE:             0.25,
		CC:             0.25,
		Rho:            150.0,
	}
}

// validate checks the programming-error class of invariants and aggregates
// every violation into a single error so a caller who misconfigures several
// fields at once sees all of them.
func (c *Config) validate() error {
	var result *multierror.Error

	if c.Dimensionality <= 0 {
		result = multierror.Append(result, errDimensionality)
	}
	if !(c.CE >= 0 && c.CE < 1) {
		result = multierror.Append(result, errCE)
	}
	if !(c.CC >= 0 && c.CC < 1) {
		result = multierror.Append(result, errCC)
	}
	if math.IsNaN(c.Rho) || math.IsInf(c.Rho, 0) || c.Rho <= 0 {
		result = multierror.Append(result, errRho)
	}
	if math.IsNaN(c.MaxError) || math.IsInf(c.MaxError, 0) || c.MaxError <= 0 {
		result = multierror.Append(result, errMaxError)
	}
	if math.IsNaN(c.MinHeight) || math.IsInf(c.MinHeight, 0) || c.MinHeight < 0 {
		result = multierror.Append(result, errMinHeight)
	}

	return result.ErrorOrNil()
}

// withDefaults returns a copy of c with a nil Logger replaced by a
// discarding logger, so the rest of the package never has to nil-check
// Logger. Rand and Metrics are left as given.
func (c *Config) withDefaults() *Config {
	cfg := *c
	if cfg.Logger == nil {
		cfg.Logger = obslog.Discard()
	}
	return &cfg
}
