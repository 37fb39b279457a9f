package coordinate

import "errors"

// Configuration validation errors, the programming-error class: a caller
// that trips one of these has misconfigured the package, not hit a runtime
// condition. Collected by Config.validate and reported together via
// go-multierror.
var (
	errDimensionality = errors.New("coordinate: Dimensionality must be > 0")
	errCE             = errors.New("coordinate: CE must be in [0, 1)")
	errCC             = errors.New("coordinate: CC must be in [0, 1)")
	errRho            = errors.New("coordinate: Rho must be finite and > 0")
	errMaxError       = errors.New("coordinate: MaxError must be finite and > 0")
	errMinHeight      = errors.New("coordinate: MinHeight must be finite and >= 0")

	// ErrDimensionalityConflict is panicked when an operation mixes
	// coordinates built with different Dimensionality, grounded on the
	// teacher's coordinate.go error of the same name.
	ErrDimensionalityConflict = errors.New("coordinate: dimensionality does not match")
)

// zeroThreshold is epsilon, the smallest-magnitude value this package
// treats as distinguishable from zero. Guards against division by zero in
// the RTT clamp and decides when two points are "coincident" for the
// random-direction fallback. Same name and value as the teacher's
// zeroThreshold const in coordinate.go/client.go.
const zeroThreshold = 1.0e-6
