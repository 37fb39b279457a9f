package coordinate

import "math"

// Grounded on hashicorp/serf's coordinate.go vector helpers (add/diff/mul/
// magnitude), kept as free functions operating on plain []float64 rather
// than methods, since they're only ever used as scratch arithmetic inside
// Coordinate.Update and its helpers.

func add(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

func diff(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		out[i] = a[i] - b[i]
	}
	return out
}

func mul(v []float64, factor float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] * factor
	}
	return out
}

// magnitude computes the Euclidean norm of v. Defined only for
// len(v) >= 1, which Config.validate already guarantees.
func magnitude(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// unitVectorAt returns a unit vector pointing from src toward dest, along
// with the true distance between them, falling back to a random direction
// (and finally a fixed one) when the two points coincide.
func unitVectorAt(dest, src []float64, rng Source) (u []float64, m float64) {
	u = diff(dest, src)
	if mag := magnitude(u); mag > zeroThreshold {
		return mul(u, 1.0/mag), mag
	}

	for i := range u {
		u[i] = rng.Float64() - 0.5
	}
	if mag := magnitude(u); mag > zeroThreshold {
		return mul(u, 1.0/mag), 0.0
	}

	for i := range u {
		if i == 0 {
			u[i] = 1.0
		} else {
			u[i] = 0.0
		}
	}
	return u, 0.0
}
