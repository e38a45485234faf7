package triangulation

import "github.com/golang/geo/r3"

// R3VectorAlmostEqual reports whether a and b differ by no more than
// epsilon in Euclidean norm, mirroring the tolerance-based vector
// comparison helpers used throughout this module's test suite.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return a.Sub(b).Norm() <= epsilon
}
