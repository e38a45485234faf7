package triangulation

import (
	"math"

	"github.com/golang/geo/r3"
)

// sufficientParallax reports whether at least one pair of world-frame
// bearings subtends an angle of at least minParallax radians. It
// short-circuits on the first qualifying pair, matching the "streaming
// maximum so far" strategy described for the core's parallax gate.
func sufficientParallax(worldBearings []r3.Vector, minParallax float64) bool {
	for i := 0; i < len(worldBearings); i++ {
		for j := i + 1; j < len(worldBearings); j++ {
			cos := clamp(worldBearings[i].Dot(worldBearings[j]), -1, 1)
			if math.Acos(cos) >= minParallax {
				return true
			}
		}
	}
	return false
}

// reprojectionResidual is the core's fixed convention for angular
// reprojection error: 1 - cos(angle between the observed and predicted
// unit directions). A threshold τ bounds this quantity directly, so the
// same τ means the same thing for every triangulator in this package.
func reprojectionResidual(observed, predicted r3.Vector) float64 {
	n := predicted.Norm()
	if n < singularValueFloor {
		// The predicted direction is undefined (the point coincides with
		// the camera center). The depth gate is responsible for rejecting
		// this configuration when positive depth is required; reprojection
		// stays vacuously satisfied rather than double-penalizing it.
		return 0
	}
	return 1 - observed.Dot(predicted.Mul(1/n))
}
