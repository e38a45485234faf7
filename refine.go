package triangulation

import "github.com/golang/geo/r3"

// refinementWeightFloor clamps iteratively-reweighted-least-squares
// residuals from below (capping each weight at 1/refinementWeightFloor),
// preventing the weight from exploding as a residual approaches zero.
const refinementWeightFloor = 1e-12

// refinementConvergenceTol is the step-size tolerance below which
// PointRefinement stops early.
const refinementConvergenceTol = 1e-14

// PointRefinement iteratively refines an initial point estimate X0 given
// N camera centers and world-frame bearings, by iteratively reweighted
// least squares: each iteration reweights an observation by the inverse
// of its current residual and re-solves the midpoint linear system of
// TriangulateBearingsMidpoint with those weights. It terminates after
// maxIters iterations or earlier once the step size falls below a
// convergence tolerance.
//
// Unlike the triangulators, this always returns a point; it applies no
// acceptance gate and the caller owns validation of the result.
func PointRefinement(centers, bearingsWorld []r3.Vector, x0 r3.Vector, maxIters int) r3.Vector {
	requireEqualLen("centers", len(centers), "bearingsWorld", len(bearingsWorld))
	n := len(centers)
	requireAtLeastTwoViews(n)

	bearings := make([]r3.Vector, n)
	for i, b := range bearingsWorld {
		bearings[i] = b.Normalize()
	}

	x := x0
	for iter := 0; iter < maxIters; iter++ {
		weights := make([]float64, n)
		for i, b := range bearings {
			residual := matVecMul(rayProjector(b), x.Sub(centers[i])).Norm()
			if residual < refinementWeightFloor {
				residual = refinementWeightFloor
			}
			weights[i] = 1 / residual
		}

		m, v := weightedMidpointSystem(centers, bearings, weights)
		next, ok := solveSymmetric3(m, v)
		if !ok {
			break
		}
		step := next.Sub(x).Norm()
		x = next
		if step < refinementConvergenceTol {
			break
		}
	}
	return x
}
