package triangulation

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// TriangulateBearingsMidpoint triangulates a scene point observed by N ≥ 2
// cameras given as centers and world-frame unit bearings, by finding the
// least-squares closest point to the bundle of rays (c_i, bearings[i]).
// This minimizes Σ‖(I - B_iB_iᵀ)(X - c_i)‖², a 3x3 linear system solved
// via SVD; ill-conditioned systems (near-coincident centers with no
// parallax) are rejected.
//
// thresholds is either a single value broadcast to every view or one
// value per view. The result is accepted only if parallax, positive
// depth, and reprojection error all pass their gates, checked in that
// order.
func TriangulateBearingsMidpoint(centers, bearingsWorld []r3.Vector, thresholds []float64, minParallax, minDepth float64) Result {
	requireEqualLen("centers", len(centers), "bearingsWorld", len(bearingsWorld))
	n := len(centers)
	requireAtLeastTwoViews(n)
	taus := broadcastThresholds(thresholds, n)

	bearings := make([]r3.Vector, n)
	for i, b := range bearingsWorld {
		bearings[i] = b.Normalize()
	}

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}
	m, v := weightedMidpointSystem(centers, bearings, weights)
	x, ok := solveSymmetric3(m, v)
	if !ok {
		return Result{Accepted: false}
	}

	if !sufficientParallax(bearings, minParallax) {
		return Result{Accepted: false}
	}

	for i := range centers {
		depth := x.Sub(centers[i]).Dot(bearings[i])
		if depth < minDepth {
			return Result{Accepted: false}
		}
	}

	for i := range centers {
		if reprojectionResidual(bearings[i], x.Sub(centers[i])) > taus[i] {
			return Result{Accepted: false}
		}
	}

	return Result{Accepted: true, Point: x}
}

// weightedMidpointSystem builds the normal-equations system M*X = v for
// the weighted least-squares closest point to the ray bundle
// (centers[i], bearings[i]), with M = Σ w_i(I - B_iB_iᵀ) and
// v = Σ w_i(I - B_iB_iᵀ)*centers[i]. It is shared between the plain
// midpoint solver (uniform weights) and the iteratively reweighted point
// refinement routine.
func weightedMidpointSystem(centers, bearings []r3.Vector, weights []float64) (m *mat.Dense, v r3.Vector) {
	m = mat.NewDense(3, 3, nil)
	for i, b := range bearings {
		proj := rayProjector(b)
		var scaled mat.Dense
		scaled.Scale(weights[i], proj)
		m.Add(m, &scaled)
		v = v.Add(matVecMul(proj, centers[i]).Mul(weights[i]))
	}
	return m, v
}
