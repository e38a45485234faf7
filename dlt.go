package triangulation

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// dltWFloor is the minimum acceptable magnitude of the homogeneous
// solution's fourth component; below it the dehomogenized point is
// considered numerically undefined.
const dltWFloor = 1e-9

// TriangulateBearingsDLT triangulates a scene point observed by N ≥ 2
// calibrated cameras using the Direct Linear Transform: it stacks two
// cross-product constraints per view into a (2N)x4 matrix A, solves
// A*[X;1] = 0 in the least-squares sense as the right singular vector of
// A's smallest singular value, and dehomogenizes.
//
// poses[i] and bearings[i] must correspond to the same observation;
// bearings are expressed in camera i's local frame. The result is
// accepted only if parallax, positive depth, and reprojection error all
// pass their gates, checked in that order.
func TriangulateBearingsDLT(poses []Pose, bearings []r3.Vector, tau, minParallax, minDepth float64) Result {
	requireEqualLen("poses", len(poses), "bearings", len(bearings))
	n := len(poses)
	requireAtLeastTwoViews(n)

	a := mat.NewDense(2*n, 4, nil)
	for i, pose := range poses {
		b := bearings[i].Normalize()
		rows := poseRows(pose)
		row0 := scaleAdd(rows[2], b.Y, rows[1], -b.Z)
		row1 := scaleAdd(rows[0], b.Z, rows[2], -b.X)
		a.SetRow(2*i, row0)
		a.SetRow(2*i+1, row1)
	}

	v, _, _, ok := smallestRightSingularVector(a)
	if !ok {
		return Result{Accepted: false}
	}
	w := v[3]
	if math.Abs(w) < dltWFloor {
		return Result{Accepted: false}
	}
	x := r3.Vector{X: v[0] / w, Y: v[1] / w, Z: v[2] / w}

	worldBearings := make([]r3.Vector, n)
	for i, pose := range poses {
		worldBearings[i] = matTVecMul(pose.R, bearings[i].Normalize())
	}
	if !sufficientParallax(worldBearings, minParallax) {
		return Result{Accepted: false}
	}

	for _, pose := range poses {
		local := pose.ToLocal(x)
		if local.Z < minDepth {
			return Result{Accepted: false}
		}
	}

	for i, pose := range poses {
		local := pose.ToLocal(x)
		if reprojectionResidual(bearings[i].Normalize(), local) > tau {
			return Result{Accepted: false}
		}
	}

	return Result{Accepted: true, Point: x}
}

// poseRows returns the 4-entry rows of the pose's [R | T] matrix.
func poseRows(p Pose) [3][4]float64 {
	var rows [3][4]float64
	for r := 0; r < 3; r++ {
		rows[r][0] = p.R.At(r, 0)
		rows[r][1] = p.R.At(r, 1)
		rows[r][2] = p.R.At(r, 2)
	}
	rows[0][3] = p.T.X
	rows[1][3] = p.T.Y
	rows[2][3] = p.T.Z
	return rows
}

// scaleAdd computes a*sa + b*sb for two 4-entry rows.
func scaleAdd(a [4]float64, sa float64, b [4]float64, sb float64) []float64 {
	out := make([]float64, 4)
	for i := range out {
		out[i] = a[i]*sa + b[i]*sb
	}
	return out
}
