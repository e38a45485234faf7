package triangulation

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// twoRayDegenerateFloor is the minimum |1 - (b1·b2)²| below which the
// two-ray closest-approach system is considered singular (near-parallel
// bearings after the relative rotation is applied).
const twoRayDegenerateFloor = 1e-12

// TriangulateTwoBearingsMidpointMany triangulates many point
// correspondences sharing a single relative pose in one pass. b1 and b2
// are bearings in camera 1's and camera 2's local frames respectively,
// row-aligned by correspondence index; R and t map camera 2 into camera
// 1's frame (a point X2 in frame 2 satisfies X1 = R*X2 + t). The result
// for each row is the closed-form two-ray midpoint in frame 1,
// accepted only when both rays have positive depth.
//
// This is a tight inner loop: no SVD, no heap allocation, per point.
// Reprojection error and parallax are not gated here; callers compose
// with EpipolarAngleTwoBearingsMany when that check is needed.
func TriangulateTwoBearingsMidpointMany(b1, b2 []r3.Vector, r *mat.Dense, t r3.Vector) []Result {
	requireEqualLen("b1", len(b1), "b2", len(b2))
	n := len(b1)
	results := make([]Result, n)
	for i := 0; i < n; i++ {
		results[i] = triangulateTwoBearingsMidpoint(b1[i], b2[i], r, t)
	}
	return results
}

func triangulateTwoBearingsMidpoint(b1, b2 r3.Vector, r *mat.Dense, t r3.Vector) Result {
	bb1 := b1.Normalize()
	// Rotate inline: matVecMul builds gonum vectors and would allocate.
	n2 := b2.Normalize()
	bb2 := r3.Vector{
		X: r.At(0, 0)*n2.X + r.At(0, 1)*n2.Y + r.At(0, 2)*n2.Z,
		Y: r.At(1, 0)*n2.X + r.At(1, 1)*n2.Y + r.At(1, 2)*n2.Z,
		Z: r.At(2, 0)*n2.X + r.At(2, 1)*n2.Y + r.At(2, 2)*n2.Z,
	}

	c := bb1.Dot(bb2)
	det := 1 - c*c
	if math.Abs(det) < twoRayDegenerateFloor {
		return Result{Accepted: false}
	}

	b1d := bb1.Dot(t)
	b2d := bb2.Dot(t)
	s := (b1d - c*b2d) / det
	rr := (c*b1d - b2d) / det

	if s <= 0 || rr <= 0 {
		return Result{Accepted: false}
	}

	point1 := bb1.Mul(s)
	point2 := t.Add(bb2.Mul(rr))
	mid := point1.Add(point2).Mul(0.5)
	return Result{Accepted: true, Point: mid}
}
