package triangulation

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// epipolarNormalFloor is the minimum norm of the epipolar plane normal
// below which the entry is defined as 0 (bearing collinear with the
// baseline, or zero baseline).
const epipolarNormalFloor = 1e-12

// EpipolarAngleTwoBearingsMany returns an NxM matrix whose (i, j) entry is
// the epipolar angular residual between b1[i] (camera 1's local frame)
// and b2[j] (camera 2's local frame), given the relative pose mapping
// camera 2 into camera 1 (R, t). For matched correspondences produced by
// the true relative pose, entry (i, i) approaches 0.
func EpipolarAngleTwoBearingsMany(b1, b2 []r3.Vector, r *mat.Dense, t r3.Vector) *mat.Dense {
	n, m := len(b1), len(b2)
	out := mat.NewDense(n, m, nil)

	b2World := make([]r3.Vector, m)
	for j, b := range b2 {
		b2World[j] = matVecMul(r, b.Normalize())
	}

	for j, bw := range b2World {
		normal := t.Cross(bw)
		norm := normal.Norm()
		var nhat r3.Vector
		degenerate := norm < epipolarNormalFloor
		if !degenerate {
			nhat = normal.Mul(1 / norm)
		}
		for i, b := range b1 {
			if degenerate {
				out.Set(i, j, 0)
				continue
			}
			cos := clamp(b.Normalize().Dot(nhat), -1, 1)
			out.Set(i, j, math.Abs(math.Asin(cos)))
		}
	}
	return out
}
