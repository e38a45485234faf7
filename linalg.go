package triangulation

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// singularValueFloor is the absolute conditioning threshold below which a
// singular value is treated as numerically zero.
const singularValueFloor = 1e-12

// matVecMul applies a 3x3 matrix to a 3-vector.
func matVecMul(m *mat.Dense, v r3.Vector) r3.Vector {
	out := mat.NewVecDense(3, nil)
	out.MulVec(m, mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return r3.Vector{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// matTVecMul applies the transpose of a 3x3 matrix to a 3-vector.
func matTVecMul(m *mat.Dense, v r3.Vector) r3.Vector {
	return matVecMul(transpose3(m), v)
}

// transpose3 returns the transpose of a square matrix as a new Dense.
func transpose3(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(c, r, nil)
	out.CloneFrom(m.T())
	return out
}

// outer3 returns the outer product v*vᵀ of a 3-vector with itself.
func outer3(v r3.Vector) *mat.Dense {
	out := mat.NewDense(3, 3, nil)
	out.Outer(1, mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}), mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return out
}

// identity3 returns a fresh 3x3 identity matrix.
func identity3() *mat.Dense {
	out := mat.NewDense(3, 3, nil)
	out.Set(0, 0, 1)
	out.Set(1, 1, 1)
	out.Set(2, 2, 1)
	return out
}

// rayProjector returns I - B*Bᵀ, the projector onto the plane orthogonal
// to the unit bearing B. Applied to a vector, it extracts the component
// perpendicular to the ray direction B.
func rayProjector(b r3.Vector) *mat.Dense {
	proj := identity3()
	proj.Sub(proj, outer3(b))
	return proj
}

// smallestRightSingularVector performs a thin SVD of A and returns its
// smallest-singular-value right singular vector along with the smallest
// and second-smallest singular values (for conditioning checks).
func smallestRightSingularVector(a *mat.Dense) (v []float64, sigmaMin, sigmaNext float64, ok bool) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, 0, 0, false
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return nil, 0, 0, false
	}
	var vMat mat.Dense
	svd.VTo(&vMat)
	last := len(values) - 1
	col := make([]float64, vMat.RawMatrix().Rows)
	for i := range col {
		col[i] = vMat.At(i, last)
	}
	sigmaMin = values[last]
	sigmaNext = sigmaMin
	if last > 0 {
		sigmaNext = values[last-1]
	}
	return col, sigmaMin, sigmaNext, true
}

// solveSymmetric3 solves the 3x3 system M*X = v for a symmetric,
// positive-semidefinite M via SVD, rejecting when M is too close to
// singular to invert stably.
func solveSymmetric3(m *mat.Dense, v r3.Vector) (r3.Vector, bool) {
	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDThin) {
		return r3.Vector{}, false
	}
	values := svd.Values(nil)
	sigmaMax := values[0]
	sigmaMin := values[len(values)-1]
	if sigmaMin < singularValueFloor || sigmaMin < 1e-9*sigmaMax {
		return r3.Vector{}, false
	}

	var u, vMat mat.Dense
	svd.UTo(&u)
	svd.VTo(&vMat)

	vVec := mat.NewVecDense(3, []float64{v.X, v.Y, v.Z})
	var utv mat.VecDense
	utv.MulVec(u.T(), vVec)
	for i, s := range values {
		utv.SetVec(i, utv.AtVec(i)/s)
	}
	var x mat.VecDense
	x.MulVec(&vMat, &utv)
	return r3.Vector{X: x.AtVec(0), Y: x.AtVec(1), Z: x.AtVec(2)}, true
}

// clamp restricts x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
