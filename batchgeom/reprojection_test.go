package batchgeom

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"go.viam.com/test"

	"github.com/sfm-core/triangulation"
	"github.com/sfm-core/triangulation/internal/logging"
)

func rotY(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(3, 3, []float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	})
}

func twoPointScene() (b1, b2 []r3.Vector, r *mat.Dense, t r3.Vector, gtPoints []r3.Vector) {
	gtPoints = []r3.Vector{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 2, Z: 3}}
	r = rotY(0.1)
	t = r3.Vector{X: -1, Y: 2, Z: 0.2}

	b1 = make([]r3.Vector, len(gtPoints))
	b2 = make([]r3.Vector, len(gtPoints))
	for i, gt := range gtPoints {
		b1[i] = gt.Normalize()
		inFrame2 := matTMulVec(r, gt.Sub(t))
		b2[i] = inFrame2.Normalize()
	}
	return b1, b2, r, t, gtPoints
}

// matTMulVec applies rᵀ to v; only used to build this test's fixture.
func matTMulVec(r *mat.Dense, v r3.Vector) r3.Vector {
	var rt mat.Dense
	rt.CloneFrom(r.T())
	vec := mat.NewVecDense(3, []float64{v.X, v.Y, v.Z})
	var out mat.VecDense
	out.MulVec(&rt, vec)
	return r3.Vector{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

func TestReprojectionResidualMatrixMargin(t *testing.T) {
	b1, b2, r, tr, _ := twoPointScene()
	matrix, margin := ReprojectionResidualMatrix(b1, b2, r, tr)

	n, m := matrix.Dims()
	test.That(t, n, test.ShouldEqual, 2)
	test.That(t, m, test.ShouldEqual, 2)
	test.That(t, matrix.At(0, 0), test.ShouldBeLessThan, 1e-6)
	test.That(t, matrix.At(1, 1), test.ShouldBeLessThan, 1e-6)
	test.That(t, matrix.At(0, 1), test.ShouldBeGreaterThan, 1e-6)
	test.That(t, margin, test.ShouldBeGreaterThan, 0)
}

func TestPixelResidualsSkipsRejected(t *testing.T) {
	results := []triangulation.Result{
		{Accepted: true, Point: r3.Vector{X: 0, Y: 0, Z: 1}},
		{Accepted: false},
	}
	observed := []r3.Vector{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}}
	residuals := PixelResiduals(results, observed)

	test.That(t, residuals[0], test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, math.IsNaN(residuals[1]), test.ShouldBeTrue)
}

func TestSummarizeAcceptanceDoesNotPanic(t *testing.T) {
	logger := logging.NewTest(t)
	results := []triangulation.Result{{Accepted: true}, {Accepted: false}}
	SummarizeAcceptance(logger, "unit-test", results)
}
