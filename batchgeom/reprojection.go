// Package batchgeom provides batch-level diagnostics on top of the
// canonical triangulation operations: per-row reprojection residuals in
// image-plane (pixel-like) units, and acceptance-rate summaries logged
// through the module's structured logger. It performs no triangulation
// of its own — it is a reporting layer for callers running triangulation
// over many correspondences who want telemetry beyond a bare accepted
// flag.
package batchgeom

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/sfm-core/triangulation"
	"github.com/sfm-core/triangulation/internal/logging"
)

// ProjectToImagePlane projects a camera-local-frame point onto the unit
// focal-length pinhole image plane (x/z, y/z), the same convention used
// for reprojection-error checks inside the core triangulators.
func ProjectToImagePlane(local r3.Vector) (r2.Point, bool) {
	if math.Abs(local.Z) < 1e-12 {
		return r2.Point{}, false
	}
	return r2.Point{X: local.X / local.Z, Y: local.Y / local.Z}, true
}

// PixelResiduals reports, for each accepted two-view result, the
// image-plane distance in camera 1 between the originally observed
// bearing's projection and the reprojection of the reconstructed point.
// Rejected rows report math.NaN.
func PixelResiduals(results []triangulation.Result, observed []r3.Vector) []float64 {
	out := make([]float64, len(results))
	for i, res := range results {
		if !res.Accepted {
			out[i] = math.NaN()
			continue
		}
		obsPixel, obsOK := ProjectToImagePlane(observed[i])
		predPixel, predOK := ProjectToImagePlane(res.Point)
		if !obsOK || !predOK {
			out[i] = math.NaN()
			continue
		}
		out[i] = obsPixel.Sub(predPixel).Norm()
	}
	return out
}

// ReprojectionResidualMatrix reports, for every (i, j) pair, the angular
// epipolar residual computed by triangulation.EpipolarAngleTwoBearingsMany,
// alongside the diagonal-vs-off-diagonal separation margin: the smallest
// off-diagonal entry minus the largest diagonal entry. A positive margin
// means the matched-pair diagonal is unambiguously the best-scoring
// correspondence for every row.
func ReprojectionResidualMatrix(b1, b2 []r3.Vector, r *mat.Dense, t r3.Vector) (matrix *mat.Dense, margin float64) {
	matrix = triangulation.EpipolarAngleTwoBearingsMany(b1, b2, r, t)
	n, m := matrix.Dims()
	maxDiag := math.Inf(-1)
	minOffDiag := math.Inf(1)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			v := matrix.At(i, j)
			if i == j {
				maxDiag = math.Max(maxDiag, v)
			} else {
				minOffDiag = math.Min(minOffDiag, v)
			}
		}
	}
	return matrix, minOffDiag - maxDiag
}

// SummarizeAcceptance logs the acceptance rate of a batch of triangulation
// results under the given stage name, one of the rare places in this
// module that performs I/O: the canonical operations stay pure per their
// contract, so batch-level telemetry lives here instead.
func SummarizeAcceptance(logger logging.Logger, stage string, results []triangulation.Result) {
	accepted := 0
	for _, r := range results {
		if r.Accepted {
			accepted++
		}
	}
	logger.Infow("triangulation batch summary",
		"stage", stage,
		"total", len(results),
		"accepted", accepted,
		"rejected", len(results)-accepted,
	)
}
