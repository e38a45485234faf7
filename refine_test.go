package triangulation

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestPointRefinement_ConvergesFromNearbyEstimate(t *testing.T) {
	centers := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}
	gt := r3.Vector{X: 0, Y: 0, Z: 1}
	bearings := bearingsFromCenters(centers, gt)

	initial := gt.Add(r3.Vector{X: 0.1, Y: 0.2, Z: 0.3})
	refined := PointRefinement(centers, bearings, initial, 10)

	test.That(t, R3VectorAlmostEqual(refined, gt, 1e-6), test.ShouldBeTrue)
}

func TestPointRefinement_FiveCamsConverges(t *testing.T) {
	const numCameras = 5
	centers := make([]r3.Vector, numCameras)
	for i := range centers {
		centers[i] = r3.Vector{X: 0.5 * float64(i) / numCameras, Y: 0.1 * float64(i) / numCameras, Z: 0}
	}
	gt := r3.Vector{X: 0, Y: 0, Z: 1}
	bearings := bearingsFromCenters(centers, gt)

	initial := gt.Add(r3.Vector{X: -0.2, Y: 0.15, Z: 0.05})
	refined := PointRefinement(centers, bearings, initial, 25)

	test.That(t, R3VectorAlmostEqual(refined, gt, 1e-6), test.ShouldBeTrue)
}

func TestPointRefinement_PanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if rec := recover(); rec == nil {
			t.Fatal("expected panic on mismatched input lengths")
		}
	}()
	centers := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}
	PointRefinement(centers, []r3.Vector{{X: 0, Y: 0, Z: 1}}, r3.Vector{}, 5)
}
