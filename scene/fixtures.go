// Package scene generates synthetic multi-camera observations of a known
// 3D point, for exercising the triangulation package's acceptance gates
// and exactness properties. It generalizes the camera-generation and
// noise-injection helpers used by the reference test fixtures
// (generate_triangulation_data, generateRts, generateNoisyBearings) into
// a reusable, parametrized API instead of bespoke per-test setup.
package scene

import (
	"math/rand"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/sfm-core/triangulation"
)

// Scene is a synthetic multi-view observation of a single ground-truth
// point: one camera center, local-frame bearing, and pose per view.
type Scene struct {
	GroundTruth r3.Vector
	Centers     []r3.Vector
	Bearings    []r3.Vector // camera-local frame, unit
	Poses       []triangulation.Pose
}

// Generate builds a Scene for a set of camera centers all observing
// groundTruth, assuming identity camera orientations (the convention used
// by the reference fixtures: Rt_i = [I | -center_i]). Bearings are the
// exact unit directions from each center to groundTruth.
func Generate(centers []r3.Vector, groundTruth r3.Vector) Scene {
	bearings := make([]r3.Vector, len(centers))
	poses := make([]triangulation.Pose, len(centers))
	for i, c := range centers {
		bearings[i] = groundTruth.Sub(c).Normalize()
		poses[i] = identityPoseAt(c)
	}
	return Scene{
		GroundTruth: groundTruth,
		Centers:     centers,
		Bearings:    bearings,
		Poses:       poses,
	}
}

// identityPoseAt returns the pose [I | -center] for a camera with
// identity orientation located at center.
func identityPoseAt(center r3.Vector) triangulation.Pose {
	r := mat.NewDense(3, 3, nil)
	r.Set(0, 0, 1)
	r.Set(1, 1, 1)
	r.Set(2, 2, 1)
	return triangulation.NewPose(r, center.Mul(-1))
}

// AddNoise perturbs each bearing by independent uniform noise of
// magnitude up to maxNoise per axis, renormalizing afterward, matching
// the reference fixtures' noise model.
func AddNoise(rng *rand.Rand, bearings []r3.Vector, maxNoise float64) []r3.Vector {
	noisy := make([]r3.Vector, len(bearings))
	for i, b := range bearings {
		n := r3.Vector{
			X: maxNoise * (2*rng.Float64() - 1),
			Y: maxNoise * (2*rng.Float64() - 1),
			Z: maxNoise * (2*rng.Float64() - 1),
		}
		noisy[i] = b.Add(n).Normalize()
	}
	return noisy
}

// LinearCenters returns num camera centers spaced along a short,
// two-axis baseline: centers[i] = (spacingX*i, spacingY*i, 0). This is
// the layout used by the reference "five cameras on a short baseline"
// fixture when spacingX=0.5/num and spacingY=0.1/num.
func LinearCenters(num int, spacingX, spacingY float64) []r3.Vector {
	centers := make([]r3.Vector, num)
	for i := range centers {
		centers[i] = r3.Vector{X: spacingX * float64(i), Y: spacingY * float64(i), Z: 0}
	}
	return centers
}
