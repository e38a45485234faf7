// Command triangulate-demo runs the triangulation core's DLT and midpoint
// triangulators, and point refinement when the midpoint result is
// accepted, over a small synthetic scene and logs the results. It does
// not run the two-view batched midpoint or the epipolar angle matrix. It is a thin
// external collaborator, not part of the library contract: it owns
// config parsing and CLI ergonomics the way rdk's small cmd/ binaries do,
// while the triangulation package itself stays pure.
package main

import (
	"encoding/json"
	"flag"
	"math"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/sfm-core/triangulation"
	"github.com/sfm-core/triangulation/internal/logging"
	"github.com/sfm-core/triangulation/scene"
)

// sceneConfig is the JSON shape read from -scene.
type sceneConfig struct {
	Centers     [][3]float64 `json:"centers"`
	GroundTruth [3]float64   `json:"ground_truth"`
}

func vec(a [3]float64) r3.Vector {
	return r3.Vector{X: a[0], Y: a[1], Z: a[2]}
}

func loadScene(path string) (scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return scene.Scene{}, errors.Wrap(err, "opening scene file")
	}
	defer f.Close()

	var cfg sceneConfig
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return scene.Scene{}, errors.Wrap(err, "decoding scene file")
	}
	if len(cfg.Centers) < 2 {
		return scene.Scene{}, errors.New("scene file must list at least 2 camera centers")
	}

	centers := make([]r3.Vector, len(cfg.Centers))
	for i, c := range cfg.Centers {
		centers[i] = vec(c)
	}
	return scene.Generate(centers, vec(cfg.GroundTruth)), nil
}

func main() {
	scenePath := flag.String("scene", "", "path to a JSON scene file ({\"centers\": [[x,y,z],...], \"ground_truth\": [x,y,z]})")
	tau := flag.Float64("tau", 0.01, "reprojection threshold (1-cos convention)")
	minParallaxDeg := flag.Float64("min-parallax-deg", 2.0, "minimum parallax angle in degrees")
	minDepth := flag.Float64("min-depth", 1e-6, "minimum positive depth")
	flag.Parse()

	logger := logging.New("triangulate-demo")
	if *scenePath == "" {
		logger.Errorw("missing required flag", "flag", "-scene")
		os.Exit(2)
	}

	sc, err := loadScene(*scenePath)
	if err != nil {
		logger.Errorw("failed to load scene", "error", err)
		os.Exit(1)
	}

	minParallax := *minParallaxDeg * math.Pi / 180
	gate := triangulation.GateParams{MinParallax: minParallax, MinDepth: *minDepth}

	dltResult := triangulation.TriangulateBearingsDLT(sc.Poses, sc.Bearings, *tau, gate.MinParallax, gate.MinDepth)
	logger.Infow("dlt triangulation", "accepted", dltResult.Accepted, "point", dltResult.Point)

	thresholds := make([]float64, len(sc.Centers))
	for i := range thresholds {
		thresholds[i] = *tau
	}
	midResult := triangulation.TriangulateBearingsMidpoint(sc.Centers, sc.Bearings, thresholds, gate.MinParallax, gate.MinDepth)
	logger.Infow("midpoint triangulation", "accepted", midResult.Accepted, "point", midResult.Point)

	if midResult.Accepted {
		initial := midResult.Point.Add(r3.Vector{X: 0.1, Y: 0.2, Z: 0.3})
		refined := triangulation.PointRefinement(sc.Centers, sc.Bearings, initial, 10)
		logger.Infow("point refinement", "point", refined)
	}
}
