// Package triangulation recovers the world-space location of a scene point
// observed by two or more calibrated cameras. It implements the five
// triangulation primitives of a structure-from-motion pipeline: a Direct
// Linear Transform solver, a midpoint solver, a batched two-view midpoint
// solver, a batched epipolar-angle evaluator, and an iterative point
// refinement routine.
//
// Every exported function is a pure function of its inputs: no I/O, no
// mutable package state, and no retries. Geometric and numerical failures
// are reported through a boolean acceptance flag rather than an error;
// mismatched input lengths are programming errors and panic.
package triangulation

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Pose is a world-to-camera rigid transform [R | T]: for a world point X,
// R*X + T gives X expressed in the camera's local frame. R must be a
// proper rotation (orthonormal, det = +1); the camera center is
// recoverable as -Rᵀ*T.
type Pose struct {
	R *mat.Dense // 3x3 rotation
	T r3.Vector
}

// NewPose builds a Pose from a 3x3 rotation matrix and a translation.
func NewPose(rot *mat.Dense, t r3.Vector) Pose {
	return Pose{R: rot, T: t}
}

// Center returns the camera's optical center in world coordinates, -Rᵀ*T.
func (p Pose) Center() r3.Vector {
	return matTVecMul(p.R, p.T).Mul(-1)
}

// ToLocal maps a world point into this camera's local frame: R*X + T.
func (p Pose) ToLocal(x r3.Vector) r3.Vector {
	return matVecMul(p.R, x).Add(p.T)
}

// Result is the outcome of a triangulation attempt. When Accepted is
// false, Point is unspecified and callers must not consume it.
type Result struct {
	Accepted bool
	Point    r3.Vector
}

// GateParams bundles the geometric acceptance thresholds shared by the
// N-view triangulators: MinParallax is a minimum required parallax angle
// in radians; MinDepth is the minimum acceptable signed depth along a
// viewing ray (negative disables the positive-depth constraint).
type GateParams struct {
	MinParallax float64
	MinDepth    float64
}

func requireEqualLen(name1 string, n1 int, name2 string, n2 int) {
	if n1 != n2 {
		panic(errors.Errorf("triangulation: %s has length %d but %s has length %d", name1, n1, name2, n2))
	}
}

func requireAtLeastTwoViews(n int) {
	if n < 2 {
		panic(errors.Errorf("triangulation: need at least 2 views, got %d", n))
	}
}

// broadcastThresholds expands a single-element threshold slice to n
// entries, or returns thresholds unchanged if it already has n entries.
func broadcastThresholds(thresholds []float64, n int) []float64 {
	if len(thresholds) == n {
		return thresholds
	}
	if len(thresholds) == 1 {
		out := make([]float64, n)
		for i := range out {
			out[i] = thresholds[0]
		}
		return out
	}
	panic(errors.Errorf("triangulation: thresholds has length %d, want 1 or %d", len(thresholds), n))
}
