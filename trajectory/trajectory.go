// Package trajectory holds raw pose trajectories, validates their shape and converts them into
// SE(3) transforms.
package trajectory

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/samber/lo"

	"go.viam.com/trajeval/spatialmath"
)

// PoseFields is the number of values in a pose row: x y z qx qy qz qw.
const PoseFields = 7

// Trajectory is an ordered sequence of poses, one row per frame. Row order is time order.
type Trajectory [][]float64

// Len returns the number of poses.
func (traj Trajectory) Len() int {
	return len(traj)
}

// Validate checks that every row holds exactly PoseFields finite numbers. name identifies the
// trajectory in the returned error.
func (traj Trajectory) Validate(name string) error {
	for i, row := range traj {
		if len(row) != PoseFields {
			return NewFieldCountError(name, i, len(row))
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return NewInvalidPoseError(name, i, errNonFinite)
			}
		}
	}
	return nil
}

// Positions returns the translation part of every pose. The trajectory must be valid.
func (traj Trajectory) Positions() []r3.Vector {
	return lo.Map(traj, func(row []float64, _ int) r3.Vector {
		return r3.Vector{X: row[0], Y: row[1], Z: row[2]}
	})
}

// ToTransforms converts every pose into a homogeneous transform, preserving order. A row with
// the wrong number of fields or an unusable quaternion fails with an ErrFormat error.
func (traj Trajectory) ToTransforms(name string) ([]spatialmath.Transform, error) {
	out := make([]spatialmath.Transform, len(traj))
	for i, row := range traj {
		if len(row) != PoseFields {
			return nil, NewFieldCountError(name, i, len(row))
		}
		tf, err := spatialmath.NewTransformFromQuat(row[0], row[1], row[2], row[3], row[4], row[5], row[6])
		if err != nil {
			return nil, NewInvalidPoseError(name, i, err)
		}
		out[i] = tf
	}
	return out, nil
}

// CheckLengths returns an ErrLengthMismatch error when the two trajectories have a different
// number of poses.
func CheckLengths(groundTruth, estimate Trajectory) error {
	if groundTruth.Len() != estimate.Len() {
		return NewLengthMismatchError(groundTruth.Len(), estimate.Len())
	}
	return nil
}
