package evaluation

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/trajeval/spatialmath"
	"go.viam.com/trajeval/trajectory"
	"go.viam.com/trajeval/utils"
)

// RPEScore is the relative pose error over a fixed frame offset.
type RPEScore struct {
	// Translational is the RMS of the relative translation errors, in trajectory units.
	Translational float64 `json:"translational"`
	// Rotational is the RMS of the relative rotation errors, in radians.
	Rotational float64 `json:"rotational"`

	Pairs              int   `json:"-"`
	TranslationalStats Stats `json:"-"`
	RotationalStats    Stats `json:"-"`
}

// RPE compares the motion between frames i and i+delta in ground truth and estimate, for every
// i. For each pair the error transform is Q^-1 P with Q = G_i^-1 G_i+delta and
// P = E_i^-1 E_i+delta. A trajectory with no more than delta poses has no pairs and fails with
// an ErrInsufficientLength error.
func RPE(groundTruth, estimate []spatialmath.Transform, delta int) (*RPEScore, error) {
	if len(groundTruth) != len(estimate) {
		return nil, trajectory.NewLengthMismatchError(len(groundTruth), len(estimate))
	}
	if delta < 1 {
		return nil, errors.Errorf("rpe delta must be at least 1, got %d", delta)
	}
	n := len(groundTruth)
	if n <= delta {
		return nil, trajectory.NewInsufficientLengthError("rpe", n, fmt.Sprintf("need more than %d poses", delta))
	}

	transErrs := make([]float64, 0, n-delta)
	rotErrs := make([]float64, 0, n-delta)
	var transRMS, rotRMS utils.RootMeanSquare
	for i := 0; i+delta < n; i++ {
		q := groundTruth[i].Between(groundTruth[i+delta])
		p := estimate[i].Between(estimate[i+delta])
		errTF := q.Between(p)

		te := errTF.TranslationNorm()
		re := errTF.RotationAngle()
		transRMS.Add(te)
		rotRMS.Add(re)
		transErrs = append(transErrs, te)
		rotErrs = append(rotErrs, re)
	}

	return &RPEScore{
		Translational:      transRMS.Value(),
		Rotational:         rotRMS.Value(),
		Pairs:              transRMS.Count(),
		TranslationalStats: summarize(transErrs),
		RotationalStats:    summarize(rotErrs),
	}, nil
}
