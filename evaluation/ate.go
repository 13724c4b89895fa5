package evaluation

import (
	"github.com/golang/geo/r3"

	"go.viam.com/trajeval/alignment"
	"go.viam.com/trajeval/trajectory"
)

// ATEResult is the absolute trajectory error of an estimate after global alignment.
type ATEResult struct {
	// Score is the root mean square of the per-frame position errors.
	Score float64
	Stats Stats
	// Alignment is the transform that was applied to the estimate.
	Alignment *alignment.Alignment
	// GroundTruth and Aligned are the positions that were compared, frame by frame.
	GroundTruth []r3.Vector
	Aligned     []r3.Vector
}

// ATE aligns the estimate onto ground truth, with a global scale when scale is set, and returns
// the RMS distance between corresponding positions.
func ATE(groundTruth, estimate trajectory.Trajectory, scale bool) (*ATEResult, error) {
	if err := trajectory.CheckLengths(groundTruth, estimate); err != nil {
		return nil, err
	}
	if err := groundTruth.Validate(groundTruthName); err != nil {
		return nil, err
	}
	if err := estimate.Validate(estimateName); err != nil {
		return nil, err
	}

	gtPos := groundTruth.Positions()
	estPos := estimate.Positions()
	align, err := alignment.Align(gtPos, estPos, scale)
	if err != nil {
		return nil, err
	}
	return ateFromAlignment(gtPos, estPos, align), nil
}

// ateFromAlignment scores estimate positions against ground truth under a precomputed alignment.
func ateFromAlignment(gtPos, estPos []r3.Vector, align *alignment.Alignment) *ATEResult {
	aligned := align.Apply(estPos)
	errs := make([]float64, len(gtPos))
	for i := range gtPos {
		errs[i] = gtPos[i].Sub(aligned[i]).Norm()
	}
	summary := summarize(errs)
	return &ATEResult{
		Score:       summary.RMSE,
		Stats:       summary,
		Alignment:   align,
		GroundTruth: gtPos,
		Aligned:     aligned,
	}
}
