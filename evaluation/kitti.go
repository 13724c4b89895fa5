package evaluation

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/trajeval/spatialmath"
	"go.viam.com/trajeval/trajectory"
	"go.viam.com/trajeval/utils"
)

// KittiScore is the KITTI odometry drift averaged over every (segment length, start frame) sample.
type KittiScore struct {
	// Translational is the mean translational drift in percent of the segment length.
	Translational float64 `json:"translational"`
	// Rotational is the mean rotational drift in degrees per 100 m of segment length.
	Rotational float64 `json:"rotational"`

	Samples  int            `json:"-"`
	Segments []SegmentDrift `json:"-"`
}

// SegmentDrift is the drift for a single segment length. Lengths without samples have
// Samples == 0 and zero drift.
type SegmentDrift struct {
	Length        float64
	Samples       int
	Translational float64
	Rotational    float64
}

// Kitti measures drift over sub-segments of the ground-truth path. Starting every stepSize
// frames, a segment of length L ends at the first frame whose travelled distance exceeds the
// start's by more than L. The segment's error transform is built as in RPE and its translation
// and rotation errors are divided by L. Lengths the trajectory is too short for are skipped;
// if no length yields a sample the result is an ErrInsufficientLength error.
func Kitti(groundTruth, estimate []spatialmath.Transform, lengths []float64, stepSize int) (*KittiScore, error) {
	if len(groundTruth) != len(estimate) {
		return nil, trajectory.NewLengthMismatchError(len(groundTruth), len(estimate))
	}
	if stepSize < 1 {
		return nil, errors.Errorf("kitti step size must be at least 1, got %d", stepSize)
	}
	if len(lengths) == 0 {
		return nil, errors.New("no kitti segment lengths")
	}
	n := len(groundTruth)
	dist := pathDistances(groundTruth)

	perLength := make([]struct{ trans, rot utils.RunningMean }, len(lengths))
	var trans, rot utils.RunningMean
	for first := 0; first < n; first += stepSize {
		for li, length := range lengths {
			last := lastFrameFromSegmentLength(dist, first, length)
			if last < 0 {
				continue
			}
			q := groundTruth[first].Between(groundTruth[last])
			p := estimate[first].Between(estimate[last])
			errTF := q.Between(p)

			te := errTF.TranslationNorm() / length
			re := errTF.RotationAngle() / length
			trans.Add(te)
			rot.Add(re)
			perLength[li].trans.Add(te)
			perLength[li].rot.Add(re)
		}
	}

	if trans.Count() == 0 {
		var pathLength float64
		if n > 0 {
			pathLength = dist[n-1]
		}
		return nil, trajectory.NewInsufficientLengthError("kitti", n,
			fmt.Sprintf("path length %.4g is not longer than the shortest segment length %.4g", pathLength, lo.Min(lengths)))
	}

	segments := make([]SegmentDrift, len(lengths))
	for li, length := range lengths {
		segments[li] = SegmentDrift{Length: length, Samples: perLength[li].trans.Count()}
		if segments[li].Samples > 0 {
			segments[li].Translational = toPercent(perLength[li].trans.Value())
			segments[li].Rotational = toDegPer100(perLength[li].rot.Value())
		}
	}
	return &KittiScore{
		Translational: toPercent(trans.Value()),
		Rotational:    toDegPer100(rot.Value()),
		Samples:       trans.Count(),
		Segments:      segments,
	}, nil
}

// pathDistances returns the cumulative distance travelled along the trajectory at each frame.
func pathDistances(poses []spatialmath.Transform) []float64 {
	dist := make([]float64, len(poses))
	for i := 1; i < len(poses); i++ {
		dist[i] = dist[i-1] + poses[i].Translation().Sub(poses[i-1].Translation()).Norm()
	}
	return dist
}

// lastFrameFromSegmentLength returns the first frame whose distance exceeds dist[first]+length,
// or -1 if there is none. dist is non-decreasing so a binary search suffices.
func lastFrameFromSegmentLength(dist []float64, first int, length float64) int {
	target := dist[first] + length
	last := first + sort.Search(len(dist)-first, func(i int) bool {
		return dist[first+i] > target
	})
	if last >= len(dist) {
		return -1
	}
	return last
}

// toPercent converts a per-metre ratio to percent.
func toPercent(ratio float64) float64 {
	return ratio * 100
}

// toDegPer100 converts radians per metre to degrees per 100 m.
func toDegPer100(radPerMetre float64) float64 {
	return utils.RadToDeg(radPerMetre) * 100
}
