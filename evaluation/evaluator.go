// Package evaluation scores an estimated trajectory against ground truth with the absolute
// trajectory error, the relative pose error and the KITTI drift score.
package evaluation

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/trajeval/alignment"
	"go.viam.com/trajeval/logging"
	"go.viam.com/trajeval/spatialmath"
	"go.viam.com/trajeval/trajectory"
)

const (
	groundTruthName = "ground truth"
	estimateName    = "estimate"
)

// Evaluator runs every metric on a pair of trajectories with a fixed Config. It holds no state
// between calls and may be used concurrently.
type Evaluator struct {
	cfg    Config
	logger logging.Logger
}

// NewEvaluator returns an Evaluator for a valid cfg.
func NewEvaluator(cfg Config, logger logging.Logger) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid evaluation config")
	}
	cfg.KittiSegmentLengths = append([]float64(nil), cfg.KittiSegmentLengths...)
	return &Evaluator{cfg: cfg, logger: logger}, nil
}

// Evaluate scores estimate against groundTruth using the default configuration.
func Evaluate(groundTruth, estimate trajectory.Trajectory, scale bool) (*Result, error) {
	e, err := NewEvaluator(DefaultConfig(), logging.NewBlankLogger("evaluation"))
	if err != nil {
		return nil, err
	}
	return e.Evaluate(groundTruth, estimate, scale)
}

// Evaluate validates both trajectories, aligns the estimate onto ground truth once, and computes
// ATE, RPE and KITTI. Frame counts are checked before row shapes. Any failure is returned as is
// and no partial result is produced, except that a trajectory too short for every KITTI segment
// length gives a nil Kitti score unless the config requires it.
func (e *Evaluator) Evaluate(groundTruth, estimate trajectory.Trajectory, scale bool) (*Result, error) {
	if err := trajectory.CheckLengths(groundTruth, estimate); err != nil {
		return nil, err
	}
	if err := groundTruth.Validate(groundTruthName); err != nil {
		return nil, err
	}
	if err := estimate.Validate(estimateName); err != nil {
		return nil, err
	}

	gtTFs, err := groundTruth.ToTransforms(groundTruthName)
	if err != nil {
		return nil, err
	}
	estTFs, err := estimate.ToTransforms(estimateName)
	if err != nil {
		return nil, err
	}

	gtPos := groundTruth.Positions()
	estPos := estimate.Positions()
	align, err := alignment.Align(gtPos, estPos, scale)
	if err != nil {
		return nil, err
	}
	if align.Degenerate {
		e.logger.Warnw("alignment rotation is under-determined", "poses", len(gtPos))
	}
	e.logger.Debugw("aligned estimate", "scale", align.Scale, "estimate_scale", align.EstimateScale(),
		"translation", align.Translation)

	ate := ateFromAlignment(gtPos, estPos, align)

	relEst := estTFs
	if scale && e.cfg.ScaleRelativeMetrics {
		relEst = lo.Map(estTFs, func(tf spatialmath.Transform, _ int) spatialmath.Transform {
			return tf.ScaleTranslation(align.Scale)
		})
	}

	rpe, err := RPE(gtTFs, relEst, e.cfg.RPEDelta)
	if err != nil {
		return nil, err
	}
	e.logger.Debugw("computed rpe", "delta", e.cfg.RPEDelta, "pairs", rpe.Pairs)

	kitti, err := Kitti(gtTFs, relEst, e.cfg.KittiSegmentLengths, e.cfg.KittiStepSize)
	switch {
	case err == nil:
		for _, seg := range kitti.Segments {
			e.logger.Debugw("kitti segment", "length", seg.Length, "samples", seg.Samples)
		}
	case errors.Is(err, trajectory.ErrInsufficientLength) && !e.cfg.RequireKitti:
		e.logger.Warnw("omitting kitti score", "error", err)
		kitti = nil
	default:
		return nil, err
	}

	return &Result{
		ATE:       ate.Score,
		RPE:       *rpe,
		Kitti:     kitti,
		ATEDetail: ate,
	}, nil
}
