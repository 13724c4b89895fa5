package evaluation

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/trajeval/spatialmath"
	"go.viam.com/trajeval/trajectory"
)

func TestATEIdentity(t *testing.T) {
	gt := helix(30)
	res, err := ATE(gt, gt, true)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Score, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, res.Alignment.Scale, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, res.Alignment.Translation.Norm(), test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, res.Stats.Count, test.ShouldEqual, 30)
	test.That(t, res.GroundTruth, test.ShouldHaveLength, 30)
	test.That(t, res.Aligned, test.ShouldHaveLength, 30)
}

func TestATEScale(t *testing.T) {
	gt := helix(30)
	for _, k := range []float64{0.25, 3} {
		est := scalePositions(gt, k)

		res, err := ATE(gt, est, true)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, res.Score, test.ShouldAlmostEqual, 0, 1e-9)
		test.That(t, res.Alignment.EstimateScale(), test.ShouldAlmostEqual, k, 1e-9)

		res, err = ATE(gt, est, false)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, res.Score, test.ShouldBeGreaterThan, 0.1)
		test.That(t, res.Alignment.Scale, test.ShouldEqual, 1.0)
	}
}

func TestATERotationInvariance(t *testing.T) {
	gt := helix(40)
	est := perturb(gt, 0.2)
	base, err := ATE(gt, est, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, base.Score, test.ShouldBeGreaterThan, 0)

	rigid := spatialmath.NewTransformFromRotation(yawRotation(1.2).Mul3(pitchRotation(-0.4)), vec(4, 5, -6))
	moved, err := ATE(gt, transformRows(est, rigid), false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, moved.Score, test.ShouldAlmostEqual, base.Score, 1e-9)

	scaledBase, err := ATE(gt, est, true)
	test.That(t, err, test.ShouldBeNil)
	scaledMoved, err := ATE(gt, transformRows(est, rigid), true)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scaledMoved.Score, test.ShouldAlmostEqual, scaledBase.Score, 1e-9)
	// scale can only help
	test.That(t, scaledBase.Score, test.ShouldBeLessThanOrEqualTo, base.Score+1e-12)
}

func TestATEStats(t *testing.T) {
	gt := helix(40)
	res, err := ATE(gt, perturb(gt, 0.2), true)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Stats.RMSE, test.ShouldEqual, res.Score)
	test.That(t, res.Stats.Min, test.ShouldBeLessThanOrEqualTo, res.Stats.Mean)
	test.That(t, res.Stats.Mean, test.ShouldBeLessThanOrEqualTo, res.Stats.RMSE)
	test.That(t, res.Stats.RMSE, test.ShouldBeLessThanOrEqualTo, res.Stats.Max)
	test.That(t, math.Sqrt(res.Stats.Mean*res.Stats.Mean+res.Stats.Std*res.Stats.Std), test.ShouldAlmostEqual, res.Score, 1e-9)
}

func TestATEErrors(t *testing.T) {
	gt := helix(5)

	_, err := ATE(gt, gt[:4], true)
	test.That(t, errors.Is(err, trajectory.ErrLengthMismatch), test.ShouldBeTrue)

	bad := perturb(gt, 0)
	bad[2] = bad[2][:5]
	_, err = ATE(gt, bad, true)
	test.That(t, errors.Is(err, trajectory.ErrFormat), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "estimate pose 2")

	bad = perturb(gt, 0)
	bad[0][1] = math.NaN()
	_, err = ATE(bad, gt, true)
	test.That(t, errors.Is(err, trajectory.ErrFormat), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "ground truth pose 0")
}
