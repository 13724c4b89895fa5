// Package alignment computes the least-squares similarity transform that maps an estimated
// trajectory's positions onto ground truth, using Umeyama's closed form
// (S. Umeyama, "Least-squares estimation of transformation parameters between two point
// patterns", PAMI 1991).
package alignment

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/trajeval/trajectory"
)

const (
	// varianceEpsilon is the estimate spread below which no scale is solved for.
	varianceEpsilon = 1e-12
	// rankCondition is the relative singular value threshold used to decide whether the
	// cross-covariance pins down a rotation.
	rankCondition = 1e-10
)

// Alignment is the similarity transform p -> Scale * Rotation * p + Translation.
type Alignment struct {
	Rotation    *mat.Dense
	Translation r3.Vector
	Scale       float64
	// Degenerate is set when the cross-covariance has rank < 2 (fewer than three poses, or
	// all poses on a line). The returned rotation is then only one of many minimizers; with
	// rank 0 it is the identity.
	Degenerate bool
}

// Align returns the transform minimizing sum_i |groundTruth_i - (s R estimate_i + t)|^2.
// With withScale false, s is fixed to 1. The returned rotation always has determinant +1.
func Align(groundTruth, estimate []r3.Vector, withScale bool) (*Alignment, error) {
	if len(groundTruth) != len(estimate) {
		return nil, trajectory.NewLengthMismatchError(len(groundTruth), len(estimate))
	}
	n := len(groundTruth)
	if n == 0 {
		return nil, trajectory.NewInsufficientLengthError("alignment", n, "need at least one pose")
	}

	g := pointsToDense(groundTruth)
	e := pointsToDense(estimate)
	muG := center(g)
	muE := center(e)

	// sigma = 1/n * sum (g_i - muG)(e_i - muE)^T
	var sigma mat.Dense
	sigma.Mul(g.T(), e)
	sigma.Scale(1/float64(n), &sigma)

	var svd mat.SVD
	if ok := svd.Factorize(&sigma, mat.SVDFull); !ok {
		return nil, errors.New("failed to factorize cross-covariance")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	d := svd.Values(nil)

	rank := svd.Rank(rankCondition)

	signs := reflectionCorrection(&u, &v)
	rot := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	if rank > 0 {
		// R = U S V^T
		us := mat.NewDense(3, 3, nil)
		us.Mul(&u, mat.NewDiagDense(3, signs))
		rot.Mul(us, v.T())
	}

	scale := 1.0
	if withScale {
		varE := mat.Norm(e, 2)
		varE = varE * varE / float64(n)
		if varE > varianceEpsilon {
			scale = floats.Dot(d, signs) / varE
		}
	}

	rotMuE := mat.NewVecDense(3, nil)
	rotMuE.MulVec(rot, mat.NewVecDense(3, []float64{muE.X, muE.Y, muE.Z}))
	t := muG.Sub(r3.Vector{X: rotMuE.AtVec(0), Y: rotMuE.AtVec(1), Z: rotMuE.AtVec(2)}.Mul(scale))

	return &Alignment{
		Rotation:    rot,
		Translation: t,
		Scale:       scale,
		Degenerate:  rank < 2,
	}, nil
}

// reflectionCorrection returns the diagonal of Umeyama's S matrix: all ones, except the entry
// for the smallest singular direction which is -1 when U V^T would be a reflection
// (det(U) det(V) < 0). Using it in R = U S V^T guarantees det(R) = +1.
func reflectionCorrection(u, v mat.Matrix) []float64 {
	signs := []float64{1, 1, 1}
	if mat.Det(u)*mat.Det(v) < 0 {
		signs[2] = -1
	}
	return signs
}

// Apply maps each point p to Scale * Rotation * p + Translation. The input is not modified.
func (a *Alignment) Apply(points []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(points))
	rotated := mat.NewVecDense(3, nil)
	for i, p := range points {
		rotated.MulVec(a.Rotation, mat.NewVecDense(3, []float64{p.X, p.Y, p.Z}))
		out[i] = r3.Vector{X: rotated.AtVec(0), Y: rotated.AtVec(1), Z: rotated.AtVec(2)}.Mul(a.Scale).Add(a.Translation)
	}
	return out
}

// EstimateScale returns how large the estimate is relative to ground truth, the reciprocal of
// Scale. For an estimate that is k times ground truth it is k.
func (a *Alignment) EstimateScale() float64 {
	return 1 / a.Scale
}

func pointsToDense(points []r3.Vector) *mat.Dense {
	m := mat.NewDense(len(points), 3, nil)
	for i, p := range points {
		m.SetRow(i, []float64{p.X, p.Y, p.Z})
	}
	return m
}

// center subtracts the column means from m in place and returns them.
func center(m *mat.Dense) r3.Vector {
	n, _ := m.Dims()
	var mean [3]float64
	for c := 0; c < 3; c++ {
		col := mat.Col(nil, c, m)
		mean[c] = floats.Sum(col) / float64(n)
		floats.AddConst(-mean[c], col)
		m.SetCol(c, col)
	}
	return r3.Vector{X: mean[0], Y: mean[1], Z: mean[2]}
}
