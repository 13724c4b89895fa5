// Package spatialmath defines the rigid-body transforms the trajectory evaluators work in.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/trajeval/utils"
)

// quatNormEpsilon is the smallest quaternion norm we are willing to normalize.
const quatNormEpsilon = 1e-12

// Transform is an element of SE(3): a 4x4 homogeneous matrix whose upper-left 3x3 block is a
// proper rotation and whose last column holds the translation.
type Transform struct {
	Mat mgl64.Mat4
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{mgl64.Ident4()}
}

// NewTransformFromQuat builds a transform from a translation and an orientation quaternion
// given in (qx, qy, qz, qw) order. The quaternion is normalized before use; a zero or
// non-finite quaternion is an error.
func NewTransformFromQuat(x, y, z, qx, qy, qz, qw float64) (Transform, error) {
	q := quat.Number{Real: qw, Imag: qx, Jmag: qy, Kmag: qz}
	norm := quat.Abs(q)
	if math.IsNaN(norm) || math.IsInf(norm, 0) || norm < quatNormEpsilon {
		return Transform{}, errors.Errorf("cannot build rotation from quaternion (%v, %v, %v, %v) with norm %v",
			qx, qy, qz, qw, norm)
	}
	q = quat.Scale(1/norm, q)

	m := mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}.Mat4()
	m.Set(0, 3, x)
	m.Set(1, 3, y)
	m.Set(2, 3, z)
	return Transform{m}, nil
}

// NewTransformFromRotation builds a transform from a rotation matrix and a translation.
func NewTransformFromRotation(rot mgl64.Mat3, t r3.Vector) Transform {
	m := rot.Mat4()
	m.Set(0, 3, t.X)
	m.Set(1, 3, t.Y)
	m.Set(2, 3, t.Z)
	return Transform{m}
}

// Rotation returns the upper-left 3x3 rotation block.
func (m Transform) Rotation() mgl64.Mat3 {
	return m.Mat.Mat3()
}

// Translation returns the XYZ translation.
func (m Transform) Translation() r3.Vector {
	return r3.Vector{X: m.Mat.At(0, 3), Y: m.Mat.At(1, 3), Z: m.Mat.At(2, 3)}
}

// Quaternion returns the rotation as a unit quaternion.
func (m Transform) Quaternion() quat.Number {
	q := mgl64.Mat4ToQuat(m.Mat)
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

// Inverse returns the rigid inverse [R^T | -R^T t], which is exact for proper rotations
// and avoids a general 4x4 inversion.
func (m Transform) Inverse() Transform {
	rt := m.Rotation().Transpose()
	t := m.Translation()
	it := rt.Mul3x1(mgl64.Vec3{t.X, t.Y, t.Z}).Mul(-1)
	return NewTransformFromRotation(rt, r3.Vector{X: it[0], Y: it[1], Z: it[2]})
}

// Compose returns m * other, i.e. other expressed in the frame of m.
func (m Transform) Compose(other Transform) Transform {
	return Transform{m.Mat.Mul4(other.Mat)}
}

// Between returns the relative motion m^-1 * other.
func (m Transform) Between(other Transform) Transform {
	return m.Inverse().Compose(other)
}

// ScaleTranslation returns a copy of m with its translation multiplied by s.
func (m Transform) ScaleTranslation(s float64) Transform {
	out := m
	for r := 0; r < 3; r++ {
		out.Mat.Set(r, 3, s*m.Mat.At(r, 3))
	}
	return out
}

// TranslationNorm returns the length of the translation.
func (m Transform) TranslationNorm() float64 {
	return m.Translation().Norm()
}

// RotationAngle returns the rotation angle in radians, in [0, pi]. The arccos argument is
// clamped to [-1, 1] since round-off can push (trace-1)/2 slightly outside it.
func (m Transform) RotationAngle() float64 {
	return RotationAngle(m.Rotation())
}

// RotationAngle returns the angle in radians of the rotation matrix r.
func RotationAngle(r mgl64.Mat3) float64 {
	trace := r.At(0, 0) + r.At(1, 1) + r.At(2, 2)
	return math.Acos(utils.Clamp((trace-1)/2, -1, 1))
}

// IsValid reports whether the rotation block is orthonormal with determinant +1 and the last
// row is [0 0 0 1], to within tol.
func (m Transform) IsValid(tol float64) bool {
	r := m.Rotation()
	if math.Abs(r.Det()-1) > tol {
		return false
	}
	if !r.Mul3(r.Transpose()).ApproxEqualThreshold(mgl64.Ident3(), tol) {
		return false
	}
	return m.Mat.At(3, 0) == 0 && m.Mat.At(3, 1) == 0 && m.Mat.At(3, 2) == 0 && math.Abs(m.Mat.At(3, 3)-1) <= tol
}

// AlmostEqual reports whether two transforms agree element-wise to within tol.
func (m Transform) AlmostEqual(other Transform, tol float64) bool {
	return m.Mat.ApproxEqualThreshold(other.Mat, tol)
}
