package evaluation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.viam.com/trajeval/spatialmath"
	"go.viam.com/trajeval/trajectory"
)

// helix is a non-planar ground truth with about 1.5 m between frames, facing along its tangent.
func helix(n int) trajectory.Trajectory {
	traj := make(trajectory.Trajectory, n)
	for i := range traj {
		a := 0.3 * float64(i)
		yaw := a + math.Pi/2
		traj[i] = []float64{5 * math.Cos(a), 5 * math.Sin(a), 0.2 * float64(i), 0, 0, math.Sin(yaw / 2), math.Cos(yaw / 2)}
	}
	return traj
}

// perturb returns a copy of traj with a small deterministic position error on every frame.
func perturb(traj trajectory.Trajectory, amount float64) trajectory.Trajectory {
	out := make(trajectory.Trajectory, len(traj))
	for i, row := range traj {
		f := float64(i)
		out[i] = append([]float64(nil), row...)
		out[i][0] += amount * math.Sin(f)
		out[i][1] += amount * math.Cos(2*f)
		out[i][2] += amount * math.Sin(3*f)
	}
	return out
}

// transformRows left-multiplies every pose of traj by tf.
func transformRows(traj trajectory.Trajectory, tf spatialmath.Transform) trajectory.Trajectory {
	tfs, err := traj.ToTransforms("traj")
	if err != nil {
		panic(err)
	}
	out := make(trajectory.Trajectory, len(tfs))
	for i, pose := range tfs {
		moved := tf.Compose(pose)
		p := moved.Translation()
		q := moved.Quaternion()
		out[i] = []float64{p.X, p.Y, p.Z, q.Imag, q.Jmag, q.Kmag, q.Real}
	}
	return out
}

// scalePositions returns a copy of traj with every position multiplied by k.
func scalePositions(traj trajectory.Trajectory, k float64) trajectory.Trajectory {
	out := make(trajectory.Trajectory, len(traj))
	for i, row := range traj {
		out[i] = append([]float64(nil), row...)
		out[i][0] *= k
		out[i][1] *= k
		out[i][2] *= k
	}
	return out
}

// straightLine returns n poses stepping step metres along x, with yaw i*yawStep about z and a
// lateral offset of i*drift along y.
func straightLine(n int, step, yawStep, drift float64) []spatialmath.Transform {
	out := make([]spatialmath.Transform, n)
	for i := range out {
		f := float64(i)
		yaw := f * yawStep
		tf, err := spatialmath.NewTransformFromQuat(f*step, f*drift, 0, 0, 0, math.Sin(yaw/2), math.Cos(yaw/2))
		if err != nil {
			panic(err)
		}
		out[i] = tf
	}
	return out
}

func yawRotation(yaw float64) mgl64.Mat3 {
	return mgl64.Rotate3DZ(yaw)
}

func vec(x, y, z float64) r3.Vector {
	return r3.Vector{X: x, Y: y, Z: z}
}

func pitchRotation(pitch float64) mgl64.Mat3 {
	return mgl64.Rotate3DY(pitch)
}
