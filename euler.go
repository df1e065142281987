package scenic

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// gimbalEps is the pitch-sine margin below which the conversion treats the
// rotation as gimbal-locked.
const gimbalEps = 1e-5

// EulerToQuat converts Euler angles in radians to a quaternion.
// Rotations compose yaw about Y, then pitch about X, then roll about Z
// (Qy·Qx·Qz). The composition order is fixed; the same triple always
// produces the same quaternion.
func EulerToQuat(pitch, yaw, roll float32) mgl32.Quat {
	qy := mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0})
	qx := mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0})
	qz := mgl32.QuatRotate(roll, mgl32.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz)
}

// QuatToEuler converts a quaternion to Euler angles in radians, inverting
// the yaw-pitch-roll composition of EulerToQuat.
//
// Pitch is clamped to ±90°. At the gimbal-lock singularity the roll axis
// aligns with the yaw axis and the two angles cannot be separated; the full
// twist is reported as yaw and roll is returned as zero. The conversion is
// lossy there and only there: for pitch strictly inside (-90°, 90°) the
// round trip through EulerToQuat reproduces the input.
func QuatToEuler(q mgl32.Quat) (pitch, yaw, roll float32) {
	m := q.Normalize().Mat4()

	sp := -m.At(1, 2)
	if sp > 1 {
		sp = 1
	} else if sp < -1 {
		sp = -1
	}

	if math32.Abs(sp) > 1-gimbalEps {
		pitch = math32.Copysign(math32.Pi/2, sp)
		yaw = math32.Atan2(-m.At(2, 0), m.At(0, 0))
		roll = 0
		return pitch, yaw, roll
	}

	pitch = math32.Asin(sp)
	yaw = math32.Atan2(m.At(0, 2), m.At(2, 2))
	roll = math32.Atan2(m.At(1, 0), m.At(1, 1))
	return pitch, yaw, roll
}
