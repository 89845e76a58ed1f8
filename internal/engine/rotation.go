package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/piwi3910/voxedit/internal/model"
)

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// gimbalEpsilon is how close |sin(pitch)| may get to 1 before the X and Z
// angles are treated as one degree of freedom.
const gimbalEpsilon = 1e-9

// EulerToQuat builds the rotation that applies e.X about X, then e.Y about Y,
// then e.Z about Z.
func EulerToQuat(e model.Euler) mgl64.Quat {
	qx := mgl64.QuatRotate(e.X, axisX)
	qy := mgl64.QuatRotate(e.Y, axisY)
	qz := mgl64.QuatRotate(e.Z, axisZ)
	return qz.Mul(qy).Mul(qx)
}

// QuatToEuler is the inverse of EulerToQuat. At gimbal lock the X angle is
// reported as zero.
func QuatToEuler(q mgl64.Quat) model.Euler {
	m := q.Normalize().Mat4()

	// m = Rz(c)·Ry(b)·Rx(a), so m[2][0] = -sin(b).
	sb := mgl64.Clamp(-m.At(2, 0), -1, 1)
	if math.Abs(sb) > 1-gimbalEpsilon {
		return model.Euler{
			X: 0,
			Y: math.Copysign(math.Pi/2, sb),
			Z: math.Atan2(-m.At(0, 1), m.At(1, 1)),
		}
	}
	return model.Euler{
		X: math.Atan2(m.At(2, 1), m.At(2, 2)),
		Y: math.Asin(sb),
		Z: math.Atan2(m.At(1, 0), m.At(0, 0)),
	}
}

// ViewBasis maps camera-relative rotation requests onto world axes. It is
// derived from the camera facing vector once per frame.
type ViewBasis struct {
	Forward        mgl64.Vec3 // dominant horizontal axis, signed
	Right          mgl64.Vec3 // Forward × up
	Dominant       mgl64.Vec3 // dominant axis of the full facing vector, signed
	NearlyVertical bool       // view is close to straight up or down
}

// NewViewBasis snaps a facing vector to grid axes. threshold is the |Y|
// component of the normalised facing at or above which the view counts as
// nearly vertical. A zero facing is treated as looking down -Z.
func NewViewBasis(facing mgl64.Vec3, threshold float64) ViewBasis {
	if facing.Len() == 0 {
		facing = mgl64.Vec3{0, 0, -1}
	}
	facing = facing.Normalize()

	var forward mgl64.Vec3
	if math.Abs(facing.X()) > math.Abs(facing.Z()) {
		forward = mgl64.Vec3{sign(facing.X()), 0, 0}
	} else {
		forward = mgl64.Vec3{0, 0, sign(facing.Z())}
	}

	dominant := forward
	if math.Abs(facing.Y()) >= math.Max(math.Abs(facing.X()), math.Abs(facing.Z())) {
		dominant = mgl64.Vec3{0, sign(facing.Y()), 0}
	}

	return ViewBasis{
		Forward:        forward,
		Right:          forward.Cross(axisY),
		Dominant:       dominant,
		NearlyVertical: math.Abs(facing.Y()) >= threshold,
	}
}

// Rotation composes the quarter-turn steps into one rotation: forward steps
// about Right first, then side steps about the vertical (or Forward, when
// the view is nearly vertical), then roll steps about Dominant.
func (b ViewBasis) Rotation(forward, side, roll int) mgl64.Quat {
	sideAxis := axisY
	if b.NearlyVertical {
		sideAxis = b.Forward
	}
	qf := mgl64.QuatRotate(quarterTurns(forward), b.Right)
	qs := mgl64.QuatRotate(quarterTurns(side), sideAxis)
	qr := mgl64.QuatRotate(quarterTurns(roll), b.Dominant)
	return qr.Mul(qs).Mul(qf)
}

func quarterTurns(n int) float64 {
	return float64(n) * math.Pi / 2
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
