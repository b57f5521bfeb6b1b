package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Files store quaternions as (x, y, z, w); mgl64.Quat keeps W apart.

func QuatFromXYZW(x, y, z, w float64) mgl64.Quat {
	return mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}
}

func QuatToXYZW(q mgl64.Quat) [4]float64 {
	return [4]float64{q.V[0], q.V[1], q.V[2], q.W}
}

func Cross(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func AddVectors(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// MultiplyQuats returns parent*local, the orientation of a child
// in the frame its parent lives in.
// Per-component sums keep this order, exported ini files depend on it
// bit for bit.
func MultiplyQuats(parent, local mgl64.Quat) mgl64.Quat {
	x1, y1, z1, w1 := parent.V[0], parent.V[1], parent.V[2], parent.W
	x2, y2, z2, w2 := local.V[0], local.V[1], local.V[2], local.W

	return QuatFromXYZW(
		w1*x2+x1*w2+y1*z2-z1*y2,
		w1*y2-x1*z2+y1*w2+z1*x2,
		w1*z2+x1*y2-y1*x2+z1*w2,
		w1*w2-x1*x2-y1*y2-z1*z2,
	)
}

// RotateVector rotates v by q using v' = v + 2w(q×v) + 2q×(q×v).
// q is expected to be unit length, it is not renormalized.
func RotateVector(v mgl64.Vec3, q mgl64.Quat) mgl64.Vec3 {
	t := Cross(q.V, v).Mul(2)
	wt := t.Mul(q.W)
	return AddVectors(v, AddVectors(wt, Cross(q.V, t)))
}

// result in radians
func QuatToEuler(q mgl64.Quat) (e mgl64.Vec3) {
	sinr_cosp := 2 * (q.W*q.X() + q.Y()*q.Z())
	cosr_cosp := 1 - 2*(q.X()*q.X()+q.Y()*q.Y())

	e[0] = math.Atan2(sinr_cosp, cosr_cosp)

	sinp := 2 * (q.W*q.Y() - q.Z()*q.X())
	if math.Abs(sinp) >= 1 {
		e[1] = math.Copysign(math.Pi/2, sinp)
	} else {
		e[1] = math.Asin(sinp)
	}

	siny_cosp := 2 * (q.W*q.Z() + q.X()*q.Y())
	cosy_cosp := 1 - 2*(q.Y()*q.Y()+q.Z()*q.Z())
	e[2] = math.Atan2(siny_cosp, cosy_cosp)

	return e
}

func RadiansToDegreeV3(v mgl64.Vec3) mgl64.Vec3 {
	return v.Mul(180.0 / math.Pi)
}
