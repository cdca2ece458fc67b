package core

import "math"

// Frame is an orthonormal basis. Local coordinates put the normal on +Z.
type Frame struct {
	S, T, N Vec3
}

// NewFrame builds a frame around a unit normal
func NewFrame(n Vec3) Frame {
	s, t := CoordinateSystem(n)
	return Frame{S: s, T: t, N: n}
}

// IdentityFrame maps local coordinates to identical world coordinates
func IdentityFrame() Frame {
	return Frame{S: NewVec3(1, 0, 0), T: NewVec3(0, 1, 0), N: NewVec3(0, 0, 1)}
}

// ToLocal expresses a world-space vector in the frame
func (f Frame) ToLocal(v Vec3) Vec3 {
	return Vec3{v.Dot(f.S), v.Dot(f.T), v.Dot(f.N)}
}

// ToWorld expresses a local vector in world space
func (f Frame) ToWorld(v Vec3) Vec3 {
	return f.S.Multiply(v.X).Add(f.T.Multiply(v.Y)).Add(f.N.Multiply(v.Z))
}

// CosTheta returns the cosine between a local direction and the normal
func CosTheta(v Vec3) float64 {
	return v.Z
}

// CoordinateSystem builds two tangents orthogonal to a unit vector
// (Duff et al. 2017)
func CoordinateSystem(n Vec3) (Vec3, Vec3) {
	sign := math.Copysign(1, n.Z)
	a := -1.0 / (sign + n.Z)
	b := n.X * n.Y * a
	s := NewVec3(1+sign*n.X*n.X*a, sign*b, -sign*n.X)
	t := NewVec3(b, sign+n.Y*n.Y*a, -n.Y)
	return s, t
}
