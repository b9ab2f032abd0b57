package actor

import "github.com/go-gl/mathgl/mgl64"

// transformMatrix builds the affine world transform for a position and
// orientation: translation composed with the quaternion's rotation.
func transformMatrix(position mgl64.Vec3, orientation mgl64.Quat) mgl64.Mat4 {
	translate := mgl64.Translate3D(position.X(), position.Y(), position.Z())

	return translate.Mul4(orientation.Mat4())
}

// WorldToLocal converts a world-space point into the frame of the
// given transform.
func WorldToLocal(point mgl64.Vec3, transform mgl64.Mat4) mgl64.Vec3 {
	return transform.Inv().Mul4x1(point.Vec4(1)).Vec3()
}

// LocalToWorld converts a point in the transform's frame to world
// space.
func LocalToWorld(point mgl64.Vec3, transform mgl64.Mat4) mgl64.Vec3 {
	return transform.Mul4x1(point.Vec4(1)).Vec3()
}
