// Package camera produces the inverse model-view-projection matrix the
// reset pass unprojects NDC pixel coordinates through: view/projection
// construction plus Mat4.Inverse, collapsed from a live interactive
// camera to the single matrix this renderer computes once per run.
package camera

import (
	gomath "math"

	vmath "volumetrace/math"
)

// VolumeCenter is the point every implicit camera looks at: the center of
// the unit cube the volume is sampled in.
var VolumeCenter = vmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5}

const (
	defaultNear = 0.01
	defaultFar  = 100.0
)

// Camera holds the single inverse-MVP uniform consumed by the reset and
// render passes.
type Camera struct {
	InverseMVP vmath.Mat4
}

// FromPositionFocal builds the camera by a LookAt at the volume center
// with a conventional up vector, then a right-handed perspective
// projection whose plane distance is focalLength (M is identity; the
// volume never moves). Mat4LookAt/Mat4Perspective build row-vector
// matrices (v*M); InverseMVP is consumed column-vector style everywhere
// else (MulVec4Col, and uInvMVP * clip in the GLSL passes), so the row
// product must be reassembled in the reverse order and transposed to get
// the equivalent column-vector operator before inverting.
func FromPositionFocal(position vmath.Vec3, focalLength, aspect float32) Camera {
	view := vmath.Mat4LookAt(position, VolumeCenter, vmath.Vec3Up)
	proj := perspectiveFromFocalLength(focalLength, aspect)
	pv := view.Mul(proj)
	return Camera{InverseMVP: pv.Inverse().Transpose()}
}

// FromExplicitInverseMVP wraps a user-supplied 16-float inverse MVP,
// row-major operating on column vectors (the --mvp-matrix convention).
func FromExplicitInverseMVP(values [16]float32) Camera {
	var m vmath.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[row][col] = values[row*4+col]
		}
	}
	return Camera{InverseMVP: m}
}

// perspectiveFromFocalLength builds a right-handed perspective matrix whose
// projection-plane distance is focalLength: tan(fovY/2) = 1/focalLength.
func perspectiveFromFocalLength(focalLength, aspect float32) vmath.Mat4 {
	fovY := 2 * float32(gomath.Atan(1/float64(focalLength)))
	return vmath.Mat4Perspective(fovY, aspect, defaultNear, defaultFar)
}
