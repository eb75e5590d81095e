package camera

import (
	"math"
	"testing"

	vmath "volumetrace/math"
)

func TestFromExplicitInverseMVPRoundTrip(t *testing.T) {
	var values [16]float32
	for i := range values {
		if i%5 == 0 {
			values[i] = 1
		}
	}
	cam := FromExplicitInverseMVP(values)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := values[row*4+col]
			if cam.InverseMVP[row][col] != want {
				t.Errorf("InverseMVP[%d][%d] = %v, want %v", row, col, cam.InverseMVP[row][col], want)
			}
		}
	}
}

func TestFromPositionFocalLooksAtVolumeCenter(t *testing.T) {
	pos := vmath.Vec3{X: 0.5, Y: 0.5, Z: 3.0}
	cam := FromPositionFocal(pos, 1.0, 1.0)

	// The inverse MVP should unproject the NDC origin (center of screen,
	// near plane) to a point on the ray from the camera through the volume
	// center; check it lies approximately on the camera-to-center axis.
	near := cam.InverseMVP.MulVec4Col(vmath.NewVec4(0, 0, -1, 1))
	nearWorld := near.ToVec3DivW()

	toCenter := VolumeCenter.Sub(pos).Normalize()
	toNear := nearWorld.Sub(pos).Normalize()

	dot := toCenter.Dot(toNear)
	if math.Abs(float64(dot)-1) > 0.01 {
		t.Errorf("unprojected near point not aligned with camera-to-center axis: dot=%v", dot)
	}
}
