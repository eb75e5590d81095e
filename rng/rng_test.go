package rng

import "testing"

func TestHashDeterministic(t *testing.T) {
	a := Hash(12345)
	b := Hash(12345)
	if a != b {
		t.Errorf("Hash not deterministic: %d != %d", a, b)
	}
}

func TestHashAvalanche(t *testing.T) {
	a := Hash(0)
	b := Hash(1)
	if a == b {
		t.Errorf("Hash(0) and Hash(1) collided: %d", a)
	}
}

func TestSeedDiffersPerPixel(t *testing.T) {
	s1 := Seed(0, 0, 7)
	s2 := Seed(1, 0, 7)
	s3 := Seed(0, 1, 7)
	if s1 == s2 || s1 == s3 || s2 == s3 {
		t.Errorf("Seed does not vary with pixel coordinates: %d %d %d", s1, s2, s3)
	}
}

func TestUIsInUnitInterval(t *testing.T) {
	s := Seed(3, 4, 5)
	for i := 0; i < 10000; i++ {
		u := s.U()
		if u < 0 || u >= 1 {
			t.Fatalf("U() out of [0,1): %v", u)
		}
	}
}

func TestSquareIndependentDraws(t *testing.T) {
	s := Seed(1, 2, 3)
	u1, u2 := s.Square()
	if u1 == u2 {
		// Not impossible, but vanishingly unlikely for a healthy stream;
		// regenerate once to avoid test flakiness on a genuine coincidence.
		u1b, u2b := s.Square()
		if u1b == u2b {
			t.Errorf("Square() repeatedly produced equal draws: (%v,%v) (%v,%v)", u1, u2, u1b, u2b)
		}
	}
}

func TestDiskWithinUnitRadius(t *testing.T) {
	s := Seed(9, 9, 9)
	for i := 0; i < 1000; i++ {
		x, y := s.Disk()
		r2 := x*x + y*y
		if r2 > 1.0001 {
			t.Fatalf("Disk() sample outside unit disk: (%v,%v) r2=%v", x, y, r2)
		}
	}
}

func TestSphereIsUnitLength(t *testing.T) {
	s := Seed(2, 4, 8)
	for i := 0; i < 1000; i++ {
		x, y, z := s.Sphere()
		n := x*x + y*y + z*z
		if n < 0.999 || n > 1.001 {
			t.Fatalf("Sphere() sample not unit length: (%v,%v,%v) n=%v", x, y, z, n)
		}
	}
}

func TestExpNonNegative(t *testing.T) {
	s := Seed(5, 5, 5)
	for i := 0; i < 1000; i++ {
		d := s.Exp(1.5)
		if d < 0 {
			t.Fatalf("Exp() produced negative step length: %v", d)
		}
	}
}
