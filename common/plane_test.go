package common

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPlane_SignedDistanceAndSide(t *testing.T) {
	p := NewPlaneFromPoint(mgl64.Vec3{0, 0, 2}, mgl64.Vec3{0, 0, -3})
	if !NearlyEqualVec3(p.Normal, mgl64.Vec3{0, 0, 1}, eps) {
		t.Fatalf("normal not normalized: %v", p.Normal)
	}

	tests := []struct {
		name  string
		point mgl64.Vec3
		dist  float64
		side  bool
	}{
		{"in front", mgl64.Vec3{1, 1, -1}, 2, true},
		{"behind", mgl64.Vec3{0, 4, -7}, -4, false},
		{"on plane", mgl64.Vec3{5, -2, -3}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.SignedDistance(tt.point); math.Abs(got-tt.dist) > eps {
				t.Errorf("SignedDistance = %g, want %g", got, tt.dist)
			}
			if got := p.GetSide(tt.point); got != tt.side {
				t.Errorf("GetSide = %v, want %v", got, tt.side)
			}
		})
	}
}

func TestPlane_OffsetMovesAlongNormal(t *testing.T) {
	p := NewPlaneFromPoint(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 2, 0})
	shifted := p.Offset(0.5)
	if got := shifted.SignedDistance(mgl64.Vec3{0, 2.5, 0}); math.Abs(got) > eps {
		t.Errorf("offset plane misses y=2.5: distance %g", got)
	}
	if shifted.Normal != p.Normal {
		t.Errorf("Offset changed the normal: %v", shifted.Normal)
	}
}

func TestPlane_Flipped(t *testing.T) {
	p := Plane{Normal: mgl64.Vec3{1, 0, 0}, Distance: -2}
	f := p.Flipped()
	pt := mgl64.Vec3{3, 0, 0}
	if p.SignedDistance(pt) != -f.SignedDistance(pt) {
		t.Errorf("flipped distance %g, want %g", f.SignedDistance(pt), -p.SignedDistance(pt))
	}
}

func TestPlane_Normalized(t *testing.T) {
	p := Plane{Normal: mgl64.Vec3{0, 3, 4}, Distance: 10}.Normalized()
	if math.Abs(p.Normal.Len()-1) > eps || math.Abs(p.Distance-2) > eps {
		t.Errorf("Normalized = %+v", p)
	}
	if z := (Plane{Distance: 1}).Normalized(); z.Distance != 1 {
		t.Errorf("zero normal plane changed: %+v", z)
	}
}

func TestPlane_TransformTranslation(t *testing.T) {
	p := Plane{Normal: mgl64.Vec3{0, 0, 1}, Distance: 3}
	got := p.Transform(mgl64.Translate3D(0, 0, 5))
	want := Plane{Normal: mgl64.Vec3{0, 0, 1}, Distance: -2}
	if !NearlyEqualVec3(got.Normal, want.Normal, eps) || math.Abs(got.Distance-want.Distance) > eps {
		t.Errorf("Transform = %+v, want %+v", got, want)
	}
}

func TestPlane_TransformIntoPoseFrame(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 50; i++ {
		pose := NewPose(
			mgl64.Vec3{r.Float64()*10 - 5, r.Float64()*10 - 5, r.Float64()*10 - 5},
			mgl64.QuatRotate(r.Float64()*2*math.Pi, randUnit(r)),
		)
		normal := randUnit(r)
		point := mgl64.Vec3{r.Float64() * 4, r.Float64() * 4, r.Float64() * 4}
		world := NewPlaneFromPoint(normal, point)

		local := world.Transform(pose.InverseMatrix())

		if d := local.SignedDistance(pose.InverseTransformPoint(point)); math.Abs(d) > 1e-9 {
			t.Errorf("case %d: transformed plane misses the transformed point by %g", i, d)
		}
		if wantN := pose.InverseTransformDirection(normal); !NearlyEqualVec3(local.Normal, wantN, 1e-9) {
			t.Errorf("case %d: normal %v, want %v", i, local.Normal, wantN)
		}
	}
}

func TestPlane_Vec4RoundTrip(t *testing.T) {
	p := Plane{Normal: mgl64.Vec3{0.6, 0, 0.8}, Distance: -1.5}
	if got := PlaneFromVec4(p.Vec4()); got != p {
		t.Errorf("PlaneFromVec4(Vec4()) = %+v, want %+v", got, p)
	}
}
