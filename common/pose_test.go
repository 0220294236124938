package common

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func randPose(r *rand.Rand) Pose {
	return NewPose(
		mgl64.Vec3{r.Float64()*20 - 10, r.Float64()*20 - 10, r.Float64()*20 - 10},
		mgl64.QuatRotate(r.Float64()*2*math.Pi, randUnit(r)),
	)
}

func TestPose_IdentityBasis(t *testing.T) {
	p := IdentityPose()
	checks := []struct {
		name string
		got  mgl64.Vec3
		want mgl64.Vec3
	}{
		{"right", p.Right(), mgl64.Vec3{1, 0, 0}},
		{"up", p.Up(), mgl64.Vec3{0, 1, 0}},
		{"back", p.Back(), mgl64.Vec3{0, 0, 1}},
		{"forward", p.Forward(), mgl64.Vec3{0, 0, -1}},
	}
	for _, c := range checks {
		if !NearlyEqualVec3(c.got, c.want, eps) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestPose_InverseComposesToIdentity(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 100; i++ {
		p := randPose(r)
		if got := p.Mul(p.Inverse()); !got.ApproxEqual(IdentityPose(), 1e-9) {
			t.Errorf("case %d: p * p^-1 = %+v", i, got)
		}
		if got := p.Inverse().Mul(p); !got.ApproxEqual(IdentityPose(), 1e-9) {
			t.Errorf("case %d: p^-1 * p = %+v", i, got)
		}
	}
}

func TestPose_InverseMatrixMatchesMatrixInverse(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 4))
	for i := 0; i < 50; i++ {
		p := randPose(r)
		if !NearlyEqualMat4(p.InverseMatrix(), p.Matrix().Inv(), 1e-9) {
			t.Errorf("case %d: InverseMatrix differs from Matrix().Inv()", i)
		}
	}
}

func TestPose_PointAndDirectionRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(12, 8))
	for i := 0; i < 50; i++ {
		p := randPose(r)
		v := mgl64.Vec3{r.Float64(), r.Float64(), r.Float64()}

		if got := p.InverseTransformPoint(p.TransformPoint(v)); !NearlyEqualVec3(got, v, 1e-9) {
			t.Errorf("case %d: point round trip %v, want %v", i, got, v)
		}
		if got := p.InverseTransformDirection(p.TransformDirection(v)); !NearlyEqualVec3(got, v, 1e-9) {
			t.Errorf("case %d: direction round trip %v, want %v", i, got, v)
		}
		world := p.Matrix().Mul4x1(v.Vec4(1)).Vec3()
		if got := p.TransformPoint(v); !NearlyEqualVec3(got, world, 1e-9) {
			t.Errorf("case %d: TransformPoint %v, Matrix gives %v", i, got, world)
		}
	}
}

func TestPose_ApproxEqualIgnoresQuaternionSign(t *testing.T) {
	q := mgl64.QuatRotate(1.2, mgl64.Vec3{0, 1, 0})
	a := NewPose(mgl64.Vec3{1, 2, 3}, q)
	b := NewPose(mgl64.Vec3{1, 2, 3}, q.Scale(-1))
	if !a.ApproxEqual(b, eps) {
		t.Error("q and -q should describe the same orientation")
	}
	c := NewPose(mgl64.Vec3{1, 2, 3.1}, q)
	if a.ApproxEqual(c, 1e-3) {
		t.Error("poses with different positions reported equal")
	}
}

func TestPose_ApproxEqualIsAbsolute(t *testing.T) {
	cases := []struct {
		name string
		a, b mgl64.Vec3
		tol  float64
		want bool
	}{
		{"far drift rejected", mgl64.Vec3{50, 0, 0}, mgl64.Vec3{50.0005, 0, 0}, 1e-5, false},
		{"tiny error near origin accepted", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1e-9, 0, 0}, 1e-5, true},
		{"identity against rounding noise", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2.4e-16, -1e-15, 0}, 1e-9, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewPose(c.a, mgl64.QuatIdent())
			b := NewPose(c.b, mgl64.QuatIdent())
			if got := a.ApproxEqual(b, c.tol); got != c.want {
				t.Errorf("ApproxEqual = %v, want %v", got, c.want)
			}
		})
	}
}
