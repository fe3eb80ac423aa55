// 指示: miu200521358
package model

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/miu200521358/mu_chain_rig/pkg/domain/mmath"
)

func TestSplineCalcLengthOpen(t *testing.T) {
	spline := &Spline{Points: []mmath.Vec3{
		mmath.NewVec3(0.0, 0.0, 0.0),
		mmath.NewVec3(3.0, 0.0, 0.0),
		mmath.NewVec3(3.0, 4.0, 0.0),
	}}
	if !scalar.EqualWithinAbs(spline.CalcLength(), 7.0, 1e-9) {
		t.Fatalf("open length mismatch: %f", spline.CalcLength())
	}
}

func TestSplineCalcLengthCyclicClosesLoop(t *testing.T) {
	spline := &Spline{
		Points: []mmath.Vec3{
			mmath.NewVec3(0.0, 0.0, 0.0),
			mmath.NewVec3(1.0, 0.0, 0.0),
			mmath.NewVec3(1.0, 1.0, 0.0),
			mmath.NewVec3(0.0, 1.0, 0.0),
		},
		Cyclic: true,
	}
	if !scalar.EqualWithinAbs(spline.CalcLength(), 4.0, 1e-9) {
		t.Fatalf("cyclic length mismatch: %f", spline.CalcLength())
	}
}

func TestSplineCalcLengthDegenerate(t *testing.T) {
	empty := &Spline{}
	if empty.CalcLength() != 0.0 {
		t.Fatalf("empty spline length should be zero")
	}
	single := &Spline{Points: []mmath.Vec3{mmath.NewVec3(1.0, 2.0, 3.0)}}
	if single.CalcLength() != 0.0 {
		t.Fatalf("single point spline length should be zero")
	}
}

func TestSplineEvaluatePointByArcLength(t *testing.T) {
	spline := &Spline{Points: []mmath.Vec3{
		mmath.NewVec3(0.0, 0.0, 0.0),
		mmath.NewVec3(2.0, 0.0, 0.0),
		mmath.NewVec3(2.0, 2.0, 0.0),
	}}

	start := spline.EvaluatePoint(0.0)
	if !start.NearEquals(mmath.NewVec3(0.0, 0.0, 0.0), 1e-9) {
		t.Fatalf("start point mismatch: %+v", start)
	}
	half := spline.EvaluatePoint(0.5)
	if !half.NearEquals(mmath.NewVec3(2.0, 0.0, 0.0), 1e-9) {
		t.Fatalf("half point mismatch: %+v", half)
	}
	end := spline.EvaluatePoint(1.0)
	if !end.NearEquals(mmath.NewVec3(2.0, 2.0, 0.0), 1e-9) {
		t.Fatalf("end point mismatch: %+v", end)
	}
}

func TestNewCurveHasDefaultPathDuration(t *testing.T) {
	curve := NewCurve()
	if curve.PathDuration != defaultPathDuration {
		t.Fatalf("path duration mismatch: %f", curve.PathDuration)
	}
	if _, found := curve.FirstSpline(); found {
		t.Fatalf("new curve should have no spline")
	}
}
