// 指示: miu200521358
package model

import (
	"github.com/miu200521358/mu_chain_rig/pkg/domain/mmath"
)

const (
	// defaultPathDuration はパス追従の正規化パラメータ長の既定値。
	defaultPathDuration = 100.0
)

// Spline はカーブを構成する制御セグメント列を表す。
type Spline struct {
	Points []mmath.Vec3
	Cyclic bool
}

// CalcLength は制御点列の弧長を返す。
func (s *Spline) CalcLength() float64 {
	if s == nil || len(s.Points) < 2 {
		return 0.0
	}
	length := 0.0
	for i := 1; i < len(s.Points); i++ {
		length += s.Points[i].Distance(s.Points[i-1])
	}
	if s.Cyclic {
		length += s.Points[0].Distance(s.Points[len(s.Points)-1])
	}
	return length
}

// EvaluatePoint は弧長正規化パラメータ t(0〜1) 上の点を返す。
func (s *Spline) EvaluatePoint(t float64) mmath.Vec3 {
	if s == nil || len(s.Points) == 0 {
		return mmath.ZeroVec3()
	}
	if len(s.Points) == 1 {
		return s.Points[0]
	}
	total := s.CalcLength()
	if total <= 0.0 {
		return s.Points[0]
	}
	if t <= 0.0 {
		return s.Points[0]
	}
	if t >= 1.0 && !s.Cyclic {
		return s.Points[len(s.Points)-1]
	}

	target := t * total
	if s.Cyclic {
		for target >= total {
			target -= total
		}
	}
	walked := 0.0
	segmentCount := len(s.Points) - 1
	if s.Cyclic {
		segmentCount = len(s.Points)
	}
	for i := 0; i < segmentCount; i++ {
		start := s.Points[i]
		end := s.Points[(i+1)%len(s.Points)]
		segment := start.Distance(end)
		if segment <= 0.0 {
			continue
		}
		if walked+segment >= target {
			return start.Lerped(end, (target-walked)/segment)
		}
		walked += segment
	}
	return s.Points[len(s.Points)-1]
}

// Curve はスプライン列とパス追従パラメータを持つカーブデータを表す。
type Curve struct {
	Splines      []*Spline
	PathDuration float64
}

// NewCurve は既定パラメータのカーブを生成する。
func NewCurve() *Curve {
	return &Curve{
		Splines:      []*Spline{},
		PathDuration: defaultPathDuration,
	}
}

// FirstSpline は先頭スプラインを返す。
func (c *Curve) FirstSpline() (*Spline, bool) {
	if c == nil || len(c.Splines) == 0 {
		return nil, false
	}
	return c.Splines[0], true
}
