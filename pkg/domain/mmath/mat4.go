// 指示: miu200521358
package mmath

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Mat4 は4x4同次変換行列を表す。
type Mat4 struct {
	mgl64.Mat4
}

// NewMat4Identity は単位行列を返す。
func NewMat4Identity() Mat4 {
	return Mat4{Mat4: mgl64.Ident4()}
}

// NewMat4FromTRS は平行移動・回転(度, XYZ順)・拡縮から変換行列を生成する。
func NewMat4FromTRS(translation Vec3, rotationDegrees Vec3, scale Vec3) Mat4 {
	t := mgl64.Translate3D(translation.X, translation.Y, translation.Z)
	r := mgl64.HomogRotate3DZ(DegToRad(rotationDegrees.Z)).
		Mul4(mgl64.HomogRotate3DY(DegToRad(rotationDegrees.Y))).
		Mul4(mgl64.HomogRotate3DX(DegToRad(rotationDegrees.X)))
	s := mgl64.Scale3D(scale.X, scale.Y, scale.Z)
	return Mat4{Mat4: t.Mul4(r).Mul4(s)}
}

// Muled は行列積(this×other)を返す。
func (m Mat4) Muled(other Mat4) Mat4 {
	return Mat4{Mat4: m.Mat4.Mul4(other.Mat4)}
}

// Inverted は逆行列を返す。
func (m Mat4) Inverted() Mat4 {
	return Mat4{Mat4: m.Mat4.Inv()}
}

// MuledPoint は位置ベクトル(w=1)への適用結果を返す。
func (m Mat4) MuledPoint(point Vec3) Vec3 {
	applied := m.Mat4.Mul4x1(mgl64.Vec4{point.X, point.Y, point.Z, 1.0})
	return NewVec3(applied.X(), applied.Y(), applied.Z())
}

// MuledDirection は方向ベクトル(w=0)への適用結果を返す。
func (m Mat4) MuledDirection(direction Vec3) Vec3 {
	applied := m.Mat4.Mul4x1(mgl64.Vec4{direction.X, direction.Y, direction.Z, 0.0})
	return NewVec3(applied.X(), applied.Y(), applied.Z())
}
