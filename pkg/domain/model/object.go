// 指示: miu200521358
// Package model はリグ編集対象のシーンドキュメントを提供する。
package model

import (
	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/mmath"
)

// ObjectType はシーンオブジェクト種別を表す。
type ObjectType string

const (
	// ObjectTypeArmature はアーマチュアオブジェクトを表す。
	ObjectTypeArmature ObjectType = "ARMATURE"
	// ObjectTypeMesh はメッシュオブジェクトを表す。
	ObjectTypeMesh ObjectType = "MESH"
	// ObjectTypeCurve はカーブオブジェクトを表す。
	ObjectTypeCurve ObjectType = "CURVE"
	// ObjectTypeEmpty はデータを持たないオブジェクトを表す。
	ObjectTypeEmpty ObjectType = "EMPTY"
)

// ModifierType はモディファイア種別を表す。
type ModifierType string

const (
	// ModifierTypeArmature はアーマチュアモディファイアを表す。
	ModifierTypeArmature ModifierType = "ARMATURE"
)

// Modifier はオブジェクトに付与されたモディファイアを表す。
type Modifier struct {
	Name             string
	Type             ModifierType
	TargetObjectName string
}

// Object はシーン内のオブジェクトを表す。
type Object struct {
	name            string
	Type            ObjectType
	Translation     mmath.Vec3
	RotationDegrees mmath.Vec3
	Scale           mmath.Vec3
	Modifiers       []*Modifier

	Curve    *Curve
	Armature *Armature
	Mesh     *Mesh

	mode ObjectMode
	pose *Pose
}

// NewObject は種別に応じたデータを初期化してオブジェクトを生成する。
func NewObject(name string, objectType ObjectType) *Object {
	obj := &Object{
		name:  name,
		Type:  objectType,
		Scale: mmath.NewVec3(1.0, 1.0, 1.0),
		mode:  ModeObject,
	}
	switch objectType {
	case ObjectTypeArmature:
		obj.Armature = NewArmature()
		obj.pose = newPose(obj.Armature)
	case ObjectTypeMesh:
		obj.Mesh = NewMesh()
	case ObjectTypeCurve:
		obj.Curve = NewCurve()
	}
	return obj
}

// Name はオブジェクト名を返す。
func (o *Object) Name() string {
	if o == nil {
		return ""
	}
	return o.name
}

// MatrixWorld はワールド変換行列を返す。
func (o *Object) MatrixWorld() mmath.Mat4 {
	if o == nil {
		return mmath.NewMat4Identity()
	}
	return mmath.NewMat4FromTRS(o.Translation, o.RotationDegrees, o.Scale)
}

// EditBones は構造編集モード中のボーン集合を返す。
func (o *Object) EditBones() (*BoneCollection, error) {
	if o == nil || o.Type != ObjectTypeArmature || o.Armature == nil {
		return nil, merrors.NewInvalidContextError("アーマチュアオブジェクトではありません: %s", o.Name())
	}
	if o.mode != ModeEdit {
		return nil, merrors.NewInvalidContextError("ボーン構造の編集は構造編集モード中のみ可能です: %s", o.Name())
	}
	return o.Armature.Bones, nil
}

// Pose はポーズ(コンストレイント操作面)を返す。構造編集モード中は取得できない。
func (o *Object) Pose() (*Pose, error) {
	if o == nil || o.Type != ObjectTypeArmature || o.pose == nil {
		return nil, merrors.NewInvalidContextError("アーマチュアオブジェクトではありません: %s", o.Name())
	}
	if o.mode == ModeEdit {
		return nil, merrors.NewInvalidContextError("構造編集モード中はコンストレイントを操作できません: %s", o.Name())
	}
	return o.pose, nil
}

// ArmatureModifierTarget はアーマチュアモディファイアの対象オブジェクト名を返す。
func (o *Object) ArmatureModifierTarget() (string, bool) {
	if o == nil {
		return "", false
	}
	for _, modifier := range o.Modifiers {
		if modifier == nil || modifier.Type != ModifierTypeArmature {
			continue
		}
		if modifier.TargetObjectName == "" {
			continue
		}
		return modifier.TargetObjectName, true
	}
	return "", false
}
