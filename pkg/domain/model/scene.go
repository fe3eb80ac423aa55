// 指示: miu200521358
package model

import (
	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/mmath"
)

// Scene はリグ編集対象のシーンドキュメントを表す。
type Scene struct {
	objects          []*Object
	indexes          map[string]int
	ActiveObjectName string
	CursorPosition   mmath.Vec3
}

// NewScene は空シーンを生成する。
func NewScene() *Scene {
	return &Scene{
		objects: []*Object{},
		indexes: map[string]int{},
	}
}

// AppendObject はオブジェクトを追加する。名前重複は許可しない。
func (s *Scene) AppendObject(obj *Object) error {
	if obj == nil {
		return merrors.NewInvalidInputError("追加対象オブジェクトが未設定です")
	}
	if _, exists := s.indexes[obj.Name()]; exists {
		return merrors.NewInvalidInputError("オブジェクト名が重複しています: %s", obj.Name())
	}
	s.indexes[obj.Name()] = len(s.objects)
	s.objects = append(s.objects, obj)
	return nil
}

// GetObjectByName は名前でオブジェクトを取得する。
func (s *Scene) GetObjectByName(name string) (*Object, error) {
	index, exists := s.indexes[name]
	if !exists {
		return nil, merrors.NewInvalidInputError("オブジェクトが見つかりません: %s", name)
	}
	return s.objects[index], nil
}

// ObjectValues はオブジェクト一覧を追加順で返す。
func (s *Scene) ObjectValues() []*Object {
	values := make([]*Object, len(s.objects))
	copy(values, s.objects)
	return values
}

// Len はオブジェクト数を返す。
func (s *Scene) Len() int {
	return len(s.objects)
}

// ActiveObject はアクティブオブジェクトを返す。
func (s *Scene) ActiveObject() (*Object, error) {
	if s.ActiveObjectName == "" {
		return nil, merrors.NewInvalidContextError("アクティブオブジェクトが未設定です")
	}
	obj, err := s.GetObjectByName(s.ActiveObjectName)
	if err != nil {
		return nil, merrors.NewInvalidContextError("アクティブオブジェクトが見つかりません: %s", s.ActiveObjectName)
	}
	return obj, nil
}

// CurveObjectNames はシーン内のカーブオブジェクト名一覧を返す。
func (s *Scene) CurveObjectNames() []string {
	names := []string{}
	for _, obj := range s.objects {
		if obj.Type == ObjectTypeCurve {
			names = append(names, obj.Name())
		}
	}
	return names
}

// ArmatureObjectForMesh はメッシュのアーマチュアモディファイア対象オブジェクトを返す。
func (s *Scene) ArmatureObjectForMesh(meshObj *Object) (*Object, error) {
	if meshObj == nil || meshObj.Type != ObjectTypeMesh {
		return nil, merrors.NewInvalidContextError("メッシュオブジェクトではありません: %s", meshObj.Name())
	}
	targetName, found := meshObj.ArmatureModifierTarget()
	if !found {
		return nil, merrors.NewInvalidContextError("アーマチュアモディファイアが見つかりません: %s", meshObj.Name())
	}
	armObj, err := s.GetObjectByName(targetName)
	if err != nil {
		return nil, merrors.NewInvalidContextError("アーマチュアモディファイア対象が見つかりません: %s", targetName)
	}
	if armObj.Type != ObjectTypeArmature || armObj.Armature == nil {
		return nil, merrors.NewInvalidContextError("モディファイア対象がアーマチュアではありません: %s", targetName)
	}
	return armObj, nil
}

// DeformBoneNamesForMesh はメッシュを駆動するアーマチュアの変形対象ボーン名一覧を返す。
func (s *Scene) DeformBoneNamesForMesh(meshObj *Object) ([]string, error) {
	armObj, err := s.ArmatureObjectForMesh(meshObj)
	if err != nil {
		return nil, err
	}
	return armObj.Armature.DeformBoneNames(), nil
}
