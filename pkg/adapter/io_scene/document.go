// 指示: miu200521358
package io_scene

import (
	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/model"
)

// sceneDocument はシーンJSONのトップレベル要素を表す。
type sceneDocument struct {
	Version        int              `json:"version"`
	ActiveObject   string           `json:"active_object,omitempty"`
	CursorPosition [3]float64       `json:"cursor_position"`
	Objects        []objectDocument `json:"objects"`
}

// objectDocument はシーンオブジェクトのJSON表現を表す。
type objectDocument struct {
	Name            string             `json:"name"`
	Type            string             `json:"type"`
	Translation     [3]float64         `json:"translation"`
	RotationDegrees [3]float64         `json:"rotation_degrees"`
	Scale           [3]float64         `json:"scale"`
	Mode            string             `json:"mode,omitempty"`
	Modifiers       []modifierDocument `json:"modifiers,omitempty"`
	Curve           *curveDocument     `json:"curve,omitempty"`
	Armature        *armatureDocument  `json:"armature,omitempty"`
	Mesh            *meshDocument      `json:"mesh,omitempty"`
}

// modifierDocument はモディファイアのJSON表現を表す。
type modifierDocument struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
}

// curveDocument はカーブデータのJSON表現を表す。
type curveDocument struct {
	PathDuration float64          `json:"path_duration"`
	Splines      []splineDocument `json:"splines"`
}

// splineDocument はスプラインのJSON表現を表す。
type splineDocument struct {
	Points [][3]float64 `json:"points"`
	Cyclic bool         `json:"cyclic"`
}

// armatureDocument はアーマチュアデータのJSON表現を表す。
type armatureDocument struct {
	Bones     []boneDocument     `json:"bones"`
	PoseBones []poseBoneDocument `json:"pose_bones,omitempty"`
}

// boneDocument はボーンのJSON表現を表す。親は子より先に並べる。
type boneDocument struct {
	Name      string     `json:"name"`
	Head      [3]float64 `json:"head"`
	Tail      [3]float64 `json:"tail"`
	Parent    string     `json:"parent,omitempty"`
	UseDeform bool       `json:"use_deform"`
	IsLocator bool       `json:"is_locator,omitempty"`
}

// poseBoneDocument はコンストレイント付きポーズボーンのJSON表現を表す。
type poseBoneDocument struct {
	BoneName    string               `json:"bone_name"`
	Constraints []constraintDocument `json:"constraints"`
}

// constraintDocument はポーズコンストレイントのJSON表現を表す。
type constraintDocument struct {
	Type           string  `json:"type"`
	Target         string  `json:"target,omitempty"`
	Subtarget      string  `json:"subtarget,omitempty"`
	Offset         float64 `json:"offset,omitempty"`
	UseCurveFollow bool    `json:"use_curve_follow,omitempty"`
	ForwardAxis    string  `json:"forward_axis,omitempty"`
	UpAxis         string  `json:"up_axis,omitempty"`
	UseTargetZ     bool    `json:"use_target_z,omitempty"`
}

// meshDocument はメッシュデータのJSON表現を表す。
type meshDocument struct {
	Verts  []meshVertDocument `json:"verts"`
	Edges  []meshEdgeDocument `json:"edges"`
	Faces  []meshFaceDocument `json:"faces"`
	Groups []string           `json:"groups,omitempty"`
}

// meshVertDocument は頂点のJSON表現を表す。Deformはグループ名→ウェイト。
type meshVertDocument struct {
	Position [3]float64         `json:"position"`
	Select   bool               `json:"select,omitempty"`
	Deform   map[string]float64 `json:"deform,omitempty"`
}

// meshEdgeDocument は辺のJSON表現を表す。
type meshEdgeDocument struct {
	Verts  [2]int `json:"verts"`
	Select bool   `json:"select,omitempty"`
}

// meshFaceDocument は面のJSON表現を表す。
type meshFaceDocument struct {
	Verts  []int `json:"verts"`
	Select bool  `json:"select,omitempty"`
}

// vec3FromArray は配列をベクトルへ変換する。
func vec3FromArray(values [3]float64) mmath.Vec3 {
	return mmath.NewVec3(values[0], values[1], values[2])
}

// arrayFromVec3 はベクトルを配列へ変換する。
func arrayFromVec3(v mmath.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// toDomain はオブジェクトDTOをドメインオブジェクトへ変換する。
func (doc *objectDocument) toDomain() (*model.Object, error) {
	objectType := model.ObjectType(doc.Type)
	switch objectType {
	case model.ObjectTypeArmature, model.ObjectTypeMesh, model.ObjectTypeCurve, model.ObjectTypeEmpty:
	default:
		return nil, merrors.NewInvalidInputError("オブジェクト種別が未対応です: %s", doc.Type)
	}
	obj := model.NewObject(doc.Name, objectType)
	obj.Translation = vec3FromArray(doc.Translation)
	obj.RotationDegrees = vec3FromArray(doc.RotationDegrees)
	obj.Scale = vec3FromArray(doc.Scale)
	for _, modDoc := range doc.Modifiers {
		obj.Modifiers = append(obj.Modifiers, &model.Modifier{
			Name:             modDoc.Name,
			Type:             model.ModifierType(modDoc.Type),
			TargetObjectName: modDoc.Target,
		})
	}

	switch objectType {
	case model.ObjectTypeCurve:
		if doc.Curve != nil {
			applyCurveDocument(obj.Curve, doc.Curve)
		}
	case model.ObjectTypeArmature:
		if doc.Armature != nil {
			if err := applyArmatureDocument(obj, doc.Armature); err != nil {
				return nil, err
			}
		}
	case model.ObjectTypeMesh:
		if doc.Mesh != nil {
			if err := applyMeshDocument(obj.Mesh, doc.Mesh); err != nil {
				return nil, err
			}
		}
	}

	// モードはコンストレイント復元後に反映する。構造編集モード中はポーズを触れない。
	if doc.Mode != "" {
		if err := obj.SetMode(model.ObjectMode(doc.Mode)); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// applyCurveDocument はカーブDTOをドメインカーブへ反映する。
func applyCurveDocument(curve *model.Curve, doc *curveDocument) {
	if doc.PathDuration > 0.0 {
		curve.PathDuration = doc.PathDuration
	}
	for _, splineDoc := range doc.Splines {
		spline := &model.Spline{Cyclic: splineDoc.Cyclic}
		for _, point := range splineDoc.Points {
			spline.Points = append(spline.Points, vec3FromArray(point))
		}
		curve.Splines = append(curve.Splines, spline)
	}
}

// applyArmatureDocument はアーマチュアDTOをドメインアーマチュアへ反映する。
func applyArmatureDocument(obj *model.Object, doc *armatureDocument) error {
	for _, boneDoc := range doc.Bones {
		bone := model.NewBone(boneDoc.Name)
		bone.Head = vec3FromArray(boneDoc.Head)
		bone.Tail = vec3FromArray(boneDoc.Tail)
		bone.ParentName = boneDoc.Parent
		bone.UseDeform = boneDoc.UseDeform
		bone.IsLocator = boneDoc.IsLocator
		if err := obj.Armature.Bones.Append(bone); err != nil {
			return err
		}
	}
	if len(doc.PoseBones) == 0 {
		return nil
	}
	pose, err := obj.Pose()
	if err != nil {
		return err
	}
	for _, poseBoneDoc := range doc.PoseBones {
		poseBone, err := pose.GetBoneByName(poseBoneDoc.BoneName)
		if err != nil {
			return err
		}
		for _, constraintDoc := range poseBoneDoc.Constraints {
			constraint := poseBone.NewConstraint(model.ConstraintType(constraintDoc.Type))
			constraint.TargetObjectName = constraintDoc.Target
			constraint.Subtarget = constraintDoc.Subtarget
			constraint.Offset = constraintDoc.Offset
			constraint.UseCurveFollow = constraintDoc.UseCurveFollow
			constraint.ForwardAxis = constraintDoc.ForwardAxis
			constraint.UpAxis = constraintDoc.UpAxis
			constraint.UseTargetZ = constraintDoc.UseTargetZ
		}
	}
	return nil
}

// applyMeshDocument はメッシュDTOをドメインメッシュへ反映する。
func applyMeshDocument(mesh *model.Mesh, doc *meshDocument) error {
	groupIndexes := map[string]int{}
	for _, groupName := range doc.Groups {
		group, err := mesh.NewVertexGroup(groupName)
		if err != nil {
			return err
		}
		groupIndexes[groupName] = group.Index()
	}
	for _, vertDoc := range doc.Verts {
		vertIndex := mesh.AppendVert(vec3FromArray(vertDoc.Position), vertDoc.Select)
		if len(vertDoc.Deform) == 0 {
			continue
		}
		deform := map[int]float64{}
		for groupName, weight := range vertDoc.Deform {
			groupIndex, exists := groupIndexes[groupName]
			if !exists {
				return merrors.NewInvalidInputError("ウェイト参照先の頂点グループが未定義です: %s", groupName)
			}
			deform[groupIndex] = weight
		}
		mesh.Verts[vertIndex].Deform = deform
	}
	for _, edgeDoc := range doc.Edges {
		mesh.AppendEdge(edgeDoc.Verts[0], edgeDoc.Verts[1], edgeDoc.Select)
	}
	for _, faceDoc := range doc.Faces {
		mesh.AppendFace(faceDoc.Verts, faceDoc.Select)
	}
	return nil
}

// newSceneDocument はドメインシーンからシーンDTOを構築する。
func newSceneDocument(scene *model.Scene) (*sceneDocument, error) {
	doc := &sceneDocument{
		Version:        1,
		ActiveObject:   scene.ActiveObjectName,
		CursorPosition: arrayFromVec3(scene.CursorPosition),
		Objects:        []objectDocument{},
	}
	for _, obj := range scene.ObjectValues() {
		objDoc, err := newObjectDocument(obj)
		if err != nil {
			return nil, err
		}
		doc.Objects = append(doc.Objects, *objDoc)
	}
	return doc, nil
}

// newObjectDocument はドメインオブジェクトからオブジェクトDTOを構築する。
func newObjectDocument(obj *model.Object) (*objectDocument, error) {
	doc := &objectDocument{
		Name:            obj.Name(),
		Type:            string(obj.Type),
		Translation:     arrayFromVec3(obj.Translation),
		RotationDegrees: arrayFromVec3(obj.RotationDegrees),
		Scale:           arrayFromVec3(obj.Scale),
	}
	if mode := obj.Mode(); mode != model.ModeObject {
		doc.Mode = string(mode)
	}
	for _, modifier := range obj.Modifiers {
		if modifier == nil {
			continue
		}
		doc.Modifiers = append(doc.Modifiers, modifierDocument{
			Name:   modifier.Name,
			Type:   string(modifier.Type),
			Target: modifier.TargetObjectName,
		})
	}

	switch obj.Type {
	case model.ObjectTypeCurve:
		if obj.Curve != nil {
			doc.Curve = newCurveDocument(obj.Curve)
		}
	case model.ObjectTypeArmature:
		armDoc, err := newArmatureDocument(obj)
		if err != nil {
			return nil, err
		}
		doc.Armature = armDoc
	case model.ObjectTypeMesh:
		if obj.Mesh != nil {
			doc.Mesh = newMeshDocument(obj.Mesh)
		}
	}
	return doc, nil
}

// newCurveDocument はドメインカーブからカーブDTOを構築する。
func newCurveDocument(curve *model.Curve) *curveDocument {
	doc := &curveDocument{
		PathDuration: curve.PathDuration,
		Splines:      []splineDocument{},
	}
	for _, spline := range curve.Splines {
		splineDoc := splineDocument{Cyclic: spline.Cyclic}
		for _, point := range spline.Points {
			splineDoc.Points = append(splineDoc.Points, arrayFromVec3(point))
		}
		doc.Splines = append(doc.Splines, splineDoc)
	}
	return doc
}

// newArmatureDocument はドメインアーマチュアからアーマチュアDTOを構築する。
// ボーンは追加順(親が先)で並べる。
func newArmatureDocument(obj *model.Object) (*armatureDocument, error) {
	doc := &armatureDocument{Bones: []boneDocument{}}
	if obj.Armature == nil {
		return doc, nil
	}
	for _, bone := range obj.Armature.Bones.Values() {
		doc.Bones = append(doc.Bones, boneDocument{
			Name:      bone.Name(),
			Head:      arrayFromVec3(bone.Head),
			Tail:      arrayFromVec3(bone.Tail),
			Parent:    bone.ParentName,
			UseDeform: bone.UseDeform,
			IsLocator: bone.IsLocator,
		})
	}
	pose, err := obj.Pose()
	if err != nil {
		return nil, err
	}
	for _, poseBone := range pose.PoseBoneValues() {
		poseBoneDoc := poseBoneDocument{
			BoneName:    poseBone.BoneName,
			Constraints: []constraintDocument{},
		}
		for _, constraint := range poseBone.Constraints {
			poseBoneDoc.Constraints = append(poseBoneDoc.Constraints, constraintDocument{
				Type:           string(constraint.Type),
				Target:         constraint.TargetObjectName,
				Subtarget:      constraint.Subtarget,
				Offset:         constraint.Offset,
				UseCurveFollow: constraint.UseCurveFollow,
				ForwardAxis:    constraint.ForwardAxis,
				UpAxis:         constraint.UpAxis,
				UseTargetZ:     constraint.UseTargetZ,
			})
		}
		doc.PoseBones = append(doc.PoseBones, poseBoneDoc)
	}
	return doc, nil
}

// newMeshDocument はドメインメッシュからメッシュDTOを構築する。
func newMeshDocument(mesh *model.Mesh) *meshDocument {
	doc := &meshDocument{
		Verts: []meshVertDocument{},
		Edges: []meshEdgeDocument{},
		Faces: []meshFaceDocument{},
	}
	groupNames := map[int]string{}
	for _, group := range mesh.VertexGroupValues() {
		doc.Groups = append(doc.Groups, group.Name())
		groupNames[group.Index()] = group.Name()
	}
	for _, vert := range mesh.Verts {
		vertDoc := meshVertDocument{
			Position: arrayFromVec3(vert.Position),
			Select:   vert.Select,
		}
		if len(vert.Deform) > 0 {
			vertDoc.Deform = map[string]float64{}
			for groupIndex, weight := range vert.Deform {
				vertDoc.Deform[groupNames[groupIndex]] = weight
			}
		}
		doc.Verts = append(doc.Verts, vertDoc)
	}
	for _, edge := range mesh.Edges {
		doc.Edges = append(doc.Edges, meshEdgeDocument{Verts: edge.Verts, Select: edge.Select})
	}
	for _, face := range mesh.Faces {
		faceDoc := meshFaceDocument{Select: face.Select}
		faceDoc.Verts = append(faceDoc.Verts, face.Verts...)
		doc.Faces = append(doc.Faces, faceDoc)
	}
	return doc
}
