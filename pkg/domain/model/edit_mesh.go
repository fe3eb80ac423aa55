// 指示: miu200521358
package model

import (
	"github.com/tiendc/go-deepcopy"

	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/mmath"
)

// Selection は面→辺→頂点の順で捕捉したジオメトリindex集合を表す。
type Selection struct {
	FaceIndexes []int
	EdgeIndexes []int
	VertIndexes []int
}

// VertCount は捕捉頂点数を返す。
func (s *Selection) VertCount() int {
	if s == nil {
		return 0
	}
	return len(s.VertIndexes)
}

// EditMesh は構造編集中メッシュへの一時編集ハンドルを表す。
type EditMesh struct {
	mesh  *Mesh
	freed bool
}

// NewEditMesh は構造編集モード中のメッシュオブジェクトから編集ハンドルを取得する。
func NewEditMesh(obj *Object) (*EditMesh, error) {
	if obj == nil || obj.Type != ObjectTypeMesh || obj.Mesh == nil {
		return nil, merrors.NewInvalidContextError("メッシュオブジェクトではありません: %s", obj.Name())
	}
	if obj.Mode() != ModeEdit {
		return nil, merrors.NewInvalidContextError("メッシュが構造編集モードではありません: %s", obj.Name())
	}
	return &EditMesh{mesh: obj.Mesh}, nil
}

// ensureActive はハンドル有効性を検査する。
func (em *EditMesh) ensureActive() error {
	if em == nil || em.mesh == nil || em.freed {
		return merrors.NewInvalidContextError("メッシュ編集ハンドルは解放済みです")
	}
	return nil
}

// CaptureSelectedGeometry は選択中ジオメトリを面→辺→頂点の順で捕捉する。
func (em *EditMesh) CaptureSelectedGeometry() (*Selection, error) {
	if err := em.ensureActive(); err != nil {
		return nil, err
	}
	selection := &Selection{
		FaceIndexes: []int{},
		EdgeIndexes: []int{},
		VertIndexes: []int{},
	}
	for index, face := range em.mesh.Faces {
		if face.Select {
			selection.FaceIndexes = append(selection.FaceIndexes, index)
		}
	}
	for index, edge := range em.mesh.Edges {
		if edge.Select {
			selection.EdgeIndexes = append(selection.EdgeIndexes, index)
		}
	}
	for index, vert := range em.mesh.Verts {
		if vert.Select {
			selection.VertIndexes = append(selection.VertIndexes, index)
		}
	}
	return selection, nil
}

// Duplicate は捕捉ジオメトリを複製し、複製側のindex集合を返す。
// 頂点のウェイト(Deform)は複製時にそのまま引き継がれる。
func (em *EditMesh) Duplicate(template *Selection) (*Selection, error) {
	if err := em.ensureActive(); err != nil {
		return nil, err
	}
	if template == nil {
		return nil, merrors.NewInvalidInputError("複製対象ジオメトリが未設定です")
	}

	vertRemap := map[int]int{}
	duplicated := &Selection{
		FaceIndexes: []int{},
		EdgeIndexes: []int{},
		VertIndexes: []int{},
	}

	for _, vertIndex := range template.VertIndexes {
		if vertIndex < 0 || vertIndex >= len(em.mesh.Verts) {
			return nil, merrors.NewInvalidInputError("複製対象頂点indexが不正です: %d", vertIndex)
		}
		copied := &MeshVert{}
		if err := deepcopy.Copy(copied, em.mesh.Verts[vertIndex]); err != nil {
			return nil, merrors.NewInvalidInputError("頂点複製に失敗しました: %v", err)
		}
		newIndex := len(em.mesh.Verts)
		em.mesh.Verts = append(em.mesh.Verts, copied)
		vertRemap[vertIndex] = newIndex
		duplicated.VertIndexes = append(duplicated.VertIndexes, newIndex)
	}

	for _, edgeIndex := range template.EdgeIndexes {
		if edgeIndex < 0 || edgeIndex >= len(em.mesh.Edges) {
			return nil, merrors.NewInvalidInputError("複製対象辺indexが不正です: %d", edgeIndex)
		}
		edge := em.mesh.Edges[edgeIndex]
		a, aOk := vertRemap[edge.Verts[0]]
		b, bOk := vertRemap[edge.Verts[1]]
		if !aOk || !bOk {
			// 両端点が捕捉されていない辺は複製対象外とする。
			continue
		}
		duplicated.EdgeIndexes = append(duplicated.EdgeIndexes, em.mesh.AppendEdge(a, b, edge.Select))
	}

	for _, faceIndex := range template.FaceIndexes {
		if faceIndex < 0 || faceIndex >= len(em.mesh.Faces) {
			return nil, merrors.NewInvalidInputError("複製対象面indexが不正です: %d", faceIndex)
		}
		face := em.mesh.Faces[faceIndex]
		ring := make([]int, 0, len(face.Verts))
		complete := true
		for _, vertIndex := range face.Verts {
			remapped, ok := vertRemap[vertIndex]
			if !ok {
				complete = false
				break
			}
			ring = append(ring, remapped)
		}
		if !complete {
			// 構成頂点が捕捉されていない面は複製対象外とする。
			continue
		}
		duplicated.FaceIndexes = append(duplicated.FaceIndexes, em.mesh.AppendFace(ring, face.Select))
	}

	return duplicated, nil
}

// TranslateVerts は指定頂点群を、space行列で写像した移動量だけ平行移動する。
func (em *EditMesh) TranslateVerts(vertIndexes []int, vec mmath.Vec3, space mmath.Mat4) error {
	if err := em.ensureActive(); err != nil {
		return err
	}
	offset := space.MuledDirection(vec)
	for _, vertIndex := range vertIndexes {
		if vertIndex < 0 || vertIndex >= len(em.mesh.Verts) {
			return merrors.NewInvalidInputError("移動対象頂点indexが不正です: %d", vertIndex)
		}
		vert := em.mesh.Verts[vertIndex]
		vert.Position = vert.Position.Added(offset)
	}
	return nil
}

// AssignDeformWeight は指定頂点群へグループウェイトを割り当てる。
func (em *EditMesh) AssignDeformWeight(groupIndex int, vertIndexes []int, weight float64) error {
	if err := em.ensureActive(); err != nil {
		return err
	}
	if groupIndex < 0 || groupIndex >= len(em.mesh.groups) {
		return merrors.NewInvalidInputError("頂点グループindexが不正です: %d", groupIndex)
	}
	for _, vertIndex := range vertIndexes {
		if vertIndex < 0 || vertIndex >= len(em.mesh.Verts) {
			return merrors.NewInvalidInputError("割り当て対象頂点indexが不正です: %d", vertIndex)
		}
		vert := em.mesh.Verts[vertIndex]
		if vert.Deform == nil {
			vert.Deform = map[int]float64{}
		}
		vert.Deform[groupIndex] = weight
	}
	return nil
}

// Commit は三角形分割数を更新し、編集ハンドルを解放する。
func (em *EditMesh) Commit() error {
	if err := em.ensureActive(); err != nil {
		return err
	}
	triangles := 0
	for _, face := range em.mesh.Faces {
		if len(face.Verts) >= 3 {
			triangles += len(face.Verts) - 2
		}
	}
	em.mesh.LoopTriangleCount = triangles
	em.freed = true
	return nil
}

// Free はコミットせずに編集ハンドルを解放する。多重呼び出しは無視する。
func (em *EditMesh) Free() {
	if em == nil {
		return
	}
	em.freed = true
}
