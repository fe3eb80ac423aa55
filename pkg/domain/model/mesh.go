// 指示: miu200521358
package model

import (
	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/mmath"
)

// MeshVert はメッシュ頂点を表す。Deformは頂点グループindex→ウェイト。
type MeshVert struct {
	Position mmath.Vec3
	Select   bool
	Deform   map[int]float64
}

// MeshEdge はメッシュ辺を表す。
type MeshEdge struct {
	Verts  [2]int
	Select bool
}

// MeshFace はメッシュ面を表す。Vertsは頂点indexの環。
type MeshFace struct {
	Verts  []int
	Select bool
}

// VertexGroup は名前付きウェイト割り当て先を表す。
type VertexGroup struct {
	name  string
	index int
}

// Name はグループ名を返す。
func (g *VertexGroup) Name() string {
	if g == nil {
		return ""
	}
	return g.name
}

// Index はグループindexを返す。
func (g *VertexGroup) Index() int {
	if g == nil {
		return -1
	}
	return g.index
}

// Mesh は頂点・辺・面と頂点グループを持つメッシュデータを表す。
type Mesh struct {
	Verts []*MeshVert
	Edges []*MeshEdge
	Faces []*MeshFace

	groups       []*VertexGroup
	groupIndexes map[string]int

	// LoopTriangleCount はコミット時に再計算する三角形分割数。
	LoopTriangleCount int
}

// NewMesh は空メッシュを生成する。
func NewMesh() *Mesh {
	return &Mesh{
		Verts:        []*MeshVert{},
		Edges:        []*MeshEdge{},
		Faces:        []*MeshFace{},
		groups:       []*VertexGroup{},
		groupIndexes: map[string]int{},
	}
}

// AppendVert は頂点を追加しindexを返す。
func (m *Mesh) AppendVert(position mmath.Vec3, selected bool) int {
	m.Verts = append(m.Verts, &MeshVert{Position: position, Select: selected})
	return len(m.Verts) - 1
}

// AppendEdge は辺を追加しindexを返す。
func (m *Mesh) AppendEdge(a, b int, selected bool) int {
	m.Edges = append(m.Edges, &MeshEdge{Verts: [2]int{a, b}, Select: selected})
	return len(m.Edges) - 1
}

// AppendFace は面を追加しindexを返す。
func (m *Mesh) AppendFace(verts []int, selected bool) int {
	ring := make([]int, len(verts))
	copy(ring, verts)
	m.Faces = append(m.Faces, &MeshFace{Verts: ring, Select: selected})
	return len(m.Faces) - 1
}

// VertexGroupValues は頂点グループ一覧をindex順で返す。
func (m *Mesh) VertexGroupValues() []*VertexGroup {
	values := make([]*VertexGroup, len(m.groups))
	copy(values, m.groups)
	return values
}

// GetVertexGroupByName は名前で頂点グループを取得する。
func (m *Mesh) GetVertexGroupByName(name string) (*VertexGroup, error) {
	index, exists := m.groupIndexes[name]
	if !exists {
		return nil, merrors.NewInvalidInputError("頂点グループが見つかりません: %s", name)
	}
	return m.groups[index], nil
}

// NewVertexGroup は頂点グループを新規作成する。同名の事前存在は許可しない。
func (m *Mesh) NewVertexGroup(name string) (*VertexGroup, error) {
	if name == "" {
		return nil, merrors.NewInvalidInputError("頂点グループ名が未設定です")
	}
	if _, exists := m.groupIndexes[name]; exists {
		return nil, merrors.NewInvalidInputError("頂点グループ名が重複しています: %s", name)
	}
	group := &VertexGroup{name: name, index: len(m.groups)}
	m.groupIndexes[name] = group.index
	m.groups = append(m.groups, group)
	return group, nil
}

// RemoveVertexGroup は頂点グループを削除し、全頂点の該当ウェイトを除去して後続indexを詰める。
func (m *Mesh) RemoveVertexGroup(name string) bool {
	removedIndex, exists := m.groupIndexes[name]
	if !exists {
		return false
	}
	m.groups = append(m.groups[:removedIndex], m.groups[removedIndex+1:]...)
	delete(m.groupIndexes, name)
	for _, group := range m.groups[removedIndex:] {
		group.index--
		m.groupIndexes[group.name] = group.index
	}
	for _, vert := range m.Verts {
		if vert.Deform == nil {
			continue
		}
		delete(vert.Deform, removedIndex)
		remapped := map[int]float64{}
		for index, weight := range vert.Deform {
			if index > removedIndex {
				remapped[index-1] = weight
			} else {
				remapped[index] = weight
			}
		}
		vert.Deform = remapped
	}
	return true
}

// WeightsForGroup は指定グループの頂点index→ウェイトを返す。
func (m *Mesh) WeightsForGroup(name string) (map[int]float64, error) {
	group, err := m.GetVertexGroupByName(name)
	if err != nil {
		return nil, err
	}
	weights := map[int]float64{}
	for vertIndex, vert := range m.Verts {
		if vert.Deform == nil {
			continue
		}
		if weight, assigned := vert.Deform[group.Index()]; assigned {
			weights[vertIndex] = weight
		}
	}
	return weights, nil
}
