// 指示: miu200521358
package model

import (
	"testing"

	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/mmath"
)

func TestNewVertexGroupAssignsSequentialIndexes(t *testing.T) {
	mesh := NewMesh()
	first, err := mesh.NewVertexGroup("Chain.000")
	if err != nil {
		t.Fatalf("new group failed: %v", err)
	}
	second, err := mesh.NewVertexGroup("Chain.001")
	if err != nil {
		t.Fatalf("new group failed: %v", err)
	}
	if first.Index() != 0 || second.Index() != 1 {
		t.Fatalf("index mismatch: %d %d", first.Index(), second.Index())
	}
	if _, err := mesh.NewVertexGroup("Chain.000"); !merrors.IsInvalidInput(err) {
		t.Fatalf("duplicate group should fail: %v", err)
	}
}

func TestRemoveVertexGroupReindexesWeights(t *testing.T) {
	mesh := NewMesh()
	for _, name := range []string{"Chain.000", "Chain.001", "Chain.002"} {
		if _, err := mesh.NewVertexGroup(name); err != nil {
			t.Fatalf("new group failed: %v", err)
		}
	}
	vert := mesh.AppendVert(mmath.ZeroVec3(), false)
	mesh.Verts[vert].Deform = map[int]float64{0: 0.25, 1: 0.5, 2: 1.0}

	if !mesh.RemoveVertexGroup("Chain.001") {
		t.Fatalf("remove should report success")
	}
	if mesh.RemoveVertexGroup("Chain.001") {
		t.Fatalf("second remove should report absence")
	}

	last, err := mesh.GetVertexGroupByName("Chain.002")
	if err != nil {
		t.Fatalf("get group failed: %v", err)
	}
	if last.Index() != 1 {
		t.Fatalf("group index should shift down: %d", last.Index())
	}

	deform := mesh.Verts[vert].Deform
	if len(deform) != 2 {
		t.Fatalf("deform entry count mismatch: %v", deform)
	}
	if deform[0] != 0.25 {
		t.Fatalf("untouched weight changed: %v", deform)
	}
	if deform[1] != 1.0 {
		t.Fatalf("shifted weight mismatch: %v", deform)
	}
}

func TestWeightsForGroupCollectsAssignedVerts(t *testing.T) {
	mesh := NewMesh()
	if _, err := mesh.NewVertexGroup("Chain.000"); err != nil {
		t.Fatalf("new group failed: %v", err)
	}
	a := mesh.AppendVert(mmath.ZeroVec3(), false)
	b := mesh.AppendVert(mmath.NewVec3(1.0, 0.0, 0.0), false)
	mesh.Verts[a].Deform = map[int]float64{0: 1.0}

	weights, err := mesh.WeightsForGroup("Chain.000")
	if err != nil {
		t.Fatalf("weights failed: %v", err)
	}
	if len(weights) != 1 {
		t.Fatalf("weight count mismatch: %v", weights)
	}
	if weights[a] != 1.0 {
		t.Fatalf("weight value mismatch: %v", weights)
	}
	if _, assigned := weights[b]; assigned {
		t.Fatalf("unassigned vert should not appear: %v", weights)
	}
}
