// 指示: miu200521358
package model

import (
	"testing"

	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/mmath"
)

func TestBoneCollectionAppendAndGet(t *testing.T) {
	bones := NewBoneCollection()
	root := NewBone("Chain.000")
	if err := bones.Append(root); err != nil {
		t.Fatalf("append root failed: %v", err)
	}

	child := NewBone("Chain.001")
	child.ParentName = "Chain.000"
	if err := bones.Append(child); err != nil {
		t.Fatalf("append child failed: %v", err)
	}

	got, err := bones.GetByName("Chain.001")
	if err != nil {
		t.Fatalf("get by name failed: %v", err)
	}
	if got.ParentName != "Chain.000" {
		t.Fatalf("parent mismatch: %s", got.ParentName)
	}
	if first, ok := root.FirstChildName(); !ok || first != "Chain.001" {
		t.Fatalf("first child mismatch: %s %v", first, ok)
	}
}

func TestBoneCollectionRejectsDuplicateAndMissingParent(t *testing.T) {
	bones := NewBoneCollection()
	if err := bones.Append(NewBone("Chain.000")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := bones.Append(NewBone("Chain.000")); !merrors.IsInvalidInput(err) {
		t.Fatalf("duplicate name should fail: %v", err)
	}

	orphan := NewBone("Chain.002")
	orphan.ParentName = "nothing"
	if err := bones.Append(orphan); !merrors.IsInvalidInput(err) {
		t.Fatalf("missing parent should fail: %v", err)
	}
}

func TestBoneMidpoint(t *testing.T) {
	bone := NewBone("Chain.000")
	bone.Head = mmath.NewVec3(0.0, 0.0, 0.0)
	bone.Tail = mmath.NewVec3(2.0, 4.0, -2.0)
	if !bone.Midpoint().NearEquals(mmath.NewVec3(1.0, 2.0, -1.0), 1e-9) {
		t.Fatalf("midpoint mismatch: %+v", bone.Midpoint())
	}
}

func TestDeformBoneNamesExcludeLocators(t *testing.T) {
	armature := NewArmature()
	deform := NewBone("Chain.000")
	if err := armature.Bones.Append(deform); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	locator := NewBone("Chain.000.Locator")
	locator.UseDeform = false
	locator.IsLocator = true
	if err := armature.Bones.Append(locator); err != nil {
		t.Fatalf("append locator failed: %v", err)
	}

	names := armature.DeformBoneNames()
	if len(names) != 1 || names[0] != "Chain.000" {
		t.Fatalf("deform names mismatch: %v", names)
	}
}

func TestChildNamesKeepAppendOrder(t *testing.T) {
	bones := NewBoneCollection()
	if err := bones.Append(NewBone("Root")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	for _, name := range []string{"A", "B", "C"} {
		bone := NewBone(name)
		bone.ParentName = "Root"
		if err := bones.Append(bone); err != nil {
			t.Fatalf("append %s failed: %v", name, err)
		}
	}
	root, _ := bones.GetByName("Root")
	children := root.ChildNames()
	if len(children) != 3 || children[0] != "A" || children[1] != "B" || children[2] != "C" {
		t.Fatalf("children order mismatch: %v", children)
	}
}
