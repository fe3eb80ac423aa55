// 指示: miu200521358
package minteractor

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/model"
)

// chainMeshArrayProgressRecorder は進捗イベントを記録する。
type chainMeshArrayProgressRecorder struct {
	events []ChainMeshArrayProgressEvent
}

func (r *chainMeshArrayProgressRecorder) ReportChainMeshArrayProgress(event ChainMeshArrayProgressEvent) {
	r.events = append(r.events, event)
}

// appendChainBone はテスト用チェーンボーンを追加する。
func appendChainBone(t *testing.T, armature *model.Armature, name, parentName string, head, tail mmath.Vec3) *model.Bone {
	t.Helper()
	bone := model.NewBone(name)
	bone.ParentName = parentName
	bone.Head = head
	bone.Tail = tail
	if err := armature.Bones.Append(bone); err != nil {
		t.Fatalf("append bone %s failed: %v", name, err)
	}
	return bone
}

// newArrayTestScene はY軸に並ぶ3連ボーンのアーマチュアと、選択済み三角形を持つ
// 編集モードのメッシュから成るテストシーンを返す。
func newArrayTestScene(t *testing.T) *model.Scene {
	t.Helper()
	scene := model.NewScene()

	armObj := model.NewObject("Armature", model.ObjectTypeArmature)
	appendChainBone(t, armObj.Armature, "Tail.000", "", mmath.NewVec3(0.0, 0.0, 0.0), mmath.NewVec3(0.0, 2.0, 0.0))
	appendChainBone(t, armObj.Armature, "Tail.001", "Tail.000", mmath.NewVec3(0.0, 2.0, 0.0), mmath.NewVec3(0.0, 4.0, 0.0))
	appendChainBone(t, armObj.Armature, "Tail.002", "Tail.001", mmath.NewVec3(0.0, 4.0, 0.0), mmath.NewVec3(0.0, 6.0, 0.0))
	if err := scene.AppendObject(armObj); err != nil {
		t.Fatalf("append armature failed: %v", err)
	}

	meshObj := model.NewObject("Cube", model.ObjectTypeMesh)
	meshObj.Modifiers = append(meshObj.Modifiers, &model.Modifier{
		Name:             "Armature",
		Type:             model.ModifierTypeArmature,
		TargetObjectName: "Armature",
	})
	mesh := meshObj.Mesh
	a := mesh.AppendVert(mmath.NewVec3(0.0, 0.0, 0.0), true)
	b := mesh.AppendVert(mmath.NewVec3(1.0, 0.0, 0.0), true)
	c := mesh.AppendVert(mmath.NewVec3(0.0, 0.0, 1.0), true)
	mesh.AppendEdge(a, b, true)
	mesh.AppendEdge(b, c, true)
	mesh.AppendEdge(c, a, true)
	mesh.AppendFace([]int{a, b, c}, true)
	if err := scene.AppendObject(meshObj); err != nil {
		t.Fatalf("append mesh failed: %v", err)
	}
	if _, err := meshObj.EnterMode(model.ModeEdit); err != nil {
		t.Fatalf("enter edit failed: %v", err)
	}

	scene.ActiveObjectName = "Cube"
	return scene
}

func TestCreateChainMeshArrayDuplicatesPerChainBone(t *testing.T) {
	scene := newArrayTestScene(t)
	uc := NewChainRigUsecase(ChainRigUsecaseDeps{})

	result, err := uc.CreateChainMeshArray(CreateChainMeshArrayRequest{
		Scene:        scene,
		RootBoneName: "Tail.000",
	})
	if err != nil {
		t.Fatalf("create array failed: %v", err)
	}

	meshObj, _ := scene.GetObjectByName("Cube")
	mesh := meshObj.Mesh

	// チェーン長3、テンプレート3頂点: 複製頂点は(3-1)*3。
	if result.TemplateVertCount != 3 || result.DuplicatedVertCount != 6 {
		t.Fatalf("vert counts mismatch: %+v", result)
	}
	if len(mesh.Verts) != 9 {
		t.Fatalf("total vert count mismatch: %d", len(mesh.Verts))
	}
	if len(mesh.Faces) != 3 || len(mesh.Edges) != 9 {
		t.Fatalf("face/edge counts mismatch: faces=%d edges=%d", len(mesh.Faces), len(mesh.Edges))
	}

	// ボーンごとに頂点グループが1つずつ。
	if len(mesh.VertexGroupValues()) != 3 {
		t.Fatalf("group count mismatch: %d", len(mesh.VertexGroupValues()))
	}

	// 各グループは自分の断片の頂点のみをウェイト1.0で持つ。
	for groupName, wantVerts := range map[string][]int{
		"Tail.000": {0, 1, 2},
		"Tail.001": {3, 4, 5},
		"Tail.002": {6, 7, 8},
	} {
		weights, err := mesh.WeightsForGroup(groupName)
		if err != nil {
			t.Fatalf("weights for %s failed: %v", groupName, err)
		}
		if len(weights) != len(wantVerts) {
			t.Fatalf("group %s vert count mismatch: %v", groupName, weights)
		}
		for _, vertIndex := range wantVerts {
			if !scalar.EqualWithinAbs(weights[vertIndex], 1.0, 1e-12) {
				t.Fatalf("group %s weight mismatch at %d: %v", groupName, vertIndex, weights)
			}
		}
	}
}

func TestCreateChainMeshArrayKeepsDuplicateWeightsExclusive(t *testing.T) {
	scene := newArrayTestScene(t)
	uc := NewChainRigUsecase(ChainRigUsecaseDeps{})

	if _, err := uc.CreateChainMeshArray(CreateChainMeshArrayRequest{
		Scene:        scene,
		RootBoneName: "Tail.000",
	}); err != nil {
		t.Fatalf("create array failed: %v", err)
	}

	meshObj, _ := scene.GetObjectByName("Cube")
	// ルートグループの割り当てを最後へ回しているため、複製頂点はルートウェイトを持たない。
	for _, vert := range meshObj.Mesh.Verts {
		if len(vert.Deform) != 1 {
			t.Fatalf("each vert should belong to exactly one group: %v", vert.Deform)
		}
	}
}

func TestCreateChainMeshArrayTranslatesToBoneMidpoints(t *testing.T) {
	scene := newArrayTestScene(t)
	uc := NewChainRigUsecase(ChainRigUsecaseDeps{})

	if _, err := uc.CreateChainMeshArray(CreateChainMeshArrayRequest{
		Scene:        scene,
		RootBoneName: "Tail.000",
	}); err != nil {
		t.Fatalf("create array failed: %v", err)
	}

	meshObj, _ := scene.GetObjectByName("Cube")
	mesh := meshObj.Mesh

	// ボーン中点差分は(0,2,0)刻み。複製iの頂点はテンプレート+(pi-p0)。
	for copyIndex := 1; copyIndex < 3; copyIndex++ {
		offset := mmath.NewVec3(0.0, 2.0*float64(copyIndex), 0.0)
		for templateIndex := 0; templateIndex < 3; templateIndex++ {
			want := mesh.Verts[templateIndex].Position.Added(offset)
			got := mesh.Verts[copyIndex*3+templateIndex].Position
			if !got.NearEquals(want, 1e-9) {
				t.Fatalf("copy %d vert %d position mismatch: got=%+v want=%+v", copyIndex, templateIndex, got, want)
			}
		}
	}
}

func TestCreateChainMeshArrayMapsOffsetThroughObjectTransforms(t *testing.T) {
	scene := newArrayTestScene(t)
	meshObj, _ := scene.GetObjectByName("Cube")
	// メッシュを2倍拡大: アーマチュア空間の移動量はメッシュローカルでは半分になる。
	meshObj.Scale = mmath.NewVec3(2.0, 2.0, 2.0)

	uc := NewChainRigUsecase(ChainRigUsecaseDeps{})
	if _, err := uc.CreateChainMeshArray(CreateChainMeshArrayRequest{
		Scene:        scene,
		RootBoneName: "Tail.000",
	}); err != nil {
		t.Fatalf("create array failed: %v", err)
	}

	mesh := meshObj.Mesh
	want := mesh.Verts[0].Position.Added(mmath.NewVec3(0.0, 1.0, 0.0))
	if !mesh.Verts[3].Position.NearEquals(want, 1e-9) {
		t.Fatalf("scaled offset mismatch: %+v", mesh.Verts[3].Position)
	}
}

func TestCreateChainMeshArrayMissingModifierLeavesMeshUntouched(t *testing.T) {
	scene := newArrayTestScene(t)
	meshObj, _ := scene.GetObjectByName("Cube")
	meshObj.Modifiers = nil

	uc := NewChainRigUsecase(ChainRigUsecaseDeps{})
	_, err := uc.CreateChainMeshArray(CreateChainMeshArrayRequest{
		Scene:        scene,
		RootBoneName: "Tail.000",
	})
	if !merrors.IsInvalidContext(err) {
		t.Fatalf("missing modifier should report invalid context: %v", err)
	}

	if len(meshObj.Mesh.Verts) != 3 {
		t.Fatalf("failed command should not add verts: %d", len(meshObj.Mesh.Verts))
	}
	if len(meshObj.Mesh.VertexGroupValues()) != 0 {
		t.Fatalf("failed command should not add groups: %d", len(meshObj.Mesh.VertexGroupValues()))
	}
}

func TestCreateChainMeshArrayMissingRootBoneLeavesMeshUntouched(t *testing.T) {
	scene := newArrayTestScene(t)
	uc := NewChainRigUsecase(ChainRigUsecaseDeps{})

	_, err := uc.CreateChainMeshArray(CreateChainMeshArrayRequest{
		Scene:        scene,
		RootBoneName: "Missing",
	})
	if !merrors.IsInvalidContext(err) {
		t.Fatalf("missing root bone should report invalid context: %v", err)
	}

	meshObj, _ := scene.GetObjectByName("Cube")
	if len(meshObj.Mesh.Verts) != 3 || len(meshObj.Mesh.VertexGroupValues()) != 0 {
		t.Fatalf("failed command should not mutate mesh")
	}
}

func TestCreateChainMeshArrayRequiresEditMode(t *testing.T) {
	scene := newArrayTestScene(t)
	meshObj, _ := scene.GetObjectByName("Cube")
	if err := meshObj.SetMode(model.ModeObject); err != nil {
		t.Fatalf("set mode failed: %v", err)
	}

	uc := NewChainRigUsecase(ChainRigUsecaseDeps{})
	_, err := uc.CreateChainMeshArray(CreateChainMeshArrayRequest{
		Scene:        scene,
		RootBoneName: "Tail.000",
	})
	if !merrors.IsInvalidContext(err) {
		t.Fatalf("object mode mesh should report invalid context: %v", err)
	}
}

func TestCreateChainMeshArrayWalksFirstChildOnly(t *testing.T) {
	scene := newArrayTestScene(t)
	armObj, _ := scene.GetObjectByName("Armature")
	// Tail.001へ2本目の子を追加する。走査は先頭の子のみを辿る。
	appendChainBone(t, armObj.Armature, "Tail.001.Branch", "Tail.001",
		mmath.NewVec3(1.0, 2.0, 0.0), mmath.NewVec3(1.0, 4.0, 0.0))

	uc := NewChainRigUsecase(ChainRigUsecaseDeps{})
	result, err := uc.CreateChainMeshArray(CreateChainMeshArrayRequest{
		Scene:        scene,
		RootBoneName: "Tail.000",
	})
	if err != nil {
		t.Fatalf("create array failed: %v", err)
	}

	if len(result.ChainBoneNames) != 3 {
		t.Fatalf("chain length mismatch: %v", result.ChainBoneNames)
	}
	for i, want := range []string{"Tail.000", "Tail.001", "Tail.002"} {
		if result.ChainBoneNames[i] != want {
			t.Fatalf("chain order mismatch: %v", result.ChainBoneNames)
		}
	}
	if result.DroppedBranchCount != 1 {
		t.Fatalf("dropped branch count mismatch: %d", result.DroppedBranchCount)
	}
	if len(result.WarningIDs) != 1 || result.WarningIDs[0] != model.RigWarningChainBranchDropped {
		t.Fatalf("dropped branch should warn: %v", result.WarningIDs)
	}
}

func TestCreateChainMeshArrayRecreatesExistingGroups(t *testing.T) {
	scene := newArrayTestScene(t)
	meshObj, _ := scene.GetObjectByName("Cube")
	if _, err := meshObj.Mesh.NewVertexGroup("Tail.000"); err != nil {
		t.Fatalf("new group failed: %v", err)
	}
	// 既存グループの古いウェイトは作り直しで消える。
	meshObj.Mesh.Verts[1].Deform = map[int]float64{0: 0.5}

	uc := NewChainRigUsecase(ChainRigUsecaseDeps{})
	if _, err := uc.CreateChainMeshArray(CreateChainMeshArrayRequest{
		Scene:        scene,
		RootBoneName: "Tail.000",
	}); err != nil {
		t.Fatalf("create array failed: %v", err)
	}

	weights, err := meshObj.Mesh.WeightsForGroup("Tail.000")
	if err != nil {
		t.Fatalf("weights failed: %v", err)
	}
	for vertIndex, weight := range weights {
		if !scalar.EqualWithinAbs(weight, 1.0, 1e-12) {
			t.Fatalf("stale weight should be replaced at %d: %f", vertIndex, weight)
		}
	}
}

func TestCreateChainMeshArraySingleBoneChain(t *testing.T) {
	scene := newArrayTestScene(t)
	uc := NewChainRigUsecase(ChainRigUsecaseDeps{})

	result, err := uc.CreateChainMeshArray(CreateChainMeshArrayRequest{
		Scene:        scene,
		RootBoneName: "Tail.002",
	})
	if err != nil {
		t.Fatalf("create array failed: %v", err)
	}

	meshObj, _ := scene.GetObjectByName("Cube")
	if result.DuplicatedVertCount != 0 || len(meshObj.Mesh.Verts) != 3 {
		t.Fatalf("terminal root should not duplicate: %+v", result)
	}
	weights, err := meshObj.Mesh.WeightsForGroup("Tail.002")
	if err != nil {
		t.Fatalf("weights failed: %v", err)
	}
	if len(weights) != 3 {
		t.Fatalf("template should be weighted to root group: %v", weights)
	}
}

func TestCreateChainMeshArrayRefreshesTriangleCount(t *testing.T) {
	scene := newArrayTestScene(t)
	uc := NewChainRigUsecase(ChainRigUsecaseDeps{})

	if _, err := uc.CreateChainMeshArray(CreateChainMeshArrayRequest{
		Scene:        scene,
		RootBoneName: "Tail.000",
	}); err != nil {
		t.Fatalf("create array failed: %v", err)
	}

	meshObj, _ := scene.GetObjectByName("Cube")
	if meshObj.Mesh.LoopTriangleCount != 3 {
		t.Fatalf("triangle count should be refreshed: %d", meshObj.Mesh.LoopTriangleCount)
	}
}

func TestCreateChainMeshArrayReportsProgressInOrder(t *testing.T) {
	scene := newArrayTestScene(t)
	recorder := &chainMeshArrayProgressRecorder{}
	uc := NewChainRigUsecase(ChainRigUsecaseDeps{})

	if _, err := uc.CreateChainMeshArray(CreateChainMeshArrayRequest{
		Scene:            scene,
		RootBoneName:     "Tail.000",
		ProgressReporter: recorder,
	}); err != nil {
		t.Fatalf("create array failed: %v", err)
	}

	wantTypes := []ChainMeshArrayProgressEventType{
		ChainMeshArrayProgressEventTypeChainResolved,
		ChainMeshArrayProgressEventTypeGroupsPrepared,
		ChainMeshArrayProgressEventTypeFragmentDuplicated,
		ChainMeshArrayProgressEventTypeFragmentDuplicated,
		ChainMeshArrayProgressEventTypeCommitted,
	}
	if len(recorder.events) != len(wantTypes) {
		t.Fatalf("event count mismatch: %d", len(recorder.events))
	}
	for i, want := range wantTypes {
		if recorder.events[i].Type != want {
			t.Fatalf("event %d mismatch: %s", i, recorder.events[i].Type)
		}
	}
	last := recorder.events[len(recorder.events)-1]
	if last.DuplicateDone != 2 || last.DuplicateTotal != 2 {
		t.Fatalf("committed event counters mismatch: %+v", last)
	}
}

func TestPollCreateChainMeshArray(t *testing.T) {
	scene := newArrayTestScene(t)
	if !PollCreateChainMeshArray(scene) {
		t.Fatalf("edit mode mesh should poll true")
	}

	meshObj, _ := scene.GetObjectByName("Cube")
	if err := meshObj.SetMode(model.ModeObject); err != nil {
		t.Fatalf("set mode failed: %v", err)
	}
	if PollCreateChainMeshArray(scene) {
		t.Fatalf("object mode mesh should poll false")
	}

	scene.ActiveObjectName = "Armature"
	if PollCreateChainMeshArray(scene) {
		t.Fatalf("armature active should poll false")
	}
}
