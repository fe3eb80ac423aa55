// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/model"
	"github.com/miu200521358/mu_chain_rig/pkg/shared/base/logging"
)

const (
	// chainMeshWeight は複製断片へ割り当てるウェイト値。各断片は自ボーンのみで変形する。
	chainMeshWeight = 1.0
)

// chainMeshArrayPlan は検証済みのメッシュ複製計画を表す。
type chainMeshArrayPlan struct {
	meshObj            *model.Object
	armObj             *model.Object
	chain              []*model.Bone
	droppedBranchCount int
}

// PollCreateChainMeshArray はメッシュ複製コマンドの実行可否を返す。
// アクティブオブジェクトが構造編集モード中のメッシュであることを要求する。
func PollCreateChainMeshArray(scene *model.Scene) bool {
	if scene == nil {
		return false
	}
	active, err := scene.ActiveObject()
	if err != nil {
		return false
	}
	return active.Type == model.ObjectTypeMesh && active.Mode() == model.ModeEdit
}

// CreateChainMeshArray は選択中ジオメトリをボーンチェーンに沿って複製し、ボーン別ウェイトを割り当てる。
// 検証をすべて終えてから変更を開始するため、失敗時はシーンへ影響しない。
func (uc *ChainRigUsecase) CreateChainMeshArray(request CreateChainMeshArrayRequest) (*CreateChainMeshArrayResult, error) {
	plan, err := validateChainMeshArrayRequest(request)
	if err != nil {
		return nil, err
	}
	reportChainMeshArrayProgress(request.ProgressReporter, ChainMeshArrayProgressEvent{
		Type:        ChainMeshArrayProgressEventTypeChainResolved,
		ChainLength: len(plan.chain),
	})

	recreateChainVertexGroups(plan.meshObj.Mesh, plan.chain)
	reportChainMeshArrayProgress(request.ProgressReporter, ChainMeshArrayProgressEvent{
		Type:        ChainMeshArrayProgressEventTypeGroupsPrepared,
		ChainLength: len(plan.chain),
	})

	templateVertCount, err := duplicateFragmentsAlongChain(plan, request.ProgressReporter)
	if err != nil {
		return nil, fmt.Errorf("チェーン複製に失敗しました: %w", err)
	}
	reportChainMeshArrayProgress(request.ProgressReporter, ChainMeshArrayProgressEvent{
		Type:           ChainMeshArrayProgressEventTypeCommitted,
		ChainLength:    len(plan.chain),
		DuplicateDone:  len(plan.chain) - 1,
		DuplicateTotal: len(plan.chain) - 1,
	})

	result := newChainMeshArrayResult(plan, templateVertCount)
	logChainMeshArrayInfo("チェーン複製完了: chain=%d templateVerts=%d duplicatedVerts=%d",
		len(plan.chain), templateVertCount, result.DuplicatedVertCount)
	return result, nil
}

// validateChainMeshArrayRequest はメッシュ複製要求を検証し、複製計画を返す。
func validateChainMeshArrayRequest(request CreateChainMeshArrayRequest) (*chainMeshArrayPlan, error) {
	scene := request.Scene
	if scene == nil {
		return nil, merrors.NewInvalidContextError("シーンが未設定です")
	}
	meshObj, err := scene.ActiveObject()
	if err != nil {
		return nil, err
	}
	if meshObj.Type != model.ObjectTypeMesh || meshObj.Mesh == nil {
		return nil, merrors.NewInvalidContextError("アクティブオブジェクトがメッシュではありません: %s", meshObj.Name())
	}
	if meshObj.Mode() != model.ModeEdit {
		return nil, merrors.NewInvalidContextError("メッシュが構造編集モードではありません: %s", meshObj.Name())
	}

	armObj, err := scene.ArmatureObjectForMesh(meshObj)
	if err != nil {
		return nil, err
	}

	rootBone, err := armObj.Armature.Bones.GetByName(request.RootBoneName)
	if err != nil {
		return nil, merrors.NewInvalidContextError("ルートボーンが見つかりません: %s", request.RootBoneName)
	}

	chain, droppedBranchCount, err := walkDeformChain(armObj.Armature.Bones, rootBone)
	if err != nil {
		return nil, err
	}

	return &chainMeshArrayPlan{
		meshObj:            meshObj,
		armObj:             armObj,
		chain:              chain,
		droppedBranchCount: droppedBranchCount,
	}, nil
}

// walkDeformChain はルートから先頭の子のみを辿った変形チェーンを返す。
// 先頭以外の子分岐は数えるだけで無言で無視する。従来挙動の保持が目的。
func walkDeformChain(bones *model.BoneCollection, rootBone *model.Bone) ([]*model.Bone, int, error) {
	chain := []*model.Bone{rootBone}
	droppedBranchCount := 0
	for {
		current := chain[len(chain)-1]
		childNames := current.ChildNames()
		if len(childNames) == 0 {
			break
		}
		droppedBranchCount += len(childNames) - 1
		child, err := bones.GetByName(childNames[0])
		if err != nil {
			return nil, 0, err
		}
		chain = append(chain, child)
	}
	return chain, droppedBranchCount, nil
}

// recreateChainVertexGroups はチェーン各ボーンの頂点グループを空で作り直す。
func recreateChainVertexGroups(mesh *model.Mesh, chain []*model.Bone) {
	for _, bone := range chain {
		mesh.RemoveVertexGroup(bone.Name())
		// 直前に同名を削除しているため作成は失敗しない。
		if _, err := mesh.NewVertexGroup(bone.Name()); err != nil {
			logChainMeshArrayInfo("頂点グループ再作成をスキップしました: %s (%v)", bone.Name(), err)
		}
	}
}

// duplicateFragmentsAlongChain は選択断片をチェーンへ沿って複製し、ウェイトを割り当てる。
func duplicateFragmentsAlongChain(plan *chainMeshArrayPlan, reporter IChainMeshArrayProgressReporter) (int, error) {
	em, err := model.NewEditMesh(plan.meshObj)
	if err != nil {
		return 0, err
	}
	defer em.Free()

	template, err := em.CaptureSelectedGeometry()
	if err != nil {
		return 0, err
	}

	mesh := plan.meshObj.Mesh
	boneSpace := plan.meshObj.MatrixWorld().Inverted().Muled(plan.armObj.MatrixWorld())
	rootMidpoint := plan.chain[0].Midpoint()

	duplicateTotal := len(plan.chain) - 1
	for i, bone := range plan.chain[1:] {
		duplicated, err := em.Duplicate(template)
		if err != nil {
			return 0, err
		}

		offset := bone.Midpoint().Subed(rootMidpoint)
		if err := em.TranslateVerts(duplicated.VertIndexes, offset, boneSpace); err != nil {
			return 0, err
		}

		group, err := mesh.GetVertexGroupByName(bone.Name())
		if err != nil {
			return 0, err
		}
		if err := em.AssignDeformWeight(group.Index(), duplicated.VertIndexes, chainMeshWeight); err != nil {
			return 0, err
		}
		reportChainMeshArrayProgress(reporter, ChainMeshArrayProgressEvent{
			Type:           ChainMeshArrayProgressEventTypeFragmentDuplicated,
			ChainLength:    len(plan.chain),
			DuplicateDone:  i + 1,
			DuplicateTotal: duplicateTotal,
		})
	}

	// 元テンプレートへのルートグループ割り当ては最後に行う。
	// 複製は既存ウェイトを引き継ぐため、先に割り当てると全複製へルートウェイトが漏れる。
	rootGroup, err := mesh.GetVertexGroupByName(plan.chain[0].Name())
	if err != nil {
		return 0, err
	}
	if err := em.AssignDeformWeight(rootGroup.Index(), template.VertIndexes, chainMeshWeight); err != nil {
		return 0, err
	}

	if err := em.Commit(); err != nil {
		return 0, err
	}
	return template.VertCount(), nil
}

// newChainMeshArrayResult は複製計画から結果を組み立てる。
func newChainMeshArrayResult(plan *chainMeshArrayPlan, templateVertCount int) *CreateChainMeshArrayResult {
	result := &CreateChainMeshArrayResult{
		ChainBoneNames:      make([]string, 0, len(plan.chain)),
		VertexGroupNames:    make([]string, 0, len(plan.chain)),
		TemplateVertCount:   templateVertCount,
		DuplicatedVertCount: (len(plan.chain) - 1) * templateVertCount,
		DroppedBranchCount:  plan.droppedBranchCount,
		WarningIDs:          []string{},
	}
	for _, bone := range plan.chain {
		result.ChainBoneNames = append(result.ChainBoneNames, bone.Name())
		result.VertexGroupNames = append(result.VertexGroupNames, bone.Name())
	}
	if plan.droppedBranchCount > 0 {
		result.WarningIDs = append(result.WarningIDs, model.RigWarningChainBranchDropped)
	}
	return result
}

// logChainMeshArrayInfo はメッシュ複製のINFOログを出力する。
func logChainMeshArrayInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
	if logger.IsVerboseEnabled(logging.VERBOSE_INDEX_RIG) {
		logger.Verbose(logging.VERBOSE_INDEX_RIG, "[INFO] "+format, params...)
	}
}
