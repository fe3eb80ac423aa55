// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/model"
	"github.com/miu200521358/mu_chain_rig/pkg/shared/base/logging"
)

const (
	minimumBoneCount = 1
	// locatorLengthRate はロケータのテール長のリンク長に対する比率。
	locatorLengthRate = 0.5
)

// chainAxis はボーン初期配置の進行軸(+X)。実行時位置はコンストレイントが担う。
var chainAxis = mmath.NewVec3(1.0, 0.0, 0.0)

// chainBuildPlan は検証済みのチェーン作成計画を表す。
type chainBuildPlan struct {
	armObj       *model.Object
	curveObj     *model.Object
	spline       *model.Spline
	boneCount    int
	baseName     string
	linkLength   float64
	splineLength float64
}

// PollBuildChain はチェーン作成コマンドの実行可否を返す。
// アクティブオブジェクトがアーマチュアであることを要求する。
func PollBuildChain(scene *model.Scene) bool {
	if scene == nil {
		return false
	}
	active, err := scene.ActiveObject()
	if err != nil {
		return false
	}
	return active.Type == model.ObjectTypeArmature
}

// BuildChain はカーブ追従ボーンチェーンをアクティブアーマチュアへ作成する。
// 検証をすべて終えてから変更を開始するため、失敗時はシーンへ影響しない。
func (uc *ChainRigUsecase) BuildChain(request BuildChainRequest) (*BuildChainResult, error) {
	plan, err := validateBuildChainRequest(request)
	if err != nil {
		return nil, err
	}
	reportBuildChainProgress(request.ProgressReporter, BuildChainProgressEvent{
		Type:      BuildChainProgressEventTypeInputValidated,
		BoneCount: plan.boneCount,
	})

	if err := createChainBones(request.Scene, plan); err != nil {
		return nil, fmt.Errorf("チェーンボーン作成に失敗しました: %w", err)
	}
	reportBuildChainProgress(request.ProgressReporter, BuildChainProgressEvent{
		Type:      BuildChainProgressEventTypeBonesCreated,
		BoneCount: plan.boneCount,
	})

	if err := attachChainConstraints(plan); err != nil {
		return nil, fmt.Errorf("コンストレイント付与に失敗しました: %w", err)
	}
	reportBuildChainProgress(request.ProgressReporter, BuildChainProgressEvent{
		Type:      BuildChainProgressEventTypeConstraintsAttached,
		BoneCount: plan.boneCount,
	})

	result := newBuildChainResult(plan)
	logBuildChainInfo("チェーン作成完了: bones=%d linkLength=%.4f curve=%s",
		plan.boneCount, plan.linkLength, plan.curveObj.Name())
	return result, nil
}

// validateBuildChainRequest はチェーン作成要求を検証し、作成計画を返す。
func validateBuildChainRequest(request BuildChainRequest) (*chainBuildPlan, error) {
	scene := request.Scene
	if scene == nil {
		return nil, merrors.NewInvalidContextError("シーンが未設定です")
	}
	armObj, err := scene.ActiveObject()
	if err != nil {
		return nil, err
	}
	if armObj.Type != model.ObjectTypeArmature || armObj.Armature == nil {
		return nil, merrors.NewInvalidContextError("アクティブオブジェクトがアーマチュアではありません: %s", armObj.Name())
	}

	if request.BoneCount < minimumBoneCount {
		return nil, merrors.NewInvalidInputError("ボーン数は%d以上を指定してください: %d", minimumBoneCount, request.BoneCount)
	}
	baseName := request.BoneName
	if baseName == "" {
		baseName = DefaultBoneName
	}
	if err := validateBaseName(baseName); err != nil {
		return nil, err
	}

	curveObj, err := scene.GetObjectByName(request.CurveName)
	if err != nil {
		return nil, merrors.NewInvalidInputError("カーブオブジェクトが不正です: %s", request.CurveName)
	}
	if curveObj.Type != model.ObjectTypeCurve || curveObj.Curve == nil {
		return nil, merrors.NewInvalidInputError("カーブオブジェクトではありません: %s", request.CurveName)
	}
	spline, found := curveObj.Curve.FirstSpline()
	if !found {
		return nil, merrors.NewInvalidInputError("カーブには1つ以上のスプラインが必要です: %s", request.CurveName)
	}

	// 生成予定の全ボーン名を変更開始前に検査し、部分的な作成を防ぐ。
	for i := 0; i < request.BoneCount; i++ {
		for _, name := range []string{ChainBoneName(baseName, i), ChainLocatorName(baseName, i)} {
			if armObj.Armature.Bones.ContainsByName(name) {
				return nil, merrors.NewInvalidInputError("同名ボーンが既に存在します: %s", name)
			}
		}
	}

	splineLength := spline.CalcLength()
	return &chainBuildPlan{
		armObj:       armObj,
		curveObj:     curveObj,
		spline:       spline,
		boneCount:    request.BoneCount,
		baseName:     baseName,
		linkLength:   splineLength / float64(request.BoneCount),
		splineLength: splineLength,
	}, nil
}

// createChainBones は構造編集モードでチェーンボーンとロケータを作成する。
func createChainBones(scene *model.Scene, plan *chainBuildPlan) error {
	scope, err := plan.armObj.EnterMode(model.ModeEdit)
	if err != nil {
		return err
	}
	defer scope.Restore()

	editBones, err := plan.armObj.EditBones()
	if err != nil {
		return err
	}

	// ワールド座標の配置をアーマチュアローカル空間へ写す。
	space := plan.armObj.MatrixWorld().Inverted()
	cursor := scene.CursorPosition
	for i := 0; i < plan.boneCount; i++ {
		bone := model.NewBone(ChainBoneName(plan.baseName, i))
		bone.Head = space.MuledPoint(cursor.Added(chainAxis.MuledScalar(plan.linkLength * float64(i))))
		bone.Tail = space.MuledPoint(cursor.Added(chainAxis.MuledScalar(plan.linkLength * float64(i+1))))
		if i > 0 {
			bone.ParentName = ChainBoneName(plan.baseName, i-1)
		}
		if err := editBones.Append(bone); err != nil {
			return err
		}

		locator := model.NewBone(ChainLocatorName(plan.baseName, i))
		locator.UseDeform = false
		locator.IsLocator = true
		locator.Head = space.MuledPoint(mmath.ZeroVec3())
		locator.Tail = space.MuledPoint(chainAxis.MuledScalar(plan.linkLength * locatorLengthRate))
		if err := editBones.Append(locator); err != nil {
			return err
		}
	}
	return nil
}

// attachChainConstraints はロケータとチェーンボーンへコンストレイントを付与する。
// 呼び出し時のモードに依存しないよう、ポーズモードのスコープ内で付与する。
func attachChainConstraints(plan *chainBuildPlan) error {
	scope, err := plan.armObj.EnterMode(model.ModePose)
	if err != nil {
		return err
	}
	defer scope.Restore()

	pose, err := plan.armObj.Pose()
	if err != nil {
		return err
	}

	for i := 0; i < plan.boneCount; i++ {
		locatorPose, err := pose.GetBoneByName(ChainLocatorName(plan.baseName, i))
		if err != nil {
			return err
		}
		follow := locatorPose.NewConstraint(model.ConstraintTypeFollowPath)
		follow.TargetObjectName = plan.curveObj.Name()
		follow.Offset = float64(i) * plan.curveObj.Curve.PathDuration / float64(plan.boneCount)
		follow.UseCurveFollow = true
		follow.ForwardAxis = model.TrackAxisNegativeY
		follow.UpAxis = model.UpAxisZ

		bonePose, err := pose.GetBoneByName(ChainBoneName(plan.baseName, i))
		if err != nil {
			return err
		}
		copyLocation := bonePose.NewConstraint(model.ConstraintTypeCopyLocation)
		copyLocation.TargetObjectName = plan.armObj.Name()
		copyLocation.Subtarget = ChainLocatorName(plan.baseName, i)

		// 終端ボーンは先頭ロケータへ折り返して注視する。閉カーブ前提の構成を保持する。
		track := bonePose.NewConstraint(model.ConstraintTypeTrackTo)
		track.TargetObjectName = plan.armObj.Name()
		track.Subtarget = ChainLocatorName(plan.baseName, (i+1)%plan.boneCount)
		track.UseTargetZ = true
	}
	return nil
}

// newBuildChainResult は作成計画から結果を組み立てる。
func newBuildChainResult(plan *chainBuildPlan) *BuildChainResult {
	result := &BuildChainResult{
		BoneNames:    make([]string, 0, plan.boneCount),
		LocatorNames: make([]string, 0, plan.boneCount),
		LinkLength:   plan.linkLength,
		SplineLength: plan.splineLength,
		WarningIDs:   []string{},
	}
	for i := 0; i < plan.boneCount; i++ {
		result.BoneNames = append(result.BoneNames, ChainBoneName(plan.baseName, i))
		result.LocatorNames = append(result.LocatorNames, ChainLocatorName(plan.baseName, i))
	}
	if !plan.spline.Cyclic {
		result.WarningIDs = append(result.WarningIDs, model.RigWarningOpenCurveWrapTrack)
	}
	return result
}

// logBuildChainInfo はチェーン作成のINFOログを出力する。
func logBuildChainInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
	if logger.IsVerboseEnabled(logging.VERBOSE_INDEX_RIG) {
		logger.Verbose(logging.VERBOSE_INDEX_RIG, "[INFO] "+format, params...)
	}
}
