// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_chain_rig/pkg/domain/model"
)

// BuildChainProgressEventType はチェーン作成の進捗イベント種別を表す。
type BuildChainProgressEventType string

const (
	// BuildChainProgressEventTypeInputValidated は入力検証完了イベントを表す。
	BuildChainProgressEventTypeInputValidated BuildChainProgressEventType = "input_validated"
	// BuildChainProgressEventTypeBonesCreated はボーン・ロケータ作成完了イベントを表す。
	BuildChainProgressEventTypeBonesCreated BuildChainProgressEventType = "bones_created"
	// BuildChainProgressEventTypeConstraintsAttached はコンストレイント付与完了イベントを表す。
	BuildChainProgressEventTypeConstraintsAttached BuildChainProgressEventType = "constraints_attached"
)

// BuildChainProgressEvent はチェーン作成の進捗イベントを表す。
type BuildChainProgressEvent struct {
	Type      BuildChainProgressEventType
	BoneCount int
}

// IBuildChainProgressReporter はチェーン作成の進捗通知契約を表す。
type IBuildChainProgressReporter interface {
	// ReportBuildChainProgress はチェーン作成進捗を通知する。
	ReportBuildChainProgress(event BuildChainProgressEvent)
}

// reportBuildChainProgress は通知先が設定されている場合のみ進捗を通知する。
func reportBuildChainProgress(reporter IBuildChainProgressReporter, event BuildChainProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportBuildChainProgress(event)
}

// BuildChainRequest はチェーン作成要求を表す。
type BuildChainRequest struct {
	Scene            *model.Scene
	CurveName        string
	BoneCount        int
	BoneName         string
	ProgressReporter IBuildChainProgressReporter
}

// BuildChainResult はチェーン作成結果を表す。
type BuildChainResult struct {
	BoneNames    []string
	LocatorNames []string
	LinkLength   float64
	SplineLength float64
	WarningIDs   []string
}

// ChainMeshArrayProgressEventType はメッシュ複製の進捗イベント種別を表す。
type ChainMeshArrayProgressEventType string

const (
	// ChainMeshArrayProgressEventTypeChainResolved はチェーン解決完了イベントを表す。
	ChainMeshArrayProgressEventTypeChainResolved ChainMeshArrayProgressEventType = "chain_resolved"
	// ChainMeshArrayProgressEventTypeGroupsPrepared は頂点グループ再作成完了イベントを表す。
	ChainMeshArrayProgressEventTypeGroupsPrepared ChainMeshArrayProgressEventType = "groups_prepared"
	// ChainMeshArrayProgressEventTypeFragmentDuplicated は断片複製進行イベントを表す。
	ChainMeshArrayProgressEventTypeFragmentDuplicated ChainMeshArrayProgressEventType = "fragment_duplicated"
	// ChainMeshArrayProgressEventTypeCommitted はメッシュ編集コミット完了イベントを表す。
	ChainMeshArrayProgressEventTypeCommitted ChainMeshArrayProgressEventType = "committed"
)

// ChainMeshArrayProgressEvent はメッシュ複製の進捗イベントを表す。
type ChainMeshArrayProgressEvent struct {
	Type           ChainMeshArrayProgressEventType
	ChainLength    int
	DuplicateDone  int
	DuplicateTotal int
}

// IChainMeshArrayProgressReporter はメッシュ複製の進捗通知契約を表す。
type IChainMeshArrayProgressReporter interface {
	// ReportChainMeshArrayProgress はメッシュ複製進捗を通知する。
	ReportChainMeshArrayProgress(event ChainMeshArrayProgressEvent)
}

// reportChainMeshArrayProgress は通知先が設定されている場合のみ進捗を通知する。
func reportChainMeshArrayProgress(reporter IChainMeshArrayProgressReporter, event ChainMeshArrayProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportChainMeshArrayProgress(event)
}

// CreateChainMeshArrayRequest はメッシュ複製要求を表す。
type CreateChainMeshArrayRequest struct {
	Scene            *model.Scene
	RootBoneName     string
	ProgressReporter IChainMeshArrayProgressReporter
}

// CreateChainMeshArrayResult はメッシュ複製結果を表す。
type CreateChainMeshArrayResult struct {
	ChainBoneNames      []string
	VertexGroupNames    []string
	TemplateVertCount   int
	DuplicatedVertCount int
	DroppedBranchCount  int
	WarningIDs          []string
}
