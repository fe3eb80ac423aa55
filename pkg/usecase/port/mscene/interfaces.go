// 指示: miu200521358
// Package mscene はシーン入出力と列挙の契約を提供する。
package mscene

import (
	"github.com/miu200521358/mu_chain_rig/pkg/domain/model"
)

// ISceneReader はシーンドキュメントの読み込み契約を表す。
type ISceneReader interface {
	// CanLoad は読み込み可否を返す。
	CanLoad(path string) bool
	// Load はシーンドキュメントを読み込む。
	Load(path string) (*model.Scene, error)
}

// ISceneWriter はシーンドキュメントの書き込み契約を表す。
type ISceneWriter interface {
	// Save はシーンドキュメントを保存する。
	Save(path string, scene *model.Scene) error
}

// ISceneQuery はコマンド選択肢を列挙するシーン照会契約を表す。
// ホスト依存のドロップダウン構築を明示的な照会へ置き換える。
type ISceneQuery interface {
	// CurveObjectNames はシーン内のカーブオブジェクト名一覧を返す。
	CurveObjectNames() []string
	// DeformBoneNamesForMesh はメッシュを駆動するアーマチュアの変形対象ボーン名一覧を返す。
	DeformBoneNamesForMesh(meshObj *model.Object) ([]string, error)
}

// IParamsReader はコマンドパラメータプリセットの読み込み契約を表す。
type IParamsReader interface {
	// CanLoad は読み込み可否を返す。
	CanLoad(path string) bool
	// LoadChainParams はチェーン作成パラメータを読み込む。
	LoadChainParams(path string) (ChainParams, error)
	// LoadArrayParams はメッシュ複製パラメータを読み込む。
	LoadArrayParams(path string) (ArrayParams, error)
}

// ChainParams はチェーン作成コマンドのパラメータを表す。
type ChainParams struct {
	BoneCount int
	BoneName  string
	CurveName string
}

// ArrayParams はメッシュ複製コマンドのパラメータを表す。
type ArrayParams struct {
	RootBoneName string
}
