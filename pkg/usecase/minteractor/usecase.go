// 指示: miu200521358
// Package minteractor はリグ編集コマンドのユースケースを提供する。
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_chain_rig/pkg/domain/model"
	"github.com/miu200521358/mu_chain_rig/pkg/usecase/port/mscene"
)

// ChainRigUsecaseDeps はリグ編集ユースケースの依存を表す。
type ChainRigUsecaseDeps struct {
	SceneReader  mscene.ISceneReader
	SceneWriter  mscene.ISceneWriter
	ParamsReader mscene.IParamsReader
}

// ChainRigUsecase はチェーン作成とメッシュ複製をまとめたユースケースを表す。
type ChainRigUsecase struct {
	sceneReader  mscene.ISceneReader
	sceneWriter  mscene.ISceneWriter
	paramsReader mscene.IParamsReader
}

// NewChainRigUsecase はリグ編集ユースケースを生成する。
func NewChainRigUsecase(deps ChainRigUsecaseDeps) *ChainRigUsecase {
	return &ChainRigUsecase{
		sceneReader:  deps.SceneReader,
		sceneWriter:  deps.SceneWriter,
		paramsReader: deps.ParamsReader,
	}
}

// LoadScene はシーンドキュメントを読み込む。
func (uc *ChainRigUsecase) LoadScene(rep mscene.ISceneReader, path string) (*model.Scene, error) {
	repo := rep
	if repo == nil {
		repo = uc.sceneReader
	}
	if repo == nil {
		return nil, fmt.Errorf("シーン読み込みリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("シーンパスが未指定です")
	}
	if !repo.CanLoad(path) {
		return nil, fmt.Errorf("シーン形式が未対応です: %s", path)
	}
	return repo.Load(path)
}

// SaveScene はシーンドキュメントを保存する。
func (uc *ChainRigUsecase) SaveScene(rep mscene.ISceneWriter, path string, scene *model.Scene) error {
	writer := rep
	if writer == nil {
		writer = uc.sceneWriter
	}
	if writer == nil {
		return fmt.Errorf("シーン保存リポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("保存先パスが未指定です")
	}
	if scene == nil {
		return fmt.Errorf("保存対象シーンが未設定です")
	}
	return writer.Save(path, scene)
}

// LoadChainParams はチェーン作成パラメータプリセットを読み込む。
func (uc *ChainRigUsecase) LoadChainParams(rep mscene.IParamsReader, path string) (mscene.ChainParams, error) {
	repo, err := uc.resolveParamsReader(rep, path)
	if err != nil {
		return mscene.ChainParams{}, err
	}
	return repo.LoadChainParams(path)
}

// LoadArrayParams はメッシュ複製パラメータプリセットを読み込む。
func (uc *ChainRigUsecase) LoadArrayParams(rep mscene.IParamsReader, path string) (mscene.ArrayParams, error) {
	repo, err := uc.resolveParamsReader(rep, path)
	if err != nil {
		return mscene.ArrayParams{}, err
	}
	return repo.LoadArrayParams(path)
}

// resolveParamsReader はプリセット読み込みリポジトリを解決する。
func (uc *ChainRigUsecase) resolveParamsReader(rep mscene.IParamsReader, path string) (mscene.IParamsReader, error) {
	repo := rep
	if repo == nil {
		repo = uc.paramsReader
	}
	if repo == nil {
		return nil, fmt.Errorf("プリセット読み込みリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("プリセットパスが未指定です")
	}
	if !repo.CanLoad(path) {
		return nil, fmt.Errorf("プリセット形式が未対応です: %s", path)
	}
	return repo, nil
}

// CurveObjectNames はシーン照会からカーブオブジェクト名一覧を取得する。
func (uc *ChainRigUsecase) CurveObjectNames(query mscene.ISceneQuery) ([]string, error) {
	if query == nil {
		return nil, fmt.Errorf("シーン照会が設定されていません")
	}
	return query.CurveObjectNames(), nil
}

// DeformBoneNames はメッシュを駆動する変形対象ボーン名一覧を取得する。
func (uc *ChainRigUsecase) DeformBoneNames(query mscene.ISceneQuery, meshObj *model.Object) ([]string, error) {
	if query == nil {
		return nil, fmt.Errorf("シーン照会が設定されていません")
	}
	return query.DeformBoneNamesForMesh(meshObj)
}
