// 指示: miu200521358
// Package io_params はコマンドパラメータプリセットのYAML入出力を提供する。
package io_params

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
	"github.com/miu200521358/mu_chain_rig/pkg/shared/base/logging"
	"github.com/miu200521358/mu_chain_rig/pkg/usecase/port/mscene"
)

// paramsDocument はプリセットYAMLのトップレベル要素を表す。
type paramsDocument struct {
	Chain chainParamsDocument `yaml:"chain"`
	Array arrayParamsDocument `yaml:"array"`
}

// chainParamsDocument はチェーン作成パラメータのYAML表現を表す。
type chainParamsDocument struct {
	BoneCount int    `yaml:"bone_count"`
	BoneName  string `yaml:"bone_name"`
	CurveName string `yaml:"curve_name"`
}

// arrayParamsDocument はメッシュ複製パラメータのYAML表現を表す。
type arrayParamsDocument struct {
	RootBoneName string `yaml:"root_bone_name"`
}

// ParamsRepository はパラメータプリセットのYAML読み込みを表す。
type ParamsRepository struct{}

// NewParamsRepository はParamsRepositoryを生成する。
func NewParamsRepository() *ParamsRepository {
	return &ParamsRepository{}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *ParamsRepository) CanLoad(path string) bool {
	ext := filepath.Ext(path)
	return strings.EqualFold(ext, ".yaml") || strings.EqualFold(ext, ".yml")
}

// LoadChainParams はチェーン作成パラメータを読み込む。
func (r *ParamsRepository) LoadChainParams(path string) (mscene.ChainParams, error) {
	doc, err := r.loadDocument(path)
	if err != nil {
		return mscene.ChainParams{}, err
	}
	return mscene.ChainParams{
		BoneCount: doc.Chain.BoneCount,
		BoneName:  doc.Chain.BoneName,
		CurveName: doc.Chain.CurveName,
	}, nil
}

// LoadArrayParams はメッシュ複製パラメータを読み込む。
func (r *ParamsRepository) LoadArrayParams(path string) (mscene.ArrayParams, error) {
	doc, err := r.loadDocument(path)
	if err != nil {
		return mscene.ArrayParams{}, err
	}
	return mscene.ArrayParams{RootBoneName: doc.Array.RootBoneName}, nil
}

// loadDocument はプリセットYAMLを読み込んで解析する。
func (r *ParamsRepository) loadDocument(path string) (*paramsDocument, error) {
	if !r.CanLoad(path) {
		return nil, merrors.NewInvalidInputError("プリセットファイルの拡張子が未対応です: %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("プリセットファイルが見つかりません: %s: %w", path, err)
		}
		return nil, fmt.Errorf("プリセットファイルの読み取りに失敗しました: %w", err)
	}
	doc := &paramsDocument{}
	if err := yaml.Unmarshal(b, doc); err != nil {
		return nil, fmt.Errorf("プリセットYAMLの解析に失敗しました: %w", err)
	}
	logParamsInfo("プリセット読込完了: file=%s", filepath.Base(path))
	return doc, nil
}

// logParamsInfo はプリセット入出力のINFOログを出力する。
func logParamsInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}
