// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
)

const (
	// DefaultBoneCount はチェーンのリンク数の既定値。
	DefaultBoneCount = 10
	// DefaultBoneName はチェーンボーンの基底名の既定値。
	DefaultBoneName = "Chain"

	// locatorNameSuffix はロケータボーン名の接尾辞。
	locatorNameSuffix = ".Locator"
)

// ChainBoneName はi番目のチェーンボーン名を返す。
func ChainBoneName(baseName string, index int) string {
	return fmt.Sprintf("%s.%03d", baseName, index)
}

// ChainLocatorName はi番目のロケータボーン名を返す。
func ChainLocatorName(baseName string, index int) string {
	return ChainBoneName(baseName, index) + locatorNameSuffix
}

// validateBaseName はボーン基底名を検証する。
func validateBaseName(baseName string) error {
	if strings.TrimSpace(baseName) == "" {
		return merrors.NewInvalidInputError("ボーン基底名が未指定です")
	}
	return nil
}
