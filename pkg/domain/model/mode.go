// 指示: miu200521358
package model

import (
	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
)

// ObjectMode はオブジェクトの編集モードを表す。
type ObjectMode string

const (
	// ModeObject はオブジェクトモードを表す。
	ModeObject ObjectMode = "OBJECT"
	// ModeEdit は構造編集モードを表す。ボーンやメッシュの構造変更はこのモードのみ許可する。
	ModeEdit ObjectMode = "EDIT"
	// ModePose はポーズモードを表す。コンストレイント操作は編集モード外のみ許可する。
	ModePose ObjectMode = "POSE"
)

// ModeScope はモード遷移の復帰スコープを表す。
type ModeScope struct {
	object   *Object
	previous ObjectMode
	closed   bool
}

// Restore は遷移前モードへ復帰する。多重呼び出しは無視する。
func (s *ModeScope) Restore() {
	if s == nil || s.closed || s.object == nil {
		return
	}
	s.closed = true
	s.object.mode = s.previous
}

// canEnterMode はオブジェクト種別に対するモード許可を返す。
func canEnterMode(objectType ObjectType, mode ObjectMode) bool {
	switch mode {
	case ModeObject:
		return true
	case ModeEdit:
		return objectType == ObjectTypeArmature || objectType == ObjectTypeMesh
	case ModePose:
		return objectType == ObjectTypeArmature
	default:
		return false
	}
}

// EnterMode は指定モードへ遷移し、元モードへ戻すスコープを返す。
func (o *Object) EnterMode(mode ObjectMode) (*ModeScope, error) {
	if o == nil {
		return nil, merrors.NewInvalidContextError("モード遷移対象オブジェクトが未設定です")
	}
	if !canEnterMode(o.Type, mode) {
		return nil, merrors.NewInvalidContextError("オブジェクト %s(%s) はモード %s へ遷移できません", o.name, o.Type, mode)
	}
	scope := &ModeScope{object: o, previous: o.mode}
	o.mode = mode
	return scope, nil
}

// Mode は現在モードを返す。
func (o *Object) Mode() ObjectMode {
	if o == nil {
		return ModeObject
	}
	return o.mode
}

// SetMode は現在モードを設定する。シーン読み込み時の復元用。
func (o *Object) SetMode(mode ObjectMode) error {
	if !canEnterMode(o.Type, mode) {
		return merrors.NewInvalidContextError("オブジェクト %s(%s) はモード %s を保持できません", o.name, o.Type, mode)
	}
	o.mode = mode
	return nil
}
