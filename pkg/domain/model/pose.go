// 指示: miu200521358
package model

import (
	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
)

// ConstraintType はポーズコンストレイント種別を表す。
type ConstraintType string

const (
	// ConstraintTypeFollowPath はパス追従コンストレイントを表す。
	ConstraintTypeFollowPath ConstraintType = "FOLLOW_PATH"
	// ConstraintTypeCopyLocation は位置コピーコンストレイントを表す。
	ConstraintTypeCopyLocation ConstraintType = "COPY_LOCATION"
	// ConstraintTypeTrackTo は注視コンストレイントを表す。
	ConstraintTypeTrackTo ConstraintType = "TRACK_TO"
)

const (
	// TrackAxisNegativeY はパス追従の前方軸(-Y)を表す。
	TrackAxisNegativeY = "TRACK_NEGATIVE_Y"
	// UpAxisZ はパス追従の上方軸(+Z)を表す。
	UpAxisZ = "UP_Z"
)

// Constraint はポーズボーンへ付与するコンストレイントを表す。
type Constraint struct {
	Type             ConstraintType
	TargetObjectName string
	Subtarget        string
	Offset           float64
	UseCurveFollow   bool
	ForwardAxis      string
	UpAxis           string
	UseTargetZ       bool
}

// PoseBone はポーズ側のボーン操作面を表す。
type PoseBone struct {
	BoneName    string
	Constraints []*Constraint
}

// NewConstraint はコンストレイントを追加して返す。
func (pb *PoseBone) NewConstraint(constraintType ConstraintType) *Constraint {
	constraint := &Constraint{Type: constraintType}
	pb.Constraints = append(pb.Constraints, constraint)
	return constraint
}

// ConstraintsByType は指定種別のコンストレイント一覧を返す。
func (pb *PoseBone) ConstraintsByType(constraintType ConstraintType) []*Constraint {
	matched := []*Constraint{}
	if pb == nil {
		return matched
	}
	for _, constraint := range pb.Constraints {
		if constraint.Type == constraintType {
			matched = append(matched, constraint)
		}
	}
	return matched
}

// Pose はアーマチュアのポーズボーン集合を表す。
type Pose struct {
	armature *Armature
	bones    map[string]*PoseBone
}

// newPose はアーマチュアに対応するポーズを生成する。
func newPose(armature *Armature) *Pose {
	return &Pose{
		armature: armature,
		bones:    map[string]*PoseBone{},
	}
}

// GetBoneByName は名前でポーズボーンを取得する。実体は遅延生成する。
func (p *Pose) GetBoneByName(name string) (*PoseBone, error) {
	if p == nil || p.armature == nil || p.armature.Bones == nil {
		return nil, merrors.NewInvalidContextError("ポーズ対象アーマチュアが未設定です")
	}
	if !p.armature.Bones.ContainsByName(name) {
		return nil, merrors.NewInvalidInputError("ポーズボーンが見つかりません: %s", name)
	}
	if poseBone, exists := p.bones[name]; exists {
		return poseBone, nil
	}
	poseBone := &PoseBone{BoneName: name, Constraints: []*Constraint{}}
	p.bones[name] = poseBone
	return poseBone, nil
}

// PoseBoneValues はコンストレイントを持つポーズボーン一覧をボーン定義順で返す。
func (p *Pose) PoseBoneValues() []*PoseBone {
	values := []*PoseBone{}
	if p == nil || p.armature == nil || p.armature.Bones == nil {
		return values
	}
	for _, bone := range p.armature.Bones.Values() {
		poseBone, exists := p.bones[bone.Name()]
		if !exists || len(poseBone.Constraints) == 0 {
			continue
		}
		values = append(values, poseBone)
	}
	return values
}

// ConstraintCount は全ポーズボーンのコンストレイント総数を返す。
func (p *Pose) ConstraintCount() int {
	if p == nil {
		return 0
	}
	count := 0
	for _, poseBone := range p.bones {
		count += len(poseBone.Constraints)
	}
	return count
}
