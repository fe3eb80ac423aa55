// 指示: miu200521358
package model

import (
	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/mmath"
)

// Bone はアーマチュアローカル空間のボーンを表す。
type Bone struct {
	name       string
	Head       mmath.Vec3
	Tail       mmath.Vec3
	ParentName string
	UseDeform  bool
	IsLocator  bool

	childNames []string
}

// NewBone は変形対象ボーンを生成する。
func NewBone(name string) *Bone {
	return &Bone{name: name, UseDeform: true}
}

// Name はボーン名を返す。
func (b *Bone) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}

// Midpoint はヘッドとテールの中点を返す。
func (b *Bone) Midpoint() mmath.Vec3 {
	return b.Head.Midpoint(b.Tail)
}

// ChildNames は子ボーン名一覧を登録順で返す。
func (b *Bone) ChildNames() []string {
	names := make([]string, len(b.childNames))
	copy(names, b.childNames)
	return names
}

// FirstChildName は先頭の子ボーン名を返す。
func (b *Bone) FirstChildName() (string, bool) {
	if b == nil || len(b.childNames) == 0 {
		return "", false
	}
	return b.childNames[0], true
}

// BoneCollection は名前引き可能な順序付きボーン集合を表す。
type BoneCollection struct {
	bones   []*Bone
	indexes map[string]int
}

// NewBoneCollection は空のボーン集合を生成する。
func NewBoneCollection() *BoneCollection {
	return &BoneCollection{
		bones:   []*Bone{},
		indexes: map[string]int{},
	}
}

// Append はボーンを追加し、親の子一覧へ登録する。
func (c *BoneCollection) Append(bone *Bone) error {
	if bone == nil {
		return merrors.NewInvalidInputError("追加対象ボーンが未設定です")
	}
	if bone.Name() == "" {
		return merrors.NewInvalidInputError("ボーン名が未設定です")
	}
	if _, exists := c.indexes[bone.Name()]; exists {
		return merrors.NewInvalidInputError("ボーン名が重複しています: %s", bone.Name())
	}
	if bone.ParentName != "" {
		parent, err := c.GetByName(bone.ParentName)
		if err != nil {
			return merrors.NewInvalidInputError("親ボーンが見つかりません: %s", bone.ParentName)
		}
		parent.childNames = append(parent.childNames, bone.Name())
	}
	c.indexes[bone.Name()] = len(c.bones)
	c.bones = append(c.bones, bone)
	return nil
}

// GetByName は名前でボーンを取得する。
func (c *BoneCollection) GetByName(name string) (*Bone, error) {
	index, exists := c.indexes[name]
	if !exists {
		return nil, merrors.NewInvalidInputError("ボーンが見つかりません: %s", name)
	}
	return c.bones[index], nil
}

// ContainsByName は名前のボーンの有無を返す。
func (c *BoneCollection) ContainsByName(name string) bool {
	_, exists := c.indexes[name]
	return exists
}

// Values はボーン一覧を追加順で返す。
func (c *BoneCollection) Values() []*Bone {
	values := make([]*Bone, len(c.bones))
	copy(values, c.bones)
	return values
}

// Len はボーン数を返す。
func (c *BoneCollection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.bones)
}

// Armature はボーン集合を持つスケルトンデータを表す。
type Armature struct {
	Bones *BoneCollection
}

// NewArmature は空のアーマチュアを生成する。
func NewArmature() *Armature {
	return &Armature{Bones: NewBoneCollection()}
}

// DeformBoneNames は変形対象ボーン名一覧を返す。ロケータは含まない。
func (a *Armature) DeformBoneNames() []string {
	names := []string{}
	if a == nil || a.Bones == nil {
		return names
	}
	for _, bone := range a.Bones.Values() {
		if bone.UseDeform {
			names = append(names, bone.Name())
		}
	}
	return names
}
