// 指示: miu200521358
package io_params

import (
	"os"
	"path/filepath"
	"testing"
)

func writeParamsFixture(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture failed: %v", err)
	}
	return path
}

func TestParamsRepositoryCanLoad(t *testing.T) {
	rep := NewParamsRepository()
	if !rep.CanLoad("preset.yaml") || !rep.CanLoad("preset.yml") || !rep.CanLoad("PRESET.YAML") {
		t.Fatalf("yaml ext should load")
	}
	if rep.CanLoad("preset.json") || rep.CanLoad("preset") {
		t.Fatalf("non yaml ext should not load")
	}
}

func TestParamsRepositoryLoadChainParams(t *testing.T) {
	path := writeParamsFixture(t, "preset.yaml", `
chain:
  bone_count: 8
  bone_name: Hair
  curve_name: HairPath
`)
	rep := NewParamsRepository()

	params, err := rep.LoadChainParams(path)
	if err != nil {
		t.Fatalf("load chain params failed: %v", err)
	}
	if params.BoneCount != 8 || params.BoneName != "Hair" || params.CurveName != "HairPath" {
		t.Fatalf("chain params mismatch: %+v", params)
	}
}

func TestParamsRepositoryLoadArrayParams(t *testing.T) {
	path := writeParamsFixture(t, "preset.yml", `
array:
  root_bone_name: Hair.000
`)
	rep := NewParamsRepository()

	params, err := rep.LoadArrayParams(path)
	if err != nil {
		t.Fatalf("load array params failed: %v", err)
	}
	if params.RootBoneName != "Hair.000" {
		t.Fatalf("array params mismatch: %+v", params)
	}
}

func TestParamsRepositoryLoadMissingSectionReturnsZeroValues(t *testing.T) {
	path := writeParamsFixture(t, "preset.yaml", `
chain:
  bone_name: Tail
`)
	rep := NewParamsRepository()

	params, err := rep.LoadArrayParams(path)
	if err != nil {
		t.Fatalf("load array params failed: %v", err)
	}
	if params.RootBoneName != "" {
		t.Fatalf("missing section should be zero value: %+v", params)
	}
}

func TestParamsRepositoryRejectsUnsupportedExt(t *testing.T) {
	rep := NewParamsRepository()
	if _, err := rep.LoadChainParams("preset.json"); err == nil {
		t.Fatalf("unsupported ext should fail")
	}
}

func TestParamsRepositoryRejectsBrokenYaml(t *testing.T) {
	path := writeParamsFixture(t, "broken.yaml", "chain: [")
	rep := NewParamsRepository()
	if _, err := rep.LoadChainParams(path); err == nil {
		t.Fatalf("broken yaml should fail")
	}
}

func TestParamsRepositoryRejectsMissingFile(t *testing.T) {
	rep := NewParamsRepository()
	if _, err := rep.LoadChainParams(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file should fail")
	}
}
