// 指示: miu200521358
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_chain_rig/pkg/adapter/io_params"
	"github.com/miu200521358/mu_chain_rig/pkg/adapter/io_scene"
	"github.com/miu200521358/mu_chain_rig/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/model"
	"github.com/miu200521358/mu_chain_rig/pkg/usecase/minteractor"
)

// main はボーンチェーン作成とメッシュ複製のCLIを実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	if len(args) == 0 {
		return errors.New(messages.MessageSubcommandRequired)
	}
	switch args[0] {
	case "chain":
		return runChain(args[1:], out, errOut)
	case "array":
		return runArray(args[1:], out, errOut)
	case "list-curves":
		return runListCurves(args[1:], out, errOut)
	case "list-bones":
		return runListBones(args[1:], out, errOut)
	default:
		return fmt.Errorf(messages.MessageUnknownSubcommand, args[0])
	}
}

// chainOptions はチェーン作成コマンドの引数を保持する。
type chainOptions struct {
	inputPath    string
	outputPath   string
	armatureName string
	curveName    string
	boneCount    int
	boneName     string
	presetPath   string
}

// runChain はカーブ追従ボーンチェーンを作成してシーンを保存する。
func runChain(args []string, out io.Writer, errOut io.Writer) error {
	uc := newUsecase()
	opts, err := parseChainOptions(args, errOut, uc)
	if err != nil {
		return err
	}

	scene, err := uc.LoadScene(nil, opts.inputPath)
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageLoadFailed, err)
	}
	fmt.Fprintf(out, "[mu_chain_rig] "+messages.LogLoadSuccess+"\n", opts.inputPath)

	if opts.armatureName != "" {
		scene.ActiveObjectName = opts.armatureName
	}
	if opts.curveName == "" {
		names, err := uc.CurveObjectNames(scene)
		if err != nil {
			return err
		}
		switch len(names) {
		case 0:
			return errors.New(messages.MessageNoCurveInScene)
		case 1:
			opts.curveName = names[0]
		default:
			return fmt.Errorf(messages.MessageCurveRequired, strings.Join(names, ", "))
		}
	}

	result, err := uc.BuildChain(minteractor.BuildChainRequest{
		Scene:     scene,
		CurveName: opts.curveName,
		BoneCount: opts.boneCount,
		BoneName:  opts.boneName,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageChainBuildFailed, err)
	}
	fmt.Fprintf(out, "[mu_chain_rig] "+messages.LogChainBuildSuccess+"\n",
		len(result.BoneNames), result.LinkLength)
	printWarnings(out, result.WarningIDs)

	outputPath, err := resolveOutputPath(opts.inputPath, opts.outputPath, "_chain")
	if err != nil {
		return err
	}
	if err := ensureOutputDir(outputPath); err != nil {
		return err
	}
	if err := uc.SaveScene(nil, outputPath, scene); err != nil {
		return fmt.Errorf("%s: %w", messages.MessageSaveFailed, err)
	}
	fmt.Fprintf(out, "[mu_chain_rig] "+messages.LogSaveSuccess+"\n", outputPath)
	return nil
}

// parseChainOptions はチェーン作成コマンドの引数を解析する。
func parseChainOptions(args []string, errOut io.Writer, uc *minteractor.ChainRigUsecase) (chainOptions, error) {
	fs := flag.NewFlagSet("mu_chain_rig chain", flag.ContinueOnError)
	fs.SetOutput(errOut)

	in := fs.String("in", "", messages.LabelScenePath)
	outPath := fs.String("out", "", messages.LabelOutputPath)
	armature := fs.String("armature", "", messages.LabelArmature)
	curve := fs.String("curve", "", messages.LabelChainCurve)
	count := fs.Int("count", 0, messages.LabelChainCount)
	name := fs.String("name", "", messages.LabelChainName)
	preset := fs.String("preset", "", messages.LabelPresetPath)
	if err := fs.Parse(args); err != nil {
		return chainOptions{}, err
	}

	opts := chainOptions{
		inputPath:    *in,
		outputPath:   *outPath,
		armatureName: *armature,
		curveName:    *curve,
		boneCount:    *count,
		boneName:     *name,
		presetPath:   *preset,
	}
	if err := validateScenePath(opts.inputPath); err != nil {
		return chainOptions{}, err
	}

	if opts.presetPath != "" {
		params, err := uc.LoadChainParams(nil, opts.presetPath)
		if err != nil {
			return chainOptions{}, fmt.Errorf("%s: %w", messages.MessagePresetLoadFailed, err)
		}
		if opts.boneCount == 0 {
			opts.boneCount = params.BoneCount
		}
		if opts.boneName == "" {
			opts.boneName = params.BoneName
		}
		if opts.curveName == "" {
			opts.curveName = params.CurveName
		}
	}
	if opts.boneCount == 0 {
		opts.boneCount = minteractor.DefaultBoneCount
	}
	return opts, nil
}

// arrayOptions はメッシュ複製コマンドの引数を保持する。
type arrayOptions struct {
	inputPath    string
	outputPath   string
	meshName     string
	rootBoneName string
	presetPath   string
}

// runArray は選択中ジオメトリをボーンチェーンに沿って複製してシーンを保存する。
func runArray(args []string, out io.Writer, errOut io.Writer) error {
	uc := newUsecase()
	opts, err := parseArrayOptions(args, errOut, uc)
	if err != nil {
		return err
	}

	scene, err := uc.LoadScene(nil, opts.inputPath)
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageLoadFailed, err)
	}
	fmt.Fprintf(out, "[mu_chain_rig] "+messages.LogLoadSuccess+"\n", opts.inputPath)

	if opts.meshName != "" {
		scene.ActiveObjectName = opts.meshName
	}
	meshObj, err := scene.ActiveObject()
	if err != nil {
		return fmt.Errorf("対象メッシュの解決に失敗しました: %w", err)
	}
	if !hasSelectedVerts(meshObj) {
		return fmt.Errorf(messages.MessageNoSelectedVerts, meshObj.Name())
	}
	scope, err := meshObj.EnterMode(model.ModeEdit)
	if err != nil {
		return fmt.Errorf("構造編集モードへの切り替えに失敗しました: %w", err)
	}
	defer scope.Restore()

	result, err := uc.CreateChainMeshArray(minteractor.CreateChainMeshArrayRequest{
		Scene:        scene,
		RootBoneName: opts.rootBoneName,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageMeshArrayFailed, err)
	}
	fmt.Fprintf(out, "[mu_chain_rig] "+messages.LogMeshArraySuccess+"\n",
		len(result.ChainBoneNames), result.DuplicatedVertCount)
	printWarnings(out, result.WarningIDs)

	scope.Restore()
	outputPath, err := resolveOutputPath(opts.inputPath, opts.outputPath, "_array")
	if err != nil {
		return err
	}
	if err := ensureOutputDir(outputPath); err != nil {
		return err
	}
	if err := uc.SaveScene(nil, outputPath, scene); err != nil {
		return fmt.Errorf("%s: %w", messages.MessageSaveFailed, err)
	}
	fmt.Fprintf(out, "[mu_chain_rig] "+messages.LogSaveSuccess+"\n", outputPath)
	return nil
}

// parseArrayOptions はメッシュ複製コマンドの引数を解析する。
func parseArrayOptions(args []string, errOut io.Writer, uc *minteractor.ChainRigUsecase) (arrayOptions, error) {
	fs := flag.NewFlagSet("mu_chain_rig array", flag.ContinueOnError)
	fs.SetOutput(errOut)

	in := fs.String("in", "", messages.LabelScenePath)
	outPath := fs.String("out", "", messages.LabelOutputPath)
	mesh := fs.String("mesh", "", messages.LabelMesh)
	root := fs.String("root", "", messages.LabelArrayRoot)
	preset := fs.String("preset", "", messages.LabelPresetPath)
	if err := fs.Parse(args); err != nil {
		return arrayOptions{}, err
	}

	opts := arrayOptions{
		inputPath:    *in,
		outputPath:   *outPath,
		meshName:     *mesh,
		rootBoneName: *root,
		presetPath:   *preset,
	}
	if err := validateScenePath(opts.inputPath); err != nil {
		return arrayOptions{}, err
	}

	if opts.presetPath != "" {
		params, err := uc.LoadArrayParams(nil, opts.presetPath)
		if err != nil {
			return arrayOptions{}, fmt.Errorf("%s: %w", messages.MessagePresetLoadFailed, err)
		}
		if opts.rootBoneName == "" {
			opts.rootBoneName = params.RootBoneName
		}
	}
	if opts.rootBoneName == "" {
		return arrayOptions{}, errors.New(messages.MessageRootBoneRequired)
	}
	return opts, nil
}

// runListCurves はシーン内のカーブオブジェクト名を列挙する。
func runListCurves(args []string, out io.Writer, errOut io.Writer) error {
	fs := flag.NewFlagSet("mu_chain_rig list-curves", flag.ContinueOnError)
	fs.SetOutput(errOut)
	in := fs.String("in", "", messages.LabelScenePath)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := validateScenePath(*in); err != nil {
		return err
	}

	uc := newUsecase()
	scene, err := uc.LoadScene(nil, *in)
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageLoadFailed, err)
	}
	names, err := uc.CurveObjectNames(scene)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

// runListBones はメッシュを駆動するアーマチュアの変形対象ボーン名を列挙する。
func runListBones(args []string, out io.Writer, errOut io.Writer) error {
	fs := flag.NewFlagSet("mu_chain_rig list-bones", flag.ContinueOnError)
	fs.SetOutput(errOut)
	in := fs.String("in", "", messages.LabelScenePath)
	mesh := fs.String("mesh", "", messages.LabelMesh)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := validateScenePath(*in); err != nil {
		return err
	}

	uc := newUsecase()
	scene, err := uc.LoadScene(nil, *in)
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageLoadFailed, err)
	}
	meshObj, err := resolveMeshObject(scene, *mesh)
	if err != nil {
		return err
	}
	names, err := uc.DeformBoneNames(scene, meshObj)
	if err != nil {
		return fmt.Errorf("変形対象ボーンの列挙に失敗しました: %w", err)
	}
	if len(names) == 0 {
		fmt.Fprintln(out, messages.MessageNoDeformBoneFound)
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

// newUsecase はJSONシーンとYAMLプリセットのリポジトリを束ねたユースケースを生成する。
func newUsecase() *minteractor.ChainRigUsecase {
	rep := io_scene.NewSceneRepository()
	return minteractor.NewChainRigUsecase(minteractor.ChainRigUsecaseDeps{
		SceneReader:  rep,
		SceneWriter:  rep,
		ParamsReader: io_params.NewParamsRepository(),
	})
}

// resolveMeshObject は対象メッシュオブジェクトを解決する。
func resolveMeshObject(scene *model.Scene, meshName string) (*model.Object, error) {
	if meshName != "" {
		meshObj, err := scene.GetObjectByName(meshName)
		if err != nil {
			return nil, fmt.Errorf("対象メッシュが見つかりません: %s", meshName)
		}
		return meshObj, nil
	}
	meshObj, err := scene.ActiveObject()
	if err != nil {
		return nil, fmt.Errorf("対象メッシュの解決に失敗しました: %w", err)
	}
	return meshObj, nil
}

// hasSelectedVerts は選択中の頂点の有無を返す。
func hasSelectedVerts(meshObj *model.Object) bool {
	if meshObj == nil || meshObj.Mesh == nil {
		return false
	}
	for _, vert := range meshObj.Mesh.Verts {
		if vert.Select {
			return true
		}
	}
	return false
}

// printWarnings は警告を表示文言へ解決して出力する。
func printWarnings(out io.Writer, warningIDs []string) {
	for _, warningID := range warningIDs {
		fmt.Fprintf(out, "[mu_chain_rig] 警告: %s\n", warningText(warningID))
	}
}

// warningText は警告IDに対応する表示文言を返す。未知のIDはそのまま返す。
func warningText(warningID string) string {
	switch warningID {
	case model.RigWarningOpenCurveWrapTrack:
		return messages.WarningOpenCurveWrapTrack
	case model.RigWarningChainBranchDropped:
		return messages.WarningChainBranchDropped
	default:
		return warningID
	}
}

// validateScenePath は入力シーンパスを検証する。
func validateScenePath(path string) error {
	if path == "" {
		return errors.New(messages.MessageSceneRequired)
	}
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return fmt.Errorf(messages.MessageSceneExtInvalid, path)
	}
	return nil
}

// ensureOutputDir は出力先ディレクトリを作成する。
func ensureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("出力先ディレクトリの作成に失敗しました: %w", err)
	}
	return nil
}

// resolveOutputPath は出力シーンパスを解決する。
func resolveOutputPath(inputPath string, outputPath string, suffix string) (string, error) {
	if strings.TrimSpace(outputPath) == "" {
		dir := filepath.Dir(inputPath)
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		return filepath.Join(dir, base+suffix+".json"), nil
	}
	if !strings.EqualFold(filepath.Ext(outputPath), ".json") {
		return "", fmt.Errorf(messages.MessageOutputExtInvalid, outputPath)
	}
	return outputPath, nil
}
