// 指示: miu200521358
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/miu200521358/mu_chain_rig/pkg/adapter/io_scene"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/model"
	"github.com/miu200521358/mu_chain_rig/pkg/usecase/minteractor"
)

const (
	batchOutputDirMode = 0o755
)

var targetScenePaths = []string{
	"E:/MMD_E/202101_vroid/scene/hair_chain_scene.json",
	// "E:/MMD_E/202101_vroid/scene/tail_chain_scene.json",
	// "E:/MMD_E/202101_vroid/scene/ribbon_chain_scene.json",
	// "C:/Codex/mlib/mu_chain_rig/internal/test_resources/scene/chain_cyclic.json",
	// "C:/Codex/mlib/mu_chain_rig/internal/test_resources/scene/chain_open.json",
}

// batchConfig は一括リグ作成の実行設定を表す。
type batchConfig struct {
	OutputRoot   string
	DryRun       bool
	FailFast     bool
	CurveName    string
	BoneCount    int
	BoneName     string
	RootBoneName string
	MeshName     string
}

// riggingEntry は1シーン分の実行対象を表す。
type riggingEntry struct {
	Index      int
	SourcePath string
	SceneName  string
	CaseDir    string
	OutputPath string
}

// riggingResult は1シーン分の実行結果を表す。
type riggingResult struct {
	Entry         riggingEntry
	Status        string
	Duration      time.Duration
	ChainStageLog string
	Err           error
}

// chainProgressCollector はチェーン作成進捗を収集する。
type chainProgressCollector struct {
	stages []string
}

func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括リグ作成を実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	entries := buildRiggingEntries(config.OutputRoot, targetScenePaths)
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "対象シーンがありません")
		return 2
	}

	results := executeBatchRigging(config, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	defaultOutputRoot, err := resolveDefaultOutputRoot()
	if err != nil {
		return batchConfig{}, err
	}
	outputRoot := flag.String("output-root", defaultOutputRoot, "リグ作成結果の出力ルートディレクトリ")
	dryRun := flag.Bool("dry-run", false, "実変更せず、入力解決と出力先計画のみ表示する")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	curve := flag.String("curve", "", "追従カーブオブジェクト名(省略時はシーン内唯一のカーブ)")
	count := flag.Int("count", minteractor.DefaultBoneCount, "チェーンのリンク数")
	name := flag.String("name", minteractor.DefaultBoneName, "ボーン基底名")
	root := flag.String("root", "", "メッシュ複製のルートボーン名(省略時は複製をスキップ)")
	mesh := flag.String("mesh", "", "メッシュ複製の対象メッシュ名")
	flag.Parse()

	trimmedOutputRoot := strings.TrimSpace(*outputRoot)
	if trimmedOutputRoot == "" {
		return batchConfig{}, errors.New("output-root が空です")
	}
	return batchConfig{
		OutputRoot:   filepath.Clean(trimmedOutputRoot),
		DryRun:       *dryRun,
		FailFast:     *failFast,
		CurveName:    *curve,
		BoneCount:    *count,
		BoneName:     *name,
		RootBoneName: *root,
		MeshName:     *mesh,
	}, nil
}

// resolveDefaultOutputRoot はスクリプト配置ディレクトリ基準の既定出力先を返す。
func resolveDefaultOutputRoot() (string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("実行ファイル位置を取得できません")
	}
	currentDir := filepath.Dir(currentFilePath)
	return filepath.Join(currentDir, "output"), nil
}

// buildRiggingEntries は入力パス一覧から実行対象エントリを生成する。
func buildRiggingEntries(outputRoot string, inputPaths []string) []riggingEntry {
	entries := make([]riggingEntry, 0, len(inputPaths))
	for i, rawPath := range inputPaths {
		sceneName := resolveSceneName(rawPath)
		safeSceneName := sanitizePathComponent(sceneName)
		caseDirName := fmt.Sprintf("%03d_%s", i+1, safeSceneName)
		caseDir := filepath.Join(outputRoot, caseDirName)
		entries = append(entries, riggingEntry{
			Index:      i + 1,
			SourcePath: filepath.Clean(rawPath),
			SceneName:  sceneName,
			CaseDir:    caseDir,
			OutputPath: filepath.Join(caseDir, safeSceneName+"_rigged.json"),
		})
	}
	return entries
}

// executeBatchRigging は全シーンのチェーン作成処理を順次実行する。
func executeBatchRigging(config batchConfig, entries []riggingEntry) []riggingResult {
	results := make([]riggingResult, 0, len(entries))
	rep := io_scene.NewSceneRepository()
	usecase := minteractor.NewChainRigUsecase(minteractor.ChainRigUsecaseDeps{
		SceneReader: rep,
		SceneWriter: rep,
	})

	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] リグ作成開始: scene=%s\n", entry.Index, total, entry.SceneName)
		result := rigSceneEntry(usecase, config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] リグ作成成功: scene=%s output=%s elapsed=%s\n", entry.Index, total, entry.SceneName, entry.OutputPath, result.Duration.Round(time.Millisecond))
			if strings.TrimSpace(result.ChainStageLog) != "" {
				fmt.Printf("[%d/%d] チェーン作成進捗: %s\n", entry.Index, total, result.ChainStageLog)
			}
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: scene=%s input=%s output=%s\n", entry.Index, total, entry.SceneName, entry.SourcePath, entry.OutputPath)
		case "skipped_missing":
			fmt.Printf("[%d/%d] 入力不足でスキップ: scene=%s input=%s reason=%v\n", entry.Index, total, entry.SceneName, entry.SourcePath, result.Err)
		default:
			fmt.Printf("[%d/%d] リグ作成失敗: scene=%s reason=%v\n", entry.Index, total, entry.SceneName, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// rigSceneEntry は1シーン分のチェーン作成とメッシュ複製を実行する。
func rigSceneEntry(usecase *minteractor.ChainRigUsecase, config batchConfig, entry riggingEntry) riggingResult {
	result := riggingResult{
		Entry:  entry,
		Status: "failed",
	}
	if _, err := os.Stat(entry.SourcePath); err != nil {
		result.Status = "skipped_missing"
		result.Err = err
		return result
	}
	if config.DryRun {
		result.Status = "dry_run"
		return result
	}
	if err := os.MkdirAll(entry.CaseDir, batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力ディレクトリ作成に失敗しました: %w", err)
		return result
	}

	startedAt := time.Now()
	scene, err := usecase.LoadScene(nil, entry.SourcePath)
	if err != nil {
		result.Err = fmt.Errorf("LoadSceneに失敗しました: %w", err)
		return result
	}

	curveName := config.CurveName
	if curveName == "" {
		names, err := usecase.CurveObjectNames(scene)
		if err != nil || len(names) != 1 {
			result.Err = fmt.Errorf("追従カーブを特定できません: 候補=%s", strings.Join(names, ", "))
			return result
		}
		curveName = names[0]
	}

	progressCollector := &chainProgressCollector{}
	chainResult, err := usecase.BuildChain(minteractor.BuildChainRequest{
		Scene:            scene,
		CurveName:        curveName,
		BoneCount:        config.BoneCount,
		BoneName:         config.BoneName,
		ProgressReporter: progressCollector,
	})
	if err != nil {
		result.Err = fmt.Errorf("BuildChainに失敗しました: %w", err)
		return result
	}

	if config.RootBoneName != "" {
		if err := rigSceneMeshArray(usecase, config, scene); err != nil {
			result.Err = err
			return result
		}
	}

	if err := usecase.SaveScene(nil, entry.OutputPath, scene); err != nil {
		result.Err = fmt.Errorf("SaveSceneに失敗しました: %w", err)
		return result
	}

	result.Status = "succeeded"
	result.Duration = time.Since(startedAt)
	result.ChainStageLog = fmt.Sprintf("bones=%d linkLength=%.3f stages=%s",
		len(chainResult.BoneNames), chainResult.LinkLength, progressCollector.Summary())
	return result
}

// rigSceneMeshArray はチェーン作成後のシーンへメッシュ複製を適用する。
func rigSceneMeshArray(usecase *minteractor.ChainRigUsecase, config batchConfig, scene *model.Scene) error {
	if config.MeshName != "" {
		scene.ActiveObjectName = config.MeshName
	}
	meshObj, err := scene.ActiveObject()
	if err != nil {
		return fmt.Errorf("対象メッシュの解決に失敗しました: %w", err)
	}
	scope, err := meshObj.EnterMode(model.ModeEdit)
	if err != nil {
		return fmt.Errorf("構造編集モードへの切り替えに失敗しました: %w", err)
	}
	defer scope.Restore()

	if _, err := usecase.CreateChainMeshArray(minteractor.CreateChainMeshArrayRequest{
		Scene:        scene,
		RootBoneName: config.RootBoneName,
	}); err != nil {
		return fmt.Errorf("CreateChainMeshArrayに失敗しました: %w", err)
	}
	return nil
}

// printBatchSummary は実行結果の集計を標準出力へ表示する。
func printBatchSummary(results []riggingResult) {
	succeeded := 0
	failed := 0
	skipped := 0
	dryRun := 0
	for _, result := range results {
		switch result.Status {
		case "succeeded":
			succeeded++
		case "dry_run":
			dryRun++
		case "skipped_missing":
			skipped++
		default:
			failed++
		}
	}
	fmt.Printf(
		"バッチリグ作成サマリ: total=%d succeeded=%d failed=%d skipped_missing=%d dry_run=%d\n",
		len(results),
		succeeded,
		failed,
		skipped,
		dryRun,
	)
}

// resolveSceneName は入力パスから拡張子を除いたシーン名を返す。
func resolveSceneName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// sanitizePathComponent はディレクトリ名に使えない文字を置き換える。
func sanitizePathComponent(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	sanitized := replacer.Replace(strings.TrimSpace(name))
	if sanitized == "" {
		return "scene"
	}
	return sanitized
}

// ReportBuildChainProgress はチェーン作成進捗を収集する。
func (collector *chainProgressCollector) ReportBuildChainProgress(event minteractor.BuildChainProgressEvent) {
	collector.stages = append(collector.stages, string(event.Type))
}

// Summary は収集済みステージ名の連結を返す。
func (collector *chainProgressCollector) Summary() string {
	if len(collector.stages) == 0 {
		return ""
	}
	return strings.Join(collector.stages, " -> ")
}
