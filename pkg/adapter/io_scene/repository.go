// 指示: miu200521358
// Package io_scene はシーンドキュメントのJSON入出力を提供する。
package io_scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"

	"github.com/miu200521358/mu_chain_rig/pkg/domain/merrors"
	"github.com/miu200521358/mu_chain_rig/pkg/domain/model"
	"github.com/miu200521358/mu_chain_rig/pkg/shared/base/logging"
)

const sceneFileExt = ".json"

// LoadProgressEventType はシーン読込進捗イベント種別を表す。
type LoadProgressEventType string

const (
	// LoadProgressEventTypeFileReadComplete はファイル読込完了イベントを表す。
	LoadProgressEventTypeFileReadComplete LoadProgressEventType = "file_read_complete"
	// LoadProgressEventTypeJsonParsed はJSON解析完了イベントを表す。
	LoadProgressEventTypeJsonParsed LoadProgressEventType = "json_parsed"
	// LoadProgressEventTypeObjectBuilt はオブジェクト構築進行イベントを表す。
	LoadProgressEventTypeObjectBuilt LoadProgressEventType = "object_built"
	// LoadProgressEventTypeCompleted はシーン読込完了イベントを表す。
	LoadProgressEventTypeCompleted LoadProgressEventType = "completed"
)

// LoadProgressEvent はシーン読込進捗イベントを表す。
type LoadProgressEvent struct {
	Type          LoadProgressEventType
	FileSizeBytes int
	ObjectTotal   int
	ObjectDone    int
}

// SceneRepository はシーンドキュメントのJSON入出力を表す。
type SceneRepository struct {
	loadProgressReporter func(LoadProgressEvent)
}

// NewSceneRepository はSceneRepositoryを生成する。
func NewSceneRepository() *SceneRepository {
	return &SceneRepository{}
}

// SetLoadProgressReporter はシーン読込進捗受信コールバックを設定する。
func (r *SceneRepository) SetLoadProgressReporter(reporter func(LoadProgressEvent)) {
	if r == nil {
		return
	}
	r.loadProgressReporter = reporter
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *SceneRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), sceneFileExt)
}

// InferName はパスから表示名を推定する。
func (r *SceneRepository) InferName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// Load はシーンドキュメントを読み込む。
func (r *SceneRepository) Load(path string) (*model.Scene, error) {
	if !r.CanLoad(path) {
		return nil, merrors.NewInvalidInputError("シーンファイルの拡張子が未対応です: %s", path)
	}
	loadTargetName := filepath.Base(path)
	logSceneInfo("シーン読込開始: file=%s", loadTargetName)

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("シーンファイルが見つかりません: %s: %w", path, err)
		}
		return nil, fmt.Errorf("シーンファイルの読み取りに失敗しました: %w", err)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeFileReadComplete,
		FileSizeBytes: len(b),
	})
	logSceneInfo("シーン読込ステップ: ファイル読み取り完了 bytes=%d", len(b))

	b, err = decodeToUTF8(b)
	if err != nil {
		return nil, fmt.Errorf("シーンファイルの文字コード変換に失敗しました: %w", err)
	}

	doc := sceneDocument{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("シーンJSONの解析に失敗しました: %w", err)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeJsonParsed,
		FileSizeBytes: len(b),
		ObjectTotal:   len(doc.Objects),
	})
	logSceneInfo("シーン読込ステップ: JSON解析完了 objects=%d", len(doc.Objects))

	scene := model.NewScene()
	scene.ActiveObjectName = doc.ActiveObject
	scene.CursorPosition = vec3FromArray(doc.CursorPosition)
	for i, objDoc := range doc.Objects {
		obj, err := objDoc.toDomain()
		if err != nil {
			return nil, err
		}
		if err := scene.AppendObject(obj); err != nil {
			return nil, err
		}
		r.reportLoadProgress(LoadProgressEvent{
			Type:          LoadProgressEventTypeObjectBuilt,
			FileSizeBytes: len(b),
			ObjectTotal:   len(doc.Objects),
			ObjectDone:    i + 1,
		})
		if logging.DefaultLogger().IsVerboseEnabled(logging.VERBOSE_INDEX_IO) {
			logging.DefaultLogger().Verbose(
				logging.VERBOSE_INDEX_IO,
				"シーン読込ステップ: オブジェクト構築 name=%s type=%s",
				objDoc.Name,
				objDoc.Type,
			)
		}
	}

	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeCompleted,
		FileSizeBytes: len(b),
		ObjectTotal:   len(doc.Objects),
		ObjectDone:    len(doc.Objects),
	})
	logSceneInfo("シーン読込完了: file=%s objects=%d", loadTargetName, scene.Len())
	return scene, nil
}

// Save はシーンドキュメントを保存する。
func (r *SceneRepository) Save(path string, scene *model.Scene) error {
	if strings.TrimSpace(path) == "" {
		return merrors.NewInvalidInputError("保存先パスが未指定です")
	}
	if scene == nil {
		return merrors.NewInvalidInputError("保存対象シーンが未設定です")
	}
	doc, err := newSceneDocument(scene)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("シーンJSONの生成に失敗しました: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("シーンファイルの書き込みに失敗しました: %w", err)
	}
	logSceneInfo("シーン保存完了: file=%s objects=%d bytes=%d", filepath.Base(path), scene.Len(), len(b))
	return nil
}

// reportLoadProgress は読込進捗イベントを通知する。
func (r *SceneRepository) reportLoadProgress(event LoadProgressEvent) {
	if r == nil || r.loadProgressReporter == nil {
		return
	}
	r.loadProgressReporter(event)
}

// decodeToUTF8 はCP932で保存されたドキュメントをUTF-8へ変換する。
// UTF-8として正当なバイト列はそのまま返す。
func decodeToUTF8(b []byte) ([]byte, error) {
	if utf8.Valid(b) {
		return b, nil
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(b)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

// logSceneInfo はシーン入出力のINFOログを出力する。
func logSceneInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}
