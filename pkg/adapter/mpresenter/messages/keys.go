// 指示: miu200521358
// Package messages はCLI表示に使うメッセージ文言を提供する。
package messages

// メッセージ文言一覧。
const (
	LabelScenePath  = "入力シーンJSONパス"
	LabelOutputPath = "出力シーンJSONパス"
	LabelPresetPath = "パラメータプリセットYAMLパス"
	LabelArmature   = "対象アーマチュア名(省略時はシーンのアクティブオブジェクト)"
	LabelMesh       = "対象メッシュ名(省略時はシーンのアクティブオブジェクト)"
	LabelChainCurve = "追従カーブオブジェクト名"
	LabelChainCount = "チェーンのリンク数"
	LabelChainName  = "ボーン基底名"
	LabelArrayRoot  = "チェーンのルートボーン名"

	MessageSubcommandRequired = "サブコマンドを指定してください (chain / array / list-curves / list-bones)"
	MessageUnknownSubcommand  = "サブコマンドが未対応です: %s"
	MessageSceneRequired      = "入力シーンファイルを指定してください (-in)"
	MessageSceneExtInvalid    = "入力拡張子が .json ではありません: %s"
	MessageOutputExtInvalid   = "出力拡張子が .json ではありません: %s"
	MessageCurveRequired      = "追従カーブを指定してください (-curve): 候補=%s"
	MessageNoCurveInScene     = "シーン内にカーブオブジェクトがありません"
	MessageRootBoneRequired   = "チェーンのルートボーンを指定してください (-root)"
	MessageNoSelectedVerts    = "複製対象の選択頂点がありません: %s"
	MessageNoDeformBoneFound  = "メッシュを駆動する変形対象ボーンがありません"
	MessageLoadFailed         = "シーン読み込みに失敗しました"
	MessageSaveFailed         = "シーン保存に失敗しました"
	MessagePresetLoadFailed   = "プリセット読み込みに失敗しました"
	MessageChainBuildFailed   = "チェーン作成に失敗しました"
	MessageMeshArrayFailed    = "メッシュ複製に失敗しました"

	WarningOpenCurveWrapTrack = "開いたカーブでは末尾ボーンが先頭ロケータを注視します"
	WarningChainBranchDropped = "分岐したボーンチェーンは先頭の子のみを辿ります"

	LogLoadSuccess       = "読み込み完了: %s"
	LogSaveSuccess       = "保存完了: %s"
	LogChainBuildSuccess = "チェーン作成完了: bones=%d linkLength=%.3f"
	LogMeshArraySuccess  = "メッシュ複製完了: chain=%d duplicatedVerts=%d"
)
