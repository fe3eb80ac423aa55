// 指示: miu200521358
package model

const (
	// RigWarningOpenCurveWrapTrack は開カーブで終端ボーンが先頭ロケータを注視する構成の警告。
	// 閉カーブ前提の折り返し注視をそのまま保持しているため、開カーブでは挙動が不自然になり得る。
	RigWarningOpenCurveWrapTrack = "RigWarningOpenCurveWrapTrack"
	// RigWarningChainBranchDropped はチェーン走査で先頭以外の子ボーン分岐を無視した警告。
	RigWarningChainBranchDropped = "RigWarningChainBranchDropped"
)
