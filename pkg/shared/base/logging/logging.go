// 指示: miu200521358
// Package logging はツール共通のログ出力を提供する。
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// VerboseIndex は詳細ログの出力区分を表す。
type VerboseIndex int

const (
	// VERBOSE_INDEX_RIG はリグ編集コマンドの詳細ログ区分を表す。
	VERBOSE_INDEX_RIG VerboseIndex = iota
	// VERBOSE_INDEX_IO はシーン入出力の詳細ログ区分を表す。
	VERBOSE_INDEX_IO

	verboseIndexCount
)

// ILogger はログ出力契約を表す。
type ILogger interface {
	// Info は情報ログを出力する。
	Info(format string, params ...any)
	// Debug はデバッグログを出力する。
	Debug(format string, params ...any)
	// Warn は警告ログを出力する。
	Warn(format string, params ...any)
	// Error はエラーログを出力する。
	Error(format string, params ...any)
	// IsVerboseEnabled は指定区分の詳細ログ有効状態を返す。
	IsVerboseEnabled(index VerboseIndex) bool
	// Verbose は指定区分の詳細ログを出力する。
	Verbose(index VerboseIndex, format string, params ...any)
}

// Logger はzapを用いたILogger実装を表す。
type Logger struct {
	sugar   *zap.SugaredLogger
	mu      sync.RWMutex
	verbose [verboseIndexCount]bool
}

var (
	defaultLoggerOnce sync.Once
	defaultLogger     *Logger
)

// DefaultLogger は既定ロガーを返す。
func DefaultLogger() *Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = newConsoleLogger()
	})
	return defaultLogger
}

// newConsoleLogger は標準エラー向けコンソールロガーを生成する。
func newConsoleLogger() *Logger {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	config.DisableStacktrace = true
	zapLogger, err := config.Build()
	if err != nil {
		zapLogger = zap.NewNop()
	}
	return &Logger{sugar: zapLogger.Sugar()}
}

// NewNopLogger は出力しないロガーを生成する。
func NewNopLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Info は情報ログを出力する。
func (l *Logger) Info(format string, params ...any) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Infof(format, params...)
}

// Debug はデバッグログを出力する。
func (l *Logger) Debug(format string, params ...any) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Debugf(format, params...)
}

// Warn は警告ログを出力する。
func (l *Logger) Warn(format string, params ...any) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Warnf(format, params...)
}

// Error はエラーログを出力する。
func (l *Logger) Error(format string, params ...any) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Errorf(format, params...)
}

// SetVerboseEnabled は指定区分の詳細ログ有効状態を設定する。
func (l *Logger) SetVerboseEnabled(index VerboseIndex, enabled bool) {
	if l == nil || index < 0 || index >= verboseIndexCount {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose[index] = enabled
}

// IsVerboseEnabled は指定区分の詳細ログ有効状態を返す。
func (l *Logger) IsVerboseEnabled(index VerboseIndex) bool {
	if l == nil || index < 0 || index >= verboseIndexCount {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.verbose[index]
}

// Verbose は指定区分の詳細ログを出力する。
func (l *Logger) Verbose(index VerboseIndex, format string, params ...any) {
	if !l.IsVerboseEnabled(index) {
		return
	}
	l.sugar.Debugf(format, params...)
}
