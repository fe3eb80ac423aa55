// 指示: miu200521358
package merrors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestInvalidInputErrorClassification(t *testing.T) {
	err := NewInvalidInputError("カーブオブジェクトが不正です: %s", "Curve.001")
	if !IsInvalidInput(err) {
		t.Fatalf("expected invalid input classification")
	}
	if IsInvalidContext(err) {
		t.Fatalf("invalid input should not classify as invalid context")
	}
	if !strings.Contains(err.Error(), "Curve.001") {
		t.Fatalf("message should carry the parameter: %v", err)
	}
}

func TestInvalidContextErrorClassification(t *testing.T) {
	err := NewInvalidContextError("アーマチュアモディファイアが見つかりません")
	if !IsInvalidContext(err) {
		t.Fatalf("expected invalid context classification")
	}
	if IsInvalidInput(err) {
		t.Fatalf("invalid context should not classify as invalid input")
	}
}

func TestClassificationSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("チェーン作成に失敗しました: %w", NewInvalidInputError("スプラインがありません"))
	if !IsInvalidInput(err) {
		t.Fatalf("wrapped error should keep classification")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("errors.Is should match the sentinel")
	}
}

func TestUnrelatedErrorIsNotClassified(t *testing.T) {
	err := errors.New("plain failure")
	if IsInvalidInput(err) || IsInvalidContext(err) {
		t.Fatalf("plain error should not classify")
	}
}
