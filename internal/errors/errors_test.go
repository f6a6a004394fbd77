package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("No text provided", nil)

	if err.Error() != "No text provided" {
		t.Errorf("Error() 错误: %q", err.Error())
	}
	if err.Detail() != "No text provided" {
		t.Errorf("Detail() 错误: %q", err.Detail())
	}
	if err.Code != "VALIDATION_ERROR" {
		t.Errorf("Code 错误: %q", err.Code)
	}
	if !IsValidationError(err) || IsProviderError(err) {
		t.Errorf("类型判断错误")
	}
}

func TestProviderErrorExposesOriginalMessage(t *testing.T) {
	cause := errors.New("google gemini API错误(429): Resource has been exhausted")
	err := NewProviderError("调用模型失败", cause)

	if err.Error() != "调用模型失败: google gemini API错误(429): Resource has been exhausted" {
		t.Errorf("Error() 错误: %q", err.Error())
	}
	if err.Detail() != cause.Error() {
		t.Errorf("Detail() 应返回原始错误文本，实际: %q", err.Detail())
	}
	if !errors.Is(err, cause) {
		t.Errorf("应能通过 errors.Is 找到原始错误")
	}
	if !IsProviderError(err) || IsValidationError(err) {
		t.Errorf("类型判断错误")
	}
}

func TestProviderErrorWithoutMessage(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewProviderError("", cause)

	if err.Error() != cause.Error() {
		t.Errorf("无消息时 Error() 应等于原始错误，实际: %q", err.Error())
	}
}

func TestTimeoutErrorCountsAsProviderError(t *testing.T) {
	err := NewTimeoutError("调用模型超时", context.DeadlineExceeded)

	if !IsTimeoutError(err) {
		t.Errorf("应识别为超时错误")
	}
	if !IsProviderError(err) {
		t.Errorf("超时应归入外部模型错误")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("应保留 context.DeadlineExceeded")
	}
}

func TestDetailOf(t *testing.T) {
	if DetailOf(nil) != "" {
		t.Errorf("nil 错误的描述应为空")
	}

	plain := errors.New("plain failure")
	if DetailOf(plain) != "plain failure" {
		t.Errorf("普通错误应返回 Error()，实际: %q", DetailOf(plain))
	}

	wrapped := fmt.Errorf("handler: %w", NewProviderError("调用模型失败", plain))
	if DetailOf(wrapped) != "plain failure" {
		t.Errorf("被包装的 AppError 应返回原始错误文本，实际: %q", DetailOf(wrapped))
	}
}
