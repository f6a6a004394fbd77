// Package llmtest 提供测试用的内存模型提供者
package llmtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gravityreader/gravityreader/internal/llm"
)

// StubProvider 返回预设结果，并记录收到的每个提示词
type StubProvider struct {
	Text  string
	Err   error
	Delay time.Duration

	mu      sync.Mutex
	prompts []string
}

// Initialize 不需要任何配置
func (s *StubProvider) Initialize(config map[string]string) error { return nil }

// GetName 返回提供者名称
func (s *StubProvider) GetName() string { return "stub" }

// GetSupportedModels 返回支持的模型列表
func (s *StubProvider) GetSupportedModels() []string { return []string{"stub-1"} }

// CompleteText 记录提示词，按 Delay 等待后返回 Text 或 Err
func (s *StubProvider) CompleteText(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, req.Prompt)
	s.mu.Unlock()

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("stub: %w", ctx.Err())
		}
	}

	if s.Err != nil {
		return nil, s.Err
	}
	return &llm.CompletionResponse{Text: s.Text, ModelName: "stub-1", ProviderName: "stub"}, nil
}

// Prompts 返回已收到提示词的副本
func (s *StubProvider) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// Calls 返回 CompleteText 被调用的次数
func (s *StubProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}
