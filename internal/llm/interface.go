// internal/llm/interface.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// 错误定义
var (
	ErrUnknownProvider = errors.New("未知的AI提供者")
	ErrMissingAPIKey   = errors.New("API密钥未配置")
	ErrEmptyResponse   = errors.New("模型未返回任何文本")
)

// CompletionRequest 请求参数标准化
type CompletionRequest struct {
	Prompt       string  `json:"prompt"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	Temperature  float32 `json:"temperature,omitempty"`
	Model        string  `json:"model,omitempty"`
}

// CompletionResponse 响应结构标准化，Text 为模型原始输出
type CompletionResponse struct {
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason,omitempty"`
	PromptTokens int    `json:"prompt_tokens,omitempty"`
	OutputTokens int    `json:"output_tokens,omitempty"`
	ModelName    string `json:"model_name,omitempty"`
	ProviderName string `json:"provider_name,omitempty"`
}

// Provider 定义所有LLM提供者必须实现的接口
type Provider interface {
	// 初始化提供者，传入配置（api_key、default_model、base_url）
	Initialize(config map[string]string) error

	// 获取提供者名称
	GetName() string

	// 获取支持的模型列表
	GetSupportedModels() []string

	// 文本生成
	CompleteText(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// ProviderFactory 提供者工厂
type ProviderFactory func() Provider

// Registry 提供者注册表
type Registry struct {
	mu        sync.RWMutex
	providers map[string]ProviderFactory
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]ProviderFactory)}
}

// DefaultRegistry 全局注册表，各提供者在 init 中注册
var DefaultRegistry = NewRegistry()

// Register 注册一个新的LLM提供者
func (r *Registry) Register(name string, factory ProviderFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = factory
}

// GetProvider 获取指定名称的提供者实例
func (r *Registry) GetProvider(name string, config map[string]string) (Provider, error) {
	r.mu.RLock()
	factory, exists := r.providers[name]
	r.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}

	provider := factory()
	if err := provider.Initialize(config); err != nil {
		return nil, fmt.Errorf("初始化提供者 %s 失败: %w", name, err)
	}

	return provider, nil
}

// ListProviders 返回所有已注册的提供者名称（已排序）
func (r *Registry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register 在全局注册表中注册提供者工厂
func Register(name string, factory ProviderFactory) {
	DefaultRegistry.Register(name, factory)
}

// GetProvider 从全局注册表创建指定名称的提供者实例
func GetProvider(name string, config map[string]string) (Provider, error) {
	return DefaultRegistry.GetProvider(name, config)
}

// ListProviders 返回全局注册表中的提供者名称
func ListProviders() []string {
	return DefaultRegistry.ListProviders()
}
