// internal/llm/providers/openai/openai.go
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"

	"github.com/gravityreader/gravityreader/internal/llm"
)

const defaultModel = "gpt-4.1-mini"

func init() {
	llm.Register("openai", func() llm.Provider {
		return &Provider{
			models: []string{
				"gpt-4.1-mini",
				"gpt-4.1",
				"gpt-4o",
			},
		}
	})
}

// Provider 通过 Responses API 调用 OpenAI 兼容接口
type Provider struct {
	apiKey       string
	client       openai.Client
	defaultModel string
	models       []string
}

// Initialize 缺少密钥时不报错，调用时再返回错误
func (p *Provider) Initialize(config map[string]string) error {
	p.apiKey = strings.TrimSpace(config["api_key"])

	p.defaultModel = defaultModel
	if model := strings.TrimSpace(config["default_model"]); model != "" {
		p.defaultModel = model
	}

	// 不做自动重试：失败直接返回给调用方
	opts := []option.RequestOption{
		option.WithAPIKey(p.apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL := strings.TrimSpace(config["base_url"]); baseURL != "" {
		if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
			return fmt.Errorf("base_url 必须以 http:// 或 https:// 开头: %s", baseURL)
		}
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	p.client = openai.NewClient(opts...)
	return nil
}

func (p *Provider) GetName() string {
	return "openai"
}

func (p *Provider) GetSupportedModels() []string {
	return p.models
}

func (p *Provider) CompleteText(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY %w", llm.ErrMissingAPIKey)
	}

	model := req.Model
	if model == "" {
		model = p.defaultModel
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(req.Prompt),
		},
	}
	if req.SystemPrompt != "" {
		params.Instructions = openai.String(req.SystemPrompt)
	}
	if req.MaxTokens > 0 {
		params.MaxOutputTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(float64(req.Temperature))
	}

	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai 请求失败: %w", err)
	}

	if resp.Status == "incomplete" {
		return nil, fmt.Errorf("openai 响应不完整 (reason = %s)", resp.IncompleteDetails.Reason)
	}

	text := resp.OutputText()
	if text == "" {
		return nil, fmt.Errorf("openai(status=%s): %w", resp.Status, llm.ErrEmptyResponse)
	}

	return &llm.CompletionResponse{
		Text:         text,
		FinishReason: string(resp.Status),
		PromptTokens: int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
		ModelName:    model,
		ProviderName: p.GetName(),
	}, nil
}
