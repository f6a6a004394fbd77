// internal/llm/providers/google/google.go
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gravityreader/gravityreader/internal/llm"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"
)

func init() {
	llm.Register("google", func() llm.Provider {
		return &Provider{
			models: []string{
				"gemini-2.0-flash",
				"gemini-2.5-flash",
				"gemini-2.5-pro",
			},
		}
	})
}

// Provider 调用 Gemini generateContent 接口
type Provider struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	defaultModel string
	models       []string
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     *float32 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Initialize 缺少密钥时不报错，调用时再返回错误，保证服务可以先启动
func (p *Provider) Initialize(config map[string]string) error {
	p.apiKey = strings.TrimSpace(config["api_key"])
	p.client = &http.Client{}

	p.defaultModel = defaultModel
	if model := strings.TrimSpace(config["default_model"]); model != "" {
		p.defaultModel = model
	}

	p.baseURL = defaultBaseURL
	if baseURL := strings.TrimSpace(config["base_url"]); baseURL != "" {
		if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
			return fmt.Errorf("base_url 必须以 http:// 或 https:// 开头: %s", baseURL)
		}
		p.baseURL = strings.TrimRight(baseURL, "/")
	}

	return nil
}

func (p *Provider) GetName() string {
	return "google gemini"
}

func (p *Provider) GetSupportedModels() []string {
	return p.models
}

func (p *Provider) CompleteText(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY %w", llm.ErrMissingAPIKey)
	}

	model := req.Model
	if model == "" {
		model = p.defaultModel
	}
	// 同时接受 "models/gemini-2.0-flash" 与 "gemini-2.0-flash"
	model = strings.TrimPrefix(model, "models/")

	body := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: req.Prompt}}},
		},
	}
	if req.SystemPrompt != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: req.SystemPrompt}}}
	}
	if req.Temperature > 0 || req.MaxTokens > 0 {
		cfg := &generationConfig{MaxOutputTokens: req.MaxTokens}
		if req.Temperature > 0 {
			temperature := req.Temperature
			cfg.Temperature = &temperature
		}
		body.GenerationConfig = cfg
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("序列化 gemini 请求失败: %w", err)
	}

	// 密钥放在请求头而不是 URL 中，避免出现在传输层错误信息里
	apiURL := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", p.apiKey)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取 gemini 响应失败: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("google gemini API错误(%d): %s", httpResp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("google gemini API错误(%d): %s", httpResp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var response generateResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("解析 gemini 响应失败: %w", err)
	}

	if len(response.Candidates) == 0 {
		if reason := response.PromptFeedback.BlockReason; reason != "" {
			return nil, fmt.Errorf("google gemini 拒绝了请求: %s", reason)
		}
		return nil, fmt.Errorf("google gemini: %w", llm.ErrEmptyResponse)
	}

	candidate := response.Candidates[0]
	var resultText strings.Builder
	for _, pt := range candidate.Content.Parts {
		resultText.WriteString(pt.Text)
	}
	if resultText.Len() == 0 {
		return nil, fmt.Errorf("google gemini(finishReason=%s): %w", candidate.FinishReason, llm.ErrEmptyResponse)
	}

	return &llm.CompletionResponse{
		Text:         resultText.String(),
		FinishReason: candidate.FinishReason,
		PromptTokens: response.UsageMetadata.PromptTokenCount,
		OutputTokens: response.UsageMetadata.CandidatesTokenCount,
		ModelName:    model,
		ProviderName: p.GetName(),
	}, nil
}
