// internal/services/reader_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"

	apperrors "github.com/gravityreader/gravityreader/internal/errors"
	"github.com/gravityreader/gravityreader/internal/llm"
	"github.com/gravityreader/gravityreader/internal/models"
	"github.com/gravityreader/gravityreader/internal/utils"
)

// DefaultProviderTimeout 单次模型调用的默认超时
const DefaultProviderTimeout = 60 * time.Second

// MsgNoText 请求中缺少文本时返回的描述
const MsgNoText = "No text provided"

const (
	paragraphInstruction = "Split the text by PARAGRAPHS. Translate each paragraph as a whole unit."
	sentenceInstruction  = "Split the text by SENTENCES. Translate each sentence individually."

	analyzePromptTemplate = `You are a professional translator. Translate the following English text into fluent Traditional Chinese (Taiwan).

Instruction: %s

Strict Output Format: Return a raw JSON list of objects. Each object must have ONLY two fields:

en: The original English text segment (sentence or paragraph).
zh: The Traditional Chinese translation. DO NOT provide any grammar notes, vocabulary lists, or explanations. Just the translation.

Text to analyze:
%s
`

	summarizePromptTemplate = `You are a research assistant. Summarize the provided text into approximately %d Traditional Chinese words. Capture the main arguments and conclusions.

Text to summarize:
%s
`

	jsonFenceOpen = "```json"
	fenceClose    = "```"
)

// ReaderService 负责构建提示词、调用模型并整理输出
type ReaderService struct {
	provider llm.Provider
	timeout  time.Duration
	logger   *utils.Logger
}

// NewReaderService 创建阅读服务，timeout 不大于 0 时使用默认值
func NewReaderService(provider llm.Provider, providerTimeout time.Duration, logger *utils.Logger) *ReaderService {
	if providerTimeout <= 0 {
		providerTimeout = DefaultProviderTimeout
	}
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &ReaderService{
		provider: provider,
		timeout:  providerTimeout,
		logger:   logger,
	}
}

// AnalyzeInstruction 返回模式对应的切分指令
func AnalyzeInstruction(mode models.AnalyzeMode) string {
	if mode.Normalize() == models.ModeParagraph {
		return paragraphInstruction
	}
	return sentenceInstruction
}

// BuildAnalyzePrompt 构建翻译分析提示词
func BuildAnalyzePrompt(text string, mode models.AnalyzeMode) string {
	return fmt.Sprintf(analyzePromptTemplate, AnalyzeInstruction(mode), text)
}

// BuildSummarizePrompt 构建摘要提示词
func BuildSummarizePrompt(text string, length int) string {
	return fmt.Sprintf(summarizePromptTemplate, length, text)
}

// StripCodeFence 去掉开头的 "```json" 和结尾的 "```"（若存在），再去除首尾空白。
// 不做其他处理，也不校验结果是否为合法 JSON。
func StripCodeFence(raw string) string {
	text := raw
	if strings.HasPrefix(text, jsonFenceOpen) {
		text = text[len(jsonFenceOpen):]
	}
	if strings.HasSuffix(text, fenceClose) {
		text = text[:len(text)-len(fenceClose)]
	}
	return strings.TrimSpace(text)
}

// Analyze 把文本按句或按段翻译成繁体中文，返回去掉代码块标记后的模型输出
func (s *ReaderService) Analyze(ctx context.Context, text string, mode models.AnalyzeMode) (string, error) {
	if text == "" {
		return "", apperrors.NewValidationError(MsgNoText, nil)
	}

	output, err := s.generate(ctx, BuildAnalyzePrompt(text, mode))
	if err != nil {
		return "", err
	}

	return StripCodeFence(output), nil
}

// Summarize 生成约 length 个繁体中文字的摘要，原样返回模型输出
func (s *ReaderService) Summarize(ctx context.Context, text string, length int) (string, error) {
	if text == "" {
		return "", apperrors.NewValidationError(MsgNoText, nil)
	}

	return s.generate(ctx, BuildSummarizePrompt(text, length))
}

// generate 每个请求只调用一次模型，不重试
func (s *ReaderService) generate(ctx context.Context, prompt string) (string, error) {
	if s.provider == nil {
		return "", apperrors.NewProviderError("", llm.ErrUnknownProvider)
	}

	executor := timeout.New[*llm.CompletionResponse](timeout.Config{
		DefaultTimeout: s.timeout,
	})

	start := time.Now()
	resp, err := executor.Execute(ctx, s.timeout, func(ctx context.Context) (*llm.CompletionResponse, error) {
		return s.provider.CompleteText(ctx, llm.CompletionRequest{Prompt: prompt})
	})
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.NewTimeoutError(
				fmt.Sprintf("调用模型超时(%s)", s.timeout),
				fmt.Errorf("model call timed out after %s: %w", s.timeout, err),
			)
		}
		return "", apperrors.NewProviderError("", err)
	}
	if resp == nil {
		return "", apperrors.NewProviderError("", llm.ErrEmptyResponse)
	}

	s.logger.Debug("模型调用完成", utils.Fields{
		"provider":      s.provider.GetName(),
		"model":         resp.ModelName,
		"elapsed_ms":    elapsed.Milliseconds(),
		"output_tokens": resp.OutputTokens,
	})

	return resp.Text, nil
}
