// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config 存储应用配置，进程启动时加载一次，之后只读
type Config struct {
	Port      string `env:"PORT"       envDefault:"8000"`
	DebugMode bool   `env:"DEBUG_MODE" envDefault:"true"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFile   string `env:"LOG_FILE"`

	// LLM相关配置
	LLMProvider     string        `env:"LLM_PROVIDER"     envDefault:"google"`
	LLMModel        string        `env:"LLM_MODEL"`
	LLMBaseURL      string        `env:"LLM_BASE_URL"`
	GoogleAPIKey    string        `env:"GOOGLE_API_KEY"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"60s"`
}

// Load 从环境变量加载配置，.env 文件可选
func Load(envFiles ...string) (*Config, error) {
	// .env 不存在时忽略；已存在的环境变量优先
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("读取 .env 文件失败: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("解析环境变量失败: %w", err)
	}

	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	if cfg.LLMProvider == "" {
		return nil, fmt.Errorf("LLM_PROVIDER 不能为空")
	}
	if cfg.ProviderTimeout <= 0 {
		return nil, fmt.Errorf("PROVIDER_TIMEOUT 必须大于 0，当前值: %s", cfg.ProviderTimeout)
	}

	return &cfg, nil
}

// APIKey 返回当前提供者使用的密钥
func (c *Config) APIKey() string {
	switch c.LLMProvider {
	case "openai":
		return c.OpenAIAPIKey
	default:
		return c.GoogleAPIKey
	}
}

// APIKeyEnv 返回当前提供者密钥对应的环境变量名，用于日志提示
func (c *Config) APIKeyEnv() string {
	switch c.LLMProvider {
	case "openai":
		return "OPENAI_API_KEY"
	default:
		return "GOOGLE_API_KEY"
	}
}

// LLMConfig 生成传给 llm.GetProvider 的配置表
func (c *Config) LLMConfig() map[string]string {
	cfg := map[string]string{
		"api_key": c.APIKey(),
	}
	if c.LLMModel != "" {
		cfg["default_model"] = c.LLMModel
	}
	if c.LLMBaseURL != "" {
		cfg["base_url"] = c.LLMBaseURL
	}
	return cfg
}
