package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv 清空与配置相关的环境变量，测试结束后由 t.Setenv 自动恢复
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DEBUG_MODE", "LOG_LEVEL", "LOG_FILE",
		"LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL",
		"GOOGLE_API_KEY", "OPENAI_API_KEY", "PROVIDER_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("缺少密钥时不应返回错误: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("默认端口应为 8000，实际: %s", cfg.Port)
	}
	if !cfg.DebugMode {
		t.Errorf("DEBUG_MODE 默认应为 true")
	}
	if cfg.LLMProvider != "google" {
		t.Errorf("默认提供者应为 google，实际: %s", cfg.LLMProvider)
	}
	if cfg.ProviderTimeout != 60*time.Second {
		t.Errorf("默认超时应为 60s，实际: %s", cfg.ProviderTimeout)
	}
	if cfg.APIKey() != "" {
		t.Errorf("未设置密钥时 APIKey 应为空，实际: %q", cfg.APIKey())
	}
	if cfg.APIKeyEnv() != "GOOGLE_API_KEY" {
		t.Errorf("google 提供者的密钥变量应为 GOOGLE_API_KEY，实际: %s", cfg.APIKeyEnv())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DEBUG_MODE", "false")
	t.Setenv("LLM_PROVIDER", " OpenAI ")
	t.Setenv("LLM_MODEL", "gpt-4.1-mini")
	t.Setenv("LLM_BASE_URL", "http://localhost:1234/v1")
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("PROVIDER_TIMEOUT", "15s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.Port != "9090" || cfg.DebugMode {
		t.Errorf("基础配置未按环境变量加载: %+v", cfg)
	}
	if cfg.LLMProvider != "openai" {
		t.Errorf("提供者名称应被规范化为 openai，实际: %q", cfg.LLMProvider)
	}
	if cfg.ProviderTimeout != 15*time.Second {
		t.Errorf("超时应为 15s，实际: %s", cfg.ProviderTimeout)
	}
	if cfg.APIKey() != "o-key" || cfg.APIKeyEnv() != "OPENAI_API_KEY" {
		t.Errorf("openai 提供者应使用 OPENAI_API_KEY，实际: %q", cfg.APIKey())
	}

	llmCfg := cfg.LLMConfig()
	if llmCfg["api_key"] != "o-key" {
		t.Errorf("LLMConfig api_key 错误: %q", llmCfg["api_key"])
	}
	if llmCfg["default_model"] != "gpt-4.1-mini" {
		t.Errorf("LLMConfig default_model 错误: %q", llmCfg["default_model"])
	}
	if llmCfg["base_url"] != "http://localhost:1234/v1" {
		t.Errorf("LLMConfig base_url 错误: %q", llmCfg["base_url"])
	}
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("GOOGLE_API_KEY=from-dotenv\nPORT=7000\n"), 0644); err != nil {
		t.Fatalf("写入 .env 失败: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("GOOGLE_API_KEY")
		os.Unsetenv("PORT")
	})

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.GoogleAPIKey != "from-dotenv" || cfg.Port != "7000" {
		t.Fatalf(".env 中的值未生效: %+v", cfg)
	}
}

func TestLoadReportsUnreadableEnvFile(t *testing.T) {
	clearEnv(t)

	// 目录可以打开但无法读取
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("指定的 .env 无法读取时应返回错误")
	}
}

func TestLoadOmitsEmptyOverrides(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	llmCfg := cfg.LLMConfig()
	if _, ok := llmCfg["default_model"]; ok {
		t.Errorf("未设置 LLM_MODEL 时不应传递 default_model")
	}
	if _, ok := llmCfg["base_url"]; ok {
		t.Errorf("未设置 LLM_BASE_URL 时不应传递 base_url")
	}
}

func TestLoadRejectsInvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER_TIMEOUT", "0s")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("PROVIDER_TIMEOUT 为 0 时应返回错误")
	}

	t.Setenv("PROVIDER_TIMEOUT", "soon")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("无法解析的 PROVIDER_TIMEOUT 应返回错误")
	}
}
