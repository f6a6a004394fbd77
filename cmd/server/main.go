// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gravityreader/gravityreader/internal/api"
	"github.com/gravityreader/gravityreader/internal/config"
	"github.com/gravityreader/gravityreader/internal/llm"
	_ "github.com/gravityreader/gravityreader/internal/llm/providers/google"
	_ "github.com/gravityreader/gravityreader/internal/llm/providers/openai"
	"github.com/gravityreader/gravityreader/internal/services"
	"github.com/gravityreader/gravityreader/internal/utils"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := utils.GetLogger()
	logger.Info("🚀 启动 GravityReader 服务器...", nil)

	// 1. 加载配置（进程内只读）
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	logger.SetLogLevel(utils.ParseLogLevel(cfg.LogLevel))
	if cfg.DebugMode {
		logger.SetLogLevel(utils.DEBUG)
	}
	if cfg.LogFile != "" {
		if err := logger.OpenFile(cfg.LogFile); err != nil {
			logger.Warnf("无法写入日志文件 %s: %v", cfg.LogFile, err)
		}
	}
	defer logger.Close()

	logger.Info("✅ 配置加载完成", utils.Fields{
		"port":     cfg.Port,
		"provider": cfg.LLMProvider,
		"timeout":  cfg.ProviderTimeout,
	})

	// 缺少密钥不阻止启动，请求时再返回错误
	if cfg.APIKey() == "" {
		logger.Warnf("⚠️ %s 未设置，模型调用将会失败", cfg.APIKeyEnv())
	}

	// 3. 初始化模型提供者
	provider, err := llm.GetProvider(cfg.LLMProvider, cfg.LLMConfig())
	if err != nil {
		logger.Fatalf("初始化模型提供者失败: %v（可用: %v）", err, llm.ListProviders())
	}
	logger.Infof("✅ 模型提供者已就绪: %s", provider.GetName())

	// 4. 组装服务与路由
	if cfg.DebugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.Writer()

	readerService := services.NewReaderService(provider, cfg.ProviderTimeout, logger)
	router := api.SetupRouter(api.NewHandler(readerService, logger), logger)

	// 5. 启动服务器
	logger.Infof("🌐 服务器启动在端口 %s", cfg.Port)
	if err := serve(router, cfg.Port, logger); err != nil {
		logger.Fatalf("❌ 服务器异常退出: %v", err)
	}
}

// serve 启动HTTP服务，收到中断信号后优雅关闭
func serve(handler http.Handler, port string, logger *utils.Logger) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("🛑 正在关闭服务器...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	logger.Info("✅ 服务器优雅关闭完成", nil)
	return nil
}
