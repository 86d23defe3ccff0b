package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/n4clon1/academic-site/config"
	"github.com/n4clon1/academic-site/internal/api/handler"
	"github.com/n4clon1/academic-site/internal/api/router"
	"github.com/n4clon1/academic-site/internal/repository"
	"github.com/n4clon1/academic-site/internal/service"
	"github.com/n4clon1/academic-site/pkg/jwt"
	applogger "github.com/n4clon1/academic-site/pkg/logger"
	"github.com/n4clon1/academic-site/pkg/redis"
)

// sweepInterval 过期会话回收周期
const sweepInterval = 5 * time.Minute

func main() {
	// 0. 读取 .env（不存在时忽略）
	_ = godotenv.Load()

	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("LOAD_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("instructor_selection", cfg.Feature.InstructorSelection),
		zap.Bool("subject_name_setting", cfg.Feature.SubjectNameSetting),
	)

	// 3. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，令牌吊销与上传限流将不可用", zap.Error(err))
		rdb = nil
	}

	// 4. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 5. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(cfg.Auth.SessionTTL)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)

	// 6. 后台回收过期会话
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	svc.Session.StartSweeper(sweepCtx, sweepInterval)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  60 * time.Second, // 上传大文件
		WriteTimeout: 60 * time.Second, // 导出大工作簿
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
