package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"urlmap-go/constant"
	"urlmap-go/internal/generator"
	"urlmap-go/internal/handler"
	"urlmap-go/internal/i18n"
	"urlmap-go/internal/middleware"
	"urlmap-go/internal/service"
	"urlmap-go/internal/store"
	"urlmap-go/pkg/logging"
)

func initConfig() {
	wd, _ := os.Getwd()
	log.Printf("Loading config from: %s/config.yaml", wd)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
}

// initStore 按配置选择存储实现：mysql（默认）或 memory（本地运行）
func initStore() store.Store {
	driver := viper.GetString("db.driver")
	if driver == "memory" {
		logging.Logger.Info("Using in-memory store")
		return store.NewMemoryStore()
	}
	return store.InitMySQL(logging.Logger, logging.AtomicLevel)
}

func startServer(r *gin.Engine) {
	addr := viper.GetString("server.addr")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// 启动服务器
	go func() {
		logging.Logger.Info("Server is running on " + addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("Server exiting")
}

func main() {

	initConfig()
	// 初始化日志系统
	logging.InitLoggerFromConfig()

	logging.Logger.Info("Application started")

	st := initStore()
	gen := generator.NewBase62(constant.ShortCodeLength)

	// 初始化 i18n（加载 TOML 文件）
	bundle, err := i18n.InitI18n([]string{
		"./i18n/en.toml",
		"./i18n/zh.toml",
	}, "en")
	if err != nil {
		panic(err)
	}

	urlHandler := handler.NewURLHandler(st, gen, viper.GetString("server.base_url"))

	r := gin.New()
	r.Use(gin.Recovery())

	// 注册全局错误中间件
	r.Use(middleware.GlobalErrorMiddleware())
	r.Use(middleware.ZapGinLogger(logging.Logger))
	r.Use(middleware.CorsMiddleware())
	r.Use(middleware.I18nMiddleware(bundle))

	api := r.Group("/api/v1")
	{
		api.POST("/shorten", urlHandler.ShortenURL)
		api.GET("/urls", urlHandler.ListURLMappings)
		api.GET("/analytics", urlHandler.SystemAnalytics)
		api.GET("/analytics/:shortCode", urlHandler.URLAnalytics)
	}

	// 短码跳转走 NoRoute 兜底，避免根路径通配符与 /api 路由冲突
	r.NoRoute(urlHandler.Redirect)

	c := cron.New()

	// 定时任务：每十分钟输出一次系统统计快照
	_, addErr := c.AddFunc("*/10 * * * *", func() {
		snapshot, err := service.SystemAnalytics(context.Background(), st)
		if err != nil {
			logging.Logger.Error("Failed to collect analytics snapshot", zap.Error(err))
			return
		}
		logging.Logger.Info("Analytics snapshot",
			zap.Int64("total_urls", snapshot.TotalUrls),
			zap.Int64("total_clicks", snapshot.TotalClicks),
			zap.Int64("active_urls", snapshot.ActiveUrls),
			zap.Int64("expired_urls", snapshot.ExpiredUrls),
		)
	})

	if addErr != nil {
		logging.Logger.Fatal("Failed to schedule cron job", zap.Error(addErr))
	}

	c.Start()

	startServer(r)
}
