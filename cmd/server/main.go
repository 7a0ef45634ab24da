package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"upaay/backend/internal/action"
	"upaay/backend/internal/addressbook"
	"upaay/backend/internal/auth"
	"upaay/backend/internal/auth/jwt"
	"upaay/backend/internal/complaint"
	"upaay/backend/internal/config"
	"upaay/backend/internal/health"
	"upaay/backend/internal/logger"
	"upaay/backend/internal/mailer"
	"upaay/backend/internal/middleware"
	"upaay/backend/internal/monitoring"
	"upaay/backend/internal/storage"
	"upaay/backend/internal/storage/memory"
	redisstore "upaay/backend/internal/storage/redis"
	sqlstore "upaay/backend/internal/storage/sql"
	"upaay/backend/internal/translate"
	httptransport "upaay/backend/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := monitoring.NewMetrics()

	// 用户存储：未配置数据库时使用内存存储
	var store storage.Store
	if cfg.Database.Type == "" {
		log.Info("using in-memory user store")
		store = memory.NewStore()
	} else {
		store, err = sqlstore.NewStore(
			cfg.Database.Type,
			cfg.Database.DSN,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
			cfg.Database.ConnMaxLifetime,
		)
		if err != nil {
			log.Fatal("failed to init database", zap.Error(err))
		}
		log.Info("connected to database", zap.String("driver", cfg.Database.Type))
	}
	defer store.Close()

	// Redis 共享翻译缓存（可选）
	var redisClient *redis.Client
	var l2 translate.CacheStore
	if cfg.Redis.Address != "" {
		redisClient, err = redisstore.NewClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("redis unavailable, shared translation cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			l2 = redisstore.NewTranslationCache(redisClient, cfg.Translate.CacheTTL, log)
			log.Info("shared translation cache enabled", zap.String("address", cfg.Redis.Address))
		}
	}

	// 翻译服务：无 API key 时 provider 为 nil，整体直通
	provider, err := translate.NewGoogleProvider(context.Background(), cfg.Translate.APIKey, cfg.Translate.ProviderQPS, log)
	if err != nil {
		log.Fatal("failed to init translation provider", zap.Error(err))
	}
	var translateProvider translate.Provider
	if provider != nil {
		defer provider.Close()
		translateProvider = provider
	}
	translator := translate.NewService(translateProvider, l2, cfg.Translate.DefaultLanguage, metrics, log)

	resolver, err := addressbook.Load(
		cfg.AddressBook.Path,
		cfg.AddressBook.FallbackState,
		cfg.AddressBook.FallbackDepartment,
		log,
	)
	if err != nil {
		log.Fatal("failed to load address book", zap.Error(err))
	}

	dispatcher := mailer.NewSMTPDispatcher(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		log,
	)
	complaints := complaint.NewService(resolver, dispatcher, metrics, log)

	// 动作服务器
	actions := action.NewActions(complaints, translator, log)
	actionEngine := gin.New()
	actionEngine.Use(gin.Recovery(), middleware.HTTPMetrics(metrics))
	action.NewServer(actions, log).Register(actionEngine)

	// 门户认证 API
	authService := auth.NewService(store)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenExpiry)
	authHandler := httptransport.NewAuthHandler(authService, jwtManager, metrics, log)
	relay := httptransport.NewRasaRelay(cfg.Rasa.WebhookURL, log)
	jwtAuth := middleware.NewJWTAuth(jwtManager, log)
	authRouter := httptransport.NewRouter(cfg.CORS.AllowedOrigins, authHandler, relay, jwtAuth, metrics)

	// 运维端点挂在认证服务上
	healthChecker := health.NewHealthChecker(store, redisClient, log)
	authRouter.GET("/metrics", gin.WrapH(metrics.HTTPHandler()))
	authRouter.GET("/health/live", gin.WrapF(healthChecker.LiveEndpoint))
	authRouter.GET("/health/ready", gin.WrapF(healthChecker.ReadyEndpoint))

	actionSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: actionEngine,
	}
	authSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Auth.Host, cfg.Auth.Port),
		Handler: authRouter,
	}

	g, gctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		log.Info("action server listening", zap.String("addr", actionSrv.Addr))
		if err := actionSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("action server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("auth server listening", zap.String("addr", authSrv.Addr))
		if err := authSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("auth server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			log.Info("shutting down", zap.String("signal", sig.String()))
		case <-gctx.Done():
			// 某个服务已失败，顺带关掉另一个
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := actionSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("action server shutdown failed", zap.Error(err))
		}
		if err := authSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("auth server shutdown failed", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("servers stopped")
}
