package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	authapp "github.com/wyfcoding/marketledger/internal/auth/application"
	authdomain "github.com/wyfcoding/marketledger/internal/auth/domain"
	authmemory "github.com/wyfcoding/marketledger/internal/auth/infrastructure/persistence/memory"
	authmysql "github.com/wyfcoding/marketledger/internal/auth/infrastructure/persistence/mysql"
	authhttp "github.com/wyfcoding/marketledger/internal/auth/interfaces/http"
	"github.com/wyfcoding/marketledger/internal/marketplace/application"
	"github.com/wyfcoding/marketledger/internal/marketplace/domain"
	"github.com/wyfcoding/marketledger/internal/marketplace/infrastructure/messaging"
	"github.com/wyfcoding/marketledger/internal/marketplace/infrastructure/persistence/memory"
	"github.com/wyfcoding/marketledger/internal/marketplace/infrastructure/persistence/mysql"
	"github.com/wyfcoding/marketledger/internal/marketplace/interfaces/consumer"
	markethttp "github.com/wyfcoding/marketledger/internal/marketplace/interfaces/http"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/pkg/messagequeue/outbox"
	"github.com/wyfcoding/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

var configPath = flag.String("config", "configs/marketledger/config.toml", "config file path")

func main() {
	flag.Parse()

	// 1. 初始化配置
	var cfg config.Config
	if err := config.Load(*configPath, &cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 初始化日志
	logCfg := &logging.Config{
		Service:    cfg.Server.Name,
		Module:     "marketledger",
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}
	logger := logging.NewFromConfig(logCfg)
	slog.SetDefault(logger.Logger)

	// 3. 初始化指标
	metricsImpl := metrics.NewMetrics(cfg.Server.Name)
	if cfg.Metrics.Enabled {
		go metricsImpl.ExposeHTTP(cfg.Metrics.Port)
	}

	// 4. 初始化存储：配置了数据库走持久化模式，否则（含连接失败）回退内存模式
	var (
		marketRepo domain.MarketRepository
		userRepo   authdomain.UserRepository
		publisher  domain.EventPublisher
	)

	durable := false
	if cfg.Data.Database.DSN != "" {
		db, err := database.NewDB(cfg.Data.Database, cfg.CircuitBreaker, logger, metricsImpl)
		if err != nil {
			slog.Error("failed to connect database, falling back to in-memory mode", "error", err)
		} else {
			if cfg.Server.Environment == "dev" {
				if err := db.RawDB().AutoMigrate(
					&mysql.ProductPO{}, &mysql.OfferPO{}, &mysql.PriceHistoryPO{},
					&authdomain.User{},
				); err != nil {
					slog.Error("failed to migrate database", "error", err)
				}
			}

			outboxMgr := outbox.NewManager(db.RawDB(), nil)
			marketRepo = mysql.NewMarketRepository(db.RawDB())
			userRepo = authmysql.NewUserRepository(db.RawDB())
			publisher = messaging.NewOutboxPublisher(outboxMgr)
			durable = true
			slog.Info("running in durable mode")
		}
	}
	if !durable {
		marketRepo = memory.NewMarketRepository()
		userRepo = authmemory.NewUserRepository()
		publisher = messaging.NewNoopPublisher()
		slog.Info("running in in-memory mode, state is lost on exit")
	}

	// 5. 初始化应用服务
	marketService := application.NewMarketService(marketRepo, publisher)
	tickerProjection := application.NewTickerProjectionService()
	authService := authapp.NewAuthService(userRepo)

	if !durable && cfg.Server.Environment == "dev" {
		seedDevUsers(authService)
	}

	// 6. Kafka 消费者：成交事件 → 行情投影
	if len(cfg.MessageQueue.Kafka.Brokers) > 0 {
		kafkaCfg := &cfg.MessageQueue.Kafka
		kafkaCfg.GroupID = "marketledger-ticker"
		kafkaCfg.Topic = domain.TradeExecutedTopic

		tradeConsumer := kafka.NewConsumer(kafkaCfg, logger, metricsImpl)
		tradeFeed := consumer.NewTradeFeedHandler(tickerProjection, slog.Default())
		tradeFeed.Subscribe(context.Background(), tradeConsumer)
	}

	// 7. 初始化接口层
	gin.SetMode(gin.ReleaseMode)
	if cfg.Server.Environment == "dev" {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		products, err := marketService.ListProducts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "up", "durable": durable, "products": len(products)})
	})

	marketHandler := markethttp.NewMarketHandler(marketService, tickerProjection)
	marketHandler.RegisterRoutes(r.Group(""))
	authHandler := authhttp.NewAuthHandler(authService)
	authHandler.RegisterRoutes(r.Group(""))

	// 8. 启动与优雅关闭
	g, ctx := errgroup.WithContext(context.Background())

	addr := fmt.Sprintf(":%d", cfg.Server.HTTP.Port)
	server := &http.Server{Addr: addr, Handler: r}

	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down...")
		case <-ctx.Done():
		}
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}

// seedDevUsers 内存模式下的开发用账号，避免空凭证库无法登录。
func seedDevUsers(authService *authapp.AuthService) {
	ctx := context.Background()
	seeds := []struct {
		login, password string
		role            authdomain.UserRole
	}{
		{"admin", "admin", authdomain.RoleAdmin},
		{"seller", "seller", authdomain.RoleSeller},
	}
	for _, s := range seeds {
		if err := authService.CreateUser(ctx, s.login, s.password, s.role); err != nil {
			slog.Error("failed to seed user", "login", s.login, "error", err)
		}
	}
}
