package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	auditdomain "github.com/wyfcoding/creatorlaunch/internal/audit/domain"
	auditmysql "github.com/wyfcoding/creatorlaunch/internal/audit/infrastructure/persistence/mysql"
	identitydomain "github.com/wyfcoding/creatorlaunch/internal/identity/domain"
	identitymysql "github.com/wyfcoding/creatorlaunch/internal/identity/infrastructure/persistence/mysql"
	investmentapp "github.com/wyfcoding/creatorlaunch/internal/investment/application"
	investmentdomain "github.com/wyfcoding/creatorlaunch/internal/investment/domain"
	investmentmsg "github.com/wyfcoding/creatorlaunch/internal/investment/infrastructure/messaging"
	investmentmysql "github.com/wyfcoding/creatorlaunch/internal/investment/infrastructure/persistence/mysql"
	investmenthttp "github.com/wyfcoding/creatorlaunch/internal/investment/interfaces/http"
	offeringapp "github.com/wyfcoding/creatorlaunch/internal/offering/application"
	offeringdomain "github.com/wyfcoding/creatorlaunch/internal/offering/domain"
	offeringmsg "github.com/wyfcoding/creatorlaunch/internal/offering/infrastructure/messaging"
	offeringmysql "github.com/wyfcoding/creatorlaunch/internal/offering/infrastructure/persistence/mysql"
	offeringhttp "github.com/wyfcoding/creatorlaunch/internal/offering/interfaces/http"
	onboardingapp "github.com/wyfcoding/creatorlaunch/internal/onboarding/application"
	onboardingdomain "github.com/wyfcoding/creatorlaunch/internal/onboarding/domain"
	onboardingmsg "github.com/wyfcoding/creatorlaunch/internal/onboarding/infrastructure/messaging"
	onboardingmysql "github.com/wyfcoding/creatorlaunch/internal/onboarding/infrastructure/persistence/mysql"
	onboardinghttp "github.com/wyfcoding/creatorlaunch/internal/onboarding/interfaces/http"
	"github.com/wyfcoding/creatorlaunch/pkg/config"
	"github.com/wyfcoding/creatorlaunch/pkg/db"
	"github.com/wyfcoding/creatorlaunch/pkg/logger"
	"github.com/wyfcoding/creatorlaunch/pkg/metrics"
	"github.com/wyfcoding/creatorlaunch/pkg/middleware"
	"github.com/wyfcoding/creatorlaunch/pkg/mq"
	"github.com/wyfcoding/creatorlaunch/pkg/outbox"
	"github.com/wyfcoding/creatorlaunch/pkg/utils"
)

var (
	configPath = flag.String("config", "configs/userservice/config.toml", "config file path")
	nodeID     = flag.Int64("node", 1, "snowflake node id")
)

func main() {
	flag.Parse()

	// 1. 初始化配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 初始化日志
	if err := logger.Init(cfg.Logger); err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	ctx := context.Background()

	// 3. 初始化指标
	m := metrics.New(cfg.ServiceName)
	if err := m.Register(); err != nil {
		logger.Error(ctx, "failed to register metrics", "error", err)
		os.Exit(1)
	}
	if cfg.Metrics.Enabled {
		metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// 4. 初始化数据库
	database, err := db.Init(cfg.Database)
	if err != nil {
		logger.Error(ctx, "failed to connect database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(
			&onboardingdomain.CreatorApplication{},
			&onboardingdomain.CreatorProfile{},
			&onboardingdomain.Document{},
			&onboardingdomain.SocialLink{},
			&offeringdomain.Offering{},
			&offeringdomain.OfferingUpdate{},
			&investmentdomain.Investment{},
			&auditdomain.VerificationLog{},
			&identitydomain.UserAccount{},
			&outbox.Message{},
		); err != nil {
			logger.Error(ctx, "failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	// 5. 初始化仓储与发件箱
	appRepo := onboardingmysql.NewApplicationRepo(database.DB)
	profileRepo := onboardingmysql.NewProfileRepo(database.DB)
	docRepo := onboardingmysql.NewDocumentRepo(database.DB)
	linkRepo := onboardingmysql.NewSocialLinkRepo(database.DB)
	offeringRepo := offeringmysql.NewOfferingRepo(database.DB)
	updateRepo := offeringmysql.NewUpdateRepo(database.DB)
	investmentRepo := investmentmysql.NewInvestmentRepo(database.DB)
	auditRepo := auditmysql.NewVerificationLogRepo(database.DB)
	accountRepo := identitymysql.NewAccountRepo(database.DB)

	outboxStore := outbox.NewStore(database.DB)
	onboardingEvents := onboardingmsg.NewOutboxPublisher(outboxStore)
	offeringEvents := offeringmsg.NewOutboxPublisher(outboxStore)
	investmentEvents := investmentmsg.NewOutboxPublisher(outboxStore)

	idgen := utils.NewSnowflakeID(*nodeID)

	// 6. 初始化应用服务
	onboardingSvc := onboardingapp.NewOnboardingService(
		appRepo, profileRepo, docRepo, linkRepo, accountRepo,
		auditRepo, onboardingEvents, m, idgen, database,
	)
	offeringSvc := offeringapp.NewOfferingService(
		offeringRepo, updateRepo, profileRepo,
		auditRepo, offeringEvents, m, idgen, database,
	)
	investmentSvc := investmentapp.NewInvestmentService(
		investmentRepo, offeringRepo,
		auditRepo, investmentEvents, m, idgen, database,
	)

	// 7. 初始化接口层
	gin.SetMode(gin.ReleaseMode)
	if cfg.Environment == "dev" {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(middleware.GinLoggingMiddleware())
	r.Use(middleware.GinRecoveryMiddleware())
	r.Use(middleware.GinCORSMiddleware())
	r.Use(middleware.GinMetricsMiddleware(m))

	auth := middleware.GinAuthMiddleware(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	onboardinghttp.NewOnboardingHandler(onboardingSvc).RegisterRoutes(r, auth)
	offeringhttp.NewOfferingHandler(offeringSvc).RegisterRoutes(r, auth)
	investmenthttp.NewInvestmentHandler(investmentSvc).RegisterRoutes(r, auth)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName, "version": cfg.Version})
	})

	// 8. 启动服务
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}
	g.Go(func() error {
		logger.Info(gctx, "HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Kafka 启用时由中继投递发件箱消息
	if cfg.Kafka.Enabled {
		producer := mq.NewProducer(cfg.Kafka)
		defer producer.Close()

		relay := outbox.NewRelay(
			database.DB, producer,
			time.Duration(cfg.Outbox.PollInterval)*time.Millisecond,
			cfg.Outbox.BatchSize, cfg.Kafka.MaxRetries,
		)
		g.Go(func() error {
			logger.Info(gctx, "outbox relay starting",
				"poll_interval_ms", cfg.Outbox.PollInterval, "batch_size", cfg.Outbox.BatchSize)
			if err := relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if n, err := relay.PendingCount(gctx); err == nil {
						m.OutboxPendingMessages.Set(float64(n))
					}
				}
			}
		})
	}

	// 9. 优雅关闭
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			logger.Info(gctx, "shutting down server...")
		case <-gctx.Done():
			logger.Info(gctx, "context cancelled, shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "server stopped")
}
