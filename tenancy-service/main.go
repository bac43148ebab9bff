package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"contaia-backend/docs/swagger"
	"contaia-backend/shared/config"
	"contaia-backend/shared/database"
	"contaia-backend/shared/events"
	"contaia-backend/shared/jobs"
	"contaia-backend/shared/logger"
	"contaia-backend/shared/metrics"
	"contaia-backend/shared/tenancy"
	"contaia-backend/shared/utils/cache"
	"contaia-backend/shared/utils/permission"
	"contaia-backend/tenancy-service/handlers"
	"contaia-backend/tenancy-service/middleware"
)

func main() {
	cfg := config.GetConfig()

	log, err := logger.InitLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.EnvFile != "" {
		log.Info("Loaded environment file", zap.String("path", cfg.EnvFile))
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("Tenancy service stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	roles, err := tenancy.LoadRoleTable(cfg.RolesFile, tenancy.RoleOptions{
		FirmHierarchy:         cfg.FirmHierarchy,
		ManagerUserManagement: cfg.ManagerUserManagement,
		UserClientData:        cfg.UserClientData,
	})
	if err != nil {
		return err
	}

	registry, err := tenancy.NewRegistry(tenancy.WithRoleTable(roles), tenancy.WithLogger(log.Named("tenancy")))
	if err != nil {
		return err
	}

	m := metrics.New(cfg.ServiceName, nil)
	registry.Subscribe(m.Observe)

	var cm *cache.CacheManager
	if cfg.CacheEnabled {
		cm, err = cache.Connect(ctx, cfg, log)
		if err != nil {
			log.Warn("Permission cache disabled", zap.Error(err))
			cm = nil
		} else {
			defer cm.Close()
			// decisions cached by a previous process may predate the loaded role table
			if err := cm.InvalidateAllPermissions(ctx); err != nil {
				log.Warn("Failed to flush permission cache", zap.Error(err))
			} else {
				log.Info("Permission cache flushed for role table", zap.String("roles_file", cfg.RolesFile))
			}
		}
	}
	checker := permission.NewChecker(registry, cm, m, log)
	registry.Subscribe(checker.Invalidate)

	var audit *database.AuditWriter
	if cfg.AuditEnabled {
		var db *gorm.DB
		db, err = database.Open(cfg, log)
		if err != nil {
			log.Warn("Audit log disabled", zap.Error(err))
		} else {
			defer func() { _ = database.Close(db) }()
			audit = database.NewAuditWriter(db, log.Named("audit"), 0)
			audit.Start()
			registry.Subscribe(audit.Record)
		}
	}

	hub := events.NewHub([]string{cfg.FrontendURL}, log.Named("events"))
	go hub.Run(ctx)
	registry.Subscribe(hub.Publish)

	if cfg.SeedDemoData {
		demo, err := tenancy.SeedDemoData(registry)
		if err != nil {
			return err
		}
		log.Info("Demo data loaded",
			zap.Int("organizations", len(demo.Organizations)),
			zap.Int("users", len(demo.Users)),
			zap.Int("clients", len(demo.Clients)))
	}

	cron := jobs.NewCronManager(registry, log)
	if err := cron.SetupJobs(jobs.Schedules{
		UsageReset: cfg.UsageResetSchedule,
		QuotaSweep: cfg.QuotaSweepSchedule,
	}); err != nil {
		return err
	}
	cron.Start()
	defer cron.Stop()

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRequestsPerSecond,
		Burst:             cfg.RateLimitBurst,
	})
	go limiter.RunCleanup(time.Minute, ctx.Done())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		logger.Middleware(log),
		m.Middleware(),
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendURL},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status":      "healthy",
			"service":     cfg.ServiceName,
			"websockets":  hub.GetConnectionCount(),
			"cache":       cm != nil,
			"audit_store": audit != nil,
		}
		if cm != nil {
			if err := cm.Ping(c.Request.Context()); err != nil {
				status["cache_error"] = err.Error()
			}
		}
		c.JSON(http.StatusOK, status)
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.GET("/ws/events", hub.HandleWebSocketConnection)

	swagger.SwaggerInfo.Host = "localhost:" + cfg.ServicePort
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api", limiter.Middleware())
	handlers.New(registry, checker, audit, log).Register(api)

	srv := &http.Server{
		Addr:              ":" + cfg.ServicePort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Tenancy service starting", zap.String("port", cfg.ServicePort), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down tenancy service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if audit != nil {
		if err := audit.Close(shutdownCtx); err != nil {
			log.Error("Audit writer shutdown failed", zap.Error(err))
		}
	}
	return nil
}
