package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	handler "github.com/ArtLegends/medtravel-main-sub002/internal/adapter/handler/http"
	"github.com/ArtLegends/medtravel-main-sub002/internal/cache"
	"github.com/ArtLegends/medtravel-main-sub002/internal/config"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"github.com/ArtLegends/medtravel-main-sub002/internal/infrastructure/crypto"
	"github.com/ArtLegends/medtravel-main-sub002/internal/infrastructure/database"
	"github.com/ArtLegends/medtravel-main-sub002/internal/infrastructure/geoip"
	"github.com/ArtLegends/medtravel-main-sub002/internal/infrastructure/grpc"
	"github.com/ArtLegends/medtravel-main-sub002/internal/infrastructure/http"
	"github.com/ArtLegends/medtravel-main-sub002/internal/infrastructure/mail"
	"github.com/ArtLegends/medtravel-main-sub002/internal/usecase"
	"github.com/ArtLegends/medtravel-main-sub002/pkg/logger"
	"github.com/ArtLegends/medtravel-main-sub002/pkg/messaging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. logger
	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		Development: cfg.Log.Development,
		Service:     cfg.Service.Name,
	})
	if err != nil {
		zapLogger = logger.DefaultZapLogger()
		zapLogger.Warn("Falling back to default logger", zap.Error(err))
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting referral service",
		zap.String("service", cfg.Service.Name),
		zap.String("version", cfg.Service.Version),
		zap.String("environment", cfg.Service.Environment),
		zap.String("registry_source", cfg.Service.Supabase.RegistrySource))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. database
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db, zapLogger)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, zapLogger); err != nil {
			zapLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// 4. repositories
	repos := database.NewRepositories(db, cfg.Service.Supabase, zapLogger)

	// 5. optional infrastructure
	var publisher messaging.Publisher
	if cfg.Redis.Enabled {
		client, err := messaging.NewRedisClient(ctx, messaging.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			zapLogger.Warn("Redis unavailable, domain events disabled", zap.Error(err))
		} else {
			defer client.Close()
			publisher = client
		}
	}

	var mailer usecase.Mailer
	if cfg.Mail.Enabled {
		mailer = mail.NewSMTPMailer(cfg.Mail, zapLogger)
	}

	var locator geoip.Locator = geoip.NoopLocator{}
	if cfg.GeoIP.DatabasePath != "" {
		mm, err := geoip.Open(cfg.GeoIP.DatabasePath)
		if err != nil {
			zapLogger.Warn("GeoIP database unavailable, country lookup disabled",
				zap.String("path", cfg.GeoIP.DatabasePath), zap.Error(err))
		} else {
			defer mm.Close()
			locator = mm
		}
	}

	hasher, err := crypto.NewBlake2bIPHasher(cfg.Referral.IPHashKey)
	if err != nil {
		zapLogger.Fatal("Invalid IP hash key", zap.Error(err))
	}

	roleCache := cache.NewTTLCache[string, []model.Role](cfg.Referral.PrincipalCacheTTL, cfg.Referral.PrincipalCacheMax)
	baselineCache := cache.NewTTLCache[string, bool](cfg.Referral.PrincipalCacheTTL, cfg.Referral.PrincipalCacheMax)
	go roleCache.Run(ctx, time.Minute)
	go baselineCache.Run(ctx, time.Minute)

	// 6. usecases
	cookies := usecase.NewCookieManager(usecase.CookieConfig{
		Name:          cfg.Referral.CookieName,
		MaxAge:        cfg.Referral.CookieMaxAge,
		Secure:        cfg.Referral.CookieSecure,
		Domain:        cfg.Referral.CookieDomain,
		MinCodeLength: cfg.Referral.MinCodeLength,
	})
	sideEffects := usecase.NewBestEffort(zapLogger, cfg.Referral.SideEffectTimeout, 64)
	go drainSideEffectReports(ctx, sideEffects, zapLogger)

	notifier := usecase.NewPartnerNotifier(publisher, mailer, repos.Principals, cfg.Redis.Channel, zapLogger)
	roles := usecase.NewRoleService(repos.Principals, roleCache, zapLogger)

	handlers := handler.Handlers{
		Referral: handler.NewReferralHandler(
			usecase.NewClickRecorder(repos.Registry, repos.Clicks, hasher, locator, cookies, cfg.Referral.MinCodeLength, zapLogger),
			cfg.Referral.LoginRedirect, zapLogger),
		Attribution: handler.NewAttributionHandler(
			usecase.NewSignupBinder(repos.Registry, repos.Attachments, sideEffects, notifier, cfg.Referral.MinCodeLength, zapLogger),
			cookies, zapLogger),
		Lead: handler.NewLeadHandler(
			usecase.NewLeadReconciler(repos.Leads, repos.Principals, baselineCache, roles, sideEffects, notifier, zapLogger),
			zapLogger),
		Conversion: handler.NewConversionHandler(
			usecase.NewConversionService(repos.Conversions, sideEffects, notifier, zapLogger),
			zapLogger),
		Report: handler.NewReportHandler(
			usecase.NewReportService(repos.Clicks, repos.Leads, zapLogger),
			zapLogger),
	}

	// 7. servers
	ping := pingDatabase(db)

	httpServer := http.NewServer(cfg.Server.HTTP, zapLogger)
	httpServer.RegisterRoutes(handlers, cfg.Service.Supabase.JWTSecret, roles, ping)

	grpcServer := grpc.NewServer(cfg.Server.GRPC, zapLogger)
	go grpcServer.WatchHealth(ctx, 10*time.Second, ping)

	go func() {
		if err := httpServer.Start(); err != nil {
			zapLogger.Error("HTTP server stopped", zap.Error(err))
		}
	}()
	go func() {
		if err := grpcServer.Start(); err != nil {
			zapLogger.Error("gRPC server stopped", zap.Error(err))
		}
	}()

	// 8. graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down")

	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Stop(shutdownCtx); err != nil {
		zapLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	grpcServer.Stop()

	zapLogger.Info("Shutdown complete")
}

func pingDatabase(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func drainSideEffectReports(ctx context.Context, sideEffects *usecase.BestEffort, zapLogger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case report := <-sideEffects.Reports():
			zapLogger.Debug("Side effect failure reported",
				zap.String("step", report.Name),
				zap.Duration("duration", report.Duration),
				zap.Error(report.Err))
		}
	}
}
