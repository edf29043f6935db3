package main

import (
	"context"
	"database/sql"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/auth"
	"github.com/onerilhan/go-mining-api/internal/cache"
	"github.com/onerilhan/go-mining-api/internal/config"
	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/handlers"
	"github.com/onerilhan/go-mining-api/internal/logger"
	"github.com/onerilhan/go-mining-api/internal/middleware"
	"github.com/onerilhan/go-mining-api/internal/middleware/validation"
	"github.com/onerilhan/go-mining-api/internal/migration"
	"github.com/onerilhan/go-mining-api/internal/repository"
	"github.com/onerilhan/go-mining-api/internal/services"
	"github.com/onerilhan/go-mining-api/migrations"
)

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		stdlog.Println(".env dosyası bulunamadı, ortam değişkenlerinden okunacak.")
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("❌ Geçersiz yapılandırma")
	}

	log.Info().
		Str("environment", cfg.AppEnv).
		Str("port", cfg.Port).
		Msg("🚀 Bulut Madencilik API başlatıldı")

	// Arka plan işleri bu context bitince durur
	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	database, err := db.Connect(cfg.GetDSN(), cfg.DBMaxOpenConns)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Veritabanı bağlantısı başarısız")
	}
	defer database.Close()

	if cfg.AutoMigrate {
		runStartupMigrations(appCtx, database, cfg)
	}

	appCache, closeCache := setupCache(appCtx, cfg)
	defer closeCache()

	// Repository katmanı
	userRepo := repository.NewUserRepository(database)
	userRigRepo := repository.NewUserRigRepository(database)
	withdrawalRepo := repository.NewWithdrawalRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	ticketRepo := repository.NewTicketRepository(database)
	methodRepo := repository.NewPaymentMethodRepository(database)
	settingRepo := repository.NewSettingRepository(database)
	auditRepo := repository.NewAuditRepository(database)

	// Service katmanı
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	userService := services.NewUserService(userRepo, auditRepo, tokens)
	settingService := services.NewSettingService(database, settingRepo, appCache, cfg.CacheTTL)
	if err := settingService.SeedDefaults(appCtx); err != nil {
		log.Fatal().Err(err).Msg("❌ Varsayılan ayarlar yazılamadı")
	}

	rigService := services.NewRigService(database, appCache, cfg.CacheTTL)
	methodService := services.NewPaymentMethodService(methodRepo, auditRepo, appCache, cfg.CacheTTL)
	earningsService := services.NewEarningsService(database)
	depositService := services.NewDepositService(database, methodRepo, settingService)
	withdrawalService := services.NewWithdrawalService(database, methodRepo, settingService)
	notificationService := services.NewNotificationService(notificationRepo)
	ticketService := services.NewTicketService(ticketRepo, notificationRepo)
	adminService := services.NewAdminService(database)
	dashboardService := services.NewDashboardService(userRepo, userRigRepo, withdrawalRepo, transactionRepo, notificationRepo)

	// Süresi dolan rig'leri sahipleri adına kapatan kuyruk (3 worker, 50 buffer)
	settlementQueue := services.NewSettlementQueue(3, earningsService, 50)
	settlementQueue.Start(appCtx)
	sweeper := services.NewRigSweeper(userRigRepo, settlementQueue, cfg.RigSweepInterval)
	sweeperCtx, stopSweeper := context.WithCancel(appCtx)
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		sweeper.Run(sweeperCtx)
	}()

	metrics := middleware.NewMetrics(appCtx, nil)

	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:   handlers.NewAuthHandler(userService),
		Public: handlers.NewPublicHandler(database, rigService, methodService, settingService),
		User: handlers.NewUserHandler(handlers.UserHandlerDeps{
			Users:         userService,
			Dashboard:     dashboardService,
			Rigs:          rigService,
			Earnings:      earningsService,
			Deposits:      depositService,
			Withdrawals:   withdrawalService,
			Notifications: notificationService,
		}),
		Ticket: handlers.NewTicketHandler(ticketService),
		Admin: handlers.NewAdminHandler(handlers.AdminHandlerDeps{
			Users:          userService,
			Admin:          adminService,
			Deposits:       depositService,
			Withdrawals:    withdrawalService,
			Rigs:           rigService,
			PaymentMethods: methodService,
			Settings:       settingService,
			Metrics:        metrics,
		}),
		Authenticate: middleware.AuthMiddleware(tokens, userService),
		Maintenance:  middleware.MaintenanceMiddleware(settingService),
		Metrics:      metrics.Middleware,
	})

	rateLimiter := middleware.NewRateLimiter(appCtx, middleware.NewRateLimitConfig(cfg.RateLimitPerMinute))

	// Dıştan içe: panic yakalama, /api prefix, log, güvenlik başlıkları,
	// CORS, rate limit, doğrulama, router
	var handler http.Handler = router
	handler = validation.Middleware(nil)(handler)
	handler = rateLimiter.Handler()(handler)
	handler = middleware.CORSMiddleware(middleware.NewCORSConfig(cfg.CORSOrigins))(handler)
	handler = middleware.SecurityHeadersMiddleware(middleware.SecurityConfigForEnv(cfg.AppEnv))(handler)
	handler = middleware.RequestLoggingMiddleware(middleware.DefaultLoggingConfig())(handler)
	handler = middleware.StripPrefix("/api")(handler)
	handler = middleware.ErrorHandlingMiddlewareForEnv(cfg.AppEnv)(handler)

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Info().
			Str("addr", serverAddr).
			Int("read_timeout", 15).
			Int("write_timeout", 15).
			Int("idle_timeout", 60).
			Msg("🌐 HTTP Server başlatıldı")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Server başlatma hatası")
		}
	}()

	<-shutdown
	log.Info().Msg("🛑 Shutdown signal alındı, server kapatılıyor...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// 1. Yeni istekleri durdur, aktif olanları bekle
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ HTTP Server kapatma hatası")
	} else {
		log.Info().Msg("✅ HTTP Server kapatıldı")
	}

	// 2. Sweeper kuyruğa job eklemeyi bırakmalı, sonra kuyruk boşaltılır
	stopSweeper()
	<-sweeperDone
	settlementQueue.Stop()
	log.Info().Msg("✅ Settlement kuyruğu kapatıldı")

	// 3. Rate limiter temizliği ve metrik izleyici
	stopApp()

	log.Info().Msg("👋 Bulut Madencilik API kapatıldı")
}

// runStartupMigrations gömülü migration'ları uygular
func runStartupMigrations(ctx context.Context, database *sql.DB, cfg *config.Config) {
	runner := migration.NewRunner(database, migrations.FS, migration.StartupConfig(cfg.MigrationsPath, cfg.AppEnv))
	results, err := runner.Up(ctx, 0)
	if err != nil {
		log.Fatal().Err(err).Int("applied", len(results)).Msg("❌ Migration başarısız")
	}
	if len(results) > 0 {
		log.Info().Int("applied", len(results)).Msg("🗄️  Migration'lar uygulandı")
	}
}

// setupCache REDIS_ADDR boşsa ya da Redis'e ulaşılamazsa önbelleksiz çalışır
func setupCache(ctx context.Context, cfg *config.Config) (cache.Cache, func()) {
	if cfg.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR ayarlanmamış, önbellek kapalı")
		return cache.NoopCache{}, func() {}
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis kullanılamıyor, önbellek kapalı")
		return cache.NoopCache{}, func() {}
	}
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			log.Warn().Err(err).Msg("Redis bağlantısı kapatılamadı")
		}
	}
}
