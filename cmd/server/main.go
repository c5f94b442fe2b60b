package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"payday.backend/internal/config"
	"payday.backend/internal/infrastructure/blockchain"
	"payday.backend/internal/infrastructure/jobs"
	"payday.backend/internal/infrastructure/metrics"
	"payday.backend/internal/infrastructure/mirror"
	"payday.backend/internal/infrastructure/repositories"
	"payday.backend/internal/infrastructure/rewards"
	"payday.backend/internal/interfaces/http/handlers"
	"payday.backend/internal/interfaces/http/middleware"
	"payday.backend/internal/usecases"
	"payday.backend/pkg/jwt"
	"payday.backend/pkg/logger"
	"payday.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newTreasuryClient = blockchain.NewTreasuryClient
	runServer         = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB          = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Register Prometheus collectors
	metrics.Init()

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	scheduleRepo := repositories.NewScheduleRepository(db)
	limitRepo := repositories.NewSpendingLimitRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	payoutRepo := repositories.NewPayoutLogRepository(db)

	// Remote mirror (best-effort replica of schedules and limits)
	remoteMirror := mirror.NewRedisMirror()

	// Treasury client signs and submits payouts
	treasury, err := newTreasuryClient(cfg.Blockchain.RPCURL, cfg.Blockchain.OperatorPrivateKey, map[string]blockchain.TokenConfig{
		"USDC": {
			Address:  cfg.Blockchain.USDCAddress,
			Decimals: cfg.Blockchain.USDCDecimals,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize treasury client: %w", err)
	}

	rewardIssuer := rewards.NewHTTPIssuer(cfg.Rewards.URL)
	nonceStore := redis.NewNonceStore(cfg.Engine.NonceTTL)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(nonceStore, jwtService)
	scheduleUsecase := usecases.NewScheduleUsecase(scheduleRepo, remoteMirror)
	limitUsecase := usecases.NewSpendingLimitUsecase(limitRepo, remoteMirror)
	employeeUsecase := usecases.NewEmployeeUsecase(employeeRepo)
	processorUsecase := usecases.NewProcessorUsecase(scheduleUsecase, payoutRepo, treasury, rewardIssuer)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	scheduleHandler := handlers.NewScheduleHandler(scheduleUsecase, processorUsecase)
	limitHandler := handlers.NewSpendingLimitHandler(limitUsecase)
	employeeHandler := handlers.NewEmployeeHandler(employeeUsecase)
	payoutHandler := handlers.NewPayoutHandler(payoutRepo)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gateJob := jobs.NewAutoApprovalJob(scheduleRepo, scheduleUsecase, limitUsecase, processorUsecase, cfg.Engine.GateInterval)
	go gateJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:     authHandler,
		scheduleHandler: scheduleHandler,
		limitHandler:    limitHandler,
		employeeHandler: employeeHandler,
		payoutHandler:   payoutHandler,
		authMiddleware:  authMiddleware,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		gateJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 PayDay Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
