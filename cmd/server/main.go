package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/networth-tracker/backend/internal/adapter/httpapi"
	"github.com/networth-tracker/backend/internal/adapter/repository/postgres"
	"github.com/networth-tracker/backend/internal/auth"
	"github.com/networth-tracker/backend/internal/config"
	marketprices "github.com/networth-tracker/backend/internal/prices"
	"github.com/networth-tracker/backend/internal/usecase/prices"
	"github.com/networth-tracker/backend/internal/usecase/snapshot"
	"github.com/networth-tracker/backend/internal/usecase/summary"
	"github.com/networth-tracker/backend/internal/usecase/superfund"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := newLogger(cfg.Logging)

	// 1. Database
	db, err := postgres.NewDB(cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("database ready")

	// 2. Repositories
	userRepo := postgres.NewUserRepository(db)
	prefsRepo := postgres.NewPreferencesRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	bankRepo := postgres.NewBankAccountRepository(db)
	superRepo := postgres.NewSuperAccountRepository(db)
	superSnapRepo := postgres.NewSuperSnapshotRepository(db)
	etfRepo := postgres.NewETFHoldingRepository(db)
	stockRepo := postgres.NewStockHoldingRepository(db)
	cryptoRepo := postgres.NewCryptoHoldingRepository(db)
	etfTxRepo := postgres.NewETFTransactionRepository(db)
	stockTxRepo := postgres.NewStockTransactionRepository(db)
	cryptoTxRepo := postgres.NewCryptoTransactionRepository(db)
	snapshotRepo := postgres.NewNetWorthSnapshotRepository(db)

	// 3. Market data clients, with an optional Redis quote cache
	var quoteCache *marketprices.QuoteCache
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		quoteCache = marketprices.NewQuoteCache(rdb, cfg.Prices.CacheTTL, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("quote cache enabled")
	}
	coinGecko := marketprices.NewCoinGeckoClient(quoteCache)
	yahoo := marketprices.NewYahooClient(quoteCache)

	// 4. Services
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenDuration, cfg.Auth.RefreshTokenDuration)
	passwordManager := auth.NewPasswordManager(cfg.Auth.BcryptCost, cfg.Auth.MinPasswordLength)
	authService := auth.NewService(userRepo, prefsRepo, sessionRepo, jwtManager, passwordManager, log)

	summaryService := summary.NewService(
		bankRepo, superRepo, etfRepo, stockRepo, cryptoRepo,
		etfTxRepo, stockTxRepo, cryptoTxRepo, prefsRepo,
	)
	snapshotService := snapshot.NewService(snapshotRepo, summaryService)
	superService := superfund.NewService(superRepo, superSnapRepo)
	pricesService := prices.NewService(etfRepo, stockRepo, cryptoRepo, prefsRepo, coinGecko, yahoo, log)

	// 5. HTTP server
	server := httpapi.NewServer(
		httpapi.Config{
			Host:           cfg.Server.Host,
			Port:           cfg.Server.Port,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		},
		httpapi.Deps{
			AuthService:     authService,
			JWTManager:      jwtManager,
			SummaryService:  summaryService,
			SnapshotService: snapshotService,
			SuperService:    superService,
			PricesService:   pricesService,
			PrefsRepo:       prefsRepo,
			BankRepo:        bankRepo,
			ETFRepo:         etfRepo,
			StockRepo:       stockRepo,
			CryptoRepo:      cryptoRepo,
			ETFTxRepo:       etfTxRepo,
			StockTxRepo:     stockTxRepo,
			CryptoTxRepo:    cryptoTxRepo,
			SnapshotRepo:    snapshotRepo,
		},
		log,
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(server, log)
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = os.Stderr
	logger := zerolog.New(out)
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *httpapi.Server, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("http server stopped")
}
