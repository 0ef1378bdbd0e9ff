package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/networth-tracker/backend/internal/auth"
	"github.com/networth-tracker/backend/internal/domain"
	"github.com/networth-tracker/backend/internal/usecase/prices"
	"github.com/networth-tracker/backend/internal/usecase/snapshot"
	"github.com/networth-tracker/backend/internal/usecase/summary"
	"github.com/networth-tracker/backend/internal/usecase/superfund"
)

// Server is the HTTP API. It owns the gin router and maps routes onto
// the usecase services and repositories.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	log        zerolog.Logger

	authService     *auth.Service
	jwtManager      *auth.JWTManager
	summaryService  *summary.Service
	snapshotService *snapshot.Service
	superService    *superfund.Service
	pricesService   *prices.Service

	prefsRepo    domain.PreferencesRepository
	bankRepo     domain.BankAccountRepository
	etfRepo      domain.ETFHoldingRepository
	stockRepo    domain.StockHoldingRepository
	cryptoRepo   domain.CryptoHoldingRepository
	etfTxRepo    domain.ETFTransactionRepository
	stockTxRepo  domain.StockTransactionRepository
	cryptoTxRepo domain.CryptoTransactionRepository
	snapshotRepo domain.NetWorthSnapshotRepository
}

// Config holds the server's listen address and CORS origins.
type Config struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// Deps bundles everything the server routes to.
type Deps struct {
	AuthService     *auth.Service
	JWTManager      *auth.JWTManager
	SummaryService  *summary.Service
	SnapshotService *snapshot.Service
	SuperService    *superfund.Service
	PricesService   *prices.Service

	PrefsRepo    domain.PreferencesRepository
	BankRepo     domain.BankAccountRepository
	ETFRepo      domain.ETFHoldingRepository
	StockRepo    domain.StockHoldingRepository
	CryptoRepo   domain.CryptoHoldingRepository
	ETFTxRepo    domain.ETFTransactionRepository
	StockTxRepo  domain.StockTransactionRepository
	CryptoTxRepo domain.CryptoTransactionRepository
	SnapshotRepo domain.NetWorthSnapshotRepository
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(cfg Config, deps Deps, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:          gin.New(),
		log:             log,
		authService:     deps.AuthService,
		jwtManager:      deps.JWTManager,
		summaryService:  deps.SummaryService,
		snapshotService: deps.SnapshotService,
		superService:    deps.SuperService,
		pricesService:   deps.PricesService,
		prefsRepo:       deps.PrefsRepo,
		bankRepo:        deps.BankRepo,
		etfRepo:         deps.ETFRepo,
		stockRepo:       deps.StockRepo,
		cryptoRepo:      deps.CryptoRepo,
		etfTxRepo:       deps.ETFTxRepo,
		stockTxRepo:     deps.StockTxRepo,
		cryptoTxRepo:    deps.CryptoTxRepo,
		snapshotRepo:    deps.SnapshotRepo,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(requestLogger(log))
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: s.router,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.POST("/refresh", s.refresh)
		authGroup.POST("/logout", s.logout)

		authed := authGroup.Group("")
		authed.Use(auth.Middleware(s.jwtManager))
		authed.GET("/user", s.currentUser)
		authed.PUT("/profile", s.updateProfile)
		authed.POST("/password", s.changePassword)
		authed.GET("/preferences", s.getPreferences)
		authed.PUT("/preferences", s.updatePreferences)
	}

	protected := api.Group("")
	protected.Use(auth.Middleware(s.jwtManager))
	{
		protected.GET("/bank-accounts", s.listBankAccounts)
		protected.POST("/bank-accounts", s.createBankAccount)
		protected.GET("/bank-accounts/:id", s.getBankAccount)
		protected.PUT("/bank-accounts/:id", s.updateBankAccount)
		protected.DELETE("/bank-accounts/:id", s.deleteBankAccount)

		protected.GET("/superannuation", s.listSuperAccounts)
		protected.POST("/superannuation", s.createSuperAccount)
		protected.GET("/superannuation/:id", s.getSuperAccount)
		protected.PUT("/superannuation/:id", s.updateSuperAccount)
		protected.DELETE("/superannuation/:id", s.deleteSuperAccount)

		protected.GET("/super-snapshots", s.listSuperSnapshots)
		protected.POST("/super-snapshots", s.createSuperSnapshot)
		protected.GET("/super-snapshots/:id", s.getSuperSnapshot)
		protected.PUT("/super-snapshots/:id", s.updateSuperSnapshot)
		protected.DELETE("/super-snapshots/:id", s.deleteSuperSnapshot)

		protected.GET("/etf-holdings", s.listETFHoldings)
		protected.POST("/etf-holdings", s.createETFHolding)
		protected.GET("/etf-holdings/:id", s.getETFHolding)
		protected.PUT("/etf-holdings/:id", s.updateETFHolding)
		protected.DELETE("/etf-holdings/:id", s.deleteETFHolding)

		protected.GET("/stock-holdings", s.listStockHoldings)
		protected.POST("/stock-holdings", s.createStockHolding)
		protected.GET("/stock-holdings/:id", s.getStockHolding)
		protected.PUT("/stock-holdings/:id", s.updateStockHolding)
		protected.DELETE("/stock-holdings/:id", s.deleteStockHolding)

		protected.GET("/crypto-holdings", s.listCryptoHoldings)
		protected.POST("/crypto-holdings", s.createCryptoHolding)
		protected.GET("/crypto-holdings/:id", s.getCryptoHolding)
		protected.PUT("/crypto-holdings/:id", s.updateCryptoHolding)
		protected.DELETE("/crypto-holdings/:id", s.deleteCryptoHolding)

		protected.GET("/etf-transactions", s.listETFTransactions)
		protected.POST("/etf-transactions", s.createETFTransaction)
		protected.GET("/etf-transactions/:id", s.getETFTransaction)
		protected.PUT("/etf-transactions/:id", s.updateETFTransaction)
		protected.DELETE("/etf-transactions/:id", s.deleteETFTransaction)

		protected.GET("/stock-transactions", s.listStockTransactions)
		protected.POST("/stock-transactions", s.createStockTransaction)
		protected.GET("/stock-transactions/:id", s.getStockTransaction)
		protected.PUT("/stock-transactions/:id", s.updateStockTransaction)
		protected.DELETE("/stock-transactions/:id", s.deleteStockTransaction)

		protected.GET("/crypto-transactions", s.listCryptoTransactions)
		protected.POST("/crypto-transactions", s.createCryptoTransaction)
		protected.GET("/crypto-transactions/:id", s.getCryptoTransaction)
		protected.PUT("/crypto-transactions/:id", s.updateCryptoTransaction)
		protected.DELETE("/crypto-transactions/:id", s.deleteCryptoTransaction)

		protected.GET("/summary", s.getSummary)

		protected.GET("/networth-snapshots", s.listNetWorthSnapshots)
		protected.POST("/networth-snapshots", s.captureNetWorthSnapshot)
		protected.GET("/networth-snapshots/series", s.netWorthChartSeries)
		protected.GET("/networth-snapshots/savings-series", s.savingsSeries)
		protected.GET("/networth-snapshots/:id", s.getNetWorthSnapshot)
		protected.DELETE("/networth-snapshots/:id", s.deleteNetWorthSnapshot)
		protected.GET("/asset-snapshots", s.listAssetSnapshots)

		protected.POST("/crypto/refresh-prices", s.refreshCryptoPrices)
		protected.POST("/etf/refresh-prices", s.refreshETFPrices)
		protected.POST("/stock/refresh-prices", s.refreshStockPrices)
		protected.GET("/crypto/price", s.getCryptoPrice)
		protected.GET("/etf/price", s.getEquityPrice)
		protected.GET("/stock/price", s.getEquityPrice)
	}
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the gin engine, used by handler tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
