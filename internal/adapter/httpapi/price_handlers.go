package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/networth-tracker/backend/internal/auth"
	"github.com/networth-tracker/backend/internal/domain"
)

type priceResponse struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

// POST /api/crypto/refresh-prices
func (s *Server) refreshCryptoPrices(c *gin.Context) {
	result, err := s.pricesService.RefreshCryptoPrices(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /api/etf/refresh-prices
func (s *Server) refreshETFPrices(c *gin.Context) {
	result, err := s.pricesService.RefreshETFPrices(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /api/stock/refresh-prices
func (s *Server) refreshStockPrices(c *gin.Context) {
	result, err := s.pricesService.RefreshStockPrices(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/crypto/price?coingecko_id=<id>
func (s *Server) getCryptoPrice(c *gin.Context) {
	coinID := c.Query("coingecko_id")
	if coinID == "" {
		writeError(c, fmt.Errorf("%w: coingecko_id is required", domain.ErrInvalidInput))
		return
	}

	price, err := s.pricesService.CryptoPrice(c.Request.Context(), auth.UserID(c), coinID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, priceResponse{Symbol: coinID, Price: price})
}

// GET /api/etf/price?ticker=<symbol>&exchange=<exchange>
// GET /api/stock/price?ticker=<symbol>&exchange=<exchange>
func (s *Server) getEquityPrice(c *gin.Context) {
	ticker := c.Query("ticker")
	if ticker == "" {
		writeError(c, fmt.Errorf("%w: ticker is required", domain.ErrInvalidInput))
		return
	}

	price, err := s.pricesService.EquityPrice(c.Request.Context(), ticker, c.Query("exchange"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, priceResponse{Symbol: ticker, Price: price})
}
