package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/networth-tracker/backend/internal/auth"
	"github.com/networth-tracker/backend/internal/domain"
)

func toETFHoldingResponse(h *domain.ETFHolding) holdingResponse {
	v := h.Valuation()
	return holdingResponse{
		ID:             h.ID.String(),
		Symbol:         h.Symbol,
		Name:           h.Name,
		Exchange:       h.Exchange,
		Units:          h.Units,
		AveragePrice:   h.AveragePrice,
		CurrentPrice:   h.CurrentPrice,
		MarketValue:    v.MarketValue,
		CostBasis:      v.CostBasis,
		UnrealisedGain: v.UnrealisedGain,
		Notes:          h.Notes,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}

func toStockHoldingResponse(h *domain.StockHolding) holdingResponse {
	v := h.Valuation()
	return holdingResponse{
		ID:             h.ID.String(),
		Symbol:         h.Symbol,
		Name:           h.Name,
		Exchange:       h.Exchange,
		Units:          h.Units,
		AveragePrice:   h.AveragePrice,
		CurrentPrice:   h.CurrentPrice,
		MarketValue:    v.MarketValue,
		CostBasis:      v.CostBasis,
		UnrealisedGain: v.UnrealisedGain,
		Notes:          h.Notes,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}

func toCryptoHoldingResponse(h *domain.CryptoHolding) cryptoHoldingResponse {
	v := h.Valuation()
	return cryptoHoldingResponse{
		ID:             h.ID.String(),
		Symbol:         h.Symbol,
		Name:           h.Name,
		CoinGeckoID:    h.CoinGeckoID,
		Quantity:       h.Quantity,
		AveragePrice:   h.AveragePrice,
		CurrentPrice:   h.CurrentPrice,
		MarketValue:    v.MarketValue,
		CostBasis:      v.CostBasis,
		UnrealisedGain: v.UnrealisedGain,
		WalletAddress:  h.WalletAddress,
		Exchange:       h.Exchange,
		Notes:          h.Notes,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}

func (r *holdingRequest) toETF() (*domain.ETFHolding, error) {
	units, avg, current, err := r.amounts()
	if err != nil {
		return nil, err
	}
	return &domain.ETFHolding{
		Symbol:       r.Symbol,
		Name:         r.Name,
		Exchange:     r.Exchange,
		Units:        units,
		AveragePrice: avg,
		CurrentPrice: current,
		Notes:        r.Notes,
	}, nil
}

func (r *holdingRequest) toStock() (*domain.StockHolding, error) {
	units, avg, current, err := r.amounts()
	if err != nil {
		return nil, err
	}
	return &domain.StockHolding{
		Symbol:       r.Symbol,
		Name:         r.Name,
		Exchange:     r.Exchange,
		Units:        units,
		AveragePrice: avg,
		CurrentPrice: current,
		Notes:        r.Notes,
	}, nil
}

func (r *cryptoHoldingRequest) toDomain() (*domain.CryptoHolding, error) {
	quantity, err := domain.ParseAmountOrZero(r.Quantity)
	if err != nil {
		return nil, err
	}
	avg, err := domain.ParseAmountOrZero(r.AveragePrice)
	if err != nil {
		return nil, err
	}
	current, err := domain.ParseAmountOrZero(r.CurrentPrice)
	if err != nil {
		return nil, err
	}
	return &domain.CryptoHolding{
		Symbol:        r.Symbol,
		Name:          r.Name,
		CoinGeckoID:   r.CoinGeckoID,
		Quantity:      quantity,
		AveragePrice:  avg,
		CurrentPrice:  current,
		WalletAddress: r.WalletAddress,
		Exchange:      r.Exchange,
		Notes:         r.Notes,
	}, nil
}

// GET /api/etf-holdings
func (s *Server) listETFHoldings(c *gin.Context) {
	holdings, err := s.etfRepo.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]holdingResponse, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, toETFHoldingResponse(h))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/etf-holdings
func (s *Server) createETFHolding(c *gin.Context) {
	var req holdingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	holding, err := req.toETF()
	if err != nil {
		writeError(c, err)
		return
	}
	holding.ID = uuid.New()
	holding.UserID = auth.UserID(c)
	if err := holding.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.etfRepo.Create(c.Request.Context(), holding); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toETFHoldingResponse(holding))
}

// GET /api/etf-holdings/:id
func (s *Server) getETFHolding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	holding, err := s.etfRepo.GetByID(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toETFHoldingResponse(holding))
}

// PUT /api/etf-holdings/:id
func (s *Server) updateETFHolding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req holdingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	holding, err := req.toETF()
	if err != nil {
		writeError(c, err)
		return
	}
	holding.ID = id
	holding.UserID = auth.UserID(c)
	if err := holding.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.etfRepo.Update(c.Request.Context(), holding); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toETFHoldingResponse(holding))
}

// DELETE /api/etf-holdings/:id
func (s *Server) deleteETFHolding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.etfRepo.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/stock-holdings
func (s *Server) listStockHoldings(c *gin.Context) {
	holdings, err := s.stockRepo.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]holdingResponse, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, toStockHoldingResponse(h))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/stock-holdings
func (s *Server) createStockHolding(c *gin.Context) {
	var req holdingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	holding, err := req.toStock()
	if err != nil {
		writeError(c, err)
		return
	}
	holding.ID = uuid.New()
	holding.UserID = auth.UserID(c)
	if err := holding.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.stockRepo.Create(c.Request.Context(), holding); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toStockHoldingResponse(holding))
}

// GET /api/stock-holdings/:id
func (s *Server) getStockHolding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	holding, err := s.stockRepo.GetByID(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStockHoldingResponse(holding))
}

// PUT /api/stock-holdings/:id
func (s *Server) updateStockHolding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req holdingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	holding, err := req.toStock()
	if err != nil {
		writeError(c, err)
		return
	}
	holding.ID = id
	holding.UserID = auth.UserID(c)
	if err := holding.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.stockRepo.Update(c.Request.Context(), holding); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStockHoldingResponse(holding))
}

// DELETE /api/stock-holdings/:id
func (s *Server) deleteStockHolding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.stockRepo.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/crypto-holdings
func (s *Server) listCryptoHoldings(c *gin.Context) {
	holdings, err := s.cryptoRepo.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]cryptoHoldingResponse, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, toCryptoHoldingResponse(h))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/crypto-holdings
func (s *Server) createCryptoHolding(c *gin.Context) {
	var req cryptoHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	holding, err := req.toDomain()
	if err != nil {
		writeError(c, err)
		return
	}
	holding.ID = uuid.New()
	holding.UserID = auth.UserID(c)
	if err := holding.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.cryptoRepo.Create(c.Request.Context(), holding); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCryptoHoldingResponse(holding))
}

// GET /api/crypto-holdings/:id
func (s *Server) getCryptoHolding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	holding, err := s.cryptoRepo.GetByID(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCryptoHoldingResponse(holding))
}

// PUT /api/crypto-holdings/:id
func (s *Server) updateCryptoHolding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req cryptoHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	holding, err := req.toDomain()
	if err != nil {
		writeError(c, err)
		return
	}
	holding.ID = id
	holding.UserID = auth.UserID(c)
	if err := holding.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.cryptoRepo.Update(c.Request.Context(), holding); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCryptoHoldingResponse(holding))
}

// DELETE /api/crypto-holdings/:id
func (s *Server) deleteCryptoHolding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.cryptoRepo.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
