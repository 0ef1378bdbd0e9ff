package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/networth-tracker/backend/internal/auth"
	"github.com/networth-tracker/backend/internal/domain"
)

func parseHoldingRef(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: holding must be a valid id", domain.ErrInvalidInput)
	}
	return id, nil
}

func (r *equityTransactionRequest) toETF() (*domain.ETFTransaction, error) {
	holdingID, err := parseHoldingRef(r.HoldingID)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}
	units, err := domain.ParseOptionalAmount(r.Units)
	if err != nil {
		return nil, err
	}
	price, err := domain.ParseOptionalAmount(r.PricePerUnit)
	if err != nil {
		return nil, err
	}
	total, err := domain.ParseAmount(r.TotalAmount)
	if err != nil {
		return nil, err
	}
	brokerage, err := domain.ParseAmountOrZero(r.Brokerage)
	if err != nil {
		return nil, err
	}
	return &domain.ETFTransaction{
		HoldingID:    holdingID,
		Type:         domain.ETFTransactionType(r.Type),
		Date:         date,
		Units:        units,
		PricePerUnit: price,
		TotalAmount:  total,
		Brokerage:    brokerage,
		Notes:        r.Notes,
	}, nil
}

func (r *equityTransactionRequest) toStock() (*domain.StockTransaction, error) {
	holdingID, err := parseHoldingRef(r.HoldingID)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}
	units, err := domain.ParseOptionalAmount(r.Units)
	if err != nil {
		return nil, err
	}
	price, err := domain.ParseOptionalAmount(r.PricePerUnit)
	if err != nil {
		return nil, err
	}
	total, err := domain.ParseAmount(r.TotalAmount)
	if err != nil {
		return nil, err
	}
	brokerage, err := domain.ParseAmountOrZero(r.Brokerage)
	if err != nil {
		return nil, err
	}
	return &domain.StockTransaction{
		HoldingID:    holdingID,
		Type:         domain.StockTransactionType(r.Type),
		Date:         date,
		Units:        units,
		PricePerUnit: price,
		TotalAmount:  total,
		Brokerage:    brokerage,
		Notes:        r.Notes,
	}, nil
}

func (r *cryptoTransactionRequest) toDomain() (*domain.CryptoTransaction, error) {
	holdingID, err := parseHoldingRef(r.HoldingID)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}
	quantity, err := domain.ParseAmount(r.Quantity)
	if err != nil {
		return nil, err
	}
	price, err := domain.ParseOptionalAmount(r.PricePerUnit)
	if err != nil {
		return nil, err
	}
	total, err := domain.ParseOptionalAmount(r.TotalAmount)
	if err != nil {
		return nil, err
	}
	fee, err := domain.ParseAmountOrZero(r.Fee)
	if err != nil {
		return nil, err
	}
	return &domain.CryptoTransaction{
		HoldingID:    holdingID,
		Type:         domain.CryptoTransactionType(r.Type),
		Date:         date,
		Quantity:     quantity,
		PricePerUnit: price,
		TotalAmount:  total,
		Fee:          fee,
		Exchange:     r.Exchange,
		Notes:        r.Notes,
	}, nil
}

func toETFTransactionResponse(t *domain.ETFTransaction) equityTransactionResponse {
	return equityTransactionResponse{
		ID:           t.ID.String(),
		HoldingID:    t.HoldingID.String(),
		Type:         string(t.Type),
		Date:         dateString(t.Date),
		Units:        t.Units,
		PricePerUnit: t.PricePerUnit,
		TotalAmount:  t.TotalAmount,
		Brokerage:    t.Brokerage,
		Notes:        t.Notes,
		CreatedAt:    t.CreatedAt,
	}
}

func toStockTransactionResponse(t *domain.StockTransaction) equityTransactionResponse {
	return equityTransactionResponse{
		ID:           t.ID.String(),
		HoldingID:    t.HoldingID.String(),
		Type:         string(t.Type),
		Date:         dateString(t.Date),
		Units:        t.Units,
		PricePerUnit: t.PricePerUnit,
		TotalAmount:  t.TotalAmount,
		Brokerage:    t.Brokerage,
		Notes:        t.Notes,
		CreatedAt:    t.CreatedAt,
	}
}

func toCryptoTransactionResponse(t *domain.CryptoTransaction) cryptoTransactionResponse {
	return cryptoTransactionResponse{
		ID:           t.ID.String(),
		HoldingID:    t.HoldingID.String(),
		Type:         string(t.Type),
		Date:         dateString(t.Date),
		Quantity:     t.Quantity,
		PricePerUnit: t.PricePerUnit,
		TotalAmount:  t.TotalAmount,
		Fee:          t.Fee,
		Exchange:     t.Exchange,
		Notes:        t.Notes,
		CreatedAt:    t.CreatedAt,
	}
}

// GET /api/etf-transactions?etf=<uuid>
func (s *Server) listETFTransactions(c *gin.Context) {
	holdingID, ok := queryUUID(c, "etf")
	if !ok {
		return
	}

	transactions, err := s.etfTxRepo.List(c.Request.Context(), auth.UserID(c), holdingID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]equityTransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, toETFTransactionResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/etf-transactions
func (s *Server) createETFTransaction(c *gin.Context) {
	var req equityTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	tx, err := req.toETF()
	if err != nil {
		writeError(c, err)
		return
	}
	tx.ID = uuid.New()
	if err := tx.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.etfTxRepo.Create(c.Request.Context(), auth.UserID(c), tx); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toETFTransactionResponse(tx))
}

// GET /api/etf-transactions/:id
func (s *Server) getETFTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tx, err := s.etfTxRepo.GetByID(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toETFTransactionResponse(tx))
}

// PUT /api/etf-transactions/:id
func (s *Server) updateETFTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req equityTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	tx, err := req.toETF()
	if err != nil {
		writeError(c, err)
		return
	}
	tx.ID = id
	if err := tx.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.etfTxRepo.Update(c.Request.Context(), auth.UserID(c), tx); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toETFTransactionResponse(tx))
}

// DELETE /api/etf-transactions/:id
func (s *Server) deleteETFTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.etfTxRepo.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/stock-transactions?stock=<uuid>
func (s *Server) listStockTransactions(c *gin.Context) {
	holdingID, ok := queryUUID(c, "stock")
	if !ok {
		return
	}

	transactions, err := s.stockTxRepo.List(c.Request.Context(), auth.UserID(c), holdingID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]equityTransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, toStockTransactionResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/stock-transactions
func (s *Server) createStockTransaction(c *gin.Context) {
	var req equityTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	tx, err := req.toStock()
	if err != nil {
		writeError(c, err)
		return
	}
	tx.ID = uuid.New()
	if err := tx.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.stockTxRepo.Create(c.Request.Context(), auth.UserID(c), tx); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toStockTransactionResponse(tx))
}

// GET /api/stock-transactions/:id
func (s *Server) getStockTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tx, err := s.stockTxRepo.GetByID(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStockTransactionResponse(tx))
}

// PUT /api/stock-transactions/:id
func (s *Server) updateStockTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req equityTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	tx, err := req.toStock()
	if err != nil {
		writeError(c, err)
		return
	}
	tx.ID = id
	if err := tx.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.stockTxRepo.Update(c.Request.Context(), auth.UserID(c), tx); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStockTransactionResponse(tx))
}

// DELETE /api/stock-transactions/:id
func (s *Server) deleteStockTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.stockTxRepo.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/crypto-transactions?crypto=<uuid>
func (s *Server) listCryptoTransactions(c *gin.Context) {
	holdingID, ok := queryUUID(c, "crypto")
	if !ok {
		return
	}

	transactions, err := s.cryptoTxRepo.List(c.Request.Context(), auth.UserID(c), holdingID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]cryptoTransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, toCryptoTransactionResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/crypto-transactions
func (s *Server) createCryptoTransaction(c *gin.Context) {
	var req cryptoTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	tx, err := req.toDomain()
	if err != nil {
		writeError(c, err)
		return
	}
	tx.ID = uuid.New()
	if err := tx.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.cryptoTxRepo.Create(c.Request.Context(), auth.UserID(c), tx); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCryptoTransactionResponse(tx))
}

// GET /api/crypto-transactions/:id
func (s *Server) getCryptoTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tx, err := s.cryptoTxRepo.GetByID(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCryptoTransactionResponse(tx))
}

// PUT /api/crypto-transactions/:id
func (s *Server) updateCryptoTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req cryptoTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	tx, err := req.toDomain()
	if err != nil {
		writeError(c, err)
		return
	}
	tx.ID = id
	if err := tx.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.cryptoTxRepo.Update(c.Request.Context(), auth.UserID(c), tx); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCryptoTransactionResponse(tx))
}

// DELETE /api/crypto-transactions/:id
func (s *Server) deleteCryptoTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.cryptoTxRepo.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
