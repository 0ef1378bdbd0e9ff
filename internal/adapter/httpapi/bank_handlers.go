package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/networth-tracker/backend/internal/auth"
)

// GET /api/bank-accounts
func (s *Server) listBankAccounts(c *gin.Context) {
	accounts, err := s.bankRepo.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]bankAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toBankAccountResponse(a))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/bank-accounts
func (s *Server) createBankAccount(c *gin.Context) {
	var req bankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	account, err := req.toDomain()
	if err != nil {
		writeError(c, err)
		return
	}
	account.ID = uuid.New()
	account.UserID = auth.UserID(c)
	if err := account.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.bankRepo.Create(c.Request.Context(), account); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBankAccountResponse(account))
}

// GET /api/bank-accounts/:id
func (s *Server) getBankAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	account, err := s.bankRepo.GetByID(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBankAccountResponse(account))
}

// PUT /api/bank-accounts/:id
func (s *Server) updateBankAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req bankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	account, err := req.toDomain()
	if err != nil {
		writeError(c, err)
		return
	}
	account.ID = id
	account.UserID = auth.UserID(c)
	if err := account.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.bankRepo.Update(c.Request.Context(), account); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBankAccountResponse(account))
}

// DELETE /api/bank-accounts/:id
func (s *Server) deleteBankAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.bankRepo.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
