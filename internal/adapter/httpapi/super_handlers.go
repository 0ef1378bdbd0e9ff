package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/networth-tracker/backend/internal/auth"
	"github.com/networth-tracker/backend/internal/domain"
	"github.com/networth-tracker/backend/internal/usecase/superfund"
)

// GET /api/superannuation
func (s *Server) listSuperAccounts(c *gin.Context) {
	accounts, err := s.superService.AccountRepo.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]superAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toSuperAccountResponse(a))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/superannuation
func (s *Server) createSuperAccount(c *gin.Context) {
	var req superAccountRequest
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

	if err := s.superService.AccountRepo.Create(c.Request.Context(), account); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSuperAccountResponse(account))
}

// GET /api/superannuation/:id
func (s *Server) getSuperAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	account, err := s.superService.AccountRepo.GetByID(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSuperAccountResponse(account))
}

// PUT /api/superannuation/:id
func (s *Server) updateSuperAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req superAccountRequest
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

	if err := s.superService.AccountRepo.Update(c.Request.Context(), account); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSuperAccountResponse(account))
}

// DELETE /api/superannuation/:id
func (s *Server) deleteSuperAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.superService.AccountRepo.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/super-snapshots?account=<uuid>
func (s *Server) listSuperSnapshots(c *gin.Context) {
	accountID, ok := queryUUID(c, "account")
	if !ok {
		return
	}

	snapshots, err := s.superService.List(c.Request.Context(), auth.UserID(c), accountID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]superSnapshotResponse, 0, len(snapshots))
	for i := range snapshots {
		out = append(out, toSuperSnapshotResponse(&snapshots[i]))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/super-snapshots
func (s *Server) createSuperSnapshot(c *gin.Context) {
	var req superSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	snap, err := req.toDomain()
	if err != nil {
		writeError(c, err)
		return
	}

	userID := auth.UserID(c)
	if err := s.superService.Add(c.Request.Context(), userID, snap); err != nil {
		writeError(c, err)
		return
	}

	// Re-read through the service so the response carries the gain
	// figures, which need the account's snapshot series.
	created, err := s.superService.Get(c.Request.Context(), userID, snap.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSuperSnapshotResponse(created))
}

// GET /api/super-snapshots/:id
func (s *Server) getSuperSnapshot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	snap, err := s.superService.Get(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSuperSnapshotResponse(snap))
}

// PUT /api/super-snapshots/:id
func (s *Server) updateSuperSnapshot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req superSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	snap, err := req.toDomain()
	if err != nil {
		writeError(c, err)
		return
	}
	snap.ID = id

	userID := auth.UserID(c)
	if err := s.superService.Update(c.Request.Context(), userID, snap); err != nil {
		writeError(c, err)
		return
	}

	updated, err := s.superService.Get(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSuperSnapshotResponse(updated))
}

// DELETE /api/super-snapshots/:id
func (s *Server) deleteSuperSnapshot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.superService.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *superSnapshotRequest) toDomain() (*domain.SuperSnapshot, error) {
	accountID, err := uuid.Parse(r.AccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: account must be a valid id", domain.ErrInvalidInput)
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}
	balance, err := domain.ParseAmount(r.Balance)
	if err != nil {
		return nil, err
	}
	employer, err := domain.ParseAmountOrZero(r.EmployerContribution)
	if err != nil {
		return nil, err
	}
	personal, err := domain.ParseAmountOrZero(r.PersonalContribution)
	if err != nil {
		return nil, err
	}
	return &domain.SuperSnapshot{
		AccountID:            accountID,
		Date:                 date,
		Balance:              balance,
		EmployerContribution: employer,
		PersonalContribution: personal,
		Notes:                r.Notes,
	}, nil
}

func toSuperSnapshotResponse(s *superfund.SnapshotWithGain) superSnapshotResponse {
	return superSnapshotResponse{
		ID:                   s.ID.String(),
		AccountID:            s.AccountID.String(),
		Date:                 dateString(s.Date),
		Balance:              s.Balance,
		EmployerContribution: s.EmployerContribution,
		PersonalContribution: s.PersonalContribution,
		TotalContributions:   s.TotalContributions,
		InvestmentGain:       s.InvestmentGain,
		Notes:                s.Notes,
		CreatedAt:            s.CreatedAt,
	}
}
