package httpapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/networth-tracker/backend/internal/auth"
	"github.com/networth-tracker/backend/internal/domain"
	"github.com/networth-tracker/backend/internal/usecase/snapshot"
)

// GET /api/summary
func (s *Server) getSummary(c *gin.Context) {
	result, err := s.summaryService.GetSummary(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func toNetWorthSnapshotResponse(snap *snapshot.WithDelta, includeAssets bool) netWorthSnapshotResponse {
	resp := netWorthSnapshotResponse{
		ID:               snap.ID.String(),
		Date:             dateString(snap.Date),
		Notes:            snap.Notes,
		TotalAssets:      snap.TotalAssets,
		BankAccounts:     snap.BankAccounts,
		Superannuation:   snap.Superannuation,
		ETFHoldings:      snap.ETFHoldings,
		StockHoldings:    snap.StockHoldings,
		CryptoHoldings:   snap.CryptoHoldings,
		ChangeFromPrev:   snap.ChangeFromPrevious,
		ChangePercentage: snap.ChangePercentage,
		CreatedAt:        snap.CreatedAt,
	}
	if includeAssets {
		resp.Assets = toAssetSnapshotResponses(snap.Assets)
	}
	return resp
}

// GET /api/networth-snapshots
func (s *Server) listNetWorthSnapshots(c *gin.Context) {
	snapshots, err := s.snapshotService.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]netWorthSnapshotResponse, 0, len(snapshots))
	for i := range snapshots {
		out = append(out, toNetWorthSnapshotResponse(&snapshots[i], false))
	}
	c.JSON(http.StatusOK, out)
}

type captureRequest struct {
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

// POST /api/networth-snapshots
func (s *Server) captureNetWorthSnapshot(c *gin.Context) {
	// Both fields are optional; an empty body captures today.
	var req captureRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeValidationError(c, err)
		return
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		var err error
		if date, err = parseDate(req.Date); err != nil {
			writeError(c, err)
			return
		}
	}

	userID := auth.UserID(c)
	created, err := s.snapshotService.Capture(c.Request.Context(), userID, date, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}

	// Capture returns the bare snapshot; fetch it back through the
	// service so the response carries its delta figures.
	withDelta, err := s.snapshotService.Get(c.Request.Context(), userID, created.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toNetWorthSnapshotResponse(withDelta, true))
}

// GET /api/networth-snapshots/series
func (s *Server) netWorthChartSeries(c *gin.Context) {
	series, err := s.snapshotService.ChartSeries(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// GET /api/networth-snapshots/savings-series
func (s *Server) savingsSeries(c *gin.Context) {
	series, err := s.snapshotService.SavingsSeries(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// GET /api/networth-snapshots/:id
func (s *Server) getNetWorthSnapshot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	snap, err := s.snapshotService.Get(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNetWorthSnapshotResponse(snap, true))
}

// DELETE /api/networth-snapshots/:id
func (s *Server) deleteNetWorthSnapshot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.snapshotService.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/asset-snapshots?snapshot=<uuid>
func (s *Server) listAssetSnapshots(c *gin.Context) {
	snapshotID, ok := queryUUID(c, "snapshot")
	if !ok {
		return
	}

	userID := auth.UserID(c)
	if snapshotID != nil {
		snap, err := s.snapshotRepo.GetByID(c.Request.Context(), userID, *snapshotID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toAssetSnapshotResponses(snap.Assets))
		return
	}

	snapshots, err := s.snapshotRepo.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	assets := make([]domain.AssetSnapshot, 0)
	for _, snap := range snapshots {
		assets = append(assets, snap.Assets...)
	}
	c.JSON(http.StatusOK, toAssetSnapshotResponses(assets))
}
