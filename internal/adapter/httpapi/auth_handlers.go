package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/networth-tracker/backend/internal/auth"
	"github.com/networth-tracker/backend/internal/currency"
	"github.com/networth-tracker/backend/internal/domain"
)

// POST /api/auth/register
func (s *Server) register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	resp, err := s.authService.Register(c.Request.Context(), req, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// POST /api/auth/login
func (s *Server) login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	resp, err := s.authService.Login(c.Request.Context(), req, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/auth/refresh
func (s *Server) refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	pair, err := s.authService.RefreshTokens(c.Request.Context(), req.RefreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// POST /api/auth/logout
func (s *Server) logout(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /api/auth/user
func (s *Server) currentUser(c *gin.Context) {
	user, err := s.authService.CurrentUser(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type profileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PUT /api/auth/profile
func (s *Server) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	user, err := s.authService.UpdateProfile(c.Request.Context(), auth.UserID(c), req.FirstName, req.LastName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /api/auth/password
func (s *Server) changePassword(c *gin.Context) {
	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := s.authService.ChangePassword(c.Request.Context(), auth.UserID(c), req); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// GET /api/auth/preferences
func (s *Server) getPreferences(c *gin.Context) {
	userID := auth.UserID(c)

	prefs, err := s.prefsRepo.Get(c.Request.Context(), userID)
	if errors.Is(err, domain.ErrNotFound) {
		prefs = domain.DefaultPreferences(userID)
	} else if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPreferencesResponse(prefs))
}

// PUT /api/auth/preferences
func (s *Server) updatePreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}
	if err := currency.Validate(req.Currency); err != nil {
		writeValidationError(c, err)
		return
	}

	prefs := domain.DefaultPreferences(auth.UserID(c))
	prefs.Currency = req.Currency
	if req.Timezone != "" {
		prefs.Timezone = req.Timezone
	}
	prefs.AddressLine1 = req.AddressLine1
	prefs.AddressLine2 = req.AddressLine2
	prefs.City = req.City
	prefs.State = req.State
	prefs.Postcode = req.Postcode
	if req.Country != "" {
		prefs.Country = req.Country
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			writeError(c, err)
			return
		}
		prefs.DateOfBirth = &dob
	}

	if err := s.prefsRepo.Upsert(c.Request.Context(), prefs); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPreferencesResponse(prefs))
}
