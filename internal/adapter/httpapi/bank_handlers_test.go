package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/networth-tracker/backend/internal/domain"
)

func TestCreateBankAccount(t *testing.T) {
	h := newTestHarness()

	h.bankRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.BankAccount) bool {
		return a.UserID == h.userID &&
			a.Name == "Everyday" &&
			a.AccountType == domain.BankAccountTypeTransaction &&
			a.Balance.Equal(decimal.RequireFromString("1500.50"))
	})).Return(nil)

	rec := h.request(http.MethodPost, "/api/bank-accounts", map[string]interface{}{
		"account_name": "Everyday",
		"bank_name":    "Up",
		"account_type": "transaction",
		"balance":      "1500.50",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Everyday", resp["account_name"])
	assert.Equal(t, "1500.5", resp["balance"])
	assert.NotEmpty(t, resp["id"])
	h.bankRepo.AssertExpectations(t)
}

func TestCreateBankAccountRejectsBadBalance(t *testing.T) {
	h := newTestHarness()

	rec := h.request(http.MethodPost, "/api/bank-accounts", map[string]interface{}{
		"account_name": "Everyday",
		"bank_name":    "Up",
		"account_type": "transaction",
		"balance":      "not-a-number",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp["error"])
	h.bankRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBankAccountRejectsUnknownType(t *testing.T) {
	h := newTestHarness()

	rec := h.request(http.MethodPost, "/api/bank-accounts", map[string]interface{}{
		"account_name": "Everyday",
		"bank_name":    "Up",
		"account_type": "cheque",
		"balance":      "100",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp["error"])
}

func TestListBankAccounts(t *testing.T) {
	h := newTestHarness()

	h.bankRepo.On("List", mock.Anything, h.userID).Return([]*domain.BankAccount{
		{
			ID:          uuid.New(),
			UserID:      h.userID,
			Name:        "Savings",
			BankName:    "ING",
			AccountType: domain.BankAccountTypeSavings,
			Balance:     decimal.RequireFromString("20000"),
		},
	}, nil)

	rec := h.request(http.MethodGet, "/api/bank-accounts", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Savings", resp[0]["account_name"])
}

func TestGetBankAccountNotFound(t *testing.T) {
	h := newTestHarness()

	id := uuid.New()
	h.bankRepo.On("GetByID", mock.Anything, h.userID, id).Return(nil, domain.ErrNotFound)

	rec := h.request(http.MethodGet, "/api/bank-accounts/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp["error"])
}

func TestMalformedIDBehavesAsNotFound(t *testing.T) {
	h := newTestHarness()

	rec := h.request(http.MethodGet, "/api/bank-accounts/not-a-uuid", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	h.bankRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteBankAccount(t *testing.T) {
	h := newTestHarness()

	id := uuid.New()
	h.bankRepo.On("Delete", mock.Anything, h.userID, id).Return(nil)

	rec := h.request(http.MethodDelete, "/api/bank-accounts/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	h.bankRepo.AssertExpectations(t)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newTestHarness()

	req := httptest.NewRequest(http.MethodGet, "/api/bank-accounts", nil)
	rec := httptest.NewRecorder()
	h.server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	h.bankRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestCreateSuperSnapshotDuplicateDate(t *testing.T) {
	h := newTestHarness()

	accountID := uuid.New()
	h.superRepo.On("GetByID", mock.Anything, h.userID, accountID).Return(&domain.SuperannuationAccount{
		ID:     accountID,
		UserID: h.userID,
	}, nil)
	h.snapRepo.On("Create", mock.Anything, h.userID, mock.Anything).Return(domain.ErrDuplicateSnapshot)

	rec := h.request(http.MethodPost, "/api/super-snapshots", map[string]interface{}{
		"account": accountID.String(),
		"date":    time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC).Format(dateLayout),
		"balance": "52000",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "DUPLICATE_SNAPSHOT", resp["error"])
}

func TestListSuperSnapshotsRejectsBadFilter(t *testing.T) {
	h := newTestHarness()

	rec := h.request(http.MethodGet, "/api/super-snapshots?account=nope", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	h.snapRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}
