package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ledgerkit/account-transfer-service/internal/commons"
	"github.com/ledgerkit/account-transfer-service/internal/ledger"
	"github.com/ledgerkit/account-transfer-service/internal/models"
)

// AccountsController serves the account endpoints: create, balance lookup,
// transfer. It validates request shape and maps domain errors to status
// codes; everything else is the engine's job.
type AccountsController struct {
	service *ledger.Service
	log     *zap.Logger
}

func NewAccountsController(service *ledger.Service, log *zap.Logger) *AccountsController {
	return &AccountsController{
		service: service,
		log:     log,
	}
}

func (c *AccountsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/accounts", c.CreateAccount)
	mux.HandleFunc("GET /v1/accounts/{id}", c.GetAccount)
	mux.HandleFunc("POST /v1/accounts/{id}/transfer", c.Transfer)
}

func (c *AccountsController) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest,
			commons.ErrorResponse[AccountResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest,
			commons.ErrorResponse[AccountResponse]("validation failed", err.Error()))
		return
	}

	account := models.NewAccount(req.AccountID, *req.Balance)
	if err := c.service.CreateAccount(account); err != nil {
		c.log.Warn("create account rejected", zap.String("account_id", req.AccountID), zap.Error(err))
		writeJSON(w, errorStatus(err),
			commons.ErrorResponse[AccountResponse]("failed to create account", err.Error()))
		return
	}

	writeJSON(w, http.StatusCreated, commons.SuccessResponse("account created", AccountResponse{
		AccountID: account.ID(),
		Balance:   account.Balance(),
	}))
}

func (c *AccountsController) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")

	account, err := c.service.GetAccount(accountID)
	if err != nil {
		writeJSON(w, errorStatus(err),
			commons.ErrorResponse[AccountResponse]("failed to get account", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("account found", AccountResponse{
		AccountID: account.ID(),
		Balance:   account.Balance(),
	}))
}

func (c *AccountsController) Transfer(w http.ResponseWriter, r *http.Request) {
	sourceID := r.PathValue("id")

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest,
			commons.ErrorResponse[TransferResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest,
			commons.ErrorResponse[TransferResponse]("validation failed", err.Error()))
		return
	}

	if err := c.service.Transfer(r.Context(), sourceID, req.TargetAccountID, *req.Amount); err != nil {
		c.log.Warn("transfer rejected",
			zap.String("source_account", sourceID),
			zap.String("target_account", req.TargetAccountID),
			zap.Error(err),
		)
		writeJSON(w, errorStatus(err),
			commons.ErrorResponse[TransferResponse]("failed to process transfer", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("transfer completed", TransferResponse{
		SourceAccountID: sourceID,
		TargetAccountID: req.TargetAccountID,
		Amount:          *req.Amount,
	}))
}

// errorStatus maps domain errors to HTTP status codes. Every domain error is
// locally recoverable and carries the offending id in its message.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateAccount),
		errors.Is(err, models.ErrSameAccountTransfer),
		errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrAmountMustBePositive):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
