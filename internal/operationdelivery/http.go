// Package operationdelivery manages delivery layer of account statements.
package operationdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by operation delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package operationdelivery
type Service interface {
	Statement(ctx context.Context, taxID string) ([]domain.Operation, error)
	StatementByDate(ctx context.Context, taxID, date string) ([]domain.Operation, error)
	Deposit(ctx context.Context, taxID string, amount decimal.Decimal, description string) (domain.Operation, error)
	Withdraw(ctx context.Context, taxID string, amount decimal.Decimal, description string) (domain.Operation, error)
	Balance(ctx context.Context, taxID string) (decimal.Decimal, error)
}

// Handler facilitates operation delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns operation handler.
func NewHandler(ops Service) *Handler {
	return &Handler{service: ops}
}

func (h *Handler) respondErr(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountOutOfRange),
		errors.Is(err, domain.ErrInvalidDate):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

// Statement handles http request to list all operations of the resolved account.
func (h *Handler) Statement(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	account := middleware.Account(gctx)

	ops, err := h.service.Statement(ctx, account.TaxID)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, ops)
}

type statementByDateRequest struct {
	Date string `form:"date" binding:"required"`
}

// StatementByDate handles http request to list operations of the resolved account made on a date.
func (h *Handler) StatementByDate(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	account := middleware.Account(gctx)

	var req statementByDateRequest
	if !web.BindQuery(gctx, &req) {
		return
	}

	ops, err := h.service.StatementByDate(ctx, account.TaxID, req.Date)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, ops)
}

type operationRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description" binding:"max=256"`
}

// Deposit handles http request to credit the resolved account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	account := middleware.Account(gctx)

	var req operationRequest
	if !web.BindJSON(gctx, &req) {
		return
	}

	if _, err := h.service.Deposit(ctx, account.TaxID, *req.Amount, req.Description); err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.Status(http.StatusCreated)
}

// Withdraw handles http request to debit the resolved account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	account := middleware.Account(gctx)

	var req operationRequest
	if !web.BindJSON(gctx, &req) {
		return
	}

	if _, err := h.service.Withdraw(ctx, account.TaxID, *req.Amount, req.Description); err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.Status(http.StatusCreated)
}

type balanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// Balance handles http request to get the balance of the resolved account.
func (h *Handler) Balance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	account := middleware.Account(gctx)

	balance, err := h.service.Balance(ctx, account.TaxID)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, balanceResponse{Balance: balance})
}
