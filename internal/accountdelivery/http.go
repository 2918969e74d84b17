// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, taxID, name string) (domain.Account, error)
	Get(ctx context.Context, taxID string) (domain.Account, error)
	Rename(ctx context.Context, taxID, name string) (domain.Account, error)
	Delete(ctx context.Context, taxID string) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

func (h *Handler) respondErr(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.Is(err, domain.ErrTaxIDAlreadyExists):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type createRequest struct {
	TaxID string `json:"taxId" binding:"required,taxid"`
	Name  string `json:"name" binding:"required,max=128"`
}

// Create handles http request to open an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createRequest
	if !web.BindJSON(gctx, &req) {
		return
	}

	if _, err := h.service.Create(ctx, req.TaxID, req.Name); err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.Status(http.StatusCreated)
}

type renameRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

// Rename handles http request to change the name of the resolved account.
func (h *Handler) Rename(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	account := middleware.Account(gctx)

	var req renameRequest
	if !web.BindJSON(gctx, &req) {
		return
	}

	if _, err := h.service.Rename(ctx, account.TaxID, req.Name); err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.Status(http.StatusNoContent)
}

// Get handles http request to fetch the resolved account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	account := middleware.Account(gctx)

	acc, err := h.service.Get(ctx, account.TaxID)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, acc)
}

// Delete handles http request to close the resolved account.
//
// The response holds the deleted account.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	account := middleware.Account(gctx)

	deleted, err := h.service.Delete(ctx, account.TaxID)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, deleted)
}
