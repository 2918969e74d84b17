package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

const (
	// TaxIDHeaderKey is the header identifying the acting account.
	TaxIDHeaderKey = "taxId"
	// AccountKey is the gin context key of the resolved domain.Account.
	AccountKey = "account"
)

// AccountResolver finds the account registered for a tax ID.
//
//go:generate mockgen -source account.go -destination account_mock.go -package middleware
type AccountResolver interface {
	Get(ctx context.Context, taxID string) (domain.Account, error)
}

// ResolveAccount looks up the account named by the tax ID header and stores it
// under AccountKey. The request is aborted when no such account exists.
func ResolveAccount(r AccountResolver) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := gctx.Request.Context()
		l := zerolog.Ctx(ctx)

		// A missing header names no registered account.
		taxID := gctx.GetHeader(TaxIDHeaderKey)
		if taxID == "" {
			l.Info().Err(domain.ErrAccountNotFound).Msg("no tax ID header")
			gctx.AbortWithStatusJSON(http.StatusNotFound, web.Error(domain.ErrAccountNotFound))

			return
		}

		account, err := r.Get(ctx, taxID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				l.Info().Str("tax_id", taxID).Err(err).Send()
				gctx.AbortWithStatusJSON(http.StatusNotFound, web.Error(err))

				return
			}

			l.Error().Err(err).Send()
			gctx.AbortWithStatusJSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

			return
		}

		gctx.Set(AccountKey, account)
		gctx.Next()
	}
}

// Account returns the account resolved by ResolveAccount.
func Account(gctx *gin.Context) domain.Account {
	return gctx.MustGet(AccountKey).(domain.Account)
}
