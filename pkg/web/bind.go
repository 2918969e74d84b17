package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

// BindJSON decodes and validates the request body into req.
//
// On failure it writes a 400 response and returns false.
func BindJSON(gctx *gin.Context, req any) bool {
	return bind(gctx, gctx.ShouldBindJSON(req))
}

// BindQuery decodes and validates the query string into req.
//
// On failure it writes a 400 response and returns false.
func BindQuery(gctx *gin.Context, req any) bool {
	return bind(gctx, gctx.ShouldBindQuery(req))
}

func bind(gctx *gin.Context, err error) bool {
	if err == nil {
		return true
	}

	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, ErrorMsg(GetErrorMsg(ve)))
		return false
	}

	gctx.JSON(http.StatusBadRequest, Error(errorspkg.ErrInvalidBody))

	return false
}
