// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/accountdelivery"
	"github.com/go-petr/pet-ledger/internal/accountservice"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/operationdelivery"
	"github.com/go-petr/pet-ledger/internal/operationservice"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/taxidpkg"
)

// Repo is the account store both services are built on.
//
// It is satisfied by accountrepo.RepoMem and accountrepo.RepoPGS.
type Repo interface {
	accountservice.Repo
	operationservice.Repo
}

// Server holds handlers router and configuration.
type Server struct {
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(repo Repo, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	loc, err := config.Location()
	if err != nil {
		return nil, errors.New("cannot load timezone " + config.Timezone)
	}

	accountService := accountservice.New(repo)
	operationService := operationservice.New(repo, loc)

	accountHandler := accountdelivery.NewHandler(accountService)
	operationHandler := operationdelivery.NewHandler(operationService)

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/account", accountHandler.Create)

	accountRoutes := engine.Group("/").Use(middleware.ResolveAccount(accountService))

	accountRoutes.PUT("/account", accountHandler.Rename)
	accountRoutes.GET("/account", accountHandler.Get)
	accountRoutes.DELETE("/account", accountHandler.Delete)

	accountRoutes.GET("/statement", operationHandler.Statement)
	accountRoutes.GET("/statement/date", operationHandler.StatementByDate)
	accountRoutes.POST("/deposit", operationHandler.Deposit)
	accountRoutes.POST("/withdraw", operationHandler.Withdraw)
	accountRoutes.GET("/balance", operationHandler.Balance)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("taxid", taxidpkg.ValidTaxID)
		if err != nil {
			return nil, errors.New("cannot register taxid validator")
		}
	}

	server := &Server{
		Engine: engine,
		Config: config,
	}

	return server, nil
}
