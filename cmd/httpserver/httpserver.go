// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lumenbank/lumen-bank/internal/accountdelivery"
	"github.com/lumenbank/lumen-bank/internal/accountrepo"
	"github.com/lumenbank/lumen-bank/internal/accountservice"
	"github.com/lumenbank/lumen-bank/internal/middleware"
	"github.com/lumenbank/lumen-bank/internal/statementdelivery"
	"github.com/lumenbank/lumen-bank/internal/statementservice"
	"github.com/lumenbank/lumen-bank/internal/transactiondelivery"
	"github.com/lumenbank/lumen-bank/internal/transactionrepo"
	"github.com/lumenbank/lumen-bank/internal/transactionservice"
	"github.com/lumenbank/lumen-bank/internal/userdelivery"
	"github.com/lumenbank/lumen-bank/internal/userrepo"
	"github.com/lumenbank/lumen-bank/internal/userservice"
	"github.com/lumenbank/lumen-bank/pkg/configpkg"
	"github.com/lumenbank/lumen-bank/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo)
	transactionService := transactionservice.New(transactionRepo, accountService)
	statementService := statementservice.New(accountService, transactionRepo)

	userHandler := userdelivery.NewHandler(userService, tokenMaker, config.AccessTokenDuration)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	statementHandler := statementdelivery.NewHandler(statementService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/auth/register", userHandler.Register)
	engine.POST("/auth/login", userHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.GET("/accounts/:id", accountHandler.Get)

	authRoutes.POST("/accounts/:id/transactions", transactionHandler.Create)
	authRoutes.GET("/accounts/:id/transactions", transactionHandler.List)

	authRoutes.GET("/accounts/:id/statement", statementHandler.Get)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
