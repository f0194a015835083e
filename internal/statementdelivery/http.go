// Package statementdelivery manages delivery layer of statements.
package statementdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lumenbank/lumen-bank/internal/domain"
	"github.com/lumenbank/lumen-bank/internal/middleware"
	"github.com/lumenbank/lumen-bank/pkg/errorspkg"
	"github.com/lumenbank/lumen-bank/pkg/tokenpkg"
	"github.com/lumenbank/lumen-bank/pkg/web"
)

// Service provides service layer interface needed by statement delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package statementdelivery
type Service interface {
	Build(ctx context.Context, owner string, accountID int32) (domain.Statement, error)
}

// Handler facilitates statement delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns statement handler.
func NewHandler(ss Service) *Handler {
	return &Handler{service: ss}
}

type statementData struct {
	Statement domain.Statement `json:"statement"`
}

type getRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get the account statement.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	statement, err := h.service.Build(ctx, authPayload.Username, req.ID)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: statementData{statement}})
}
