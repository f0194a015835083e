// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lumenbank/lumen-bank/internal/domain"
	"github.com/lumenbank/lumen-bank/internal/middleware"
	"github.com/lumenbank/lumen-bank/pkg/errorspkg"
	"github.com/lumenbank/lumen-bank/pkg/tokenpkg"
	"github.com/lumenbank/lumen-bank/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Append(ctx context.Context, owner string, accountID int32, kind domain.TransactionKind, amount string) (domain.Transaction, error)
	List(ctx context.Context, owner string, accountID int32) ([]domain.Transaction, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type transactionData struct {
	Transaction domain.Transaction `json:"transaction"`
}

type accountURI struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type createRequest struct {
	Kind   domain.TransactionKind `json:"kind" binding:"required,oneof=deposit withdrawal"`
	Amount string                 `json:"amount" binding:"required"`
}

// Create handles http request to append a deposit or withdrawal.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transaction, err := h.service.Append(ctx, authPayload.Username, uri.ID, req.Kind, req.Amount)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrInvalidAmount, domain.ErrInvalidKind:
			gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
			return
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{transaction}})
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// List handles http request to list the account's transaction history.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transactions, err := h.service.List(ctx, authPayload.Username, uri.ID)
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

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{transactions}})
}
