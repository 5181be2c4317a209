package handler

import (
	"context"
	"net/http"

	"salesnote/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// usecase.LineItemUsecase が満たす
type LineItemStager interface {
	Stage(ctx context.Context, in usecase.StageLineItemInput) (usecase.StageLineItemOutput, error)
}

type LineItemHandler struct {
	uc LineItemStager
}

func NewLineItemHandler(uc LineItemStager) *LineItemHandler {
	return &LineItemHandler{uc: uc}
}

type LineItemCreateRequest struct {
	ClientID  string          `json:"clientId" validate:"required"`
	ProductID string          `json:"productId" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type LineItemCreateResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (h *LineItemHandler) RegisterRoutes(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.POST("/line-items", h.create, mw...)
}

func (h *LineItemHandler) create(c echo.Context) error {
	var req LineItemCreateRequest
	if err := bindAndValidate(c, &req); err != nil || c.Response().Committed {
		return err
	}

	out, err := h.uc.Stage(c.Request().Context(), usecase.StageLineItemInput{
		ClientID:  req.ClientID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, LineItemCreateResponse{ID: out.ID, Message: out.Message})
}
