package handler

import (
	"context"
	"net/http"
	"strconv"

	"salesnote/internal/domain/model"
	"salesnote/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderService interface {
	CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (usecase.CreateOrderOutput, error)
	ListOrders(ctx context.Context, clientID string) ([]model.Order, error)
	FetchDocument(ctx context.Context, orderID string) (usecase.DocumentOutput, error)
}

type OrderHandler struct {
	uc OrderService
}

func NewOrderHandler(uc OrderService) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	ClientID string `json:"clientId" validate:"required"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	g := e.Group("/orders", mw...)

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.download)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := bindAndValidate(c, &req); err != nil || c.Response().Committed {
		return err
	}

	//二重送信防止キーはヘッダーから受け取る（任意）
	idemKey := c.Request().Header.Get("X-Idempotency-Key")

	out, err := h.uc.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		ClientID:       req.ClientID,
		IdempotencyKey: idemKey,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.ListOrders(c.Request().Context(), c.QueryParam("clientId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// PDFをそのまま返す（ダウンロード扱い）
func (h *OrderHandler) download(c echo.Context) error {
	doc, err := h.uc.FetchDocument(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+strconv.Quote(doc.FileName))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Content)
}
