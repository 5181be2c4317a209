package handler

import (
	"context"
	"net/http"

	"salesnote/internal/domain/model"
	"salesnote/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AddressService interface {
	Register(ctx context.Context, in usecase.RegisterAddressInput) (model.Address, error)
	List(ctx context.Context, clientID string) ([]model.Address, error)
}

type AddressHandler struct {
	uc AddressService
}

func NewAddressHandler(uc AddressService) *AddressHandler {
	return &AddressHandler{uc: uc}
}

type AddressCreateRequest struct {
	ClientID     string `json:"clientId" validate:"required"`
	AddressType  string `json:"addressType" validate:"required,oneof=billing shipping"`
	Street       string `json:"street" validate:"required"`
	Neighborhood string `json:"neighborhood"`
	Municipality string `json:"municipality"`
	State        string `json:"state"`
}

func (h *AddressHandler) RegisterRoutes(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.GET("/addresses", h.list, mw...)
	e.POST("/addresses", h.create, mw...)
}

func (h *AddressHandler) list(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context(), c.QueryParam("clientId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AddressHandler) create(c echo.Context) error {
	var req AddressCreateRequest
	if err := bindAndValidate(c, &req); err != nil || c.Response().Committed {
		return err
	}

	created, err := h.uc.Register(c.Request().Context(), usecase.RegisterAddressInput{
		ClientID:     req.ClientID,
		AddressType:  model.AddressType(req.AddressType),
		Street:       req.Street,
		Neighborhood: req.Neighborhood,
		Municipality: req.Municipality,
		State:        req.State,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}
