package handler

import (
	"net/http"

	"salesnote/internal/usecase"
	"salesnote/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg(he.Message)
		}
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// Bind → Validate。失敗したら400
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		msg := "validation error"
		if field, ok := validator.FirstInvalidField(err); ok {
			msg = "invalid " + field
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	}
	return nil
}
