package usecase

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// 種別（errors.Isで判定する）
var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrDependency = errors.New("dependency")
)

// Status/Message はそのままレスポンスに出す。Cause はログ用。
type HTTPError struct {
	Status  int
	Message string
	Kind    error
	Cause   error
}

func (e *HTTPError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func validationError(message string) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: message, Kind: ErrValidation}
}

func notFoundError(message string) error {
	return &HTTPError{Status: http.StatusNotFound, Message: message, Kind: ErrNotFound}
}

// 下位（DB・PDF）の失敗。原因はスタック付きで保持
func dependencyError(message string, cause error) error {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: message,
		Kind:    ErrDependency,
		Cause:   errors.WithStack(cause),
	}
}
