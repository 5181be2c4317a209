package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// echo.Validator の実装（c.Validate で呼ばれる）
type RequestValidator struct {
	v *validator.Validate
}

func New() *RequestValidator {
	v := validator.New()
	//エラーの項目名はjsonタグの名前にする
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.v.Struct(i); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// 最初に引っかかった項目名（レスポンス用）
func FirstInvalidField(err error) (string, bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), true
	}
	return "", false
}
