package serverutils

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"fluentko-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = fld.Name
			}
			return name
		})
		// whitespace-only strings do not satisfy "notblank"
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			field := fl.Field()
			if field.Kind() != reflect.String {
				return true
			}
			return strings.TrimSpace(field.String()) != ""
		})
	})
	return validate
}

// ValidateRequest runs struct tag validation and reports the first failing
// field as an *apperror.ValidationError.
func ValidateRequest(req interface{}) error {
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return apperror.NewValidationError("", err.Error())
	}

	fe := fieldErrors[0]
	switch fe.Tag() {
	case "required", "notblank":
		return apperror.NewValidationError(fe.Field(), "is required")
	case "max":
		return apperror.NewValidationError(fe.Field(), "must be at most "+fe.Param()+" characters")
	default:
		return apperror.NewValidationError(fe.Field(), "is invalid")
	}
}
