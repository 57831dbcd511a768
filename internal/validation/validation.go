package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Hata mesajlarında Go alan adı yerine json tag'ini kullan
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// Struct istek gövdesini tag kurallarına göre doğrular; ilk ihlali kullanıcıya
// gösterilebilir bir mesaja çevirir.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errors.New(message(verrs[0]))
	}
	return err
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s zorunlu", fe.Field())
	case "gt":
		return fmt.Sprintf("%s %s'den büyük olmalı", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s %s veya daha büyük olmalı", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s şunlardan biri olmalı: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	case "max":
		return fmt.Sprintf("%s en fazla %s karakter olabilir", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s geçersiz", fe.Field())
	}
}
