package validator

import (
	"fmt"
	"reflect"
	"strings"

	"quickgig/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

// Validator - обертка над go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New создает Validator. phoneCountryCode - код страны для правила 'phone'.
func New(phoneCountryCode string) *Validator {
	v := validator.New()

	// Имена полей в ошибках берутся из json-тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v, phoneCountryCode)

	return &Validator{
		validate: v,
	}
}

// bindErrorsCarrier - запрос, у которого часть полей не подошла по типу при разборе тела
type bindErrorsCarrier interface {
	BindErrors() []apperrors.FieldError
}

// Validate выполняет валидацию структуры.
// Ошибки возвращаются как *apperrors.AppError (422) в порядке объявления полей.
// Ошибки типов из разбора тела идут первыми и заменяют ошибки правил для тех же полей.
func (v *Validator) Validate(i interface{}) error {
	var fields []apperrors.FieldError
	if carrier, ok := i.(bindErrorsCarrier); ok {
		fields = append(fields, carrier.BindErrors()...)
	}

	if err := v.validate.Struct(i); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range validationErrors {
			if hasField(fields, fe.Field()) {
				continue
			}
			fields = append(fields, apperrors.FieldError{
				Field:   fe.Field(),
				Message: errorMessage(fe),
			})
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return apperrors.ValidationError(fields...)
}

// TypeError - ошибка поля, значение которого не приводится к типу kind
func TypeError(field string, kind reflect.Kind) apperrors.FieldError {
	name := humanize(field)

	var msg string
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		msg = fmt.Sprintf("The %s field must be an integer.", name)
	case reflect.Float32, reflect.Float64:
		msg = fmt.Sprintf("The %s field must be a number.", name)
	case reflect.String:
		msg = fmt.Sprintf("The %s field must be a string.", name)
	case reflect.Bool:
		msg = fmt.Sprintf("The %s field must be true or false.", name)
	default:
		msg = fmt.Sprintf("The %s field is invalid.", name)
	}
	return apperrors.FieldError{Field: field, Message: msg}
}

func hasField(fields []apperrors.FieldError, field string) bool {
	for _, f := range fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func errorMessage(fe validator.FieldError) string {
	name := humanize(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must be at least %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", name, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be greater than or equal to %s.", name, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s field must be less than or equal to %s.", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s.", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "phone":
		return fmt.Sprintf("The %s field format is invalid.", name)
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", name, fe.Param())
	case "datetime-any", "date-or-datetime":
		return fmt.Sprintf("The %s field must be a valid date.", name)
	case "filled":
		return fmt.Sprintf("The %s field must have a value.", name)

	case "user-role", "work-format", "shift-status", "application-status":
		return fmt.Sprintf("The selected %s is invalid.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}
