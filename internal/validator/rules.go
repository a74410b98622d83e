package validator

import (
	"log"
	"regexp"
	"strings"
	"time"

	"quickgig/internal/models"

	"github.com/go-playground/validator/v10"
)

// DateTimeLayouts - форматы, принимаемые для start_at / end_at
var DateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime разбирает дату в одном из DateTimeLayouts. Время без зоны считается UTC.
func ParseDateTime(value string) (time.Time, bool) {
	for _, layout := range DateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// DateLayout - дата без времени (фильтры date_from / date_to)
const DateLayout = "2006-01-02"

// ParseDate разбирает дату без времени. ok=false, если значение содержит время.
func ParseDate(value string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// PhonePattern возвращает шаблон телефона: код страны + 9 цифр
func PhonePattern(countryCode string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(countryCode) + `\d{9}$`)
}

func registerCustomRules(v *validator.Validate, phoneCountryCode string) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	phone := PhonePattern(phoneCountryCode)
	mustRegister("phone", func(fl validator.FieldLevel) bool {
		return phone.MatchString(fl.Field().String())
	})

	mustRegister("datetime-any", func(fl validator.FieldLevel) bool {
		_, ok := ParseDateTime(fl.Field().String())
		return ok
	})

	mustRegister("date-or-datetime", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if _, ok := ParseDate(value); ok {
			return true
		}
		_, ok := ParseDateTime(value)
		return ok
	})

	// filled - если поле передано, оно не может быть пустым
	mustRegister("filled", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	mustRegister("user-role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).Valid()
	})
	mustRegister("work-format", func(fl validator.FieldLevel) bool {
		return models.WorkFormat(fl.Field().String()).Valid()
	})
	mustRegister("shift-status", func(fl validator.FieldLevel) bool {
		return models.ShiftStatus(fl.Field().String()).Valid()
	})
	mustRegister("application-status", func(fl validator.FieldLevel) bool {
		return models.ApplicationStatus(fl.Field().String()).Valid()
	})
}
