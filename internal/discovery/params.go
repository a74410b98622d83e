package discovery

import (
	"time"

	"quickgig/internal/models"
	"quickgig/internal/validator"
	"quickgig/pkg/apperrors"
)

// Params - query-параметры GET /shifts
type Params struct {
	Query      string   `form:"q" json:"q" validate:"omitempty,max=120"`
	MinPay     *int     `form:"min_pay" json:"min_pay" validate:"omitempty,min=0"`
	DateFrom   string   `form:"date_from" json:"date_from" validate:"omitempty,date-or-datetime"`
	DateTo     string   `form:"date_to" json:"date_to" validate:"omitempty,date-or-datetime"`
	Lat        *float64 `form:"lat" json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng        *float64 `form:"lng" json:"lng" validate:"omitempty,gte=-180,lte=180"`
	RadiusKm   *float64 `form:"radius_km" json:"radius_km" validate:"omitempty,gt=0"`
	WorkFormat string   `form:"work_format" json:"work_format" validate:"omitempty,work-format"`
}

// Filter - разобранные параметры
type Filter struct {
	Query  string
	MinPay *int

	// From включительно, To исключительно
	From *time.Time
	To   *time.Time

	Origin   *Point
	RadiusKm *float64

	WorkFormat *models.WorkFormat
}

type Point struct {
	Lat float64
	Lng float64
}

// Filter переводит параметры в фильтр. Параметры должны быть провалидированы.
// Дата без времени в date_to покрывает весь день.
func (p Params) Filter() (Filter, error) {
	f := Filter{
		Query:  p.Query,
		MinPay: p.MinPay,
	}

	if p.DateFrom != "" {
		from, err := bound(p.DateFrom, "date_from", false)
		if err != nil {
			return Filter{}, err
		}
		f.From = &from
	}
	if p.DateTo != "" {
		to, err := bound(p.DateTo, "date_to", true)
		if err != nil {
			return Filter{}, err
		}
		f.To = &to
	}

	switch {
	case p.Lat != nil && p.Lng == nil:
		return Filter{}, apperrors.FieldInvalid("lng", "The lng field is required when lat is present.")
	case p.Lng != nil && p.Lat == nil:
		return Filter{}, apperrors.FieldInvalid("lat", "The lat field is required when lng is present.")
	}

	if p.Lat != nil && p.Lng != nil {
		f.Origin = &Point{Lat: *p.Lat, Lng: *p.Lng}
		f.RadiusKm = p.RadiusKm
	}

	if p.WorkFormat != "" {
		format := models.WorkFormat(p.WorkFormat)
		f.WorkFormat = &format
	}

	return f, nil
}

func bound(value, field string, upper bool) (time.Time, error) {
	if day, ok := validator.ParseDate(value); ok {
		if upper {
			return day.AddDate(0, 0, 1), nil
		}
		return day, nil
	}
	if t, ok := validator.ParseDateTime(value); ok {
		if upper {
			// верхняя граница с временем включительна
			return t.Add(time.Nanosecond), nil
		}
		return t, nil
	}
	return time.Time{}, apperrors.FieldInvalid(field, "The "+humanize(field)+" field must be a valid date.")
}

func humanize(field string) string {
	out := []byte(field)
	for i := range out {
		if out[i] == '_' {
			out[i] = ' '
		}
	}
	return string(out)
}
