// Package discovery фильтрует открытые смены для ленты работника
package discovery

import (
	"math"
	"strings"

	"quickgig/internal/models"
)

const earthRadiusKm = 6371.0

// Match - смена, прошедшая фильтр. DistanceKm задан, если в фильтре есть точка отсчета.
type Match struct {
	Shift      models.Shift
	DistanceKm *float64
}

// Apply фильтрует смены, сохраняя исходный порядок.
// Онлайн-смены не отсекаются по радиусу.
func Apply(shifts []models.Shift, f Filter) []Match {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	matches := make([]Match, 0, len(shifts))
	for _, s := range shifts {
		if query != "" && !matchesQuery(s, query) {
			continue
		}
		if f.MinPay != nil && s.PayPerHour < *f.MinPay {
			continue
		}
		if f.From != nil && s.StartAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !s.StartAt.Before(*f.To) {
			continue
		}
		if f.WorkFormat != nil && s.WorkFormat != *f.WorkFormat {
			continue
		}

		m := Match{Shift: s}
		if f.Origin != nil {
			d := roundKm(Haversine(f.Origin.Lat, f.Origin.Lng, s.Latitude, s.Longitude))
			if f.RadiusKm != nil && s.WorkFormat != models.WorkFormatOnline && d > *f.RadiusKm {
				continue
			}
			m.DistanceKm = &d
		}
		matches = append(matches, m)
	}
	return matches
}

func matchesQuery(s models.Shift, query string) bool {
	if strings.Contains(strings.ToLower(s.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(s.Address), query) {
		return true
	}
	return s.Details != nil && strings.Contains(strings.ToLower(*s.Details), query)
}

// Haversine - расстояние по большому кругу в километрах
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func roundKm(km float64) float64 {
	return math.Round(km*10) / 10
}
