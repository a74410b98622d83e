package services

import (
	"context"
	"math"

	"gorm.io/gorm"
)

// ctxOf достает контекст запроса, переданный через db.WithContext
func ctxOf(db *gorm.DB) context.Context {
	if db != nil && db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}

// roundRating - округление до одного знака
func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
