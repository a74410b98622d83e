package models

import "time"

// Shift - смена, опубликованная работодателем
type Shift struct {
	BaseModel
	EmployerID      uint        `gorm:"not null;index" json:"employer_id"`
	Title           string      `gorm:"size:120;not null" json:"title"`
	Details         *string     `gorm:"type:text" json:"details"`
	Address         string      `gorm:"size:255;not null;default:''" json:"address"`
	PayPerHour      int         `gorm:"not null" json:"pay_per_hour"`
	StartAt         time.Time   `gorm:"not null;index" json:"start_at"`
	EndAt           time.Time   `gorm:"not null" json:"end_at"`
	Latitude        float64     `gorm:"not null" json:"latitude"`
	Longitude       float64     `gorm:"not null" json:"longitude"`
	WorkFormat      WorkFormat  `gorm:"type:varchar(16);not null;default:'offline'" json:"work_format"`
	RequiredWorkers int         `gorm:"not null;default:1" json:"required_workers"`
	Status          ShiftStatus `gorm:"type:varchar(16);not null;default:'open';index" json:"status"`
}

func (s *Shift) IsOpen() bool {
	return s.Status == ShiftStatusOpen
}

func (s *Shift) OwnedBy(userID uint) bool {
	return s.EmployerID == userID
}
