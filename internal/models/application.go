package models

// Application - отклик работника на смену.
// Пара (shift_id, worker_id) уникальна на уровне БД.
type Application struct {
	BaseModel
	ShiftID  uint              `gorm:"not null;uniqueIndex:idx_applications_shift_worker" json:"shift_id"`
	WorkerID uint              `gorm:"not null;uniqueIndex:idx_applications_shift_worker;index" json:"worker_id"`
	Status   ApplicationStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	Message  *string           `gorm:"type:text" json:"message"`
}
