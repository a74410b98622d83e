package models

type UserRole string
type ShiftStatus string
type WorkFormat string
type ApplicationStatus string

const (
	UserRoleWorker   UserRole = "worker"
	UserRoleEmployer UserRole = "employer"

	ShiftStatusOpen   ShiftStatus = "open"
	ShiftStatusClosed ShiftStatus = "closed"

	WorkFormatOnline  WorkFormat = "online"
	WorkFormatOffline WorkFormat = "offline"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Значения по умолчанию для смены. Определены только здесь.
const (
	DefaultWorkFormat      = WorkFormatOffline
	DefaultRequiredWorkers = 1
	MinRequiredWorkers     = 1
	MaxRequiredWorkers     = 100
)

func (r UserRole) Valid() bool {
	return r == UserRoleWorker || r == UserRoleEmployer
}

func (s ShiftStatus) Valid() bool {
	return s == ShiftStatusOpen || s == ShiftStatusClosed
}

func (f WorkFormat) Valid() bool {
	return f == WorkFormatOnline || f == WorkFormatOffline
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// ApplicationStatuses - все статусы в порядке воронки
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}
