package apperrors

import "net/http"

/*
Предопределенные ошибки предметной области.
Сообщения возвращаются клиенту как есть, клиент показывает их без изменений.
*/

// --- Auth ---

// ErrInvalidCredentials - одно сообщение и для неизвестного телефона, и для неверного пароля
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrUnauthenticated = NewUnauthenticatedError("Unauthenticated.")

var ErrTooManyAttempts = New(
	CodeTooManyRequests,
	"auth",
	"Too many attempts. Please slow down.",
	http.StatusTooManyRequests,
)

// --- Shifts ---

var (
	ErrOnlyEmployerCanCreateShift = AuthorizationError("shift", "Only employers can create shifts")
	ErrOnlyEmployerCanEditShift   = AuthorizationError("shift", "Only employers can edit shifts")
	ErrNotShiftOwner              = AuthorizationError("shift", "You do not own this shift")
	ErrEmployersOnly              = AuthorizationError("shift", "Available to employers only")
	ErrShiftNotFound              = NotFoundError("shift", "Shift not found")
)

// --- Applications ---

var (
	ErrOnlyWorkerCanApply          = AuthorizationError("application", "Only workers can apply to shifts")
	ErrCannotApplyToOwnShift       = DomainError("application", "Cannot apply to own shift")
	ErrOnlyEmployerCanChangeStatus = AuthorizationError("application", "Only employers can change application status")
	ErrNotApplicationOwner         = AuthorizationError("application", "You have no access to this application")
	ErrWorkersOnly                 = AuthorizationError("application", "Available to workers only")
	ErrApplicationNotFound         = NotFoundError("application", "Application not found")
)

// --- Reviews & users ---

var (
	ErrCannotReviewSelf     = DomainError("review", "Cannot review yourself")
	ErrReviewTargetNotFound = DomainError("review", "The selected to user id is invalid.")
	ErrUserNotFound         = NotFoundError("user", "User not found")
)
