package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// FieldError - сообщение об ошибке, привязанное к полю запроса
type FieldError struct {
	Field   string
	Message string
}

// AppError - основная структура ошибки приложения.
// Fields хранит ошибки валидации в порядке объявления полей.
type AppError struct {
	Code     ErrorCode
	Domain   string
	Message  string
	Fields   []FieldError
	Err      error
	HTTPCode int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New - базовый конструктор
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap - оборачивает существующую ошибку в AppError
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// FieldMessages группирует ошибки по полям: field -> [message, ...]
func (e *AppError) FieldMessages() map[string][]string {
	if len(e.Fields) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = append(out[f.Field], f.Message)
	}
	return out
}

// HasField сообщает, есть ли ошибка для поля
func (e *AppError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Is - обертка над стандартной функцией errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As - обертка над стандартной функцией errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf возвращает код ошибки или CodeInternalError для неизвестных ошибок
func KindOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return CodeInternalError
}

// --- ФАБРИКИ ---

// ValidationError создает ошибку валидации (422).
// Message берется из первого поля с ошибкой.
func ValidationError(fields ...FieldError) *AppError {
	message := "The given data was invalid."
	if len(fields) > 0 {
		message = fields[0].Message
	}
	e := New(CodeValidationFailed, "validation", message, http.StatusUnprocessableEntity)
	e.Fields = fields
	return e
}

// FieldInvalid - ошибка валидации одного поля
func FieldInvalid(field, message string) *AppError {
	return ValidationError(FieldError{Field: field, Message: message})
}

// AuthorizationError - неверная роль или не владелец ресурса (403)
func AuthorizationError(domain, message string) *AppError {
	return New(CodeForbidden, domain, message, http.StatusForbidden)
}

// DomainError - нарушение бизнес-правила при корректной форме запроса (422)
func DomainError(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusUnprocessableEntity)
}

// NotFoundError - ресурс не найден (404)
func NotFoundError(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

// InternalError оборачивает неизвестную системную ошибку
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// DatabaseError оборачивает ошибку хранилища
func DatabaseError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "database", "Internal server error", http.StatusInternalServerError)
}

// NewUnauthenticatedError - запрос без действительного токена (401)
func NewUnauthenticatedError(message string) *AppError {
	return New(CodeUnauthenticated, "auth", message, http.StatusUnauthorized)
}

// NewBadRequestError - тело или параметры запроса не разобраны (400)
func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}
