package dto

import "quickgig/pkg/apperrors"

// Binding встраивается в тела запросов.
// Ошибки типов из JSON не отдаются сразу, их возвращает валидация в сервисе после проверки прав.
type Binding struct {
	bindErrors []apperrors.FieldError
}

func (b *Binding) AddBindError(fe apperrors.FieldError) {
	b.bindErrors = append(b.bindErrors, fe)
}

func (b *Binding) BindErrors() []apperrors.FieldError {
	return b.bindErrors
}
