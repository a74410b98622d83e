package auth

import (
	"quickgig/internal/models"
)

// Principal - аутентифицированный пользователь текущего запроса.
// TokenID - запись access_tokens, которой предъявлен токен (для logout).
type Principal struct {
	UserID  uint
	Role    models.UserRole
	TokenID uint
}

func (p *Principal) IsWorker() bool {
	return p != nil && p.Role == models.UserRoleWorker
}

func (p *Principal) IsEmployer() bool {
	return p != nil && p.Role == models.UserRoleEmployer
}

// Can проверяет разрешение по роли
func (p *Principal) Can(permission string) bool {
	return p != nil && HasPermission(p.Role, permission)
}
