package auth

import "quickgig/internal/models"

// Разрешения, завязанные на роль пользователя
const (
	PermShiftsWrite        = "shifts:write"
	PermShiftsOwnList      = "shifts:read:own"
	PermApplicationsCreate = "applications:create"
	PermApplicationsOwn    = "applications:read:own"
	PermApplicationsReview = "applications:review"
	PermReviewsWrite       = "reviews:write"
)

// Permissions список разрешений по ролям
var Permissions = map[models.UserRole][]string{
	models.UserRoleEmployer: {
		PermShiftsWrite,
		PermShiftsOwnList,
		PermApplicationsReview,
		PermReviewsWrite,
	},
	models.UserRoleWorker: {
		PermApplicationsCreate,
		PermApplicationsOwn,
		PermReviewsWrite,
	},
}

// HasPermission проверяет есть ли у роли указанное разрешение
func HasPermission(role models.UserRole, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
