package dto

import (
	"quickgig/internal/models"
)

// RegisterRequest - запрос регистрации. Email необязателен, без него синтезируется из телефона.
type RegisterRequest struct {
	Binding

	Name     string          `json:"name" validate:"required,filled,max=120"`
	Phone    string          `json:"phone" validate:"required,phone"`
	Email    *string         `json:"email" validate:"omitempty,email,max=120"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     models.UserRole `json:"role" validate:"required,user-role"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Binding

	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse - ответ register / login
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
