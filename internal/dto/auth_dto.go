package dto

import "tenaypos/internal/model"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateUserRequest struct {
	Username    string             `json:"username" validate:"required,min=3,max=40"`
	Name        string             `json:"name"     validate:"required,min=2"`
	Password    string             `json:"password" validate:"required,min=6"`
	Role        string             `json:"role"     validate:"required,oneof=admin supervisor encargado cajero"`
	Permissions *model.Permissions `json:"permissions"` // nil = role defaults
}

type UpdateUserRequest struct {
	Name        *string            `json:"name"     validate:"omitempty,min=2"`
	Password    *string            `json:"password" validate:"omitempty,min=6"`
	Role        *string            `json:"role"     validate:"omitempty,oneof=admin supervisor encargado cajero"`
	Permissions *model.Permissions `json:"permissions"`
	IsActive    *bool              `json:"is_active"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID          string            `json:"id"`
	Username    string            `json:"username"`
	Name        string            `json:"name"`
	Role        string            `json:"role"`
	Permissions model.Permissions `json:"permissions"`
	IsActive    bool              `json:"is_active"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// UserFromModel maps a persisted user to its API shape.
func UserFromModel(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		Username:    u.Username,
		Name:        u.Name,
		Role:        u.Role,
		Permissions: u.Permissions,
		IsActive:    u.IsActive,
	}
}
