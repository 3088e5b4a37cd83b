package dto

import (
	"time"

	"app/internal/model"
)

// UserResponseDTO is returned in API responses
type UserResponseDTO struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserResponse(u *model.User) UserResponseDTO {
	return UserResponseDTO{
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
