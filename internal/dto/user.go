package dto

import (
	"time"

	"github.com/reviewdesk/form-review-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Role      models.PlatformRole `json:"role"`
	CreatedAt time.Time           `json:"created_at"`
}

// ToUserDTO converts a user to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
