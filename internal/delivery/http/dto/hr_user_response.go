package dto

import (
	"hr-recruitment/internal/domain/hruser"

	"github.com/google/uuid"
)

// HRUserResponse is the public view of a staff account. The password hash never leaves the server.
type HRUserResponse struct {
	UserID   uuid.UUID   `json:"userId"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	FullName string      `json:"fullName"`
	Role     hruser.Role `json:"role"`
}

func NewHRUserResponse(u hruser.User) HRUserResponse {
	return HRUserResponse{UserID: u.ID, Username: u.Username, Email: u.Email, FullName: u.FullName, Role: u.Role}
}
