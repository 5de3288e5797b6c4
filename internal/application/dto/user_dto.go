package dto

import "time"

// SignupRequest registro de una cuenta de rol user.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Role           string    `json:"role"`
	CreatedByAdmin string    `json:"createdByAdmin,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// LoginResponse token + datos del usuario.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"` // segundos
	User      UserResponse `json:"user"`
}

// UpdateProfileRequest edición del perfil propio (campos opcionales).
type UpdateProfileRequest struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	ProfilePicture *string `json:"profilePicture"`
}

// ChangePasswordRequest cambio de la contraseña propia.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CreateUserRequest alta de cuenta por el admin. Role: user, manager o agent.
// Manager exige phone; agent exige phone, location, governmentId y managerId.
type CreateUserRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	GovernmentID   string `json:"governmentId"`
	Location       string `json:"location"`
	ProfilePicture string `json:"profilePicture"`
	ManagerID      string `json:"managerId"`
}

// UpdateUserRequest edición de una cuenta del tenant. ManagerID solo aplica a agentes ("" desasigna).
type UpdateUserRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Role           *string `json:"role"`
	ProfilePicture *string `json:"profilePicture"`
	ManagerID      *string `json:"managerId"`
}

// ManagedUserResponse cuenta del tenant; los agentes llevan los datos de su manager.
type ManagedUserResponse struct {
	UserResponse
	ManagerID    string `json:"managerId,omitempty"`
	ManagerName  string `json:"managerName,omitempty"`
	ManagerEmail string `json:"managerEmail,omitempty"`
}
