package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAgent   = "agent"
	RoleAdmin   = "admin"
)

// NormalizeRole aplica trim + minúsculas. Se usa en cada lectura del rol.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// NormalizeEmail aplica trim + minúsculas al email (clave de búsqueda de perfiles).
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User representa una cuenta con login.
type User struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	PasswordHash   string // bcrypt hash
	Role           string
	CreatedByAdmin string // admin que aprovisionó la cuenta; vacío para admins/usuarios autoregistrados
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
