package entity

import "time"

// Manager perfil de un manager. AdminID es el admin dueño (inmutable tras la creación).
type Manager struct {
	ID             string
	AdminID        string
	Name           string
	Email          string
	Phone          string
	Address        string
	GovernmentID   string
	ProfilePicture string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
