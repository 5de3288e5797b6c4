package entity

import "time"

// Valores por defecto de Worker.
const (
	DefaultWorkerDepartment = "general"
	DefaultWorkerPosition   = "worker"
)

// Worker personal sin login. ManagerID vacío = sin asignar.
type Worker struct {
	ID             string
	ManagerID      string
	OwnerAdmin     string
	Name           string
	Email          string
	Phone          string
	Address        string
	Department     string
	Position       string
	ProfilePicture string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
