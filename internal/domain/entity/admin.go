package entity

import "time"

// Roles válidos para Admin.
const (
	RoleAdmin  = "admin"
	RoleCajero = "cajero"
)

// Admin operador autorizado a usar la caja y el inventario.
type Admin struct {
	Username     string
	PasswordHash string // bcrypt; un hash vacío nunca autentica
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
