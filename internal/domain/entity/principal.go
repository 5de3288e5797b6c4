package entity

// Principal identidad autenticada que invoca una operación (la entrega la capa de auth).
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// Is indica si el principal tiene alguno de los roles dados (comparación normalizada).
func (p Principal) Is(roles ...string) bool {
	r := NormalizeRole(p.Role)
	for _, role := range roles {
		if r == role {
			return true
		}
	}
	return false
}
