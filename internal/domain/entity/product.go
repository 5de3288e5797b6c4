package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del inventario de un tenant. OwnerAdmin es la clave de partición (inmutable);
// Quantity es el stock disponible y solo lo mueve el ledger de inventario tras la creación.
type Product struct {
	ID          string
	OwnerAdmin  string
	Name        string
	Brand       string
	Description string
	Category    string
	Color       string
	Price       decimal.Decimal
	Quantity    int
	Image       string // URL opaca devuelta por el almacenamiento de archivos
	IsFeatured  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
