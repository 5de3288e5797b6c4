package ports

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
)

// CredentialRequest datos para entregar una contraseña temporal.
type CredentialRequest struct {
	ToEmail  string
	ToPhone  string
	Name     string
	Role     string
	Password string
}

// CredentialDelivery define el puerto de salida para entregar credenciales (email + SMS).
// Nunca devuelve error: cada canal informa {sent, reason} y el resultado se entrega tal cual al cliente.
// La implementación no reintenta.
type CredentialDelivery interface {
	DeliverCredentials(ctx context.Context, req CredentialRequest) dto.DeliveryResult
}
