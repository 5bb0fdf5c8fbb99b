package storage

import "context"

// Clés persistées par le client
const (
	KeyCart            = "cart"
	KeyCurrentUser     = "currentUser"
	KeyCurrentRole     = "currentRole"
	KeyRegisteredUsers = "registeredUsers"
	KeyConsumptionMode = "consumptionMode"
)

// Backend est un stockage clé/valeur durable de chaînes brutes.
// Get retourne ok=false quand la clé n'existe pas.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
