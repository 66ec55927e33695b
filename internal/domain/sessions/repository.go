package sessions

import "context"

type Repository interface {
	Save(ctx context.Context, s *Session) error
	// GetByID devuelve ErrNotFound si no existe o expiró. Renueva el TTL.
	GetByID(ctx context.Context, id string) (*Session, error)
	// Delete saca la sesión y la cierra.
	Delete(ctx context.Context, id string) error
	// DeleteAll cierra y saca todas las sesiones (shutdown).
	DeleteAll(ctx context.Context) error
}
