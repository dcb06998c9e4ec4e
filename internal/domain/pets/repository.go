package pets

import (
	"context"
	"time"
)

// ListFilter acota el listado de mascotas disponibles.
// Campos vacíos = sin filtro.
type ListFilter struct {
	Classification Classification
	Location       string
}

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	ListAvailable(ctx context.Context, f ListFilter) ([]Pet, error)
	SetStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error
}
