package ratings

import "context"

type Repository interface {
	Create(ctx context.Context, r Rating) error
	// Exists distingue "no hay rating" (false, nil) de una falla del store.
	Exists(ctx context.Context, applicationID, adopterUserID string) (bool, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Rating, error)
}
