package preferences

import "context"

type Repository interface {
	Create(ctx context.Context, p Preference) error
	Update(ctx context.Context, p Preference) error
	GetByUser(ctx context.Context, userID string) (Preference, error)
}
