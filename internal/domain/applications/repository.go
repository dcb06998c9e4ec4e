package applications

import "context"

type Repository interface {
	Create(ctx context.Context, a Application) error
	Update(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	ListByApplicant(ctx context.Context, applicantUserID string) ([]Application, error)
	ListByPet(ctx context.Context, petID string) ([]Application, error)
	ListByStatuses(ctx context.Context, statuses []Status) ([]Application, error)
}
