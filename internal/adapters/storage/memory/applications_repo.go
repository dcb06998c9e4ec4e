package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-market/internal/domain/applications"
)

type applicationsRepo struct {
	mu   sync.RWMutex
	byID map[string]applications.Application
}

func NewApplicationsRepo() applications.Repository {
	return &applicationsRepo{
		byID: make(map[string]applications.Application),
	}
}

func (r *applicationsRepo) Create(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("application already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *applicationsRepo) Update(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}
	if _, exists := r.byID[a.ID]; !exists {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *applicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return applications.Application{}, ErrNotFound
	}
	return a, nil
}

func (r *applicationsRepo) ListByApplicant(ctx context.Context, applicantUserID string) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]applications.Application, 0)
	for _, a := range r.byID {
		if a.ApplicantUserID == applicantUserID {
			out = append(out, a)
		}
	}

	sortApplicationsByCreatedAt(out)
	return out, nil
}

func (r *applicationsRepo) ListByPet(ctx context.Context, petID string) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]applications.Application, 0)
	for _, a := range r.byID {
		if a.PetID == petID {
			out = append(out, a)
		}
	}

	sortApplicationsByCreatedAt(out)
	return out, nil
}

func (r *applicationsRepo) ListByStatuses(ctx context.Context, statuses []applications.Status) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	allowed := make(map[applications.Status]struct{}, len(statuses))
	for _, s := range statuses {
		allowed[s] = struct{}{}
	}

	out := make([]applications.Application, 0)
	for _, a := range r.byID {
		if _, ok := allowed[a.Status]; ok {
			out = append(out, a)
		}
	}

	sortApplicationsByCreatedAt(out)
	return out, nil
}

func sortApplicationsByCreatedAt(items []applications.Application) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
