package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-market/internal/domain/ratings"
)

type ratingsRepo struct {
	mu   sync.RWMutex
	byID map[string]ratings.Rating
}

func NewRatingsRepo() ratings.Repository {
	return &ratingsRepo{
		byID: make(map[string]ratings.Rating),
	}
}

func (r *ratingsRepo) Create(ctx context.Context, rt ratings.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rt.ID) == "" {
		return errors.New("rating id required")
	}
	if _, exists := r.byID[rt.ID]; exists {
		return errors.New("rating already exists")
	}
	r.byID[rt.ID] = rt
	return nil
}

func (r *ratingsRepo) Exists(ctx context.Context, applicationID, adopterUserID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rt := range r.byID {
		if rt.ApplicationID == applicationID && rt.AdopterUserID == adopterUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ratingsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]ratings.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ratings.Rating, 0)
	for _, rt := range r.byID {
		if rt.OwnerUserID == ownerUserID {
			out = append(out, rt)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
