package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-adoption-market/internal/domain/preferences"
)

type preferencesRepo struct {
	mu       sync.RWMutex
	byUserID map[string]preferences.Preference
}

func NewPreferencesRepo() preferences.Repository {
	return &preferencesRepo{
		byUserID: make(map[string]preferences.Preference),
	}
}

func (r *preferencesRepo) Create(ctx context.Context, p preferences.Preference) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("preference user id required")
	}
	if _, exists := r.byUserID[p.UserID]; exists {
		return errors.New("preference already exists")
	}
	r.byUserID[p.UserID] = p
	return nil
}

func (r *preferencesRepo) Update(ctx context.Context, p preferences.Preference) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("preference user id required")
	}
	if _, exists := r.byUserID[p.UserID]; !exists {
		return ErrNotFound
	}
	r.byUserID[p.UserID] = p
	return nil
}

func (r *preferencesRepo) GetByUser(ctx context.Context, userID string) (preferences.Preference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUserID[userID]
	if !ok {
		return preferences.Preference{}, ErrNotFound
	}
	return p, nil
}
