package preferences

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-market/internal/domain/pets"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byUser map[string]Preference
}

func newTestRepo() *testRepo {
	return &testRepo{byUser: map[string]Preference{}}
}

func (r *testRepo) Create(ctx context.Context, p Preference) error {
	if _, ok := r.byUser[p.UserID]; ok {
		return errors.New("repo: already exists")
	}
	r.byUser[p.UserID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Preference) error {
	if _, ok := r.byUser[p.UserID]; !ok {
		return errRepoNotFound
	}
	r.byUser[p.UserID] = p
	return nil
}

func (r *testRepo) GetByUser(ctx context.Context, userID string) (Preference, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return Preference{}, errRepoNotFound
	}
	return p, nil
}

func strPtr(s string) *string      { return &s }
func agesPtr(a []string) *[]string { return &a }

// -------------------------
// Tests
// -------------------------

func TestService_Save_LazyCreateWithDefaults(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	// Primer save sin campos: crea el registro con defaults.
	p, err := svc.Save(context.Background(), "u1", SaveInput{})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if p.PetType != PetTypeBoth || len(p.Ages) != 0 || p.Location != "" {
		t.Fatalf("expected defaults (both, no ages, no location), got %#v", p)
	}
	if p.CreatedAt != now || p.UpdatedAt != now {
		t.Fatalf("expected timestamps set on create")
	}
}

func TestService_Save_PartialUpdate_LeavesOtherFieldsIntact(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if _, err := svc.Save(context.Background(), "u1", SaveInput{
		PetType:  strPtr("dog"),
		Ages:     agesPtr([]string{"young", "adult"}),
		Location: strPtr(pets.LocationBalanga),
	}); err != nil {
		t.Fatalf("Save #1 error: %v", err)
	}

	// Solo municipio: tipo y edades deben quedar como estaban.
	p, err := svc.Save(context.Background(), "u1", SaveInput{Location: strPtr(pets.LocationOrani)})
	if err != nil {
		t.Fatalf("Save #2 error: %v", err)
	}
	if p.PetType != PetTypeDog {
		t.Fatalf("expected pet type untouched, got %s", p.PetType)
	}
	if len(p.Ages) != 2 {
		t.Fatalf("expected ages untouched, got %#v", p.Ages)
	}
	if p.Location != pets.LocationOrani {
		t.Fatalf("expected location updated, got %s", p.Location)
	}
}

func TestService_Save_EmptyValuesClear(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if _, err := svc.Save(context.Background(), "u1", SaveInput{
		Ages:     agesPtr([]string{"baby"}),
		Location: strPtr(pets.LocationBalanga),
	}); err != nil {
		t.Fatalf("Save #1 error: %v", err)
	}

	p, err := svc.Save(context.Background(), "u1", SaveInput{
		Ages:     agesPtr([]string{}),
		Location: strPtr(""),
	})
	if err != nil {
		t.Fatalf("Save #2 error: %v", err)
	}
	if len(p.Ages) != 0 || p.Location != "" {
		t.Fatalf("expected cleared ages and location, got %#v", p)
	}
}

func TestService_Save_NormalizesAndDedupsAges(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Save(context.Background(), "u1", SaveInput{
		Ages: agesPtr([]string{" Young ", "young", "ADULT"}),
	})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if len(p.Ages) != 2 || p.Ages[0] != pets.AgeYoung || p.Ages[1] != pets.AgeAdult {
		t.Fatalf("expected [young adult], got %#v", p.Ages)
	}
}

func TestService_Save_InvalidValues(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Save(context.Background(), "u1", SaveInput{PetType: strPtr("bird")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for pet type, got %v", err)
	}
	if _, err := svc.Save(context.Background(), "u1", SaveInput{Ages: agesPtr([]string{"elder"})}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for age, got %v", err)
	}
	if _, err := svc.Save(context.Background(), "u1", SaveInput{Location: strPtr("Manila")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for town, got %v", err)
	}
}

func TestService_Get_NoRecord_NotFound(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Get(context.Background(), "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
