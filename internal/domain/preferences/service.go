package preferences

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-market/internal/domain/pets"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// SaveInput es un update parcial: nil = no tocar ese campo.
// Ages con slice vacío limpia la preferencia de edad;
// Location con string vacío limpia el municipio preferido.
type SaveInput struct {
	PetType  *string
	Ages     *[]string
	Location *string
}

// Save crea lazy la preferencia del usuario (defaults: both, sin edad,
// sin municipio) y mergea encima los campos que vinieron.
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (Preference, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Preference{}, ErrInvalidInput
	}

	now := s.now()

	p, err := s.repo.GetByUser(ctx, userID)
	created := false
	if err != nil {
		created = true
		p = Preference{
			ID:        uuid.NewString(),
			UserID:    userID,
			PetType:   PetTypeBoth,
			Ages:      nil,
			Location:  "",
			CreatedAt: now,
		}
	}

	if in.PetType != nil {
		t := PetType(strings.ToLower(strings.TrimSpace(*in.PetType)))
		if !ValidPetType(t) {
			return Preference{}, ErrInvalidInput
		}
		p.PetType = t
	}

	if in.Ages != nil {
		ages, err := normalizeAges(*in.Ages)
		if err != nil {
			return Preference{}, err
		}
		p.Ages = ages
	}

	if in.Location != nil {
		loc := strings.TrimSpace(*in.Location)
		if loc != "" && !pets.ValidLocation(loc) {
			return Preference{}, ErrInvalidInput
		}
		p.Location = loc
	}

	p.UpdatedAt = now

	if created {
		if err := s.repo.Create(ctx, p); err != nil {
			return Preference{}, err
		}
		return p, nil
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Preference{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, userID string) (Preference, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Preference{}, ErrInvalidInput
	}
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return Preference{}, ErrNotFound
	}
	return p, nil
}

func normalizeAges(in []string) ([]pets.Age, error) {
	seen := map[pets.Age]struct{}{}
	out := make([]pets.Age, 0, len(in))

	for _, raw := range in {
		a := pets.Age(strings.ToLower(strings.TrimSpace(raw)))
		if a == "" {
			continue
		}
		if !pets.ValidAge(a) {
			return nil, ErrInvalidInput
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}

	return out, nil
}
