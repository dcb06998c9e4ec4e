package pets

import (
	"context"
	"errors"
	"strings"
	"time"

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

type CreateInput struct {
	Name           string
	Classification string
	Breed          string
	Age            string
	Gender         string
	Location       string
	Description    string
	ImageRef       string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}

	c := Classification(strings.ToLower(strings.TrimSpace(in.Classification)))
	if !ValidClassification(c) {
		return Pet{}, ErrInvalidInput
	}

	breed := strings.ToLower(strings.TrimSpace(in.Breed))
	if !ValidBreed(c, breed) {
		return Pet{}, ErrInvalidInput
	}

	age := Age(strings.ToLower(strings.TrimSpace(in.Age)))
	if !ValidAge(age) {
		return Pet{}, ErrInvalidInput
	}

	gender := Gender(strings.ToLower(strings.TrimSpace(in.Gender)))
	if !ValidGender(gender) {
		return Pet{}, ErrInvalidInput
	}

	loc := strings.TrimSpace(in.Location)
	if !ValidLocation(loc) {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:             uuid.NewString(),
		OwnerUserID:    ownerUserID,
		Name:           strings.TrimSpace(in.Name),
		Classification: c,
		Breed:          breed,
		Age:            age,
		Gender:         gender,
		Location:       loc,
		Status:         StatusAvailable,
		Description:    strings.TrimSpace(in.Description),
		ImageRef:       strings.TrimSpace(in.ImageRef),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// ListAvailable lista mascotas con status available, con filtros opcionales.
func (s *Service) ListAvailable(ctx context.Context, f ListFilter) ([]Pet, error) {
	if f.Classification != "" && !ValidClassification(f.Classification) {
		return nil, ErrInvalidInput
	}
	if f.Location != "" && !ValidLocation(f.Location) {
		return nil, ErrInvalidInput
	}
	return s.repo.ListAvailable(ctx, f)
}
