package ratings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-market/internal/domain/notifications"
	"pet-adoption-market/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidStars = errors.New("stars must be between 1 and 5")
	ErrNotFound     = errors.New("application not found")
	ErrDuplicate    = errors.New("rating already submitted for this application")
	ErrPersistence  = errors.New("persistence error")
)

// ApplicationLookup deriva el dueño (ratee) desde la application.
// Interfaz local para no importar el módulo applications.
type ApplicationLookup interface {
	OwnerOfApplication(ctx context.Context, applicationID string) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID string, t notifications.Type, message, relatedID string) (notifications.Notification, error)
}

type Service struct {
	repo     Repository
	apps     ApplicationLookup
	notifier Notifier
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, apps ApplicationLookup, notifier Notifier, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		apps:     apps,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Submit persiste el rating y notifica RATING_RECEIVED al dueño.
//
// Contrato con el boundary: este gate NO re-chequea que la application esté
// completed; el handler solo expone el submit cuando status == completed.
// El duplicado sí se chequea acá, antes del insert, sin depender de una
// unicidad a nivel storage.
func (s *Service) Submit(ctx context.Context, applicationID, adopterUserID, feedback string, stars int) (Rating, error) {
	applicationID = strings.TrimSpace(applicationID)
	adopterUserID = strings.TrimSpace(adopterUserID)
	if applicationID == "" || adopterUserID == "" {
		return Rating{}, ErrInvalidInput
	}

	// Validar stars antes de tocar el store: fuera de rango no persiste nada.
	if stars < 1 || stars > 5 {
		return Rating{}, ErrInvalidStars
	}

	ownerUserID, err := s.apps.OwnerOfApplication(ctx, applicationID)
	if err != nil {
		return Rating{}, ErrNotFound
	}

	exists, err := s.repo.Exists(ctx, applicationID, adopterUserID)
	if err != nil {
		return Rating{}, fmt.Errorf("%w: check duplicate: %v", ErrPersistence, err)
	}
	if exists {
		return Rating{}, ErrDuplicate
	}

	rt := Rating{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		AdopterUserID: adopterUserID,
		OwnerUserID:   ownerUserID,
		Feedback:      strings.TrimSpace(feedback),
		Stars:         stars,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, rt); err != nil {
		return Rating{}, fmt.Errorf("%w: create rating: %v", ErrPersistence, err)
	}

	// Best-effort: el rating persistido es la fuente de verdad.
	if _, err := s.notifier.Notify(ctx, ownerUserID, notifications.TypeRatingReceived,
		fmt.Sprintf("You received a %d-star rating from an adopter.", rt.Stars), rt.ID); err != nil {
		s.log.Warn("notification emission failed", map[string]any{
			"user_id":   ownerUserID,
			"rating_id": rt.ID,
			"err":       err.Error(),
		})
	}

	return rt, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Rating, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// AverageForOwner calcula promedio y cantidad de ratings de un dueño.
// Sin ratings: promedio 0, count 0.
func (s *Service) AverageForOwner(ctx context.Context, ownerUserID string) (float64, int, error) {
	items, err := s.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return 0, 0, err
	}
	if len(items) == 0 {
		return 0, 0, nil
	}

	sum := 0
	for _, r := range items {
		sum += r.Stars
	}
	return float64(sum) / float64(len(items)), len(items), nil
}
