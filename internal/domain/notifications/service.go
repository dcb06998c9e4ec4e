package notifications

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
	ErrForbidden    = errors.New("forbidden")
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

// Emit crea el registro de notificación. Es el único punto de creación:
// los módulos que notifican (applications, ratings) lo invocan vía su
// interfaz Notifier en lugar de escribir al store directo.
func (s *Service) Emit(ctx context.Context, userID string, t Type, message, relatedID string) (Notification, error) {
	userID = strings.TrimSpace(userID)
	message = strings.TrimSpace(message)

	if userID == "" || message == "" {
		return Notification{}, ErrInvalidInput
	}
	if !validType(t) {
		return Notification{}, ErrInvalidInput
	}

	n := Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      t,
		Message:   message,
		RelatedID: strings.TrimSpace(relatedID),
		Read:      false,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

// Notify implementa la interfaz Notifier de los módulos productores.
func (s *Service) Notify(ctx context.Context, userID string, t Type, message, relatedID string) (Notification, error) {
	return s.Emit(ctx, userID, t, message, relatedID)
}

func (s *Service) ListByUser(ctx context.Context, userID string, onlyUnread bool) ([]Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID, onlyUnread)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, ErrInvalidInput
	}
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead marca una notificación como leída. Solo el destinatario puede.
// Marcar dos veces es idempotente.
func (s *Service) MarkRead(ctx context.Context, id, userID string) (Notification, error) {
	id = strings.TrimSpace(id)
	userID = strings.TrimSpace(userID)
	if id == "" || userID == "" {
		return Notification{}, ErrInvalidInput
	}

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Notification{}, ErrNotFound
	}
	if n.UserID != userID {
		return Notification{}, ErrForbidden
	}
	if n.Read {
		return n, nil
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return Notification{}, err
	}
	n.Read = true
	return n, nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidInput
	}
	return s.repo.MarkAllRead(ctx, userID)
}
