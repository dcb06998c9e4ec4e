package applications

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
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("application not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrPersistence envuelve fallas de I/O contra el store. El caller decide
	// la política de retry; no es un error de negocio.
	ErrPersistence = errors.New("persistence error")
)

// PetCatalog es lo mínimo que el motor necesita del módulo pets.
// Interfaz local para evitar ciclos de imports (pets <-> applications).
type PetCatalog interface {
	InfoOf(ctx context.Context, petID string) (PetInfo, error)
	MarkAdopted(ctx context.Context, petID string) error
}

// PetInfo es el subconjunto de la mascota que usan las transiciones.
type PetInfo struct {
	ID          string
	OwnerUserID string
	Name        string
}

// Notifier centraliza la emisión de notificaciones de las transiciones.
// En tests se sustituye por un fake que registra emisiones.
type Notifier interface {
	Notify(ctx context.Context, userID string, t notifications.Type, message, relatedID string) (notifications.Notification, error)
}

type Service struct {
	repo     Repository
	pets     PetCatalog
	notifier Notifier
	log      logger.Logger

	now   func() time.Time
	locks *appLocks
}

func NewService(repo Repository, pets PetCatalog, notifier Notifier, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		pets:     pets,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		locks:    newAppLocks(),
	}
}

type SubmitInput struct {
	Address       string
	Contact       string
	Occupation    string
	Emergency     EmergencyContact
	ResidenceType string
	CareNarrative string

	ValidIDRef          string
	ProofOfIncomeRef    string
	ProofOfResidenceRef string
}

// Submit crea la solicitud en pending y notifica al dueño de la mascota.
// No hay unicidad (applicant, pet): el sistema original permite re-aplicar
// y esa permisividad se conserva.
func (s *Service) Submit(ctx context.Context, applicantUserID, petID string, in SubmitInput) (Application, error) {
	applicantUserID = strings.TrimSpace(applicantUserID)
	petID = strings.TrimSpace(petID)
	if applicantUserID == "" || petID == "" {
		return Application{}, ErrInvalidInput
	}

	if strings.TrimSpace(in.Address) == "" ||
		strings.TrimSpace(in.Contact) == "" ||
		strings.TrimSpace(in.Occupation) == "" ||
		strings.TrimSpace(in.Emergency.Name) == "" ||
		strings.TrimSpace(in.Emergency.Contact) == "" ||
		strings.TrimSpace(in.CareNarrative) == "" ||
		strings.TrimSpace(in.ValidIDRef) == "" ||
		strings.TrimSpace(in.ProofOfIncomeRef) == "" ||
		strings.TrimSpace(in.ProofOfResidenceRef) == "" {
		return Application{}, ErrInvalidInput
	}

	residence := ResidenceType(strings.ToLower(strings.TrimSpace(in.ResidenceType)))
	if !ValidResidenceType(residence) {
		return Application{}, ErrInvalidInput
	}

	pet, err := s.pets.InfoOf(ctx, petID)
	if err != nil {
		return Application{}, ErrNotFound
	}
	// El dueño no puede aplicar a su propia mascota.
	if pet.OwnerUserID == applicantUserID {
		return Application{}, ErrInvalidInput
	}

	now := s.now()
	a := Application{
		ID:              uuid.NewString(),
		ApplicantUserID: applicantUserID,
		PetID:           petID,

		Address:       strings.TrimSpace(in.Address),
		Contact:       strings.TrimSpace(in.Contact),
		Occupation:    strings.TrimSpace(in.Occupation),
		Emergency: EmergencyContact{
			Name:         strings.TrimSpace(in.Emergency.Name),
			Contact:      strings.TrimSpace(in.Emergency.Contact),
			Relationship: strings.TrimSpace(in.Emergency.Relationship),
		},
		ResidenceType: residence,
		CareNarrative: strings.TrimSpace(in.CareNarrative),

		ValidIDRef:          strings.TrimSpace(in.ValidIDRef),
		ProofOfIncomeRef:    strings.TrimSpace(in.ProofOfIncomeRef),
		ProofOfResidenceRef: strings.TrimSpace(in.ProofOfResidenceRef),

		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, fmt.Errorf("%w: create application: %v", ErrPersistence, err)
	}

	s.notify(ctx, pet.OwnerUserID, notifications.TypeApplicationReceived,
		fmt.Sprintf("New adoption application received for %s.", pet.Name), a.ID)

	return a, nil
}

// Approve: pending -> approved. Marca la mascota como adopted y notifica
// al solicitante. Re-aprobar o aprobar una rejected es conflicto, no un
// success silencioso.
func (s *Service) Approve(ctx context.Context, applicationID, actorUserID string) (Application, error) {
	return s.transition(ctx, applicationID, actorUserID, func(ctx context.Context, a *Application, pet PetInfo) error {
		if a.Status != StatusPending {
			return ErrInvalidTransition
		}
		a.Status = StatusApproved
		a.UpdatedAt = s.now()

		if err := s.repo.Update(ctx, *a); err != nil {
			return fmt.Errorf("%w: update application: %v", ErrPersistence, err)
		}

		// El status primario ya quedó commiteado; a partir de acá las fallas
		// son inconsistencias recuperables, nunca se revierte el orden.
		if err := s.pets.MarkAdopted(ctx, a.PetID); err != nil {
			s.log.Error("pet status not synchronized after approve", map[string]any{
				"application_id": a.ID,
				"pet_id":         a.PetID,
				"err":            err.Error(),
			})
			return fmt.Errorf("%w: mark pet adopted: %v", ErrPersistence, err)
		}

		s.notify(ctx, a.ApplicantUserID, notifications.TypeAdoptionStatus,
			fmt.Sprintf("Your adoption application for %s has been approved.", pet.Name), a.ID)
		return nil
	})
}

// Reject: pending -> rejected (terminal). No toca el status de la mascota:
// puede recibir más solicitudes después de un rechazo.
func (s *Service) Reject(ctx context.Context, applicationID, actorUserID string) (Application, error) {
	return s.transition(ctx, applicationID, actorUserID, func(ctx context.Context, a *Application, pet PetInfo) error {
		if a.Status != StatusPending {
			return ErrInvalidTransition
		}
		a.Status = StatusRejected
		a.UpdatedAt = s.now()

		if err := s.repo.Update(ctx, *a); err != nil {
			return fmt.Errorf("%w: update application: %v", ErrPersistence, err)
		}

		s.notify(ctx, a.ApplicantUserID, notifications.TypeAdoptionStatus,
			fmt.Sprintf("Your adoption application for %s has been rejected.", pet.Name), a.ID)
		return nil
	})
}

// Complete: approved -> completed, exactamente una vez. Setea CompletedAt,
// re-asserta adopted en la mascota y notifica a ambas partes.
func (s *Service) Complete(ctx context.Context, applicationID, actorUserID string) (Application, error) {
	return s.transition(ctx, applicationID, actorUserID, func(ctx context.Context, a *Application, pet PetInfo) error {
		if a.Status != StatusApproved {
			return ErrInvalidTransition
		}
		now := s.now()
		a.Status = StatusCompleted
		a.CompletedAt = &now
		a.UpdatedAt = now

		if err := s.repo.Update(ctx, *a); err != nil {
			return fmt.Errorf("%w: update application: %v", ErrPersistence, err)
		}

		if err := s.pets.MarkAdopted(ctx, a.PetID); err != nil {
			s.log.Error("pet status not synchronized after complete", map[string]any{
				"application_id": a.ID,
				"pet_id":         a.PetID,
				"err":            err.Error(),
			})
			return fmt.Errorf("%w: mark pet adopted: %v", ErrPersistence, err)
		}

		s.notify(ctx, a.ApplicantUserID, notifications.TypeAdoptionStatus,
			fmt.Sprintf("Congratulations! Your adoption of %s is complete.", pet.Name), a.ID)
		s.notify(ctx, pet.OwnerUserID, notifications.TypeAdoptionStatus,
			fmt.Sprintf("The adoption of %s has been completed.", pet.Name), a.ID)
		return nil
	})
}

// transition resuelve lo común a approve/reject/complete: lock por ID,
// carga, autorización del owner y precondición ANTES de cualquier mutación.
// Si la precondición falla no hay ningún side effect.
func (s *Service) transition(
	ctx context.Context,
	applicationID, actorUserID string,
	apply func(ctx context.Context, a *Application, pet PetInfo) error,
) (Application, error) {
	applicationID = strings.TrimSpace(applicationID)
	actorUserID = strings.TrimSpace(actorUserID)
	if applicationID == "" || actorUserID == "" {
		return Application{}, ErrInvalidInput
	}

	unlock := s.locks.lock(applicationID)
	defer unlock()

	a, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return Application{}, ErrNotFound
	}

	pet, err := s.pets.InfoOf(ctx, a.PetID)
	if err != nil {
		return Application{}, fmt.Errorf("%w: load pet %s: %v", ErrPersistence, a.PetID, err)
	}
	if pet.OwnerUserID != actorUserID {
		return Application{}, ErrForbidden
	}

	if err := apply(ctx, &a, pet); err != nil {
		return Application{}, err
	}
	return a, nil
}

// MarkViewed emite APPLICATION_VIEWED al solicitante cuando quien mira es el
// dueño de la mascota. Es advisory: no hay transición de estado y un viewer
// que no es el owner simplemente no emite nada.
func (s *Service) MarkViewed(ctx context.Context, applicationID, viewerUserID string) (*notifications.Notification, error) {
	applicationID = strings.TrimSpace(applicationID)
	viewerUserID = strings.TrimSpace(viewerUserID)
	if applicationID == "" || viewerUserID == "" {
		return nil, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, ErrNotFound
	}

	pet, err := s.pets.InfoOf(ctx, a.PetID)
	if err != nil {
		return nil, fmt.Errorf("%w: load pet %s: %v", ErrPersistence, a.PetID, err)
	}
	if pet.OwnerUserID != viewerUserID {
		return nil, nil
	}

	n, err := s.notifier.Notify(ctx, a.ApplicantUserID, notifications.TypeApplicationViewed,
		fmt.Sprintf("The owner has viewed your application for %s.", pet.Name), a.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: emit notification: %v", ErrPersistence, err)
	}
	return &n, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, ErrInvalidInput
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) ListByApplicant(ctx context.Context, applicantUserID string) ([]Application, error) {
	applicantUserID = strings.TrimSpace(applicantUserID)
	if applicantUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByApplicant(ctx, applicantUserID)
}

// ListByPet lista las solicitudes de una mascota; solo el dueño puede.
func (s *Service) ListByPet(ctx context.Context, petID, actorUserID string) ([]Application, error) {
	petID = strings.TrimSpace(petID)
	actorUserID = strings.TrimSpace(actorUserID)
	if petID == "" || actorUserID == "" {
		return nil, ErrInvalidInput
	}

	pet, err := s.pets.InfoOf(ctx, petID)
	if err != nil {
		return nil, ErrNotFound
	}
	if pet.OwnerUserID != actorUserID {
		return nil, ErrForbidden
	}
	return s.repo.ListByPet(ctx, petID)
}

// ListByStatuses expone el historial por status (lo consume el recomendador).
func (s *Service) ListByStatuses(ctx context.Context, statuses []Status) ([]Application, error) {
	return s.repo.ListByStatuses(ctx, statuses)
}

// OwnerOfApplication deriva el dueño de la mascota referenciada.
// Lo consume el gate de ratings para dirigir RATING_RECEIVED.
func (s *Service) OwnerOfApplication(ctx context.Context, applicationID string) (string, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(applicationID))
	if err != nil {
		return "", ErrNotFound
	}
	pet, err := s.pets.InfoOf(ctx, a.PetID)
	if err != nil {
		return "", ErrNotFound
	}
	return pet.OwnerUserID, nil
}

// notify emite best-effort: el status ya commiteado es la fuente de verdad,
// una notificación perdida se loguea y se reconcilia después (backfill).
func (s *Service) notify(ctx context.Context, userID string, t notifications.Type, message, relatedID string) {
	if _, err := s.notifier.Notify(ctx, userID, t, message, relatedID); err != nil {
		s.log.Warn("notification emission failed", map[string]any{
			"user_id":    userID,
			"type":       string(t),
			"related_id": relatedID,
			"err":        err.Error(),
		})
	}
}
