package recommendations

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-adoption-market/internal/domain/applications"
	"pet-adoption-market/internal/domain/pets"
	"pet-adoption-market/internal/domain/preferences"
	"pet-adoption-market/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	contentWeight       = 0.5
	collaborativeWeight = 0.5

	minFinalScore  = 0.5
	maxRecommended = 10
)

// PetSource es lo que el recomendador necesita del catálogo de mascotas.
type PetSource interface {
	ListAvailable(ctx context.Context, f pets.ListFilter) ([]pets.Pet, error)
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

// PreferenceSource expone las preferencias declaradas de un usuario.
type PreferenceSource interface {
	Get(ctx context.Context, userID string) (preferences.Preference, error)
}

// HistorySource expone el historial de applications por status.
type HistorySource interface {
	ListByStatuses(ctx context.Context, statuses []applications.Status) ([]applications.Application, error)
}

type Service struct {
	pets    PetSource
	prefs   PreferenceSource
	history HistorySource
	log     logger.Logger
}

func NewService(petSource PetSource, prefSource PreferenceSource, historySource HistorySource, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		pets:    petSource,
		prefs:   prefSource,
		history: historySource,
		log:     log,
	}
}

// Recommendation es una mascota candidata con su score final.
type Recommendation struct {
	Pet   pets.Pet
	Score float64
}

// Recommend rankea mascotas disponibles para userID: top 10, score > 0.5.
//
// final = 0.5 x contenido + 0.5 x colaborativo, donde el término colaborativo
// es el promedio de los scores de similitud de los peers (§SimilarUsers).
// Limitación conocida y preservada del diseño original: el agregado NO
// re-inspecciona los atributos del candidato contra cada peer; es el mismo
// valor para todos los candidatos del request.
//
// Si la etapa colaborativa falla, degrada a contenido puro (término 0) en
// lugar de fallar el request.
func (s *Service) Recommend(ctx context.Context, userID string) ([]Recommendation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}

	var pref *preferences.Preference
	if p, ok := s.preferenceOf(ctx, userID); ok {
		pref = &p
	}

	// Pre-filtro por classification exacta salvo preferencia "both"/ausente.
	filter := pets.ListFilter{}
	if pref != nil && pref.PetType != preferences.PetTypeBoth {
		filter.Classification = pets.Classification(pref.PetType)
	}

	candidates, err := s.pets.ListAvailable(ctx, filter)
	if err != nil {
		return nil, err
	}

	collaborative := s.collaborativeScore(ctx, userID)

	out := make([]Recommendation, 0, len(candidates))
	for _, p := range candidates {
		final := contentWeight*scoreContent(p, pref) + collaborativeWeight*collaborative
		if final > minFinalScore {
			out = append(out, Recommendation{Pet: p, Score: final})
		}
	}

	// Desc por score; desempate por ID para salida estable.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Pet.ID < out[j].Pet.ID
	})

	if len(out) > maxRecommended {
		out = out[:maxRecommended]
	}
	return out, nil
}

// collaborativeScore devuelve el promedio de similitud de los peers.
// Cualquier falla degrada a 0 (content-only); nunca propaga error.
func (s *Service) collaborativeScore(ctx context.Context, userID string) float64 {
	peers, err := s.SimilarUsers(ctx, userID)
	if err != nil {
		s.log.Warn("collaborative stage degraded to content-only", map[string]any{
			"user_id": userID,
			"err":     err.Error(),
		})
		return 0
	}
	if len(peers) == 0 {
		return 0
	}

	sum := 0.0
	for _, p := range peers {
		sum += p.Score
	}
	return sum / float64(len(peers))
}

// preferenceOf distingue "sin registro" (ok=false) de una preferencia real.
func (s *Service) preferenceOf(ctx context.Context, userID string) (preferences.Preference, bool) {
	p, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return preferences.Preference{}, false
	}
	return p, true
}
