package recommendations

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-adoption-market/internal/domain/pets"
	"pet-adoption-market/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/recommendations", getRecommendationsHandler(svc))
}

type recommendedPetResponse struct {
	ID             string              `json:"id"`
	OwnerUserID    string              `json:"owner_user_id"`
	Name           string              `json:"name"`
	Classification pets.Classification `json:"classification"`
	Breed          string              `json:"breed"`
	Age            pets.Age            `json:"age"`
	Gender         pets.Gender         `json:"gender"`
	Location       string              `json:"location"`
	ImageRef       string              `json:"image_ref,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`

	Score float64 `json:"score"`
}

func getRecommendationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.Recommend(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recommendedPetResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecommendedPetResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toRecommendedPetResponse(rec Recommendation) recommendedPetResponse {
	p := rec.Pet
	return recommendedPetResponse{
		ID:             p.ID,
		OwnerUserID:    p.OwnerUserID,
		Name:           p.Name,
		Classification: p.Classification,
		Breed:          p.Breed,
		Age:            p.Age,
		Gender:         p.Gender,
		Location:       p.Location,
		ImageRef:       p.ImageRef,
		CreatedAt:      p.CreatedAt,
		Score:          rec.Score,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
