package preferences

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
	r.Route("/me/preferences", func(pr chi.Router) {
		pr.Get("/", getMyPreferencesHandler(svc))
		pr.Put("/", saveMyPreferencesHandler(svc))
	})
}

type savePreferencesRequest struct {
	// Punteros para merge real: campo ausente = no tocar.
	PetType  *string   `json:"pet_type"`
	Ages     *[]string `json:"ages"`
	Location *string   `json:"location"`
}

type preferenceResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	PetType   PetType    `json:"pet_type"`
	Ages      []pets.Age `json:"ages"`
	Location  string     `json:"location,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func getMyPreferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "no preferences saved", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPreferenceResponse(p))
	}
}

func saveMyPreferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req savePreferencesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Save(r.Context(), claims.UserID, SaveInput{
			PetType:  req.PetType,
			Ages:     req.Ages,
			Location: req.Location,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPreferenceResponse(p))
	}
}

func toPreferenceResponse(p Preference) preferenceResponse {
	ages := p.Ages
	if ages == nil {
		ages = []pets.Age{}
	}
	return preferenceResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		PetType:   p.PetType,
		Ages:      ages,
		Location:  p.Location,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
