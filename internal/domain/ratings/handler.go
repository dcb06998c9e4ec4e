package ratings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-market/internal/domain/applications"
	"pet-adoption-market/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, appsSvc *applications.Service) {
	r.Post("/applications/{applicationID}/ratings", submitRatingHandler(svc, appsSvc))
	r.Get("/users/{userID}/ratings", listRatingsByOwnerHandler(svc))
}

type submitRatingRequest struct {
	Feedback string `json:"feedback"`
	Stars    int    `json:"stars"`
}

type ratingResponse struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	AdopterUserID string    `json:"adopter_user_id"`
	OwnerUserID   string    `json:"owner_user_id"`
	Feedback      string    `json:"feedback,omitempty"`
	Stars         int       `json:"stars"`
	CreatedAt     time.Time `json:"created_at"`
}

type ownerRatingsResponse struct {
	Items   []ratingResponse `json:"items"`
	Average float64          `json:"average"`
	Count   int              `json:"count"`
}

func submitRatingHandler(svc *Service, appsSvc *applications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		applicationID := chi.URLParam(r, "applicationID")

		// Contrato de boundary: el rating solo se expone con la adopción
		// completada. El gate no re-chequea este status (ver Service.Submit).
		a, err := appsSvc.GetByID(r.Context(), applicationID)
		if err != nil {
			http.Error(w, "application not found", http.StatusNotFound)
			return
		}
		if a.Status != applications.StatusCompleted {
			http.Error(w, "adoption is not completed yet", http.StatusConflict)
			return
		}

		var req submitRatingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rt, err := svc.Submit(r.Context(), applicationID, claims.UserID, req.Feedback, req.Stars)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidStars):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "application not found", http.StatusNotFound)
			case errors.Is(err, ErrDuplicate):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toRatingResponse(rt))
	}
}

func listRatingsByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ownerUserID := chi.URLParam(r, "userID")

		items, err := svc.ListByOwner(r.Context(), ownerUserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		avg, count, err := svc.AverageForOwner(r.Context(), ownerUserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := ownerRatingsResponse{
			Items:   make([]ratingResponse, 0, len(items)),
			Average: avg,
			Count:   count,
		}
		for _, rt := range items {
			out.Items = append(out.Items, toRatingResponse(rt))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toRatingResponse(rt Rating) ratingResponse {
	return ratingResponse{
		ID:            rt.ID,
		ApplicationID: rt.ApplicationID,
		AdopterUserID: rt.AdopterUserID,
		OwnerUserID:   rt.OwnerUserID,
		Feedback:      rt.Feedback,
		Stars:         rt.Stars,
		CreatedAt:     rt.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
