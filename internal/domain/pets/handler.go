package pets

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-adoption-market/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))

		// Browse del marketplace: solo disponibles, filtros opcionales.
		pr.Get("/", listAvailablePetsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
	})

	// Mis publicaciones (owner)
	r.Get("/me/pets", listMyPetsHandler(svc))
}

type createPetRequest struct {
	Name           string `json:"name"`
	Classification string `json:"classification"`
	Breed          string `json:"breed"`
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	ImageRef       string `json:"image_ref"`
}

type petResponse struct {
	ID             string         `json:"id"`
	OwnerUserID    string         `json:"owner_user_id"`
	Name           string         `json:"name"`
	Classification Classification `json:"classification"`
	Breed          string         `json:"breed"`
	Age            Age            `json:"age"`
	Gender         Gender         `json:"gender"`
	Location       string         `json:"location"`
	Status         Status         `json:"status"`
	Description    string         `json:"description,omitempty"`
	ImageRef       string         `json:"image_ref,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:           req.Name,
			Classification: req.Classification,
			Breed:          req.Breed,
			Age:            req.Age,
			Gender:         req.Gender,
			Location:       req.Location,
			Description:    req.Description,
			ImageRef:       req.ImageRef,
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

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listAvailablePetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		f := ListFilter{
			Classification: Classification(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type")))),
			Location:       strings.TrimSpace(r.URL.Query().Get("location")),
		}

		items, err := svc.ListAvailable(r.Context(), f)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		p, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func listMyPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:             p.ID,
		OwnerUserID:    p.OwnerUserID,
		Name:           p.Name,
		Classification: p.Classification,
		Breed:          p.Breed,
		Age:            p.Age,
		Gender:         p.Gender,
		Location:       p.Location,
		Status:         p.Status,
		Description:    p.Description,
		ImageRef:       p.ImageRef,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
