package applications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-market/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets/{petID}/applications", func(ar chi.Router) {
		ar.Post("/", submitApplicationHandler(svc))
		ar.Get("/", listApplicationsByPetHandler(svc))
	})

	r.Route("/applications/{applicationID}", func(ar chi.Router) {
		ar.Get("/", getApplicationHandler(svc))
		ar.Post("/approve", approveApplicationHandler(svc))
		ar.Post("/reject", rejectApplicationHandler(svc))
		ar.Post("/complete", completeApplicationHandler(svc))
		ar.Post("/viewed", markViewedHandler(svc))
	})

	r.Get("/me/applications", listMyApplicationsHandler(svc))
}

type emergencyContactRequest struct {
	Name         string `json:"name" validate:"required"`
	Contact      string `json:"contact" validate:"required"`
	Relationship string `json:"relationship"`
}

type submitApplicationRequest struct {
	Address       string                  `json:"address" validate:"required"`
	Contact       string                  `json:"contact" validate:"required"`
	Occupation    string                  `json:"occupation" validate:"required"`
	Emergency     emergencyContactRequest `json:"emergency_contact" validate:"required"`
	ResidenceType string                  `json:"residence_type" validate:"required,oneof=owned rented with_family"`
	CareNarrative string                  `json:"care_narrative" validate:"required"`

	ValidIDRef          string `json:"valid_id_ref" validate:"required"`
	ProofOfIncomeRef    string `json:"proof_of_income_ref" validate:"required"`
	ProofOfResidenceRef string `json:"proof_of_residence_ref" validate:"required"`
}

type emergencyContactResponse struct {
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	Relationship string `json:"relationship,omitempty"`
}

type applicationResponse struct {
	ID              string `json:"id"`
	ApplicantUserID string `json:"applicant_user_id"`
	PetID           string `json:"pet_id"`

	Address       string                   `json:"address"`
	Contact       string                   `json:"contact"`
	Occupation    string                   `json:"occupation"`
	Emergency     emergencyContactResponse `json:"emergency_contact"`
	ResidenceType ResidenceType            `json:"residence_type"`
	CareNarrative string                   `json:"care_narrative"`

	ValidIDRef          string `json:"valid_id_ref"`
	ProofOfIncomeRef    string `json:"proof_of_income_ref"`
	ProofOfResidenceRef string `json:"proof_of_residence_ref"`

	Status      Status     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func submitApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")

		var req submitApplicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "missing required field: "+err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Submit(r.Context(), claims.UserID, petID, SubmitInput{
			Address:    req.Address,
			Contact:    req.Contact,
			Occupation: req.Occupation,
			Emergency: EmergencyContact{
				Name:         req.Emergency.Name,
				Contact:      req.Emergency.Contact,
				Relationship: req.Emergency.Relationship,
			},
			ResidenceType: req.ResidenceType,
			CareNarrative: req.CareNarrative,

			ValidIDRef:          req.ValidIDRef,
			ProofOfIncomeRef:    req.ProofOfIncomeRef,
			ProofOfResidenceRef: req.ProofOfResidenceRef,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toApplicationResponse(a))
	}
}

func getApplicationHandler(svc *Service) http.HandlerFunc {
	// Solo las partes (solicitante o dueño) pueden ver el detalle.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id := chi.URLParam(r, "applicationID")
		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if a.ApplicantUserID != claims.UserID {
			owner, err := svc.OwnerOfApplication(r.Context(), a.ID)
			if err != nil || owner != claims.UserID {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

func approveApplicationHandler(svc *Service) http.HandlerFunc {
	return transitionHandler(svc.Approve)
}

func rejectApplicationHandler(svc *Service) http.HandlerFunc {
	return transitionHandler(svc.Reject)
}

func completeApplicationHandler(svc *Service) http.HandlerFunc {
	return transitionHandler(svc.Complete)
}

// transitionHandler comparte el shape de approve/reject/complete:
// misma entrada, misma salida, mismo mapeo de errores.
func transitionHandler(op func(ctx context.Context, applicationID, actorUserID string) (Application, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id := chi.URLParam(r, "applicationID")
		a, err := op(r.Context(), id, claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

func markViewedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id := chi.URLParam(r, "applicationID")
		n, err := svc.MarkViewed(r.Context(), id, claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		// Viewer que no es el dueño: no se emite nada.
		if n == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":         n.ID,
			"user_id":    n.UserID,
			"type":       n.Type,
			"message":    n.Message,
			"related_id": n.RelatedID,
			"created_at": n.CreatedAt,
		})
	}
}

func listMyApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByApplicant(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]applicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toApplicationResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listApplicationsByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		items, err := svc.ListByPet(r.Context(), petID, claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]applicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toApplicationResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "application not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toApplicationResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:              a.ID,
		ApplicantUserID: a.ApplicantUserID,
		PetID:           a.PetID,

		Address:    a.Address,
		Contact:    a.Contact,
		Occupation: a.Occupation,
		Emergency: emergencyContactResponse{
			Name:         a.Emergency.Name,
			Contact:      a.Emergency.Contact,
			Relationship: a.Emergency.Relationship,
		},
		ResidenceType: a.ResidenceType,
		CareNarrative: a.CareNarrative,

		ValidIDRef:          a.ValidIDRef,
		ProofOfIncomeRef:    a.ProofOfIncomeRef,
		ProofOfResidenceRef: a.ProofOfResidenceRef,

		Status:      a.Status,
		CompletedAt: a.CompletedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
