package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption-market/internal/router"
)

func TestHTTP_EndToEnd_AdoptionLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	adopterID := "adopter-1"

	// 1) Owner publica una mascota
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":           "Bantay",
		"classification": "dog",
		"breed":          "aspin",
		"age":            "young",
		"gender":         "male",
		"location":       "Balanga",
	})

	// 2) Adopter ve la mascota en el browse
	{
		st, body := doReq(t, ts.URL, "GET", "/pets?type=dog", adopterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 browsing pets, got %d body=%s", st, string(body))
		}
		var list []map[string]any
		_ = json.Unmarshal(body, &list)
		if len(list) != 1 {
			t.Fatalf("expected 1 available pet, got %d", len(list))
		}
	}

	// 3) Adopter aplica con el formulario completo
	appID := submitApplication(t, ts.URL, adopterID, petID)

	// 4) Owner recibió APPLICATION_RECEIVED
	{
		st, body := doReq(t, ts.URL, "GET", "/me/notifications", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing notifications, got %d body=%s", st, string(body))
		}
		var resp struct {
			Items []struct {
				Type      string `json:"type"`
				RelatedID string `json:"related_id"`
			} `json:"items"`
			Unread int `json:"unread"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Unread != 1 || len(resp.Items) != 1 || resp.Items[0].Type != "APPLICATION_RECEIVED" {
			t.Fatalf("expected 1 unread APPLICATION_RECEIVED, got %s", string(body))
		}
		if resp.Items[0].RelatedID != appID {
			t.Fatalf("expected notification related to application %s, got %s", appID, resp.Items[0].RelatedID)
		}
	}

	// 5) Owner marca la solicitud como vista => APPLICATION_VIEWED al adopter
	{
		st, body := doReq(t, ts.URL, "POST", "/applications/"+appID+"/viewed", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 mark viewed by owner, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/me/notifications", adopterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d", st)
		}
		if !bytes.Contains(body, []byte("APPLICATION_VIEWED")) {
			t.Fatalf("expected APPLICATION_VIEWED for adopter, body=%s", string(body))
		}
	}

	// 6) Un tercero mirando no emite nada (204)
	{
		st, _ := doReq(t, ts.URL, "POST", "/applications/"+appID+"/viewed", "stranger-1", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 for non-owner viewer, got %d", st)
		}
	}

	// 7) Calificar antes de completar => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/applications/"+appID+"/ratings", adopterID, map[string]any{
			"stars": 5,
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 rating before completion, got %d", st)
		}
	}

	// 8) Owner aprueba; la mascota pasa a adopted
	{
		st, body := doReq(t, ts.URL, "POST", "/applications/"+appID+"/approve", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 approve, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/pets/"+petID, adopterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet, got %d", st)
		}
		var pet struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &pet)
		if pet.Status != "adopted" {
			t.Fatalf("expected pet adopted after approve, got %s", pet.Status)
		}
	}

	// 9) Re-aprobar => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/applications/"+appID+"/approve", ownerID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 re-approving, got %d", st)
		}
	}

	// 10) Owner completa; queda completed_at
	{
		st, body := doReq(t, ts.URL, "POST", "/applications/"+appID+"/complete", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 complete, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status      string  `json:"status"`
			CompletedAt *string `json:"completed_at"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "completed" || resp.CompletedAt == nil {
			t.Fatalf("expected completed with completed_at, got %s", string(body))
		}
	}

	// 11) Adopter califica al dueño
	{
		st, body := doReq(t, ts.URL, "POST", "/applications/"+appID+"/ratings", adopterID, map[string]any{
			"feedback": "Great owner, smooth handover.",
			"stars":    5,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 rating, got %d body=%s", st, string(body))
		}
	}

	// 12) Repetir la calificación => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/applications/"+appID+"/ratings", adopterID, map[string]any{
			"stars": 1,
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate rating, got %d", st)
		}
	}

	// 13) El perfil público del dueño muestra el promedio
	{
		st, body := doReq(t, ts.URL, "GET", "/users/"+ownerID+"/ratings", adopterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 owner ratings, got %d", st)
		}
		var resp struct {
			Average float64 `json:"average"`
			Count   int     `json:"count"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Count != 1 || resp.Average != 5 {
			t.Fatalf("expected average 5 over 1 rating, got %s", string(body))
		}
	}

	// 14) Read-all deja el contador en cero
	{
		st, _ := doReq(t, ts.URL, "POST", "/me/notifications/read-all", ownerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 read-all, got %d", st)
		}

		st, body := doReq(t, ts.URL, "GET", "/me/notifications?unread=true", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d", st)
		}
		var resp struct {
			Items  []any `json:"items"`
			Unread int   `json:"unread"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Unread != 0 || len(resp.Items) != 0 {
			t.Fatalf("expected zero unread after read-all, got %s", string(body))
		}
	}
}

func TestHTTP_Transitions_Guardrails(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	adopterID := "adopter-1"

	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":           "Mingming",
		"classification": "cat",
		"breed":          "puspin",
		"age":            "baby",
		"gender":         "female",
		"location":       "Orani",
	})
	appID := submitApplication(t, ts.URL, adopterID, petID)

	// El dueño no puede aplicar a su propia mascota
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/applications", ownerID, applicationForm())
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 self-application, got %d", st)
		}
	}

	// Alguien que no es el dueño no puede aprobar
	{
		st, _ := doReq(t, ts.URL, "POST", "/applications/"+appID+"/approve", adopterID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 approve by non-owner, got %d", st)
		}
	}

	// Rechazada es terminal
	{
		st, _ := doReq(t, ts.URL, "POST", "/applications/"+appID+"/reject", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reject, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/applications/"+appID+"/approve", ownerID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 approving rejected, got %d", st)
		}
	}

	// La mascota sigue disponible tras el rechazo
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID, adopterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet, got %d", st)
		}
		var pet struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &pet)
		if pet.Status != "available" {
			t.Fatalf("expected available after reject, got %s", pet.Status)
		}
	}

	// Sin identidad => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/me/applications", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without identity, got %d", st)
		}
	}
}

func TestHTTP_Recommendations_EndToEnd(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	userID := "u1"
	peerID := "peer-1"

	// Historial compartido: u1 y peer-1 adoptaron perros jóvenes en Balanga.
	for _, adopter := range []string{userID, peerID} {
		petID := createPet(t, ts.URL, ownerID, map[string]any{
			"name":           "Historial",
			"classification": "dog",
			"breed":          "aspin",
			"age":            "young",
			"gender":         "male",
			"location":       "Balanga",
		})
		appID := submitApplication(t, ts.URL, adopter, petID)
		st, body := doReq(t, ts.URL, "POST", "/applications/"+appID+"/approve", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 approve, got %d body=%s", st, string(body))
		}
	}

	// Ambos declaran la misma preferencia.
	for _, u := range []string{userID, peerID} {
		st, body := doReq(t, ts.URL, "PUT", "/me/preferences", u, map[string]any{
			"pet_type": "dog",
			"ages":     []string{"young"},
			"location": "Balanga",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 saving preferences, got %d body=%s", st, string(body))
		}
	}

	// Candidato disponible con match perfecto.
	matchID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":           "Recomendado",
		"classification": "dog",
		"breed":          "labrador",
		"age":            "young",
		"gender":         "female",
		"location":       "Balanga",
	})
	// Un gato disponible: el pre-filtro por tipo lo deja afuera.
	createPet(t, ts.URL, ownerID, map[string]any{
		"name":           "Gato",
		"classification": "cat",
		"breed":          "puspin",
		"age":            "young",
		"gender":         "male",
		"location":       "Balanga",
	})

	st, body := doReq(t, ts.URL, "GET", "/me/recommendations", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 recommendations, got %d body=%s", st, string(body))
	}
	var recs []struct {
		ID             string  `json:"id"`
		Classification string  `json:"classification"`
		Score          float64 `json:"score"`
	}
	_ = json.Unmarshal(body, &recs)
	if len(recs) != 1 {
		t.Fatalf("expected exactly 1 recommendation, got %s", string(body))
	}
	if recs[0].ID != matchID || recs[0].Score != 1.0 {
		t.Fatalf("expected %s with score 1.0, got %#v", matchID, recs[0])
	}
}

// -------------------------
// Helpers
// -------------------------

func applicationForm() map[string]any {
	return map[string]any{
		"address":    "123 Rizal St, Balanga",
		"contact":    "0917-555-0101",
		"occupation": "teacher",
		"emergency_contact": map[string]any{
			"name":         "Ana Cruz",
			"contact":      "0917-555-0102",
			"relationship": "sister",
		},
		"residence_type":         "owned",
		"care_narrative":         "Fenced yard, daily walks, prior experience with aspins.",
		"valid_id_ref":           "doc-id-1",
		"proof_of_income_ref":    "doc-income-1",
		"proof_of_residence_ref": "doc-residence-1",
	}
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func submitApplication(t *testing.T, baseURL, adopterID, petID string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets/"+petID+"/applications", adopterID, applicationForm())
	if st != http.StatusCreated {
		t.Fatalf("expected 201 submit application, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("submit application: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
