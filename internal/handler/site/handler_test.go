package site

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"folioassist/internal/model/assistant"
)

func setupRouter() *chi.Mux {
	profile := &assistant.Profile{
		AssistantName:    "Folio",
		OwnerName:        "Dana",
		AccentColor:      "#0f766e",
		ContactEmail:     "dana@example.dev",
		BookingLink:      "https://cal.example.dev/dana",
		Phone:            "+1 555 010 7788",
		Website:          "https://example.dev",
		AutoShareContact: true,
		Projects: []assistant.Project{
			{ID: "shoply", Title: "Shoply", Featured: true},
			{ID: "tracker", Title: "Tracker", Featured: false},
			{ID: "relay", Title: "Relay", Featured: true},
		},
	}
	r := chi.NewRouter()
	New(profile).RegisterRoutes(r)
	return r
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d", path, resp.Code)
	}
	return resp
}

func TestPublicConfigHasNoContactDetails(t *testing.T) {
	r := setupRouter()
	resp := get(t, r, "/config")

	raw := resp.Body.String()
	if strings.Contains(raw, "dana@example.dev") || strings.Contains(raw, "555") {
		t.Fatalf("public config leaked contact details: %s", raw)
	}

	var body assistant.PublicView
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.AssistantName != "Folio" || body.ProjectCount != 3 {
		t.Fatalf("unexpected public view: %+v", body)
	}
}

func TestProjectsEndpoint(t *testing.T) {
	r := setupRouter()

	var body struct {
		Projects []assistant.Project `json:"projects"`
		Total    int                 `json:"total"`
	}
	if err := json.Unmarshal(get(t, r, "/config/projects").Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Total != 3 || len(body.Projects) != 3 {
		t.Fatalf("expected all 3 projects, got %+v", body)
	}
}

func TestProjectsFeaturedFilter(t *testing.T) {
	r := setupRouter()

	var body struct {
		Projects []assistant.Project `json:"projects"`
		Total    int                 `json:"total"`
	}
	if err := json.Unmarshal(get(t, r, "/config/projects?featured=true").Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Total != 2 {
		t.Fatalf("expected 2 featured projects, got %d", body.Total)
	}
	for _, project := range body.Projects {
		if !project.Featured {
			t.Fatalf("non-featured project in filtered list: %s", project.ID)
		}
	}
}

func TestContactEndpoint(t *testing.T) {
	r := setupRouter()

	var body assistant.ContactView
	if err := json.Unmarshal(get(t, r, "/config/contact").Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Email != "dana@example.dev" || body.BookingLink == "" {
		t.Fatalf("unexpected contact view: %+v", body)
	}
}
