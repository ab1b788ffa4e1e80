package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/gateway"
	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/sse"
	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/store"
	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/testutil"
)

func newTestServer(t *testing.T, gw *testutil.FakeGateway, blobs gateway.BlobStore) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	st := store.New(gw, blobs, log)
	if err := st.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	hub := sse.NewHub(log)
	st.OnChange = hub.PublishChange

	router := gin.New()
	New(st, hub, log).RegisterRoutes(router)
	return router, st
}

func seedProject(gw *testutil.FakeGateway, name string) string {
	row := gw.Seed(gateway.TableProjects, gateway.Row{"nom_projet": name})
	return row["id"].(string)
}

func TestGetState(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := seedProject(gw, "DC Paris Nord")
	gw.Seed(gateway.TableActions, gateway.Row{"projet_id": p1, "nom_livrable": "Plan EXE"})
	router, _ := newTestServer(t, gw, testutil.NewFakeBlobStore())

	w := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/state", nil)
	testutil.CheckStatus(t, w, http.StatusOK)
	_, _, data := testutil.ParseResponse(t, w)

	var state struct {
		Projects          []entity.Project  `json:"projects"`
		SelectedProjectID string            `json:"selected_project_id"`
		View              store.ProjectView `json:"view"`
		Contacts          []entity.Contact  `json:"contacts"`
	}
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.SelectedProjectID != p1 {
		t.Errorf("selected = %q, want %q", state.SelectedProjectID, p1)
	}
	if len(state.View.Actions) != 1 {
		t.Errorf("view actions = %d, want 1", len(state.View.Actions))
	}
}

func TestSelectProject(t *testing.T) {
	gw := testutil.NewFakeGateway()
	seedProject(gw, "DC Paris Nord")
	p2 := seedProject(gw, "DC Marseille")
	router, st := newTestServer(t, gw, testutil.NewFakeBlobStore())

	w := testutil.DoRequest(t, router, http.MethodPut, "/api/v1/state/selected-project",
		gin.H{"project_id": p2})
	testutil.CheckStatus(t, w, http.StatusOK)
	if st.SelectedProjectID() != p2 {
		t.Errorf("selected = %q, want %q", st.SelectedProjectID(), p2)
	}

	w = testutil.DoRequest(t, router, http.MethodPut, "/api/v1/state/selected-project",
		gin.H{"project_id": "nope"})
	testutil.CheckStatus(t, w, http.StatusNotFound)
}

func TestSaveActionValidation(t *testing.T) {
	gw := testutil.NewFakeGateway()
	seedProject(gw, "DC Paris Nord")
	router, _ := newTestServer(t, gw, testutil.NewFakeBlobStore())

	w := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/actions",
		gin.H{"kanban_status": "À Soumettre"})
	testutil.CheckStatus(t, w, http.StatusBadRequest)

	// A rejected request must not have reached the gateway.
	if got := len(gw.Rows(gateway.TableActions)); got != 0 {
		t.Errorf("gateway rows = %d, want 0 after validation failure", got)
	}
}

func TestSaveActionInsertAndHistory(t *testing.T) {
	gw := testutil.NewFakeGateway()
	seedProject(gw, "DC Paris Nord")
	router, st := newTestServer(t, gw, testutil.NewFakeBlobStore())

	w := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/actions",
		gin.H{"deliverable_name": "Note de calcul", "kanban_status": "À Soumettre"})
	testutil.CheckStatus(t, w, http.StatusOK)
	_, _, data := testutil.ParseResponse(t, w)

	var saved entity.Action
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("decode action: %v", err)
	}
	if saved.ID == "" {
		t.Error("saved action has no id")
	}
	hist := st.View().History
	if len(hist) != 1 || hist[0].EventType != entity.EventCreation {
		t.Errorf("history = %+v, want one creation entry", hist)
	}
}

func TestSaveActionGatewayFailure(t *testing.T) {
	gw := testutil.NewFakeGateway()
	seedProject(gw, "DC Paris Nord")
	router, st := newTestServer(t, gw, testutil.NewFakeBlobStore())

	gw.InsertErr[gateway.TableActions] = errors.New("boom")
	w := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/actions",
		gin.H{"deliverable_name": "Note de calcul"})
	testutil.CheckStatus(t, w, http.StatusInternalServerError)
	if got := len(st.View().Actions); got != 0 {
		t.Errorf("mirror actions = %d, want 0 after failed save", got)
	}
}

func TestQuickAdd(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := seedProject(gw, "DC Paris Nord")
	gw.Seed(gateway.TableContacts, gateway.Row{
		"projet_id": p1, "first_name": "Jane", "last_name": "Doe",
	})
	router, st := newTestServer(t, gw, testutil.NewFakeBlobStore())

	w := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/actions/quick-add",
		gin.H{"text": "Soumettre les plans pour le 15/03/2025 @Jane Doe"})
	testutil.CheckStatus(t, w, http.StatusCreated)

	actions := st.View().Actions
	if len(actions) != 1 {
		t.Fatalf("actions = %d, want 1", len(actions))
	}
	a := actions[0]
	if a.DeliverableName != "Soumettre les plans" {
		t.Errorf("name = %q", a.DeliverableName)
	}
	if a.CurrentDueDate != "2025-03-15" {
		t.Errorf("due date = %q", a.CurrentDueDate)
	}
	if a.ProjectID != p1 {
		t.Errorf("project = %q, want selected %q", a.ProjectID, p1)
	}
	if strings.HasPrefix(a.ID, "A1") {
		t.Errorf("id = %q, provisional id should be replaced by the store", a.ID)
	}
}

func TestQuickAddResolvesMentionAcrossProjects(t *testing.T) {
	gw := testutil.NewFakeGateway()
	seedProject(gw, "DC Paris Nord")
	p2 := seedProject(gw, "DC Marseille")
	// Jane belongs to a project that is not selected; her name must
	// still resolve.
	contactRow := gw.Seed(gateway.TableContacts, gateway.Row{
		"projet_id": p2, "first_name": "Jane", "last_name": "Doe",
	})
	router, st := newTestServer(t, gw, testutil.NewFakeBlobStore())

	w := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/actions/quick-add",
		gin.H{"text": "Soumettre les plans @Jane Doe"})
	testutil.CheckStatus(t, w, http.StatusCreated)

	actions := st.View().Actions
	if len(actions) != 1 {
		t.Fatalf("actions = %d, want 1", len(actions))
	}
	if got, want := actions[0].ExecutionOwnerID, contactRow["id"].(string); got != want {
		t.Errorf("execution owner = %q, want %q", got, want)
	}
}

func TestDeleteProjectReturnsNewSelection(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := seedProject(gw, "DC Paris Nord")
	p2 := seedProject(gw, "DC Marseille")
	router, _ := newTestServer(t, gw, testutil.NewFakeBlobStore())

	w := testutil.DoRequest(t, router, http.MethodDelete, "/api/v1/projects/"+p1, nil)
	testutil.CheckStatus(t, w, http.StatusOK)
	_, _, data := testutil.ParseResponse(t, w)

	var resp struct {
		SelectedProjectID string `json:"selected_project_id"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SelectedProjectID != p2 {
		t.Errorf("selected = %q, want %q", resp.SelectedProjectID, p2)
	}
}

func TestSaveNonConformityWithPhotoMultipart(t *testing.T) {
	gw := testutil.NewFakeGateway()
	seedProject(gw, "DC Paris Nord")
	blobs := testutil.NewFakeBlobStore()
	router, st := newTestServer(t, gw, blobs)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	nc, _ := json.Marshal(gin.H{"description": "Fissure dalle", "status": "Ouverte"})
	mw.WriteField("data", string(nc))
	fw, _ := mw.CreateFormFile("photo", "fissure.jpg")
	fw.Write([]byte("jpegdata"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/non-conformites/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	testutil.CheckStatus(t, w, http.StatusOK)
	ncs := st.View().NonConformities
	if len(ncs) != 1 {
		t.Fatalf("non-conformities = %d, want 1", len(ncs))
	}
	if ncs[0].PhotoURL == nil || !strings.Contains(*ncs[0].PhotoURL, gateway.PhotoBucket) {
		t.Errorf("photo url = %v, want bucket URL", ncs[0].PhotoURL)
	}
	if len(blobs.Objects) != 1 {
		t.Errorf("uploaded objects = %d, want 1", len(blobs.Objects))
	}
}

func TestDraftReminder(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := seedProject(gw, "DC Paris Nord")
	contactRow := gw.Seed(gateway.TableContacts, gateway.Row{
		"projet_id": p1, "first_name": "Paul", "last_name": "Roux",
		"email": "paul@x.fr", "company_role": "Architecte",
	})
	actionRow := gw.Seed(gateway.TableActions, gateway.Row{
		"projet_id": p1, "nom_livrable": "Plan EXE", "derniere_limite": "2025-03-01",
	})
	router, _ := newTestServer(t, gw, testutil.NewFakeBlobStore())

	w := testutil.DoRequest(t, router, http.MethodPost, "/api/v1/reports/reminder",
		gin.H{"contact_id": contactRow["id"], "action_id": actionRow["id"]})
	testutil.CheckStatus(t, w, http.StatusOK)
	_, _, data := testutil.ParseResponse(t, w)

	var draft struct {
		Subject    string   `json:"subject"`
		Body       string   `json:"body"`
		Recipients []string `json:"recipients"`
	}
	if err := json.Unmarshal(data, &draft); err != nil {
		t.Fatalf("decode draft: %v", err)
	}
	if draft.Subject != "[RAPPEL] Action en retard: Plan EXE" {
		t.Errorf("subject = %q", draft.Subject)
	}
	if !strings.Contains(draft.Body, "Votre validation est cruciale") {
		t.Errorf("body = %q, want architect wording", draft.Body)
	}

	w = testutil.DoRequest(t, router, http.MethodPost, "/api/v1/reports/reminder",
		gin.H{"contact_id": "nope"})
	testutil.CheckStatus(t, w, http.StatusNotFound)
}

func TestGenerateMoMReturnsHTML(t *testing.T) {
	gw := testutil.NewFakeGateway()
	seedProject(gw, "DC Paris Nord")
	router, _ := newTestServer(t, gw, testutil.NewFakeBlobStore())

	w := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/reports/mom", nil)
	testutil.CheckStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "Compte Rendu de Réunion PMO") {
		t.Error("minutes title missing")
	}
	if !strings.Contains(w.Body.String(), "DC Paris Nord") {
		t.Error("project name missing")
	}
}

func TestExportActionPlanHeaders(t *testing.T) {
	gw := testutil.NewFakeGateway()
	seedProject(gw, "DC Paris Nord")
	router, _ := newTestServer(t, gw, testutil.NewFakeBlobStore())

	w := testutil.DoRequest(t, router, http.MethodGet, "/api/v1/reports/actions.xlsx", nil)
	testutil.CheckStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Plan_Actions_DC_Paris_Nord.xlsx") {
		t.Errorf("content disposition = %q", cd)
	}
}
