package mapper

import (
	"testing"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/gateway"
)

func TestActionRoundTrip(t *testing.T) {
	a := entity.Action{
		ID:                "a1",
		ProjectID:         "p1",
		DeliverableName:   "Plan d'exécution niveau 2",
		TechnicalLot:      "CFO/CFA",
		VersionIndex:      "B",
		ExecutionOwnerID:  "c1",
		ValidationOwnerID: "c2",
		InitialDueDate:    "2025-03-01",
		CurrentDueDate:    "2025-03-15",
		KanbanStatus:      entity.StatusUnderReview,
		AlertCriticality:  entity.CriticalityWatch,
		SlippageReason:    "Retard fournisseur",
		StatusComment:     "En attente visa",
		DocumentLink:      "https://drive/doc",
		VisaLink:          "https://drive/visa",
		ReportCount:       2,
	}

	got := ActionFromWire(ActionToWire(a, true))
	if got != a {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, a)
	}
}

func TestActionToWireOmitsEmptyID(t *testing.T) {
	row := ActionToWire(entity.Action{ProjectID: "p1", DeliverableName: "X"}, false)
	if _, ok := row["id"]; ok {
		t.Error("insert row should not carry an id column")
	}
	row = ActionToWire(entity.Action{ID: "a1", ProjectID: "p1"}, false)
	if _, ok := row["id"]; ok {
		t.Error("includeID=false must omit the id even when set")
	}
}

func TestActionFromWireUnknownStatusFallsBack(t *testing.T) {
	a := ActionFromWire(gateway.Row{"id": "a1", "statut_kanban": "Archivé"})
	if a.KanbanStatus != entity.StatusToSubmit {
		t.Errorf("unknown status mapped to %q, want %q", a.KanbanStatus, entity.StatusToSubmit)
	}
	a = ActionFromWire(gateway.Row{"id": "a1"})
	if a.KanbanStatus != entity.StatusToSubmit {
		t.Errorf("missing status mapped to %q, want %q", a.KanbanStatus, entity.StatusToSubmit)
	}
}

func TestNonConformityNullableColumns(t *testing.T) {
	nc := NonConformityFromWire(gateway.Row{
		"id":        "nc1",
		"projet_id": "p1",
		"statut":    "Ouverte",
	})
	if nc.ClosedAt != nil {
		t.Error("NULL date_cloture should map to nil")
	}
	if nc.PhotoURL != nil {
		t.Error("NULL photo_url should map to nil")
	}

	row := NonConformityToWire(nc, true)
	if _, ok := row["date_cloture"]; ok {
		t.Error("nil ClosedAt should not be written")
	}

	closed := "2025-04-02"
	nc.ClosedAt = &closed
	row = NonConformityToWire(nc, true)
	if row["date_cloture"] != closed {
		t.Errorf("date_cloture = %v, want %q", row["date_cloture"], closed)
	}
}

func TestCoercionAcrossDriverTypes(t *testing.T) {
	row := gateway.Row{
		"nombre_reports": int64(3),
		"maj_satisfaite": "true",
		"nom_livrable":   []byte("Note de calcul"),
	}
	if got := asInt(row, "nombre_reports"); got != 3 {
		t.Errorf("asInt(int64) = %d, want 3", got)
	}
	if !asBool(row, "maj_satisfaite") {
		t.Error("asBool(\"true\") = false, want true")
	}
	if got := asString(row, "nom_livrable"); got != "Note de calcul" {
		t.Errorf("asString([]byte) = %q", got)
	}
	if got := asInt(row, "absent"); got != 0 {
		t.Errorf("asInt(missing) = %d, want 0", got)
	}
}
