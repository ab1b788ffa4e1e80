package report

import (
	"strings"
	"testing"
	"time"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
)

var momNow = time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC) // mercredi

func momInput() Input {
	return Input{
		ProjectName: "DC Paris Nord",
		Contacts: []entity.Contact{
			{ID: "c1", FirstName: "Jean", LastName: "Dupont"},
		},
		Actions: []entity.Action{
			{ID: "a1", DeliverableName: "Plan EXE", ExecutionOwnerID: "c1",
				CurrentDueDate: "2025-03-01", KanbanStatus: entity.StatusUnderReview},
			{ID: "a2", DeliverableName: "Note CFA", ExecutionOwnerID: "c1",
				CurrentDueDate: "2025-03-01", KanbanStatus: entity.StatusClosed},
			{ID: "a3", DeliverableName: "Schéma SSI", ExecutionOwnerID: "c9",
				CurrentDueDate: "2025-06-01", KanbanStatus: entity.StatusToSubmit},
		},
		History: []entity.HistoryEntry{
			{ActionRef: "a2", EventType: entity.EventStatusChange,
				Detail:   `Statut changé de "Validé sans Obs. (VSO)" à "Clôturé"`,
				LoggedAt: "2025-03-30T08:00:00Z"},
		},
		NonConformities: []entity.NonConformity{
			{ActionRef: "a1", Description: "Fissure dalle", OwnerContactID: "c1", Status: entity.NCOpen},
			{ActionRef: "a1", Description: "Ancienne", OwnerContactID: "c1", Status: entity.NCClosed},
		},
	}
}

func TestBuildMoM(t *testing.T) {
	m := BuildMoM(momInput(), momNow)

	if m.Date != "mercredi 2 avril 2025" {
		t.Errorf("date = %q, want French long form", m.Date)
	}
	if len(m.Overdue) != 1 || m.Overdue[0].Deliverable != "Plan EXE" {
		t.Errorf("overdue = %+v, want only the open late action", m.Overdue)
	}
	if m.Overdue[0].Owner != "Jean Dupont" {
		t.Errorf("owner = %q, want resolved contact name", m.Overdue[0].Owner)
	}
	if len(m.Blocking) != 1 || m.Blocking[0].Description != "Fissure dalle" {
		t.Errorf("blocking = %+v, want only the open NC", m.Blocking)
	}
	if len(m.RecentlyClosed) != 1 || m.RecentlyClosed[0].Deliverable != "Note CFA" {
		t.Errorf("recently closed = %+v, want a2", m.RecentlyClosed)
	}
}

func TestBuildMoMOldClosureExcluded(t *testing.T) {
	in := momInput()
	in.History[0].LoggedAt = "2025-03-01T08:00:00Z" // more than 7 days ago
	m := BuildMoM(in, momNow)
	if len(m.RecentlyClosed) != 0 {
		t.Errorf("recently closed = %+v, want empty for an old closure", m.RecentlyClosed)
	}
}

func TestBuildMoMUnknownContact(t *testing.T) {
	in := momInput()
	in.Actions[2].CurrentDueDate = "2025-03-01" // owner c9 is not in the contact list
	m := BuildMoM(in, momNow)
	found := false
	for _, row := range m.Overdue {
		if row.Owner == "ID:c9" {
			found = true
		}
	}
	if !found {
		t.Errorf("overdue = %+v, want ID:c9 fallback for unknown contact", m.Overdue)
	}
}

func TestMoMRenderEscapesValues(t *testing.T) {
	m := MoM{
		ProjectName: "DC",
		Date:        "mercredi 2 avril 2025",
		Overdue: []OverdueRow{{
			Deliverable: `<script>alert("x")</script>`,
			Owner:       "Jean Dupont",
			DueDate:     "2025-03-01",
			Status:      "En Revue MOE",
		}},
	}
	var b strings.Builder
	if err := m.Render(&b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := b.String()
	if strings.Contains(html, "<script>") {
		t.Error("deliverable name not escaped")
	}
	if !strings.Contains(html, "Compte Rendu de Réunion PMO") {
		t.Error("title missing")
	}
	if !strings.Contains(html, "Aucun point de blocage majeur identifié.") {
		t.Error("empty blocking placeholder missing")
	}
}

func TestDraftReminderByRole(t *testing.T) {
	action := &entity.Action{DeliverableName: "Plan EXE", CurrentDueDate: "2025-03-01"}

	archi := DraftReminder(entity.Contact{FirstName: "Paul", Email: "p@x.fr", CompanyRole: entity.RoleArchitect}, action)
	if !strings.Contains(archi.Body, "Votre validation est cruciale") {
		t.Errorf("architect body = %q", archi.Body)
	}
	if archi.Subject != "[RAPPEL] Action en retard: Plan EXE" {
		t.Errorf("subject = %q", archi.Subject)
	}
	if len(archi.Recipients) != 1 || archi.Recipients[0] != "p@x.fr" {
		t.Errorf("recipients = %v", archi.Recipients)
	}

	firm := DraftReminder(entity.Contact{FirstName: "Luc", CompanyRole: entity.RoleConstructionFirm}, action)
	if !strings.Contains(firm.Body, "impacter le planning général") {
		t.Errorf("construction firm body = %q", firm.Body)
	}

	other := DraftReminder(entity.Contact{FirstName: "Zoé", CompanyRole: entity.RolePMO}, action)
	if !strings.Contains(other.Body, "Merci de faire le nécessaire") {
		t.Errorf("default body = %q", other.Body)
	}

	generic := DraftReminder(entity.Contact{FirstName: "Ana"}, nil)
	if generic.Subject != "[RAPPEL] Suivi de projet Data Center" {
		t.Errorf("generic subject = %q", generic.Subject)
	}
}

func TestExportActionPlan(t *testing.T) {
	f, filename, err := ExportActionPlan("DC Paris Nord",
		[]entity.Action{{DeliverableName: "Plan EXE", ExecutionOwnerID: "c1", KanbanStatus: entity.StatusToSubmit}},
		[]entity.Contact{{ID: "c1", FirstName: "Jean", LastName: "Dupont"}})
	if err != nil {
		t.Fatalf("ExportActionPlan: %v", err)
	}
	if filename != "Plan_Actions_DC_Paris_Nord.xlsx" {
		t.Errorf("filename = %q", filename)
	}
	got, err := f.GetCellValue("Plan d'Actions", "A2")
	if err != nil || got != "Plan EXE" {
		t.Errorf("A2 = %q (%v), want Plan EXE", got, err)
	}
	owner, _ := f.GetCellValue("Plan d'Actions", "D2")
	if owner != "Jean Dupont" {
		t.Errorf("D2 = %q, want resolved name", owner)
	}
}
