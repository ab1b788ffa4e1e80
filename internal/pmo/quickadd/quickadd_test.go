package quickadd

import (
	"testing"
	"time"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
)

var testNow = time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)

var testContacts = []entity.Contact{
	{ID: "c1", FirstName: "Jean", LastName: "Dupont"},
	{ID: "c2", FirstName: "Jane", LastName: "Doe"},
}

func TestParseFullLine(t *testing.T) {
	a, err := Parse("Soumettre les plans pour le 15/03/2025 @Jane Doe", testContacts, testNow)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.DeliverableName != "Soumettre les plans" {
		t.Errorf("name = %q, want tokens stripped", a.DeliverableName)
	}
	if a.CurrentDueDate != "2025-03-15" {
		t.Errorf("due date = %q, want 2025-03-15", a.CurrentDueDate)
	}
	if a.ExecutionOwnerID != "c2" {
		t.Errorf("execution owner = %q, want mentioned contact c2", a.ExecutionOwnerID)
	}
	if a.ValidationOwnerID != "c1" {
		t.Errorf("validation owner = %q, want first contact c1", a.ValidationOwnerID)
	}
	if a.InitialDueDate != "2025-02-10" {
		t.Errorf("initial due date = %q, want today", a.InitialDueDate)
	}
}

func TestParseBareText(t *testing.T) {
	a, err := Parse("Just a task", testContacts, testNow)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.DeliverableName != "Just a task" {
		t.Errorf("name = %q", a.DeliverableName)
	}
	if a.CurrentDueDate != "2025-02-10" {
		t.Errorf("due date = %q, want today when no date token", a.CurrentDueDate)
	}
	if a.ExecutionOwnerID != "c1" {
		t.Errorf("execution owner = %q, want first contact", a.ExecutionOwnerID)
	}
	if a.TechnicalLot != "GO/ARCHI" || a.VersionIndex != "A" {
		t.Errorf("defaults = %q/%q, want GO/ARCHI and A", a.TechnicalLot, a.VersionIndex)
	}
	if a.KanbanStatus != entity.StatusToSubmit || a.AlertCriticality != entity.CriticalityNormal {
		t.Errorf("status defaults = %q/%q", a.KanbanStatus, a.AlertCriticality)
	}
	if a.ID != "A1739178000000" {
		t.Errorf("provisional id = %q, want A<unix-millis>", a.ID)
	}
}

func TestParseUnknownMentionFallsBack(t *testing.T) {
	a, err := Parse("Relancer MOE @Paul Martin", testContacts, testNow)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.ExecutionOwnerID != "c1" {
		t.Errorf("execution owner = %q, want first-contact fallback", a.ExecutionOwnerID)
	}
	if a.DeliverableName != "Relancer MOE" {
		t.Errorf("name = %q, want mention stripped even when unmatched", a.DeliverableName)
	}
}

func TestParseMentionCaseInsensitive(t *testing.T) {
	a, err := Parse("Vérifier visa @jane doe", testContacts, testNow)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.ExecutionOwnerID != "c2" {
		t.Errorf("execution owner = %q, want case-insensitive match", a.ExecutionOwnerID)
	}
}

func TestParseNoContacts(t *testing.T) {
	a, err := Parse("Tâche isolée", nil, testNow)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.ExecutionOwnerID != "" || a.ValidationOwnerID != "" {
		t.Errorf("owners = %q/%q, want empty", a.ExecutionOwnerID, a.ValidationOwnerID)
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse("   ", testContacts, testNow); err == nil {
		t.Error("blank input should be rejected")
	}
}
