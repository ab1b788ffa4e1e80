package store

import (
	"testing"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
)

func sampleCollections() Collections {
	return Collections{
		Projects: []entity.Project{{ID: "p1", Name: "DC Paris Nord"}, {ID: "p2", Name: "DC Marseille"}},
		Actions: []entity.Action{
			{ID: "a1", ProjectID: "p1", DeliverableName: "Plan EXE"},
			{ID: "a2", ProjectID: "p2", DeliverableName: "Note CFA"},
			{ID: "a3", ProjectID: "p1", DeliverableName: "Schéma SSI"},
		},
		Contacts: []entity.Contact{
			{ID: "c1", ProjectID: "p1", FirstName: "Jean", LastName: "Dupont"},
			{ID: "c2", ProjectID: "p2", FirstName: "Marie", LastName: "Leroy"},
		},
		History: []entity.HistoryEntry{
			{ID: "h1", ProjectID: "p1"},
			{ID: "h2", ProjectID: "p2"},
		},
		NonConformities: []entity.NonConformity{{ID: "nc1", ProjectID: "p1"}},
		QualityHSE:      []entity.QualityHSEDocument{{ID: "q1", ProjectID: "p2"}},
		Samples:         []entity.Sample{{ID: "e1", ProjectID: "p1"}},
		Commissioning:   []entity.CommissioningMilestone{{ID: "m1", ProjectID: "p1"}},
	}
}

func TestDeriveViewFiltersBySelection(t *testing.T) {
	v := DeriveView("p1", sampleCollections())

	if len(v.Actions) != 2 || v.Actions[0].ID != "a1" || v.Actions[1].ID != "a3" {
		t.Errorf("actions = %+v, want a1 then a3 in source order", v.Actions)
	}
	if len(v.Contacts) != 1 || v.Contacts[0].ID != "c1" {
		t.Errorf("contacts = %+v, want only c1", v.Contacts)
	}
	if len(v.History) != 1 || v.History[0].ID != "h1" {
		t.Errorf("history = %+v, want only h1", v.History)
	}
	if len(v.NonConformities) != 1 || len(v.Samples) != 1 || len(v.Commissioning) != 1 {
		t.Error("p1 subsets missing")
	}
	if len(v.QualityHSE) != 0 {
		t.Errorf("quality hse = %+v, want empty for p1", v.QualityHSE)
	}
}

func TestDeriveViewNoSelection(t *testing.T) {
	v := DeriveView("", sampleCollections())
	if v.Actions == nil || v.Contacts == nil || v.History == nil {
		t.Fatal("empty view slices must be non-nil")
	}
	if len(v.Actions)+len(v.Contacts)+len(v.History)+len(v.NonConformities)+
		len(v.QualityHSE)+len(v.Samples)+len(v.Commissioning) != 0 {
		t.Errorf("view = %+v, want all subsets empty", v)
	}
}

func TestDeriveViewDoesNotMutateInput(t *testing.T) {
	c := sampleCollections()
	_ = DeriveView("p1", c)
	if len(c.Actions) != 3 || c.Actions[1].ID != "a2" {
		t.Error("input collections mutated")
	}
}

func TestSortContactsByNameFrenchCollation(t *testing.T) {
	contacts := []entity.Contact{
		{FirstName: "Zoé", LastName: "Zimmer"},
		{FirstName: "Éric", LastName: "Émery"},
		{FirstName: "Anne", LastName: "Aubert"},
	}
	SortContactsByName(contacts)
	if contacts[0].LastName != "Aubert" || contacts[1].LastName != "Émery" || contacts[2].LastName != "Zimmer" {
		t.Errorf("order = %v, want Aubert, Émery, Zimmer", contacts)
	}
}
