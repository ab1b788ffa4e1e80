package store

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
)

// ProjectView is the project-scoped subset handed to the view layer.
// Relative order within each slice matches the mirror; no slice is nil.
type ProjectView struct {
	Actions         []entity.Action                 `json:"actions"`
	Contacts        []entity.Contact                `json:"contacts"`
	History         []entity.HistoryEntry           `json:"history"`
	NonConformities []entity.NonConformity          `json:"non_conformities"`
	QualityHSE      []entity.QualityHSEDocument     `json:"quality_hse"`
	Samples         []entity.Sample                 `json:"samples"`
	Commissioning   []entity.CommissioningMilestone `json:"commissioning"`
}

// DeriveView filters the collections down to one project. An empty
// selection yields an all-empty view. The function is pure; it never
// mutates its input.
func DeriveView(selectedID string, c Collections) ProjectView {
	v := ProjectView{
		Actions:         []entity.Action{},
		Contacts:        []entity.Contact{},
		History:         []entity.HistoryEntry{},
		NonConformities: []entity.NonConformity{},
		QualityHSE:      []entity.QualityHSEDocument{},
		Samples:         []entity.Sample{},
		Commissioning:   []entity.CommissioningMilestone{},
	}
	if selectedID == "" {
		return v
	}
	for _, a := range c.Actions {
		if a.ProjectID == selectedID {
			v.Actions = append(v.Actions, a)
		}
	}
	for _, ct := range c.Contacts {
		if ct.ProjectID == selectedID {
			v.Contacts = append(v.Contacts, ct)
		}
	}
	for _, h := range c.History {
		if h.ProjectID == selectedID {
			v.History = append(v.History, h)
		}
	}
	for _, nc := range c.NonConformities {
		if nc.ProjectID == selectedID {
			v.NonConformities = append(v.NonConformities, nc)
		}
	}
	for _, q := range c.QualityHSE {
		if q.ProjectID == selectedID {
			v.QualityHSE = append(v.QualityHSE, q)
		}
	}
	for _, e := range c.Samples {
		if e.ProjectID == selectedID {
			v.Samples = append(v.Samples, e)
		}
	}
	for _, m := range c.Commissioning {
		if m.ProjectID == selectedID {
			v.Commissioning = append(v.Commissioning, m)
		}
	}
	return v
}

// View snapshots the collections under the read lock and derives the
// current project's view from the snapshot.
func (s *Store) View() ProjectView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DeriveView(s.selected, s.c)
}

// SortContactsByName orders contacts with French collation, so accented
// names ("Éric") sort next to their unaccented neighbors instead of after
// "Z".
func SortContactsByName(contacts []entity.Contact) {
	col := collate.New(language.French, collate.IgnoreCase)
	sort.SliceStable(contacts, func(i, j int) bool {
		if c := col.CompareString(contacts[i].LastName, contacts[j].LastName); c != 0 {
			return c < 0
		}
		return col.CompareString(contacts[i].FirstName, contacts[j].FirstName) < 0
	})
}
