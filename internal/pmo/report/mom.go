// Package report builds the meeting minutes (compte rendu) document, the
// reminder e-mail drafts and the Excel action plan export.
package report

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
)

// MoM is the structured meeting-minutes model. The HTTP layer renders it
// to HTML; building and rendering stay separate so the content is
// testable without scraping markup.
type MoM struct {
	ProjectName    string
	Date           string // French long form, e.g. "mercredi 2 avril 2025"
	Overdue        []OverdueRow
	Blocking       []BlockingRow
	RecentlyClosed []ClosedItem
}

// OverdueRow is an action past its due date and not yet closed.
type OverdueRow struct {
	Deliverable string
	Owner       string
	DueDate     string
	Status      string
}

// BlockingRow is an open non-conformity.
type BlockingRow struct {
	ActionName  string
	Description string
	Owner       string
}

// ClosedItem is an action closed within the last seven days.
type ClosedItem struct {
	Deliverable string
	Owner       string
}

// Input carries the project-scoped slices the minutes are built from.
type Input struct {
	ProjectName     string
	Actions         []entity.Action
	Contacts        []entity.Contact
	History         []entity.HistoryEntry
	NonConformities []entity.NonConformity
}

// BuildMoM assembles the minutes: overdue actions, open non-conformities
// as blocking points, and actions whose latest status change to Clôturé
// happened within the last seven days.
func BuildMoM(in Input, now time.Time) MoM {
	names := contactNames(in.Contacts)
	resolve := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return "ID:" + id
	}

	m := MoM{
		ProjectName: in.ProjectName,
		Date:        FrenchLongDate(now),
	}

	today := now.Truncate(24 * time.Hour)
	for _, a := range in.Actions {
		due, err := time.Parse("2006-01-02", a.CurrentDueDate)
		if err != nil {
			continue
		}
		if due.Before(today) && a.KanbanStatus != entity.StatusClosed {
			m.Overdue = append(m.Overdue, OverdueRow{
				Deliverable: a.DeliverableName,
				Owner:       resolve(a.ExecutionOwnerID),
				DueDate:     a.CurrentDueDate,
				Status:      string(a.KanbanStatus),
			})
		}
	}

	actionName := func(id string) string {
		for _, a := range in.Actions {
			if a.ID == id {
				return a.DeliverableName
			}
		}
		return "N/A"
	}
	for _, nc := range in.NonConformities {
		if nc.Status != entity.NCOpen {
			continue
		}
		m.Blocking = append(m.Blocking, BlockingRow{
			ActionName:  actionName(nc.ActionRef),
			Description: nc.Description,
			Owner:       resolve(nc.OwnerContactID),
		})
	}

	sevenDaysAgo := now.AddDate(0, 0, -7)
	for _, a := range in.Actions {
		closedAt, ok := latestClosure(in.History, a.ID)
		if ok && closedAt.After(sevenDaysAgo) {
			m.RecentlyClosed = append(m.RecentlyClosed, ClosedItem{
				Deliverable: a.DeliverableName,
				Owner:       resolve(a.ExecutionOwnerID),
			})
		}
	}
	return m
}

// latestClosure returns the time of the most recent status-change entry
// that moved the action into Clôturé.
func latestClosure(history []entity.HistoryEntry, actionID string) (time.Time, bool) {
	var entries []entity.HistoryEntry
	for _, h := range history {
		if h.ActionRef == actionID &&
			h.EventType == entity.EventStatusChange &&
			strings.Contains(h.Detail, string(entity.StatusClosed)) {
			entries = append(entries, h)
		}
	}
	if len(entries) == 0 {
		return time.Time{}, false
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].LoggedAt > entries[j].LoggedAt })
	t, err := time.Parse(time.RFC3339, entries[0].LoggedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func contactNames(contacts []entity.Contact) map[string]string {
	names := make(map[string]string, len(contacts))
	for _, c := range contacts {
		names[c.ID] = c.FullName()
	}
	return names
}

var frenchDays = []string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

var frenchMonths = []string{"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre"}

// FrenchLongDate formats a date as "mercredi 2 avril 2025".
func FrenchLongDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d",
		frenchDays[t.Weekday()], t.Day(), frenchMonths[t.Month()-1], t.Year())
}

var momTemplate = template.Must(template.New("mom").Parse(`<div class="mom">
  <h1>Compte Rendu de Réunion PMO</h1>
  <p><strong>Projet :</strong> {{.ProjectName}}</p>
  <p><strong>Date :</strong> {{.Date}}</p>

  <h2>1. Actions en Retard</h2>
  <table>
    <thead><tr><th>Livrable</th><th>Responsable</th><th>Date Limite</th><th>Statut</th></tr></thead>
    <tbody>
    {{- if .Overdue}}
    {{- range .Overdue}}
      <tr><td>{{.Deliverable}}</td><td>{{.Owner}}</td><td>{{.DueDate}}</td><td>{{.Status}}</td></tr>
    {{- end}}
    {{- else}}
      <tr><td colspan="4">Aucune action en retard critique.</td></tr>
    {{- end}}
    </tbody>
  </table>

  <h2>2. Points de Blocage / Non-Conformités</h2>
  <table>
    <thead><tr><th>Action Associée</th><th>Description</th><th>Responsable</th></tr></thead>
    <tbody>
    {{- if .Blocking}}
    {{- range .Blocking}}
      <tr><td>{{.ActionName}}</td><td>{{.Description}}</td><td>{{.Owner}}</td></tr>
    {{- end}}
    {{- else}}
      <tr><td colspan="3">Aucun point de blocage majeur identifié.</td></tr>
    {{- end}}
    </tbody>
  </table>

  <h2>3. Actions Clôturées Récemment</h2>
  {{- if .RecentlyClosed}}
  <ul>
  {{- range .RecentlyClosed}}
    <li>Livrable <strong>{{.Deliverable}}</strong> (Responsable : {{.Owner}}) a été clôturé.</li>
  {{- end}}
  </ul>
  {{- else}}
  <p>Aucune action clôturée récemment.</p>
  {{- end}}

  <h2>4. Prochaines Étapes et Décisions</h2>
  <p>[À COMPLÉTER PAR LE PMO : lister ici les décisions clés et les prochaines étapes.]</p>

  <p class="footer">La prochaine réunion de suivi est prévue pour la semaine prochaine.</p>
</div>
`))

// Render writes the minutes as HTML. Values are escaped by the template
// engine, so user-entered deliverable names cannot inject markup.
func (m MoM) Render(w io.Writer) error {
	if err := momTemplate.Execute(w, m); err != nil {
		return fmt.Errorf("render mom: %w", err)
	}
	return nil
}
