// Package quickadd turns a one-line meeting note into a draft action.
// Supported tokens: a literal due date "pour le JJ/MM/AAAA" and an
// assignee mention "@Prénom Nom"; whatever remains is the deliverable
// name.
package quickadd

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
)

var (
	dateRe    = regexp.MustCompile(`pour le (\d{2}/\d{2}/\d{4})`)
	mentionRe = regexp.MustCompile(`@([\w\s]+)`)
)

// ErrEmpty is returned for blank input.
var ErrEmpty = errors.New("texte vide")

// Parse builds a draft action from a quick-add line. The date token is
// extracted first, then the mention, and the stripped remainder becomes
// the name. Mentions match "Prénom Nom" case-insensitively against the
// contact list; an unmatched mention falls back to the first contact,
// like every other defaulted field. The id is provisional (A<millis>);
// the store replaces it on insert.
func Parse(text string, contacts []entity.Contact, now time.Time) (entity.Action, error) {
	name := strings.TrimSpace(text)
	if name == "" {
		return entity.Action{}, ErrEmpty
	}

	dueDate := now
	if m := dateRe.FindStringSubmatch(name); m != nil {
		name = strings.TrimSpace(strings.Replace(name, m[0], "", 1))
		if parsed, err := time.Parse("02/01/2006", m[1]); err == nil {
			dueDate = parsed
		}
	}

	executionID := ""
	if m := mentionRe.FindStringSubmatch(name); m != nil {
		name = strings.TrimSpace(strings.Replace(name, m[0], "", 1))
		wanted := strings.ToLower(strings.TrimSpace(m[1]))
		for _, c := range contacts {
			if strings.ToLower(c.FullName()) == wanted {
				executionID = c.ID
				break
			}
		}
	}

	firstContact := ""
	if len(contacts) > 0 {
		firstContact = contacts[0].ID
	}
	if executionID == "" {
		executionID = firstContact
	}

	return entity.Action{
		ID:                fmt.Sprintf("A%d", now.UnixMilli()),
		DeliverableName:   name,
		TechnicalLot:      "GO/ARCHI",
		VersionIndex:      "A",
		ExecutionOwnerID:  executionID,
		ValidationOwnerID: firstContact,
		InitialDueDate:    now.Format("2006-01-02"),
		CurrentDueDate:    dueDate.Format("2006-01-02"),
		KanbanStatus:      entity.StatusToSubmit,
		AlertCriticality:  entity.CriticalityNormal,
	}, nil
}
