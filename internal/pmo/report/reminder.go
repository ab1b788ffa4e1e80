package report

import (
	"fmt"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
)

// ReminderDraft is an e-mail draft returned to the caller; nothing is
// sent from here.
type ReminderDraft struct {
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	Recipients []string `json:"recipients"`
}

// DraftReminder builds a follow-up draft for a contact. With an overdue
// action the wording adapts to the contact's company role; without one a
// generic follow-up is produced.
func DraftReminder(contact entity.Contact, action *entity.Action) ReminderDraft {
	if action == nil {
		return ReminderDraft{
			Subject:    "[RAPPEL] Suivi de projet Data Center",
			Body:       fmt.Sprintf("Bonjour %s,\n\nMerci de faire le point sur les actions en attente.\n\nCordialement,", contact.FirstName),
			Recipients: []string{contact.Email},
		}
	}

	body := fmt.Sprintf("Bonjour %s,\n\nJe me permets de vous relancer concernant le livrable %q.\nLa date limite était le %s et nous sommes en attente de sa soumission ou mise à jour.\n\n",
		contact.FirstName, action.DeliverableName, action.CurrentDueDate)

	switch contact.CompanyRole {
	case entity.RoleArchitect:
		body += "Votre validation est cruciale pour l'avancement du projet. Pouvez-vous nous donner une visibilité ?\n\n"
	case entity.RoleConstructionFirm, entity.RoleTechnicalFirm:
		body += "Le non-respect de cette échéance risque d'impacter le planning général. Merci de nous faire un retour sur l'état d'avancement au plus vite.\n\n"
	default:
		body += "Merci de faire le nécessaire pour clôturer ce point.\n\n"
	}
	body += "Cordialement,\nLe PMO"

	return ReminderDraft{
		Subject:    fmt.Sprintf("[RAPPEL] Action en retard: %s", action.DeliverableName),
		Body:       body,
		Recipients: []string{contact.Email},
	}
}
