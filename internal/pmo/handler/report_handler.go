package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/report"
)

func (h *Handlers) selectedProjectName() string {
	selected := h.store.SelectedProjectID()
	for _, p := range h.store.Projects() {
		if p.ID == selected {
			return p.Name
		}
	}
	return "Aucun Projet"
}

// GenerateMoM renders the meeting minutes for the selected project.
// GET /api/v1/reports/mom
func (h *Handlers) GenerateMoM(c *gin.Context) {
	v := h.store.View()
	m := report.BuildMoM(report.Input{
		ProjectName:     h.selectedProjectName(),
		Actions:         v.Actions,
		Contacts:        h.store.Contacts(),
		History:         v.History,
		NonConformities: v.NonConformities,
	}, time.Now())

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := m.Render(c.Writer); err != nil {
		h.log.Error("render mom failed", zap.Error(err))
	}
}

// ExportActionPlan streams the selected project's action plan as xlsx.
// GET /api/v1/reports/actions.xlsx
func (h *Handlers) ExportActionPlan(c *gin.Context) {
	v := h.store.View()
	f, filename, err := report.ExportActionPlan(h.selectedProjectName(), v.Actions, h.store.Contacts())
	if err != nil {
		h.log.Error("export action plan failed", zap.Error(err))
		Internal(c, "échec de l'export Excel")
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")
	if err := f.Write(c.Writer); err != nil {
		h.log.Error("write xlsx failed", zap.Error(err))
	}
}

type reminderRequest struct {
	ContactID string `json:"contact_id" binding:"required"`
	ActionID  string `json:"action_id"`
}

// DraftReminder builds a reminder e-mail draft for a contact, optionally
// about a specific action.
// POST /api/v1/reports/reminder
func (h *Handlers) DraftReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "contact_id requis")
		return
	}

	var contact *entity.Contact
	for _, ct := range h.store.Contacts() {
		if ct.ID == req.ContactID {
			found := ct
			contact = &found
			break
		}
	}
	if contact == nil {
		NotFound(c, "contact inconnu")
		return
	}

	var action *entity.Action
	if req.ActionID != "" {
		for _, a := range h.store.View().Actions {
			if a.ID == req.ActionID {
				found := a
				action = &found
				break
			}
		}
		if action == nil {
			NotFound(c, "action inconnue")
			return
		}
	}

	Success(c, report.DraftReminder(*contact, action))
}
