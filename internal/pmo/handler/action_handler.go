package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/quickadd"
)

// SaveAction creates or updates an action; an id already present in the
// mirror means update, anything else is an insert on the selected
// project.
// POST /api/v1/actions
func (h *Handlers) SaveAction(c *gin.Context) {
	var a entity.Action
	if err := c.ShouldBindJSON(&a); err != nil {
		BadRequest(c, "corps de requête invalide")
		return
	}
	if a.DeliverableName == "" {
		BadRequest(c, "nom du livrable requis")
		return
	}
	saved, err := h.store.SaveAction(c.Request.Context(), a)
	if err != nil {
		h.log.Error("save action failed", zap.Error(err))
		Internal(c, "échec de l'enregistrement de l'action")
		return
	}
	Success(c, saved)
}

// DeleteAction removes an action. Related history entries and
// non-conformities keep their reference.
// DELETE /api/v1/actions/:id
func (h *Handlers) DeleteAction(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteAction(c.Request.Context(), id); err != nil {
		h.log.Error("delete action failed", zap.String("id", id), zap.Error(err))
		Internal(c, "échec de la suppression de l'action")
		return
	}
	Success(c, nil)
}

type quickAddRequest struct {
	Text string `json:"text" binding:"required"`
}

// QuickAddAction parses a one-line note into a draft action and saves it
// on the selected project. Mentions are matched against the full contact
// list so names resolve regardless of project.
// POST /api/v1/actions/quick-add
func (h *Handlers) QuickAddAction(c *gin.Context) {
	var req quickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "texte requis")
		return
	}
	draft, err := quickadd.Parse(req.Text, h.store.Contacts(), time.Now())
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	saved, err := h.store.SaveAction(c.Request.Context(), draft)
	if err != nil {
		h.log.Error("quick-add save failed", zap.Error(err))
		Internal(c, "échec de l'enregistrement de l'action")
		return
	}
	Created(c, saved)
}
