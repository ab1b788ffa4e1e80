package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
)

// SaveProject creates or updates a project; an id already present in the
// mirror means update.
// POST /api/v1/projects
func (h *Handlers) SaveProject(c *gin.Context) {
	var p entity.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		BadRequest(c, "corps de requête invalide")
		return
	}
	if p.Name == "" {
		BadRequest(c, "nom du projet requis")
		return
	}
	saved, err := h.store.SaveProject(c.Request.Context(), p)
	if err != nil {
		h.log.Error("save project failed", zap.Error(err))
		Internal(c, "échec de l'enregistrement du projet")
		return
	}
	Success(c, saved)
}

// DeleteProject removes a project and everything scoped to it.
// DELETE /api/v1/projects/:id
func (h *Handlers) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteProject(c.Request.Context(), id); err != nil {
		h.log.Error("delete project failed", zap.String("id", id), zap.Error(err))
		Internal(c, "échec de la suppression du projet")
		return
	}
	Success(c, gin.H{
		"selected_project_id": h.store.SelectedProjectID(),
	})
}
