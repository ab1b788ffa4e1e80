package handler

import (
	"github.com/gin-gonic/gin"
)

// GetState returns everything the dashboard needs to render: the project
// list, the selection, the project-scoped view and the full contact list.
// GET /api/v1/state
func (h *Handlers) GetState(c *gin.Context) {
	Success(c, gin.H{
		"projects":            h.store.Projects(),
		"selected_project_id": h.store.SelectedProjectID(),
		"view":                h.store.View(),
		"contacts":            h.store.Contacts(),
	})
}

type selectProjectRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
}

// SelectProject switches the selected project.
// PUT /api/v1/state/selected-project
func (h *Handlers) SelectProject(c *gin.Context) {
	var req selectProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "project_id requis")
		return
	}
	if err := h.store.SelectProject(req.ProjectID); err != nil {
		NotFound(c, err.Error())
		return
	}
	Success(c, gin.H{
		"selected_project_id": h.store.SelectedProjectID(),
		"view":                h.store.View(),
	})
}
