package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
)

// SaveContact creates or updates a contact.
// POST /api/v1/contacts
func (h *Handlers) SaveContact(c *gin.Context) {
	var contact entity.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		BadRequest(c, "corps de requête invalide")
		return
	}
	if contact.FirstName == "" && contact.LastName == "" {
		BadRequest(c, "nom du contact requis")
		return
	}
	saved, err := h.store.SaveContact(c.Request.Context(), contact)
	if err != nil {
		h.log.Error("save contact failed", zap.Error(err))
		Internal(c, "échec de l'enregistrement du contact")
		return
	}
	Success(c, saved)
}

// DeleteContact removes a contact.
// DELETE /api/v1/contacts/:id
func (h *Handlers) DeleteContact(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteContact(c.Request.Context(), id); err != nil {
		h.log.Error("delete contact failed", zap.String("id", id), zap.Error(err))
		Internal(c, "échec de la suppression du contact")
		return
	}
	Success(c, nil)
}
