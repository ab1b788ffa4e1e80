package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
)

// SaveQualityHSE creates or updates a quality/HSE document.
// POST /api/v1/qualite-hse
func (h *Handlers) SaveQualityHSE(c *gin.Context) {
	var q entity.QualityHSEDocument
	if err := c.ShouldBindJSON(&q); err != nil {
		BadRequest(c, "corps de requête invalide")
		return
	}
	saved, err := h.store.SaveQualityHSE(c.Request.Context(), q)
	if err != nil {
		h.log.Error("save qualite_hse failed", zap.Error(err))
		Internal(c, "échec de l'enregistrement du document qualité/HSE")
		return
	}
	Success(c, saved)
}

// SaveSample creates or updates a material sample.
// POST /api/v1/echantillons
func (h *Handlers) SaveSample(c *gin.Context) {
	var e entity.Sample
	if err := c.ShouldBindJSON(&e); err != nil {
		BadRequest(c, "corps de requête invalide")
		return
	}
	saved, err := h.store.SaveSample(c.Request.Context(), e)
	if err != nil {
		h.log.Error("save echantillon failed", zap.Error(err))
		Internal(c, "échec de l'enregistrement de l'échantillon")
		return
	}
	Success(c, saved)
}

// SaveCommissioning creates or updates a commissioning milestone.
// POST /api/v1/commissioning
func (h *Handlers) SaveCommissioning(c *gin.Context) {
	var m entity.CommissioningMilestone
	if err := c.ShouldBindJSON(&m); err != nil {
		BadRequest(c, "corps de requête invalide")
		return
	}
	saved, err := h.store.SaveCommissioning(c.Request.Context(), m)
	if err != nil {
		h.log.Error("save commissioning failed", zap.Error(err))
		Internal(c, "échec de l'enregistrement du jalon de commissioning")
		return
	}
	Success(c, saved)
}

type appendHistoryRequest struct {
	ActionRef string `json:"action_ref" binding:"required"`
	EventType string `json:"event_type" binding:"required"`
	Detail    string `json:"detail"`
}

// AppendHistory adds an audit entry on an action.
// POST /api/v1/historique
func (h *Handlers) AppendHistory(c *gin.Context) {
	var req appendHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "action_ref et event_type requis")
		return
	}
	saved, err := h.store.AppendHistory(c.Request.Context(), req.ActionRef,
		entity.EventType(req.EventType), req.Detail)
	if err != nil {
		h.log.Error("append history failed", zap.Error(err))
		Internal(c, "échec de l'ajout à l'historique")
		return
	}
	Created(c, saved)
}
