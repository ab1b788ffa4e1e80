// Package handler exposes the dashboard API over gin.
package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/sse"
	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/store"
)

// Handlers bundles the API handlers around the shared store.
type Handlers struct {
	store *store.Store
	hub   *sse.Hub
	log   *zap.Logger
}

func New(st *store.Store, hub *sse.Hub, log *zap.Logger) *Handlers {
	return &Handlers{store: st, hub: hub, log: log}
}

// RegisterRoutes mounts the API under /api/v1.
func (h *Handlers) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/v1")
	{
		api.GET("/state", h.GetState)
		api.PUT("/state/selected-project", h.SelectProject)

		api.POST("/projects", h.SaveProject)
		api.DELETE("/projects/:id", h.DeleteProject)

		api.POST("/actions", h.SaveAction)
		api.POST("/actions/quick-add", h.QuickAddAction)
		api.DELETE("/actions/:id", h.DeleteAction)

		api.POST("/contacts", h.SaveContact)
		api.DELETE("/contacts/:id", h.DeleteContact)

		api.POST("/non-conformites", h.SaveNonConformity)
		api.POST("/non-conformites/photo", h.SaveNonConformityWithPhoto)

		api.POST("/qualite-hse", h.SaveQualityHSE)
		api.POST("/echantillons", h.SaveSample)
		api.POST("/commissioning", h.SaveCommissioning)

		api.POST("/historique", h.AppendHistory)

		api.GET("/reports/mom", h.GenerateMoM)
		api.GET("/reports/actions.xlsx", h.ExportActionPlan)
		api.POST("/reports/reminder", h.DraftReminder)

		api.GET("/events", h.StreamEvents)
	}
}

// Response is the envelope every JSON endpoint returns.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error envelope; the HTTP status is code/100.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest writes a 400 envelope.
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// NotFound writes a 404 envelope.
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// Internal writes a 500 envelope.
func Internal(c *gin.Context, message string) {
	Error(c, 50000, message)
}
