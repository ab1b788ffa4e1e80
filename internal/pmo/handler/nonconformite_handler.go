package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
)

// SaveNonConformity creates or updates a non-conformity without touching
// its photo.
// POST /api/v1/non-conformites
func (h *Handlers) SaveNonConformity(c *gin.Context) {
	var nc entity.NonConformity
	if err := c.ShouldBindJSON(&nc); err != nil {
		BadRequest(c, "corps de requête invalide")
		return
	}
	if nc.Description == "" {
		BadRequest(c, "description requise")
		return
	}
	saved, err := h.store.SaveNonConformity(c.Request.Context(), nc)
	if err != nil {
		h.log.Error("save non-conformity failed", zap.Error(err))
		Internal(c, "échec de l'enregistrement de la non-conformité")
		return
	}
	Success(c, saved)
}

// SaveNonConformityWithPhoto takes a multipart form with a "data" field
// holding the non-conformity JSON and a "photo" file. The photo is
// uploaded first; if that fails nothing is saved.
// POST /api/v1/non-conformites/photo
func (h *Handlers) SaveNonConformityWithPhoto(c *gin.Context) {
	data := c.PostForm("data")
	if data == "" {
		BadRequest(c, "champ data requis")
		return
	}
	var nc entity.NonConformity
	if err := json.Unmarshal([]byte(data), &nc); err != nil {
		BadRequest(c, "champ data invalide")
		return
	}
	if nc.Description == "" {
		BadRequest(c, "description requise")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		BadRequest(c, "fichier photo requis")
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		Internal(c, "lecture du fichier impossible")
		return
	}
	defer src.Close()

	saved, err := h.store.SaveNonConformityWithPhoto(c.Request.Context(), nc,
		src, fileHeader.Size, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.log.Error("save non-conformity with photo failed", zap.Error(err))
		Internal(c, "échec de l'enregistrement de la non-conformité")
		return
	}
	Success(c, saved)
}
