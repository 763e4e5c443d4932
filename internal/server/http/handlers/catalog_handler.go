package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/server/http/dto"
)

// Catalog handles GET /api/catalog with the status and equipment catalogs.
func Catalog(c *gin.Context) {
	statuses := model.Statuses()
	resp := dto.CatalogResponse{
		Statuses:  make([]dto.StatusResponse, 0, len(statuses)),
		Equipment: make([]dto.EquipmentResponse, 0),
	}
	for _, s := range statuses {
		resp.Statuses = append(resp.Statuses, toStatusResponse(s.ID))
	}
	for _, e := range model.EquipmentCatalog() {
		resp.Equipment = append(resp.Equipment, dto.EquipmentResponse{Code: string(e.Code), Label: e.Label})
	}
	c.JSON(http.StatusOK, resp)
}
