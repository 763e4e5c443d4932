package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/server/http/dto"
)

// StaffHandler lets administrators manage agents and drivers.
type StaffHandler struct {
	facade StaffFacade
}

// NewStaffHandler constructs StaffHandler.
func NewStaffHandler(facade StaffFacade) *StaffHandler {
	return &StaffHandler{facade: facade}
}

// Create handles POST /api/staff.
func (h *StaffHandler) Create(c *gin.Context) {
	var req dto.StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	usr, err := h.facade.CreateStaff(c.Request.Context(), CurrentActor(c), model.StaffAccount{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toStaffResponse(*usr))
}

// List handles GET /api/staff.
func (h *StaffHandler) List(c *gin.Context) {
	users, err := h.facade.Staff(c.Request.Context(), CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.StaffResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toStaffResponse(u))
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /api/staff/:id.
func (h *StaffHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid staff id")
		return
	}
	if err := h.facade.DeleteStaff(c.Request.Context(), CurrentActor(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
