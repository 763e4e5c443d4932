package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/domain/workflow"
	"github.com/polkiloo/ecocoleta/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentActor(c), model.OrderDraft{
		ServiceType:   model.ServiceType(req.ServiceType),
		EquipmentType: model.EquipmentType(req.EquipmentType),
		Description:   req.Description,
		PhotoURL:      req.PhotoURL,
		Message:       req.Message,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Get handles GET /api/orders/:number.
func (h *OrderHandler) Get(c *gin.Context) {
	number, ok := orderNumber(c)
	if !ok {
		return
	}
	actor := CurrentActor(c)

	view, err := h.facade.Order(c.Request.Context(), actor, number)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderDetail(*view, workflow.Targets(view.Status, actor.Role)))
}

// History handles GET /api/orders/:number/history.
func (h *OrderHandler) History(c *gin.Context) {
	number, ok := orderNumber(c)
	if !ok {
		return
	}

	records, err := h.facade.History(c.Request.Context(), CurrentActor(c), number)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHistory(records))
}

// Transition handles POST /api/orders/:number/transitions.
func (h *OrderHandler) Transition(c *gin.Context) {
	number, ok := orderNumber(c)
	if !ok {
		return
	}
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	target := parseTarget(req.Status)
	payload := workflow.Payload{Annotation: req.Annotation}
	if req.ScheduledDate != "" {
		date, err := time.Parse(dateLayout, req.ScheduledDate)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "scheduled_date must be YYYY-MM-DD")
			return
		}
		payload.ScheduledDate = &date
	}
	if req.Shift != "" {
		shift := model.Shift(req.Shift)
		payload.Shift = &shift
	}

	order, err := h.facade.Transition(c.Request.Context(), CurrentActor(c), number, target, payload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// parseTarget accepts a numeric status id, a code or a label. Anything
// unknown becomes an id outside the catalog so the engine rejects it only
// after the order itself was checked.
func parseTarget(raw string) model.StatusID {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(raw, 10, 16); err == nil {
		return model.StatusID(n)
	}
	id, err := model.ResolveByLabel(raw)
	if err != nil {
		return 0
	}
	return id
}
