package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/domain/workflow"
	"github.com/polkiloo/ecocoleta/internal/server/http/dto"
)

// QueueHandler serves work queues and the order search.
type QueueHandler struct {
	facade QueueFacade
}

// NewQueueHandler constructs QueueHandler.
func NewQueueHandler(facade QueueFacade) *QueueHandler {
	return &QueueHandler{facade: facade}
}

// Default handles GET /api/queue, the caller's role default queue.
func (h *QueueHandler) Default(c *gin.Context) {
	h.resolve(c, "")
}

// Named handles GET /api/queues/:name.
func (h *QueueHandler) Named(c *gin.Context) {
	h.resolve(c, model.QueueName(c.Param("name")))
}

func (h *QueueHandler) resolve(c *gin.Context, queue model.QueueName) {
	actor := CurrentActor(c)
	req := model.QueueRequest{Role: actor.Role, Queue: queue}
	if actor.Role == model.RoleCitizen {
		req.RequesterID = actor.ID
	}

	orders, err := h.facade.Queue(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderList(orders))
}

// Lookup handles GET /api/lookup?q=.
func (h *QueueHandler) Lookup(c *gin.Context) {
	actor := CurrentActor(c)
	result, err := h.facade.Lookup(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := dto.LookupResponse{Mode: string(result.Mode), Orders: make([]dto.OrderDetailResponse, 0, len(result.Orders))}
	for _, v := range result.Orders {
		resp.Orders = append(resp.Orders, toOrderDetail(v, workflow.Targets(v.Status, actor.Role)))
	}
	c.JSON(http.StatusOK, resp)
}
