package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gabriel-rosch/fibershare-sub001/internal/models"
	"github.com/gabriel-rosch/fibershare-sub001/internal/service"
)

type Handler struct {
	boxService   *service.BoxService
	portService  *service.PortService
	orderService *service.OrderService
}

func NewHandler(boxService *service.BoxService, portService *service.PortService, orderService *service.OrderService) *Handler {
	return &Handler{
		boxService:   boxService,
		portService:  portService,
		orderService: orderService,
	}
}

// actorFrom extracts the authenticated operator from the gin context
func actorFrom(c *gin.Context) (models.Actor, bool) {
	operatorID := c.GetString("operatorID")
	if operatorID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "operator not authenticated"})
		return models.Actor{}, false
	}
	return models.Actor{ID: operatorID, Role: c.GetString("operatorRole")}, true
}

// ==================== Box Handlers ====================

// CreateBox creates a box owned by the caller and provisions its ports
func (h *Handler) CreateBox(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req models.CreateBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	box, err := h.boxService.CreateBox(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewBoxResponse(box))
}

// ListBoxes returns all boxes
func (h *Handler) ListBoxes(c *gin.Context) {
	boxes, err := h.boxService.ListBoxes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]models.BoxResponse, 0, len(boxes))
	for _, b := range boxes {
		resp = append(resp, models.NewBoxResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{"boxes": resp})
}

// GetBox returns a box with its ports ordered by port number
func (h *Handler) GetBox(c *gin.Context) {
	box, ports, err := h.boxService.GetBox(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.BoxDetailResponse{
		BoxResponse: models.NewBoxResponse(box),
		Ports:       make([]models.PortResponse, 0, len(ports)),
	}
	for _, p := range ports {
		resp.Ports = append(resp.Ports, models.NewPortResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// ListPorts returns a box's ports ordered by port number
func (h *Handler) ListPorts(c *gin.Context) {
	ports, err := h.boxService.ListPorts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]models.PortResponse, 0, len(ports))
	for _, p := range ports {
		resp = append(resp, models.NewPortResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"ports": resp})
}

// ==================== Port Handlers ====================

// GetPort returns a single port
func (h *Handler) GetPort(c *gin.Context) {
	port, err := h.portService.GetPort(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewPortResponse(port))
}

// SetPortPrice sets the monthly price of a port (owner only)
func (h *Handler) SetPortPrice(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req models.SetPortPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	port, err := h.portService.SetPrice(c.Request.Context(), actor, c.Param("id"), *req.Price)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewPortResponse(port))
}

// SetPortMaintenance moves a port into or out of maintenance (owner only)
func (h *Handler) SetPortMaintenance(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req models.PortMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	port, err := h.portService.SetMaintenance(c.Request.Context(), actor, c.Param("id"), req.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewPortResponse(port))
}

// ==================== Order Handlers ====================

// CreateOrder submits a rental request; the caller becomes the requester
func (h *Handler) CreateOrder(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewOrderResponse(order))
}

// DecideOrder records the owner's approve/reject decision
func (h *Handler) DecideOrder(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req models.OrderDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderService.Decide(c.Request.Context(), actor, c.Param("id"), *req.Approve)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// SignContract sets the caller's signature flag
func (h *Handler) SignContract(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	order, err := h.orderService.Sign(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// ScheduleInstallation sets the installation date (owner only)
func (h *Handler) ScheduleInstallation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req models.ScheduleInstallationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderService.Schedule(c.Request.Context(), actor, c.Param("id"), req.ScheduledAt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// AdvanceInstallation moves the installation forward one step
func (h *Handler) AdvanceInstallation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	order, err := h.orderService.Advance(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// CancelOrder terminates a non-terminal order
func (h *Handler) CancelOrder(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// AddOrderNote appends a human note to an order
func (h *Handler) AddOrderNote(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req models.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.orderService.AddNote(c.Request.Context(), actor, c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NoteResponse{
		ID:        note.ID,
		AuthorID:  note.AuthorID,
		Content:   note.Content,
		IsSystem:  note.IsSystem,
		CreatedAt: note.CreatedAt.Format(time.RFC3339),
	})
}

// GetOrder returns an order with its full note history
func (h *Handler) GetOrder(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// ListOrders queries the caller's orders with optional filters
func (h *Handler) ListOrders(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	filter := models.OrderFilter{
		Status:    c.Query("status"),
		Direction: c.Query("direction"),
		PortID:    c.Query("port_id"),
		BoxID:     c.Query("box_id"),
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]models.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, models.NewOrderResponse(o))
	}
	c.JSON(http.StatusOK, gin.H{"orders": resp})
}

// ==================== Internal Handlers ====================

// GetOrderInternal returns an order with notes for sibling services
func (h *Handler) GetOrderInternal(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(),
		models.Actor{ID: models.SystemAuthor, Role: models.RoleAdmin}, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": models.NewOrderResponse(order)})
}
