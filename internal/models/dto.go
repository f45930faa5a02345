package models

import "time"

// ==================== Box DTOs ====================

// CreateBoxRequest is the request for POST /api/v1/boxes. The caller
// becomes the owning operator.
type CreateBoxRequest struct {
	Name      string  `json:"name" binding:"required"`
	Capacity  int     `json:"capacity" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// BoxResponse is the API view of a distribution box
type BoxResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Capacity      int     `json:"capacity"`
	OccupiedCount int     `json:"occupied_count"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Status        string  `json:"status"`
	OwnerID       string  `json:"owner_id"`
	CreatedAt     string  `json:"created_at"`
}

// BoxDetailResponse adds the box's ports, ordered by port number
type BoxDetailResponse struct {
	BoxResponse
	Ports []PortResponse `json:"ports"`
}

// ==================== Port DTOs ====================

// PortResponse is the API view of a port
type PortResponse struct {
	ID          string  `json:"id"`
	BoxID       string  `json:"box_id"`
	Number      int     `json:"number"`
	Status      string  `json:"status"`
	Price       float64 `json:"price"`
	TenantID    *string `json:"tenant_id,omitempty"`
	ServicePlan *string `json:"service_plan,omitempty"`
	UpdatedAt   string  `json:"updated_at"`
}

// SetPortPriceRequest is the request for PUT /api/v1/ports/:id/price.
// Price is a pointer so that an explicit 0 is distinguishable from a
// missing field.
type SetPortPriceRequest struct {
	Price *float64 `json:"price" binding:"required"`
}

// Maintenance action constants
const (
	MaintenanceEnter = "enter"
	MaintenanceExit  = "exit"
)

// PortMaintenanceRequest is the request for PUT /api/v1/ports/:id/maintenance
type PortMaintenanceRequest struct {
	Action string `json:"action" binding:"required,oneof=enter exit"`
}

// ==================== Order DTOs ====================

// CreateOrderRequest is the request for POST /api/v1/orders. The caller
// becomes the requester.
type CreateOrderRequest struct {
	PortID          string  `json:"port_id" binding:"required"`
	Price           float64 `json:"price"`
	InstallationFee float64 `json:"installation_fee"`
}

// OrderDecisionRequest is the owner's approve/reject decision
type OrderDecisionRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// ScheduleInstallationRequest sets the installation date
type ScheduleInstallationRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// AddNoteRequest attaches a human note to an order
type AddNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// Order list direction constants
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
	DirectionAll      = "all"
)

// OrderFilter narrows order listings. Direction is resolved against
// OperatorID: incoming means the operator owns the target box, outgoing
// means the operator is the requester.
type OrderFilter struct {
	Status     string
	Direction  string
	PortID     string
	BoxID      string
	OperatorID string
}

// OrderResponse is the API view of a rental order, including its full
// note history oldest-first.
type OrderResponse struct {
	ID              string         `json:"id"`
	PortID          string         `json:"port_id"`
	BoxID           string         `json:"box_id"`
	RequesterID     string         `json:"requester_id"`
	OwnerID         string         `json:"owner_id"`
	Status          string         `json:"status"`
	Price           float64        `json:"price"`
	InstallationFee float64        `json:"installation_fee"`
	RequesterSigned bool           `json:"requester_signed"`
	OwnerSigned     bool           `json:"owner_signed"`
	ScheduledAt     *string        `json:"scheduled_at,omitempty"`
	CompletedAt     *string        `json:"completed_at,omitempty"`
	CreatedAt       string         `json:"created_at"`
	Notes           []NoteResponse `json:"notes"`
}

// NoteResponse is the API view of an order note
type NoteResponse struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	Content   string `json:"content"`
	IsSystem  bool   `json:"is_system"`
	CreatedAt string `json:"created_at"`
}

// ==================== Conversions ====================

// NewBoxResponse converts a box entity to its API view
func NewBoxResponse(b *DistributionBox) BoxResponse {
	return BoxResponse{
		ID:            b.ID,
		Name:          b.Name,
		Capacity:      b.Capacity,
		OccupiedCount: b.OccupiedCount,
		Latitude:      b.Latitude,
		Longitude:     b.Longitude,
		Status:        b.Status,
		OwnerID:       b.OwnerID,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}

// NewPortResponse converts a port entity to its API view
func NewPortResponse(p *Port) PortResponse {
	return PortResponse{
		ID:          p.ID,
		BoxID:       p.BoxID,
		Number:      p.Number,
		Status:      p.Status,
		Price:       p.Price,
		TenantID:    p.TenantID,
		ServicePlan: p.ServicePlan,
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

// NewOrderResponse converts an order entity (with notes loaded) to its
// API view
func NewOrderResponse(o *RentalOrder) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		PortID:          o.PortID,
		BoxID:           o.BoxID,
		RequesterID:     o.RequesterID,
		OwnerID:         o.OwnerID,
		Status:          o.Status,
		Price:           o.Price,
		InstallationFee: o.InstallationFee,
		RequesterSigned: o.RequesterSigned,
		OwnerSigned:     o.OwnerSigned,
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
		Notes:           make([]NoteResponse, 0, len(o.Notes)),
	}
	if o.ScheduledAt != nil {
		s := o.ScheduledAt.Format(time.RFC3339)
		resp.ScheduledAt = &s
	}
	if o.CompletedAt != nil {
		s := o.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &s
	}
	for _, n := range o.Notes {
		resp.Notes = append(resp.Notes, NoteResponse{
			ID:        n.ID,
			AuthorID:  n.AuthorID,
			Content:   n.Content,
			IsSystem:  n.IsSystem,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}
