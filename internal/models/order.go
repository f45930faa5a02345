package models

import "time"

// Order status constants
const (
	OrderStatusPendingApproval   = "pending_approval"
	OrderStatusContractGenerated = "contract_generated"
	OrderStatusContractSigned    = "contract_signed"
	OrderStatusInstallScheduled  = "installation_scheduled"
	OrderStatusInstallInProgress = "installation_in_progress"
	OrderStatusCompleted         = "completed"
	OrderStatusRejected          = "rejected"
	OrderStatusCancelled         = "cancelled"
)

// orderTransitions is the rental-order state machine. Every non-terminal
// state may be cancelled by either party; the rest of the edges form a
// single forward path through approval, contracting and installation.
var orderTransitions = map[string][]string{
	OrderStatusPendingApproval:   {OrderStatusContractGenerated, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusContractGenerated: {OrderStatusContractSigned, OrderStatusCancelled},
	OrderStatusContractSigned:    {OrderStatusInstallScheduled, OrderStatusCancelled},
	OrderStatusInstallScheduled:  {OrderStatusInstallInProgress, OrderStatusCancelled},
	OrderStatusInstallInProgress: {OrderStatusCompleted, OrderStatusCancelled},
}

// CanTransitionOrder reports whether the order state machine allows the
// from -> to edge.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus reports whether a status admits no further
// transitions. Terminal orders stay immutable except for notes.
func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusCompleted ||
		status == OrderStatusRejected ||
		status == OrderStatusCancelled
}

// ActiveOrderStatuses lists every non-terminal status, in lifecycle
// order. Used to detect a live order targeting a port.
func ActiveOrderStatuses() []string {
	return []string{
		OrderStatusPendingApproval,
		OrderStatusContractGenerated,
		OrderStatusContractSigned,
		OrderStatusInstallScheduled,
		OrderStatusInstallInProgress,
	}
}

// RentalOrder tracks one operator's request to occupy another's port
// through approval, contracting and installation. BoxID and OwnerID are
// denormalized from the target port's box for query convenience.
type RentalOrder struct {
	ID              string
	PortID          string
	BoxID           string
	RequesterID     string
	OwnerID         string
	Status          string
	Price           float64
	InstallationFee float64
	RequesterSigned bool
	OwnerSigned     bool
	ScheduledAt     *time.Time
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Notes           []*OrderNote
}

// IsParty reports whether the operator is the requester or the owner of
// the order.
func (o *RentalOrder) IsParty(operatorID string) bool {
	return operatorID == o.RequesterID || operatorID == o.OwnerID
}
