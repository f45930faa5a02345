package models

import "time"

// Port status constants
const (
	PortStatusAvailable   = "available"
	PortStatusReserved    = "reserved"
	PortStatusOccupied    = "occupied"
	PortStatusMaintenance = "maintenance"
)

// Port is an individually allocatable connection slot on a box. Ports
// are created together with their box (one per capacity slot) and live
// as long as the box does.
type Port struct {
	ID          string
	BoxID       string
	Number      int
	Status      string
	Price       float64
	TenantID    *string
	ServicePlan *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// portTransitions is the port state machine. Maintenance is only
// reachable from available, so a port under a live order can never be
// taken out of service underneath it.
var portTransitions = map[string][]string{
	PortStatusAvailable:   {PortStatusReserved, PortStatusMaintenance},
	PortStatusReserved:    {PortStatusOccupied, PortStatusAvailable},
	PortStatusOccupied:    {PortStatusAvailable},
	PortStatusMaintenance: {PortStatusAvailable},
}

// CanTransitionPort reports whether the port state machine allows the
// from -> to edge.
func CanTransitionPort(from, to string) bool {
	for _, next := range portTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CountsAsOccupied reports whether a port status contributes to its
// box's occupied counter.
func CountsAsOccupied(status string) bool {
	return status == PortStatusReserved || status == PortStatusOccupied
}
