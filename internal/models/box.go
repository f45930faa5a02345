package models

import "time"

// Box operational status constants
const (
	BoxStatusActive      = "active"
	BoxStatusMaintenance = "maintenance"
	BoxStatusInactive    = "inactive"
)

// DistributionBox represents a CTO: a physical fiber distribution point
// exposing a fixed number of ports. OccupiedCount is denormalized and is
// only ever written in the same transaction as the port status change
// that caused it, so it always equals the number of ports whose status
// is reserved or occupied.
type DistributionBox struct {
	ID            string
	Name          string
	Capacity      int
	OccupiedCount int
	Latitude      float64
	Longitude     float64
	Status        string
	OwnerID       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
