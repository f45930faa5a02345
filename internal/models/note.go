package models

import "time"

// SystemAuthor is the author id recorded on system-generated notes.
const SystemAuthor = "system"

// OrderNote is one append-only audit entry on an order. Notes are never
// edited or deleted; system notes record lifecycle transitions, human
// notes carry party communication.
type OrderNote struct {
	ID        string
	OrderID   string
	AuthorID  string
	Content   string
	IsSystem  bool
	CreatedAt time.Time
}
