package domain

import "time"

// Unit is a physical school location. Units are seeded by operations
// and read-only to the booking engine.
type Unit struct {
	ID          string // stable slug, e.g. "angelim-centro"
	Name        string
	Description string
	CreatedAt   time.Time
}
