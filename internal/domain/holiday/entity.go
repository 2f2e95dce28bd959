package holiday

import "time"

// Holiday is informational; it never changes attendance counts or pay.
type Holiday struct {
	ID           string
	ContractorID string
	Date         time.Time
	Name         string
	Description  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
