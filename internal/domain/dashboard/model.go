package dashboard

import "time"

// Status is the lifecycle label shown on a dashboard row.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// DateLayout is the layout of Contract.Date and of filter bounds.
const DateLayout = "2006-01-02"

// Contract is a dashboard row.
type Contract struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id,omitempty"`
	Title     string    `json:"title"`
	Parties   string    `json:"parties"`
	Date      string    `json:"date"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// SaveRequest describes a contract saved from the creation workflow.
type SaveRequest struct {
	Title   string
	Parties string
	Date    string
}
