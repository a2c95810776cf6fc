package domain

import "time"

type Notification struct {
	ID         string            `json:"id"`
	CustomerID string            `json:"customer_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Read       bool              `json:"read"`
	CreatedAt  time.Time         `json:"created_at"`
}
