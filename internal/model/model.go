// Package model holds the DTOs exchanged with API clients.
//
// Integration (EEDM) resources follow the Ethos schemas: GUID ids, nested
// {"id": ...} references and camelCase properties. Self-service resources
// follow the Colleague self-service schemas keyed by Colleague ids.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GUIDObject is a reference to another integration resource.
type GUIDObject struct {
	ID string `json:"id"`
}

// NewGUIDObject returns a reference, or nil for an empty id.
func NewGUIDObject(id string) *GUIDObject {
	if id == "" {
		return nil
	}
	return &GUIDObject{ID: id}
}

// Amount is a monetary value with its ISO currency.
type Amount struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

// CodeItem is the shape shared by integration code tables.
type CodeItem struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// DateRange bounds a period; End is optional.
type DateRange struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}
