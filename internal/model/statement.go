package model

import (
	"encoding/json"
	"time"
)

// Tax forms with self-service statements.
const (
	TaxFormT4A     = "FormT4A"
	TaxForm1099MI  = "Form1099MI"
	TaxForm1099NEC = "Form1099NEC"
)

type TaxFormStatement struct {
	PersonID    string `json:"personId"`
	TaxYear     string `json:"taxYear"`
	TaxForm     string `json:"taxForm"`
	Notation    string `json:"notation,omitempty"`
	PdfRecordID string `json:"pdfRecordId,omitempty"`
}

// FinancialStatementDefinition is a user's saved report layout; the layout
// itself is opaque to the API.
type FinancialStatementDefinition struct {
	PreferenceType string          `json:"preferenceType"`
	PersonID       string          `json:"personId,omitempty"`
	Definition     json.RawMessage `json:"definition" validate:"required"`
	UpdatedAt      *time.Time      `json:"updatedAt,omitempty"`
}
