package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget adjustment statuses.
const (
	BudgetAdjustmentComplete    = "Complete"
	BudgetAdjustmentNotApproved = "NotApproved"
	BudgetAdjustmentUnfinished  = "Unfinished"
)

type BudgetAdjustment struct {
	ID                      string           `json:"id"`
	DraftBudgetAdjustmentID string           `json:"draftBudgetAdjustmentId,omitempty"`
	Status                  string           `json:"status"`
	Reason                  string           `json:"reason" validate:"required"`
	Initiator               string           `json:"initiator,omitempty"`
	PersonID                string           `json:"personId,omitempty"`
	TransactionDate         time.Time        `json:"transactionDate"`
	Comments                string           `json:"comments,omitempty"`
	AdjustmentLines         []AdjustmentLine `json:"adjustmentLines" validate:"required,min=2,dive"`
	NextApprovers           []NextApprover   `json:"nextApprovers,omitempty"`
	Approvers               []Approver       `json:"approvers,omitempty"`
	ErrorMessages           []string         `json:"errorMessages,omitempty"`
}

// AdjustmentLine moves money into (To) or out of (From) one GL account.
type AdjustmentLine struct {
	GlNumber   string          `json:"glNumber" validate:"required"`
	FromAmount decimal.Decimal `json:"fromAmount"`
	ToAmount   decimal.Decimal `json:"toAmount"`
}

type Approver struct {
	ApproverID   string     `json:"approverId"`
	ApprovalName string     `json:"approvalName,omitempty"`
	ApprovalDate *time.Time `json:"approvalDate,omitempty"`
}

type NextApprover struct {
	NextApproverID   string `json:"nextApproverId"`
	NextApproverName string `json:"nextApproverName,omitempty"`
}

type BudgetAdjustmentApproval struct {
	BudgetAdjustmentNumber string     `json:"budgetAdjustmentNumber"`
	Comments               string     `json:"comments,omitempty"`
	ApprovalDate           *time.Time `json:"approvalDate,omitempty"`
}

type BudgetAdjustmentSummary struct {
	BudgetAdjustmentNumber  string          `json:"budgetAdjustmentNumber,omitempty"`
	DraftBudgetAdjustmentID string          `json:"draftBudgetAdjustmentId,omitempty"`
	Reason                  string          `json:"reason"`
	Status                  string          `json:"status"`
	TransactionDate         time.Time       `json:"transactionDate"`
	InitiatorName           string          `json:"initiatorName,omitempty"`
	ToAmount                decimal.Decimal `json:"toAmount"`
}

type BudgetAdjustmentPendingApprovalSummary struct {
	BudgetAdjustmentNumber string          `json:"budgetAdjustmentNumber"`
	Reason                 string          `json:"reason"`
	Status                 string          `json:"status"`
	TransactionDate        time.Time       `json:"transactionDate"`
	InitiatorName          string          `json:"initiatorName,omitempty"`
	ToAmount               decimal.Decimal `json:"toAmount"`
}

type DraftBudgetAdjustment struct {
	ID              string           `json:"id"`
	Reason          string           `json:"reason,omitempty"`
	Initiator       string           `json:"initiator,omitempty"`
	PersonID        string           `json:"personId,omitempty"`
	TransactionDate *time.Time       `json:"transactionDate,omitempty"`
	Comments        string           `json:"comments,omitempty"`
	AdjustmentLines []AdjustmentLine `json:"adjustmentLines,omitempty"`
	NextApprovers   []NextApprover   `json:"nextApprovers,omitempty"`
	ErrorMessages   []string         `json:"errorMessages,omitempty"`
}

// NextApproverValidationResponse reports whether an id can approve documents.
type NextApproverValidationResponse struct {
	ID               string `json:"id"`
	NextApproverName string `json:"nextApproverName,omitempty"`
	IsValid          bool   `json:"isValid"`
	ErrorOccurred    bool   `json:"errorOccurred"`
	Message          string `json:"message,omitempty"`
}

type KeywordSearchCriteria struct {
	Keyword string `json:"keyword"`
}

type Initiator struct {
	ID   string `json:"id"`
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}
