package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentApproval lists the documents waiting on the current user.
type DocumentApproval struct {
	CanOverrideFundsAvailability bool               `json:"canOverrideFundsAvailability"`
	FundsConfirmationEnabled     bool               `json:"fundsConfirmationEnabled"`
	ApprovalDocuments            []ApprovalDocument `json:"approvalDocuments"`
}

type ApprovalDocument struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	DocumentType  string          `json:"documentType"`
	Date          time.Time       `json:"date"`
	VendorName    string          `json:"vendorName,omitempty"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	ChangeDate    string          `json:"changeDate,omitempty"`
	ChangeTime    string          `json:"changeTime,omitempty"`
	NextApprovers []NextApprover  `json:"nextApprovers,omitempty"`
}

type DocumentApprovalRequest struct {
	ApprovalDocumentRequests []ApprovalDocumentRequest `json:"approvalDocumentRequests"`
}

type ApprovalDocumentRequest struct {
	Approve        bool   `json:"approve"`
	DocumentType   string `json:"documentType"`
	DocumentID     string `json:"documentId"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	ChangeDate     string `json:"changeDate,omitempty"`
	ChangeTime     string `json:"changeTime,omitempty"`
}

type DocumentApprovalResponse struct {
	UpdatedApprovalDocumentResponses    []ApprovalDocumentResponse `json:"updatedApprovalDocumentResponses"`
	NotUpdatedApprovalDocumentResponses []ApprovalDocumentResponse `json:"notUpdatedApprovalDocumentResponses"`
}

type ApprovalDocumentResponse struct {
	DocumentType   string   `json:"documentType"`
	DocumentID     string   `json:"documentId"`
	DocumentNumber string   `json:"documentNumber,omitempty"`
	DocumentStatus string   `json:"documentStatus,omitempty"`
	ErrorMessages  []string `json:"errorMessages,omitempty"`
}

type ApprovedDocument struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	DocumentType string          `json:"documentType"`
	Date         time.Time       `json:"date"`
	VendorID     string          `json:"vendorId,omitempty"`
	VendorName   string          `json:"vendorName,omitempty"`
	NetAmount    decimal.Decimal `json:"netAmount"`
	ApprovalDate *time.Time      `json:"approvalDate,omitempty"`
	Status       string          `json:"status,omitempty"`
}

// ApprovedDocumentFilterCriteria narrows POST /qapi/approved-documents.
// Empty fields do not filter.
type ApprovedDocumentFilterCriteria struct {
	DocumentType     []string   `json:"documentType,omitempty"`
	VendorIDs        []string   `json:"vendorIds,omitempty"`
	DocumentDateFrom *time.Time `json:"documentDateFrom,omitempty"`
	DocumentDateTo   *time.Time `json:"documentDateTo,omitempty"`
	ApprovalDateFrom *time.Time `json:"approvalDateFrom,omitempty"`
	ApprovalDateTo   *time.Time `json:"approvalDateTo,omitempty"`
}
