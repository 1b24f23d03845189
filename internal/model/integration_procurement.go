package model

import (
	"time"
)

type AccountsPayableInvoice struct {
	ID                    string            `json:"id"`
	InvoiceNumber         string            `json:"invoiceNumber"`
	Vendor                *GUIDObject       `json:"vendor"`
	TransactionDate       time.Time         `json:"transactionDate"`
	VendorInvoiceDate     *time.Time        `json:"vendorInvoiceDate,omitempty"`
	PaymentStatus         string            `json:"paymentStatus"`
	ProcessState          string            `json:"processState,omitempty"`
	InvoiceType           string            `json:"invoiceType,omitempty"`
	InvoiceDiscountAmount *Amount           `json:"invoiceDiscountAmount,omitempty"`
	PaymentTerms          *GUIDObject       `json:"paymentTerms,omitempty"`
	LineItems             []InvoiceLineItem `json:"lineItems,omitempty"`
}

type InvoiceLineItem struct {
	LineItemNumber string          `json:"lineItemNumber"`
	Description    string          `json:"description"`
	Quantity       string          `json:"quantity"`
	UnitPrice      Amount          `json:"unitPrice"`
	CommodityCode  *GUIDObject     `json:"commodityCode,omitempty"`
	AccountDetails []AccountDetail `json:"accountDetails,omitempty"`
}

type AccountDetail struct {
	SequenceNumber   int     `json:"sequenceNumber"`
	AccountingString string  `json:"accountingString"`
	Allocation       *Amount `json:"allocation,omitempty"`
}

type PurchaseOrder struct {
	ID               string            `json:"id"`
	OrderNumber      string            `json:"orderNumber"`
	Status           string            `json:"status"`
	Vendor           *GUIDObject       `json:"vendor"`
	Buyer            *GUIDObject       `json:"buyer,omitempty"`
	OrderedOn        time.Time         `json:"orderedOn"`
	DeliveredBy      *time.Time        `json:"deliveredBy,omitempty"`
	ShipTo           *GUIDObject       `json:"shipping,omitempty"`
	PaymentSource    *GUIDObject       `json:"paymentSource,omitempty"`
	ReferenceNumbers []string          `json:"referenceNumbers,omitempty"`
	LineItems        []InvoiceLineItem `json:"lineItems,omitempty"`
}

type Requisition struct {
	ID                string            `json:"id"`
	RequisitionNumber string            `json:"requisitionNumber"`
	Status            string            `json:"status"`
	RequestedOn       time.Time         `json:"requestedOn"`
	Requestor         *GUIDObject       `json:"requestor,omitempty"`
	Buyer             *GUIDObject       `json:"buyer,omitempty"`
	Vendor            *GUIDObject       `json:"vendor,omitempty"`
	LineItems         []InvoiceLineItem `json:"lineItems,omitempty"`
}

type ProcurementReceipt struct {
	ID            string                   `json:"id"`
	ReceiptNumber string                   `json:"receiptNumber"`
	ReceivedOn    time.Time                `json:"receivedOn"`
	ReceivedBy    *GUIDObject              `json:"receivedBy,omitempty"`
	PurchaseOrder *GUIDObject              `json:"purchaseOrder"`
	LineItems     []ProcurementReceiptLine `json:"lineItems"`
}

type ProcurementReceiptLine struct {
	LineItemNumber   string `json:"lineItemNumber"`
	ReceivedQuantity string `json:"receivedQuantity"`
	RejectedQuantity string `json:"rejectedQuantity,omitempty"`
	Comment          string `json:"comment,omitempty"`
}

type PaymentTransaction struct {
	ID            string      `json:"id"`
	PaymentNumber string      `json:"paymentNumber"`
	PaymentType   string      `json:"paymentType"`
	PaymentDate   time.Time   `json:"paymentDate"`
	Payee         *GUIDObject `json:"payee"`
	Document      *GUIDObject `json:"document,omitempty"`
	DocumentType  string      `json:"documentType,omitempty"`
	Amount        Amount      `json:"amount"`
	Void          *time.Time  `json:"void,omitempty"`
}

type Vendor struct {
	ID                string        `json:"id"`
	VendorDetail      VendorDetail  `json:"vendorDetail"`
	Classifications   []*GUIDObject `json:"classifications,omitempty"`
	PaymentTerms      []*GUIDObject `json:"paymentTerms,omitempty"`
	VendorHoldReasons []*GUIDObject `json:"vendorHoldReasons,omitempty"`
	Statuses          []string      `json:"statuses,omitempty"`
	DefaultCurrency   string        `json:"defaultCurrency,omitempty"`
	StartOn           *time.Time    `json:"startOn,omitempty"`
	RelatedReference  *GUIDObject   `json:"relatedReference,omitempty"`
	Types             []string      `json:"types,omitempty"`
}

// VendorDetail names the person or organization behind a vendor.
type VendorDetail struct {
	Person       *GUIDObject `json:"person,omitempty"`
	Organization *GUIDObject `json:"organization,omitempty"`
	Institution  *GUIDObject `json:"institution,omitempty"`
}

type VendorContact struct {
	ID      string              `json:"id"`
	Vendor  *GUIDObject         `json:"vendor"`
	Contact VendorContactDetail `json:"contact"`
	StartOn *time.Time          `json:"startOn,omitempty"`
	EndOn   *time.Time          `json:"endOn,omitempty"`
}

type VendorContactDetail struct {
	Person *GUIDObject `json:"person,omitempty"`
	Name   string      `json:"name,omitempty"`
	Phone  string      `json:"phone,omitempty"`
	Email  string      `json:"email,omitempty"`
	Type   string      `json:"type,omitempty"`
}

type FixedAsset struct {
	ID               string      `json:"id"`
	Tag              string      `json:"tag"`
	Description      string      `json:"description"`
	Type             *GUIDObject `json:"type,omitempty"`
	Category         *GUIDObject `json:"category,omitempty"`
	Designation      *GUIDObject `json:"designation,omitempty"`
	Status           string      `json:"status"`
	Location         *GUIDObject `json:"location,omitempty"`
	AcquiredOn       *time.Time  `json:"acquiredOn,omitempty"`
	AcquisitionCost  *Amount     `json:"acquisitionCost,omitempty"`
	Depreciation     *Amount     `json:"depreciation,omitempty"`
	AccountingString string      `json:"accountingString,omitempty"`
}
