package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcurementDocument holds what requisitions, purchase orders and vouchers
// share in self-service.
type ProcurementDocument struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	Status        string          `json:"status"`
	StatusDate    *time.Time      `json:"statusDate,omitempty"`
	Date          time.Time       `json:"date"`
	VendorID      string          `json:"vendorId,omitempty"`
	VendorName    string          `json:"vendorName,omitempty"`
	InitiatorName string          `json:"initiatorName,omitempty"`
	RequestorName string          `json:"requestorName,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode,omitempty"`
	Comments      string          `json:"comments,omitempty"`
	LineItems     []LineItem      `json:"lineItems,omitempty"`
	Approvers     []Approver      `json:"approvers,omitempty"`
}

type LineItem struct {
	ID              string                   `json:"id"`
	Description     string                   `json:"description"`
	Quantity        decimal.Decimal          `json:"quantity"`
	Price           decimal.Decimal          `json:"price"`
	UnitOfIssue     string                   `json:"unitOfIssue,omitempty"`
	CommodityCode   string                   `json:"commodityCode,omitempty"`
	GlDistributions []LineItemGlDistribution `json:"glDistributions,omitempty"`
}

type LineItemGlDistribution struct {
	GlAccount          string          `json:"glAccount"`
	FormattedGlAccount string          `json:"formattedGlAccount,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`
	Amount             decimal.Decimal `json:"amount"`
	Percent            decimal.Decimal `json:"percent"`
}

type RequisitionDocument struct {
	ProcurementDocument
	DesiredDate    *time.Time `json:"desiredDate,omitempty"`
	PurchaseOrders []string   `json:"purchaseOrders,omitempty"`
}

type PurchaseOrderDocument struct {
	ProcurementDocument
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
	Requisitions []string   `json:"requisitions,omitempty"`
	Vouchers     []string   `json:"vouchers,omitempty"`
}

type Voucher struct {
	ProcurementDocument
	InvoiceNumber string     `json:"invoiceNumber,omitempty"`
	InvoiceDate   *time.Time `json:"invoiceDate,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	ApType        string     `json:"apType,omitempty"`
	PurchaseOrder string     `json:"purchaseOrderId,omitempty"`
}

// ProcurementDocumentSummary is the list form of every procurement document.
type ProcurementDocumentSummary struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	Status        string          `json:"status"`
	Date          time.Time       `json:"date"`
	VendorID      string          `json:"vendorId,omitempty"`
	VendorName    string          `json:"vendorName,omitempty"`
	InitiatorName string          `json:"initiatorName,omitempty"`
	RequestorName string          `json:"requestorName,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// ProcurementDocumentFilterCriteria narrows the qapi summary endpoints.
type ProcurementDocumentFilterCriteria struct {
	PersonID   string           `json:"personId" validate:"required"`
	VendorIDs  []string         `json:"vendorIds,omitempty"`
	Statuses   []string         `json:"statuses,omitempty"`
	DateFrom   *time.Time       `json:"dateFrom,omitempty"`
	DateTo     *time.Time       `json:"dateTo,omitempty"`
	AmountFrom *decimal.Decimal `json:"amountFrom,omitempty"`
	AmountTo   *decimal.Decimal `json:"amountTo,omitempty"`
}

// ReceiveProcurementSummary is a purchase order with lines still to receive.
type ReceiveProcurementSummary struct {
	ID         string                       `json:"id"`
	Number     string                       `json:"number"`
	VendorID   string                       `json:"vendorId,omitempty"`
	VendorName string                       `json:"vendorName,omitempty"`
	OrderDate  time.Time                    `json:"orderDate"`
	LineItems  []ReceiveProcurementLineItem `json:"lineItems"`
}

type ReceiveProcurementLineItem struct {
	ID               string          `json:"id"`
	Description      string          `json:"description"`
	QuantityOrdered  decimal.Decimal `json:"quantityOrdered"`
	QuantityAccepted decimal.Decimal `json:"quantityAccepted"`
	ItemMSDS         bool            `json:"itemMsds"`
}

// ProcurementCommodityCode is the self-service commodity code.
type ProcurementCommodityCode struct {
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	DefaultDescFlag bool            `json:"defaultDescFlag"`
	FixedAssetsFlag string          `json:"fixedAssetsFlag,omitempty"`
	TaxCodes        []string        `json:"taxCodes,omitempty"`
	Price           decimal.Decimal `json:"price"`
}

// CodeDescription is the shape of the small self-service code tables
// (unit types, ship-to, ship-via, fixed asset transfer flags).
type CodeDescription struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
