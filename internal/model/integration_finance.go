package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Buyer struct {
	ID         string      `json:"id"`
	Buyer      *GUIDObject `json:"buyer"`
	Status     string      `json:"status"`
	StartOn    *time.Time  `json:"startOn,omitempty"`
	EndOn      *time.Time  `json:"endOn,omitempty"`
	Department string      `json:"department,omitempty"`
}

type FiscalYear struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Status           string    `json:"status"`
	StartOn          time.Time `json:"startOn"`
	EndOn            time.Time `json:"endOn"`
	ReportingSegment string    `json:"reportingSegment,omitempty"`
}

type FiscalPeriod struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	FiscalYear *GUIDObject `json:"fiscalYear"`
	Period     int         `json:"period"`
	Status     string      `json:"status"`
	StartOn    time.Time   `json:"startOn"`
	EndOn      time.Time   `json:"endOn"`
}

type Grant struct {
	ID                    string      `json:"id"`
	Title                 string      `json:"title"`
	Code                  string      `json:"code"`
	SponsorReferenceCode  string      `json:"sponsorReferenceCode,omitempty"`
	Status                string      `json:"status"`
	StartOn               time.Time   `json:"startOn"`
	EndOn                 *time.Time  `json:"endOn,omitempty"`
	Amount                *Amount     `json:"amount,omitempty"`
	ReportingSegment      string      `json:"reportingSegment,omitempty"`
	FiscalYear            *GUIDObject `json:"fiscalYear,omitempty"`
	PrincipalInvestigator *GUIDObject `json:"principalInvestigator,omitempty"`
	AccountingStrings     []string    `json:"accountingStrings,omitempty"`
}

type LedgerActivity struct {
	ID                string      `json:"id"`
	FiscalYear        *GUIDObject `json:"fiscalYear"`
	FiscalPeriod      *GUIDObject `json:"fiscalPeriod"`
	ReportingSegment  string      `json:"reportingSegment,omitempty"`
	TransactionDate   time.Time   `json:"transactionDate"`
	AccountingString  string      `json:"accountingString"`
	DocumentType      *GUIDObject `json:"documentType,omitempty"`
	DocumentReference string      `json:"documentReference,omitempty"`
	Description       string      `json:"description,omitempty"`
	Amount            Amount      `json:"amount"`
	Type              string      `json:"type"`
}

type GeneralLedgerTransaction struct {
	ID           string                         `json:"id"`
	ProcessMode  string                         `json:"processMode"`
	SubmittedBy  *GUIDObject                    `json:"submittedBy,omitempty"`
	Transactions []GeneralLedgerTransactionItem `json:"transactions"`
}

type GeneralLedgerTransactionItem struct {
	Type                   string                    `json:"type"`
	LedgerDate             time.Time                 `json:"ledgerDate"`
	ReferenceNumber        string                    `json:"referenceNumber,omitempty"`
	Reference              string                    `json:"reference,omitempty"`
	TransactionDetailLines []GeneralLedgerDetailLine `json:"transactionDetailLines"`
}

type GeneralLedgerDetailLine struct {
	AccountingString string `json:"accountingString"`
	Description      string `json:"description,omitempty"`
	Type             string `json:"type"`
	Amount           Amount `json:"amount"`
}

type AccountingStringComponentValue struct {
	ID                string      `json:"id"`
	Value             string      `json:"value"`
	Title             string      `json:"title"`
	Description       string      `json:"description,omitempty"`
	Component         *GUIDObject `json:"component"`
	Status            string      `json:"status"`
	TransactionStatus string      `json:"transactionStatus,omitempty"`
	Type              string      `json:"type,omitempty"`
}

type AccountingStringSubcomponentValue struct {
	ID                      string      `json:"id"`
	Code                    string      `json:"code"`
	Title                   string      `json:"title"`
	Description             string      `json:"description,omitempty"`
	Subcomponent            *GUIDObject `json:"subcomponent"`
	ParentSubcomponentValue *GUIDObject `json:"parentSubcomponentValue,omitempty"`
}

// AccountFundsAvailable answers whether an accounting string can absorb an
// amount on a given date.
type AccountFundsAvailable struct {
	AccountingString string          `json:"accountingString"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency,omitempty"`
	BalanceOn        *time.Time      `json:"balanceOn,omitempty"`
	SubmittedBy      *GUIDObject     `json:"submittedBy,omitempty"`
	FundsAvailable   string          `json:"fundsAvailable"`
}

// Funds availability values.
const (
	FundsAvailable    = "available"
	FundsNotAvailable = "notAvailable"
	FundsOverride     = "availableOverride"
)

// AccountFundsAvailableFilter is the criteria / accountSpecification
// filter of account-funds-available. Amount may be a JSON number or string.
type AccountFundsAvailableFilter struct {
	AccountingString string          `json:"accountingString"`
	Amount           json.RawMessage `json:"amount,omitempty"`
	BalanceOn        string          `json:"balanceOn,omitempty"`
	SubmittedBy      *GUIDObject     `json:"submittedBy,omitempty"`
}

// AccountingString confirms that an accounting string exists.
type AccountingString struct {
	AccountingString string `json:"accountingString"`
	Description      string `json:"description,omitempty"`
}
