package model

// Integration code tables. Each one is a CodeItem plus the few properties
// its Ethos schema adds.

type AccountsPayableSource struct {
	CodeItem
	DirectDeposit string `json:"directDeposit,omitempty"`
}

type CommodityCode struct {
	CodeItem
	Status string `json:"status,omitempty"`
}

type CommodityUnitType struct {
	CodeItem
}

type FinancialDocumentType struct {
	CodeItem
	Category string `json:"category,omitempty"`
}

type FixedAssetCategory struct {
	CodeItem
}

type FixedAssetDesignation struct {
	CodeItem
}

type FixedAssetType struct {
	CodeItem
}

type FreeOnBoardType struct {
	CodeItem
}

type PurchaseClassification struct {
	CodeItem
}

type ShipToDestination struct {
	CodeItem
	Place        *Address `json:"place,omitempty"`
	ContactName  string   `json:"contactName,omitempty"`
	ContactPhone string   `json:"contactPhone,omitempty"`
}

type ShippingMethod struct {
	CodeItem
}

type VendorAddressUsage struct {
	CodeItem
}

type VendorClassification struct {
	CodeItem
}

type VendorHoldReason struct {
	CodeItem
}

type VendorPaymentTerm struct {
	CodeItem
	DueDays      int `json:"dueDays,omitempty"`
	DiscountDays int `json:"discountDays,omitempty"`
}

type AccountingStringComponent struct {
	CodeItem
}

type AccountingStringFormat struct {
	ID         string                            `json:"id"`
	Delimiter  string                            `json:"delimiter"`
	Components []AccountingStringFormatComponent `json:"components"`
}

type AccountingStringFormatComponent struct {
	Component *GUIDObject `json:"component"`
	Order     int         `json:"order"`
	Length    int         `json:"length"`
}

type AccountingStringSubcomponent struct {
	CodeItem
	Component *GUIDObject `json:"component,omitempty"`
}

// Address is a postal address embedded in integration resources.
type Address struct {
	AddressLines []string `json:"addressLines,omitempty"`
	Locality     string   `json:"locality,omitempty"`
	Region       string   `json:"region,omitempty"`
	PostalCode   string   `json:"postalCode,omitempty"`
	Country      string   `json:"country,omitempty"`
}
