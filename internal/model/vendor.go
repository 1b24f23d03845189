package model

type VendorSearchCriteria struct {
	QueryKeyword string `json:"queryKeyword"`
}

type VendorSearchResult struct {
	VendorID         string `json:"vendorId"`
	VendorName       string `json:"vendorName"`
	FormattedAddress string `json:"formattedAddress,omitempty"`
	TaxForm          string `json:"taxForm,omitempty"`
	TaxFormCode      string `json:"taxFormCode,omitempty"`
	TaxFormLocation  string `json:"taxFormLocation,omitempty"`
}

type VendorsVoucherSearchResult struct {
	VendorID         string   `json:"vendorId"`
	VendorNameLines  []string `json:"vendorNameLines"`
	AddressID        string   `json:"addressId,omitempty"`
	AddressLines     []string `json:"addressLines,omitempty"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	Zip              string   `json:"zip,omitempty"`
	Country          string   `json:"country,omitempty"`
	FormattedAddress string   `json:"formattedAddress,omitempty"`
}

type VendorDefaultTaxFormInfo struct {
	VendorID        string `json:"vendorId"`
	TaxForm         string `json:"taxForm,omitempty"`
	TaxFormBoxCode  string `json:"taxFormBoxCode,omitempty"`
	TaxFormLocation string `json:"taxFormLocation,omitempty"`
}
