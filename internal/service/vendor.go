package service

import (
	"context"
	"strings"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/lib/identity"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
)

// vendorRecord is a self-service vendor with its default address and tax
// form.
type vendorRecord struct {
	VendorID         string   `json:"vendorId"`
	VendorName       string   `json:"vendorName"`
	NameLines        []string `json:"nameLines,omitempty"`
	AddressID        string   `json:"addressId,omitempty"`
	AddressLines     []string `json:"addressLines,omitempty"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	Zip              string   `json:"zip,omitempty"`
	Country          string   `json:"country,omitempty"`
	FormattedAddress string   `json:"formattedAddress,omitempty"`
	TaxForm          string   `json:"taxForm,omitempty"`
	TaxFormCode      string   `json:"taxFormCode,omitempty"`
	TaxFormLocation  string   `json:"taxFormLocation,omitempty"`
}

// VendorService searches vendors for procurement documents.
type VendorService struct {
	docs   DocumentStore
	access Access
}

func NewVendorService(docs DocumentStore, access Access) *VendorService {
	return &VendorService{docs: docs, access: access}
}

func (s *VendorService) requireAny(ctx context.Context, codes ...string) (identity.User, error) {
	user, err := s.access.User(ctx)
	if err != nil {
		return user, err
	}
	for _, code := range codes {
		if s.access.Has(user, code) {
			return user, nil
		}
	}
	return user, errs.Newf(errs.ErrPermission, "User '%s' does not have permission to search vendors.", user.ID)
}

func (s *VendorService) search(ctx context.Context, keyword string) ([]vendorRecord, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errs.New(errs.ErrMissingArgument, "Search keyword must be specified.")
	}
	return listDocuments[vendorRecord](ctx, s.docs, repository.DocumentQuery{Kind: KindVendor, Keyword: keyword})
}

// Search finds vendors for requisitions and purchase orders.
func (s *VendorService) Search(ctx context.Context, criteria model.VendorSearchCriteria) ([]model.VendorSearchResult, error) {
	if _, err := s.requireAny(ctx, PermissionViewVendor, PermissionCreateUpdateRequisition, PermissionCreateUpdatePurchaseOrder); err != nil {
		return nil, err
	}

	records, err := s.search(ctx, criteria.QueryKeyword)
	if err != nil {
		return nil, err
	}

	out := make([]model.VendorSearchResult, 0, len(records))
	for _, r := range records {
		out = append(out, model.VendorSearchResult{
			VendorID:         r.VendorID,
			VendorName:       r.VendorName,
			FormattedAddress: r.FormattedAddress,
			TaxForm:          r.TaxForm,
			TaxFormCode:      r.TaxFormCode,
			TaxFormLocation:  r.TaxFormLocation,
		})
	}
	return out, nil
}

// SearchForVoucher finds vendors with the remit-to detail vouchers need.
func (s *VendorService) SearchForVoucher(ctx context.Context, criteria model.VendorSearchCriteria) ([]model.VendorsVoucherSearchResult, error) {
	if _, err := s.requireAny(ctx, PermissionViewVendor, PermissionCreateUpdateVoucher); err != nil {
		return nil, err
	}

	records, err := s.search(ctx, criteria.QueryKeyword)
	if err != nil {
		return nil, err
	}

	out := make([]model.VendorsVoucherSearchResult, 0, len(records))
	for _, r := range records {
		names := r.NameLines
		if len(names) == 0 {
			names = []string{r.VendorName}
		}
		out = append(out, model.VendorsVoucherSearchResult{
			VendorID:         r.VendorID,
			VendorNameLines:  names,
			AddressID:        r.AddressID,
			AddressLines:     r.AddressLines,
			City:             r.City,
			State:            r.State,
			Zip:              r.Zip,
			Country:          r.Country,
			FormattedAddress: r.FormattedAddress,
		})
	}
	return out, nil
}

func (s *VendorService) GetDefaultTaxFormInfo(ctx context.Context, vendorID string) (*model.VendorDefaultTaxFormInfo, error) {
	if _, err := s.requireAny(ctx, PermissionViewVendor, PermissionCreateUpdateVoucher, PermissionCreateUpdatePurchaseOrder); err != nil {
		return nil, err
	}
	if vendorID == "" {
		return nil, errs.New(errs.ErrMissingArgument, "A vendor id must be specified.")
	}

	r, err := getDocument[vendorRecord](ctx, s.docs, KindVendor, vendorID)
	if err != nil {
		return nil, err
	}
	return &model.VendorDefaultTaxFormInfo{
		VendorID:        r.VendorID,
		TaxForm:         r.TaxForm,
		TaxFormBoxCode:  r.TaxFormCode,
		TaxFormLocation: r.TaxFormLocation,
	}, nil
}
