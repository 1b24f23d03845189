package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/lib/identity"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
)

// Statement permission codes.
const (
	PermissionUseFinancialStatements = "USE.FINANCIAL.STATEMENTS"
	PermissionViewT4A                = "VIEW.T4A"
	PermissionViewRecipientT4A       = "VIEW.RECIPIENT.T4A"
	PermissionView1099MISC           = "VIEW.1099MISC"
	PermissionView1099NEC            = "VIEW.1099NEC"
)

// FinancialStatementDefinitionService stores each user's saved financial
// statement layouts, one per preference type.
type FinancialStatementDefinitionService struct {
	docs   DocumentStore
	access Access
	now    func() time.Time
}

func NewFinancialStatementDefinitionService(docs DocumentStore, access Access) *FinancialStatementDefinitionService {
	return &FinancialStatementDefinitionService{docs: docs, access: access, now: time.Now}
}

func definitionID(user identity.User, preferenceType string) string {
	return user.ID + ":" + preferenceType
}

func (s *FinancialStatementDefinitionService) user(ctx context.Context, preferenceType string) (identity.User, error) {
	user, err := s.access.Require(ctx, PermissionUseFinancialStatements, "use financial statements")
	if err != nil {
		return user, err
	}
	if strings.TrimSpace(preferenceType) == "" {
		return user, errs.New(errs.ErrMissingArgument, "A preference type must be specified.")
	}
	return user, nil
}

// Get returns the caller's definition. A missing definition is ErrNotFound.
func (s *FinancialStatementDefinitionService) Get(ctx context.Context, preferenceType string) (*model.FinancialStatementDefinition, error) {
	user, err := s.user(ctx, preferenceType)
	if err != nil {
		return nil, err
	}
	return getDocument[model.FinancialStatementDefinition](ctx, s.docs, KindFinancialStatementDefinition, definitionID(user, preferenceType))
}

// Update creates or replaces the caller's definition of preferenceType.
func (s *FinancialStatementDefinitionService) Update(ctx context.Context, preferenceType string, def model.FinancialStatementDefinition) (*model.FinancialStatementDefinition, error) {
	user, err := s.user(ctx, preferenceType)
	if err != nil {
		return nil, err
	}
	if def.PreferenceType != "" && def.PreferenceType != preferenceType {
		return nil, errs.New(errs.ErrInvalidArgument, "The preference type in the request body does not match the URL.")
	}
	if len(def.Definition) == 0 {
		return nil, errs.New(errs.ErrMissingArgument, "A definition must be specified.")
	}

	now := s.now()
	def.PreferenceType = preferenceType
	def.PersonID = user.ID
	def.UpdatedAt = &now

	body, err := repository.Encode(def)
	if err != nil {
		return nil, err
	}
	err = s.docs.Upsert(ctx, repository.Document{
		Kind:    KindFinancialStatementDefinition,
		ID:      definitionID(user, preferenceType),
		OwnerID: user.ID,
		Body:    body,
	})
	if err != nil {
		return nil, err
	}
	return &def, nil
}

func (s *FinancialStatementDefinitionService) Delete(ctx context.Context, preferenceType string) error {
	user, err := s.user(ctx, preferenceType)
	if err != nil {
		return err
	}
	return s.docs.Delete(ctx, KindFinancialStatementDefinition, definitionID(user, preferenceType))
}

// TaxFormStatementService lists a person's tax form statements.
type TaxFormStatementService struct {
	docs   DocumentStore
	access Access
}

func NewTaxFormStatementService(docs DocumentStore, access Access) *TaxFormStatementService {
	return &TaxFormStatementService{docs: docs, access: access}
}

// Get returns the statements of one tax form, most recent year first.
// T4A recipients' administrators may read anyone's T4A; everything else is
// self-service only.
func (s *TaxFormStatementService) Get(ctx context.Context, personID, taxForm string) ([]model.TaxFormStatement, error) {
	user, err := s.access.User(ctx)
	if err != nil {
		return nil, err
	}
	if personID == "" {
		return nil, errs.New(errs.ErrMissingArgument, "Person ID must be specified.")
	}

	var allowed bool
	switch taxForm {
	case model.TaxFormT4A:
		allowed = s.access.Has(user, PermissionViewRecipientT4A) ||
			(personID == user.ID && s.access.Has(user, PermissionViewT4A))
	case model.TaxForm1099MI:
		allowed = personID == user.ID && s.access.Has(user, PermissionView1099MISC)
	case model.TaxForm1099NEC:
		allowed = personID == user.ID && s.access.Has(user, PermissionView1099NEC)
	default:
		return nil, errs.Newf(errs.ErrOutOfRange, "%s is not a valid tax form.", taxForm)
	}
	if !allowed {
		return nil, errs.Newf(errs.ErrPermission, "User '%s' cannot access %s statements for %s.", user.ID, taxForm, personID)
	}

	criteria, err := contains(map[string]string{"personId": personID, "taxForm": taxForm})
	if err != nil {
		return nil, err
	}
	statements, err := listDocuments[model.TaxFormStatement](ctx, s.docs, repository.DocumentQuery{Kind: KindTaxFormStatement, Contains: criteria})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(statements, func(a, b model.TaxFormStatement) int {
		return strings.Compare(b.TaxYear, a.TaxYear)
	})
	return statements, nil
}
