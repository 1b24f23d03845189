package handler

import (
	"net/http"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/deppfellow/colleague-finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// StatementHandler serves financial statement definitions and tax form
// statements.
type StatementHandler struct {
	Handler
	definitions *service.FinancialStatementDefinitionService
	taxForms    *service.TaxFormStatementService
}

func NewStatementHandler(
	s *server.Server,
	definitions *service.FinancialStatementDefinitionService,
	taxForms *service.TaxFormStatementService,
) *StatementHandler {
	return &StatementHandler{
		Handler:     NewHandler(s),
		definitions: definitions,
		taxForms:    taxForms,
	}
}

var (
	definitionNotFound   = onNotFound("No financial statement definition exists of the given type.")
	definitionPermission = ErrorRule{Kind: errs.ErrPermission, Status: http.StatusForbidden, Integration: true}

	getDefinitionPolicy = newPolicy("Could not retrieve financial statement definition.",
		definitionNotFound, ruleSessionInvalid, definitionPermission)
	updateDefinitionPolicy = newPolicy("Could not update financial statement definition.",
		definitionNotFound, ruleSessionInvalid, definitionPermission)
	deleteDefinitionPolicy = newPolicy("Could not delete financial statement definition.",
		definitionNotFound, ruleSessionInvalid, definitionPermission)
)

// taxFormPolicies are keyed by tax form.
var taxFormPolicies = map[string]ErrorPolicy{
	model.TaxFormT4A:     taxFormPolicy("T4A", onInvalidArgument("Invalid tax form.")),
	model.TaxForm1099MI:  taxFormPolicy("1099-MISC"),
	model.TaxForm1099NEC: taxFormPolicy("1099-NEC", onInvalidArgument("Invalid tax form.")),
}

// taxFormPolicy builds the policy of one tax form; extra rules follow the
// shared ones.
func taxFormPolicy(form string, extra ...ErrorRule) ErrorPolicy {
	rules := []ErrorRule{
		ruleSessionInvalid,
		onPermission("Insufficient permissions to access " + form + " statements."),
		onOutOfRange("Invalid tax form."),
		onMissingArgument("Invalid argument."),
	}
	return newPolicy("Unable to get "+form+" statements", append(rules, extra...)...)
}

type definitionRequest struct {
	PreferenceType string `param:"preferenceType"`
}

func (r *definitionRequest) Validate() error {
	return requireValue(r.PreferenceType, "Could not retrieve financial statement definition.")
}

func (h *StatementHandler) GetFinancialStatementDefinition(c echo.Context, req *definitionRequest) (*model.FinancialStatementDefinition, error) {
	def, err := h.definitions.Get(c.Request().Context(), req.PreferenceType)
	if err != nil {
		return nil, getDefinitionPolicy.Translate(c, err)
	}
	return def, nil
}

type updateDefinitionRequest struct {
	Type string `param:"preferenceType" json:"-"`
	model.FinancialStatementDefinition
}

func (r *updateDefinitionRequest) RequiredBodyMessage() string {
	return "Could not update financial statement definition."
}

func (r *updateDefinitionRequest) Validate() error {
	return requireValue(r.Type, "Could not update financial statement definition.")
}

func (h *StatementHandler) UpdateFinancialStatementDefinition(c echo.Context, req *updateDefinitionRequest) (*model.FinancialStatementDefinition, error) {
	def, err := h.definitions.Update(c.Request().Context(), req.Type, req.FinancialStatementDefinition)
	if err != nil {
		return nil, updateDefinitionPolicy.Translate(c, err)
	}
	return def, nil
}

type deleteDefinitionRequest struct {
	PreferenceType string `param:"preferenceType"`
}

func (r *deleteDefinitionRequest) Validate() error {
	return requireValue(r.PreferenceType, "Could not delete financial statement definition.")
}

func (h *StatementHandler) DeleteFinancialStatementDefinition(c echo.Context, req *deleteDefinitionRequest) error {
	if err := h.definitions.Delete(c.Request().Context(), req.PreferenceType); err != nil {
		return deleteDefinitionPolicy.Translate(c, err)
	}
	return nil
}

type taxFormRequest struct {
	PersonID string `param:"personId"`
}

func (r *taxFormRequest) Validate() error {
	return requireValue(r.PersonID, "Person ID must be specified.")
}

// TaxFormStatements returns the handler function for one tax form.
func (h *StatementHandler) TaxFormStatements(taxForm string) HandlerFunc[*taxFormRequest, []model.TaxFormStatement] {
	policy := taxFormPolicies[taxForm]
	return func(c echo.Context, req *taxFormRequest) ([]model.TaxFormStatement, error) {
		statements, err := h.taxForms.Get(c.Request().Context(), req.PersonID, taxForm)
		if err != nil {
			return nil, policy.Translate(c, err)
		}
		return statements, nil
	}
}
