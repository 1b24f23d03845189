package handler

import (
	"net/http"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/deppfellow/colleague-finance-api/internal/service"
	"github.com/deppfellow/colleague-finance-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// BudgetAdjustmentHandler serves budget adjustments and their drafts.
type BudgetAdjustmentHandler struct {
	Handler
	budget *service.BudgetAdjustmentService
	drafts *service.DraftBudgetAdjustmentService
}

func NewBudgetAdjustmentHandler(s *server.Server, budget *service.BudgetAdjustmentService, drafts *service.DraftBudgetAdjustmentService) *BudgetAdjustmentHandler {
	return &BudgetAdjustmentHandler{
		Handler: NewHandler(s),
		budget:  budget,
		drafts:  drafts,
	}
}

const budgetAdjustmentIDRequired = "A budget adjustment number must be specified."

var (
	budgetAdjustmentConfigurationMissing = onConfiguration(http.StatusNotFound, "Unable to get budget adjustment configuration.")

	createBudgetAdjustmentPolicy = newPolicy("Unable to create a budget adjustment.",
		onPermission("Insufficient permissions to create the budget adjustment."),
		budgetAdjustmentConfigurationMissing,
		ruleSessionExpired)
	updateBudgetAdjustmentPolicy = newPolicy("Unable to update the budget adjustment.",
		onPermission("Insufficient permissions to update the budget adjustment."),
		budgetAdjustmentConfigurationMissing,
		ruleSessionExpired)
	getBudgetAdjustmentPolicy = newPolicy("Unable to get the budget adjustment.",
		onPermission("Insufficient permissions to get the budget adjustment."),
		ruleRecordNotFound,
		onInvalidArgument("Invalid argument."),
		ruleSessionExpired)
	approveBudgetAdjustmentPolicy = newPolicy("Unable to approve the budget adjustment.",
		onPermission("Insufficient permissions to approve the budget adjustment."),
		ErrorRule{Kind: errs.ErrAlreadyApproved, Status: http.StatusBadRequest, Message: "You have already approved this budget adjustment."},
		ErrorRule{Kind: errs.ErrNotApprovedStatus, Status: http.StatusBadRequest, Message: "The budget adjustment does not have a not approved status."},
		ErrorRule{Kind: errs.ErrConcurrentUpdate, Status: http.StatusConflict, Message: "The budget adjustment was changed by another request. Please try again."},
		ruleSessionExpired)
	getBudgetAdjustmentSummaryPolicy = newPolicy("Unable to get budget adjustments summary",
		onPermission("Insufficient permissions to get the budget adjustment summary."))
	getPendingApprovalSummaryPolicy = newPolicy("Unable to get budget adjustments pending approval summary",
		onPermission("Insufficient permissions to get the budget adjustment pending approval summary."),
		ruleSessionExpired)

	createDraftPolicy = newPolicy("Unable to create a draft budget adjustment.",
		onPermission("Insufficient permissions to create the draft budget adjustment."),
		onConfiguration(http.StatusNotFound, "Unable to create draft budget adjustment - configuration exception."),
		ruleSessionExpired)
	updateDraftPolicy = newPolicy("Unable to update draft budget adjustment.",
		onPermission("Insufficient permissions to update the budget adjustment."),
		ruleRecordNotFound,
		onConfiguration(http.StatusBadRequest, "Unable to update draft budget adjustment - configuration exception."),
		onApplication("Unable to update draft budget adjustment - application exception."),
		ruleSessionExpired)
	getDraftPolicy = newPolicy("Unable to get the draft budget adjustment.",
		onPermission("Insufficient permissions to get the draft budget adjustment."),
		onMissingArgument("Unable to get the draft budget adjustment."))
	deleteDraftPolicy = newPolicy("Unable to delete the draft budget adjustment.",
		onPermission("Insufficient permissions to delete the draft budget adjustment."),
		onNotFound("Unable to delete draft budget adjustment."),
		onMissingArgument("Unable to delete draft budget adjustment - application exception"),
		ruleSessionExpired)
)

type createBudgetAdjustmentRequest struct {
	model.BudgetAdjustment
}

func (r *createBudgetAdjustmentRequest) RequiredBodyMessage() string {
	return "A budget adjustment must be specified."
}

func (r *createBudgetAdjustmentRequest) Validate() error {
	return validation.Struct(r.BudgetAdjustment)
}

func (h *BudgetAdjustmentHandler) CreateBudgetAdjustment(c echo.Context, req *createBudgetAdjustmentRequest) (*model.BudgetAdjustment, error) {
	ba, err := h.budget.Create(c.Request().Context(), req.BudgetAdjustment)
	if err != nil {
		return nil, createBudgetAdjustmentPolicy.Translate(c, err)
	}
	return ba, nil
}

type updateBudgetAdjustmentRequest struct {
	AdjustmentID string `param:"id" json:"-"`
	model.BudgetAdjustment
}

func (r *updateBudgetAdjustmentRequest) RequiredBodyMessage() string {
	return "A budget adjustment must be specified."
}

func (r *updateBudgetAdjustmentRequest) Validate() error {
	if err := requireValue(r.AdjustmentID, budgetAdjustmentIDRequired); err != nil {
		return err
	}
	return validation.Struct(r.BudgetAdjustment)
}

func (h *BudgetAdjustmentHandler) UpdateBudgetAdjustment(c echo.Context, req *updateBudgetAdjustmentRequest) (*model.BudgetAdjustment, error) {
	ba, err := h.budget.Update(c.Request().Context(), req.AdjustmentID, req.BudgetAdjustment)
	if err != nil {
		return nil, updateBudgetAdjustmentPolicy.Translate(c, err)
	}
	return ba, nil
}

type budgetAdjustmentIDRequest struct {
	ID string `param:"id"`
}

func (r *budgetAdjustmentIDRequest) Validate() error {
	return requireValue(r.ID, budgetAdjustmentIDRequired)
}

func (h *BudgetAdjustmentHandler) GetBudgetAdjustment(c echo.Context, req *budgetAdjustmentIDRequest) (*model.BudgetAdjustment, error) {
	ba, err := h.budget.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, getBudgetAdjustmentPolicy.Translate(c, err)
	}
	return ba, nil
}

func (h *BudgetAdjustmentHandler) GetPendingApprovalDetail(c echo.Context, req *budgetAdjustmentIDRequest) (*model.BudgetAdjustment, error) {
	ba, err := h.budget.GetPendingApprovalDetail(c.Request().Context(), req.ID)
	if err != nil {
		return nil, getBudgetAdjustmentPolicy.Translate(c, err)
	}
	return ba, nil
}

type approveBudgetAdjustmentRequest struct {
	ID string `param:"id" json:"-"`
	model.BudgetAdjustmentApproval
}

func (r *approveBudgetAdjustmentRequest) RequiredBodyMessage() string {
	return "A budget adjustment approval must be specified."
}

func (r *approveBudgetAdjustmentRequest) Validate() error {
	return requireValue(r.ID, budgetAdjustmentIDRequired)
}

func (h *BudgetAdjustmentHandler) ApproveBudgetAdjustment(c echo.Context, req *approveBudgetAdjustmentRequest) (*model.BudgetAdjustmentApproval, error) {
	approval, err := h.budget.Approve(c.Request().Context(), req.ID, req.BudgetAdjustmentApproval)
	if err != nil {
		return nil, approveBudgetAdjustmentPolicy.Translate(c, err)
	}
	return approval, nil
}

func (h *BudgetAdjustmentHandler) GetSummary(c echo.Context, _ *emptyRequest) ([]model.BudgetAdjustmentSummary, error) {
	summaries, err := h.budget.GetSummary(c.Request().Context())
	if err != nil {
		return nil, getBudgetAdjustmentSummaryPolicy.Translate(c, err)
	}
	return summaries, nil
}

func (h *BudgetAdjustmentHandler) GetPendingApprovalSummary(c echo.Context, _ *emptyRequest) ([]model.BudgetAdjustmentPendingApprovalSummary, error) {
	summaries, err := h.budget.GetPendingApprovalSummary(c.Request().Context())
	if err != nil {
		return nil, getPendingApprovalSummaryPolicy.Translate(c, err)
	}
	return summaries, nil
}

type createDraftRequest struct {
	model.DraftBudgetAdjustment
}

func (r *createDraftRequest) RequiredBodyMessage() string {
	return "A draft budget adjustment must be specified."
}

func (r *createDraftRequest) Validate() error {
	return nil
}

func (h *BudgetAdjustmentHandler) CreateDraft(c echo.Context, req *createDraftRequest) (*model.DraftBudgetAdjustment, error) {
	draft, err := h.drafts.Create(c.Request().Context(), req.DraftBudgetAdjustment)
	if err != nil {
		return nil, createDraftPolicy.Translate(c, err)
	}
	return draft, nil
}

type updateDraftRequest struct {
	DraftID string `param:"id" json:"-"`
	model.DraftBudgetAdjustment
}

func (r *updateDraftRequest) RequiredBodyMessage() string {
	return "A draft budget adjustment must be specified."
}

func (r *updateDraftRequest) Validate() error {
	return requireValue(r.DraftID, "id is required in body of request")
}

func (h *BudgetAdjustmentHandler) UpdateDraft(c echo.Context, req *updateDraftRequest) (*model.DraftBudgetAdjustment, error) {
	draft, err := h.drafts.Update(c.Request().Context(), req.DraftID, req.DraftBudgetAdjustment)
	if err != nil {
		return nil, updateDraftPolicy.Translate(c, err)
	}
	return draft, nil
}

type getDraftRequest struct {
	ID string `param:"id"`
}

func (r *getDraftRequest) Validate() error {
	return requireValue(r.ID, "id is required in body of request")
}

func (h *BudgetAdjustmentHandler) GetDraft(c echo.Context, req *getDraftRequest) (*model.DraftBudgetAdjustment, error) {
	draft, err := h.drafts.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, getDraftPolicy.Translate(c, err)
	}
	return draft, nil
}

type deleteDraftRequest struct {
	ID string `param:"id"`
}

func (r *deleteDraftRequest) Validate() error {
	return requireValue(r.ID, "A draft budget adjustment ID is required.")
}

func (h *BudgetAdjustmentHandler) DeleteDraft(c echo.Context, req *deleteDraftRequest) error {
	if err := h.drafts.Delete(c.Request().Context(), req.ID); err != nil {
		return deleteDraftPolicy.Translate(c, err)
	}
	return nil
}
