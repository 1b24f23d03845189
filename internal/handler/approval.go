package handler

import (
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/deppfellow/colleague-finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// ApprovalHandler serves approver and initiator lookups and the document
// approval workflow.
type ApprovalHandler struct {
	Handler
	approvers  *service.ApproverService
	initiators *service.InitiatorService
	approvals  *service.DocumentApprovalService
}

func NewApprovalHandler(
	s *server.Server,
	approvers *service.ApproverService,
	initiators *service.InitiatorService,
	approvals *service.DocumentApprovalService,
) *ApprovalHandler {
	return &ApprovalHandler{
		Handler:    NewHandler(s),
		approvers:  approvers,
		initiators: initiators,
		approvals:  approvals,
	}
}

const keywordRequired = "query keyword is required to query."

var (
	validateNextApproverPolicy = newPolicy("Unable to validate a next approver.",
		onPermission("Insufficient permissions to validate the next approver."))
	searchApproverPolicy = newPolicy("Unable to search approver",
		onInvalidArgument("Invalid argument."),
		onPermission("Insufficient permissions to get the approver info."),
		ruleRecordNotFound)
	searchInitiatorPolicy = newPolicy("Unable to search initiator",
		onInvalidArgument("Invalid argument."),
		onPermission("Insufficient permissions to get the initiator info."),
		ruleRecordNotFound,
		ruleSessionExpired)

	getDocumentApprovalPolicy = newPolicy("Unable to get the document approval.",
		onPermission("Insufficient permissions to get the document approval."),
		onMissingArgument("Unable to get the document approval."),
		onSessionExpired("Unable to get the document approval."))
	updateDocumentApprovalPolicy = newPolicy("Unable to update a document approval.",
		onPermission("Insufficient permissions to update document approvals."),
		onMissingArgument("Invalid argument to update a document approval."),
		onSessionExpired("Unable to update a document approval."))
	queryApprovedDocumentsPolicy = newPolicy("Unable to get approved documents.",
		onPermission("Insufficient permissions to get the approved documents."),
		onMissingArgument("Unable to get approved documents."),
		onSessionExpired("Unable to get approved documents."))
)

type nextApproverRequest struct {
	ID string `param:"id"`
}

func (r *nextApproverRequest) Validate() error {
	return nil
}

func (h *ApprovalHandler) ValidateNextApprover(c echo.Context, req *nextApproverRequest) (*model.NextApproverValidationResponse, error) {
	resp, err := h.approvers.ValidateNextApprover(c.Request().Context(), req.ID)
	if err != nil {
		return nil, validateNextApproverPolicy.Translate(c, err)
	}
	return resp, nil
}

type keywordPathRequest struct {
	Keyword string `param:"keyword"`
}

func (r *keywordPathRequest) Validate() error {
	return requireValue(r.Keyword, keywordRequired)
}

type keywordBodyRequest struct {
	model.KeywordSearchCriteria
}

func (r *keywordBodyRequest) RequiredBodyMessage() string {
	return keywordRequired
}

func (r *keywordBodyRequest) Validate() error {
	return requireValue(r.Keyword, keywordRequired)
}

func (h *ApprovalHandler) SearchApprovers(c echo.Context, req *keywordPathRequest) ([]model.NextApprover, error) {
	return h.searchApprovers(c, req.Keyword)
}

func (h *ApprovalHandler) QuerySearchApprovers(c echo.Context, req *keywordBodyRequest) ([]model.NextApprover, error) {
	return h.searchApprovers(c, req.Keyword)
}

func (h *ApprovalHandler) searchApprovers(c echo.Context, keyword string) ([]model.NextApprover, error) {
	approvers, err := h.approvers.Search(c.Request().Context(), keyword)
	if err != nil {
		return nil, searchApproverPolicy.Translate(c, err)
	}
	return approvers, nil
}

func (h *ApprovalHandler) SearchInitiators(c echo.Context, req *keywordPathRequest) ([]model.Initiator, error) {
	return h.searchInitiators(c, req.Keyword)
}

func (h *ApprovalHandler) QuerySearchInitiators(c echo.Context, req *keywordBodyRequest) ([]model.Initiator, error) {
	return h.searchInitiators(c, req.Keyword)
}

func (h *ApprovalHandler) searchInitiators(c echo.Context, keyword string) ([]model.Initiator, error) {
	initiators, err := h.initiators.Search(c.Request().Context(), keyword)
	if err != nil {
		return nil, searchInitiatorPolicy.Translate(c, err)
	}
	return initiators, nil
}

func (h *ApprovalHandler) GetDocumentApproval(c echo.Context, _ *emptyRequest) (*model.DocumentApproval, error) {
	approval, err := h.approvals.Get(c.Request().Context())
	if err != nil {
		return nil, getDocumentApprovalPolicy.Translate(c, err)
	}
	return approval, nil
}

type updateDocumentApprovalRequest struct {
	model.DocumentApprovalRequest
}

func (r *updateDocumentApprovalRequest) RequiredBodyMessage() string {
	return "Request body cannot be null."
}

func (r *updateDocumentApprovalRequest) Validate() error {
	if len(r.ApprovalDocumentRequests) == 0 {
		return badRequest("Request body must have documents to approve.")
	}
	return nil
}

func (h *ApprovalHandler) UpdateDocumentApproval(c echo.Context, req *updateDocumentApprovalRequest) (*model.DocumentApprovalResponse, error) {
	resp, err := h.approvals.Update(c.Request().Context(), req.DocumentApprovalRequest)
	if err != nil {
		return nil, updateDocumentApprovalPolicy.Translate(c, err)
	}
	return resp, nil
}

type queryApprovedDocumentsRequest struct {
	model.ApprovedDocumentFilterCriteria
}

func (r *queryApprovedDocumentsRequest) Validate() error {
	return nil
}

func (h *ApprovalHandler) QueryApprovedDocuments(c echo.Context, req *queryApprovedDocumentsRequest) ([]model.ApprovedDocument, error) {
	documents, err := h.approvals.QueryApprovedDocuments(c.Request().Context(), req.ApprovedDocumentFilterCriteria)
	if err != nil {
		return nil, queryApprovedDocumentsPolicy.Translate(c, err)
	}
	return documents, nil
}
