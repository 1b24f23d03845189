package email

// Template names an embedded file under templates/.
type Template string

const (
	// TemplateApprovalRequest asks next approvers to review a budget adjustment.
	TemplateApprovalRequest Template = "approval_request"

	// TemplateApprovalComplete tells the initiator every approval is in.
	TemplateApprovalComplete Template = "approval_complete"
)
