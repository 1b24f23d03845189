package email

import "fmt"

// BudgetAdjustment carries the template fields of budget adjustment emails.
type BudgetAdjustment struct {
	Number       string
	Reason       string
	ApproverName string
}

func (b BudgetAdjustment) data() map[string]string {
	return map[string]string{
		"BudgetAdjustmentNumber": b.Number,
		"Reason":                 b.Reason,
		"ApproverName":           b.ApproverName,
	}
}

// SendApprovalRequest asks the next approvers to review an adjustment.
func (c *Client) SendApprovalRequest(to []string, ba BudgetAdjustment) error {
	return c.SendEmail(
		to,
		fmt.Sprintf("Budget adjustment %s is waiting for your approval", ba.Number),
		TemplateApprovalRequest,
		ba.data(),
	)
}

// SendApprovalComplete tells the initiator the adjustment is fully approved.
func (c *Client) SendApprovalComplete(to []string, ba BudgetAdjustment) error {
	return c.SendEmail(
		to,
		fmt.Sprintf("Budget adjustment %s has been approved", ba.Number),
		TemplateApprovalComplete,
		ba.data(),
	)
}
