package email

// PreviewData holds sample data for every template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateApprovalRequest: {
		"BudgetAdjustmentNumber": "B0001042",
		"Reason":                 "Move travel funds to supplies",
		"ApproverName":           "Dana Whitfield",
	},
	TemplateApprovalComplete: {
		"BudgetAdjustmentNumber": "B0001042",
		"Reason":                 "Move travel funds to supplies",
		"ApproverName":           "Dana Whitfield",
	},
}
