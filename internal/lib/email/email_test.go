package email

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestTemplatesRenderPreviewData(t *testing.T) {
	t.Parallel()

	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			t.Parallel()

			html, err := Render(name, data)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(html, data["BudgetAdjustmentNumber"]) {
				t.Fatalf("rendered html is missing the adjustment number:\n%s", html)
			}
		})
	}
}

func TestRenderEscapesInput(t *testing.T) {
	t.Parallel()

	html, err := Render(TemplateApprovalRequest, map[string]string{
		"BudgetAdjustmentNumber": "B1",
		"Reason":                 "<script>alert(1)</script>",
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("reason was not escaped")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	t.Parallel()

	if _, err := Render("missing", nil); err == nil {
		t.Fatal("expected an error for an unknown template")
	}
}

func TestSendEmailRequiresRecipients(t *testing.T) {
	t.Parallel()

	logger := zerolog.Nop()
	c := &Client{from: "finance@example.edu", logger: &logger}
	if err := c.SendApprovalRequest(nil, BudgetAdjustment{Number: "B1"}); err == nil {
		t.Fatal("expected an error without recipients")
	}
}
