package router

import (
	"net/http"

	"github.com/deppfellow/colleague-finance-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// eedmVersions lists the served versions of each integration resource; the
// first one is the default.
var eedmVersions = map[string][]string{
	"accounting-string-components":          {"8"},
	"accounting-string-component-values":    {"15", "11", "8"},
	"accounting-string-formats":             {"8"},
	"accounting-string-subcomponents":       {"13"},
	"accounting-string-subcomponent-values": {"13"},
	"accounts-payable-invoices":             {"11.2.0"},
	"accounts-payable-sources":              {"8"},
	"buyers":                                {"10"},
	"commodity-codes":                       {"8"},
	"commodity-unit-types":                  {"8"},
	"financial-document-types":              {"11"},
	"fiscal-periods":                        {"11"},
	"fiscal-years":                          {"11"},
	"fixed-asset-categories":                {"12"},
	"fixed-asset-designations":              {"1.0.0"},
	"fixed-asset-types":                     {"12"},
	"fixed-assets":                          {"12"},
	"free-on-board-types":                   {"10"},
	"general-ledger-transactions":           {"12.1.0", "8"},
	"grants":                                {"11"},
	"ledger-activities":                     {"11.1.0"},
	"payment-transactions":                  {"12.1.0"},
	"procurement-receipts":                  {"13.1.0"},
	"purchase-classifications":              {"10"},
	"purchase-orders":                       {"11.2.0"},
	"requisitions":                          {"11.1.0"},
	"ship-to-destinations":                  {"10"},
	"shipping-methods":                      {"11"},
	"vendor-address-usages":                 {"1.0.0"},
	"vendor-classifications":                {"8"},
	"vendor-contacts":                       {"1.0.0"},
	"vendor-hold-reasons":                   {"8"},
	"vendor-payment-terms":                  {"8"},
	"vendors":                               {"11.1.0", "8"},
}

// registerEEDMRoutes adds list and get-by-GUID for every integration
// resource, each version served by the same handler, plus the
// not-supported mutation routes.
func registerEEDMRoutes(g *echo.Group, d *Dispatcher, h *handler.Handlers) {
	for _, resource := range h.EEDM {
		name := resource.Name()
		versions, ok := eedmVersions[name]
		if !ok {
			panic("router: no versions for integration resource " + name)
		}

		list, get := resource.List(), resource.Get()
		for i, raw := range versions {
			v := Integration(raw)
			if i == 0 {
				v = v.Default()
			}
			d.GET("/"+name, v, list)
			d.GET("/"+name+"/:id", v, get)
		}

		registerNotSupported(g, "/"+name)
	}

	funds := handler.Handle(h.AccountFunds.Handler, h.AccountFunds.GetAccountFundsAvailable, http.StatusOK)
	d.GET("/account-funds-available", Integration("8").Default(), funds)
	registerNotSupported(g, "/account-funds-available")

	accounting := handler.Handle(h.Accounting.Handler, h.Accounting.GetAccountingString, http.StatusOK)
	d.GET("/accounting-strings", Integration("7").Default(), accounting)
	d.GET("/accounting-strings/:id", Integration("7").Default(), handler.NotSupported)
	registerNotSupported(g, "/accounting-strings")
}

func registerNotSupported(g *echo.Group, path string) {
	g.POST(path, handler.NotSupported)
	g.PUT(path+"/:id", handler.NotSupported)
	g.DELETE(path+"/:id", handler.NotSupported)
}
