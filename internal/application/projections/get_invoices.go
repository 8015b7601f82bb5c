package projections

import (
	"context"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/listutil"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/invoice"
)

// InvoiceFilterKeys are the invoice list filters.
var InvoiceFilterKeys = []string{"status"}

// GetInvoiceListQuery carries query parameters.
type GetInvoiceListQuery struct {
	List listutil.ListParams
}

// GetInvoiceListResult carries the query result.
type GetInvoiceListResult struct {
	Invoices []invoice.Invoice
	Status   string
	Page     listutil.PageInfo
}

// GetInvoicesDeps holds dependencies for the invoice projections.
type GetInvoicesDeps struct {
	API    InvoiceReader
	Tokens api.Tokens
}

// QueryGetInvoiceList loads one page of invoices.
// PRE: query.List was parsed with InvoiceFilterKeys
// POST: the status filter is sent as status_filter when set
func QueryGetInvoiceList(ctx context.Context, query GetInvoiceListQuery, deps GetInvoicesDeps) (GetInvoiceListResult, error) {
	lp := query.List
	status := lp.Get("status")
	page, err := deps.API.ListInvoices(ctx, deps.Tokens, api.InvoiceQuery{Page: lp.Page, Size: lp.Size, Status: status})
	if err != nil {
		return GetInvoiceListResult{}, err
	}
	return GetInvoiceListResult{
		Invoices: page.Items,
		Status:   status,
		Page:     listutil.NewPageInfo(lp.Page, lp.Size, page.Count()).WithQuery(lp.Query()),
	}, nil
}

// GetInvoiceQuery carries query parameters.
type GetInvoiceQuery struct {
	InvoiceID int
}

// QueryGetInvoice loads one invoice with its items.
func QueryGetInvoice(ctx context.Context, query GetInvoiceQuery, deps GetInvoicesDeps) (invoice.Invoice, error) {
	return deps.API.GetInvoice(ctx, deps.Tokens, query.InvoiceID)
}
