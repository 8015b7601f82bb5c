package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/invoice"
)

// InvoiceQuery filters the invoice list.
type InvoiceQuery struct {
	Page   int
	Size   int
	Status string
}

func (c *Client) ListInvoices(ctx context.Context, tokens Tokens, iq InvoiceQuery) (Page[invoice.Invoice], error) {
	q := pageQuery(iq.Page, iq.Size)
	setIf(q, "status_filter", iq.Status)
	return get[Page[invoice.Invoice]](ctx, c, tokens, "/invoices", q)
}

func (c *Client) GetInvoice(ctx context.Context, tokens Tokens, id int) (invoice.Invoice, error) {
	return get[invoice.Invoice](ctx, c, tokens, idPath("/invoices", id), nil)
}

func (c *Client) PrepareInvoice(ctx context.Context, tokens Tokens, p invoice.Period) (invoice.Preparation, error) {
	return send[invoice.Preparation](ctx, c, tokens, http.MethodPost, "/invoices/generate/prepare", p)
}

func (c *Client) ConfirmInvoice(ctx context.Context, tokens Tokens, conf invoice.Confirmation) (invoice.Invoice, error) {
	return send[invoice.Invoice](ctx, c, tokens, http.MethodPost, "/invoices/generate/confirm", conf)
}

// APIPath returns the path of rawURL relative to the API base URL, and false
// when rawURL points elsewhere.
func (c *Client) APIPath(rawURL string) (string, bool) {
	if rest, ok := strings.CutPrefix(rawURL, c.baseURL); ok && (rest == "" || strings.HasPrefix(rest, "/")) {
		return rest, true
	}
	return "", false
}

// Download fetches a binary document (invoice PDF, CSV export) through the
// authenticated client.
// PRE: path is relative to the API base URL
// POST: returns the blob result; non-blob content is an error
func (c *Client) Download(ctx context.Context, tokens Tokens, path string) (Result, error) {
	res, err := c.Request(ctx, tokens, http.MethodGet, path, nil, RequestOptions{})
	if err != nil {
		return Result{}, err
	}
	if res.Kind != KindBlob {
		return Result{}, fmt.Errorf("download %s: unexpected content type %q", path, res.ContentType)
	}
	return res, nil
}
