package orchestrators

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/email"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/coach"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/invoice"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/wizard"
)

// InvoiceAPI is the slice of the API client used by the invoice wizard.
type InvoiceAPI interface {
	PrepareInvoice(ctx context.Context, tokens api.Tokens, p invoice.Period) (invoice.Preparation, error)
	ConfirmInvoice(ctx context.Context, tokens api.Tokens, c invoice.Confirmation) (invoice.Invoice, error)
	GetMyCoach(ctx context.Context, tokens api.Tokens) (coach.Coach, error)
}

// WizardStateStore keeps the wizard between its two steps.
type WizardStateStore interface {
	Load(ctx context.Context) (wizard.State, error)
	Save(ctx context.Context, st wizard.State) error
	Clear(ctx context.Context)
}

// InvoiceWizardDeps holds dependencies for the invoice wizard.
type InvoiceWizardDeps struct {
	API             InvoiceAPI
	Tokens          api.Tokens
	State           WizardStateStore
	Mailer          email.Sender // optional
	FrontendBaseURL string
}

// ExecutePrepareInvoice asks the API which lessons a period would bill and
// keeps the answer for the select step.
// PRE: none
// POST: on success the wizard state holds the period and the preparation
func ExecutePrepareInvoice(ctx context.Context, period invoice.Period, deps InvoiceWizardDeps) (wizard.State, error) {
	period.PeriodStart = strings.TrimSpace(period.PeriodStart)
	period.PeriodEnd = strings.TrimSpace(period.PeriodEnd)
	if err := period.Validate(); err != nil {
		return wizard.State{}, invalid(err)
	}

	prep, err := deps.API.PrepareInvoice(ctx, deps.Tokens, period)
	if err != nil {
		return wizard.State{}, err
	}
	st := wizard.State{PeriodStart: period.PeriodStart, PeriodEnd: period.PeriodEnd, Data: prep}
	if err := deps.State.Save(ctx, st); err != nil {
		return wizard.State{}, err
	}
	slog.Info("invoice_wizard", "event", "prepared", "period_start", st.PeriodStart, "period_end", st.PeriodEnd, "lessons", len(prep.Lessons))
	return st, nil
}

// ConfirmInvoiceInput carries the select step submission.
type ConfirmInvoiceInput struct {
	LessonIDs []int
	DueDate   *string
}

// ExecuteConfirmInvoice issues the invoice for the selected lessons.
// PRE: ExecutePrepareInvoice succeeded for this session
// POST: returns wizard.ErrNoState without a prepared period; on success the
// wizard state is cleared and the coach is notified (best effort)
func ExecuteConfirmInvoice(ctx context.Context, input ConfirmInvoiceInput, deps InvoiceWizardDeps) (invoice.Invoice, error) {
	st, err := deps.State.Load(ctx)
	if err != nil {
		return invoice.Invoice{}, wizard.ErrNoState
	}
	conf := st.Confirmation(input.LessonIDs, input.DueDate)
	if err := conf.Validate(); err != nil {
		return invoice.Invoice{}, invalid(err)
	}

	inv, err := deps.API.ConfirmInvoice(ctx, deps.Tokens, conf)
	if err != nil {
		return invoice.Invoice{}, err
	}
	deps.State.Clear(ctx)
	slog.Info("invoice_wizard", "event", "confirmed", "invoice_id", inv.ID, "lessons", len(conf.LessonIDs))

	notifyInvoiceReady(ctx, inv, deps)
	return inv, nil
}

var invoiceReadyTmpl = template.Must(template.New("invoice_ready").Parse(
	`<p>Hi {{.Name}},</p>
<p>Invoice #{{.Invoice.ID}} for {{.Invoice.PeriodStart}} to {{.Invoice.PeriodEnd}} is ready.</p>
<p>Net total: {{.Invoice.TotalNet.GBP}}</p>
<p><a href="{{.Link}}">View the invoice</a></p>`))

// InvoiceReadySubject is the subject line of the invoice notification.
func InvoiceReadySubject(id int) string {
	return fmt.Sprintf("Invoice #%d is ready", id)
}

func notifyInvoiceReady(ctx context.Context, inv invoice.Invoice, deps InvoiceWizardDeps) {
	if deps.Mailer == nil {
		return
	}
	profile, err := deps.API.GetMyCoach(ctx, deps.Tokens)
	if err != nil || profile.Email == "" {
		slog.Warn("invoice_wizard", "event", "notify_skipped", "invoice_id", inv.ID, "error", err)
		return
	}

	var body bytes.Buffer
	data := struct {
		Name    string
		Invoice invoice.Invoice
		Link    string
	}{profile.FullName, inv, fmt.Sprintf("%s/invoices/%d", strings.TrimRight(deps.FrontendBaseURL, "/"), inv.ID)}
	if err := invoiceReadyTmpl.Execute(&body, data); err != nil {
		slog.Error("invoice_wizard", "event", "notify_render_failed", "invoice_id", inv.ID, "error", err)
		return
	}

	_, err = deps.Mailer.Send(ctx, email.Message{
		To:      []string{profile.Email},
		Subject: InvoiceReadySubject(inv.ID),
		HTML:    body.String(),
	})
	if err != nil {
		slog.Warn("invoice_wizard", "event", "notify_failed", "invoice_id", inv.ID, "error", err)
	}
}
