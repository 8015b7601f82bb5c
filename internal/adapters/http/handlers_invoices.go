package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/formutil"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/listutil"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/orchestrators"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/projections"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/invoice"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/wizard"
)

var invoiceStatuses = []string{invoice.StatusDraft, invoice.StatusIssued, invoice.StatusPaid}

type invoiceListData struct {
	projections.GetInvoiceListResult
	Statuses []string
}

// handleInvoices handles GET /invoices
func (s *Server) handleInvoices(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryGetInvoiceList(r.Context(),
		projections.GetInvoiceListQuery{List: listutil.ParseListParams(r.URL.Query(), projections.InvoiceFilterKeys)},
		projections.GetInvoicesDeps{API: s.api, Tokens: s.tokens(w, r)},
	)
	if err != nil {
		s.loadFailed(w, r, "invoices", err, "Unable to load invoices")
		return
	}
	s.render(w, r, http.StatusOK, "invoices_list.html", page{Title: "Invoices", Nav: "invoices", Data: invoiceListData{res, invoiceStatuses}})
}

// handleInvoice handles GET /invoices/{id}
func (s *Server) handleInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	inv, err := projections.QueryGetInvoice(r.Context(), projections.GetInvoiceQuery{InvoiceID: id}, projections.GetInvoicesDeps{API: s.api, Tokens: s.tokens(w, r)})
	if err != nil {
		s.loadFailed(w, r, "invoice", err, "Unable to load invoice")
		return
	}
	s.render(w, r, http.StatusOK, "invoices_detail.html", page{Title: fmt.Sprintf("Invoice #%d", inv.ID), Nav: "invoices", Data: inv})
}

// handleInvoicePDF handles GET /invoices/{id}/pdf. PDFs served by the API are
// downloaded with the session's credentials and streamed back; any other
// pdf_url is a plain link.
func (s *Server) handleInvoicePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	tokens := s.tokens(w, r)
	inv, err := projections.QueryGetInvoice(r.Context(), projections.GetInvoiceQuery{InvoiceID: id}, projections.GetInvoicesDeps{API: s.api, Tokens: tokens})
	if err != nil {
		s.loadFailed(w, r, "invoice", err, "Unable to load invoice")
		return
	}
	if !inv.HasPDF() {
		http.NotFound(w, r)
		return
	}
	path, internal := s.api.APIPath(*inv.PDFURL)
	if !internal {
		http.Redirect(w, r, *inv.PDFURL, http.StatusFound)
		return
	}
	doc, err := s.api.Download(r.Context(), tokens, path)
	if err != nil {
		s.loadFailed(w, r, "invoice_pdf", err, "Unable to download the PDF")
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Raw)))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="invoice-%d.pdf"`, inv.ID))
	w.Write(doc.Raw)
}

func (s *Server) wizardDeps(w http.ResponseWriter, r *http.Request) orchestrators.InvoiceWizardDeps {
	return orchestrators.InvoiceWizardDeps{
		API:             s.api,
		Tokens:          s.tokens(w, r),
		State:           s.wizardState(w, r),
		Mailer:          s.mailer,
		FrontendBaseURL: s.baseURL,
	}
}

// handleWizardPeriodForm handles GET /invoices/wizard/period, prefilled with
// the period of a wizard in progress.
func (s *Server) handleWizardPeriodForm(w http.ResponseWriter, r *http.Request) {
	var period invoice.Period
	if st, err := s.wizardState(w, r).Load(r.Context()); err == nil {
		period = invoice.Period{PeriodStart: st.PeriodStart, PeriodEnd: st.PeriodEnd}
	}
	s.render(w, r, http.StatusOK, "wizard_period.html", page{Title: "New invoice", Nav: "invoices", Data: period})
}

// handleWizardPeriod handles POST /invoices/wizard/period
func (s *Server) handleWizardPeriod(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	period := invoice.Period{
		PeriodStart: r.PostFormValue("period_start"),
		PeriodEnd:   r.PostFormValue("period_end"),
	}
	if _, err := orchestrators.ExecutePrepareInvoice(r.Context(), period, s.wizardDeps(w, r)); err != nil {
		if s.failed(w, r, "prepare_invoice", err) {
			return
		}
		p := page{Title: "New invoice", Nav: "invoices", Data: period}
		s.render(w, r, http.StatusUnprocessableEntity, "wizard_period.html", p.withAlert(alertDanger, message(err, "Unable to prepare invoice")))
		return
	}
	http.Redirect(w, r, "/invoices/wizard/select", http.StatusSeeOther)
}

// wizardSelectData is the data of the lesson selection step.
type wizardSelectData struct {
	State    wizard.State
	Selected []int // nil selects every lesson
	DueDate  string
}

// Checked reports whether the lesson's checkbox starts ticked.
func (d wizardSelectData) Checked(id int) bool {
	return d.Selected == nil || hasInt(d.Selected, id)
}

// handleWizardSelectForm handles GET /invoices/wizard/select
func (s *Server) handleWizardSelectForm(w http.ResponseWriter, r *http.Request) {
	st, err := s.wizardState(w, r).Load(r.Context())
	if err != nil {
		http.Redirect(w, r, "/invoices/wizard/period", http.StatusSeeOther)
		return
	}
	p := page{Title: "Select lessons", Nav: "invoices", Data: wizardSelectData{State: st}}
	if len(st.Data.Lessons) == 0 {
		p = p.withAlert(alertInfo, "No lessons to invoice in this period.")
	}
	s.render(w, r, http.StatusOK, "wizard_select.html", p)
}

// handleWizardSelect handles POST /invoices/wizard/select
func (s *Server) handleWizardSelect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	deps := s.wizardDeps(w, r)
	ids, err := formutil.IntList(r.PostForm, "lesson_ids", "Lessons")
	dueDate := formutil.OptionalString(r.PostForm, "due_date")
	if err == nil {
		var inv invoice.Invoice
		inv, err = orchestrators.ExecuteConfirmInvoice(r.Context(), orchestrators.ConfirmInvoiceInput{LessonIDs: ids, DueDate: dueDate}, deps)
		if err == nil {
			http.Redirect(w, r, fmt.Sprintf("/invoices/%d", inv.ID), http.StatusSeeOther)
			return
		}
	}
	if errors.Is(err, wizard.ErrNoState) {
		http.Redirect(w, r, "/invoices/wizard/period", http.StatusSeeOther)
		return
	}
	if s.failed(w, r, "confirm_invoice", err) {
		return
	}

	st, loadErr := deps.State.Load(r.Context())
	if loadErr != nil {
		http.Redirect(w, r, "/invoices/wizard/period", http.StatusSeeOther)
		return
	}
	if ids == nil {
		ids = []int{}
	}
	data := wizardSelectData{State: st, Selected: ids, DueDate: deref(dueDate)}
	kind := alertDanger
	if errors.Is(err, invoice.ErrLessonsRequired) {
		kind = alertWarning
	}
	p := page{Title: "Select lessons", Nav: "invoices", Data: data}
	s.render(w, r, http.StatusUnprocessableEntity, "wizard_select.html", p.withAlert(kind, message(err, "Unable to create invoice")))
}
