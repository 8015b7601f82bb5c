package invoice

import (
	"errors"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/money"
)

// Invoice statuses
const (
	StatusDraft  = "draft"
	StatusIssued = "issued"
	StatusPaid   = "paid"
)

// Domain errors
var (
	ErrPeriodRequired  = errors.New("Select the invoice period")
	ErrPeriodOrder     = errors.New("Period start must be before period end")
	ErrLessonsRequired = errors.New("Select at least one lesson.")
)

// Item is one line of an invoice.
type Item struct {
	ID          int          `json:"id,omitempty"`
	LessonID    *int         `json:"lesson_id,omitempty"`
	Description string       `json:"description"`
	Amount      money.Amount `json:"amount"`
}

// Invoice is a coach's bill for a period of lessons.
type Invoice struct {
	ID                     int          `json:"id"`
	PeriodStart            string       `json:"period_start"`
	PeriodEnd              string       `json:"period_end"`
	Status                 string       `json:"status"`
	DueDate                *string      `json:"due_date"`
	TotalGross             money.Amount `json:"total_gross"`
	TotalClubReimbursement money.Amount `json:"total_club_reimbursement"`
	TotalNet               money.Amount `json:"total_net"`
	PDFURL                 *string      `json:"pdf_url"`
	Items                  []Item       `json:"items"`
}

// HasPDF reports whether a generated PDF is available.
func (i Invoice) HasPDF() bool {
	return i.PDFURL != nil && *i.PDFURL != ""
}

// PreparedLesson is a billable lesson proposed for an invoice.
type PreparedLesson struct {
	Lesson            lesson.Lesson `json:"lesson"`
	Amount            money.Amount  `json:"amount"`
	ClubReimbursement money.Amount  `json:"club_reimbursement"`
}

// Preparation is the result of /invoices/generate/prepare.
type Preparation struct {
	Lessons                []PreparedLesson `json:"lessons"`
	TotalGross             money.Amount     `json:"total_gross"`
	TotalClubReimbursement money.Amount     `json:"total_club_reimbursement"`
	TotalNet               money.Amount     `json:"total_net"`
}

// LessonIDs returns the ids of all proposed lessons.
func (p Preparation) LessonIDs() []int {
	ids := make([]int, 0, len(p.Lessons))
	for _, l := range p.Lessons {
		ids = append(ids, l.Lesson.ID)
	}
	return ids
}

// Period is the payload for /invoices/generate/prepare.
type Period struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

// Validate checks that both dates are set and ordered.
// PRE: dates are ISO-8601 (YYYY-MM-DD), which compare lexically
// POST: returns ErrPeriodRequired or ErrPeriodOrder on failure
func (p Period) Validate() error {
	if p.PeriodStart == "" || p.PeriodEnd == "" {
		return ErrPeriodRequired
	}
	if p.PeriodStart > p.PeriodEnd {
		return ErrPeriodOrder
	}
	return nil
}

// Confirmation is the payload for /invoices/generate/confirm.
type Confirmation struct {
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	LessonIDs   []int   `json:"lesson_ids"`
	DueDate     *string `json:"due_date"`
}

// Validate checks that at least one lesson is selected.
// PRE: none
// POST: returns ErrLessonsRequired when LessonIDs is empty
func (c Confirmation) Validate() error {
	if len(c.LessonIDs) == 0 {
		return ErrLessonsRequired
	}
	return nil
}
