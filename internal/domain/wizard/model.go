package wizard

import (
	"errors"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/invoice"
)

// ErrNoState is returned when the select step is reached without a prepared period.
var ErrNoState = errors.New("invoice wizard has no prepared period")

// State carries the invoice wizard between the period and select steps.
type State struct {
	PeriodStart string              `json:"periodStart"`
	PeriodEnd   string              `json:"periodEnd"`
	Data        invoice.Preparation `json:"data"`
}

// Confirmation builds the confirm payload for the selected lessons.
// Ids not offered by the preparation are dropped.
// PRE: state was produced by the period step
// POST: LessonIDs is a subset of Data's lesson ids, in submission order
func (s State) Confirmation(selected []int, dueDate *string) invoice.Confirmation {
	offered := make(map[int]bool, len(s.Data.Lessons))
	for _, id := range s.Data.LessonIDs() {
		offered[id] = true
	}
	ids := make([]int, 0, len(selected))
	for _, id := range selected {
		if offered[id] {
			ids = append(ids, id)
		}
	}
	return invoice.Confirmation{
		PeriodStart: s.PeriodStart,
		PeriodEnd:   s.PeriodEnd,
		LessonIDs:   ids,
		DueDate:     dueDate,
	}
}
