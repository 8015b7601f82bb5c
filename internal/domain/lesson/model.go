package lesson

import (
	"errors"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/money"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
)

// Lesson types
const (
	TypePrivate = "private"
	TypeGroup   = "group"
	TypeClub    = "club"
)

// Lesson statuses
const (
	StatusDraft    = "draft"
	StatusSet      = "set"
	StatusExecuted = "executed"
	StatusInvoiced = "invoiced"
)

// Payment statuses
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Option lists for the lesson form and filters.
var (
	Types            = []string{TypePrivate, TypeGroup, TypeClub}
	Statuses         = []string{StatusDraft, StatusSet, StatusExecuted, StatusInvoiced}
	PaymentStatuses  = []string{PaymentPending, PaymentPaid}
	statusBadgeClass = map[string]string{
		StatusDraft:    "status-draft",
		StatusSet:      "status-set",
		StatusExecuted: "status-executed",
		StatusInvoiced: "status-invoiced",
	}
)

// ErrPlayersRequired is returned when a non-club lesson has no players.
var ErrPlayersRequired = errors.New("Select at least one player for private lessons.")

// Stroke is a tennis stroke that a lesson can focus on.
type Stroke struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Lesson is a scheduled or delivered coaching session.
type Lesson struct {
	ID                      int           `json:"id"`
	CoachID                 int           `json:"coach_id"`
	ClubID                  *int          `json:"club_id"`
	Date                    string        `json:"date"`
	StartTime               string        `json:"start_time"`
	EndTime                 string        `json:"end_time"`
	TotalAmount             money.Amount  `json:"total_amount"`
	ClubReimbursementAmount *money.Amount `json:"club_reimbursement_amount"`
	Type                    string        `json:"type"`
	Status                  string        `json:"status"`
	PaymentStatus           string        `json:"payment_status"`
	Notes                   *string       `json:"notes"`
	Players                 []player.Ref  `json:"players"`
	Strokes                 []Stroke      `json:"strokes"`
	Courts                  []club.Court  `json:"courts"`
}

// PlayerNames joins the names of the lesson's players.
func (l Lesson) PlayerNames() string {
	return player.Names(l.Players)
}

// Start returns the start time as HH:MM.
func (l Lesson) Start() string {
	return ShortTime(l.StartTime)
}

// End returns the end time as HH:MM.
func (l Lesson) End() string {
	return ShortTime(l.EndTime)
}

// StatusClass returns the CSS badge class for the lesson status.
func (l Lesson) StatusClass() string {
	if c, ok := statusBadgeClass[l.Status]; ok {
		return c
	}
	return statusBadgeClass[StatusDraft]
}

// PlayerIDs returns the ids of the lesson's players.
func (l Lesson) PlayerIDs() []int {
	ids := make([]int, 0, len(l.Players))
	for _, p := range l.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// CourtIDs returns the ids of the booked courts.
func (l Lesson) CourtIDs() []int {
	ids := make([]int, 0, len(l.Courts))
	for _, c := range l.Courts {
		ids = append(ids, c.ID)
	}
	return ids
}

// StrokeCodes returns the codes of the practised strokes.
func (l Lesson) StrokeCodes() []string {
	codes := make([]string, 0, len(l.Strokes))
	for _, s := range l.Strokes {
		codes = append(codes, s.Code)
	}
	return codes
}

// ShortTime trims an API time ("09:30:00") to HH:MM.
func ShortTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// RequiresPlayers reports whether a lesson type needs at least one player.
func RequiresPlayers(lessonType string) bool {
	return lessonType != TypeClub
}

// Input is the payload for creating or updating a lesson.
type Input struct {
	CoachID                 int      `json:"coach_id"`
	Date                    string   `json:"date"`
	StartTime               string   `json:"start_time"`
	EndTime                 string   `json:"end_time"`
	TotalAmount             float64  `json:"total_amount"`
	ClubReimbursementAmount *float64 `json:"club_reimbursement_amount"`
	Type                    string   `json:"type"`
	Status                  string   `json:"status"`
	PaymentStatus           string   `json:"payment_status"`
	Notes                   *string  `json:"notes"`
	PlayerIDs               []int    `json:"player_ids"`
	StrokeCodes             []string `json:"stroke_codes"`
	ClubID                  *int     `json:"club_id"`
	CourtIDs                []int    `json:"court_ids"`
}

// Validate checks the lesson payload.
// PRE: none
// POST: returns ErrPlayersRequired when a non-club lesson has no players
func (in Input) Validate() error {
	if RequiresPlayers(in.Type) && len(in.PlayerIDs) == 0 {
		return ErrPlayersRequired
	}
	return nil
}
