package api

import (
	"context"
	"net/http"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
)

// LessonQuery filters the lesson list. Empty fields are not sent.
type LessonQuery struct {
	Page          int
	Size          int
	DateFrom      string
	DateTo        string
	Status        string
	PaymentStatus string
}

func (c *Client) ListLessons(ctx context.Context, tokens Tokens, lq LessonQuery) (Page[lesson.Lesson], error) {
	q := pageQuery(lq.Page, lq.Size)
	setIf(q, "date_from", lq.DateFrom)
	setIf(q, "date_to", lq.DateTo)
	setIf(q, "status", lq.Status)
	setIf(q, "payment_status", lq.PaymentStatus)
	return get[Page[lesson.Lesson]](ctx, c, tokens, "/lessons", q)
}

func (c *Client) GetLesson(ctx context.Context, tokens Tokens, id int) (lesson.Lesson, error) {
	return get[lesson.Lesson](ctx, c, tokens, idPath("/lessons", id), nil)
}

func (c *Client) CreateLesson(ctx context.Context, tokens Tokens, in lesson.Input) (lesson.Lesson, error) {
	return send[lesson.Lesson](ctx, c, tokens, http.MethodPost, "/lessons", in)
}

func (c *Client) UpdateLesson(ctx context.Context, tokens Tokens, id int, in lesson.Input) (lesson.Lesson, error) {
	return send[lesson.Lesson](ctx, c, tokens, http.MethodPatch, idPath("/lessons", id), in)
}

func (c *Client) ListStrokes(ctx context.Context, tokens Tokens, page, size int) (Page[lesson.Stroke], error) {
	return get[Page[lesson.Stroke]](ctx, c, tokens, "/strokes", pageQuery(page, size))
}
