package projections

import (
	"context"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/listutil"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
)

// LessonFilterKeys are the lesson list filters forwarded to the API.
var LessonFilterKeys = []string{"date_from", "date_to", "status", "payment_status"}

// GetLessonListQuery carries query parameters.
type GetLessonListQuery struct {
	List listutil.ListParams
}

// GetLessonListResult carries the query result.
type GetLessonListResult struct {
	Lessons []lesson.Lesson
	Filters listutil.FilterParams
	Page    listutil.PageInfo
}

// GetLessonListDeps holds dependencies for GetLessonList.
type GetLessonListDeps struct {
	API    LessonReader
	Tokens api.Tokens
}

// QueryGetLessonList loads one page of lessons matching the filters.
// PRE: query.List was parsed with LessonFilterKeys
// POST: blank filters are not sent
func QueryGetLessonList(ctx context.Context, query GetLessonListQuery, deps GetLessonListDeps) (GetLessonListResult, error) {
	lp := query.List
	page, err := deps.API.ListLessons(ctx, deps.Tokens, api.LessonQuery{
		Page:          lp.Page,
		Size:          lp.Size,
		DateFrom:      lp.Get("date_from"),
		DateTo:        lp.Get("date_to"),
		Status:        lp.Get("status"),
		PaymentStatus: lp.Get("payment_status"),
	})
	if err != nil {
		return GetLessonListResult{}, err
	}
	return GetLessonListResult{
		Lessons: page.Items,
		Filters: lp.FilterParams,
		Page:    listutil.NewPageInfo(lp.Page, lp.Size, page.Count()).WithQuery(lp.Query()),
	}, nil
}
