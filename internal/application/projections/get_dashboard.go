package projections

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/invoice"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
)

// UpcomingLessonsSize is the number of lessons on the dashboard table.
const UpcomingLessonsSize = 5

// KPI is a dashboard counter that may be unavailable.
type KPI struct {
	Value int
	OK    bool
}

// String renders the counter, or "—" when its fetch failed.
func (k KPI) String() string {
	if !k.OK {
		return "—"
	}
	return strconv.Itoa(k.Value)
}

// DashboardAPI is the slice of the API client the dashboard reads.
type DashboardAPI interface {
	ListPlayers(ctx context.Context, tokens api.Tokens, pq api.PlayerQuery) (api.Page[player.Player], error)
	ListLessons(ctx context.Context, tokens api.Tokens, lq api.LessonQuery) (api.Page[lesson.Lesson], error)
	ListInvoices(ctx context.Context, tokens api.Tokens, iq api.InvoiceQuery) (api.Page[invoice.Invoice], error)
}

// GetDashboardQuery carries query parameters.
type GetDashboardQuery struct {
	Today string // YYYY-MM-DD, lessons from this date count as upcoming
}

// GetDashboardResult carries the query result.
type GetDashboardResult struct {
	Players        KPI
	Lessons        KPI
	IssuedInvoices KPI
	Upcoming       []lesson.Lesson
	UpcomingLoaded bool
}

// GetDashboardDeps holds dependencies for GetDashboard.
type GetDashboardDeps struct {
	API    DashboardAPI
	Tokens api.Tokens
}

// QueryGetDashboard loads the three dashboard counters concurrently.
// PRE: query.Today is set
// POST: each counter fails on its own and renders "—"; only
// api.ErrAuthenticationRequired fails the whole dashboard
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (GetDashboardResult, error) {
	var (
		res                    GetDashboardResult
		playersErr, lessonsErr error
		invoicesErr            error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := deps.API.ListPlayers(gctx, deps.Tokens, api.PlayerQuery{Page: 1, Size: 1})
		if playersErr = err; err == nil {
			res.Players = KPI{Value: page.Count(), OK: true}
		}
		return nil
	})
	g.Go(func() error {
		page, err := deps.API.ListLessons(gctx, deps.Tokens, api.LessonQuery{Page: 1, Size: UpcomingLessonsSize, DateFrom: query.Today})
		if lessonsErr = err; err == nil {
			res.Lessons = KPI{Value: page.Count(), OK: true}
			res.Upcoming = page.Items
			res.UpcomingLoaded = true
		}
		return nil
	})
	g.Go(func() error {
		page, err := deps.API.ListInvoices(gctx, deps.Tokens, api.InvoiceQuery{Page: 1, Size: 5, Status: invoice.StatusIssued})
		if invoicesErr = err; err == nil {
			res.IssuedInvoices = KPI{Value: page.Count(), OK: true}
		}
		return nil
	})
	_ = g.Wait()

	failures := []struct {
		kpi string
		err error
	}{{"players", playersErr}, {"lessons", lessonsErr}, {"invoices", invoicesErr}}
	for _, f := range failures {
		if f.err == nil {
			continue
		}
		if errors.Is(f.err, api.ErrAuthenticationRequired) {
			return GetDashboardResult{}, f.err
		}
		slog.Warn("dashboard", "event", "load_failed", "kpi", f.kpi, "error", f.err)
	}
	return res, nil
}
