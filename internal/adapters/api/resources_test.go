package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/account"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/coach"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/invoice"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/session"
)

type seenRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
	Auth   string
}

// recordAPI answers every request with reply and records what it saw.
func recordAPI(t *testing.T, reply any) (*Client, *[]seenRequest) {
	t.Helper()
	var seen []seenRequest
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := seenRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Auth: r.Header.Get("Authorization")}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			json.Unmarshal(b, &s.Body)
		}
		seen = append(seen, s)
		writeJSON(w, 200, reply)
	}))
	return c, &seen
}

func TestPage_Count(t *testing.T) {
	total := 40
	assert.Equal(t, 40, Page[int]{Items: []int{1}, Total: &total}.Count())
	assert.Equal(t, 2, Page[int]{Items: []int{1, 2}}.Count())
}

func TestAuth_LoginIsUnauthenticated(t *testing.T) {
	c, seen := recordAPI(t, map[string]string{"access_token": "A", "refresh_token": "R"})
	tokens := &memTokens{pair: session.TokenPair{AccessToken: "stale"}}

	pair, err := c.Login(context.Background(), tokens, account.Credentials{Email: "c@x.io", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, session.TokenPair{AccessToken: "A", RefreshToken: "R"}, pair)
	require.Len(t, *seen, 1)
	got := (*seen)[0]
	assert.Equal(t, "/api/v1/auth/login", got.Path)
	assert.Empty(t, got.Auth)
	assert.Equal(t, "c@x.io", got.Body["email"])
}

func TestAuth_PasswordFlows(t *testing.T) {
	c, seen := recordAPI(t, map[string]any{})
	ctx := context.Background()

	require.NoError(t, c.ForgotPassword(ctx, &memTokens{}, "c@x.io"))
	require.NoError(t, c.ResetPassword(ctx, &memTokens{}, account.PasswordReset{Token: "t", NewPassword: "n"}))

	assert.Equal(t, "/api/v1/auth/password/forgot", (*seen)[0].Path)
	assert.Equal(t, "c@x.io", (*seen)[0].Body["email"])
	assert.Equal(t, "/api/v1/auth/password/reset", (*seen)[1].Path)
	assert.Equal(t, "n", (*seen)[1].Body["new_password"])
}

func TestClubs_Paths(t *testing.T) {
	c, seen := recordAPI(t, map[string]any{"id": 1, "name": "Riverside"})
	ctx := context.Background()
	tokens := &memTokens{pair: session.TokenPair{AccessToken: "A"}}

	name := "Court 2"
	active := false
	c.ListClubs(ctx, tokens, 1, 200)
	c.UpdateClub(ctx, tokens, 5, club.Input{Name: "Riverside"})
	c.CreateCourt(ctx, tokens, 5, club.CourtInput{Name: &name})
	c.UpdateCourt(ctx, tokens, 5, 8, club.CourtInput{Active: &active})
	c.DeleteCourt(ctx, tokens, 5, 8)

	want := []struct{ method, path string }{
		{"GET", "/api/v1/clubs"},
		{"PATCH", "/api/v1/clubs/5"},
		{"POST", "/api/v1/clubs/5/courts"},
		{"PATCH", "/api/v1/clubs/5/courts/8"},
		{"DELETE", "/api/v1/clubs/5/courts/8"},
	}
	require.Len(t, *seen, len(want))
	for i, w := range want {
		assert.Equal(t, w.method, (*seen)[i].Method)
		assert.Equal(t, w.path, (*seen)[i].Path)
		assert.Equal(t, "Bearer A", (*seen)[i].Auth)
	}
	assert.Equal(t, "page=1&size=200", (*seen)[0].Query)
	assert.Equal(t, map[string]any{"active": false}, (*seen)[3].Body, "patch sends only the toggled field")
}

func TestCoaches_UpdateMySendsNulls(t *testing.T) {
	c, seen := recordAPI(t, map[string]any{"id": 3})
	in := coach.SettingsInput{ClubIDs: []int{1}}

	_, err := c.UpdateMyCoach(context.Background(), &memTokens{}, in)
	require.NoError(t, err)
	body := (*seen)[0].Body
	assert.Contains(t, body, "phone")
	assert.Nil(t, body["phone"])
	assert.Equal(t, []any{float64(1)}, body["club_ids"])
}

func TestLessons_FilterQuery(t *testing.T) {
	c, seen := recordAPI(t, map[string]any{"items": []any{}})

	_, err := c.ListLessons(context.Background(), &memTokens{}, LessonQuery{Page: 1, Size: 5, DateFrom: "2026-01-01", Status: "set"})
	require.NoError(t, err)
	assert.Equal(t, "date_from=2026-01-01&page=1&size=5&status=set", (*seen)[0].Query)
}

func TestInvoices_StatusFilterAndWizard(t *testing.T) {
	c, seen := recordAPI(t, map[string]any{"id": 12, "lessons": []any{}})
	ctx := context.Background()

	c.ListInvoices(ctx, &memTokens{}, InvoiceQuery{Page: 1, Size: 5, Status: invoice.StatusIssued})
	c.PrepareInvoice(ctx, &memTokens{}, invoice.Period{PeriodStart: "2026-01-01", PeriodEnd: "2026-01-31"})
	inv, err := c.ConfirmInvoice(ctx, &memTokens{}, invoice.Confirmation{PeriodStart: "2026-01-01", PeriodEnd: "2026-01-31", LessonIDs: []int{4}})
	require.NoError(t, err)

	assert.Equal(t, "page=1&size=5&status_filter=issued", (*seen)[0].Query)
	assert.Equal(t, "/api/v1/invoices/generate/prepare", (*seen)[1].Path)
	assert.Equal(t, "/api/v1/invoices/generate/confirm", (*seen)[2].Path)
	assert.Nil(t, (*seen)[2].Body["due_date"])
	assert.Equal(t, 12, inv.ID)
}

func TestDownload(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/invoices/3/pdf" {
			w.Header().Set("Content-Type", "application/pdf")
			io.WriteString(w, "%PDF")
			return
		}
		writeJSON(w, 200, map[string]any{})
	}))

	res, err := c.Download(context.Background(), &memTokens{}, "/invoices/3/pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(res.Raw))

	_, err = c.Download(context.Background(), &memTokens{}, "/invoices/3")
	assert.Error(t, err, "JSON is not a download")
}

func TestAPIPath(t *testing.T) {
	c := NewClient(Config{BaseURL: "https://api.example.com/api/v1/"})

	p, ok := c.APIPath("https://api.example.com/api/v1/invoices/3/pdf")
	assert.True(t, ok)
	assert.Equal(t, "/invoices/3/pdf", p)

	_, ok = c.APIPath("https://cdn.example.com/invoices/3.pdf")
	assert.False(t, ok)

	_, ok = c.APIPath("https://api.example.com/api/v1evil/x")
	assert.False(t, ok)
}
