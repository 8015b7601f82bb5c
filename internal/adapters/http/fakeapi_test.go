package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeAPI is an in-process stand-in for the coaching API. It accepts one
// bearer token at a time and records the bodies of write requests.
type fakeAPI struct {
	mu           sync.Mutex
	access       string
	refreshOK    bool
	refreshCalls int
	loginOK      bool
	role         string
	pdfURL       string
	bodies       map[string][]byte

	srv *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{access: "acc-1", loginOK: true, role: "coach", bodies: make(map[string][]byte)}
	f.srv = httptest.NewServer(f.routes())
	t.Cleanup(f.srv.Close)
	f.pdfURL = f.srv.URL + "/invoices/42/pdf"
	return f
}

func (f *fakeAPI) set(fn func(f *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

// body returns the recorded body of the last "METHOD /path" request.
func (f *fakeAPI) body(route string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.bodies[route]
	if !ok {
		return nil
	}
	var out map[string]any
	json.Unmarshal(raw, &out)
	return out
}

const (
	clubJSON     = `{"id":1,"name":"Riverside","city":"Leeds","country":"UK","courts":[{"id":10,"name":"Court 1","active":true},{"id":11,"name":"Court 2","active":false}]}`
	coachJSON    = `{"id":3,"full_name":"Ana Coach","email":"ana@example.com","clubs":[` + clubJSON + `],"default_club_id":1}`
	lessonJSON   = `{"id":5,"coach_id":3,"club_id":1,"date":"2026-10-20","start_time":"10:00:00","end_time":"11:00:00","total_amount":"40.00","type":"private","status":"executed","payment_status":"pending","players":[{"id":7,"full_name":"Ben Player"}],"strokes":[],"courts":[{"id":10,"name":"Court 1","active":true}]}`
	playerJSON   = `{"id":7,"full_name":"Ben Player","active":true,"coaches":[{"id":3,"full_name":"Ana Coach"}]}`
	strokeJSON   = `{"code":"fh","label":"Forehand"}`
	prepareJSON  = `{"lessons":[{"lesson":` + lessonJSON + `,"amount":40,"club_reimbursement":8}],"total_gross":40,"total_club_reimbursement":8,"total_net":32}`
	pageTemplate = `{"items":[%s],"total":%d,"page":1,"size":50}`
)

func (f *fakeAPI) invoiceJSON() string {
	return fmt.Sprintf(`{"id":42,"period_start":"2026-10-01","period_end":"2026-10-31","status":"issued","due_date":null,"total_gross":40,"total_club_reimbursement":8,"total_net":32,"pdf_url":%q,"items":[{"description":"Lesson 2026-10-20","amount":40}]}`, f.pdfURL)
}

func (f *fakeAPI) routes() http.Handler {
	mux := http.NewServeMux()
	reply := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) { writeJSON(w, http.StatusOK, body) }
	}
	page := func(item string) http.HandlerFunc {
		return reply(fmt.Sprintf(pageTemplate, item, 1))
	}

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		ok, access := f.loginOK, f.access
		f.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, `{"detail":"Invalid email or password"}`)
			return
		}
		writeJSON(w, http.StatusOK, fmt.Sprintf(`{"access_token":%q,"refresh_token":"ref-1"}`, access))
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.refreshCalls++
		ok, access := f.refreshOK, f.access
		f.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, `{"detail":"Refresh token expired"}`)
			return
		}
		writeJSON(w, http.StatusOK, fmt.Sprintf(`{"access_token":%q}`, access))
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	mux.HandleFunc("POST /auth/password/forgot", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		role := f.role
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, fmt.Sprintf(`{"id":11,"email":"ana@example.com","role":%q}`, role))
	})

	mux.HandleFunc("GET /coaches/me", reply(coachJSON))
	mux.HandleFunc("PATCH /coaches/me", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			FullName string `json:"full_name"`
		}
		json.Unmarshal(f.record(r), &in)
		writeJSON(w, http.StatusOK, strings.Replace(coachJSON, "Ana Coach", in.FullName, 1))
	})

	mux.HandleFunc("GET /clubs", page(clubJSON))
	mux.HandleFunc("GET /clubs/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			writeJSON(w, http.StatusNotFound, `{"detail":"Club not found"}`)
			return
		}
		writeJSON(w, http.StatusOK, clubJSON)
	})
	mux.HandleFunc("POST /clubs", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusCreated, `{"id":9,"name":"New Club","courts":[]}`)
	})
	mux.HandleFunc("PATCH /clubs/{id}/courts/{courtID}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, `{"id":10,"name":"Court 1","active":false}`)
	})

	mux.HandleFunc("GET /players", page(playerJSON))
	mux.HandleFunc("POST /players", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusCreated, playerJSON)
	})
	mux.HandleFunc("GET /strokes", page(strokeJSON))

	mux.HandleFunc("GET /lessons", page(lessonJSON))
	mux.HandleFunc("POST /lessons", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusCreated, lessonJSON)
	})

	mux.HandleFunc("GET /invoices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, fmt.Sprintf(pageTemplate, f.invoiceJSON(), 1))
	})
	mux.HandleFunc("GET /invoices/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, f.invoiceJSON())
	})
	mux.HandleFunc("GET /invoices/42/pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		io.WriteString(w, "%PDF-1.4 fake")
	})
	mux.HandleFunc("POST /invoices/generate/prepare", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, prepareJSON)
	})
	mux.HandleFunc("POST /invoices/generate/confirm", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusCreated, f.invoiceJSON())
	})

	return f.authorize(mux)
}

// authorize rejects requests without the current bearer token, except the
// credential-less auth endpoints.
func (f *fakeAPI) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login", "/auth/refresh", "/auth/logout", "/auth/password/forgot":
			next.ServeHTTP(w, r)
			return
		}
		f.mu.Lock()
		want := "Bearer " + f.access
		f.mu.Unlock()
		if r.Header.Get("Authorization") != want {
			writeJSON(w, http.StatusUnauthorized, `{"detail":"Not authenticated"}`)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeAPI) record(r *http.Request) []byte {
	raw, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.bodies[r.Method+" "+r.URL.Path] = raw
	f.mu.Unlock()
	return raw
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}
