package browser_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	web "github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/http"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/storage/kv"
)

// testApp holds the running frontend, its fake API and Playwright handles.
type testApp struct {
	BaseURL string
	API     *httptest.Server
	Server  *httptest.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
}

const (
	clubsJSON = `{"items":[` +
		`{"id":1,"name":"Riverside","courts":[{"id":10,"name":"Court 1","active":true}]},` +
		`{"id":2,"name":"Hilltop","courts":[{"id":20,"name":"Centre","active":true},{"id":21,"name":"Annex","active":false}]}` +
		`],"total":2,"page":1,"size":100}`
	coachJSON = `{"id":3,"full_name":"Ana Coach","email":"ana@example.com","clubs":[],"default_club_id":null}`
	emptyPage = `{"items":[],"total":0,"page":1,"size":50}`
)

// fakeAPI answers just enough of the coaching API for a coach to sign in,
// see the dashboard and open the lesson form.
func fakeAPI() http.Handler {
	mux := http.NewServeMux()
	reply := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, body)
		}
	}
	mux.HandleFunc("POST /auth/login", reply(`{"access_token":"acc","refresh_token":"ref"}`))
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	mux.HandleFunc("GET /auth/me", reply(`{"id":11,"email":"ana@example.com","role":"coach"}`))
	mux.HandleFunc("GET /coaches/me", reply(coachJSON))
	mux.HandleFunc("GET /coaches", reply(`{"items":[`+coachJSON+`],"total":1,"page":1,"size":100}`))
	mux.HandleFunc("GET /clubs", reply(clubsJSON))
	mux.HandleFunc("GET /players", reply(emptyPage))
	mux.HandleFunc("GET /strokes", reply(emptyPage))
	mux.HandleFunc("GET /lessons", reply(emptyPage))
	mux.HandleFunc("GET /invoices", reply(emptyPage))
	return mux
}

// newTestApp starts the frontend against an in-process fake API and launches
// headless Chromium. The test is skipped when Playwright's browsers are not
// installed.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	apiSrv := httptest.NewServer(fakeAPI())
	t.Cleanup(apiSrv.Close)

	srv, err := web.NewServer(web.Options{
		API:      api.NewClient(api.Config{BaseURL: apiSrv.URL, Timeout: 5 * time.Second}),
		Sessions: kv.NewMemory(),
		CSRFKey:  []byte("0123456789abcdef0123456789abcdef"),
	})
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}
	front := httptest.NewServer(srv.Handler())
	t.Cleanup(front.Close)

	pw, err := playwright.Run()
	if err != nil {
		t.Skipf("playwright not available: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		t.Skipf("failed to launch browser: %v", err)
	}
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
	})

	return &testApp{
		BaseURL: front.URL,
		API:     apiSrv,
		Server:  front,
		PW:      pw,
		Browser: browser,
	}
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login signs in through the login form and waits for the dashboard.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=email]").Fill("ana@example.com"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill("secret"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to dashboard: %v", err)
	}
}

func (a *testApp) url(path string) string {
	return fmt.Sprintf("%s%s", a.BaseURL, path)
}
