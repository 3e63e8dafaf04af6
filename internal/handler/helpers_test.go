package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/hrms/internal/handler"
	"github.com/msomdec/hrms/internal/repository/sqlite"
	"github.com/msomdec/hrms/internal/service"
)

const testSessionSecret = "test-secret-for-handler-tests-0123456789"

type testApp struct {
	srv  *httptest.Server
	db   *sqlite.DB
	deps handler.Deps
}

func newTestDeps(t *testing.T, clock func() time.Time) (handler.Deps, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return handler.Deps{
		Accounts:   service.NewAccountService(db.Users()),
		Employees:  service.NewEmployeeService(db.Users()),
		Attendance: service.NewAttendanceService(db.Attendance(), clock),
		Sessions:   service.NewSessionStore(testSessionSecret),
		Throttle:   service.NewTokenBucket(ctx, 0, 1000),
		DB:         db,
	}, db
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithDeps(t, nil)
}

func newTestAppWithDeps(t *testing.T, mutate func(*handler.Deps)) *testApp {
	t.Helper()
	deps, db := newTestDeps(t, nil)
	if mutate != nil {
		mutate(&deps)
	}
	return serve(t, deps, db)
}

// newTestAppWithClock stamps attendance with clock instead of time.Now.
func newTestAppWithClock(t *testing.T, clock func() time.Time) *testApp {
	t.Helper()
	deps, db := newTestDeps(t, clock)
	return serve(t, deps, db)
}

func serve(t *testing.T, deps handler.Deps, db *sqlite.DB) *testApp {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, deps)
	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)

	return &testApp{srv: srv, db: db, deps: deps}
}

// client returns an HTTP client with its own cookie jar that does not follow
// redirects.
func (a *testApp) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func registrationForm(userID, password string) url.Values {
	return url.Values{
		"userid":       {userID},
		"password":     {password},
		"firstname":    {"Asha"},
		"middlename":   {"K"},
		"lastname":     {"Rao"},
		"fathername":   {"Kiran Rao"},
		"dob":          {"1990-04-01"},
		"address":      {"12 MG Road"},
		"aadhar_no":    {"1234-5678-9012"},
		"pan_no":       {"ABCDE1234F"},
		"bank_account": {"001122334455"},
		"ifsc":         {"SBIN0000001"},
		"micr_core":    {"400002001"},
		"joining_date": {"2024-01-15"},
	}
}

func (a *testApp) postForm(t *testing.T, c *http.Client, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := c.PostForm(a.srv.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func (a *testApp) get(t *testing.T, c *http.Client, path string) (*http.Response, string) {
	t.Helper()
	resp, err := c.Get(a.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func (a *testApp) register(t *testing.T, c *http.Client, userID, password string) {
	t.Helper()
	resp, _ := a.postForm(t, c, "/register", registrationForm(userID, password))
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("register %s: expected 303, got %d", userID, resp.StatusCode)
	}
}

func (a *testApp) decide(t *testing.T, c *http.Client, userID, action string) {
	t.Helper()
	resp, _ := a.postForm(t, c, "/hr_panel", url.Values{"userid": {userID}, "action": {action}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("hr %s %s: expected 200, got %d", action, userID, resp.StatusCode)
	}
}

// loginApproved registers userID, approves it and logs c in.
func (a *testApp) loginApproved(t *testing.T, c *http.Client, userID string) {
	t.Helper()
	a.register(t, c, userID, "pw")
	a.decide(t, c, userID, "approve")
	resp, _ := a.postForm(t, c, "/login", url.Values{"userid": {userID}, "password": {"pw"}})
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/dashboard" {
		t.Fatalf("login %s: expected 303 to /dashboard, got %d %s", userID, resp.StatusCode, resp.Header.Get("Location"))
	}
}

func (a *testApp) sessionCookie(t *testing.T, c *http.Client) *http.Cookie {
	t.Helper()
	u, _ := url.Parse(a.srv.URL)
	for _, ck := range c.Jar.Cookies(u) {
		if ck.Name == "hrms_session" {
			return ck
		}
	}
	return nil
}
