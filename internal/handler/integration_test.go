package handler_test

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/hrms/internal/domain"
	"github.com/msomdec/hrms/internal/handler"
	"github.com/msomdec/hrms/internal/service"
)

func TestIntegration_RegisterThenStatusPending(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	resp, _ := app.postForm(t, c, "/register", registrationForm("emp1", "pw"))
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("register: expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/status/emp1" {
		t.Fatalf("register: expected redirect to /status/emp1, got %s", loc)
	}

	resp, body := app.get(t, c, "/status/emp1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Pending") {
		t.Fatal("new registration should be Pending")
	}
}

func TestIntegration_RegisterAcceptsEmptyValues(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	form := registrationForm("blank", "")
	for k := range form {
		if k != "userid" {
			form.Set(k, "")
		}
	}
	resp, _ := app.postForm(t, c, "/register", form)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 for empty values, got %d", resp.StatusCode)
	}
}

func TestIntegration_RegisterMissingFieldIsBadRequest(t *testing.T) {
	app := newTestApp(t)

	form := registrationForm("emp1", "pw")
	form.Del("micr_core")
	resp, _ := app.postForm(t, app.client(t), "/register", form)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestIntegration_RegisterDuplicateUserID(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.register(t, c, "dup", "original")

	form := registrationForm("dup", "intruder")
	form.Set("firstname", "Mallory")
	resp, body := app.postForm(t, c, "/register", form)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "User ID already exists.") {
		t.Fatal("duplicate register should show a visible error")
	}

	user, err := app.db.Users().GetByUserID(context.Background(), "dup")
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if user.Password != "original" || user.FirstName != "Asha" {
		t.Fatalf("existing row was overwritten: %+v", user)
	}
}

func TestIntegration_StatusLookupRedirects(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.postForm(t, app.client(t), "/status", url.Values{"userid": {"a b"}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/status/a%20b" {
		t.Fatalf("expected escaped redirect, got %s", loc)
	}
}

func TestIntegration_NotFoundPages(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	for path, msg := range map[string]string{
		"/status/does-not-exist":        "User not found",
		"/employee/does-not-exist":      "Employee not found",
		"/employee/does-not-exist/edit": "Employee not found",
	} {
		resp, body := app.get(t, c, path)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.StatusCode)
		}
		if !strings.Contains(body, msg) {
			t.Fatalf("%s: expected %q, got %q", path, msg, body)
		}
	}
}

func TestIntegration_LoginApprovedCreatesSession(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.loginApproved(t, c, "emp1")

	cookie := app.sessionCookie(t, c)
	if cookie == nil {
		t.Fatal("expected session cookie after login")
	}
	userID, ok := app.deps.Sessions.CurrentUser(cookie.Value)
	if !ok || userID != "emp1" {
		t.Fatalf("expected session for emp1, got %q (live=%v)", userID, ok)
	}

	resp, body := app.get(t, c, "/dashboard")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Welcome, Asha Rao") {
		t.Fatal("dashboard should greet the user")
	}
}

func TestIntegration_LoginBlockedWhilePendingOrRejected(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.register(t, c, "emp1", "pw")

	creds := url.Values{"userid": {"emp1"}, "password": {"pw"}}
	for i := 0; i < 3; i++ {
		resp, body := app.postForm(t, c, "/login", creds)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("pending login %d: expected 200 message page, got %d", i, resp.StatusCode)
		}
		if !strings.Contains(body, "still pending") {
			t.Fatalf("pending login %d: expected pending message", i)
		}
	}
	if app.sessionCookie(t, c) != nil {
		t.Fatal("pending user must not get a session")
	}

	app.decide(t, c, "emp1", "reject")
	for i := 0; i < 3; i++ {
		_, body := app.postForm(t, c, "/login", creds)
		if !strings.Contains(body, "was rejected") {
			t.Fatalf("rejected login %d: expected rejection message", i)
		}
	}
	if app.sessionCookie(t, c) != nil {
		t.Fatal("rejected user must not get a session")
	}
	if n := app.deps.Sessions.Len(); n != 0 {
		t.Fatalf("expected no sessions, got %d", n)
	}
}

func TestIntegration_LoginWrongPasswordFlashes(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.register(t, c, "emp1", "pw")
	app.decide(t, c, "emp1", "approve")

	resp, _ := app.postForm(t, c, "/login", url.Values{"userid": {"emp1"}, "password": {"bad"}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}
	if app.sessionCookie(t, c) != nil {
		t.Fatal("bad credentials must not create a session")
	}

	_, body := app.get(t, c, "/login")
	if !strings.Contains(body, "Invalid User ID or Password") {
		t.Fatal("login page should show the flash message")
	}

	// The flash is shown once.
	_, body = app.get(t, c, "/login")
	if strings.Contains(body, "Invalid User ID or Password") {
		t.Fatal("flash message should be cleared after display")
	}
}

func TestIntegration_LoginUnknownUserSameMessage(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	resp, _ := app.postForm(t, c, "/login", url.Values{"userid": {"ghost"}, "password": {"pw"}})
	if resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %s", resp.Header.Get("Location"))
	}
	_, body := app.get(t, c, "/login")
	if !strings.Contains(body, "Invalid User ID or Password") {
		t.Fatal("unknown user should get the generic message")
	}
}

func TestIntegration_SessionGatedRoutesRedirect(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	for _, path := range []string{"/dashboard", "/attendance", "/view_attendance"} {
		resp, _ := app.get(t, c, path)
		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("%s: expected 303, got %d", path, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %s", path, loc)
		}
	}

	resp, _ := app.postForm(t, c, "/attendance", nil)
	if resp.Header.Get("Location") != "/login" {
		t.Fatal("POST /attendance without a session should redirect to /login")
	}
}

func TestIntegration_PunchAndViewAttendance(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.loginApproved(t, c, "emp1")

	resp, body := app.get(t, c, "/attendance")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("attendance page: expected 200, got %d", resp.StatusCode)
	}
	if strings.Contains(body, "Attendance marked") {
		t.Fatal("no stamp should be shown before punching")
	}

	stamp := regexp.MustCompile(`Attendance marked on <strong>(\d{4}-\d{2}-\d{2})</strong> at <strong>((0[1-9]|1[0-2]):[0-5]\d:[0-5]\d (AM|PM))</strong>`)
	for i := 0; i < 2; i++ {
		resp, body = app.postForm(t, c, "/attendance", url.Values{})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("punch %d: expected 200, got %d", i, resp.StatusCode)
		}
		m := stamp.FindStringSubmatch(body)
		if m == nil {
			t.Fatalf("punch %d: stamp not found in page", i)
		}
		if m[1] != time.Now().Format("2006-01-02") {
			t.Fatalf("punch %d: expected today's date, got %s", i, m[1])
		}
	}

	records, err := app.db.Attendance().ListByUser(context.Background(), "emp1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	_, body = app.get(t, c, "/view_attendance")
	if strings.Count(body, records[0].Date) < 2 {
		t.Fatal("view attendance should list both punches")
	}
}

func TestIntegration_SameSecondPunchesBothRecorded(t *testing.T) {
	fixed := time.Date(2024, 2, 29, 13, 0, 1, 0, time.Local)
	app := newTestAppWithClock(t, func() time.Time { return fixed })
	c := app.client(t)
	app.loginApproved(t, c, "emp1")

	for i := 0; i < 2; i++ {
		_, body := app.postForm(t, c, "/attendance", url.Values{})
		if !strings.Contains(body, "01:00:01 PM") {
			t.Fatalf("punch %d: expected fixed stamp", i)
		}
	}

	records, err := app.db.Attendance().ListByUser(context.Background(), "emp1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(records) != 2 || records[0].ID == records[1].ID {
		t.Fatalf("expected 2 distinct records, got %+v", records)
	}
}

func TestIntegration_PunchOverDatastar(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.loginApproved(t, c, "emp1")

	req, err := http.NewRequest(http.MethodPost, app.srv.URL+"/attendance", strings.NewReader(""))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Datastar-Request", "true")
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("POST /attendance: %v", err)
	}
	body := readBody(t, resp)

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("expected SSE response, got %q", ct)
	}
	if !strings.Contains(body, "punch-result") || !strings.Contains(body, "Attendance marked") {
		t.Fatalf("expected punch fragment in SSE body, got %q", body)
	}
	if strings.Contains(body, "<html") {
		t.Fatal("datastar response should carry only the fragment")
	}
}

func TestIntegration_HRApproveOnlyTargetsOneUser(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.register(t, c, "u", "pw")
	app.register(t, c, "other", "pw")
	app.decide(t, c, "other", "reject")

	resp, body := app.postForm(t, c, "/hr_panel", url.Values{"userid": {"u"}, "action": {"approve"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("hr panel: expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Approved") {
		t.Fatal("re-rendered panel should reflect the approval")
	}

	ctx := context.Background()
	u, _ := app.db.Users().GetByUserID(ctx, "u")
	other, _ := app.db.Users().GetByUserID(ctx, "other")
	if u.Status != domain.StatusApproved {
		t.Fatalf("expected u Approved, got %s", u.Status)
	}
	if other.Status != domain.StatusRejected {
		t.Fatalf("expected other to stay Rejected, got %s", other.Status)
	}

	resp, _ = app.postForm(t, c, "/login", url.Values{"userid": {"u"}, "password": {"pw"}})
	if resp.Header.Get("Location") != "/dashboard" {
		t.Fatal("approved user should be able to log in")
	}
}

func TestIntegration_HRDecisionOnUnknownUserIsNoop(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.register(t, c, "emp1", "pw")

	app.decide(t, c, "ghost", "approve")

	summaries, err := app.db.Users().ListSummaries(context.Background())
	if err != nil {
		t.Fatalf("ListSummaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Status != domain.StatusPending {
		t.Fatalf("unexpected users after no-op decision: %+v", summaries)
	}
}

func TestIntegration_HRPanelOverDatastar(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.register(t, c, "emp1", "pw")

	req, err := http.NewRequest(http.MethodPost, app.srv.URL+"/hr_panel",
		strings.NewReader(url.Values{"userid": {"emp1"}, "action": {"approve"}}.Encode()))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Datastar-Request", "true")
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("POST /hr_panel: %v", err)
	}
	body := readBody(t, resp)

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("expected SSE response, got %q", ct)
	}
	if !strings.Contains(body, "hr-users") || !strings.Contains(body, "Approved") {
		t.Fatalf("expected updated table in SSE body, got %q", body)
	}
}

// The edit and HR routes have no authorization check. These tests pin that
// behavior so any change to it is deliberate.
func TestIntegration_EditAndHRArePublic(t *testing.T) {
	app := newTestApp(t)
	registrant := app.client(t)
	app.register(t, registrant, "emp1", "pw")

	anonymous := app.client(t)
	for _, path := range []string{"/hr_panel", "/employee/emp1", "/employee/emp1/edit"} {
		resp, _ := app.get(t, anonymous, path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected public 200, got %d", path, resp.StatusCode)
		}
	}

	app.decide(t, anonymous, "emp1", "approve")
	status, err := app.deps.Accounts.Status(context.Background(), "emp1")
	if err != nil || status != domain.StatusApproved {
		t.Fatalf("anonymous approval should apply, got %q %v", status, err)
	}
}

func TestIntegration_EditClearsOmittedFields(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.register(t, c, "emp1", "pw")
	app.decide(t, c, "emp1", "approve")

	resp, _ := app.postForm(t, c, "/employee/emp1/edit", url.Values{
		"password":  {"pw2"},
		"firstname": {"Asha"},
		"lastname":  {"Menon"},
	})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("edit: expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/employee/emp1" {
		t.Fatalf("edit: expected redirect to /employee/emp1, got %s", loc)
	}

	user, err := app.db.Users().GetByUserID(context.Background(), "emp1")
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if user.LastName != "Menon" || user.Password != "pw2" {
		t.Fatalf("expected submitted fields to be saved, got %+v", user)
	}
	if user.Address != "" || user.MiddleName != "" || user.IFSC != "" {
		t.Fatalf("expected omitted fields to be cleared, got %+v", user)
	}
	if user.Status != domain.StatusApproved {
		t.Fatalf("edit must not change status, got %s", user.Status)
	}
}

func TestIntegration_DashboardUserDeletedOutOfBand(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.loginApproved(t, c, "emp1")

	if _, err := app.db.SqlDB.Exec("DELETE FROM users WHERE userid = ?", "emp1"); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	resp, body := app.get(t, c, "/dashboard")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "User not found") {
		t.Fatalf("expected plain not-found message, got %q", body)
	}
}

func TestIntegration_LogoutEndsSession(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.loginApproved(t, c, "emp1")
	token := app.sessionCookie(t, c).Value

	resp, _ := app.get(t, c, "/logout")
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/" {
		t.Fatalf("logout: expected 303 to /, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}
	if _, ok := app.deps.Sessions.CurrentUser(token); ok {
		t.Fatal("token should be dead after logout")
	}

	resp, _ = app.get(t, c, "/view_attendance")
	if resp.Header.Get("Location") != "/login" {
		t.Fatal("view_attendance after logout should redirect to /login")
	}

	// Replaying the old token does not work either.
	replay := app.client(t)
	u, _ := url.Parse(app.srv.URL)
	replay.Jar.SetCookies(u, []*http.Cookie{{Name: "hrms_session", Value: token}})
	resp, _ = app.get(t, replay, "/dashboard")
	if resp.Header.Get("Location") != "/login" {
		t.Fatal("replayed token should not authenticate")
	}

	// Idempotent.
	resp, _ = app.get(t, c, "/logout")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("second logout: expected 303, got %d", resp.StatusCode)
	}
}

func TestIntegration_LoginThrottled(t *testing.T) {
	app := newTestAppWithDeps(t, func(d *handler.Deps) {
		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		d.Throttle = service.NewTokenBucket(ctx, 0, 2)
	})
	c := app.client(t)
	creds := url.Values{"userid": {"ghost"}, "password": {"pw"}}

	for i := 0; i < 2; i++ {
		resp, _ := app.postForm(t, c, "/login", creds)
		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("attempt %d: expected 303, got %d", i, resp.StatusCode)
		}
	}
	resp, _ := app.postForm(t, c, "/login", creds)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", resp.StatusCode)
	}
}

func TestIntegration_EditFormTargetsOwnRecord(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	const odd = "victim/edit?#1"
	app.register(t, c, "victim", "pw")
	app.register(t, c, odd, "pw")

	resp, body := app.get(t, c, "/employee/"+url.PathEscape(odd)+"/edit")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("edit page: expected 200, got %d", resp.StatusCode)
	}
	m := regexp.MustCompile(`<form method="post" action="([^"]+)"`).FindStringSubmatch(body)
	if m == nil {
		t.Fatal("edit form not found")
	}

	form := registrationForm(odd, "pw2")
	form.Del("userid")
	form.Set("firstname", "Mallory")
	resp, _ = app.postForm(t, c, m[1], form)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("edit: expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/employee/"+url.PathEscape(odd) {
		t.Fatalf("edit: unexpected redirect %s", loc)
	}

	ctx := context.Background()
	victim, err := app.db.Users().GetByUserID(ctx, "victim")
	if err != nil {
		t.Fatalf("GetByUserID victim: %v", err)
	}
	if victim.FirstName != "Asha" || victim.Password != "pw" {
		t.Fatalf("editing %q changed another user: %+v", odd, victim)
	}
	edited, err := app.db.Users().GetByUserID(ctx, odd)
	if err != nil {
		t.Fatalf("GetByUserID %q: %v", odd, err)
	}
	if edited.FirstName != "Mallory" || edited.Password != "pw2" {
		t.Fatalf("expected %q to be edited, got %+v", odd, edited)
	}
}
