package handler

import (
	"net/http"

	"github.com/msomdec/hrms/internal/service"
)

// Deps is the application context shared by all handlers. It is built once in
// main and passed explicitly; handlers keep no package-level state.
type Deps struct {
	Accounts     *service.AccountService
	Employees    *service.EmployeeService
	Attendance   *service.AttendanceService
	Sessions     *service.SessionStore
	Throttle     *service.TokenBucket
	DB           Pinger
	CookieSecure bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
//
// The employee edit and HR panel routes are public. There is no role model,
// so any visitor can edit an employee or approve an application.
func RegisterRoutes(mux *http.ServeMux, d Deps) {
	cookies := cookieConfig{secure: d.CookieSecure}
	auth := NewAuthHandler(d.Accounts, d.Sessions, cookies)
	dashboard := NewDashboardHandler(d.Employees)
	attendance := NewAttendanceHandler(d.Attendance)
	employees := NewEmployeeHandler(d.Employees)
	hr := NewHRHandler(d.Accounts, d.Employees)
	health := NewHealthHandler(d.DB)

	requireSession := func(h http.HandlerFunc) http.Handler {
		return RequireSession(d.Sessions, h)
	}
	throttled := func(h http.HandlerFunc) http.Handler {
		return Throttle(d.Throttle, h)
	}

	mux.HandleFunc("GET /healthz", health.HandleHealthz)
	mux.HandleFunc("GET /", HandleHome)

	mux.HandleFunc("GET /register", auth.HandleRegisterPage)
	mux.Handle("POST /register", throttled(auth.HandleRegister))
	mux.HandleFunc("GET /status/{userid}", auth.HandleStatus)
	mux.HandleFunc("GET /status", auth.HandleStatusLookupPage)
	mux.HandleFunc("POST /status", auth.HandleStatusLookup)
	mux.HandleFunc("GET /login", auth.HandleLoginPage)
	mux.Handle("POST /login", throttled(auth.HandleLogin))
	mux.HandleFunc("GET /logout", auth.HandleLogout)

	mux.Handle("GET /dashboard", requireSession(dashboard.HandleDashboard))
	mux.Handle("GET /attendance", requireSession(attendance.HandlePunchPage))
	mux.Handle("POST /attendance", requireSession(attendance.HandlePunch))
	mux.Handle("GET /view_attendance", requireSession(attendance.HandleList))

	mux.HandleFunc("GET /employee/{userid}", employees.HandleView)
	mux.HandleFunc("GET /employee/{userid}/edit", employees.HandleEditPage)
	mux.HandleFunc("POST /employee/{userid}/edit", employees.HandleEdit)

	mux.HandleFunc("GET /hr_panel", hr.HandlePanel)
	mux.HandleFunc("POST /hr_panel", hr.HandleDecision)
}
