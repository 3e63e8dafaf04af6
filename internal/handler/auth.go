package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/msomdec/hrms/internal/domain"
	"github.com/msomdec/hrms/internal/service"
	"github.com/msomdec/hrms/internal/view"
)

const (
	msgInvalidCredentials = "Invalid User ID or Password"
	msgDuplicateUserID    = "User ID already exists."
	msgRejected           = "❌ Your application was rejected. You cannot login."
	msgPending            = "⏳ Your application is still pending. Please wait for HR approval."
)

// AuthHandler handles registration, status lookup, login and logout.
type AuthHandler struct {
	accounts *service.AccountService
	sessions *service.SessionStore
	cookies  cookieConfig
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *service.AccountService, sessions *service.SessionStore, cookies cookieConfig) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions, cookies: cookies}
}

func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	view.RegisterPage(nil, "").Render(r.Context(), w)
}

// HandleRegister creates a Pending applicant and redirects to its status
// page. A taken user id re-renders the form with 409 and leaves the
// existing record untouched.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	user, err := userFromRegistration(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.accounts.Register(r.Context(), user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUserID) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusConflict)
			user.Password = ""
			view.RegisterPage(user, msgDuplicateUserID).Render(r.Context(), w)
			return
		}
		slog.Error("register user", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("user registered", "userid", user.UserID)
	http.Redirect(w, r, statusPath(user.UserID), http.StatusSeeOther)
}

// HandleStatus shows the approval status of the user id in the path.
func (h *AuthHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userid")
	status, err := h.accounts.Status(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		slog.Error("get status", "userid", userID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.StatusPage(userID, status).Render(r.Context(), w)
}

func (h *AuthHandler) HandleStatusLookupPage(w http.ResponseWriter, r *http.Request) {
	view.StatusLookupPage().Render(r.Context(), w)
}

func (h *AuthHandler) HandleStatusLookup(w http.ResponseWriter, r *http.Request) {
	v, err := requiredFields(r, "userid")
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, statusPath(v["userid"]), http.StatusSeeOther)
}

func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	flash := h.cookies.popFlash(w, r)
	view.LoginPage(flash).Render(r.Context(), w)
}

// HandleLogin authenticates the user. Only Approved users get a session;
// Pending and Rejected applicants see a message page instead.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	v, err := requiredFields(r, "userid", "password")
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	user, err := h.accounts.Login(r.Context(), v["userid"], v["password"])
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidCredentials):
		h.cookies.setFlash(w, msgInvalidCredentials)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	case errors.Is(err, domain.ErrApplicationRejected):
		view.StatusMessagePage(msgRejected, "red").Render(r.Context(), w)
		return
	case errors.Is(err, domain.ErrApplicationPending):
		view.StatusMessagePage(msgPending, "orange").Render(r.Context(), w)
		return
	default:
		slog.Error("login user", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	token, err := h.sessions.Login(user.UserID)
	if err != nil {
		slog.Error("create session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.cookies.setSession(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleLogout ends the session, if any, and returns to the landing page.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		h.sessions.Logout(cookie.Value)
	}
	h.cookies.clearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func statusPath(userID string) string {
	return "/status/" + url.PathEscape(userID)
}
