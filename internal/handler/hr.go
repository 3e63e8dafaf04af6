package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/hrms/internal/service"
	"github.com/msomdec/hrms/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

// HRHandler serves the HR approval panel.
type HRHandler struct {
	accounts  *service.AccountService
	employees *service.EmployeeService
}

// NewHRHandler creates a new HRHandler.
func NewHRHandler(accounts *service.AccountService, employees *service.EmployeeService) *HRHandler {
	return &HRHandler{accounts: accounts, employees: employees}
}

// HandlePanel lists every applicant with approve/reject actions.
func (h *HRHandler) HandlePanel(w http.ResponseWriter, r *http.Request) {
	users, err := h.employees.List(r.Context())
	if err != nil {
		slog.Error("list users for hr panel", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.HRPanelPage(users).Render(r.Context(), w)
}

// HandleDecision applies one approve/reject action and re-renders the list.
func (h *HRHandler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	userID := r.PostFormValue("userid")
	action := r.PostFormValue("action")

	status, err := h.accounts.Decide(r.Context(), userID, action)
	if err != nil {
		slog.Error("apply hr decision", "userid", userID, "action", action, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	slog.Info("hr decision", "userid", userID, "status", status)

	users, err := h.employees.List(r.Context())
	if err != nil {
		slog.Error("list users for hr panel", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if isDatastarRequest(r) {
		sse := datastar.NewSSE(w, r)
		sse.PatchElementTempl(
			view.HRUsersFragment(users),
			datastar.WithSelectorID("hr-users"),
		)
		return
	}

	view.HRPanelPage(users).Render(r.Context(), w)
}
