package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/hrms/internal/domain"
	"github.com/msomdec/hrms/internal/service"
	"github.com/msomdec/hrms/internal/view"
)

// DashboardHandler handles the dashboard page.
type DashboardHandler struct {
	employees *service.EmployeeService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(employees *service.EmployeeService) *DashboardHandler {
	return &DashboardHandler{employees: employees}
}

// HandleDashboard renders the logged-in user's profile. The session may
// outlive the user record, in which case the page is a 404.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	user, err := h.employees.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		slog.Error("get user for dashboard", "userid", userID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.DashboardPage(user).Render(r.Context(), w)
}
