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

// EmployeeHandler serves the public employee profile and edit pages.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

func (h *EmployeeHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.load(w, r)
	if !ok {
		return
	}
	view.EmployeePage(employee).Render(r.Context(), w)
}

func (h *EmployeeHandler) HandleEditPage(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.load(w, r)
	if !ok {
		return
	}
	view.EditEmployeePage(employee).Render(r.Context(), w)
}

// HandleEdit overwrites the employee's fields with the submitted form.
// Omitted fields are cleared. The target is not checked for existence.
func (h *EmployeeHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userid")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.employees.Update(r.Context(), userFromEdit(r, userID)); err != nil {
		slog.Error("update employee", "userid", userID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/employee/"+url.PathEscape(userID), http.StatusSeeOther)
}

// load fetches the employee named in the path, writing a 404 or 500 when it
// cannot.
func (h *EmployeeHandler) load(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	userID := r.PathValue("userid")
	employee, err := h.employees.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return nil, false
		}
		slog.Error("get employee", "userid", userID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return employee, true
}
