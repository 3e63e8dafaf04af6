package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/hrms/internal/service"
	"github.com/msomdec/hrms/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

// AttendanceHandler handles punching and listing attendance.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

func (h *AttendanceHandler) HandlePunchPage(w http.ResponseWriter, r *http.Request) {
	view.AttendancePage(nil).Render(r.Context(), w)
}

// HandlePunch records one punch for the session user and shows its stamp.
// Datastar requests get only the stamp fragment over SSE.
func (h *AttendanceHandler) HandlePunch(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	record, err := h.attendance.Punch(r.Context(), userID)
	if err != nil {
		slog.Error("punch attendance", "userid", userID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if isDatastarRequest(r) {
		sse := datastar.NewSSE(w, r)
		sse.PatchElementTempl(
			view.PunchResultFragment(record),
			datastar.WithSelectorID("punch-result"),
		)
		return
	}

	view.AttendancePage(record).Render(r.Context(), w)
}

// HandleList shows every punch of the session user.
func (h *AttendanceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	records, err := h.attendance.List(r.Context(), userID)
	if err != nil {
		slog.Error("list attendance", "userid", userID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.ViewAttendancePage(records).Render(r.Context(), w)
}
