// Package view renders the HTML pages. Pages are html/template files embedded
// in the binary and exposed as templ components, so handlers render them the
// same way as any other templ.Component.
package view

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/msomdec/hrms/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	// pathEscape makes a user id safe as a single URL path segment.
	"pathEscape": url.PathEscape,
}).ParseFS(templateFS, "templates/*.html"))

func page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages.ExecuteTemplate(w, name, data)
	})
}

// Field is one labelled input of the employee forms.
type Field struct {
	Name  string
	Label string
	Type  string
	Value string
}

// employeeFields lists the editable employee fields in form order. The
// user id is only part of the registration form.
func employeeFields(u *domain.User, withUserID bool) []Field {
	if u == nil {
		u = &domain.User{}
	}
	var fields []Field
	if withUserID {
		fields = append(fields, Field{"userid", "User ID", "text", u.UserID})
	}
	return append(fields,
		Field{"password", "Password", "password", u.Password},
		Field{"firstname", "First Name", "text", u.FirstName},
		Field{"middlename", "Middle Name", "text", u.MiddleName},
		Field{"lastname", "Last Name", "text", u.LastName},
		Field{"fathername", "Father's Name", "text", u.FatherName},
		Field{"dob", "Date of Birth", "date", u.DOB},
		Field{"address", "Address", "text", u.Address},
		Field{"aadhar_no", "Aadhar No", "text", u.AadharNo},
		Field{"pan_no", "PAN No", "text", u.PanNo},
		Field{"bank_account", "Bank Account", "text", u.BankAccount},
		Field{"ifsc", "IFSC", "text", u.IFSC},
		Field{"micr_core", "MICR Code", "text", u.MICRCore},
		Field{"joining_date", "Joining Date", "date", u.JoiningDate},
	)
}

func HomePage() templ.Component {
	return page("home", nil)
}

// RegisterPage renders the registration form, refilled with form and
// showing errMsg when a previous submission failed.
func RegisterPage(form *domain.User, errMsg string) templ.Component {
	return page("register", struct {
		Fields []Field
		Error  string
	}{employeeFields(form, true), errMsg})
}

func StatusPage(userID string, status domain.Status) templ.Component {
	return page("status", struct {
		UserID string
		Status domain.Status
	}{userID, status})
}

func StatusLookupPage() templ.Component {
	return page("status_lookup", nil)
}

func LoginPage(flash string) templ.Component {
	return page("login", struct{ Flash string }{flash})
}

// StatusMessagePage tells an applicant why they cannot log in yet.
func StatusMessagePage(message, color string) templ.Component {
	return page("status_message", struct {
		Message string
		Color   string
	}{message, color})
}

func DashboardPage(user *domain.User) templ.Component {
	return page("dashboard", struct{ User *domain.User }{user})
}

// AttendancePage renders the punch form. punch is nil unless the request
// just recorded one.
func AttendancePage(punch *domain.AttendanceRecord) templ.Component {
	return page("attendance", struct{ Punch *domain.AttendanceRecord }{punch})
}

// PunchResultFragment is the #punch-result element of AttendancePage.
func PunchResultFragment(punch *domain.AttendanceRecord) templ.Component {
	return page("punch_result", punch)
}

func ViewAttendancePage(records []domain.AttendanceRecord) templ.Component {
	return page("view_attendance", struct{ Records []domain.AttendanceRecord }{records})
}

func EmployeePage(employee *domain.User) templ.Component {
	return page("employee", struct{ Employee *domain.User }{employee})
}

func EditEmployeePage(employee *domain.User) templ.Component {
	return page("edit_employee", struct {
		Employee *domain.User
		Fields   []Field
	}{employee, employeeFields(employee, false)})
}

func HRPanelPage(users []domain.UserSummary) templ.Component {
	return page("hr_panel", struct{ Users []domain.UserSummary }{users})
}

// HRUsersFragment is the #hr-users table of HRPanelPage.
func HRUsersFragment(users []domain.UserSummary) templ.Component {
	return page("hr_users", users)
}
