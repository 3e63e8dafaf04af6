package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/msomdec/hrms/internal/domain"
)

var errMissingField = errors.New("missing form field")

// requiredFields returns the named POST form values. Every field must be
// present, but an empty value is accepted.
func requiredFields(r *http.Request, names ...string) (map[string]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(names))
	for _, name := range names {
		v, ok := r.PostForm[name]
		if !ok || len(v) == 0 {
			return nil, fmt.Errorf("%w: %s", errMissingField, name)
		}
		values[name] = v[0]
	}
	return values, nil
}

var registrationFields = []string{
	"userid", "password", "firstname", "middlename", "lastname", "fathername",
	"dob", "address", "aadhar_no", "pan_no", "bank_account", "ifsc",
	"micr_core", "joining_date",
}

// userFromRegistration builds a user from the fourteen registration fields.
func userFromRegistration(r *http.Request) (*domain.User, error) {
	v, err := requiredFields(r, registrationFields...)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		UserID:      v["userid"],
		Password:    v["password"],
		FirstName:   v["firstname"],
		MiddleName:  v["middlename"],
		LastName:    v["lastname"],
		FatherName:  v["fathername"],
		DOB:         v["dob"],
		Address:     v["address"],
		AadharNo:    v["aadhar_no"],
		PanNo:       v["pan_no"],
		BankAccount: v["bank_account"],
		IFSC:        v["ifsc"],
		MICRCore:    v["micr_core"],
		JoiningDate: v["joining_date"],
	}, nil
}

// userFromEdit reads the edit form. A field missing from the submission
// becomes an empty value and will clear what is stored.
func userFromEdit(r *http.Request, userID string) *domain.User {
	return &domain.User{
		UserID:      userID,
		Password:    r.PostFormValue("password"),
		FirstName:   r.PostFormValue("firstname"),
		MiddleName:  r.PostFormValue("middlename"),
		LastName:    r.PostFormValue("lastname"),
		FatherName:  r.PostFormValue("fathername"),
		DOB:         r.PostFormValue("dob"),
		Address:     r.PostFormValue("address"),
		AadharNo:    r.PostFormValue("aadhar_no"),
		PanNo:       r.PostFormValue("pan_no"),
		BankAccount: r.PostFormValue("bank_account"),
		IFSC:        r.PostFormValue("ifsc"),
		MICRCore:    r.PostFormValue("micr_core"),
		JoiningDate: r.PostFormValue("joining_date"),
	}
}

// isDatastarRequest reports whether the request came from a datastar action
// and expects an SSE response.
func isDatastarRequest(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}
