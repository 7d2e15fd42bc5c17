package submit

import "github.com/mfergus/tiller/internal/domain"

// FieldErrors maps form field names to inline messages. Empty means the
// form is valid.
type FieldErrors map[string]string

// Validate checks the onboarding form against its required-field set.
// Purely local; callers must not touch the network when the result is
// non-empty. Message copy matches the existing UI strings.
func Validate(form domain.StaffForm, draftCount int) FieldErrors {
	errs := make(FieldErrors)

	if form.Name == "" {
		errs["name"] = "Name is required."
	}
	if draftCount == 0 {
		errs["file"] = "Image is required."
	}
	if form.Email == "" {
		errs["email"] = "Email is required."
	}
	if form.JoiningDate == "" {
		errs["joiningDate"] = "Date is required."
	}
	if form.PhoneNumber == "" {
		errs["phoneNumber"] = "Phone Number is required."
	}
	if form.Role == "" {
		errs["role"] = "Role is required."
	}
	if !form.TermsAccepted {
		errs["termsAccepted"] = "Terms is required."
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
