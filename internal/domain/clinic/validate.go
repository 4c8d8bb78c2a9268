package clinic

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	nationalIDPattern = regexp.MustCompile(`^\d{13}$`)
	phonePattern      = regexp.MustCompile(`^\d{8}$`)
)

const (
	maxNameLen    = 100
	maxLicenseLen = 20
	maxEmailLen   = 100
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validatePatient(p Patient, today time.Time) error {
	if p.FullName == "" || utf8.RuneCountInString(p.FullName) > maxNameLen {
		return invalid("full name is required (max %d chars)", maxNameLen)
	}
	if !nationalIDPattern.MatchString(p.NationalID) {
		return invalid("national id must have 13 digits")
	}
	if p.BirthDate.IsZero() {
		return invalid("birth date is required")
	}
	if !dateOnly(p.BirthDate).Before(dateOnly(today)) {
		return invalid("birth date must be in the past")
	}
	if p.Phone != "" && !phonePattern.MatchString(p.Phone) {
		return invalid("phone must have 8 digits")
	}
	return validateEmail(p.Email)
}

func validateDoctor(d Doctor) error {
	if d.FullName == "" || utf8.RuneCountInString(d.FullName) > maxNameLen {
		return invalid("full name is required (max %d chars)", maxNameLen)
	}
	if d.LicenseNumber == "" || utf8.RuneCountInString(d.LicenseNumber) > maxLicenseLen {
		return invalid("license number is required (max %d chars)", maxLicenseLen)
	}
	if !d.Specialty.Valid() {
		return invalid("unknown specialty %q", d.Specialty)
	}
	return validateEmail(d.Email)
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if len(email) > maxEmailLen {
		return invalid("email too long")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email %q is not valid", email)
	}
	return nil
}

// dateOnly trunca a medianoche en la zona de t.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
