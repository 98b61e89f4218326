package booking

import (
	"strings"

	"booking-engine/internal/pkg/errs"
)

var (
	ErrEmptyCustomerName = errs.New("customer name is required")
	ErrNameTooLong       = errs.New("customer name too long")
	ErrInvalidEmail      = errs.New("invalid customer email")
)

const MaxNameLength = 200

type CustomerName struct {
	value string
}

func NewCustomerName(value string) (CustomerName, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return CustomerName{}, ErrEmptyCustomerName
	}
	if len(trimmed) > MaxNameLength {
		return CustomerName{}, ErrNameTooLong
	}
	return CustomerName{value: trimmed}, nil
}

func (n CustomerName) String() string {
	return n.value
}

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	at := strings.Index(trimmed, "@")
	if at < 1 || at == len(trimmed)-1 || !strings.Contains(trimmed[at+1:], ".") {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: trimmed}, nil
}

func (e Email) String() string {
	return e.value
}

// BusinessProfile captures the optional context a customer supplies
// about their business when requesting a consultation.
type BusinessProfile struct {
	Name  string
	Type  string
	Notes string
}

func (p BusinessProfile) IsEmpty() bool {
	return p.Name == "" && p.Type == "" && p.Notes == ""
}
