// Package validator implements the pure input validation rules that gate
// every mutation in the system: names, emails, PT phone numbers, table
// capacities, reservation dates and table numbers.  All checks are
// stateless; failures are reported as *ValidationError carrying a
// user-facing message in Portuguese, which handlers surface verbatim.
package validator

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region used to parse phone numbers given
// without an international prefix.
const DefaultPhoneRegion = "PT"

// MaxAdvanceDays bounds how far in the future a reservation may be placed.
const MaxAdvanceDays = 90

// Capacity bounds shared by table capacity and reservation party size.
const (
	MinCapacity = 1
	MaxCapacity = 20
)

// ValidationError signals a user-correctable input problem.  The message
// is meant for display and never wraps an internal storage error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// namePattern accepts letters including Latin-1 accented characters,
// spaces, hyphens, apostrophes and periods.
var namePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s\-'.]+$`)

// tableNumberPattern accepts alphanumerics plus hyphen and underscore.
var tableNumberPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)

// ValidateName checks a person or restaurant name: non-empty after trim,
// length within [2,100] and composed only of letters, spaces, hyphens,
// apostrophes and periods.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationError("Nome é obrigatório")
	}
	if len([]rune(name)) < 2 {
		return NewValidationError("Nome deve ter pelo menos 2 caracteres")
	}
	if len([]rune(name)) > 100 {
		return NewValidationError("Nome deve ter no máximo 100 caracteres")
	}
	if !namePattern.MatchString(name) {
		return NewValidationError("Nome contém caracteres inválidos")
	}
	return nil
}

// ValidateEmail performs syntactic email validation via the standard
// address parser.  The address must be bare (no display name).
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return NewValidationError("Email é obrigatório")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return NewValidationError("Email inválido")
	}
	return nil
}

// ValidatePhone parses the number against the PT region and requires a
// valid national or international number.
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return NewValidationError("Telemóvel é obrigatório")
	}
	parsed, err := phonenumbers.Parse(phone, DefaultPhoneRegion)
	if err != nil {
		return NewValidationError("Formato de telemóvel inválido")
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return NewValidationError("Número de telemóvel inválido")
	}
	return nil
}

// ValidateCapacity checks a table capacity or reservation party size
// against the inclusive [1,20] range.
func ValidateCapacity(capacity int) error {
	if capacity < MinCapacity {
		return NewValidationError("Capacidade deve ser pelo menos 1")
	}
	if capacity > MaxCapacity {
		return NewValidationError("Capacidade não pode exceder 20")
	}
	return nil
}

// ValidateReservationDate checks that a reservation timestamp is set,
// not in the past, and at most 90 days ahead of the current time.
func ValidateReservationDate(at time.Time) error {
	if at.IsZero() {
		return NewValidationError("Data da reserva é obrigatória")
	}
	now := time.Now()
	if at.Before(now) {
		return NewValidationError("Não é possível fazer reservas para datas passadas")
	}
	if at.After(now.Add(MaxAdvanceDays * 24 * time.Hour)) {
		return NewValidationError("Reservas podem ser feitas com até 90 dias de antecedência")
	}
	return nil
}

// ValidateTableNumber checks a table label: non-empty after trim, at most
// 10 characters, alphanumeric plus hyphen and underscore.
func ValidateTableNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return NewValidationError("Número da mesa é obrigatório")
	}
	if len(number) > 10 {
		return NewValidationError("Número da mesa deve ter no máximo 10 caracteres")
	}
	if !tableNumberPattern.MatchString(number) {
		return NewValidationError("Número da mesa contém caracteres inválidos")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email for storage and lookup so
// that "X@Y.com" and "x@y.com" resolve to the same client.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// prepositions that stay lowercase when capitalizing Portuguese names.
var prepositions = map[string]bool{
	"de": true, "da": true, "do": true, "das": true, "dos": true,
	"e": true, "em": true, "na": true, "no": true, "nas": true, "nos": true,
}

// CapitalizeName title-cases a Portuguese proper name, keeping common
// prepositions in lowercase except when they lead the name.
func CapitalizeName(name string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	for i, w := range words {
		if i == 0 || !prepositions[w] {
			r := []rune(w)
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
			words[i] = string(r)
		}
	}
	return strings.Join(words, " ")
}

// CleanString collapses runs of whitespace into single spaces and trims.
func CleanString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
