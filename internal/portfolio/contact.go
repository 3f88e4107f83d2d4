package portfolio

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/folio/internal/apperr"
)

// Contact form limits.
const (
	MaxNameLen    = 100
	MaxEmailLen   = 254
	MaxMessageLen = 5000
)

// Messages returned to the client for rejected submissions.
const (
	MsgMissingFields = "Missing required fields"
	MsgInvalidInput  = "Invalid input"
	MsgInvalidEmail  = "Invalid email"
)

// ContactInput is an incoming contact form submission.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Trimmed returns in with surrounding whitespace removed from every field.
func (in ContactInput) Trimmed() ContactInput {
	return ContactInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}
}

// ValidationError is a rejected submission with a client-facing message.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message + ": " + e.Err.Error()
}

// Unwrap lets errors.Is match apperr.ErrInvalidInput.
func (e *ValidationError) Unwrap() []error {
	return []error{apperr.ErrInvalidInput, e.Err}
}

// Validate checks presence, then length limits, then email format.
func (in ContactInput) Validate() error {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Message, validation.Required),
	); err != nil {
		return &ValidationError{Message: MsgMissingFields, Err: err}
	}
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.RuneLength(0, MaxNameLen)),
		validation.Field(&in.Email, validation.RuneLength(0, MaxEmailLen)),
		validation.Field(&in.Message, validation.RuneLength(0, MaxMessageLen)),
	); err != nil {
		return &ValidationError{Message: MsgInvalidInput, Err: err}
	}
	if err := validation.Validate(in.Email, is.EmailFormat); err != nil {
		return &ValidationError{Message: MsgInvalidEmail, Err: err}
	}
	return nil
}
