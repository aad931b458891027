package user

import (
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates no user record matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateEmail indicates a signup with an already registered email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, which are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrValidation is the root of all signup validation failures.
	ErrValidation = errors.New("invalid user")
)

// User is an identity record. It is created once at signup and immutable
// afterwards; every transaction references its owner by ID.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	PhoneNumber  *string
	CreatedAt    time.Time
}

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

const (
	minNameLen     = 2
	maxNameLen     = 50
	minPasswordLen = 8
)

// SignupParams carries the fields needed to register a user. Password is the
// plaintext supplied by the caller; it is hashed before anything persists it.
type SignupParams struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber *string
}

func (p SignupParams) Validate() error {
	if n := utf8.RuneCountInString(p.FirstName); n < minNameLen || n > maxNameLen {
		return validationError("first name must be between 2 and 50 characters")
	}

	if n := utf8.RuneCountInString(p.LastName); n < minNameLen || n > maxNameLen {
		return validationError("last name must be between 2 and 50 characters")
	}

	if !emailRe.MatchString(p.Email) {
		return validationError("invalid email address")
	}

	if len(p.Password) < minPasswordLen {
		return validationError("password must be at least 8 characters")
	}

	if p.PhoneNumber != nil && !phoneRe.MatchString(*p.PhoneNumber) {
		return validationError("phone number must match international dialing format")
	}

	return nil
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
