package transaction

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound indicates no transaction exists for the given id.
	ErrNotFound = errors.New("transaction not found")

	// ErrForbidden indicates the requester is authenticated but does not
	// own the transaction.
	ErrForbidden = errors.New("not authorized to access this transaction")

	// ErrInvalidID indicates a syntactically malformed transaction id.
	ErrInvalidID = errors.New("invalid transaction ID")

	// ErrValidation is the root of all draft validation failures.
	ErrValidation = errors.New("invalid transaction")
)

const maxDescriptionLen = 200

// Transaction is a financial event owned by exactly one user. UserID is set
// at creation and never changes.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
	Category    *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Draft carries caller-supplied transaction fields before ownership and
// timestamps are stamped on.
type Draft struct {
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
	Category    *string
}

// Validate checks the draft invariants against the given moment. The date
// check only happens here; a record whose date later drifts into the past
// is never re-validated.
func (d Draft) Validate(now time.Time) error {
	if !d.Amount.IsPositive() {
		return validationError("amount must be a positive number")
	}

	if d.Description != nil && utf8.RuneCountInString(*d.Description) > maxDescriptionLen {
		return validationError("description must be at most 200 characters")
	}

	if d.Date.IsZero() {
		return validationError("date is required")
	}

	if d.Date.After(now) {
		return validationError("date cannot be in the future")
	}

	return nil
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Amount      *decimal.Decimal
	Description *string
	Date        *time.Time
	Category    *string
}

// apply overlays the patch onto the transaction and returns the resulting
// draft for re-validation.
func (p Patch) apply(tx *Transaction) Draft {
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}

	if p.Description != nil {
		tx.Description = p.Description
	}

	if p.Date != nil {
		tx.Date = *p.Date
	}

	if p.Category != nil {
		tx.Category = p.Category
	}

	return Draft{
		Amount:      tx.Amount,
		Description: tx.Description,
		Date:        tx.Date,
		Category:    tx.Category,
	}
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
