package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prajwal2403/fintrack/internal/user"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

// UserDirectory resolves transaction owners. Satisfied by user.Service.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type Service struct {
	repo  Repository
	users UserDirectory
}

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

// Authorize is the single ownership checkpoint. Every id-scoped operation
// goes through it; none of them re-implement the check. The order is fixed:
// resolve the requester, reject malformed ids before they reach the store,
// then existence, then ownership.
func (s *Service) Authorize(ctx context.Context, rawID, ownerEmail string) (*Transaction, error) {
	owner, err := s.users.FindByEmail(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrInvalidID
	}

	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if tx.UserID != owner.ID {
		return nil, ErrForbidden
	}

	return tx, nil
}

// Create validates the draft and persists it on behalf of the owner.
func (s *Service) Create(ctx context.Context, ownerEmail string, draft Draft) (*Transaction, error) {
	owner, err := s.users.FindByEmail(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	if err := draft.Validate(time.Now()); err != nil {
		return nil, err
	}

	tx := &Transaction{
		UserID:      owner.ID,
		Amount:      draft.Amount,
		Description: draft.Description,
		Date:        draft.Date,
		Category:    draft.Category,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// CreateBatch validates every draft up front and inserts them atomically.
func (s *Service) CreateBatch(ctx context.Context, ownerEmail string, drafts []Draft) ([]*Transaction, error) {
	owner, err := s.users.FindByEmail(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	if len(drafts) == 0 {
		return nil, nil
	}

	now := time.Now()
	txs := make([]*Transaction, len(drafts))

	for i, draft := range drafts {
		if err := draft.Validate(now); err != nil {
			return nil, err
		}

		txs[i] = &Transaction{
			UserID:      owner.ID,
			Amount:      draft.Amount,
			Description: draft.Description,
			Date:        draft.Date,
			Category:    draft.Category,
		}
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, err
	}

	return txs, nil
}

// List returns all of the owner's transactions, most recent date first.
func (s *Service) List(ctx context.Context, ownerEmail string) ([]*Transaction, error) {
	owner, err := s.users.FindByEmail(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByUser(ctx, owner.ID)
}

// Get delegates entirely to Authorize.
func (s *Service) Get(ctx context.Context, rawID, ownerEmail string) (*Transaction, error) {
	return s.Authorize(ctx, rawID, ownerEmail)
}

// Update authorizes, overlays only the fields present in the patch,
// re-validates, and persists. UpdatedAt is stamped by the store.
func (s *Service) Update(ctx context.Context, rawID, ownerEmail string, patch Patch) (*Transaction, error) {
	tx, err := s.Authorize(ctx, rawID, ownerEmail)
	if err != nil {
		return nil, err
	}

	draft := patch.apply(tx)
	if err := draft.Validate(time.Now()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Delete authorizes and deletes. A delete that affects zero rows (the
// record vanished between the ownership check and the delete) reports
// ErrNotFound rather than succeeding silently.
func (s *Service) Delete(ctx context.Context, rawID, ownerEmail string) error {
	tx, err := s.Authorize(ctx, rawID, ownerEmail)
	if err != nil {
		return err
	}

	return s.repo.DeleteTransaction(ctx, tx.ID)
}

// ListByUserID is the unscoped administrative listing. It bypasses the
// authentication gate; the router only exposes it behind the admin token.
func (s *Service) ListByUserID(ctx context.Context, rawUserID string) ([]*Transaction, error) {
	id, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, ErrInvalidID
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return nil, err
	}

	return s.repo.ListByUser(ctx, id)
}
