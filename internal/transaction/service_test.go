package transaction_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/prajwal2403/fintrack/internal/transaction"
	"github.com/prajwal2403/fintrack/internal/user"
)

var (
	ownerID    = uuid.MustParse("6f1cbb1e-55c5-4de4-9df2-b00788f87a53")
	strangerID = uuid.MustParse("9a2c3d4e-1111-2222-3333-444455556666")
	txID       = uuid.MustParse("0c7b159f-7d3a-4a9d-8a3e-2f1d0a9b8c7d")
)

func owner() *user.User {
	return &user.User{ID: ownerID, Email: "owner@example.com"}
}

func stranger() *user.User {
	return &user.User{ID: strangerID, Email: "stranger@example.com"}
}

func ptr[T any](v T) *T { return &v }

func newService(t *testing.T) (*transaction.Service, *transaction.MockRepository, *transaction.MockUserDirectory) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	users := transaction.NewMockUserDirectory(ctrl)

	return transaction.NewService(repo, users), repo, users
}

func TestService_Authorize(t *testing.T) {
	stored := &transaction.Transaction{
		ID:     txID,
		UserID: ownerID,
		Amount: decimal.NewFromInt(10),
	}

	type testCase struct {
		name       string
		rawID      string
		ownerEmail string
		setupMock  func(repo *transaction.MockRepository, users *transaction.MockUserDirectory)
		wantErr    error
	}

	tests := []testCase{
		{
			name:       "OwnerSucceeds",
			rawID:      txID.String(),
			ownerEmail: "owner@example.com",
			setupMock: func(repo *transaction.MockRepository, users *transaction.MockUserDirectory) {
				users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
				repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(stored, nil)
			},
		},
		{
			name:       "UnknownUser",
			rawID:      txID.String(),
			ownerEmail: "nobody@example.com",
			setupMock: func(repo *transaction.MockRepository, users *transaction.MockUserDirectory) {
				users.EXPECT().FindByEmail(gomock.Any(), "nobody@example.com").Return(nil, user.ErrNotFound)
			},
			wantErr: user.ErrNotFound,
		},
		{
			// A malformed id never reaches the repository.
			name:       "MalformedID",
			rawID:      "not-a-uuid",
			ownerEmail: "owner@example.com",
			setupMock: func(repo *transaction.MockRepository, users *transaction.MockUserDirectory) {
				users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
			},
			wantErr: transaction.ErrInvalidID,
		},
		{
			name:       "Missing",
			rawID:      txID.String(),
			ownerEmail: "owner@example.com",
			setupMock: func(repo *transaction.MockRepository, users *transaction.MockUserDirectory) {
				users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
				repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(nil, transaction.ErrNotFound)
			},
			wantErr: transaction.ErrNotFound,
		},
		{
			name:       "StrangerForbidden",
			rawID:      txID.String(),
			ownerEmail: "stranger@example.com",
			setupMock: func(repo *transaction.MockRepository, users *transaction.MockUserDirectory) {
				users.EXPECT().FindByEmail(gomock.Any(), "stranger@example.com").Return(stranger(), nil)
				repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(stored, nil)
			},
			wantErr: transaction.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, users := newService(t)
			tt.setupMock(repo, users)

			got, err := svc.Authorize(context.Background(), tt.rawID, tt.ownerEmail)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored, got)
		})
	}
}

func TestService_Create(t *testing.T) {
	yesterday := time.Now().Add(-24 * time.Hour)

	type testCase struct {
		name      string
		draft     transaction.Draft
		setupMock func(repo *transaction.MockRepository, users *transaction.MockUserDirectory)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			draft: transaction.Draft{
				Amount:      decimal.RequireFromString("25.50"),
				Description: ptr("groceries"),
				Date:        yesterday,
				Category:    ptr("food"),
			},
			setupMock: func(repo *transaction.MockRepository, users *transaction.MockUserDirectory) {
				users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
				repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "UnknownOwner",
			draft: transaction.Draft{
				Amount: decimal.NewFromInt(10),
				Date:   yesterday,
			},
			setupMock: func(repo *transaction.MockRepository, users *transaction.MockUserDirectory) {
				users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(nil, user.ErrNotFound)
			},
			wantErr: user.ErrNotFound,
		},
		{
			name: "ZeroAmount",
			draft: transaction.Draft{
				Amount: decimal.Zero,
				Date:   yesterday,
			},
			setupMock: func(repo *transaction.MockRepository, users *transaction.MockUserDirectory) {
				users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
			},
			wantErr: transaction.ErrValidation,
		},
		{
			name: "NegativeAmount",
			draft: transaction.Draft{
				Amount: decimal.NewFromInt(-5),
				Date:   yesterday,
			},
			setupMock: func(repo *transaction.MockRepository, users *transaction.MockUserDirectory) {
				users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
			},
			wantErr: transaction.ErrValidation,
		},
		{
			name: "FutureDate",
			draft: transaction.Draft{
				Amount: decimal.NewFromInt(10),
				Date:   time.Now().Add(time.Hour),
			},
			setupMock: func(repo *transaction.MockRepository, users *transaction.MockUserDirectory) {
				users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
			},
			wantErr: transaction.ErrValidation,
		},
		{
			name: "FarFutureDate",
			draft: transaction.Draft{
				Amount: decimal.NewFromInt(10),
				Date:   time.Now().AddDate(100, 0, 0),
			},
			setupMock: func(repo *transaction.MockRepository, users *transaction.MockUserDirectory) {
				users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
			},
			wantErr: transaction.ErrValidation,
		},
		{
			name: "DescriptionTooLong",
			draft: transaction.Draft{
				Amount:      decimal.NewFromInt(10),
				Description: ptr(strings.Repeat("x", 201)),
				Date:        yesterday,
			},
			setupMock: func(repo *transaction.MockRepository, users *transaction.MockUserDirectory) {
				users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
			},
			wantErr: transaction.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, users := newService(t)
			tt.setupMock(repo, users)

			got, err := svc.Create(context.Background(), "owner@example.com", tt.draft)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, ownerID, got.UserID)
			assert.NotEmpty(t, got.ID)
			assert.True(t, got.Amount.Equal(tt.draft.Amount))
		})
	}
}

func TestService_Update_PartialPatch(t *testing.T) {
	svc, repo, users := newService(t)

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	stored := &transaction.Transaction{
		ID:          txID,
		UserID:      ownerID,
		Amount:      decimal.RequireFromString("25.50"),
		Description: ptr("groceries"),
		Date:        date,
		Category:    ptr("food"),
	}

	users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
	repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(stored, nil)

	stamp := time.Now()
	repo.EXPECT().
		UpdateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			tx.UpdatedAt = &stamp
			return nil
		})

	got, err := svc.Update(context.Background(), txID.String(), "owner@example.com", transaction.Patch{
		Category: ptr("household"),
	})
	require.NoError(t, err)

	// Only the patched field changed.
	assert.Equal(t, "household", *got.Category)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("25.50")))
	assert.Equal(t, "groceries", *got.Description)
	assert.True(t, got.Date.Equal(date))
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, stamp, *got.UpdatedAt)
}

func TestService_Update_RevalidatesPatch(t *testing.T) {
	svc, repo, users := newService(t)

	stored := &transaction.Transaction{
		ID:     txID,
		UserID: ownerID,
		Amount: decimal.NewFromInt(10),
		Date:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
	repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(stored, nil)

	_, err := svc.Update(context.Background(), txID.String(), "owner@example.com", transaction.Patch{
		Date: ptr(time.Now().AddDate(0, 0, 7)),
	})
	assert.ErrorIs(t, err, transaction.ErrValidation)
}

func TestService_Delete(t *testing.T) {
	stored := &transaction.Transaction{ID: txID, UserID: ownerID, Amount: decimal.NewFromInt(10)}

	t.Run("Success", func(t *testing.T) {
		svc, repo, users := newService(t)

		users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
		repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(stored, nil)
		repo.EXPECT().DeleteTransaction(gomock.Any(), txID).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), txID.String(), "owner@example.com"))
	})

	t.Run("LostRace", func(t *testing.T) {
		svc, repo, users := newService(t)

		// The record vanished between the ownership check and the
		// delete; the caller gets NotFound, not silent success.
		users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
		repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(stored, nil)
		repo.EXPECT().DeleteTransaction(gomock.Any(), txID).Return(transaction.ErrNotFound)

		err := svc.Delete(context.Background(), txID.String(), "owner@example.com")
		assert.ErrorIs(t, err, transaction.ErrNotFound)
	})

	t.Run("Stranger", func(t *testing.T) {
		svc, repo, users := newService(t)

		users.EXPECT().FindByEmail(gomock.Any(), "stranger@example.com").Return(stranger(), nil)
		repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(stored, nil)

		err := svc.Delete(context.Background(), txID.String(), "stranger@example.com")
		assert.ErrorIs(t, err, transaction.ErrForbidden)
	})
}

func TestService_List(t *testing.T) {
	svc, repo, users := newService(t)

	users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
	repo.EXPECT().ListByUser(gomock.Any(), ownerID).Return([]*transaction.Transaction{
		{ID: uuid.New(), UserID: ownerID},
		{ID: uuid.New(), UserID: ownerID},
	}, nil)

	txs, err := svc.List(context.Background(), "owner@example.com")
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestService_ListByUserID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, repo, users := newService(t)

		users.EXPECT().FindByID(gomock.Any(), ownerID).Return(owner(), nil)
		repo.EXPECT().ListByUser(gomock.Any(), ownerID).Return([]*transaction.Transaction{{ID: txID}}, nil)

		txs, err := svc.ListByUserID(context.Background(), ownerID.String())
		require.NoError(t, err)
		assert.Len(t, txs, 1)
	})

	t.Run("MalformedID", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.ListByUserID(context.Background(), "nope")
		assert.ErrorIs(t, err, transaction.ErrInvalidID)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		svc, _, users := newService(t)

		users.EXPECT().FindByID(gomock.Any(), ownerID).Return(nil, user.ErrNotFound)

		_, err := svc.ListByUserID(context.Background(), ownerID.String())
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestService_CreateBatch(t *testing.T) {
	yesterday := time.Now().Add(-24 * time.Hour)

	t.Run("AtomicSuccess", func(t *testing.T) {
		svc, repo, users := newService(t)

		users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)
		repo.EXPECT().
			CreateTransactions(gomock.Any(), gomock.Len(2)).
			Return(nil)

		txs, err := svc.CreateBatch(context.Background(), "owner@example.com", []transaction.Draft{
			{Amount: decimal.NewFromInt(10), Date: yesterday},
			{Amount: decimal.NewFromInt(20), Date: yesterday},
		})
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, ownerID, txs[0].UserID)
		assert.Equal(t, ownerID, txs[1].UserID)
	})

	t.Run("OneBadDraftRejectsAll", func(t *testing.T) {
		svc, _, users := newService(t)

		users.EXPECT().FindByEmail(gomock.Any(), "owner@example.com").Return(owner(), nil)

		_, err := svc.CreateBatch(context.Background(), "owner@example.com", []transaction.Draft{
			{Amount: decimal.NewFromInt(10), Date: yesterday},
			{Amount: decimal.Zero, Date: yesterday},
		})
		assert.ErrorIs(t, err, transaction.ErrValidation)
	})
}
