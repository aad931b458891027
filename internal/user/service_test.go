package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/prajwal2403/fintrack/internal/user"
)

func ptr(s string) *string { return &s }

func TestService_Signup(t *testing.T) {
	type testCase struct {
		name      string
		params    user.SignupParams
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	valid := user.SignupParams{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct-horse",
	}

	tests := []testCase{
		{
			name:   "Success",
			params: valid,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "SuccessWithPhone",
			params: user.SignupParams{
				FirstName:   "Ada",
				LastName:    "Lovelace",
				Email:       "ada@example.com",
				Password:    "correct-horse",
				PhoneNumber: ptr("+14155550123"),
			},
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "ShortFirstName",
			params: user.SignupParams{
				FirstName: "A",
				LastName:  "Lovelace",
				Email:     "ada@example.com",
				Password:  "correct-horse",
			},
			wantErr: user.ErrValidation,
		},
		{
			name: "BadEmail",
			params: user.SignupParams{
				FirstName: "Ada",
				LastName:  "Lovelace",
				Email:     "not-an-email",
				Password:  "correct-horse",
			},
			wantErr: user.ErrValidation,
		},
		{
			name: "ShortPassword",
			params: user.SignupParams{
				FirstName: "Ada",
				LastName:  "Lovelace",
				Email:     "ada@example.com",
				Password:  "short",
			},
			wantErr: user.ErrValidation,
		},
		{
			name: "BadPhone",
			params: user.SignupParams{
				FirstName:   "Ada",
				LastName:    "Lovelace",
				Email:       "ada@example.com",
				Password:    "correct-horse",
				PhoneNumber: ptr("0123"),
			},
			wantErr: user.ErrValidation,
		},
		{
			name:   "DuplicateEmail",
			params: valid,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(user.ErrDuplicateEmail)
			},
			wantErr: user.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := user.NewService(repo)
			got, err := svc.Signup(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.params.Email, got.Email)

			// The repository must only ever see the bcrypt hash.
			assert.NotEqual(t, tt.params.Password, got.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte(tt.params.Password)))
		})
	}
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &user.User{
		Email:        "ada@example.com",
		PasswordHash: string(hash),
	}

	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "ada@example.com",
			password: "correct-horse",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					FindByEmail(gomock.Any(), "ada@example.com").
					Return(stored, nil)
			},
		},
		{
			name:     "WrongPassword",
			email:    "ada@example.com",
			password: "wrong-horse",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					FindByEmail(gomock.Any(), "ada@example.com").
					Return(stored, nil)
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name:     "UnknownEmail",
			email:    "nobody@example.com",
			password: "correct-horse",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					FindByEmail(gomock.Any(), "nobody@example.com").
					Return(nil, user.ErrNotFound)
			},
			// Same failure as a wrong password, by design.
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name:     "RepoError",
			email:    "ada@example.com",
			password: "correct-horse",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					FindByEmail(gomock.Any(), "ada@example.com").
					Return(nil, errors.New("db error"))
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := user.NewService(repo)
			got, err := svc.Login(context.Background(), tt.email, tt.password)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			case tt.name == "RepoError":
				assert.Error(t, err)
				assert.NotErrorIs(t, err, user.ErrInvalidCredentials)
			default:
				require.NoError(t, err)
				assert.Equal(t, stored.Email, got.Email)
			}
		})
	}
}
