package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"watchlist_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of UserRepository.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

// mockJWTGenerator is a mock implementation of JWTGenerator.
type mockJWTGenerator struct {
	GenerateTokenFunc func(userID uint, email string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "mock-jwt-token", nil
}

func newTestUsecase(repo UserRepository, gen JWTGenerator) *authUsecase {
	uc := NewAuthUsecase(repo, gen)
	uc.cost = bcrypt.MinCost
	return uc
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("successful signup", func(t *testing.T) {
		var stored *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(_ context.Context, user *entity.User) error {
				stored = user
				return nil
			},
		}

		err := newTestUsecase(repo, &mockJWTGenerator{}).Signup(context.Background(), " Test@Example.com ", "password123")

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "test@example.com", stored.Email)
		assert.NotEqual(t, "password123", stored.Password, "password must be hashed")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
	})

	t.Run("short password", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(context.Context, *entity.User) error {
				t.Fatal("Create must not be called")
				return nil
			},
		}

		err := newTestUsecase(repo, &mockJWTGenerator{}).Signup(context.Background(), "test@example.com", "short")

		assert.EqualError(t, err, "password must be at least 8 characters long")
	})

	t.Run("repository create failure", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(context.Context, *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}

		err := newTestUsecase(repo, &mockJWTGenerator{}).Signup(context.Background(), "test@example.com", "password123")

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	testUser := &entity.User{ID: 1, Email: "test@example.com", Password: string(hashedPassword)}

	findTestUser := func(_ context.Context, email string) (*entity.User, error) {
		if email == testUser.Email {
			return testUser, nil
		}
		return nil, ErrUserNotFound
	}

	tests := []struct {
		name      string
		email     string
		password  string
		generate  func(userID uint, email string) (string, error)
		wantToken string
		wantErr   error
		errMsg    string
	}{
		{
			name:      "successful login",
			email:     "test@example.com",
			password:  "password123",
			wantToken: "mock-jwt-token",
		},
		{
			name:      "email is normalized",
			email:     "TEST@example.com",
			password:  "password123",
			wantToken: "mock-jwt-token",
		},
		{
			name:     "user not found",
			email:    "wrong@example.com",
			password: "password123",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "incorrect password",
			email:    "test@example.com",
			password: "wrong-password",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "JWT generation failure",
			email:    "test@example.com",
			password: "password123",
			generate: func(uint, string) (string, error) {
				return "", errors.New("failed to sign token")
			},
			errMsg: "failed to generate token: failed to sign token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockJWTGenerator{
				GenerateTokenFunc: func(userID uint, email string) (string, error) {
					assert.Equal(t, testUser.ID, userID)
					assert.Equal(t, testUser.Email, email)
					if tt.generate != nil {
						return tt.generate(userID, email)
					}
					return "mock-jwt-token", nil
				},
			}
			uc := newTestUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, gen)

			token, err := uc.Login(context.Background(), tt.email, tt.password)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			case tt.errMsg != "":
				assert.EqualError(t, err, tt.errMsg)
				assert.Empty(t, token)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}
