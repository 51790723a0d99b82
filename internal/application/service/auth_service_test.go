package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akhilsingh-git/timesheetapplication/internal/application/port"
	"github.com/akhilsingh-git/timesheetapplication/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}

type mockUserRepo struct {
	createFunc     func(ctx context.Context, user *entity.User) error
	getByIDFunc    func(ctx context.Context, id string) (*entity.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	listFunc       func(ctx context.Context, limit, offset int) ([]*entity.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return nil, nil
}

var testAuthConfig = AuthConfig{
	SecretKey:   "test-secret",
	TokenExpiry: time.Hour,
}

func TestRegister_DefaultsToEmployee(t *testing.T) {
	var created *entity.User
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *entity.User) error {
			user.ID = "u1"
			created = user
			return nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig, nopLogger{})

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		FullName: "Alice",
		Password: "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleEmployee, user.Role)
	assert.Equal(t, "u1", user.ID)
	require.NotNil(t, created)
	assert.NotEqual(t, "s3cret", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret")))
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testAuthConfig, nopLogger{})

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
}

func TestRegister_UnknownRole(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testAuthConfig, nopLogger{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Password: "x",
		Role:     "Superuser",
	})
	require.Error(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *entity.User) error {
			return port.ErrDuplicateKey
		},
	}
	svc := NewAuthService(repo, testAuthConfig, nopLogger{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Password: "x",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func seededUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:           "u1",
		Email:        "alice@example.com",
		FullName:     "Alice",
		Role:         entity.RoleEmployee,
		PasswordHash: string(hash),
	}
}

func TestLogin_Success(t *testing.T) {
	stored := seededUser(t, "s3cret")
	repo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig, nopLogger{})

	token, user, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "u1", user.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	stored := seededUser(t, "s3cret")
	repo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return stored, nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig, nopLogger{})

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testAuthConfig, nopLogger{})

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveToken_RoundTrip(t *testing.T) {
	stored := seededUser(t, "s3cret")
	repo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig, nopLogger{})

	token, _, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	user, err := svc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, entity.RoleEmployee, user.Role)
}

func TestResolveToken_Garbage(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testAuthConfig, nopLogger{})

	_, err := svc.ResolveToken(context.Background(), "not.a.token")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveToken_WrongSecret(t *testing.T) {
	stored := seededUser(t, "s3cret")
	repo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return stored, nil
		},
	}
	issuer := NewAuthService(repo, AuthConfig{SecretKey: "other-secret", TokenExpiry: time.Hour}, nopLogger{})
	verifier := NewAuthService(repo, testAuthConfig, nopLogger{})

	token, _, err := issuer.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = verifier.ResolveToken(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveToken_DeletedUser(t *testing.T) {
	stored := seededUser(t, "s3cret")
	deleted := false
	repo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if deleted {
				return nil, nil
			}
			return stored, nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig, nopLogger{})

	token, _, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	deleted = true
	_, err = svc.ResolveToken(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogin_RepositoryError(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return nil, boom
		},
	}
	svc := NewAuthService(repo, testAuthConfig, nopLogger{})

	_, _, err := svc.Login(context.Background(), "alice@example.com", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
