package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/akhilsingh-git/timesheetapplication/internal/application/port"
	"github.com/akhilsingh-git/timesheetapplication/internal/domain/entity"
	"github.com/akhilsingh-git/timesheetapplication/pkg/utils"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

var (
	// ErrEmailTaken is returned when registering an already-known email
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInvalidToken is returned when a bearer token cannot be verified
	ErrInvalidToken = errors.New("could not validate credentials")
)

// AuthConfig holds token issuance settings
type AuthConfig struct {
	SecretKey   string
	TokenExpiry time.Duration
}

// RegisterRequest carries the fields needed to create an account
type RegisterRequest struct {
	Email     string
	FullName  string
	Password  string
	Role      string
	ReportsTo string
}

// AuthService issues and verifies credentials and resolves the Identity
// attached to every workflow operation.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	ResolveToken(ctx context.Context, token string) (*entity.User, error)
}

type authServiceImpl struct {
	users  port.UserRepository
	cfg    AuthConfig
	logger Logger
	now    func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(users port.UserRepository, cfg AuthConfig, logger Logger) AuthService {
	return &authServiceImpl{
		users:  users,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *authServiceImpl) Register(ctx context.Context, req RegisterRequest) (*entity.User, error) {
	if err := utils.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	if role != entity.RoleEmployee && role != entity.RoleManager && role != entity.RoleAdmin {
		return nil, fmt.Errorf("unknown role: %s", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         role,
		ReportsTo:    req.ReportsTo,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, port.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("Failed to register user", "error", err, "email", req.Email)
		return nil, err
	}

	s.logger.Info("User registered", "id", user.ID, "email", user.Email, "role", user.Role)
	return user, nil
}

// Login verifies the password and returns a signed bearer token.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.createToken(user)
	if err != nil {
		s.logger.Error("Failed to sign token", "error", err, "email", email)
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("User logged in", "id", user.ID, "email", user.Email)
	return token, user, nil
}

// ResolveToken verifies a bearer token and loads the identity it names.
func (s *authServiceImpl) ResolveToken(ctx context.Context, tokenString string) (*entity.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *authServiceImpl) createToken(user *entity.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.Email,
		"role": user.Role,
		"id":   user.ID,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.TokenExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}
