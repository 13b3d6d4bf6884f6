package service

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
)

const (
	minPasswordLength = 8
	maxUsernameLength = 150
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Insert(ctx context.Context, user domain.User) (uint, error)
	UpdateCredentials(ctx context.Context, id uint, passwordHash string, staff bool) error
}

type TokenIssuer interface {
	Issue(userID uint) (string, time.Time, error)
}

type AuthService struct {
	users      UserRepository
	tokens     TokenIssuer
	logger     *zap.Logger
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(users UserRepository, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Groups:       []string{},
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}

	id, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.logger.Info("user registered", zap.Uint("userId", id), zap.String("username", username))
	return &user, nil
}

// Login checks the credentials and issues a bearer token. Unknown users and
// wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	invalid := errors.NewUnauthorizedError("unable to log in with provided credentials")

	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return "", time.Time{}, invalid
		}
		return "", time.Time{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("login rejected", zap.Uint("userId", user.ID))
		return "", time.Time{}, invalid
	}

	return s.tokens.Issue(user.ID)
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// EnsureAdmin creates the staff user or resets its password and staff flag.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	if len(password) < minPasswordLength {
		return errors.NewValidationError("admin password too short", errors.ValidationDetail{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		if err := s.users.UpdateCredentials(ctx, existing.ID, string(hash), true); err != nil {
			return err
		}
		s.logger.Info("admin user updated", zap.Uint("userId", existing.ID), zap.String("username", username))
		return nil
	}
	if _, ok := errors.IsNotFoundError(err); !ok {
		return err
	}

	id, err := s.users.Insert(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Staff:        true,
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		return err
	}

	s.logger.Info("admin user created", zap.Uint("userId", id), zap.String("username", username))
	return nil
}

func validateRegistration(username, email, password string) error {
	var details []errors.ValidationDetail

	switch {
	case username == "":
		details = append(details, errors.ValidationDetail{Field: "username", Message: "username is required"})
	case len(username) > maxUsernameLength:
		details = append(details, errors.ValidationDetail{Field: "username", Message: "username must be at most 150 characters"})
	case !usernamePattern.MatchString(username):
		details = append(details, errors.ValidationDetail{Field: "username", Message: "username may contain only letters, digits and @/./+/-/_"})
	}

	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			details = append(details, errors.ValidationDetail{Field: "email", Message: "email must be a valid address"})
		}
	}

	if len(password) < minPasswordLength {
		details = append(details, errors.ValidationDetail{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		})
	}

	if len(details) > 0 {
		return errors.NewValidationError("validation failed", details...)
	}
	return nil
}
