package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/carelink/hospital-portal/internal/core/domain"
	"github.com/carelink/hospital-portal/internal/core/ports"
)

// TokenIssuer abstracts the bearer-token codec.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// AuthService implements registration, login, and profile management against
// the user store. Tokens are stateless, so logout needs no server-side work.
type AuthService struct {
	repo   ports.UserRepository
	tokens TokenIssuer
}

func NewAuthService(repo ports.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates a new account and returns it with a freshly minted token.
// The plaintext password is hashed before the user record is ever built.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, "", domain.ErrValidation
	}
	role := domain.Role(in.Role)
	if !role.Valid() {
		return nil, "", domain.ErrValidation
	}

	// Pre-check for a friendly 409; the store's unique index closes the race
	// between two concurrent registrations with the same email.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}

	specialization := ""
	if role == domain.RoleDoctor {
		specialization = strings.TrimSpace(in.Specialization)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:          email,
		PasswordHash:   string(hash),
		FullName:       strings.TrimSpace(in.FullName),
		Role:           role,
		Phone:          strings.TrimSpace(in.Phone),
		Specialization: specialization,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	signed, err := s.tokens.Issue(created)
	if err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}
	return created, signed, nil
}

// Login verifies credentials and mints a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrValidation
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	return signed, user, nil
}

// CurrentUser loads the account behind an authenticated request.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile applies the non-empty fields of patch. Role and email are
// immutable through this path.
func (s *AuthService) UpdateProfile(ctx context.Context, id string, patch ports.ProfileUpdate) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(patch.FullName); v != "" {
		user.FullName = v
	}
	if v := strings.TrimSpace(patch.Phone); v != "" {
		user.Phone = v
	}
	if v := strings.TrimSpace(patch.Specialization); v != "" {
		user.Specialization = v
	}
	if v := strings.TrimSpace(patch.Department); v != "" {
		user.Department = v
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
