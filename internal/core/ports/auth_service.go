package ports

import (
	"context"

	"github.com/carelink/hospital-portal/internal/core/domain"
)

// RegisterInput carries everything needed to create a portal account.
type RegisterInput struct {
	Email          string
	Password       string
	FullName       string
	Role           string
	Phone          string
	Specialization string
}

// ProfileUpdate is a partial profile patch. Empty fields are left untouched;
// role and email have no representation here and cannot change through it.
type ProfileUpdate struct {
	FullName       string
	Phone          string
	Specialization string
	Department     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfileUpdate) (*domain.User, error)
}
