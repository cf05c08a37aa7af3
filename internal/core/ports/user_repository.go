package ports

import (
	"context"

	"github.com/carelink/hospital-portal/internal/core/domain"
)

// UserRepository defines the interface for user persistence. Email uniqueness
// is enforced by the store itself, so two concurrent Create calls with the
// same email cannot both succeed.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}
