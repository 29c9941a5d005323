package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/repwise/auth-service/internal/domain/auth/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user model.User) (uuid.UUID, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)

	// SetRefreshToken unconditionally overwrites the stored refresh-token
	// digest; nil clears it (logout).
	SetRefreshToken(ctx context.Context, id uuid.UUID, digest *string) error

	// RotateRefreshToken swaps old for new only if old is still the stored
	// value. Returns ErrNotFound when the row no longer matches, which is
	// how a lost rotation race surfaces.
	RotateRefreshToken(ctx context.Context, id uuid.UUID, oldDigest, newDigest string) error
}

// TokenRepo is the denylist for access tokens cut loose by logout before
// their natural expiry.
type TokenRepo interface {
	RevokeAccess(ctx context.Context, jti string, exp time.Time) error
	IsAccessRevoked(ctx context.Context, jti string) (bool, error)
}
