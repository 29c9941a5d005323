package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/repwise/auth-service/internal/adapters/transport/http/dto"
	"github.com/repwise/auth-service/internal/app/auth/password"
	customErrors "github.com/repwise/auth-service/internal/domain/auth/errors"
	"github.com/repwise/auth-service/internal/domain/auth/model"
	"github.com/repwise/auth-service/internal/domain/auth/repo"
	"github.com/repwise/auth-service/internal/domain/auth/token"
)

// Service is the session manager: it issues, rotates and revokes token
// pairs and keeps the single stored refresh token per user in sync.
type Service interface {
	Register(ctx context.Context, in dto.RegisterDTO) (model.TokenPair, error)
	Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error)
	Refresh(ctx context.Context, in dto.RefreshDTO) (model.TokenPair, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (model.User, error)
	Logout(ctx context.Context, in dto.LogoutDTO) error
}

type authService struct {
	userRepo  repo.UserRepo
	tokenRepo repo.TokenRepo
	tokens    token.Manager
	hasher    *password.Hasher
	v         *validator.Validate
}

func New(
	ur repo.UserRepo,
	tr repo.TokenRepo,
	tm token.Manager,
	h *password.Hasher,
	v *validator.Validate,
) Service {
	return &authService{
		userRepo: ur, tokenRepo: tr, tokens: tm, hasher: h, v: v,
	}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: passwordHash,
		Name:         in.Name,
		DateOfBirth:  in.DOB,
	}
	if _, err = a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.TokenPair{}, customErrors.ErrAlreadyExists
		}
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	return a.issueTokens(ctx, user.ID)
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		// same error as a wrong password: never confirm the account exists
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	if !a.hasher.Verify(in.Password, user.PasswordHash) {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, user.ID)
}

func (a *authService) Refresh(ctx context.Context, in dto.RefreshDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.tokens.ValidateRefreshToken(in.RefreshToken)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, uid)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.TokenPair{}, customErrors.ErrNotFound
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	// A rotated-out token still carries a valid signature; only the digest
	// stored on the user row is accepted.
	presented := digest(in.RefreshToken)
	if user.CurrentRefreshToken == nil || *user.CurrentRefreshToken != presented {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	at, atExp, _, err := a.tokens.GenerateAccessToken(uid, []string{"user"})
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	rt, rtExp, jti, err := a.tokens.GenerateRefreshToken(uid)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}

	// Compare-and-swap: two racing refreshes both read the same stored
	// digest, only one swap succeeds, the loser gets an auth failure.
	err = a.userRepo.RotateRefreshToken(ctx, uid, presented, digest(rt))
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.TokenPair{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "RotateRefreshToken")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:     at,
		RefreshToken:    rt,
		AccessTTL:       atExp.Sub(now),
		RefreshTTL:      rtExp.Sub(now),
		UserID:          uid,
		RefreshTokenJTI: jti,
	}, nil
}

func (a *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userRepo.GetUserByID(ctx, userID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.User{}, customErrors.ErrNotFound
	case err != nil:
		return model.User{}, customErrors.WrapInternal(err, "CurrentUser")
	}
	return user, nil
}

func (a *authService) Logout(ctx context.Context, in dto.LogoutDTO) error {
	if err := a.v.Struct(in); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.tokens.ValidateRefreshToken(in.RefreshToken)
	if err != nil {
		return customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return customErrors.ErrInvalidToken
	}

	if err := a.userRepo.SetRefreshToken(ctx, uid, nil); err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}

	// The access token may already be expired; that is not an error.
	if in.AccessToken != "" {
		if acc, errAcc := a.tokens.ValidateAccessToken(in.AccessToken); errAcc == nil {
			_ = a.tokenRepo.RevokeAccess(ctx, acc.ID, acc.ExpiresAt.Time)
		}
	}
	return nil
}

func (a *authService) issueTokens(ctx context.Context, uid uuid.UUID) (model.TokenPair, error) {
	at, atExp, _, err := a.tokens.GenerateAccessToken(uid, []string{"user"})
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	rt, rtExp, jti, err := a.tokens.GenerateRefreshToken(uid)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}

	// The write must land before the pair is returned; a pair whose refresh
	// token was never persisted can never be rotated.
	d := digest(rt)
	if err = a.userRepo.SetRefreshToken(ctx, uid, &d); err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "StoreRefresh")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:     at,
		RefreshToken:    rt,
		AccessTTL:       atExp.Sub(now),
		RefreshTTL:      rtExp.Sub(now),
		UserID:          uid,
		RefreshTokenJTI: jti,
	}, nil
}

// digest is the at-rest form of a refresh token: the row never stores a
// usable credential.
func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
