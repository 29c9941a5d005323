package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	customErrors "github.com/repwise/auth-service/internal/domain/auth/errors"
	domaintoken "github.com/repwise/auth-service/internal/domain/auth/token"
	"github.com/repwise/auth-service/internal/infra/config"
)

type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	audience      string
}

func NewManager(cfg *config.Config) (*Manager, error) {
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, customErrors.WrapInternal(errors.New("empty signing secret"), "NewManager")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, customErrors.WrapInternal(errors.New("access and refresh secrets must differ"), "NewManager")
	}

	return &Manager{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
	}, nil
}

func (m *Manager) GenerateAccessToken(userID uuid.UUID, roles []string) (token string, exp time.Time, jti string, err error) {
	jti = uuid.NewString()
	now := time.Now()

	claims := domaintoken.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			ID:        jti,
		},
		Roles: roles,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessSecret)
	if err != nil {
		return "", time.Time{}, "", customErrors.WrapInternal(err, "sign access token")
	}

	return signed, claims.ExpiresAt.Time, jti, nil
}

func (m *Manager) GenerateRefreshToken(userID uuid.UUID) (token string, exp time.Time, jti string, err error) {
	jti = uuid.NewString()
	now := time.Now()

	claims := domaintoken.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
	if err != nil {
		return "", time.Time{}, "", customErrors.WrapInternal(err, "sign refresh token")
	}

	return signed, claims.ExpiresAt.Time, jti, nil
}

func (m *Manager) ValidateAccessToken(raw string) (domaintoken.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &domaintoken.AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return m.accessSecret, nil
	}, jwt.WithIssuedAt())

	if err != nil || !token.Valid {
		return domaintoken.AccessClaims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*domaintoken.AccessClaims)
	if !ok {
		return domaintoken.AccessClaims{}, customErrors.WrapInternal(
			errors.New("claims not AccessClaims"), "ValidateAccessToken",
		)
	}

	if err := m.checkIssuerAudience(claims.Issuer, claims.Audience); err != nil {
		return domaintoken.AccessClaims{}, err
	}

	return *claims, nil
}

func (m *Manager) ValidateRefreshToken(raw string) (domaintoken.RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &domaintoken.RefreshClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return m.refreshSecret, nil
	}, jwt.WithIssuedAt())

	if err != nil || !token.Valid {
		return domaintoken.RefreshClaims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*domaintoken.RefreshClaims)
	if !ok {
		return domaintoken.RefreshClaims{}, customErrors.WrapInternal(
			errors.New("claims not RefreshClaims"), "ValidateRefreshToken")
	}

	if err := m.checkIssuerAudience(claims.Issuer, claims.Audience); err != nil {
		return domaintoken.RefreshClaims{}, err
	}

	return *claims, nil
}

func (m *Manager) checkIssuerAudience(issuer string, audience jwt.ClaimStrings) error {
	if m.issuer != "" && issuer != m.issuer {
		return customErrors.ErrInvalidToken
	}
	if m.audience != "" {
		found := false
		for _, a := range audience {
			if a == m.audience {
				found = true
				break
			}
		}
		if !found {
			return customErrors.ErrInvalidToken
		}
	}
	return nil
}
