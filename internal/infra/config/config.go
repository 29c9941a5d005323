package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Access and refresh tokens are signed with independent secrets so a
	// leaked refresh key cannot forge access tokens and vice versa.
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	Issuer             string
	Audience           string

	HTTPAddress      string
	AllowedOrigins   []string
	AllowCredentials bool
	HTTPSCertFile    string
	HTTPSKeyFile     string

	PasswordPepper string
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	for _, key := range []string{
		"DATABASE_URL",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
		"ACCESS_TOKEN_SECRET", "REFRESH_TOKEN_SECRET",
		"ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
		"JWT_ISSUER", "JWT_AUDIENCE",
		"HTTP_ADDRESS", "ALLOWED_ORIGINS", "ALLOW_CREDENTIALS",
		"HTTPS_CERT_FILE", "HTTPS_KEY_FILE",
		"PASSWORD_PEPPER",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault("ACCESS_TOKEN_TTL", "5m")
	v.SetDefault("REFRESH_TOKEN_TTL", "10m")
	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("REDIS_DB", 0)

	cfg := &Config{
		DatabaseURL:        v.GetString("DATABASE_URL"),
		RedisAddress:       v.GetString("REDIS_ADDRESS"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		AccessTokenSecret:  v.GetString("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: v.GetString("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:    v.GetDuration("REFRESH_TOKEN_TTL"),
		Issuer:             v.GetString("JWT_ISSUER"),
		Audience:           v.GetString("JWT_AUDIENCE"),
		HTTPAddress:        v.GetString("HTTP_ADDRESS"),
		AllowedOrigins:     v.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials:   v.GetBool("ALLOW_CREDENTIALS"),
		HTTPSCertFile:      v.GetString("HTTPS_CERT_FILE"),
		HTTPSKeyFile:       v.GetString("HTTPS_KEY_FILE"),
		PasswordPepper:     v.GetString("PASSWORD_PEPPER"),
	}

	for key, val := range map[string]string{
		"DATABASE_URL":         cfg.DatabaseURL,
		"REDIS_ADDRESS":        cfg.RedisAddress,
		"ACCESS_TOKEN_SECRET":  cfg.AccessTokenSecret,
		"REFRESH_TOKEN_SECRET": cfg.RefreshTokenSecret,
		"JWT_ISSUER":           cfg.Issuer,
		"JWT_AUDIENCE":         cfg.Audience,
	} {
		if val == "" {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	// Rotation is pointless unless the access token dies first.
	if cfg.AccessTokenTTL >= cfg.RefreshTokenTTL {
		return nil, fmt.Errorf("ACCESS_TOKEN_TTL (%v) must be shorter than REFRESH_TOKEN_TTL (%v)",
			cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}

	return cfg, nil
}
