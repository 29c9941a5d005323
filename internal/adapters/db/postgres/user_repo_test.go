package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/repwise/auth-service/internal/domain/auth/errors"
	"github.com/repwise/auth-service/internal/domain/auth/model"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Email: "a@x.com", Name: "Alice", PasswordHash: "h", CreatedAt: time.Now()}

	id, err := repo.CreateUser(ctx, user)
	if err != nil || id != user.ID {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil || got.ID != user.ID {
		t.Fatalf("get by email: %v", err)
	}
	got2, err := repo.GetUserByID(ctx, user.ID)
	if err != nil || got2.Email != user.Email {
		t.Fatalf("get by id: %v", err)
	}
	if got2.CurrentRefreshToken != nil {
		t.Fatal("fresh user must have no stored refresh token")
	}
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, model.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.CreateUser(ctx, model.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: "h"})
	if !errors.IsAlreadyExists(err) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
}

func TestUserRepo_GetMissing(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	ctx := context.Background()

	if _, err := repo.GetUserByEmail(ctx, "nobody@x.com"); !errors.IsNotFound(err) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := repo.GetUserByID(ctx, uuid.New()); !errors.IsNotFound(err) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUserRepo_SetAndRotateRefreshToken(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: "h"}
	if _, err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	first := "digest-1"
	if err := repo.SetRefreshToken(ctx, user.ID, &first); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := repo.RotateRefreshToken(ctx, user.ID, "digest-1", "digest-2"); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	got, _ := repo.GetUserByID(ctx, user.ID)
	if got.CurrentRefreshToken == nil || *got.CurrentRefreshToken != "digest-2" {
		t.Fatalf("stored digest not rotated: %v", got.CurrentRefreshToken)
	}

	// stale swap loses
	if err := repo.RotateRefreshToken(ctx, user.ID, "digest-1", "digest-3"); !errors.IsNotFound(err) {
		t.Fatalf("stale rotation must fail with ErrNotFound, got %v", err)
	}

	// clearing logs the user out
	if err := repo.SetRefreshToken(ctx, user.ID, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ = repo.GetUserByID(ctx, user.ID)
	if got.CurrentRefreshToken != nil {
		t.Fatal("refresh token not cleared")
	}
	if err := repo.RotateRefreshToken(ctx, user.ID, "digest-2", "digest-3"); !errors.IsNotFound(err) {
		t.Fatalf("rotation after clear must fail, got %v", err)
	}
}

func TestUserRepo_SetRefreshTokenMissingUser(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	d := "digest"
	if err := repo.SetRefreshToken(context.Background(), uuid.New(), &d); !errors.IsNotFound(err) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
