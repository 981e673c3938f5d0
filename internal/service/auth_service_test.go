package service

import (
	"errors"
	"testing"
	"time"

	"github.com/caneca-next/internal/config"
	"github.com/caneca-next/internal/models"
	"github.com/caneca-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate users failed: %v", err)
	}
	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "test-secret-key-for-auth-service-tests",
			ExpireHours: 24,
		},
	}
	return NewAuthService(cfg, repository.NewUserRepository(db)), db
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, err := svc.Register("not-an-email", "longenough", "张三"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("bad email want ErrInvalidEmail got %v", err)
	}
	if _, err := svc.Register("auth-short@example.com", "short", "张三"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("short password want ErrPasswordTooShort got %v", err)
	}

	user, err := svc.Register("  Auth-Case@Example.COM  ", "password123", " 张三 ")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "auth-case@example.com" {
		t.Fatalf("email want normalized got %s", user.Email)
	}
	if user.Name != "张三" {
		t.Fatalf("name want trimmed got %q", user.Name)
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Fatalf("password hash want bcrypt got %q", user.PasswordHash)
	}

	if _, err := svc.Register("auth-case@example.com", "password123", "李四"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email want ErrEmailExists got %v", err)
	}
}

func TestLoginIssuesTokenAndTouchesLastSignedIn(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	if _, err := svc.Register("auth-login@example.com", "password123", "王五"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, expiresAt, err := svc.Login("Auth-Login@Example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("token want non-empty")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expires at want future got %v", expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("claims user id want %d got %d", user.ID, claims.UserID)
	}
	if claims.Email != "auth-login@example.com" {
		t.Fatalf("claims email want auth-login@example.com got %s", claims.Email)
	}
	if claims.Role != user.Role {
		t.Fatalf("claims role want %s got %s", user.Role, claims.Role)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if stored.LastSignedIn == nil {
		t.Fatalf("last signed in want set got nil")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	if _, err := svc.Register("auth-bad@example.com", "password123", "赵六"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.Login("auth-bad@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("wrong password want ErrInvalidCredential got %v", err)
	}
	if _, _, _, err := svc.Login("auth-nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("unknown user want ErrInvalidCredential got %v", err)
	}
	if _, _, _, err := svc.Login("broken email", "password123"); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("malformed email want ErrInvalidCredential got %v", err)
	}
}

func TestParseJWTRejectsTamperedToken(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	if _, err := svc.Register("auth-tamper@example.com", "password123", "孙七"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, token, _, err := svc.Login("auth-tamper@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := svc.ParseJWT(token + "x"); err == nil {
		t.Fatalf("tampered token want error got nil")
	}

	other := NewAuthService(&config.Config{
		JWT: config.JWTConfig{SecretKey: "another-secret-entirely", ExpireHours: 24},
	}, nil)
	if _, err := other.ParseJWT(token); err == nil {
		t.Fatalf("wrong secret want error got nil")
	}
}
