package services

import (
	"errors"
	"testing"

	"github.com/Janussr/jsr-casino-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func TestRegisterCreatesUserWithDefaultRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	user, err := svc.Register("alice", "Alice", "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Fatalf("expected default role User, got %q", user.Role)
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password must not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	if _, err := svc.Register("alice", "Alice", "password123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register("alice", "Other Alice", "hunter22"); err == nil {
		t.Fatal("expected error for taken username")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	svc.Register("alice", "Alice", "password123")

	_, unknownErr := svc.Login("nobody", "password123")
	_, badPassErr := svc.Login("alice", "wrong-password")

	if !errors.Is(unknownErr, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", unknownErr)
	}
	if !errors.Is(badPassErr, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for bad password, got %v", badPassErr)
	}
	if unknownErr.Error() != badPassErr.Error() {
		t.Fatalf("failure messages must match: %q vs %q", unknownErr, badPassErr)
	}
}

func TestLoginTokenRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	user, err := svc.Register("alice", "Alice", "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	db.Model(user).Update("role", models.RoleAdmin)

	token, err := svc.Login("alice", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected token")
	}

	userID, role, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user id %d in token, got %d", user.ID, userID)
	}
	if role != models.RoleAdmin {
		t.Fatalf("expected Admin role in token, got %q", role)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	if _, _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := newTestDB(t)
	issuer := NewAuthService(db, "secret-a")
	verifier := NewAuthService(db, "secret-b")

	user, _ := issuer.Register("alice", "Alice", "password123")
	token, err := issuer.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestGetUserAndListUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	alice, _ := svc.Register("alice", "Alice", "password123")
	svc.Register("bob", "Bob", "password123")

	user, err := svc.GetUser(alice.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected alice, got %q", user.Username)
	}

	if _, err := svc.GetUser(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	users, err := svc.ListUsers()
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
