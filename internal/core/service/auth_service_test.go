package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/job-marketplace/internal/core/domain"
	"github.com/99minutos/job-marketplace/internal/core/ports"
)

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, bcrypt.MinCost, discardLogger)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:       "  Alice@Example.com ",
		Password:    "pass123",
		Role:        "poster",
		DisplayName: " Alice ",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected an id to be assigned")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.DisplayName != "Alice" {
		t.Fatalf("expected trimmed display name, got %q", user.DisplayName)
	}
	if user.PasswordHash == "pass123" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RolePoster {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("CreatedAt must be stamped")
	}
	if _, ok := repo.byID[user.ID]; !ok {
		t.Fatal("user was not persisted")
	}
}

func TestAuthService_Register_SaltsEachHash(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	a, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "same", Role: "seeker"})
	if err != nil {
		t.Fatalf("register a: %v", err)
	}
	b, err := svc.Register(context.Background(), ports.RegisterInput{Email: "b@x.com", Password: "same", Role: "seeker"})
	if err != nil {
		t.Fatalf("register b: %v", err)
	}
	if a.PasswordHash == b.PasswordHash {
		t.Fatal("identical passwords must not produce identical hashes")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   ports.RegisterInput
	}{
		{"empty email", ports.RegisterInput{Email: "", Password: "pw", Role: "seeker"}},
		{"malformed email", ports.RegisterInput{Email: "not-an-email", Password: "pw", Role: "seeker"}},
		{"empty password", ports.RegisterInput{Email: "a@x.com", Password: "", Role: "seeker"}},
		{"unknown role", ports.RegisterInput{Email: "a@x.com", Password: "pw", Role: "admin"}},
		{"empty role", ports.RegisterInput{Email: "a@x.com", Password: "pw"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubUserRepo()
			svc := newTestAuthService(repo)
			if _, err := svc.Register(context.Background(), tc.in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if len(repo.byID) != 0 {
				t.Fatal("nothing should be persisted on invalid input")
			}
		})
	}
}

func TestAuthService_Register_DuplicateIsCaseInsensitive(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "bob@example.com", Password: "pass", Role: "seeker"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "BOB@Example.COM", Password: "pass2", Role: "poster"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	registered, err := svc.Register(context.Background(), ports.RegisterInput{Email: "carol@example.com", Password: "s3cret", Role: "poster"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Authenticate(context.Background(), "Carol@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.ID != registered.ID || user.Role != domain.RolePoster {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Authenticate_FailuresAreIndistinguishable(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "dave@example.com", Password: "goodpass", Role: "seeker"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPassword := svc.Authenticate(context.Background(), "dave@example.com", "badpass")
	_, unknownEmail := svc.Authenticate(context.Background(), "ghost@example.com", "goodpass")

	if wrongPassword != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if unknownEmail != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_Authenticate_EmptyInput(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Authenticate(context.Background(), "", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "a@x.com", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_StoreErrorPropagates(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = domain.ErrStoreUnavailable
	svc := newTestAuthService(repo)

	if _, err := svc.Authenticate(context.Background(), "a@x.com", "pw"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestAuthService_FindUser(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed("u1", "a@x.com", domain.RoleSeeker)
	svc := newTestAuthService(repo)

	user, err := svc.FindUser(context.Background(), "u1")
	if err != nil || user.ID != "u1" {
		t.Fatalf("unexpected result: %+v, %v", user, err)
	}
	if _, err := svc.FindUser(context.Background(), ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
