package user

import (
	"errors"
	"testing"

	userRepo "petbook/database/repository/user"
	"petbook/models"
	"petbook/utils"
)

func newTestService() *DefaultUserService {
	return &DefaultUserService{Repo: userRepo.NewMemoryUserRepo()}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Register("Ana@Test.com", "segredo123", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Email != "ana@test.com" {
		t.Fatalf("expected normalized email, got %q", resp.Email)
	}
	if resp.Role != models.RoleUser {
		t.Fatalf("expected default role %q, got %q", models.RoleUser, resp.Role)
	}
	if resp.Token == "" {
		t.Fatal("expected a token on registration")
	}

	id, err := utils.ExtractIDFromToken(resp.Token)
	if err != nil {
		t.Fatalf("ExtractIDFromToken: %v", err)
	}
	if id != resp.ID {
		t.Fatalf("token subject %q does not match user id %q", id, resp.ID)
	}

	login, err := svc.Authenticate("ana@test.com", "segredo123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if login.ID != resp.ID {
		t.Fatalf("login returned a different identity: %q vs %q", login.ID, resp.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Register("ana@test.com", "segredo123", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register("ANA@test.com", "outrasenha", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()

	cases := []struct {
		email, password, role string
	}{
		{"", "segredo123", ""},
		{"not-an-email", "segredo123", ""},
		{"ana@test.com", "curta", ""},
		{"ana@test.com", "segredo123", "superuser"},
	}
	for _, c := range cases {
		_, err := svc.Register(c.email, c.password, c.role)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError for %+v, got %v", c, err)
		}
	}
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Register("ana@test.com", "segredo123", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, errUnknown := svc.Authenticate("ninguem@test.com", "segredo123")
	_, errWrongPass := svc.Authenticate("ana@test.com", "senhaerrada")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}
	if errUnknown.Error() != errWrongPass.Error() {
		t.Fatal("auth failures must not reveal whether the account exists")
	}
}

func TestGetProfile(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Register("ana@test.com", "segredo123", models.RoleStaff)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	profile, err := svc.GetProfile(resp.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Email != "ana@test.com" || profile.Role != models.RoleStaff {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if _, err := svc.GetProfile("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}
