package services

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"gaming_club_backend/internal/models"
	"gaming_club_backend/internal/repositories"
)

// fakeDirectory is an in-memory MemberDirectory double.
type fakeDirectory struct {
	byPhone map[string]*models.Member
	nextID  int64
}

func newFakeDirectory(members ...*models.Member) *fakeDirectory {
	d := &fakeDirectory{byPhone: make(map[string]*models.Member), nextID: 1}
	for _, m := range members {
		if m.ID == 0 {
			m.ID = d.nextID
		}
		if m.ID >= d.nextID {
			d.nextID = m.ID + 1
		}
		d.byPhone[m.PhoneNumber] = m
	}
	return d
}

func (d *fakeDirectory) FindByPhone(phoneNumber string) (*models.Member, error) {
	member, ok := d.byPhone[phoneNumber]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *member
	return &copied, nil
}

func (d *fakeDirectory) Create(member *models.Member) (*models.Member, error) {
	if _, exists := d.byPhone[member.PhoneNumber]; exists {
		return nil, repositories.ErrDuplicateKey
	}
	member.ID = d.nextID
	d.nextID++
	d.byPhone[member.PhoneNumber] = member
	copied := *member
	return &copied, nil
}

func hashOf(t *testing.T, password string) *string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	s := string(hashed)
	return &s
}

func TestLoginUnknownPhoneNumber(t *testing.T) {
	svc := NewAuthService(newFakeDirectory(), newFakeMemberRepo())

	_, err := svc.Login(LoginRequest{PhoneNumber: "7010000000", Role: models.RoleUser})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestLoginRoleMismatchIsNotFound(t *testing.T) {
	member := &models.Member{Name: "Dana", PhoneNumber: "7010000001", Role: models.RoleUser, IsActive: true}
	svc := NewAuthService(newFakeDirectory(member), newFakeMemberRepo())

	_, err := svc.Login(LoginRequest{PhoneNumber: "7010000001", Role: models.RoleAdmin})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	member := &models.Member{
		Name:         "Dana",
		PhoneNumber:  "7010000001",
		Role:         models.RoleUser,
		PasswordHash: hashOf(t, "correct-horse"),
		IsActive:     true,
	}
	svc := NewAuthService(newFakeDirectory(member), newFakeMemberRepo())

	_, err := svc.Login(LoginRequest{PhoneNumber: "7010000001", Password: "wrong", Role: models.RoleUser})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginSuccessIssuesTokens(t *testing.T) {
	member := &models.Member{
		Name:         "Dana",
		PhoneNumber:  "7010000001",
		Role:         models.RoleAdmin,
		PasswordHash: hashOf(t, "correct-horse"),
		IsActive:     true,
	}
	svc := NewAuthService(newFakeDirectory(member), newFakeMemberRepo())

	resp, err := svc.Login(LoginRequest{PhoneNumber: "7010000001", Password: "correct-horse", Role: "admin"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Errorf("expected both tokens to be issued")
	}
	if resp.Member == nil || resp.Member.PhoneNumber != "7010000001" {
		t.Errorf("unexpected member in response: %+v", resp.Member)
	}
}

func TestLoginRejectsMalformedPhoneNumber(t *testing.T) {
	svc := NewAuthService(newFakeDirectory(), newFakeMemberRepo())

	_, err := svc.Login(LoginRequest{PhoneNumber: "12345", Role: models.RoleUser})
	if !errors.Is(err, ErrAuthValidation) {
		t.Fatalf("err = %v, want ErrAuthValidation", err)
	}
}

func TestRegisterStartsWithZeroBalance(t *testing.T) {
	svc := NewAuthService(newFakeDirectory(), newFakeMemberRepo())

	resp, err := svc.Register(RegisterRequest{
		Name:        "Dana",
		PhoneNumber: "7010000002",
		Email:       "dana@example.com",
		Role:        models.RoleUser,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.Member.Balance != 0 {
		t.Errorf("balance = %v, want 0", resp.Member.Balance)
	}
	if !resp.Member.IsActive {
		t.Errorf("new member should be active")
	}
	if resp.AccessToken == "" {
		t.Errorf("expected an access token")
	}
}

func TestRegisterDuplicatePhoneNumber(t *testing.T) {
	existing := &models.Member{Name: "Dana", PhoneNumber: "7010000003", Role: models.RoleUser}
	svc := NewAuthService(newFakeDirectory(existing), newFakeMemberRepo())

	_, err := svc.Register(RegisterRequest{
		Name:        "Imposter",
		PhoneNumber: "7010000003",
		Email:       "imposter@example.com",
		Role:        models.RoleUser,
	})
	if !errors.Is(err, ErrPhoneNumberExists) {
		t.Fatalf("err = %v, want ErrPhoneNumberExists", err)
	}
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	svc := NewAuthService(newFakeDirectory(), newFakeMemberRepo())

	_, err := svc.Register(RegisterRequest{
		Name:        "Dana",
		PhoneNumber: "7010000004",
		Email:       "not-an-email",
		Role:        models.RoleUser,
	})
	if !errors.Is(err, ErrAuthValidation) {
		t.Fatalf("err = %v, want ErrAuthValidation", err)
	}
}
