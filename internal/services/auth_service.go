package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gaming_club_backend/internal/models"
	"gaming_club_backend/internal/repositories"
	"gaming_club_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrInvalidCredentials = errors.New("invalid phone number or password")
	ErrPhoneNumberExists  = errors.New("phone number already registered")
	ErrAuthValidation     = errors.New("authentication data validation error")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO. Password is optional; it is only checked for members
// that registered with one.
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Password    string `json:"password"`
	Role        string `json:"role" binding:"required,member_role"`
}

// RegisterRequest DTO
type RegisterRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Role        string `json:"role" binding:"required,member_role"`
	Password    string `json:"password" binding:"omitempty,min=6"`
}

// AuthResponse DTO
type AuthResponse struct {
	Member       *models.Member `json:"member"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token,omitempty"`
}

// MemberDirectory abstracts the identity lookup so the auth service can run
// against the real member store or a test double.
type MemberDirectory interface {
	FindByPhone(phoneNumber string) (*models.Member, error)
	Create(member *models.Member) (*models.Member, error)
}

// repoMemberDirectory is the production MemberDirectory backed by the
// members table.
type repoMemberDirectory struct {
	memberRepo repositories.MemberRepository
	db         *sql.DB
}

// NewMemberDirectory creates a MemberDirectory over the member repository.
func NewMemberDirectory(memberRepo repositories.MemberRepository, db *sql.DB) MemberDirectory {
	return &repoMemberDirectory{memberRepo: memberRepo, db: db}
}

func (d *repoMemberDirectory) FindByPhone(phoneNumber string) (*models.Member, error) {
	return d.memberRepo.GetMemberByPhoneNumber(phoneNumber)
}

func (d *repoMemberDirectory) Create(member *models.Member) (*models.Member, error) {
	id, err := d.memberRepo.CreateMember(d.db, member)
	if err != nil {
		return nil, err
	}
	return d.memberRepo.GetMemberByID(id)
}

// --- AuthService Interface ---
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
	Register(req RegisterRequest) (*AuthResponse, error)
	GetMemberProfile(memberID int64) (*models.Member, error)
}

// --- authService Implementation ---
type authService struct {
	directory  MemberDirectory
	memberRepo repositories.MemberRepository
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(directory MemberDirectory, memberRepo repositories.MemberRepository) AuthService {
	return &authService{
		directory:  directory,
		memberRepo: memberRepo,
	}
}

// Login finds the directory entry matching both phone number and role.
// No match means not found; the role is part of the lookup, not a
// separate authorization failure.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	phone := strings.TrimSpace(req.PhoneNumber)
	if !utils.IsValidPhoneNumber(phone) {
		return nil, fmt.Errorf("%w: phone number must be exactly 10 digits", ErrAuthValidation)
	}

	member, err := s.directory.FindByPhone(phone)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}
	if !strings.EqualFold(member.Role, req.Role) {
		return nil, ErrMemberNotFound
	}

	if member.PasswordHash != nil && *member.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(*member.PasswordHash), []byte(req.Password)); err != nil {
			return nil, ErrInvalidCredentials
		}
	}

	return s.buildAuthResponse(member)
}

// Register creates a new member with a zero starting balance. An existing
// phone number is a conflict and leaves the directory unchanged.
func (s *authService) Register(req RegisterRequest) (*AuthResponse, error) {
	phone := strings.TrimSpace(req.PhoneNumber)
	if !utils.IsValidPhoneNumber(phone) {
		return nil, fmt.Errorf("%w: phone number must be exactly 10 digits", ErrAuthValidation)
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: email format is invalid", ErrAuthValidation)
	}

	member := &models.Member{
		Name:        strings.TrimSpace(req.Name),
		PhoneNumber: phone,
		Email:       utils.NewNullString(strings.ToLower(strings.TrimSpace(req.Email))),
		Role:        req.Role,
		Balance:     0, // new members start with no stored value
		IsActive:    true,
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hashed)
		member.PasswordHash = &hashStr
	}

	created, err := s.directory.Create(member)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPhoneNumberExists
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return s.buildAuthResponse(created)
}

// GetMemberProfile returns the member for the authenticated session.
func (s *authService) GetMemberProfile(memberID int64) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member profile: %w", err)
	}
	return member, nil
}

func (s *authService) buildAuthResponse(member *models.Member) (*AuthResponse, error) {
	accessToken, err := utils.GenerateAccessToken(member.ID, member.Name, member.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	refreshToken, err := utils.GenerateRefreshToken(member.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &AuthResponse{
		Member:       member,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
