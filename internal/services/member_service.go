package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gaming_club_backend/internal/models"
	"gaming_club_backend/internal/repositories"
	"gaming_club_backend/pkg/utils"
)

// --- Custom Service Errors for Member ---
var (
	ErrMemberValidation = errors.New("member data validation error")
	ErrMemberInUse      = errors.New("member cannot be deleted as they are referenced in other records")
)

// --- Member DTOs ---
type CreateMemberRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=50"`
	PhoneNumber string  `json:"phoneNumber" binding:"required"`
	Email       *string `json:"email"`
	Role        string  `json:"role" binding:"omitempty,member_role"`
	Balance     float64 `json:"balance" binding:"min=0"`
	IsActive    *bool   `json:"isActive"`
}

type UpdateMemberRequest struct {
	Name        *string  `json:"name"`
	PhoneNumber *string  `json:"phoneNumber"`
	Email       *string  `json:"email"`
	Role        *string  `json:"role" binding:"omitempty,member_role"`
	Balance     *float64 `json:"balance"`
	IsActive    *bool    `json:"isActive"`
}

// SearchRequest is the payload of the member search endpoint.
type SearchRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// --- MemberService Interface ---
type MemberService interface {
	CreateMember(req CreateMemberRequest) (*models.Member, error)
	GetMemberByID(memberID int64) (*models.Member, error)
	GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error)
	UpdateMember(memberID int64, req UpdateMemberRequest) (*models.Member, error)
	DeleteMember(memberID int64) error
	SearchMemberProfile(phone string) (*models.MemberProfile, error)
}

// --- memberService Implementation ---
type memberService struct {
	memberRepo   repositories.MemberRepository
	rechargeRepo repositories.RechargeRepository
	txnRepo      repositories.TransactionRepository
	gameRepo     repositories.GameRepository
	db           *sql.DB
}

// NewMemberService creates a new instance of MemberService.
func NewMemberService(
	memberRepo repositories.MemberRepository,
	rechargeRepo repositories.RechargeRepository,
	txnRepo repositories.TransactionRepository,
	gameRepo repositories.GameRepository,
	db *sql.DB,
) MemberService {
	return &memberService{
		memberRepo:   memberRepo,
		rechargeRepo: rechargeRepo,
		txnRepo:      txnRepo,
		gameRepo:     gameRepo,
		db:           db,
	}
}

func (s *memberService) validateMemberData(name, phoneNumber string, email *string, memberID int64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrMemberValidation)
	}

	pn := strings.TrimSpace(phoneNumber)
	if !utils.IsValidPhoneNumber(pn) {
		return fmt.Errorf("%w: phone number must be exactly 10 digits", ErrMemberValidation)
	}
	existing, err := s.memberRepo.GetMemberByPhoneNumber(pn)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check phone number uniqueness: %w", err)
	}
	if existing != nil && existing.ID != memberID {
		return ErrPhoneNumberExists
	}

	if email != nil && *email != "" {
		if !utils.IsValidEmail(*email) {
			return fmt.Errorf("%w: email format is invalid", ErrMemberValidation)
		}
	}
	return nil
}

func (s *memberService) CreateMember(req CreateMemberRequest) (*models.Member, error) {
	if err := s.validateMemberData(req.Name, req.PhoneNumber, req.Email, 0); err != nil {
		return nil, err
	}
	if req.Balance < 0 {
		return nil, fmt.Errorf("%w: balance cannot be negative", ErrMemberValidation)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	member := &models.Member{
		Name:        strings.TrimSpace(req.Name),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Email:       req.Email,
		Role:        role,
		Balance:     req.Balance,
		IsActive:    isActive,
	}

	id, err := s.memberRepo.CreateMember(s.db, member)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPhoneNumberExists
		}
		return nil, fmt.Errorf("failed to create member in repository: %w", err)
	}
	return s.memberRepo.GetMemberByID(id)
}

func (s *memberService) GetMemberByID(memberID int64) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member by ID: %w", err)
	}
	return member, nil
}

func (s *memberService) GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	members, totalCount, err := s.memberRepo.GetMembers(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get members: %w", err)
	}
	return members, totalCount, nil
}

func (s *memberService) UpdateMember(memberID int64, req UpdateMemberRequest) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member for update: %w", err)
	}

	nameToValidate := member.Name
	if req.Name != nil {
		nameToValidate = *req.Name
	}
	phoneToValidate := member.PhoneNumber
	if req.PhoneNumber != nil {
		phoneToValidate = *req.PhoneNumber
	}
	emailToValidate := member.Email
	if req.Email != nil {
		emailToValidate = req.Email
	}

	if err := s.validateMemberData(nameToValidate, phoneToValidate, emailToValidate, memberID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		member.Name = strings.TrimSpace(*req.Name)
	}
	if req.PhoneNumber != nil {
		member.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Email != nil {
		member.Email = req.Email
	}
	if req.Role != nil {
		member.Role = *req.Role
	}
	if req.Balance != nil {
		if *req.Balance < 0 {
			return nil, fmt.Errorf("%w: balance cannot be negative", ErrMemberValidation)
		}
		member.Balance = *req.Balance
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	err = s.memberRepo.UpdateMember(s.db, member)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPhoneNumberExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to update member in repository: %w", err)
	}
	return s.memberRepo.GetMemberByID(memberID)
}

func (s *memberService) DeleteMember(memberID int64) error {
	_, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member for deletion: %w", err)
	}

	err = s.memberRepo.DeleteMember(s.db, memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		if strings.Contains(err.Error(), "referenced by other records") {
			return ErrMemberInUse
		}
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

// SearchMemberProfile returns the composite member profile for a phone
// number: the member, their recharge history, their purchased games and
// their played history.
func (s *memberService) SearchMemberProfile(phone string) (*models.MemberProfile, error) {
	member, err := s.memberRepo.GetMemberByPhoneNumber(strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member by phone: %w", err)
	}

	recharges, err := s.rechargeRepo.GetRechargesByMember(member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recharge history: %w", err)
	}
	rechargeHistory := make([]models.RechargeItem, 0, len(recharges))
	for _, r := range recharges {
		rechargeHistory = append(rechargeHistory, models.RechargeItem{
			ID:       r.ID,
			Amount:   r.Amount,
			DateTime: r.Date,
		})
	}

	games, err := s.gameRepo.GetGamesPurchasedByMember(member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchased games: %w", err)
	}

	played, err := s.txnRepo.GetPlayedHistoryByMember(member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get played history: %w", err)
	}

	return &models.MemberProfile{
		Member:          member,
		RechargeHistory: rechargeHistory,
		Games:           games,
		PlayedHistory:   played,
	}, nil
}
