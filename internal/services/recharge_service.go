package services

import (
	"database/sql"
	"errors"
	"fmt"

	"gaming_club_backend/internal/models"
	"gaming_club_backend/internal/repositories"
)

// --- Custom Service Errors for Recharge ---
var (
	ErrRechargeNotFound   = errors.New("recharge not found")
	ErrRechargeValidation = errors.New("recharge data validation error")
)

// Amount bounds mirrored from the recharge form.
const (
	minRechargeAmount = 1.0
	maxRechargeAmount = 10000.0
)

// --- Recharge DTOs ---
type RechargeRequest struct {
	MemberID      int64   `json:"memberId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"paymentMethod" binding:"required,payment_method"`
}

// --- RechargeService Interface ---
type RechargeService interface {
	CreateRecharge(req RechargeRequest) (*models.Recharge, error)
	GetRechargeByID(rechargeID int64) (*models.Recharge, error)
	GetRecharges(page, pageSize int) ([]models.Recharge, int, error)
	GetRechargesByMember(memberID int64) ([]models.Recharge, error)
}

// --- rechargeService Implementation ---
type rechargeService struct {
	rechargeRepo repositories.RechargeRepository
	memberRepo   repositories.MemberRepository
	db           *sql.DB
}

// NewRechargeService creates a new instance of RechargeService.
func NewRechargeService(rechargeRepo repositories.RechargeRepository, memberRepo repositories.MemberRepository, db *sql.DB) RechargeService {
	return &rechargeService{
		rechargeRepo: rechargeRepo,
		memberRepo:   memberRepo,
		db:           db,
	}
}

// CreateRecharge records a top-up and credits the member's balance in one
// database transaction, so the recharge history and the balance can never
// drift apart.
func (s *rechargeService) CreateRecharge(req RechargeRequest) (*models.Recharge, error) {
	if req.Amount < minRechargeAmount {
		return nil, fmt.Errorf("%w: minimum amount is %.0f", ErrRechargeValidation, minRechargeAmount)
	}
	if req.Amount > maxRechargeAmount {
		return nil, fmt.Errorf("%w: maximum amount is %.0f", ErrRechargeValidation, maxRechargeAmount)
	}

	if _, err := s.memberRepo.GetMemberByID(req.MemberID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member for recharge: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin recharge transaction: %w", err)
	}
	defer tx.Rollback()

	recharge := &models.Recharge{
		MemberID:      req.MemberID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	}
	if _, err := s.rechargeRepo.CreateRecharge(tx, recharge); err != nil {
		return nil, fmt.Errorf("failed to create recharge record: %w", err)
	}

	if err := s.memberRepo.CreditBalance(tx, req.MemberID, req.Amount); err != nil {
		return nil, fmt.Errorf("failed to credit member balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recharge transaction: %w", err)
	}
	return recharge, nil
}

func (s *rechargeService) GetRechargeByID(rechargeID int64) (*models.Recharge, error) {
	recharge, err := s.rechargeRepo.GetRechargeByID(rechargeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRechargeNotFound
		}
		return nil, fmt.Errorf("failed to get recharge by ID: %w", err)
	}
	return recharge, nil
}

func (s *rechargeService) GetRecharges(page, pageSize int) ([]models.Recharge, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	recharges, totalCount, err := s.rechargeRepo.GetRecharges(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get recharges: %w", err)
	}
	return recharges, totalCount, nil
}

func (s *rechargeService) GetRechargesByMember(memberID int64) ([]models.Recharge, error) {
	recharges, err := s.rechargeRepo.GetRechargesByMember(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recharges for member: %w", err)
	}
	return recharges, nil
}
