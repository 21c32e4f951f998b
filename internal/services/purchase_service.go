package services

import (
	"database/sql"
	"errors"
	"fmt"

	"gaming_club_backend/internal/models"
	"gaming_club_backend/internal/repositories"
)

// --- Custom Service Errors for Purchase ---
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrOutOfStock          = errors.New("insufficient stock")
	ErrGameNotPurchasable  = errors.New("game is not available for purchase")
	ErrMemberInactive      = errors.New("member account is inactive")
	ErrPurchaseValidation  = errors.New("purchase data validation error")
)

// --- Purchase DTOs ---
type GamePurchaseRequest struct {
	MemberID int64 `json:"memberId" binding:"required"`
	GameID   int64 `json:"gameId" binding:"required"`
}

type ProductPurchaseRequest struct {
	MemberID  int64 `json:"memberId" binding:"required"`
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// --- PurchaseService Interface ---
// Each purchase runs as a single database transaction: the transaction
// record, the balance debit and (for products) the stock decrement either
// all commit or none do.
type PurchaseService interface {
	PurchaseGame(req GamePurchaseRequest) (*models.Transaction, error)
	PurchaseProduct(req ProductPurchaseRequest) (*models.Transaction, error)
}

// --- purchaseService Implementation ---
type purchaseService struct {
	memberRepo  repositories.MemberRepository
	gameRepo    repositories.GameRepository
	productRepo repositories.ProductRepository
	txnRepo     repositories.TransactionRepository
	db          *sql.DB
}

// NewPurchaseService creates a new instance of PurchaseService.
func NewPurchaseService(
	memberRepo repositories.MemberRepository,
	gameRepo repositories.GameRepository,
	productRepo repositories.ProductRepository,
	txnRepo repositories.TransactionRepository,
	db *sql.DB,
) PurchaseService {
	return &purchaseService{
		memberRepo:  memberRepo,
		gameRepo:    gameRepo,
		productRepo: productRepo,
		txnRepo:     txnRepo,
		db:          db,
	}
}

// PurchaseGame charges the game's price against the member's balance and
// records the purchase. The price is taken from the catalog, never from
// the client.
func (s *purchaseService) PurchaseGame(req GamePurchaseRequest) (*models.Transaction, error) {
	member, err := s.memberRepo.GetMemberByID(req.MemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member for purchase: %w", err)
	}
	if !member.IsActive {
		return nil, ErrMemberInactive
	}

	game, err := s.gameRepo.GetGameByID(req.GameID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to find game for purchase: %w", err)
	}
	if game.Status != models.GameStatusActive {
		return nil, fmt.Errorf("%w: status is %s", ErrGameNotPurchasable, game.Status)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin purchase transaction: %w", err)
	}
	defer tx.Rollback()

	// FOR UPDATE keeps concurrent purchases for the same member serialized
	// until commit.
	balance, err := s.memberRepo.LockBalance(tx, req.MemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to lock member balance: %w", err)
	}
	if balance < game.Price {
		return nil, ErrInsufficientBalance
	}

	if err := s.memberRepo.DebitBalance(tx, req.MemberID, game.Price); err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return nil, ErrInsufficientBalance
		}
		return nil, fmt.Errorf("failed to debit member balance: %w", err)
	}

	txn := &models.Transaction{
		MemberID: req.MemberID,
		Kind:     models.TxKindGamePurchase,
		GameID:   &game.ID,
		Quantity: 1,
		Amount:   game.Price,
		Status:   models.TxStatusCompleted,
	}
	if _, err := s.txnRepo.CreateTransaction(tx, txn); err != nil {
		return nil, fmt.Errorf("failed to create purchase transaction record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit purchase transaction: %w", err)
	}
	return txn, nil
}

// PurchaseProduct charges price * quantity and decrements stock. The
// conditional stock update rejects overdraw atomically, so two concurrent
// buyers cannot both take the last unit.
func (s *purchaseService) PurchaseProduct(req ProductPurchaseRequest) (*models.Transaction, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrPurchaseValidation)
	}

	member, err := s.memberRepo.GetMemberByID(req.MemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member for purchase: %w", err)
	}
	if !member.IsActive {
		return nil, ErrMemberInactive
	}

	product, err := s.productRepo.GetProductByID(req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product for purchase: %w", err)
	}

	amount := product.Price * float64(req.Quantity)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin purchase transaction: %w", err)
	}
	defer tx.Rollback()

	balance, err := s.memberRepo.LockBalance(tx, req.MemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to lock member balance: %w", err)
	}
	if balance < amount {
		return nil, ErrInsufficientBalance
	}

	if err := s.productRepo.DecrementStock(tx, req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, repositories.ErrInsufficientStock) {
			return nil, ErrOutOfStock
		}
		return nil, fmt.Errorf("failed to decrement product stock: %w", err)
	}

	if err := s.memberRepo.DebitBalance(tx, req.MemberID, amount); err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return nil, ErrInsufficientBalance
		}
		return nil, fmt.Errorf("failed to debit member balance: %w", err)
	}

	txn := &models.Transaction{
		MemberID:  req.MemberID,
		Kind:      models.TxKindProductPurchase,
		ProductID: &product.ID,
		Quantity:  req.Quantity,
		Amount:    amount,
		Status:    models.TxStatusCompleted,
	}
	if _, err := s.txnRepo.CreateTransaction(tx, txn); err != nil {
		return nil, fmt.Errorf("failed to create purchase transaction record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit purchase transaction: %w", err)
	}
	return txn, nil
}
