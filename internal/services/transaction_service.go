package services

import (
	"errors"
	"fmt"

	"gaming_club_backend/internal/models"
	"gaming_club_backend/internal/repositories"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// --- TransactionService Interface ---
// Transactions are created by the purchase service; this service only
// exposes the read side.
type TransactionService interface {
	GetTransactionByID(txnID int64) (*models.Transaction, error)
	GetTransactions(page, pageSize int) ([]models.Transaction, int, error)
	GetTransactionsByMember(memberID int64) ([]models.Transaction, error)
}

// --- transactionService Implementation ---
type transactionService struct {
	txnRepo repositories.TransactionRepository
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(txnRepo repositories.TransactionRepository) TransactionService {
	return &transactionService{txnRepo: txnRepo}
}

func (s *transactionService) GetTransactionByID(txnID int64) (*models.Transaction, error) {
	txn, err := s.txnRepo.GetTransactionByID(txnID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by ID: %w", err)
	}
	return txn, nil
}

func (s *transactionService) GetTransactions(page, pageSize int) ([]models.Transaction, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	transactions, totalCount, err := s.txnRepo.GetTransactions(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, totalCount, nil
}

func (s *transactionService) GetTransactionsByMember(memberID int64) ([]models.Transaction, error) {
	transactions, err := s.txnRepo.GetTransactionsByMember(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for member: %w", err)
	}
	return transactions, nil
}
