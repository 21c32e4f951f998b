package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gaming_club_backend/internal/models"

	"github.com/lib/pq"
)

// TransactionRepository defines the interface for purchase transaction
// database operations. Transactions are append-only.
type TransactionRepository interface {
	CreateTransaction(executor SQLExecutor, txn *models.Transaction) (int64, error)
	GetTransactionByID(id int64) (*models.Transaction, error)
	GetTransactions(page, pageSize int) ([]models.Transaction, int, error)
	GetTransactionsByMember(memberID int64) ([]models.Transaction, error)

	// GetPlayedHistoryByMember joins game purchases with game names for
	// the member profile endpoint.
	GetPlayedHistoryByMember(memberID int64) ([]models.PlayedItem, error)
}

type transactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new instance of TransactionRepository.
func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, member_id, kind, game_id, product_id, quantity, amount, status, date`

// CreateTransaction inserts a new transaction record into the database.
func (r *transactionRepository) CreateTransaction(executor SQLExecutor, txn *models.Transaction) (int64, error) {
	query := `INSERT INTO transactions (member_id, kind, game_id, product_id, quantity, amount, status, date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	if txn.Date.IsZero() {
		txn.Date = time.Now()
	}
	if txn.Quantity == 0 {
		txn.Quantity = 1
	}
	if txn.Status == "" {
		txn.Status = models.TxStatusCompleted
	}

	err := executor.QueryRow(query,
		txn.MemberID, txn.Kind, txn.GameID, txn.ProductID,
		txn.Quantity, txn.Amount, txn.Status, txn.Date,
	).Scan(&txn.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return 0, fmt.Errorf("%w: referenced record does not exist (constraint: %s)", ErrNotFound, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating transaction: %v", ErrDatabaseError, err)
	}
	return txn.ID, nil
}

// GetTransactionByID retrieves a transaction by its ID.
func (r *transactionRepository) GetTransactionByID(id int64) (*models.Transaction, error) {
	txn := &models.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&txn.ID, &txn.MemberID, &txn.Kind, &txn.GameID, &txn.ProductID,
		&txn.Quantity, &txn.Amount, &txn.Status, &txn.Date,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting transaction by ID %d: %v", ErrDatabaseError, id, err)
	}
	return txn, nil
}

// GetTransactions retrieves all transaction records, newest first.
func (r *transactionRepository) GetTransactions(page, pageSize int) ([]models.Transaction, int, error) {
	transactions := []models.Transaction{}
	totalCount := 0

	query := `SELECT ` + transactionColumns + `, COUNT(*) OVER() as total_count
	          FROM transactions ORDER BY date DESC`
	var args []interface{}
	if pageSize > 0 {
		query += ` LIMIT $1 OFFSET $2`
		offset := 0
		if page > 1 {
			offset = (page - 1) * pageSize
		}
		args = append(args, pageSize, offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(
			&txn.ID, &txn.MemberID, &txn.Kind, &txn.GameID, &txn.ProductID,
			&txn.Quantity, &txn.Amount, &txn.Status, &txn.Date, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning transaction: %v", ErrDatabaseError, err)
		}
		transactions = append(transactions, txn)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating transaction rows: %v", ErrDatabaseError, err)
	}

	return transactions, totalCount, nil
}

// GetTransactionsByMember retrieves all transactions for a member, newest first.
func (r *transactionRepository) GetTransactionsByMember(memberID int64) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE member_id = $1 ORDER BY date DESC`

	rows, err := r.db.Query(query, memberID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying transactions for member ID %d: %v", ErrDatabaseError, memberID, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(
			&txn.ID, &txn.MemberID, &txn.Kind, &txn.GameID, &txn.ProductID,
			&txn.Quantity, &txn.Amount, &txn.Status, &txn.Date,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning transaction: %v", ErrDatabaseError, err)
		}
		transactions = append(transactions, txn)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating transaction rows: %v", ErrDatabaseError, err)
	}
	return transactions, nil
}

// GetPlayedHistoryByMember retrieves a member's game purchases joined with game names.
func (r *transactionRepository) GetPlayedHistoryByMember(memberID int64) ([]models.PlayedItem, error) {
	query := `SELECT t.id, t.date, g.name, t.amount
	          FROM transactions t
	          JOIN games g ON g.id = t.game_id
	          WHERE t.member_id = $1 AND t.kind = $2
	          ORDER BY t.date DESC`

	rows, err := r.db.Query(query, memberID, models.TxKindGamePurchase)
	if err != nil {
		return nil, fmt.Errorf("%w: querying played history for member ID %d: %v", ErrDatabaseError, memberID, err)
	}
	defer rows.Close()

	items := []models.PlayedItem{}
	for rows.Next() {
		var item models.PlayedItem
		if err := rows.Scan(&item.ID, &item.DateTime, &item.GameName, &item.Amount); err != nil {
			return nil, fmt.Errorf("%w: scanning played history item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating played history rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}
