package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gaming_club_backend/internal/models"

	"github.com/lib/pq"
)

// RechargeRepository defines the interface for recharge database operations.
// Recharges are append-only; there is no update or delete.
type RechargeRepository interface {
	CreateRecharge(executor SQLExecutor, recharge *models.Recharge) (int64, error)
	GetRechargeByID(id int64) (*models.Recharge, error)
	GetRecharges(page, pageSize int) ([]models.Recharge, int, error)
	GetRechargesByMember(memberID int64) ([]models.Recharge, error)
}

type rechargeRepository struct {
	db *sql.DB
}

// NewRechargeRepository creates a new instance of RechargeRepository.
func NewRechargeRepository(db *sql.DB) RechargeRepository {
	return &rechargeRepository{db: db}
}

// CreateRecharge inserts a new recharge record into the database.
func (r *rechargeRepository) CreateRecharge(executor SQLExecutor, recharge *models.Recharge) (int64, error) {
	query := `INSERT INTO recharges (member_id, amount, payment_method, date)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	if recharge.Date.IsZero() {
		recharge.Date = time.Now()
	}

	err := executor.QueryRow(query,
		recharge.MemberID, recharge.Amount, recharge.PaymentMethod, recharge.Date,
	).Scan(&recharge.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return 0, fmt.Errorf("%w: member ID %d does not exist", ErrNotFound, recharge.MemberID)
		}
		return 0, fmt.Errorf("%w: creating recharge: %v", ErrDatabaseError, err)
	}
	return recharge.ID, nil
}

// GetRechargeByID retrieves a recharge by its ID.
func (r *rechargeRepository) GetRechargeByID(id int64) (*models.Recharge, error) {
	recharge := &models.Recharge{}
	query := `SELECT id, member_id, amount, payment_method, date FROM recharges WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&recharge.ID, &recharge.MemberID, &recharge.Amount, &recharge.PaymentMethod, &recharge.Date,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting recharge by ID %d: %v", ErrDatabaseError, id, err)
	}
	return recharge, nil
}

// GetRecharges retrieves all recharge records, newest first.
func (r *rechargeRepository) GetRecharges(page, pageSize int) ([]models.Recharge, int, error) {
	recharges := []models.Recharge{}
	totalCount := 0

	query := `SELECT id, member_id, amount, payment_method, date, COUNT(*) OVER() as total_count
	          FROM recharges ORDER BY date DESC`
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
		return nil, 0, fmt.Errorf("%w: querying recharges: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var recharge models.Recharge
		if err := rows.Scan(
			&recharge.ID, &recharge.MemberID, &recharge.Amount, &recharge.PaymentMethod,
			&recharge.Date, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning recharge: %v", ErrDatabaseError, err)
		}
		recharges = append(recharges, recharge)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating recharge rows: %v", ErrDatabaseError, err)
	}

	return recharges, totalCount, nil
}

// GetRechargesByMember retrieves all recharges for a member, newest first.
func (r *rechargeRepository) GetRechargesByMember(memberID int64) ([]models.Recharge, error) {
	query := `SELECT id, member_id, amount, payment_method, date
	          FROM recharges WHERE member_id = $1 ORDER BY date DESC`

	rows, err := r.db.Query(query, memberID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying recharges for member ID %d: %v", ErrDatabaseError, memberID, err)
	}
	defer rows.Close()

	recharges := []models.Recharge{}
	for rows.Next() {
		var recharge models.Recharge
		if err := rows.Scan(
			&recharge.ID, &recharge.MemberID, &recharge.Amount, &recharge.PaymentMethod, &recharge.Date,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning recharge: %v", ErrDatabaseError, err)
		}
		recharges = append(recharges, recharge)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating recharge rows: %v", ErrDatabaseError, err)
	}
	return recharges, nil
}
