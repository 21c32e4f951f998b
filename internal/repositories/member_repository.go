package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gaming_club_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// MemberRepository defines the interface for member-related database operations.
type MemberRepository interface {
	CreateMember(executor SQLExecutor, member *models.Member) (int64, error)
	GetMemberByID(id int64) (*models.Member, error)
	GetMemberByPhoneNumber(phoneNumber string) (*models.Member, error)
	GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error) // Members, total count, error
	UpdateMember(executor SQLExecutor, member *models.Member) error
	DeleteMember(executor SQLExecutor, id int64) error

	// LockBalance reads the member's balance under FOR UPDATE. It must be
	// called inside a transaction; the row stays locked until commit/rollback.
	LockBalance(tx SQLExecutor, id int64) (float64, error)
	// DebitBalance subtracts amount, guarded by balance >= amount.
	DebitBalance(executor SQLExecutor, id int64, amount float64) error
	// CreditBalance adds amount to the member's balance.
	CreditBalance(executor SQLExecutor, id int64, amount float64) error
}

type memberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new instance of MemberRepository.
func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, name, phone_number, email, role, password_hash, balance, is_active, joining_date, created_at, updated_at`

func scanMember(row *sql.Row) (*models.Member, error) {
	member := &models.Member{}
	err := row.Scan(
		&member.ID, &member.Name, &member.PhoneNumber, &member.Email, &member.Role,
		&member.PasswordHash, &member.Balance, &member.IsActive, &member.JoiningDate,
		&member.CreatedAt, &member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return member, nil
}

// CreateMember inserts a new member into the database.
func (r *memberRepository) CreateMember(executor SQLExecutor, member *models.Member) (int64, error) {
	query := `INSERT INTO members (name, phone_number, email, role, password_hash, balance, is_active, joining_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`

	currentTime := time.Now()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = currentTime
	}
	if member.UpdatedAt.IsZero() {
		member.UpdatedAt = currentTime
	}
	if member.JoiningDate.IsZero() {
		member.JoiningDate = currentTime
	}
	if member.Role == "" {
		member.Role = models.RoleUser
	}

	err := executor.QueryRow(query,
		member.Name, member.PhoneNumber, member.Email, member.Role, member.PasswordHash,
		member.Balance, member.IsActive, member.JoiningDate, member.CreatedAt, member.UpdatedAt,
	).Scan(&member.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating member: %v", ErrDatabaseError, err)
	}
	return member.ID, nil
}

// GetMemberByID retrieves a member by their ID.
func (r *memberRepository) GetMemberByID(id int64) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	member, err := scanMember(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member by ID %d: %v", ErrDatabaseError, id, err)
	}
	return member, nil
}

// GetMemberByPhoneNumber retrieves a member by their phone number.
func (r *memberRepository) GetMemberByPhoneNumber(phoneNumber string) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE phone_number = $1`
	member, err := scanMember(r.db.QueryRow(query, phoneNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member by phone number %s: %v", ErrDatabaseError, phoneNumber, err)
	}
	return member, nil
}

// GetMembers retrieves a list of members with pagination and optional search.
func (r *memberRepository) GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error) {
	members := []models.Member{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + memberColumns + `, COUNT(*) OVER() as total_count FROM members`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if searchTerm != nil && *searchTerm != "" {
		searchPattern := "%" + strings.ToLower(*searchTerm) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) ILIKE $%d OR phone_number ILIKE $%d OR LOWER(email) ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, searchPattern)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY name ASC")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			offset := (page - 1) * pageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var member models.Member
		if err := rows.Scan(
			&member.ID, &member.Name, &member.PhoneNumber, &member.Email, &member.Role,
			&member.PasswordHash, &member.Balance, &member.IsActive, &member.JoiningDate,
			&member.CreatedAt, &member.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning member: %v", ErrDatabaseError, err)
		}
		members = append(members, member)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating member rows: %v", ErrDatabaseError, err)
	}

	return members, totalCount, nil
}

// UpdateMember updates an existing member in the database.
func (r *memberRepository) UpdateMember(executor SQLExecutor, member *models.Member) error {
	query := `UPDATE members SET
	            name = $1, phone_number = $2, email = $3, role = $4,
	            balance = $5, is_active = $6, updated_at = $7
	          WHERE id = $8`

	member.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		member.Name, member.PhoneNumber, member.Email, member.Role,
		member.Balance, member.IsActive, member.UpdatedAt, member.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating member ID %d: %v", ErrDatabaseError, member.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating member ID %d: %v", ErrDatabaseError, member.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMember removes a member from the database.
func (r *memberRepository) DeleteMember(executor SQLExecutor, id int64) error {
	query := `DELETE FROM members WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: member ID %d cannot be deleted as it is referenced by other records (e.g., transactions) (constraint: %s)", ErrDatabaseError, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting member ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LockBalance reads the member's balance with a FOR UPDATE row lock.
func (r *memberRepository) LockBalance(tx SQLExecutor, id int64) (float64, error) {
	var balance float64
	err := tx.QueryRow(`SELECT balance FROM members WHERE id = $1 FOR UPDATE`, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: locking balance for member ID %d: %v", ErrDatabaseError, id, err)
	}
	return balance, nil
}

// DebitBalance subtracts amount from the member's balance. The guard on the
// current balance makes the debit atomic even without a prior lock.
func (r *memberRepository) DebitBalance(executor SQLExecutor, id int64, amount float64) error {
	result, err := executor.Exec(`
		UPDATE members
		SET balance = balance - $2, updated_at = NOW()
		WHERE id = $1
		  AND balance >= $2
	`, id, amount)
	if err != nil {
		return fmt.Errorf("%w: debiting balance for member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for debiting member ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// CreditBalance adds amount to the member's balance.
func (r *memberRepository) CreditBalance(executor SQLExecutor, id int64, amount float64) error {
	result, err := executor.Exec(`
		UPDATE members
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
	`, id, amount)
	if err != nil {
		return fmt.Errorf("%w: crediting balance for member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for crediting member ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
