package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gaming_club_backend/internal/models"

	"github.com/lib/pq"
)

// GameRepository defines the interface for game catalog database operations.
type GameRepository interface {
	CreateGame(executor SQLExecutor, game *models.Game) (int64, error)
	GetGameByID(id int64) (*models.Game, error)
	GetGames(page, pageSize int, genre, status *string) ([]models.Game, int, error)
	UpdateGame(executor SQLExecutor, game *models.Game) error
	DeleteGame(executor SQLExecutor, id int64) error

	// GetGamesPurchasedByMember returns the distinct games a member has
	// purchase transactions for, used by the member profile endpoint.
	GetGamesPurchasedByMember(memberID int64) ([]models.GameSummary, error)
}

type gameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new instance of GameRepository.
func NewGameRepository(db *sql.DB) GameRepository {
	return &gameRepository{db: db}
}

const gameColumns = `id, name, description, genre, status, price, created_at, updated_at`

// CreateGame inserts a new game into the database.
func (r *gameRepository) CreateGame(executor SQLExecutor, game *models.Game) (int64, error) {
	query := `INSERT INTO games (name, description, genre, status, price, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	currentTime := time.Now()
	if game.CreatedAt.IsZero() {
		game.CreatedAt = currentTime
	}
	if game.UpdatedAt.IsZero() {
		game.UpdatedAt = currentTime
	}
	if game.Status == "" {
		game.Status = models.GameStatusActive
	}

	err := executor.QueryRow(query,
		game.Name, game.Description, game.Genre, game.Status, game.Price,
		game.CreatedAt, game.UpdatedAt,
	).Scan(&game.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating game: %v", ErrDatabaseError, err)
	}
	return game.ID, nil
}

// GetGameByID retrieves a game by its ID.
func (r *gameRepository) GetGameByID(id int64) (*models.Game, error) {
	game := &models.Game{}
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&game.ID, &game.Name, &game.Description, &game.Genre, &game.Status,
		&game.Price, &game.CreatedAt, &game.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting game by ID %d: %v", ErrDatabaseError, id, err)
	}
	return game, nil
}

// GetGames retrieves a list of games with pagination and optional genre/status filters.
func (r *gameRepository) GetGames(page, pageSize int, genre, status *string) ([]models.Game, int, error) {
	games := []models.Game{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + gameColumns + `, COUNT(*) OVER() as total_count FROM games`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if genre != nil && *genre != "" {
		conditions = append(conditions, fmt.Sprintf("genre = $%d", argCount))
		args = append(args, *genre)
		argCount++
	}
	if status != nil && *status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *status)
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
		return nil, 0, fmt.Errorf("%w: querying games: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var game models.Game
		if err := rows.Scan(
			&game.ID, &game.Name, &game.Description, &game.Genre, &game.Status,
			&game.Price, &game.CreatedAt, &game.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning game: %v", ErrDatabaseError, err)
		}
		games = append(games, game)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating game rows: %v", ErrDatabaseError, err)
	}

	return games, totalCount, nil
}

// UpdateGame updates an existing game in the database.
func (r *gameRepository) UpdateGame(executor SQLExecutor, game *models.Game) error {
	query := `UPDATE games SET
	            name = $1, description = $2, genre = $3, status = $4, price = $5, updated_at = $6
	          WHERE id = $7`

	game.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		game.Name, game.Description, game.Genre, game.Status, game.Price,
		game.UpdatedAt, game.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating game ID %d: %v", ErrDatabaseError, game.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating game ID %d: %v", ErrDatabaseError, game.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGame removes a game from the database.
func (r *gameRepository) DeleteGame(executor SQLExecutor, id int64) error {
	query := `DELETE FROM games WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: game ID %d cannot be deleted as it is referenced by transactions (constraint: %s)", ErrDatabaseError, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting game ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting game ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetGamesPurchasedByMember returns the distinct games a member has purchased.
func (r *gameRepository) GetGamesPurchasedByMember(memberID int64) ([]models.GameSummary, error) {
	query := `SELECT DISTINCT g.id, g.name, g.price, g.description
	          FROM games g
	          JOIN transactions t ON t.game_id = g.id
	          WHERE t.member_id = $1 AND t.kind = $2
	          ORDER BY g.name ASC`

	rows, err := r.db.Query(query, memberID, models.TxKindGamePurchase)
	if err != nil {
		return nil, fmt.Errorf("%w: querying purchased games for member ID %d: %v", ErrDatabaseError, memberID, err)
	}
	defer rows.Close()

	games := []models.GameSummary{}
	for rows.Next() {
		var game models.GameSummary
		if err := rows.Scan(&game.ID, &game.Name, &game.Price, &game.Description); err != nil {
			return nil, fmt.Errorf("%w: scanning purchased game: %v", ErrDatabaseError, err)
		}
		games = append(games, game)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating purchased game rows: %v", ErrDatabaseError, err)
	}
	return games, nil
}
