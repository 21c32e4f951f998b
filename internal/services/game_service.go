package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gaming_club_backend/internal/models"
	"gaming_club_backend/internal/repositories"
)

// --- Custom Service Errors for Game ---
var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameValidation = errors.New("game data validation error")
	ErrGameInUse      = errors.New("game cannot be deleted as it is referenced in transactions")
)

// Price ceilings mirrored from the catalog forms.
const maxGamePrice = 1000.0

// --- Game DTOs ---
type CreateGameRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description string  `json:"description" binding:"required,min=10,max=500"`
	Genre       string  `json:"genre" binding:"required,game_genre"`
	Status      string  `json:"status" binding:"omitempty,game_status"`
	Price       float64 `json:"price" binding:"min=0"`
}

type UpdateGameRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Genre       *string  `json:"genre" binding:"omitempty,game_genre"`
	Status      *string  `json:"status" binding:"omitempty,game_status"`
	Price       *float64 `json:"price"`
}

// --- GameService Interface ---
type GameService interface {
	CreateGame(req CreateGameRequest) (*models.Game, error)
	GetGameByID(gameID int64) (*models.Game, error)
	GetGames(page, pageSize int, genre, status *string) ([]models.Game, int, error)
	UpdateGame(gameID int64, req UpdateGameRequest) (*models.Game, error)
	DeleteGame(gameID int64) error
}

// --- gameService Implementation ---
type gameService struct {
	gameRepo repositories.GameRepository
	db       *sql.DB
}

// NewGameService creates a new instance of GameService.
func NewGameService(repo repositories.GameRepository, db *sql.DB) GameService {
	return &gameService{gameRepo: repo, db: db}
}

func validateGamePrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrGameValidation)
	}
	if price > maxGamePrice {
		return fmt.Errorf("%w: price cannot exceed %.0f", ErrGameValidation, maxGamePrice)
	}
	return nil
}

func (s *gameService) CreateGame(req CreateGameRequest) (*models.Game, error) {
	if err := validateGamePrice(req.Price); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.GameStatusActive
	}

	game := &models.Game{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Genre:       req.Genre,
		Status:      status,
		Price:       req.Price,
	}

	id, err := s.gameRepo.CreateGame(s.db, game)
	if err != nil {
		return nil, fmt.Errorf("failed to create game in repository: %w", err)
	}
	return s.gameRepo.GetGameByID(id)
}

func (s *gameService) GetGameByID(gameID int64) (*models.Game, error) {
	game, err := s.gameRepo.GetGameByID(gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return game, nil
}

func (s *gameService) GetGames(page, pageSize int, genre, status *string) ([]models.Game, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	games, totalCount, err := s.gameRepo.GetGames(page, pageSize, genre, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get games: %w", err)
	}
	return games, totalCount, nil
}

func (s *gameService) UpdateGame(gameID int64, req UpdateGameRequest) (*models.Game, error) {
	game, err := s.gameRepo.GetGameByID(gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to find game for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrGameValidation)
		}
		game.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		game.Description = strings.TrimSpace(*req.Description)
	}
	if req.Genre != nil {
		game.Genre = *req.Genre
	}
	if req.Status != nil {
		game.Status = *req.Status
	}
	if req.Price != nil {
		if err := validateGamePrice(*req.Price); err != nil {
			return nil, err
		}
		game.Price = *req.Price
	}

	err = s.gameRepo.UpdateGame(s.db, game)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to update game in repository: %w", err)
	}
	return s.gameRepo.GetGameByID(gameID)
}

func (s *gameService) DeleteGame(gameID int64) error {
	_, err := s.gameRepo.GetGameByID(gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to find game for deletion: %w", err)
	}

	err = s.gameRepo.DeleteGame(s.db, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGameNotFound
		}
		if strings.Contains(err.Error(), "referenced by transactions") {
			return ErrGameInUse
		}
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}
