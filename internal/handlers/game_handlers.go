package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gaming_club_backend/internal/models"
	"gaming_club_backend/internal/services"
	"gaming_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GameHandler holds the game service.
type GameHandler struct {
	gameService services.GameService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(gs services.GameService) *GameHandler {
	return &GameHandler{gameService: gs}
}

// CreateGame handles the creation of a new catalog game.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req services.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateGame: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	game, err := h.gameService.CreateGame(req)
	if err != nil {
		utils.LogError(err, "CreateGame: Error from gameService.CreateGame")
		if errors.Is(err, services.ErrGameValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create game.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, game)
}

// GetGames handles fetching all games with pagination and genre/status filters.
func (h *GameHandler) GetGames(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	var pGenre, pStatus *string
	if genre := c.Query("genre"); genre != "" {
		pGenre = &genre
	}
	if status := c.Query("status"); status != "" {
		pStatus = &status
	}

	games, totalCount, err := h.gameService.GetGames(page, pageSize, pGenre, pStatus)
	if err != nil {
		utils.LogError(err, "GetGames: Error from gameService.GetGames")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch games.", "Internal error"))
		return
	}

	if games == nil {
		games = []models.Game{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      games,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetGameByID handles fetching a single game by ID.
func (h *GameHandler) GetGameByID(c *gin.Context) {
	idStr := c.Param("id")
	gameID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid game ID format.", err.Error()))
		return
	}

	game, err := h.gameService.GetGameByID(gameID)
	if err != nil {
		utils.LogError(err, "GetGameByID: Error from gameService.GetGameByID for ID "+idStr)
		if errors.Is(err, services.ErrGameNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Game not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch game.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, game)
}

// UpdateGame handles updating a game.
func (h *GameHandler) UpdateGame(c *gin.Context) {
	idStr := c.Param("id")
	gameID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid game ID format.", err.Error()))
		return
	}

	var req services.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateGame: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	game, err := h.gameService.UpdateGame(gameID, req)
	if err != nil {
		utils.LogError(err, "UpdateGame: Error from gameService.UpdateGame for ID "+idStr)
		if errors.Is(err, services.ErrGameNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Game not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrGameValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update game.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, game)
}

// DeleteGame handles deleting a game.
func (h *GameHandler) DeleteGame(c *gin.Context) {
	idStr := c.Param("id")
	gameID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid game ID format.", err.Error()))
		return
	}

	if err := h.gameService.DeleteGame(gameID); err != nil {
		utils.LogError(err, "DeleteGame: Error from gameService.DeleteGame for ID "+idStr)
		if errors.Is(err, services.ErrGameNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Game not found to delete.", err.Error()))
		} else if errors.Is(err, services.ErrGameInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Game is referenced by transactions.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete game.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game deleted successfully"})
}
