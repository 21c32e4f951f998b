package handlers

import (
	"errors"
	"net/http"

	"gaming_club_backend/internal/services"
	"gaming_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PurchaseHandler holds the purchase service.
type PurchaseHandler struct {
	purchaseService services.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(ps services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: ps}
}

// respondPurchaseError maps purchase service errors to API errors.
// Business-rule violations (insufficient balance, out of stock, inactive
// catalog item) are 422s: the payload was well-formed but the purchase
// cannot proceed.
func respondPurchaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
	case errors.Is(err, services.ErrGameNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Game not found.", err.Error()))
	case errors.Is(err, services.ErrProductNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
	case errors.Is(err, services.ErrInsufficientBalance):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeBusinessRule, "Insufficient balance.", err.Error()))
	case errors.Is(err, services.ErrOutOfStock):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeBusinessRule, "Not enough stock.", err.Error()))
	case errors.Is(err, services.ErrGameNotPurchasable):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeBusinessRule, "Game is not available for purchase.", err.Error()))
	case errors.Is(err, services.ErrMemberInactive):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeBusinessRule, "Member account is inactive.", err.Error()))
	case errors.Is(err, services.ErrPurchaseValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to complete purchase.", "Internal error"))
	}
}

// PurchaseGame handles a game purchase as one atomic operation.
func (h *PurchaseHandler) PurchaseGame(c *gin.Context) {
	var req services.GamePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "PurchaseGame: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	txn, err := h.purchaseService.PurchaseGame(req)
	if err != nil {
		utils.LogError(err, "PurchaseGame: Error for member "+utils.Int64ToStr(req.MemberID))
		respondPurchaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// PurchaseProduct handles a product purchase as one atomic operation.
func (h *PurchaseHandler) PurchaseProduct(c *gin.Context) {
	var req services.ProductPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "PurchaseProduct: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	txn, err := h.purchaseService.PurchaseProduct(req)
	if err != nil {
		utils.LogError(err, "PurchaseProduct: Error for member "+utils.Int64ToStr(req.MemberID))
		respondPurchaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}
