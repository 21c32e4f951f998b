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

// TransactionHandler holds the transaction service.
type TransactionHandler struct {
	txnService services.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ts services.TransactionService) *TransactionHandler {
	return &TransactionHandler{txnService: ts}
}

// GetTransactions handles fetching all transaction records.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	transactions, totalCount, err := h.txnService.GetTransactions(page, pageSize)
	if err != nil {
		utils.LogError(err, "GetTransactions: Error from txnService.GetTransactions")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch transactions.", "Internal error"))
		return
	}

	if transactions == nil {
		transactions = []models.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      transactions,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetTransactionByID handles fetching a single transaction by ID.
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	idStr := c.Param("id")
	txnID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid transaction ID format.", err.Error()))
		return
	}

	txn, err := h.txnService.GetTransactionByID(txnID)
	if err != nil {
		utils.LogError(err, "GetTransactionByID: Error from txnService.GetTransactionByID for ID "+idStr)
		if errors.Is(err, services.ErrTransactionNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Transaction not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch transaction.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, txn)
}

// GetTransactionsByMember handles fetching the purchase history of one member.
func (h *TransactionHandler) GetTransactionsByMember(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	transactions, err := h.txnService.GetTransactionsByMember(memberID)
	if err != nil {
		utils.LogError(err, "GetTransactionsByMember: Error from txnService.GetTransactionsByMember for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch member transactions.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, transactions)
}
