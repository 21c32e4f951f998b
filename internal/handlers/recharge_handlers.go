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

// RechargeHandler holds the recharge service.
type RechargeHandler struct {
	rechargeService services.RechargeService
}

// NewRechargeHandler creates a new RechargeHandler.
func NewRechargeHandler(rs services.RechargeService) *RechargeHandler {
	return &RechargeHandler{rechargeService: rs}
}

// CreateRecharge handles a balance top-up.
func (h *RechargeHandler) CreateRecharge(c *gin.Context) {
	var req services.RechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateRecharge: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	recharge, err := h.rechargeService.CreateRecharge(req)
	if err != nil {
		utils.LogError(err, "CreateRecharge: Error from rechargeService.CreateRecharge")
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else if errors.Is(err, services.ErrRechargeValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create recharge.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, recharge)
}

// GetRechargeByID handles fetching a single recharge record.
func (h *RechargeHandler) GetRechargeByID(c *gin.Context) {
	idStr := c.Param("id")
	rechargeID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid recharge ID format.", err.Error()))
		return
	}

	recharge, err := h.rechargeService.GetRechargeByID(rechargeID)
	if err != nil {
		utils.LogError(err, "GetRechargeByID: Error from rechargeService.GetRechargeByID for ID "+idStr)
		if errors.Is(err, services.ErrRechargeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Recharge not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch recharge.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, recharge)
}

// GetRecharges handles fetching all recharge records.
func (h *RechargeHandler) GetRecharges(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	recharges, totalCount, err := h.rechargeService.GetRecharges(page, pageSize)
	if err != nil {
		utils.LogError(err, "GetRecharges: Error from rechargeService.GetRecharges")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch recharges.", "Internal error"))
		return
	}

	if recharges == nil {
		recharges = []models.Recharge{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      recharges,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetRechargesByMember handles fetching the recharge history of one member.
func (h *RechargeHandler) GetRechargesByMember(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	recharges, err := h.rechargeService.GetRechargesByMember(memberID)
	if err != nil {
		utils.LogError(err, "GetRechargesByMember: Error from rechargeService.GetRechargesByMember for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch member recharges.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, recharges)
}
