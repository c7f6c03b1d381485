package handlers

import (
	"net/http"
	"strings"
	"time"

	"roomledger-backend/database"
	"roomledger-backend/models"
	"roomledger-backend/timewindow"
	"roomledger-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/investments
func CreateInvestment(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.BadRequest(c, "Investment name is required")
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := timewindow.ParseDate(req.Date, 0)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		date = parsed
	}

	investment := models.Investment{
		UserID:         userID,
		Name:           name,
		Amount:         *req.Amount,
		InvestmentType: strings.TrimSpace(req.InvestmentType),
		Date:           date,
	}

	if err := database.DB.Create(&investment).Error; err != nil {
		utils.InternalError(c, "Failed to create investment")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Investment added", investment)
}

// GET /api/investments
func GetInvestments(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)

	if startDate := c.Query("start_date"); startDate != "" {
		start, err := timewindow.ParseDate(startDate, 0)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		query = query.Where("date >= ?", start)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		end, err := timewindow.ParseDateEnd(endDate, 0)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		query = query.Where("date <= ?", end)
	}
	if investmentType := c.Query("investment_type"); investmentType != "" {
		query = query.Where("investment_type = ?", investmentType)
	}

	var investments []models.Investment
	query.Order("date DESC, created_at DESC").Find(&investments)

	if investments == nil {
		investments = []models.Investment{}
	}
	utils.SuccessResponse(c, http.StatusOK, "", investments)
}

// GET /api/investments/types — distinct non-empty types for the user
func GetInvestmentTypes(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	types := []string{}
	database.DB.Model(&models.Investment{}).
		Where("user_id = ? AND investment_type <> ''", userID).
		Distinct().
		Order("investment_type").
		Pluck("investment_type", &types)

	utils.SuccessResponse(c, http.StatusOK, "", types)
}

// GET /api/investments/:id
func GetInvestment(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	investment, ok := findInvestment(c, userID)
	if !ok {
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", investment)
}

// PUT /api/investments/:id — full replace, same validation as create
func UpdateInvestment(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.BadRequest(c, "Investment name is required")
		return
	}

	investment, ok := findInvestment(c, userID)
	if !ok {
		return
	}

	investment.Name = name
	investment.Amount = *req.Amount
	investment.InvestmentType = strings.TrimSpace(req.InvestmentType)
	if req.Date != "" {
		parsed, err := timewindow.ParseDate(req.Date, 0)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		investment.Date = parsed
	}

	if err := database.DB.Save(investment).Error; err != nil {
		utils.InternalError(c, "Failed to update investment")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Investment updated", investment)
}

// DELETE /api/investments/:id
func DeleteInvestment(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	investmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid investment ID")
		return
	}

	res := database.DB.Where("id = ? AND user_id = ?", investmentID, userID).Delete(&models.Investment{})
	if res.Error != nil {
		utils.InternalError(c, "Failed to delete investment")
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Investment not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Investment deleted successfully", nil)
}

// findInvestment loads an investment owned by the user; ownership and
// absence both report not found.
func findInvestment(c *gin.Context, userID uuid.UUID) (*models.Investment, bool) {
	investmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid investment ID")
		return nil, false
	}

	var investment models.Investment
	if err := database.DB.Where("id = ? AND user_id = ?", investmentID, userID).First(&investment).Error; err != nil {
		utils.NotFound(c, "Investment not found")
		return nil, false
	}
	return &investment, true
}
