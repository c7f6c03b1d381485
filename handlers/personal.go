package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"roomledger-backend/database"
	"roomledger-backend/models"
	"roomledger-backend/timewindow"
	"roomledger-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// POST /api/expenses
func CreatePersonalExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreatePersonalExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	// binding:"required" accepts whitespace, so validate the trimmed value
	description := strings.TrimSpace(req.Description)
	if description == "" {
		utils.BadRequest(c, "Description is required")
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

	expense := models.PersonalExpense{
		UserID:      userID,
		Description: description,
		Amount:      req.Amount,
		Category:    strings.TrimSpace(req.Category),
		Date:        date,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		utils.InternalError(c, "Failed to create expense")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Expense added", expense)
}

// GET /api/expenses
func GetPersonalExpenses(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	query := database.DB.Where("user_id = ?", userID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var expenses []models.PersonalExpense
	query.Order("date DESC, created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&expenses)

	if expenses == nil {
		expenses = []models.PersonalExpense{}
	}
	utils.SuccessResponse(c, http.StatusOK, "", expenses)
}

// GET /api/expenses/categories — distinct non-empty categories for the user
func GetPersonalExpenseCategories(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	categories := []string{}
	database.DB.Model(&models.PersonalExpense{}).
		Where("user_id = ? AND category <> ''", userID).
		Distinct().
		Order("category").
		Pluck("category", &categories)

	utils.SuccessResponse(c, http.StatusOK, "", categories)
}

// PUT /api/expenses/:id — full replace, same validation as create
func UpdatePersonalExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	var req models.UpdatePersonalExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		utils.BadRequest(c, "Description is required")
		return
	}

	var expense models.PersonalExpense
	if err := database.DB.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	expense.Description = description
	expense.Amount = req.Amount
	expense.Category = strings.TrimSpace(req.Category)
	if req.Date != "" {
		parsed, err := timewindow.ParseDate(req.Date, 0)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		expense.Date = parsed
	}

	if err := database.DB.Save(&expense).Error; err != nil {
		utils.InternalError(c, "Failed to update expense")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Expense updated", expense)
}

// DELETE /api/expenses/:id
func DeletePersonalExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	res := database.DB.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.PersonalExpense{})
	if res.Error != nil {
		utils.InternalError(c, "Failed to delete expense")
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Expense not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Expense deleted successfully", nil)
}

// GET /api/expenses/analytics?timezone_offset=330
// Unlike room analytics, the window offset is caller-supplied (minutes
// east of UTC) and defaults to UTC.
func GetPersonalAnalytics(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	offset := 0
	if raw := c.Query("timezone_offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.BadRequest(c, "timezone_offset must be an integer number of minutes")
			return
		}
		offset = parsed
	}

	now := time.Now()
	day := timewindow.Day(now, offset)
	week := timewindow.Week(now, offset)
	month := timewindow.Month(now, offset)

	var analytics models.PersonalAnalytics
	sumRange := func(w timewindow.Window) float64 {
		var total float64
		database.DB.Model(&models.PersonalExpense{}).
			Where("user_id = ? AND date >= ? AND date <= ?", userID, w.Start, w.End).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&total)
		return total
	}
	analytics.Today = utils.RoundToTwo(sumRange(day))
	analytics.Week = utils.RoundToTwo(sumRange(week))
	analytics.Month = utils.RoundToTwo(sumRange(month))

	var salary models.Salary
	if err := database.DB.First(&salary, "user_id = ?", userID).Error; err == nil {
		analytics.Salary = salary.Amount
		analytics.Remaining = utils.RoundToTwo(salary.Amount - analytics.Month)
	}

	utils.SuccessResponse(c, http.StatusOK, "", analytics)
}

// PUT /api/salary — one salary record per user, upserted in place
func SetSalary(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.SetSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	salary := models.Salary{UserID: userID, Amount: req.Amount}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&salary).Error
	if err != nil {
		utils.InternalError(c, "Failed to save salary")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Salary saved", salary)
}

// GET /api/salary
func GetSalary(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var salary models.Salary
	if err := database.DB.First(&salary, "user_id = ?", userID).Error; err != nil {
		utils.NotFound(c, "Salary not set")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", salary)
}
