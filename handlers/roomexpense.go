package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"roomledger-backend/database"
	"roomledger-backend/ledger"
	"roomledger-backend/models"
	"roomledger-backend/services"
	"roomledger-backend/timewindow"
	"roomledger-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/room-expenses
func CreateRoomExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateRoomExpenseRequest
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

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		utils.BadRequest(c, "Invalid room ID")
		return
	}

	var room models.Room
	if err := database.DB.Where("id = ? AND is_active = ?", roomID, true).First(&room).Error; err != nil {
		utils.NotFound(c, "Room not found or access denied")
		return
	}
	if !room.HasMember(userID) {
		utils.NotFound(c, "Room not found or access denied")
		return
	}

	splitDetails, err := ledger.EqualSplit(room.Members, userID, req.TotalAmount)
	if err != nil {
		// Creator is always a member, so an empty room is a data
		// integrity problem, not a normal outcome.
		utils.BadRequest(c, "Room has no members")
		return
	}

	expenseDate, ok := resolveExpenseDate(c, req.Date)
	if !ok {
		return
	}

	expense := models.RoomExpense{
		RoomID:       roomID,
		Description:  description,
		TotalAmount:  req.TotalAmount,
		PaidBy:       userID,
		Date:         expenseDate,
		Category:     strings.TrimSpace(req.Category),
		SplitDetails: splitDetails,
		IsArchived:   ledger.AllSettled(splitDetails),
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		utils.InternalError(c, "Failed to create expense")
		return
	}

	database.BumpRoomLedgerRev(c.Request.Context(), roomID)

	var payer models.User
	database.DB.First(&payer, userID)
	go services.GetNotificationService().NotifyExpenseAdded(expense, payer, room)

	utils.SuccessResponse(c, http.StatusCreated, "Expense added", expense)
}

// GET /api/room-expenses/:roomId — active (non-archived) expenses
func GetRoomExpenses(c *gin.Context) {
	listRoomExpenses(c, false)
}

// GET /api/room-expenses/:roomId/history — full history including archived
func GetRoomExpenseHistory(c *gin.Context) {
	listRoomExpenses(c, true)
}

func listRoomExpenses(c *gin.Context, includeArchived bool) {
	userID := utils.GetCurrentUserID(c)

	room, ok := findMemberRoom(c, userID, "id")
	if !ok {
		return
	}

	query := database.DB.Where("room_id = ?", room.ID)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}

	if startDate := c.Query("start_date"); startDate != "" {
		start, err := timewindow.ParseDate(startDate, timewindow.ISTOffsetMinutes)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		query = query.Where("date >= ?", start)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		end, err := timewindow.ParseDateEnd(endDate, timewindow.ISTOffsetMinutes)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		query = query.Where("date <= ?", end)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var expenses []models.RoomExpense
	query.Order("date DESC, created_at DESC").Find(&expenses)

	// Payment status is per requester, so filter in memory
	if status := c.Query("payment_status"); status != "" {
		filtered := expenses[:0]
		for _, exp := range expenses {
			for _, d := range exp.SplitDetails {
				if d.UserID == userID && d.Status == status {
					filtered = append(filtered, exp)
					break
				}
			}
		}
		expenses = filtered
	}

	if expenses == nil {
		expenses = []models.RoomExpense{}
	}
	utils.SuccessResponse(c, http.StatusOK, "", expenses)
}

// PUT /api/room-expenses/:id/status
func UpdatePaymentStatus(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	memberUserID, err := uuid.Parse(req.MemberUserID)
	if err != nil {
		utils.BadRequest(c, "Invalid member user ID")
		return
	}

	expense, ok := loadExpense(c)
	if !ok {
		return
	}

	if err := ledger.SetPaymentStatus(expense, userID, memberUserID, req.Status); err != nil {
		respondLedgerError(c, err)
		return
	}

	if !persistSplits(c, expense) {
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment status updated", expense)
}

// PUT /api/room-expenses/:id/partial-payment
func UpdatePartialPayment(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.UpdatePartialPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	memberUserID, err := uuid.Parse(req.MemberUserID)
	if err != nil {
		utils.BadRequest(c, "Invalid member user ID")
		return
	}

	expense, ok := loadExpense(c)
	if !ok {
		return
	}

	if err := ledger.ApplyPartialPayment(expense, userID, memberUserID, req.PaidAmount, req.ShareAmount); err != nil {
		respondLedgerError(c, err)
		return
	}

	if !persistSplits(c, expense) {
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Partial payment updated", expense)
}

// DELETE /api/room-expenses/:id
func DeleteRoomExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	expense, ok := loadExpense(c)
	if !ok {
		return
	}

	if expense.PaidBy != userID {
		utils.Forbidden(c, "Only the expense payer can delete this expense")
		return
	}

	if err := database.DB.Delete(expense).Error; err != nil {
		utils.InternalError(c, "Failed to delete expense")
		return
	}

	database.BumpRoomLedgerRev(c.Request.Context(), expense.RoomID)

	utils.SuccessResponse(c, http.StatusOK, "Expense deleted successfully", nil)
}

// DELETE /api/room-expenses/:roomId/reset — wipes the room's ledger,
// archived and active alike. Irreversible.
func ResetRoomExpenses(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	room, ok := findCreatorRoom(c, userID, "id")
	if !ok {
		return
	}

	if err := database.DB.Where("room_id = ?", room.ID).Delete(&models.RoomExpense{}).Error; err != nil {
		utils.InternalError(c, "Failed to reset room expenses")
		return
	}

	database.BumpRoomLedgerRev(c.Request.Context(), room.ID)

	utils.SuccessResponse(c, http.StatusOK, "All room expenses deleted", nil)
}

func loadExpense(c *gin.Context) (*models.RoomExpense, bool) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return nil, false
	}

	var expense models.RoomExpense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return nil, false
	}
	return &expense, true
}

// persistSplits writes a mutated split snapshot back under optimistic
// concurrency: the update only lands if the version read is still current.
// A lost race surfaces as a conflict for the client to reissue.
func persistSplits(c *gin.Context, expense *models.RoomExpense) bool {
	currentVersion := expense.Version
	expense.Version++

	res := database.DB.Model(&models.RoomExpense{}).
		Where("id = ? AND version = ?", expense.ID, currentVersion).
		Select("SplitDetails", "IsArchived", "Version").
		Updates(expense)
	if res.Error != nil {
		utils.InternalError(c, "Failed to update expense")
		return false
	}
	if res.RowsAffected == 0 {
		utils.Conflict(c, "Expense was modified concurrently, please retry")
		return false
	}

	database.BumpRoomLedgerRev(c.Request.Context(), expense.RoomID)
	return true
}

func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotPayer), errors.Is(err, ledger.ErrSelfTarget):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, ledger.ErrMemberNotInSplit):
		utils.NotFound(c, err.Error())
	default:
		utils.BadRequest(c, err.Error())
	}
}

// resolveExpenseDate interprets a YYYY-MM-DD body value as an IST calendar
// day; absent a value the expense lands on today's IST day start.
func resolveExpenseDate(c *gin.Context, raw string) (time.Time, bool) {
	if raw == "" {
		return timewindow.Day(time.Now(), timewindow.ISTOffsetMinutes).Start, true
	}
	parsed, err := timewindow.ParseDate(raw, timewindow.ISTOffsetMinutes)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return time.Time{}, false
	}
	return parsed, true
}
