package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"roomledger-backend/database"
	"roomledger-backend/ledger"
	"roomledger-backend/models"
	"roomledger-backend/utils"

	"github.com/gin-gonic/gin"
)

const analyticsCacheTTL = 2 * time.Minute

// GET /api/room-expenses/:roomId/analytics
func GetRoomAnalytics(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	room, ok := findMemberRoom(c, userID, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	rev := database.RoomLedgerRev(ctx, room.ID)
	cacheKey := fmt.Sprintf("analytics:%s:%s:%d", room.ID, userID, rev)

	if cached, hit := database.CacheGet(ctx, cacheKey); hit {
		var analytics models.RoomAnalytics
		if err := json.Unmarshal([]byte(cached), &analytics); err == nil {
			utils.SuccessResponse(c, http.StatusOK, "", analytics)
			return
		}
	}

	var expenses []models.RoomExpense
	database.DB.Where("room_id = ?", room.ID).Find(&expenses)

	analytics := ledger.Analytics(expenses, userID, time.Now())

	if payload, err := json.Marshal(analytics); err == nil {
		database.CacheSet(ctx, cacheKey, string(payload), analyticsCacheTTL)
	}

	utils.SuccessResponse(c, http.StatusOK, "", analytics)
}

// GET /api/room-expenses/:roomId/debt-breakdown
func GetDebtBreakdown(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	room, ok := findMemberRoom(c, userID, "id")
	if !ok {
		return
	}

	var expenses []models.RoomExpense
	database.DB.Where("room_id = ?", room.ID).Find(&expenses)

	breakdown := ledger.DebtBreakdown(expenses, room.Members, userID)

	utils.SuccessResponse(c, http.StatusOK, "", breakdown)
}
