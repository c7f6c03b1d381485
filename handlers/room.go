package handlers

import (
	"net/http"
	"strings"
	"time"

	"roomledger-backend/database"
	"roomledger-backend/models"
	"roomledger-backend/services"
	"roomledger-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/rooms
func CreateRoom(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.BadRequest(c, "Room name is required")
		return
	}

	var creator models.User
	if err := database.DB.First(&creator, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	// Creator is always the first member
	room := models.Room{
		Name:      name,
		CreatedBy: userID,
		IsActive:  true,
		Members: []models.Member{{
			UserID:   userID,
			Email:    creator.Email,
			Name:     creator.Name,
			JoinedAt: time.Now().UTC(),
		}},
	}

	if err := database.DB.Create(&room).Error; err != nil {
		utils.InternalError(c, "Failed to create room")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Room created", room)
}

// GET /api/rooms
func GetRooms(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	// Membership lives inside the members jsonb column; a containment
	// predicate keeps the filter in the database.
	var rooms []models.Room
	database.DB.
		Where("is_active = ?", true).
		Where("created_by = ? OR members @> ?::jsonb", userID, models.MemberFilterJSON(userID)).
		Order("created_at DESC").
		Find(&rooms)

	if rooms == nil {
		rooms = []models.Room{}
	}
	utils.SuccessResponse(c, http.StatusOK, "", rooms)
}

// GET /api/rooms/:id
func GetRoom(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	room, ok := findMemberRoom(c, userID, "id")
	if !ok {
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", room)
}

// POST /api/rooms/:id/members
func AddMember(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	room, ok := findCreatorRoom(c, userID, "id")
	if !ok {
		return
	}

	var req models.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var userToAdd models.User
	if err := database.DB.Where("email = ?", email).First(&userToAdd).Error; err != nil {
		utils.NotFound(c, "User with this email does not exist")
		return
	}

	for _, m := range room.Members {
		if m.UserID == userToAdd.ID {
			utils.BadRequest(c, "User is already a member of this room")
			return
		}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = userToAdd.Name
	}

	room.Members = append(room.Members, models.Member{
		UserID:   userToAdd.ID,
		Email:    userToAdd.Email,
		Name:     name,
		JoinedAt: time.Now().UTC(),
	})

	if err := database.DB.Save(room).Error; err != nil {
		utils.InternalError(c, "Failed to add member")
		return
	}

	var adder models.User
	database.DB.First(&adder, userID)
	go services.GetNotificationService().NotifyMemberAdded(*room, adder, userToAdd)

	utils.SuccessResponse(c, http.StatusOK, "Member added", room)
}

// DELETE /api/rooms/:id/members
func RemoveMember(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	room, ok := findCreatorRoom(c, userID, "id")
	if !ok {
		return
	}

	var req models.RemoveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		utils.BadRequest(c, "Invalid member ID")
		return
	}

	if memberID == room.CreatedBy {
		utils.BadRequest(c, "Cannot remove room creator")
		return
	}

	kept := room.Members[:0]
	for _, m := range room.Members {
		if m.UserID != memberID {
			kept = append(kept, m)
		}
	}
	room.Members = kept

	if err := database.DB.Save(room).Error; err != nil {
		utils.InternalError(c, "Failed to remove member")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Member removed", room)
}

// DELETE /api/rooms/:id — soft delete
func DeleteRoom(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	room, ok := findCreatorRoom(c, userID, "id")
	if !ok {
		return
	}

	if err := database.DB.Model(room).Update("is_active", false).Error; err != nil {
		utils.InternalError(c, "Failed to delete room")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Room deleted successfully", nil)
}

// findMemberRoom loads an active room the user belongs to. Absence and
// access denial are both reported as not found so membership can't be
// probed.
func findMemberRoom(c *gin.Context, userID uuid.UUID, param string) (*models.Room, bool) {
	roomID, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.BadRequest(c, "Invalid room ID")
		return nil, false
	}

	var room models.Room
	if err := database.DB.Where("id = ? AND is_active = ?", roomID, true).First(&room).Error; err != nil {
		utils.NotFound(c, "Room not found or access denied")
		return nil, false
	}
	if !room.HasMember(userID) {
		utils.NotFound(c, "Room not found or access denied")
		return nil, false
	}
	return &room, true
}

// findCreatorRoom is findMemberRoom restricted to creator-only operations.
func findCreatorRoom(c *gin.Context, userID uuid.UUID, param string) (*models.Room, bool) {
	roomID, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.BadRequest(c, "Invalid room ID")
		return nil, false
	}

	var room models.Room
	if err := database.DB.Where("id = ? AND is_active = ?", roomID, true).First(&room).Error; err != nil {
		utils.NotFound(c, "Room not found or access denied")
		return nil, false
	}
	if room.CreatedBy != userID {
		if room.HasMember(userID) {
			utils.Forbidden(c, "Only the room creator can perform this action")
		} else {
			utils.NotFound(c, "Room not found or access denied")
		}
		return nil, false
	}
	return &room, true
}
