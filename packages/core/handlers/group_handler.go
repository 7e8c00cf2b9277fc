package handlers

import (
	"net/http"

	authMiddleware "cuebook-api/packages/auth/middleware"
	"cuebook-api/packages/core/membership"
	"cuebook-api/packages/core/models"
	"cuebook-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groupService      *services.GroupService
	membershipService *services.MembershipService
}

func NewGroupHandler(groupService *services.GroupService, membershipService *services.MembershipService) *GroupHandler {
	return &GroupHandler{
		groupService:      groupService,
		membershipService: membershipService,
	}
}

// CreateGroup creates a ledger group
// @Summary Create a group
// @Description Create a group owned by the authenticated user, who becomes its first active member
// @Tags groups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param group body models.CreateGroupRequest true "Group"
// @Success 201 {object} models.LedgerGroup
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, ok := authMiddleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create group")
		return
	}

	c.JSON(http.StatusCreated, group)
}

// GetGroup retrieves a ledger group
// @Summary Get group by ID
// @Tags groups
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} models.LedgerGroup
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /groups/{id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
	group, err := h.groupService.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve group")
		return
	}

	c.JSON(http.StatusOK, group)
}

// GetMembers lists the members of a ledger group
// @Summary Get group members
// @Description List every user of the group that is requesting, invited or active
// @Tags groups
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} models.GroupMember
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /groups/{id}/members [get]
func (h *GroupHandler) GetMembers(c *gin.Context) {
	members, err := h.groupService.GetMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve members")
		return
	}

	c.JSON(http.StatusOK, members)
}

// ApplyAction changes the membership of a user in a group
// @Summary Apply a membership action
// @Description REQUEST, ACCEPT_INVITE, REJECT_INVITE and LEAVE are performed by the user; ACCEPT_REQUEST, REJECT_REQUEST, INVITE and REMOVE by an active member
// @Tags groups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param userId path string true "User whose membership changes"
// @Param action body models.MemberActionRequest true "Action"
// @Success 200 {object} models.MemberActionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /groups/{id}/members/{userId}/actions [post]
func (h *GroupHandler) ApplyAction(c *gin.Context) {
	actorID, ok := authMiddleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.MemberActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	action, err := membership.ParseAction(req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid action",
		})
		return
	}

	response, err := h.membershipService.Apply(c.Request.Context(), actorID, c.Param("userId"), c.Param("id"), action)
	if err != nil {
		respondError(c, err, "Failed to update membership")
		return
	}

	c.JSON(http.StatusOK, response)
}
