package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pferate/puppy-website/internal/dto"
	apierrors "github.com/pferate/puppy-website/internal/errors"
	"github.com/pferate/puppy-website/internal/services"
)

// GroupHandler exposes groups and their membership.
type GroupHandler struct {
	groupService *services.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// ListGroups returns every group with its members.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.ListGroups()
	if err != nil {
		respondGroupError(c, err)
		return
	}

	groupDTOs := make([]dto.GroupDTO, len(groups))
	for i, group := range groups {
		groupDTOs[i] = dto.ToGroupDTO(group)
	}
	c.JSON(http.StatusOK, gin.H{"groups": groupDTOs})
}

// ListAdmins returns the members of the administrative groups.
func (h *GroupHandler) ListAdmins(c *gin.Context) {
	admins, err := h.groupService.GetAdminUsers()
	if err != nil {
		respondGroupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserDTOs(admins)})
}

// CreateGroup creates a new group.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	type CreateGroupRequest struct {
		Name        string `json:"name" binding:"required,max=64"`
		Description string `json:"description"`
		Default     bool   `json:"default"`
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.groupService.CreateGroup(services.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		Default:     req.Default,
	})
	if err != nil {
		respondGroupError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToGroupDTO(*group))
}

// AddMember adds a user to a group.
func (h *GroupHandler) AddMember(c *gin.Context) {
	type AddMemberRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.groupService.AddMember(c.Param("name"), req.UserID); err != nil {
		respondGroupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member added"})
}

// RemoveMember removes a user from a group.
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.groupService.RemoveMember(c.Param("name"), userID); err != nil {
		respondGroupError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidGroupName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrGroupExists):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		log.Printf("group handler error: %v", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
