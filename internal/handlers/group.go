package handlers

import (
	"strconv"

	"github.com/brikvest/backend/internal/services"
	"github.com/brikvest/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GroupHandler struct {
	groupService *services.GroupService
}

func NewGroupHandler(db *gorm.DB) *GroupHandler {
	return &GroupHandler{
		groupService: services.NewGroupService(db),
	}
}

// Create starts a new investment group with the caller as leader
// POST /api/investment-groups
func (h *GroupHandler) Create(c *gin.Context) {
	var req services.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	group, err := h.groupService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, group)
}

// List returns publicly visible groups
// GET /api/investment-groups
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.groupService.List(false)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, groups)
}

// GetByID returns a group by ID
// GET /api/investment-groups/:id
func (h *GroupHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}

	group, err := h.groupService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, group)
}

// Members returns a group's members, leader first
// GET /api/investment-groups/:id/members
func (h *GroupHandler) Members(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}

	members, err := h.groupService.Members(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, members)
}

// Join adds a member to a group via invite code
// POST /api/investment-groups/join
func (h *GroupHandler) Join(c *gin.Context) {
	var req services.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.groupService.Join(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, member)
}

// Contribute records a member contribution toward the group target
// POST /api/investment-groups/:id/contributions
func (h *GroupHandler) Contribute(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}

	var req services.ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contribution, err := h.groupService.Contribute(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, contribution)
}

// UpdateStatus moves a group through its lifecycle
// PUT /api/investment-groups/:id/status
func (h *GroupHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}

	var req services.UpdateGroupStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	group, err := h.groupService.UpdateStatus(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, group)
}
