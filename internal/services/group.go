package services

import (
	"errors"
	"strings"
	"time"

	"github.com/brikvest/backend/internal/models"
	"github.com/brikvest/backend/internal/utils"
	"github.com/brikvest/backend/pkg/logger"
	"github.com/brikvest/backend/pkg/response"
	"gorm.io/gorm"
)

// Groups recruit for 30 days before the sweep expires them.
const groupRecruitingWindow = 30 * 24 * time.Hour

// inviteCodeAttempts bounds the uniqueness retry loop for generated codes.
const inviteCodeAttempts = 5

// GroupService runs the pooled-investing bookkeeping: group targets, member
// pledges and recorded contributions.
type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

type CreateGroupRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	PropertyID   *uint  `json:"property_id"`
	LeaderName   string `json:"leader_name" binding:"required"`
	LeaderEmail  string `json:"leader_email" binding:"required,email"`
	LeaderPhone  string `json:"leader_phone" binding:"required"`
	TargetAmount int64  `json:"target_amount" binding:"required,gt=0"`
	TargetUnits  int    `json:"target_units" binding:"required,gt=0"`
	MaxMembers   int    `json:"max_members" binding:"omitempty,gt=0"`
	IsPublic     *bool  `json:"is_public"`
}

type JoinGroupRequest struct {
	InviteCode    string `json:"invite_code" binding:"required"`
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	PledgedAmount int64  `json:"pledged_amount" binding:"required,gt=0"`
}

type ContributionRequest struct {
	MemberID  uint   `json:"member_id" binding:"required"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
	Reference string `json:"reference"`
}

type UpdateGroupStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=recruiting funded confirmed closed expired"`
}

// groupStatusTransitions is the closed set of allowed manual transitions.
// Reaching the target amount never flips the status by itself.
var groupStatusTransitions = map[string][]string{
	models.GroupStatusRecruiting: {models.GroupStatusFunded, models.GroupStatusClosed, models.GroupStatusExpired},
	models.GroupStatusFunded:     {models.GroupStatusConfirmed, models.GroupStatusClosed},
	models.GroupStatusConfirmed:  {models.GroupStatusClosed},
}

// Create inserts a group and its leader as the first member. The leader's
// pledge is the equal share target_amount / target_units. The invite code
// is retried until unique.
func (s *GroupService) Create(req *CreateGroupRequest) (*models.InvestmentGroup, error) {
	if req.PropertyID != nil {
		var count int64
		if err := s.db.Model(&models.Property{}).Where("id = ?", *req.PropertyID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, response.NewNotFound("property not found")
		}
	}

	code, err := s.uniqueInviteCode()
	if err != nil {
		return nil, err
	}

	maxMembers := req.MaxMembers
	if maxMembers == 0 {
		maxMembers = 10
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	group := models.InvestmentGroup{
		Name:           req.Name,
		Description:    req.Description,
		PropertyID:     req.PropertyID,
		LeaderName:     req.LeaderName,
		LeaderEmail:    req.LeaderEmail,
		LeaderPhone:    req.LeaderPhone,
		TargetAmount:   req.TargetAmount,
		TargetUnits:    req.TargetUnits,
		MaxMembers:     maxMembers,
		CurrentMembers: 1,
		InviteCode:     code,
		IsPublic:       isPublic,
		Status:         models.GroupStatusRecruiting,
		ExpiresAt:      time.Now().Add(groupRecruitingWindow),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		leader := models.GroupMember{
			GroupID:       group.ID,
			FullName:      req.LeaderName,
			Email:         req.LeaderEmail,
			Phone:         req.LeaderPhone,
			PledgedAmount: req.TargetAmount / int64(req.TargetUnits),
			IsLeader:      true,
			Status:        models.MemberStatusActive,
		}
		return tx.Create(&leader).Error
	})
	if err != nil {
		return nil, err
	}

	return &group, nil
}

// uniqueInviteCode generates codes until one is unused.
func (s *GroupService) uniqueInviteCode() (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := utils.GenerateInviteCode(utils.InviteCodeLength)
		if err != nil {
			return "", err
		}

		var count int64
		if err := s.db.Model(&models.InvestmentGroup{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", response.NewServerError("could not allocate invite code")
}

// Join adds a member to the group behind an invite code. Unknown and
// expired codes both read as not found; the member-count increment is
// conditional so a full group can never be overcommitted.
func (s *GroupService) Join(req *JoinGroupRequest) (*models.GroupMember, error) {
	code := strings.ToUpper(strings.TrimSpace(req.InviteCode))

	var group models.InvestmentGroup
	if err := s.db.Where("invite_code = ?", code).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("invite code not found")
		}
		return nil, err
	}

	if group.Status != models.GroupStatusRecruiting || time.Now().After(group.ExpiresAt) {
		return nil, response.NewNotFound("invite code not found")
	}

	member := models.GroupMember{
		GroupID:       group.ID,
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		PledgedAmount: req.PledgedAmount,
		Status:        models.MemberStatusActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InvestmentGroup{}).
			Where("id = ? AND current_members < max_members", group.ID).
			UpdateColumn("current_members", gorm.Expr("current_members + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return response.NewBadRequest("group is full")
		}

		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	s.sendWelcome(&group, &member)
	return &member, nil
}

func (s *GroupService) sendWelcome(g *models.InvestmentGroup, m *models.GroupMember) {
	queue := GetMailQueue()
	if queue == nil {
		return
	}

	subject, body := BuildGroupWelcome(g, m)
	if err := queue.Enqueue(&EmailTask{To: []string{m.Email}, Subject: subject, Body: body}); err != nil {
		logger.Warnf("[Group] Failed to enqueue welcome for %s: %v", m.Email, err)
	}
}

// Contribute records a payment event. The contribution row and both counter
// increments land in one transaction, and the increments are expressed in
// SQL so concurrent contributions never lose updates.
func (s *GroupService) Contribute(groupID uint, req *ContributionRequest) (*models.GroupContribution, error) {
	contribution := models.GroupContribution{
		GroupID:   groupID,
		MemberID:  req.MemberID,
		Amount:    req.Amount,
		Reference: req.Reference,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var member models.GroupMember
		if err := tx.Where("id = ? AND group_id = ?", req.MemberID, groupID).First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("group member not found")
			}
			return err
		}

		if err := tx.Create(&contribution).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.GroupMember{}).Where("id = ?", req.MemberID).
			UpdateColumn("contributed_amount", gorm.Expr("contributed_amount + ?", req.Amount)).Error; err != nil {
			return err
		}

		return tx.Model(&models.InvestmentGroup{}).Where("id = ?", groupID).
			UpdateColumn("current_amount", gorm.Expr("current_amount + ?", req.Amount)).Error
	})
	if err != nil {
		return nil, err
	}

	return &contribution, nil
}

// List returns groups, newest first. Non-admin callers only see public ones.
func (s *GroupService) List(includePrivate bool) ([]models.InvestmentGroup, error) {
	query := s.db.Model(&models.InvestmentGroup{})
	if !includePrivate {
		query = query.Where("is_public = ?", true)
	}

	var groups []models.InvestmentGroup
	if err := query.Order("created_at DESC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// GetByID returns one group.
func (s *GroupService) GetByID(id uint) (*models.InvestmentGroup, error) {
	var group models.InvestmentGroup
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("investment group not found")
		}
		return nil, err
	}
	return &group, nil
}

// Members returns a group's members, leader first.
func (s *GroupService) Members(groupID uint) ([]models.GroupMember, error) {
	if _, err := s.GetByID(groupID); err != nil {
		return nil, err
	}

	var members []models.GroupMember
	if err := s.db.Where("group_id = ?", groupID).
		Order("is_leader DESC, joined_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func canTransitionGroupStatus(from, to string) bool {
	for _, next := range groupStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus applies an admin transition within the allowed set.
func (s *GroupService) UpdateStatus(id uint, req *UpdateGroupStatusRequest) (*models.InvestmentGroup, error) {
	group, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !canTransitionGroupStatus(group.Status, req.Status) {
		return nil, response.NewBadRequest("invalid status transition: " + group.Status + " -> " + req.Status)
	}

	group.Status = req.Status
	if err := s.db.Save(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// ExpireOverdue moves recruiting groups past their deadline to expired and
// returns how many were swept.
func (s *GroupService) ExpireOverdue() (int64, error) {
	res := s.db.Model(&models.InvestmentGroup{}).
		Where("status = ? AND expires_at < ?", models.GroupStatusRecruiting, time.Now()).
		Update("status", models.GroupStatusExpired)
	return res.RowsAffected, res.Error
}
