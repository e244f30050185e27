package services

import (
	"errors"

	"github.com/brikvest/backend/internal/models"
	"github.com/brikvest/backend/pkg/response"
	"gorm.io/gorm"
)

// BidService stores developer project bids. Bids are write-once: the status
// field exists for the review workflow but has no transition endpoint.
type BidService struct {
	db *gorm.DB
}

func NewBidService(db *gorm.DB) *BidService {
	return &BidService{db: db}
}

type CreateBidRequest struct {
	DeveloperName   string `json:"developer_name" binding:"required"`
	CompanyName     string `json:"company_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required"`
	EstimatedCost   int64  `json:"estimated_cost" binding:"required,gt=0"`
	CostCurrency    string `json:"cost_currency"`
	Description     string `json:"description" binding:"required"`
	Timeline        int    `json:"timeline" binding:"required,gt=0"`
	PastProjectLink string `json:"past_project_link"`
	PastProjectFile string `json:"past_project_file"`
	WhySelected     string `json:"why_selected" binding:"required"`
}

// Create inserts a bid with status pending.
func (s *BidService) Create(req *CreateBidRequest) (*models.DeveloperBid, error) {
	currency := req.CostCurrency
	if currency == "" {
		currency = "NGN"
	}

	bid := models.DeveloperBid{
		DeveloperName:   req.DeveloperName,
		CompanyName:     req.CompanyName,
		Email:           req.Email,
		Phone:           req.Phone,
		EstimatedCost:   req.EstimatedCost,
		CostCurrency:    currency,
		Description:     req.Description,
		Timeline:        req.Timeline,
		PastProjectLink: req.PastProjectLink,
		PastProjectFile: req.PastProjectFile,
		WhySelected:     req.WhySelected,
		Status:          models.BidStatusPending,
	}

	if err := s.db.Create(&bid).Error; err != nil {
		return nil, err
	}
	return &bid, nil
}

// List returns all bids, newest first.
func (s *BidService) List() ([]models.DeveloperBid, error) {
	var bids []models.DeveloperBid
	if err := s.db.Order("created_at DESC").Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

// GetByID returns one bid.
func (s *BidService) GetByID(id uint) (*models.DeveloperBid, error) {
	var bid models.DeveloperBid
	if err := s.db.First(&bid, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("developer bid not found")
		}
		return nil, err
	}
	return &bid, nil
}
