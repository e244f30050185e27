package services

import (
	"errors"
	"math"

	"github.com/brikvest/backend/internal/models"
	"github.com/brikvest/backend/pkg/response"
	"gorm.io/gorm"
)

// PropertyService owns the slot ledger: the authoritative available-slot
// count and funding-progress percentage of every listing.
type PropertyService struct {
	db *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// FundingProgress returns the reserved share of totalSlots as a whole
// percentage, rounded and clamped to [0, 100].
func FundingProgress(totalSlots, availableSlots int) int {
	if totalSlots <= 0 {
		return 0
	}

	reserved := totalSlots - availableSlots
	pct := int(math.Round(float64(reserved) * 100 / float64(totalSlots)))

	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

type PropertyListRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=active coming_soon sold_out closed"`
	Location string `form:"location"`
}

type CreatePropertyRequest struct {
	Name                    string  `json:"name" binding:"required"`
	Location                string  `json:"location" binding:"required"`
	Description             string  `json:"description" binding:"required"`
	TotalValue              int64   `json:"total_value" binding:"required,gt=0"`
	MinInvestment           int64   `json:"min_investment" binding:"required,gt=0"`
	ProjectedReturn         float64 `json:"projected_return" binding:"gte=0"`
	TotalSlots              int     `json:"total_slots" binding:"required,gt=0"`
	AvailableSlots          *int    `json:"available_slots" binding:"omitempty,gte=0"`
	FundingProgress         *int    `json:"funding_progress" binding:"omitempty,gte=0,lte=100"`
	ImageURL                string  `json:"image_url"`
	Status                  string  `json:"status" binding:"omitempty,oneof=active coming_soon sold_out closed"`
	Badge                   string  `json:"badge"`
	PartnershipDocumentURL  string  `json:"partnership_document_url"`
	PartnershipDocumentName string  `json:"partnership_document_name"`
	DeveloperNotes          string  `json:"developer_notes"`
	InvestmentDetails       string  `json:"investment_details"`
}

// UpdatePropertyRequest is a full overwrite of the business fields. The
// admin is trusted to supply consistent slot counters; funding progress is
// not recomputed here.
type UpdatePropertyRequest struct {
	Name                    string  `json:"name" binding:"required"`
	Location                string  `json:"location" binding:"required"`
	Description             string  `json:"description" binding:"required"`
	TotalValue              int64   `json:"total_value" binding:"required,gt=0"`
	MinInvestment           int64   `json:"min_investment" binding:"required,gt=0"`
	ProjectedReturn         float64 `json:"projected_return" binding:"gte=0"`
	TotalSlots              int     `json:"total_slots" binding:"required,gt=0"`
	AvailableSlots          int     `json:"available_slots" binding:"gte=0"`
	FundingProgress         int     `json:"funding_progress" binding:"gte=0,lte=100"`
	ImageURL                string  `json:"image_url"`
	Status                  string  `json:"status" binding:"omitempty,oneof=active coming_soon sold_out closed"`
	Badge                   string  `json:"badge"`
	PartnershipDocumentURL  string  `json:"partnership_document_url"`
	PartnershipDocumentName string  `json:"partnership_document_name"`
	DeveloperNotes          string  `json:"developer_notes"`
	InvestmentDetails       string  `json:"investment_details"`
}

// List returns properties, newest first, optionally filtered.
func (s *PropertyService) List(req *PropertyListRequest) ([]models.Property, error) {
	query := s.db.Model(&models.Property{})

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Location != "" {
		query = query.Where("location LIKE ?", "%"+req.Location+"%")
	}

	var properties []models.Property
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// GetByID returns a property by ID.
func (s *PropertyService) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	if err := s.db.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("property not found")
		}
		return nil, err
	}
	return &property, nil
}

// Create inserts a new listing. AvailableSlots defaults to TotalSlots and
// FundingProgress is derived from the slot counters when not supplied.
func (s *PropertyService) Create(req *CreatePropertyRequest) (*models.Property, error) {
	available := req.TotalSlots
	if req.AvailableSlots != nil {
		available = *req.AvailableSlots
	}
	if available > req.TotalSlots {
		return nil, response.NewBadRequest("available_slots cannot exceed total_slots")
	}

	progress := FundingProgress(req.TotalSlots, available)
	if req.FundingProgress != nil {
		progress = *req.FundingProgress
	}

	status := req.Status
	if status == "" {
		status = models.PropertyStatusActive
	}

	property := models.Property{
		Name:                    req.Name,
		Location:                req.Location,
		Description:             req.Description,
		TotalValue:              req.TotalValue,
		MinInvestment:           req.MinInvestment,
		ProjectedReturn:         req.ProjectedReturn,
		TotalSlots:              req.TotalSlots,
		AvailableSlots:          available,
		FundingProgress:         progress,
		ImageURL:                req.ImageURL,
		Status:                  status,
		Badge:                   req.Badge,
		PartnershipDocumentURL:  req.PartnershipDocumentURL,
		PartnershipDocumentName: req.PartnershipDocumentName,
		DeveloperNotes:          req.DeveloperNotes,
		InvestmentDetails:       req.InvestmentDetails,
	}

	if err := s.db.Create(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// Update overwrites the business fields of a listing.
func (s *PropertyService) Update(id uint, req *UpdatePropertyRequest) (*models.Property, error) {
	property, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.AvailableSlots > req.TotalSlots {
		return nil, response.NewBadRequest("available_slots cannot exceed total_slots")
	}

	property.Name = req.Name
	property.Location = req.Location
	property.Description = req.Description
	property.TotalValue = req.TotalValue
	property.MinInvestment = req.MinInvestment
	property.ProjectedReturn = req.ProjectedReturn
	property.TotalSlots = req.TotalSlots
	property.AvailableSlots = req.AvailableSlots
	property.FundingProgress = req.FundingProgress
	property.ImageURL = req.ImageURL
	if req.Status != "" {
		property.Status = req.Status
	}
	property.Badge = req.Badge
	property.PartnershipDocumentURL = req.PartnershipDocumentURL
	property.PartnershipDocumentName = req.PartnershipDocumentName
	property.DeveloperNotes = req.DeveloperNotes
	property.InvestmentDetails = req.InvestmentDetails

	if err := s.db.Save(property).Error; err != nil {
		return nil, err
	}
	return property, nil
}

// Delete removes a listing together with its reservations; groups that
// pointed at it are detached rather than destroyed, since they hold member
// pledges and contributions.
func (s *PropertyService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.First(&property, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("property not found")
			}
			return err
		}

		if err := tx.Where("property_id = ?", id).Delete(&models.InvestmentReservation{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.InvestmentGroup{}).Where("property_id = ?", id).
			Update("property_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&property).Error
	})
}

// ReserveSlots claims units slots of a property atomically. The decrement is
// conditional on sufficient availability, so two racing reservations can
// never jointly oversell; funding progress is then derived from the
// post-decrement row.
func (s *PropertyService) ReserveSlots(propertyID uint, units int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.reserveSlotsTx(tx, propertyID, units)
	})
}

// reserveSlotsTx performs the ledger update inside an existing transaction
// so callers can combine it with their own writes all-or-nothing.
func (s *PropertyService) reserveSlotsTx(tx *gorm.DB, propertyID uint, units int) error {
	if units <= 0 {
		return response.NewBadRequest("units must be greater than zero")
	}

	res := tx.Model(&models.Property{}).
		Where("id = ? AND available_slots >= ?", propertyID, units).
		UpdateColumn("available_slots", gorm.Expr("available_slots - ?", units))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Property{}).Where("id = ?", propertyID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return response.NewNotFound("property not found")
		}
		return response.NewBadRequest("not enough available slots")
	}

	var property models.Property
	if err := tx.Select("total_slots", "available_slots").First(&property, propertyID).Error; err != nil {
		return err
	}

	return tx.Model(&models.Property{}).Where("id = ?", propertyID).
		UpdateColumn("funding_progress", FundingProgress(property.TotalSlots, property.AvailableSlots)).Error
}

// SeedSampleProperties inserts the launch catalog once. It is idempotent:
// nothing happens when any property already exists.
func (s *PropertyService) SeedSampleProperties() (bool, error) {
	var count int64
	if err := s.db.Model(&models.Property{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	samples := []models.Property{
		{
			Name:            "Victoria Island Office Complex",
			Location:        "Victoria Island, Lagos",
			Description:     "Premium 24-unit commercial office complex in Lagos's financial district with modern amenities and high occupancy rates.",
			TotalValue:      1200000000,
			MinInvestment:   500000,
			ProjectedReturn: 12.50,
			TotalSlots:      240,
			AvailableSlots:  127,
			FundingProgress: 47,
			ImageURL:        "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			Status:          models.PropertyStatusActive,
		},
		{
			Name:            "Luxury Residences Lekki",
			Location:        "Lekki Phase 1, Lagos",
			Description:     "Grade A residential complex in Lekki's rapidly growing area with long-term corporate tenants and expatriate housing.",
			TotalValue:      1600000000,
			MinInvestment:   750000,
			ProjectedReturn: 15.20,
			TotalSlots:      213,
			AvailableSlots:  89,
			FundingProgress: 58,
			ImageURL:        "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			Status:          models.PropertyStatusActive,
		},
		{
			Name:            "Ikeja City Mall",
			Location:        "Ikeja, Lagos",
			Description:     "Modern retail plaza with anchor tenants and prime location in Lagos's commercial hub.",
			TotalValue:      900000000,
			MinInvestment:   400000,
			ProjectedReturn: 11.80,
			TotalSlots:      180,
			AvailableSlots:  156,
			FundingProgress: 13,
			ImageURL:        "https://images.unsplash.com/photo-1441986300917-64674bd600d8?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			Status:          models.PropertyStatusActive,
		},
		{
			Name:            "Logistics Hub Ogun",
			Location:        "Ogun State",
			Description:     "Strategic industrial facility serving major e-commerce and distribution networks in Southwest Nigeria.",
			TotalValue:      2050000000,
			MinInvestment:   1000000,
			ProjectedReturn: 10.50,
			TotalSlots:      205,
			AvailableSlots:  78,
			FundingProgress: 62,
			ImageURL:        "https://images.unsplash.com/photo-1587293852726-70cdb56c2866?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			Status:          models.PropertyStatusActive,
		},
		{
			Name:            "Abuja Mixed-Use Tower",
			Location:        "Central Business District, Abuja",
			Description:     "Mixed-use development combining retail, office, and residential spaces in Nigeria's capital city.",
			TotalValue:      2800000000,
			MinInvestment:   1250000,
			ProjectedReturn: 16.80,
			TotalSlots:      224,
			AvailableSlots:  45,
			FundingProgress: 80,
			ImageURL:        "https://images.unsplash.com/photo-1582407947304-fd86f028f716?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			Status:          models.PropertyStatusActive,
		},
		{
			Name:            "Eko Atlantic Towers",
			Location:        "Eko Atlantic City, Lagos",
			Description:     "Premium waterfront property development with luxury amenities and strong rental potential in Lagos's new financial center.",
			TotalValue:      4100000000,
			MinInvestment:   2500000,
			ProjectedReturn: 18.50,
			TotalSlots:      164,
			AvailableSlots:  67,
			FundingProgress: 59,
			ImageURL:        "https://images.unsplash.com/photo-1564013799919-ab600027ffc6?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			Status:          models.PropertyStatusActive,
		},
	}

	for i := range samples {
		samples[i].FundingProgress = FundingProgress(samples[i].TotalSlots, samples[i].AvailableSlots)
	}

	if err := s.db.Create(&samples).Error; err != nil {
		return false, err
	}
	return true, nil
}
