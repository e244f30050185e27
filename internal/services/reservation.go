package services

import (
	"errors"

	"github.com/brikvest/backend/internal/models"
	"github.com/brikvest/backend/pkg/logger"
	"github.com/brikvest/backend/pkg/response"
	"gorm.io/gorm"
)

// ReservationService records investor claims and drives the slot ledger.
type ReservationService struct {
	db              *gorm.DB
	propertyService *PropertyService
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{
		db:              db,
		propertyService: NewPropertyService(db),
	}
}

type CreateReservationRequest struct {
	PropertyID   uint   `json:"property_id" binding:"required"`
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required"`
	Units        int    `json:"units" binding:"required,gt=0"`
	ReferralCode string `json:"referral_code"`
}

// Create validates, claims the slots and inserts the reservation in one
// transaction. Either both writes land or neither does; insufficient slots
// reject the request before any state changes.
func (s *ReservationService) Create(req *CreateReservationRequest) (*models.InvestmentReservation, error) {
	reservation := models.InvestmentReservation{
		PropertyID:   req.PropertyID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Units:        req.Units,
		ReferralCode: req.ReferralCode,
		Status:       models.ReservationStatusReserved,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.propertyService.reserveSlotsTx(tx, req.PropertyID, req.Units); err != nil {
			return err
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(&reservation)
	return &reservation, nil
}

// sendConfirmation queues the confirmation notice. Failures are logged and
// never affect the API result.
func (s *ReservationService) sendConfirmation(r *models.InvestmentReservation) {
	queue := GetMailQueue()
	if queue == nil {
		return
	}

	var property models.Property
	if err := s.db.First(&property, r.PropertyID).Error; err != nil {
		logger.Warnf("[Reservation] Skipping confirmation, property %d lookup failed: %v", r.PropertyID, err)
		return
	}

	subject, body := BuildReservationConfirmation(r, &property)
	if err := queue.Enqueue(&EmailTask{To: []string{r.Email}, Subject: subject, Body: body}); err != nil {
		logger.Warnf("[Reservation] Failed to enqueue confirmation for %s: %v", r.Email, err)
	}
}

// ListByEmail returns an investor's reservations, newest first.
func (s *ReservationService) ListByEmail(email string) ([]models.InvestmentReservation, error) {
	var reservations []models.InvestmentReservation
	if err := s.db.Where("email = ?", email).
		Order("created_at DESC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListByProperty returns the reservations against one listing.
func (s *ReservationService) ListByProperty(propertyID uint) ([]models.InvestmentReservation, error) {
	var reservations []models.InvestmentReservation
	if err := s.db.Where("property_id = ?", propertyID).
		Order("created_at DESC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListAll returns every reservation with its property preloaded, for the
// back office.
func (s *ReservationService) ListAll() ([]models.InvestmentReservation, error) {
	var reservations []models.InvestmentReservation
	if err := s.db.Preload("Property").
		Order("created_at DESC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// GetByID returns a single reservation.
func (s *ReservationService) GetByID(id uint) (*models.InvestmentReservation, error) {
	var reservation models.InvestmentReservation
	if err := s.db.Preload("Property").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("reservation not found")
		}
		return nil, err
	}
	return &reservation, nil
}
