package models

import "time"

const (
	ReservationStatusReserved  = "reserved"
	ReservationStatusConfirmed = "confirmed"
)

// InvestmentReservation records an investor's claim on N slots of a
// property. Rows are immutable after creation; there is no cancel path.
type InvestmentReservation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PropertyID   uint      `gorm:"not null;index" json:"property_id"`
	FullName     string    `gorm:"size:200;not null" json:"full_name"`
	Email        string    `gorm:"size:255;not null;index" json:"email"`
	Phone        string    `gorm:"size:50;not null" json:"phone"`
	Units        int       `gorm:"not null" json:"units"`
	ReferralCode string    `gorm:"size:100" json:"referral_code,omitempty"`
	Status       string    `gorm:"size:50;not null;default:reserved" json:"status"`
	CreatedAt    time.Time `json:"created_at"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

func (InvestmentReservation) TableName() string { return "investment_reservations" }
