package models

import (
	"time"

	"gorm.io/gorm"
)

// Property status values. Slot exhaustion does not flip the status by
// itself; availability is always derived from AvailableSlots.
const (
	PropertyStatusActive     = "active"
	PropertyStatusComingSoon = "coming_soon"
	PropertyStatusSoldOut    = "sold_out"
	PropertyStatusClosed     = "closed"
)

// Property is a listed development sold in fractional slots. One slot is
// priced at MinInvestment. Invariants: 0 <= AvailableSlots <= TotalSlots and
// FundingProgress == round((TotalSlots-AvailableSlots)/TotalSlots*100).
type Property struct {
	ID                      uint           `gorm:"primaryKey" json:"id"`
	Name                    string         `gorm:"size:200;not null" json:"name"`
	Location                string         `gorm:"size:200;not null" json:"location"`
	Description             string         `gorm:"type:text;not null" json:"description"`
	TotalValue              int64          `gorm:"not null" json:"total_value"`
	MinInvestment           int64          `gorm:"not null" json:"min_investment"`
	ProjectedReturn         float64        `gorm:"type:decimal(5,2);not null" json:"projected_return"`
	TotalSlots              int            `gorm:"not null" json:"total_slots"`
	AvailableSlots          int            `gorm:"not null" json:"available_slots"`
	FundingProgress         int            `gorm:"not null;default:0" json:"funding_progress"`
	ImageURL                string         `gorm:"size:500" json:"image_url"`
	Status                  string         `gorm:"size:50;not null;default:active" json:"status"`
	Badge                   string         `gorm:"size:100" json:"badge,omitempty"`
	PartnershipDocumentURL  string         `gorm:"size:500" json:"partnership_document_url,omitempty"`
	PartnershipDocumentName string         `gorm:"size:200" json:"partnership_document_name,omitempty"`
	DeveloperNotes          string         `gorm:"type:text" json:"developer_notes,omitempty"`
	InvestmentDetails       string         `gorm:"type:text" json:"investment_details,omitempty"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Property) TableName() string { return "properties" }
