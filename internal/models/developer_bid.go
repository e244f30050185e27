package models

import "time"

// Bid status values. The review transition has no endpoint yet; the field is
// stored so existing data keeps its meaning.
const (
	BidStatusPending  = "pending"
	BidStatusApproved = "approved"
	BidStatusRejected = "rejected"
)

// DeveloperBid is a developer's proposal to build or co-develop a project.
type DeveloperBid struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	DeveloperName   string    `gorm:"size:200;not null" json:"developer_name"`
	CompanyName     string    `gorm:"size:200;not null" json:"company_name"`
	Email           string    `gorm:"size:255;not null" json:"email"`
	Phone           string    `gorm:"size:50;not null" json:"phone"`
	EstimatedCost   int64     `gorm:"not null" json:"estimated_cost"`
	CostCurrency    string    `gorm:"size:10;not null;default:NGN" json:"cost_currency"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	Timeline        int       `gorm:"not null" json:"timeline"` // months
	PastProjectLink string    `gorm:"size:500" json:"past_project_link,omitempty"`
	PastProjectFile string    `gorm:"size:500" json:"past_project_file,omitempty"`
	WhySelected     string    `gorm:"type:text;not null" json:"why_selected"`
	Status          string    `gorm:"size:50;not null;default:pending" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func (DeveloperBid) TableName() string { return "developer_bids" }
