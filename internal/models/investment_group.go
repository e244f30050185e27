package models

import "time"

// Group lifecycle. Transitions are admin-driven except for "expired", which
// the sweep job applies to recruiting groups past their deadline.
const (
	GroupStatusRecruiting = "recruiting"
	GroupStatusFunded     = "funded"
	GroupStatusConfirmed  = "confirmed"
	GroupStatusClosed     = "closed"
	GroupStatusExpired    = "expired"
)

const (
	MemberStatusActive  = "active"
	MemberStatusRemoved = "removed"
)

// InvestmentGroup pools several investors toward one funding target. Members
// join via the invite code; CurrentAmount accumulates recorded contributions
// and must always equal the sum of the group's contribution rows.
type InvestmentGroup struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	PropertyID     *uint     `gorm:"index" json:"property_id,omitempty"`
	LeaderName     string    `gorm:"size:200;not null" json:"leader_name"`
	LeaderEmail    string    `gorm:"size:255;not null" json:"leader_email"`
	LeaderPhone    string    `gorm:"size:50;not null" json:"leader_phone"`
	TargetAmount   int64     `gorm:"not null" json:"target_amount"`
	TargetUnits    int       `gorm:"not null" json:"target_units"`
	CurrentAmount  int64     `gorm:"not null;default:0" json:"current_amount"`
	MaxMembers     int       `gorm:"not null;default:10" json:"max_members"`
	CurrentMembers int       `gorm:"not null;default:1" json:"current_members"`
	InviteCode     string    `gorm:"uniqueIndex;size:20;not null" json:"invite_code"`
	IsPublic       bool      `gorm:"default:true" json:"is_public"`
	Status         string    `gorm:"size:50;not null;default:recruiting" json:"status"`
	ExpiresAt      time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Property *Property     `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Members  []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}

func (InvestmentGroup) TableName() string { return "investment_groups" }

// GroupMember is one participant. PledgedAmount is stated intent;
// ContributedAmount moves only when a contribution row is recorded.
type GroupMember struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	GroupID           uint      `gorm:"not null;index" json:"group_id"`
	FullName          string    `gorm:"size:200;not null" json:"full_name"`
	Email             string    `gorm:"size:255;not null;index" json:"email"`
	Phone             string    `gorm:"size:50;not null" json:"phone"`
	PledgedAmount     int64     `gorm:"not null" json:"pledged_amount"`
	ContributedAmount int64     `gorm:"not null;default:0" json:"contributed_amount"`
	IsLeader          bool      `gorm:"default:false" json:"is_leader"`
	Status            string    `gorm:"size:50;not null;default:active" json:"status"`
	JoinedAt          time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (GroupMember) TableName() string { return "group_members" }

// GroupContribution is one recorded payment event.
type GroupContribution struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"not null;index" json:"group_id"`
	MemberID  uint      `gorm:"not null;index" json:"member_id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Reference string    `gorm:"size:200" json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (GroupContribution) TableName() string { return "group_contributions" }
