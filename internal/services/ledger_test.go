package services

import (
	"errors"
	"testing"

	"github.com/brikvest/backend/internal/models"
	"github.com/brikvest/backend/pkg/response"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.InvestmentReservation{},
		&models.DeveloperBid{},
		&models.InvestmentGroup{},
		&models.GroupMember{},
		&models.GroupContribution{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProperty(t *testing.T, db *gorm.DB, total, available int) *models.Property {
	t.Helper()

	property := models.Property{
		Name:            "Yaba Tech Park",
		Location:        "Yaba, Lagos",
		Description:     "Test listing",
		TotalValue:      500000000,
		MinInvestment:   250000,
		ProjectedReturn: 10,
		TotalSlots:      total,
		AvailableSlots:  available,
		FundingProgress: FundingProgress(total, available),
		Status:          models.PropertyStatusActive,
	}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("seed property: %v", err)
	}
	return &property
}

func appErrCode(err error) int {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

func TestReserveSlots(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyService(db)
	property := seedProperty(t, db, 10, 10)

	if err := svc.ReserveSlots(property.ID, 3); err != nil {
		t.Fatalf("ReserveSlots(3) error: %v", err)
	}

	var got models.Property
	if err := db.First(&got, property.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.AvailableSlots != 7 {
		t.Errorf("AvailableSlots = %d, want 7", got.AvailableSlots)
	}
	if got.FundingProgress != 30 {
		t.Errorf("FundingProgress = %d, want 30", got.FundingProgress)
	}
}

func TestReserveSlotsRejectionLeavesLedgerUntouched(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyService(db)
	property := seedProperty(t, db, 10, 7)

	tests := []struct {
		name     string
		id       uint
		units    int
		wantCode int
	}{
		{"oversell", property.ID, 8, 400},
		{"zero units", property.ID, 0, 400},
		{"negative units", property.ID, -1, 400},
		{"unknown property", property.ID + 100, 1, 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ReserveSlots(tt.id, tt.units)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if code := appErrCode(err); code != tt.wantCode {
				t.Errorf("error code = %d, want %d", code, tt.wantCode)
			}

			var got models.Property
			if err := db.First(&got, property.ID).Error; err != nil {
				t.Fatalf("reload: %v", err)
			}
			if got.AvailableSlots != 7 || got.FundingProgress != 30 {
				t.Errorf("ledger mutated on rejection: slots=%d progress=%d, want 7/30",
					got.AvailableSlots, got.FundingProgress)
			}
		})
	}
}

func TestReservationCreateCommitsBothWrites(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	property := seedProperty(t, db, 10, 10)

	reservation, err := svc.Create(&CreateReservationRequest{
		PropertyID: property.ID,
		FullName:   "Ada Obi",
		Email:      "ada@example.com",
		Phone:      "+2348000000000",
		Units:      3,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if reservation.Status != models.ReservationStatusReserved {
		t.Errorf("Status = %q, want %q", reservation.Status, models.ReservationStatusReserved)
	}

	var got models.Property
	if err := db.First(&got, property.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.AvailableSlots != 7 {
		t.Errorf("AvailableSlots = %d, want 7", got.AvailableSlots)
	}

	var count int64
	db.Model(&models.InvestmentReservation{}).Count(&count)
	if count != 1 {
		t.Errorf("reservation rows = %d, want 1", count)
	}
}

func TestReservationCreateRejectionInsertsNoRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	property := seedProperty(t, db, 10, 7)

	_, err := svc.Create(&CreateReservationRequest{
		PropertyID: property.ID,
		FullName:   "Ada Obi",
		Email:      "ada@example.com",
		Phone:      "+2348000000000",
		Units:      8,
	})
	if err == nil {
		t.Fatal("expected oversell rejection, got nil")
	}
	if code := appErrCode(err); code != 400 {
		t.Errorf("error code = %d, want 400", code)
	}

	var count int64
	db.Model(&models.InvestmentReservation{}).Count(&count)
	if count != 0 {
		t.Errorf("reservation rows = %d, want 0", count)
	}

	var got models.Property
	if err := db.First(&got, property.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.AvailableSlots != 7 {
		t.Errorf("AvailableSlots = %d, want 7", got.AvailableSlots)
	}
}

func TestReservationListByProperty(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	first := seedProperty(t, db, 10, 10)
	second := seedProperty(t, db, 20, 20)

	for _, propertyID := range []uint{first.ID, first.ID, second.ID} {
		if _, err := svc.Create(&CreateReservationRequest{
			PropertyID: propertyID,
			FullName:   "Ada Obi",
			Email:      "ada@example.com",
			Phone:      "+2348000000000",
			Units:      1,
		}); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	reservations, err := svc.ListByProperty(first.ID)
	if err != nil {
		t.Fatalf("ListByProperty error: %v", err)
	}
	if len(reservations) != 2 {
		t.Fatalf("len = %d, want 2", len(reservations))
	}
	for _, r := range reservations {
		if r.PropertyID != first.ID {
			t.Errorf("reservation %d belongs to property %d, want %d", r.ID, r.PropertyID, first.ID)
		}
	}
}

func TestBidGetByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewBidService(db)

	created, err := svc.Create(&CreateBidRequest{
		DeveloperName: "Tunde Bakare",
		CompanyName:   "Bakare Construction Ltd",
		Email:         "tunde@example.com",
		Phone:         "+2348333333333",
		EstimatedCost: 750000000,
		Description:   "Mid-rise residential development",
		Timeline:      18,
		WhySelected:   "Delivered three comparable projects in Lagos",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.CompanyName != "Bakare Construction Ltd" {
		t.Errorf("CompanyName = %q", got.CompanyName)
	}
	if got.Status != models.BidStatusPending {
		t.Errorf("Status = %q, want %q", got.Status, models.BidStatusPending)
	}

	_, err = svc.GetByID(created.ID + 100)
	if code := appErrCode(err); code != 404 {
		t.Errorf("unknown id error code = %d, want 404", code)
	}
}

func newTestGroup(t *testing.T, svc *GroupService, maxMembers int) *models.InvestmentGroup {
	t.Helper()

	group, err := svc.Create(&CreateGroupRequest{
		Name:         "Lekki Pool",
		LeaderName:   "Bola Ade",
		LeaderEmail:  "bola@example.com",
		LeaderPhone:  "+2348111111111",
		TargetAmount: 1000000,
		TargetUnits:  10,
		MaxMembers:   maxMembers,
	})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	return group
}

func TestGroupCreateSeedsLeaderPledge(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)
	group := newTestGroup(t, svc, 5)

	var leader models.GroupMember
	if err := db.Where("group_id = ? AND is_leader = ?", group.ID, true).First(&leader).Error; err != nil {
		t.Fatalf("load leader: %v", err)
	}
	if leader.PledgedAmount != 100000 {
		t.Errorf("leader PledgedAmount = %d, want 100000", leader.PledgedAmount)
	}
	if group.CurrentMembers != 1 {
		t.Errorf("CurrentMembers = %d, want 1", group.CurrentMembers)
	}
}

func TestGroupJoinFullInsertsNoMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)
	group := newTestGroup(t, svc, 2)

	join := func(email string) (*models.GroupMember, error) {
		return svc.Join(&JoinGroupRequest{
			InviteCode:    group.InviteCode,
			FullName:      "Chika Eze",
			Email:         email,
			Phone:         "+2348222222222",
			PledgedAmount: 100000,
		})
	}

	if _, err := join("chika@example.com"); err != nil {
		t.Fatalf("first join error: %v", err)
	}

	_, err := join("dayo@example.com")
	if err == nil {
		t.Fatal("expected full-group rejection, got nil")
	}
	if code := appErrCode(err); code != 400 {
		t.Errorf("error code = %d, want 400", code)
	}

	var members int64
	db.Model(&models.GroupMember{}).Where("group_id = ?", group.ID).Count(&members)
	if members != 2 {
		t.Errorf("member rows = %d, want 2", members)
	}

	var got models.InvestmentGroup
	if err := db.First(&got, group.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.CurrentMembers != 2 {
		t.Errorf("CurrentMembers = %d, want 2", got.CurrentMembers)
	}
}

func TestGroupContributionsReconcile(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)
	group := newTestGroup(t, svc, 5)

	var leader models.GroupMember
	if err := db.Where("group_id = ? AND is_leader = ?", group.ID, true).First(&leader).Error; err != nil {
		t.Fatalf("load leader: %v", err)
	}

	for _, amount := range []int64{60000, 40000} {
		if _, err := svc.Contribute(group.ID, &ContributionRequest{
			MemberID: leader.ID,
			Amount:   amount,
		}); err != nil {
			t.Fatalf("Contribute(%d) error: %v", amount, err)
		}
	}

	var sum int64
	db.Model(&models.GroupContribution{}).Where("group_id = ?", group.ID).
		Select("COALESCE(SUM(amount), 0)").Scan(&sum)
	if sum != 100000 {
		t.Errorf("contribution sum = %d, want 100000", sum)
	}

	var gotMember models.GroupMember
	if err := db.First(&gotMember, leader.ID).Error; err != nil {
		t.Fatalf("reload member: %v", err)
	}
	if gotMember.ContributedAmount != sum {
		t.Errorf("member ContributedAmount = %d, want %d", gotMember.ContributedAmount, sum)
	}

	var gotGroup models.InvestmentGroup
	if err := db.First(&gotGroup, group.ID).Error; err != nil {
		t.Fatalf("reload group: %v", err)
	}
	if gotGroup.CurrentAmount != sum {
		t.Errorf("group CurrentAmount = %d, want %d", gotGroup.CurrentAmount, sum)
	}
}

func TestGroupContributionUnknownMemberInsertsNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)
	group := newTestGroup(t, svc, 5)

	_, err := svc.Contribute(group.ID, &ContributionRequest{
		MemberID: 9999,
		Amount:   50000,
	})
	if err == nil {
		t.Fatal("expected unknown-member rejection, got nil")
	}
	if code := appErrCode(err); code != 404 {
		t.Errorf("error code = %d, want 404", code)
	}

	var count int64
	db.Model(&models.GroupContribution{}).Count(&count)
	if count != 0 {
		t.Errorf("contribution rows = %d, want 0", count)
	}

	var got models.InvestmentGroup
	if err := db.First(&got, group.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.CurrentAmount != 0 {
		t.Errorf("CurrentAmount = %d, want 0", got.CurrentAmount)
	}
}
