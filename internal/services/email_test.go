package services

import (
	"strings"
	"testing"
	"time"

	"github.com/brikvest/backend/internal/config"
	"github.com/brikvest/backend/internal/models"
)

func TestEmailService_DisabledSendIsNoop(t *testing.T) {
	svc := NewEmailService(&config.SMTPConfig{Enabled: false})

	if err := svc.Send([]string{"investor@example.com"}, "subject", "body"); err != nil {
		t.Errorf("Send() with SMTP disabled should be a no-op, got error %v", err)
	}
}

func TestBuildReservationConfirmation(t *testing.T) {
	property := &models.Property{
		Name:            "Lekki Gardens Phase 2",
		Location:        "Lekki, Lagos",
		MinInvestment:   500000,
		ProjectedReturn: 18.5,
	}
	reservation := &models.InvestmentReservation{
		FullName: "Ada Obi",
		Units:    3,
		Status:   models.ReservationStatusReserved,
	}

	subject, body := BuildReservationConfirmation(reservation, property)

	if !strings.Contains(subject, "Lekki Gardens Phase 2") {
		t.Errorf("subject %q should name the property", subject)
	}
	for _, want := range []string{"Ada Obi", "Lekki, Lagos", "₦1500000", "18.50%"} {
		if !strings.Contains(body, want) {
			t.Errorf("body should contain %q", want)
		}
	}
}

func TestBuildGroupWelcome(t *testing.T) {
	group := &models.InvestmentGroup{
		Name:         "Yaba Investors Circle",
		TargetAmount: 2000000,
		InviteCode:   "A1B2C3D4",
		ExpiresAt:    time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	member := &models.GroupMember{
		FullName:      "Tunde Bakare",
		PledgedAmount: 200000,
	}

	subject, body := BuildGroupWelcome(group, member)

	if !strings.Contains(subject, "Yaba Investors Circle") {
		t.Errorf("subject %q should name the group", subject)
	}
	for _, want := range []string{"Tunde Bakare", "A1B2C3D4", "₦200000", "30 Jun 2025"} {
		if !strings.Contains(body, want) {
			t.Errorf("body should contain %q", want)
		}
	}
}
