package handlers

import (
	"strconv"
	"strings"

	"github.com/brikvest/backend/internal/services"
	"github.com/brikvest/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReservationHandler struct {
	reservationService *services.ReservationService
}

func NewReservationHandler(db *gorm.DB) *ReservationHandler {
	return &ReservationHandler{
		reservationService: services.NewReservationService(db),
	}
}

// Create reserves investment slots on a property
// POST /api/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	var req services.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.reservationService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, reservation)
}

// ListByEmail returns the caller's reservations
// GET /api/reservations?email=...
func (h *ReservationHandler) ListByEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		response.BadRequest(c, "email query parameter is required")
		return
	}

	reservations, err := h.reservationService.ListByEmail(email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, reservations)
}

// ListAll returns every reservation with its property, optionally narrowed
// to one listing
// GET /api/reservations/all?property_id=...
func (h *ReservationHandler) ListAll(c *gin.Context) {
	if raw := c.Query("property_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid property_id")
			return
		}

		reservations, err := h.reservationService.ListByProperty(uint(id))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, reservations)
		return
	}

	reservations, err := h.reservationService.ListAll()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, reservations)
}
