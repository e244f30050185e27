package handlers

import (
	"strconv"

	"github.com/brikvest/backend/internal/services"
	"github.com/brikvest/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BidHandler struct {
	bidService *services.BidService
}

func NewBidHandler(db *gorm.DB) *BidHandler {
	return &BidHandler{
		bidService: services.NewBidService(db),
	}
}

// Create submits a developer bid
// POST /api/developer-bids
func (h *BidHandler) Create(c *gin.Context) {
	var req services.CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bid, err := h.bidService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, bid)
}

// GetByID returns a single developer bid
// GET /api/developer-bids/:id
func (h *BidHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid bid ID")
		return
	}

	bid, err := h.bidService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, bid)
}

// List returns all developer bids
// GET /api/developer-bids
func (h *BidHandler) List(c *gin.Context) {
	bids, err := h.bidService.List()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, bids)
}
