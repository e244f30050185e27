package handlers

import (
	"strconv"

	"github.com/brikvest/backend/internal/services"
	"github.com/brikvest/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
}

func NewPropertyHandler(db *gorm.DB) *PropertyHandler {
	return &PropertyHandler{
		propertyService: services.NewPropertyService(db),
	}
}

// List returns properties, optionally filtered by status and location
// GET /api/properties
func (h *PropertyHandler) List(c *gin.Context) {
	var req services.PropertyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	properties, err := h.propertyService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, properties)
}

// GetByID returns a property by ID
// GET /api/properties/:id
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid property id")
		return
	}

	property, err := h.propertyService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, property)
}

// Create creates a new property listing
// POST /api/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var req services.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	property, err := h.propertyService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, property)
}

// Update overwrites a property listing
// PUT /api/properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid property id")
		return
	}

	var req services.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	property, err := h.propertyService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, property)
}

// Delete removes a property and its reservations
// DELETE /api/properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid property id")
		return
	}

	if err := h.propertyService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "property deleted successfully"})
}

// Seed inserts the sample property catalog if the table is empty
// POST /api/seed-properties
func (h *PropertyHandler) Seed(c *gin.Context) {
	seeded, err := h.propertyService.SeedSampleProperties()
	if err != nil {
		response.Error(c, err)
		return
	}

	if !seeded {
		response.Success(c, gin.H{"message": "properties already seeded", "seeded": false})
		return
	}
	response.Created(c, gin.H{"message": "sample properties created", "seeded": true})
}
