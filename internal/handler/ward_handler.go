package handler

import (
	"errors"
	"net/http"
	"strconv"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"
	"hospital-backend/internal/service"
	"hospital-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type WardHandler struct {
	wardService *service.WardService
}

func NewWardHandler(wardService *service.WardService) *WardHandler {
	return &WardHandler{
		wardService: wardService,
	}
}

// GetAllWards retrieves all wards
func (h *WardHandler) GetAllWards(c *gin.Context) {
	wards, err := h.wardService.GetAllWards()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch wards")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"wards": wards,
		"count": len(wards),
	})
}

// GetWard retrieves a specific ward by ID
func (h *WardHandler) GetWard(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ward ID")
		return
	}

	ward, err := h.wardService.GetWard(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrWardNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch ward")
		}
		return
	}

	utils.SuccessResponse(c, ward)
}

// CreateWard creates a new ward
func (h *WardHandler) CreateWard(c *gin.Context) {
	var ward models.Ward
	if err := c.ShouldBindJSON(&ward); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	if err := h.wardService.CreateWard(&ward, userID.(uint)); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{"ward": ward})
}

// UpdateWard updates an existing ward
func (h *WardHandler) UpdateWard(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ward ID")
		return
	}

	var ward models.Ward
	if err := c.ShouldBindJSON(&ward); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	ward.ID = uint(id)

	userID, _ := c.Get("userID")

	if err := h.wardService.UpdateWard(&ward, userID.(uint)); err != nil {
		if errors.Is(err, repository.ErrWardNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"ward": ward})
}

// DeleteWard soft deletes a ward
func (h *WardHandler) DeleteWard(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ward ID")
		return
	}

	userID, _ := c.Get("userID")

	if err := h.wardService.DeleteWard(uint(id), userID.(uint)); err != nil {
		if errors.Is(err, repository.ErrWardNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete ward")
		}
		return
	}

	utils.MessageResponse(c, "Ward deleted successfully")
}

// GetBeds retrieves beds for a ward; ?available=true filters to free beds
func (h *WardHandler) GetBeds(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ward ID")
		return
	}

	availableOnly := c.Query("available") == "true"

	beds, err := h.wardService.GetBeds(uint(id), availableOnly)
	if err != nil {
		if errors.Is(err, repository.ErrWardNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch beds")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"beds":  beds,
		"count": len(beds),
	})
}

// CreateBed adds a bed to a ward
func (h *WardHandler) CreateBed(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ward ID")
		return
	}

	var bed models.Bed
	if err := c.ShouldBindJSON(&bed); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	bed.WardID = uint(id)

	userID, _ := c.Get("userID")

	if err := h.wardService.CreateBed(&bed, userID.(uint)); err != nil {
		if errors.Is(err, repository.ErrWardNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.CreatedResponse(c, gin.H{"bed": bed})
}
