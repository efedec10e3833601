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

type MedicineHandler struct {
	medicineService *service.MedicineService
}

func NewMedicineHandler(medicineService *service.MedicineService) *MedicineHandler {
	return &MedicineHandler{
		medicineService: medicineService,
	}
}

type stockAdjustRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// SearchMedicines retrieves medicines, optionally filtered by name
func (h *MedicineHandler) SearchMedicines(c *gin.Context) {
	page := utils.ParsePagination(c)
	term := c.Query("q")

	medicines, total, err := h.medicineService.SearchMedicines(term, page.Offset(), page.Limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch medicines")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"medicines": medicines,
		"total":     total,
		"page":      page.Page,
		"limit":     page.Limit,
	})
}

// GetMedicine retrieves a specific medicine by ID
func (h *MedicineHandler) GetMedicine(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid medicine ID")
		return
	}

	medicine, err := h.medicineService.GetMedicine(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrMedicineNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch medicine")
		}
		return
	}

	utils.SuccessResponse(c, medicine)
}

// CreateMedicine adds a new inventory item
func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	var medicine models.Medicine
	if err := c.ShouldBindJSON(&medicine); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	if err := h.medicineService.CreateMedicine(&medicine, userID.(uint)); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{"medicine": medicine})
}

// UpdateMedicine updates an existing medicine
func (h *MedicineHandler) UpdateMedicine(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid medicine ID")
		return
	}

	var medicine models.Medicine
	if err := c.ShouldBindJSON(&medicine); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	medicine.ID = uint(id)

	userID, _ := c.Get("userID")

	if err := h.medicineService.UpdateMedicine(&medicine, userID.(uint)); err != nil {
		if errors.Is(err, repository.ErrMedicineNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"medicine": medicine})
}

// DeleteMedicine soft deletes a medicine
func (h *MedicineHandler) DeleteMedicine(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid medicine ID")
		return
	}

	userID, _ := c.Get("userID")

	if err := h.medicineService.DeleteMedicine(uint(id), userID.(uint)); err != nil {
		if errors.Is(err, repository.ErrMedicineNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete medicine")
		}
		return
	}

	utils.MessageResponse(c, "Medicine deleted successfully")
}

// AdjustStock applies a stock delta (restock or dispense)
func (h *MedicineHandler) AdjustStock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid medicine ID")
		return
	}

	var req stockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	medicine, err := h.medicineService.AdjustStock(uint(id), req.Delta, userID.(uint))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMedicineNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrInsufficientStock):
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to adjust stock")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"medicine": medicine})
}

// GetLowStock retrieves medicines at or below their reorder level
func (h *MedicineHandler) GetLowStock(c *gin.Context) {
	medicines, err := h.medicineService.GetLowStockMedicines()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch low stock medicines")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"medicines": medicines,
		"count":     len(medicines),
	})
}
