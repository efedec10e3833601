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

type LabTestHandler struct {
	labTestService *service.LabTestService
}

func NewLabTestHandler(labTestService *service.LabTestService) *LabTestHandler {
	return &LabTestHandler{
		labTestService: labTestService,
	}
}

type labResultRequest struct {
	Result         string `json:"result" binding:"required"`
	ReferenceRange string `json:"reference_range"`
}

// OrderLabTest records a newly ordered investigation
func (h *LabTestHandler) OrderLabTest(c *gin.Context) {
	var test models.LabTest
	if err := c.ShouldBindJSON(&test); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	if err := h.labTestService.OrderLabTest(&test, userID.(uint)); err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.CreatedResponse(c, gin.H{"lab_test": test})
}

// GetLabTest retrieves a specific lab test by ID
func (h *LabTestHandler) GetLabTest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid lab test ID")
		return
	}

	test, err := h.labTestService.GetLabTest(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrLabTestNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch lab test")
		}
		return
	}

	utils.SuccessResponse(c, test)
}

// EnterResult records the result for a lab test
func (h *LabTestHandler) EnterResult(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid lab test ID")
		return
	}

	var req labResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	test, err := h.labTestService.EnterResult(uint(id), req.Result, req.ReferenceRange, userID.(uint))
	if err != nil {
		if errors.Is(err, repository.ErrLabTestNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"lab_test": test})
}

// ListLabTests retrieves lab tests for a patient
func (h *LabTestHandler) ListLabTests(c *gin.Context) {
	patientID := parseOptionalID(c.Query("patient_id"))
	if patientID == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "patient_id query parameter is required")
		return
	}

	page := utils.ParsePagination(c)
	status := c.Query("status")

	tests, total, err := h.labTestService.ListLabTestsByPatient(patientID, status, page.Offset(), page.Limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch lab tests")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"lab_tests": tests,
		"total":     total,
		"page":      page.Page,
		"limit":     page.Limit,
	})
}
