package handler

import (
	"errors"
	"net/http"
	"strconv"

	"hospital-backend/internal/repository"
	"hospital-backend/internal/service"
	"hospital-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PrescriptionHandler struct {
	prescriptionService *service.PrescriptionService
}

func NewPrescriptionHandler(prescriptionService *service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionService: prescriptionService,
	}
}

// CreatePrescription saves a prescription and returns it with any safety
// warnings produced by the interaction/allergy check
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	var req service.PrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	result, err := h.prescriptionService.CreatePrescription(&req, userID.(uint))
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.CreatedResponse(c, result)
}

// GetPrescription retrieves a prescription with its items
func (h *PrescriptionHandler) GetPrescription(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid prescription ID")
		return
	}

	prescription, err := h.prescriptionService.GetPrescription(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrPrescriptionNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch prescription")
		}
		return
	}

	utils.SuccessResponse(c, prescription)
}

// ListPrescriptions retrieves prescriptions for a patient
func (h *PrescriptionHandler) ListPrescriptions(c *gin.Context) {
	patientID := parseOptionalID(c.Query("patient_id"))
	if patientID == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "patient_id query parameter is required")
		return
	}

	page := utils.ParsePagination(c)

	prescriptions, total, err := h.prescriptionService.ListPrescriptionsByPatient(patientID, page.Offset(), page.Limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch prescriptions")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"prescriptions": prescriptions,
		"total":         total,
		"page":          page.Page,
		"limit":         page.Limit,
	})
}
