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

type PatientHandler struct {
	patientService *service.PatientService
}

func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
	}
}

// SearchPatients retrieves patients, optionally filtered by a name/MRN term
func (h *PatientHandler) SearchPatients(c *gin.Context) {
	page := utils.ParsePagination(c)
	term := c.Query("q")

	patients, total, err := h.patientService.SearchPatients(term, page.Offset(), page.Limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch patients")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"patients": patients,
		"total":    total,
		"page":     page.Page,
		"limit":    page.Limit,
	})
}

// GetPatient retrieves a specific patient by ID
func (h *PatientHandler) GetPatient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	patient, err := h.patientService.GetPatient(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch patient")
		}
		return
	}

	utils.SuccessResponse(c, patient)
}

// CreatePatient registers a new patient
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	if err := h.patientService.CreatePatient(&patient, userID.(uint)); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{"patient": patient})
}

// UpdatePatient updates an existing patient
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	patient.ID = uint(id)

	userID, _ := c.Get("userID")

	if err := h.patientService.UpdatePatient(&patient, userID.(uint)); err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"patient": patient})
}

// DeletePatient soft deletes a patient
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	userID, _ := c.Get("userID")

	if err := h.patientService.DeletePatient(uint(id), userID.(uint)); err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete patient")
		}
		return
	}

	utils.MessageResponse(c, "Patient deleted successfully")
}
