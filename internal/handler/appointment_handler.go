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

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

type consultationRequest struct {
	Diagnosis string `json:"diagnosis" binding:"required"`
	Notes     string `json:"notes"`
}

// ListAppointments retrieves appointments with optional filters
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	page := utils.ParsePagination(c)
	status := c.Query("status")

	patientID := parseOptionalID(c.Query("patient_id"))
	doctorID := parseOptionalID(c.Query("doctor_id"))

	appointments, total, err := h.appointmentService.ListAppointments(patientID, doctorID, status, page.Offset(), page.Limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"appointments": appointments,
		"total":        total,
		"page":         page.Page,
		"limit":        page.Limit,
	})
}

// GetAppointment retrieves a specific appointment by ID
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.GetAppointment(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch appointment")
		}
		return
	}

	utils.SuccessResponse(c, appointment)
}

// CreateAppointment books a new appointment
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	if err := h.appointmentService.CreateAppointment(&appointment, userID.(uint)); err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) || errors.Is(err, repository.ErrUserNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.CreatedResponse(c, gin.H{"appointment": appointment})
}

// CancelAppointment cancels a scheduled appointment
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	userID, _ := c.Get("userID")

	appointment, err := h.appointmentService.CancelAppointment(uint(id), userID.(uint))
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"appointment": appointment})
}

// RecordConsultation stores the clinical outcome of an appointment
func (h *AppointmentHandler) RecordConsultation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	var req consultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	consultation, err := h.appointmentService.RecordConsultation(uint(id), req.Diagnosis, req.Notes, userID.(uint))
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.CreatedResponse(c, gin.H{"consultation": consultation})
}

// GetConsultation retrieves the consultation recorded for an appointment
func (h *AppointmentHandler) GetConsultation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	consultation, err := h.appointmentService.GetConsultation(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Consultation not found")
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch consultation")
		}
		return
	}

	utils.SuccessResponse(c, consultation)
}

func parseOptionalID(s string) uint {
	if s == "" {
		return 0
	}
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
