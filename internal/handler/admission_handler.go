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

type AdmissionHandler struct {
	admissionService *service.AdmissionService
	billingService   *service.BillingService
}

func NewAdmissionHandler(admissionService *service.AdmissionService, billingService *service.BillingService) *AdmissionHandler {
	return &AdmissionHandler{
		admissionService: admissionService,
		billingService:   billingService,
	}
}

type transferRequest struct {
	WardID uint `json:"ward_id" binding:"required"`
	BedID  uint `json:"bed_id" binding:"required"`
}

type dischargeRequest struct {
	Notes string `json:"notes"`
}

// ListAdmissions retrieves admissions with optional status/ward filters
func (h *AdmissionHandler) ListAdmissions(c *gin.Context) {
	page := utils.ParsePagination(c)
	status := c.Query("status")

	var wardID uint
	if wardParam := c.Query("ward_id"); wardParam != "" {
		parsed, err := strconv.ParseUint(wardParam, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ward ID")
			return
		}
		wardID = uint(parsed)
	}

	admissions, total, err := h.admissionService.ListAdmissions(status, wardID, page.Offset(), page.Limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch admissions")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"admissions": admissions,
		"total":      total,
		"page":       page.Page,
		"limit":      page.Limit,
	})
}

// GetAdmission retrieves a specific admission by ID
func (h *AdmissionHandler) GetAdmission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid admission ID")
		return
	}

	admission, err := h.admissionService.GetAdmission(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrAdmissionNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch admission")
		}
		return
	}

	utils.SuccessResponse(c, admission)
}

// AdmitPatient opens a new inpatient stay
func (h *AdmissionHandler) AdmitPatient(c *gin.Context) {
	var req service.AdmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	admission, err := h.admissionService.AdmitPatient(&req, userID.(uint))
	if err != nil {
		if errors.Is(err, repository.ErrWardNotFound) || errors.Is(err, repository.ErrBedNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.CreatedResponse(c, gin.H{"admission": admission})
}

// TransferAdmission moves an active stay to another ward/bed
func (h *AdmissionHandler) TransferAdmission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid admission ID")
		return
	}

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	admission, err := h.admissionService.TransferAdmission(uint(id), req.WardID, req.BedID, userID.(uint))
	if err != nil {
		if errors.Is(err, repository.ErrAdmissionNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"admission": admission})
}

// DischargeAdmission closes an active stay
func (h *AdmissionHandler) DischargeAdmission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid admission ID")
		return
	}

	var req dischargeRequest
	_ = c.ShouldBindJSON(&req)

	userID, _ := c.Get("userID")

	admission, err := h.admissionService.DischargeAdmission(uint(id), req.Notes, userID.(uint))
	if err != nil {
		if errors.Is(err, repository.ErrAdmissionNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"admission": admission})
}

// ChargesPreview computes the current charges estimate for an admission.
// An unknown admission ID returns a zeroed preview with a success
// envelope, so UI polling never breaks on this endpoint.
func (h *AdmissionHandler) ChargesPreview(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid admission ID")
		return
	}

	charges, err := h.billingService.ChargesPreviewFor(uint(id))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to compute charges")
		return
	}

	utils.SuccessResponse(c, gin.H{"charges": charges})
}

// Stats returns hospital-wide admission statistics
func (h *AdmissionHandler) Stats(c *gin.Context) {
	stats, err := h.admissionService.Stats(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to compute admission statistics")
		return
	}

	utils.SuccessResponse(c, stats)
}
