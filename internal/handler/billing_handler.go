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

type BillingHandler struct {
	billingService *service.BillingService
}

func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
	}
}

type createInvoiceRequest struct {
	AdmissionID uint `json:"admission_id" binding:"required"`
}

// CreateInvoice issues an invoice for an admission
func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	invoice, err := h.billingService.CreateInvoiceForAdmission(req.AdmissionID, userID.(uint))
	if err != nil {
		if errors.Is(err, repository.ErrAdmissionNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create invoice")
		}
		return
	}

	utils.CreatedResponse(c, gin.H{"invoice": invoice})
}

// GetInvoice retrieves an invoice with its items
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	invoice, err := h.billingService.GetInvoice(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch invoice")
		}
		return
	}

	utils.SuccessResponse(c, invoice)
}

// ListInvoices retrieves invoices for a patient
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	patientID := parseOptionalID(c.Query("patient_id"))
	if patientID == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "patient_id query parameter is required")
		return
	}

	page := utils.ParsePagination(c)

	invoices, total, err := h.billingService.ListInvoicesByPatient(patientID, page.Offset(), page.Limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch invoices")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"invoices": invoices,
		"total":    total,
		"page":     page.Page,
		"limit":    page.Limit,
	})
}

// PayInvoice marks an unpaid invoice as settled
func (h *BillingHandler) PayInvoice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	userID, _ := c.Get("userID")

	invoice, err := h.billingService.MarkInvoicePaid(uint(id), userID.(uint))
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"invoice": invoice})
}
