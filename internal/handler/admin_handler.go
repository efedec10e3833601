package handler

import (
	"net/http"

	"hospital-backend/internal/models"
	"hospital-backend/internal/service"
	"hospital-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GetSettings retrieves the hospital-wide settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.adminService.GetSettings()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}

	utils.SuccessResponse(c, gin.H{"settings": settings})
}

// UpdateSettings replaces the hospital-wide settings
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var settings models.HospitalSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	if err := h.adminService.UpdateSettings(settings, userID.(uint)); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	utils.SuccessResponse(c, gin.H{"settings": settings})
}

// ListAuditLogs retrieves audit logs, newest first
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	page := utils.ParsePagination(c)

	logs, total, err := h.adminService.ListAuditLogs(page.Offset(), page.Limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch audit logs")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"audit_logs": logs,
		"total":      total,
		"page":       page.Page,
		"limit":      page.Limit,
	})
}
