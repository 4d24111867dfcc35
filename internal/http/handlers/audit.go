package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/http/response"
	"github.com/rhcore/rhcore-backend/internal/services"
)

type AuditHandler struct {
	audit services.AuditService
}

func NewAuditHandler(audit services.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// GET /api/audit-logs?page&pageSize&resource
func (h *AuditHandler) List(c *gin.Context) {
	page, pageSize, _ := pageParams(c)
	result, err := h.audit.List(c.Request.Context(), page, pageSize, c.Query("resource"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
