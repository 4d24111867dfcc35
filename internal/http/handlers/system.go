package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/http/response"
	"github.com/rhcore/rhcore-backend/internal/services"
)

type SystemHandler struct {
	systems services.SystemService
}

func NewSystemHandler(systems services.SystemService) *SystemHandler {
	return &SystemHandler{systems: systems}
}

func (h *SystemHandler) List(c *gin.Context) {
	page, pageSize, search := pageParams(c)
	result, err := h.systems.List(c.Request.Context(), page, pageSize, search)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *SystemHandler) ListAll(c *gin.Context) {
	items, err := h.systems.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

func (h *SystemHandler) Get(c *gin.Context) {
	system, err := h.systems.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, system)
}

func (h *SystemHandler) Create(c *gin.Context) {
	var input services.CreateSystemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	system, err := h.systems.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "/api/systems/"+system.Code, system)
}

func (h *SystemHandler) Update(c *gin.Context) {
	var input services.UpdateSystemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	system, err := h.systems.Update(c.Request.Context(), c.Param("code"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, system)
}

func (h *SystemHandler) Delete(c *gin.Context) {
	if err := h.systems.Delete(c.Request.Context(), c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *SystemHandler) BatchDelete(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	result, err := h.systems.BatchDelete(c.Request.Context(), req.Keys)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
