package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/http/response"
	"github.com/rhcore/rhcore-backend/internal/services"
)

type CostCenterHandler struct {
	costCenters services.CostCenterService
}

func NewCostCenterHandler(costCenters services.CostCenterService) *CostCenterHandler {
	return &CostCenterHandler{costCenters: costCenters}
}

func (h *CostCenterHandler) List(c *gin.Context) {
	page, pageSize, search := pageParams(c)
	result, err := h.costCenters.List(c.Request.Context(), page, pageSize, search)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *CostCenterHandler) ListAll(c *gin.Context) {
	items, err := h.costCenters.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

func (h *CostCenterHandler) Get(c *gin.Context) {
	costCenter, err := h.costCenters.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, costCenter)
}

func (h *CostCenterHandler) Create(c *gin.Context) {
	var input services.CreateCostCenterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	costCenter, err := h.costCenters.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "/api/cost-centers/"+costCenter.Code, costCenter)
}

func (h *CostCenterHandler) Update(c *gin.Context) {
	var input services.UpdateCostCenterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	costCenter, err := h.costCenters.Update(c.Request.Context(), c.Param("code"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, costCenter)
}

func (h *CostCenterHandler) Delete(c *gin.Context) {
	if err := h.costCenters.Delete(c.Request.Context(), c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *CostCenterHandler) BatchDelete(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	result, err := h.costCenters.BatchDelete(c.Request.Context(), req.Keys)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
